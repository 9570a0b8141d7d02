package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListCategoriesInput is the Huma input for listing categories.
type ListCategoriesInput struct {
	Type string `query:"type" doc:"Optional entry type filter, expense or income"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body respond.Envelope[[]Category]
}

// categoryLister is the interface for listing categories.
type categoryLister interface {
	List(ctx context.Context, ownerID uuid.UUID, typeFilter *service.EntryType) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /v1/category.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

// NewListCategoriesHandler creates a new ListCategoriesHandler.
func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Description: "Returns the authenticated user's categories ordered by name.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}

	var typeFilter *service.EntryType
	if input.Type != "" {
		entryType, parseErr := service.ParseEntryType(input.Type)
		if parseErr != nil {
			return nil, respond.Error(parseErr, "failed to list categories")
		}
		typeFilter = &entryType
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listCategoriesMs")
	}
	categories, err := h.CategoryService.List(ctx, ownerID, typeFilter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to list categories")
	}

	if logData != nil {
		logData.AddData("categoryCount", len(categories))
	}

	resp := make([]Category, len(categories))
	for i, c := range categories {
		resp[i] = fromService(c)
	}
	return &ListCategoriesOutput{Body: respond.OK("", resp)}, nil
}
