package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Name string `json:"name" required:"true" doc:"Category name"`
	Type string `json:"type" required:"true" doc:"Entry type, expense or income"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CreateCategoryBody
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Status int
	Body   respond.Envelope[Category]
}

// categoryCreator is the interface for creating categories.
type categoryCreator interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string, entryType service.EntryType) (*service.Category, error)
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	CategoryService categoryCreator
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(svc categoryCreator) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create category",
		Description:   "Creates a new category owned by the authenticated user.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	entryType, err := service.ParseEntryType(input.Body.Type)
	if err != nil {
		return nil, respond.Error(err, "failed to create category")
	}

	created, err := h.CategoryService.Create(ctx, ownerID, input.Body.Name, entryType)
	if err != nil {
		return nil, respond.Error(err, "failed to create category")
	}

	return &CreateCategoryOutput{
		Status: http.StatusCreated,
		Body:   respond.OK("category created", fromService(*created)),
	}, nil
}
