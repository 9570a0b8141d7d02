package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// UpdateCategoryBody is the request body for updating a category. Both
// fields are optional; absent fields are left unchanged.
type UpdateCategoryBody struct {
	Name *string `json:"name,omitempty" doc:"New category name"`
	Type *string `json:"type,omitempty" doc:"New entry type, cascades to the category's transactions"`
}

// UpdateCategoryInput is the Huma input for updating a category.
type UpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category UUID"`
	Body UpdateCategoryBody
}

// UpdateCategoryOutput is the Huma output for updating a category.
type UpdateCategoryOutput struct {
	Body respond.Envelope[Category]
}

// categoryUpdater is the interface for updating categories.
type categoryUpdater interface {
	Update(ctx context.Context, ownerID, categoryID uuid.UUID, input service.CategoryUpdateInput) (*service.Category, error)
}

// UpdateCategoryHandler handles PATCH /v1/category/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryUpdater
}

// NewUpdateCategoryHandler creates a new UpdateCategoryHandler.
func NewUpdateCategoryHandler(svc categoryUpdater) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc}
}

// Register registers the update category endpoint with the Huma API.
func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/v1/category/{id}",
		Summary:     "Update category",
		Description: "Renames or retypes a category. A type change rewrites the type of every transaction in the category.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

// parseUpdateCategoryInput parses and validates the API input.
func parseUpdateCategoryInput(input *UpdateCategoryInput) (categoryID uuid.UUID, update service.CategoryUpdateInput, err error) {
	categoryID, err = uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, update, huma.NewError(http.StatusBadRequest, "invalid category id", err)
	}
	if input.Body.Name != nil {
		update.Name.Set(*input.Body.Name)
	}
	if input.Body.Type != nil {
		entryType, parseErr := service.ParseEntryType(*input.Body.Type)
		if parseErr != nil {
			return uuid.Nil, update, respond.Error(parseErr, "failed to update category")
		}
		update.Type.Set(entryType)
	}
	return categoryID, update, nil
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	categoryID, update, err := parseUpdateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := h.CategoryService.Update(ctx, ownerID, categoryID, update)
	if err != nil {
		return nil, respond.Error(err, "failed to update category")
	}

	return &UpdateCategoryOutput{Body: respond.OK("category updated", fromService(*updated))}, nil
}
