package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// UpdateProfileBody is the request body for updating the profile.
type UpdateProfileBody struct {
	FirstName string `json:"firstName" required:"true" doc:"First name"`
	LastName  string `json:"lastName" required:"true" doc:"Last name"`
	Email     string `json:"email" required:"true" format:"email" doc:"Account email"`
}

// UpdateProfileInput is the Huma input for updating the profile.
type UpdateProfileInput struct {
	Body UpdateProfileBody
}

// UpdateProfileOutput is the Huma output for updating the profile.
type UpdateProfileOutput struct {
	Body respond.Envelope[Profile]
}

// profileUpdater is the interface for updating profiles.
type profileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, input service.UserUpdateInput) (*service.User, error)
}

// UpdateProfileHandler handles PUT /v1/profile.
type UpdateProfileHandler struct {
	UserService profileUpdater
}

// NewUpdateProfileHandler creates a new UpdateProfileHandler.
func NewUpdateProfileHandler(svc profileUpdater) *UpdateProfileHandler {
	return &UpdateProfileHandler{UserService: svc}
}

// Register registers the update profile endpoint with the Huma API.
func (h *UpdateProfileHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/v1/profile",
		Summary:     "Update profile",
		Description: "Rewrites the authenticated user's name and email.",
		Tags:        []string{"Profile"},
	}, h.handle)
}

func (h *UpdateProfileHandler) handle(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.UserService.UpdateProfile(ctx, ownerID, service.UserUpdateInput{
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Email:     input.Body.Email,
	})
	if err != nil {
		return nil, respond.Error(err, "failed to update profile")
	}

	return &UpdateProfileOutput{Body: respond.OK("profile updated", fromService(*user))}, nil
}
