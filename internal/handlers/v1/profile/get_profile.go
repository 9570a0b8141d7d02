package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetProfileInput is the Huma input for fetching the profile.
type GetProfileInput struct{}

// GetProfileOutput is the Huma output for fetching the profile.
type GetProfileOutput struct {
	Body respond.Envelope[Profile]
}

// profileGetter is the interface for fetching profiles.
type profileGetter interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*service.User, error)
}

// GetProfileHandler handles GET /v1/profile.
type GetProfileHandler struct {
	UserService profileGetter
}

// NewGetProfileHandler creates a new GetProfileHandler.
func NewGetProfileHandler(svc profileGetter) *GetProfileHandler {
	return &GetProfileHandler{UserService: svc}
}

// Register registers the get profile endpoint with the Huma API.
func (h *GetProfileHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/v1/profile",
		Summary:     "Get profile",
		Description: "Returns the authenticated user's profile.",
		Tags:        []string{"Profile"},
	}, h.handle)
}

func (h *GetProfileHandler) handle(ctx context.Context, _ *GetProfileInput) (*GetProfileOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.UserService.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, respond.Error(err, "failed to get profile")
	}

	return &GetProfileOutput{Body: respond.OK("", fromService(*user))}, nil
}
