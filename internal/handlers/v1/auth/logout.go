package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
)

// LogoutInput is the Huma input for logging out.
type LogoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token to invalidate"`
}

// LogoutOutput is the Huma output for logging out.
type LogoutOutput struct {
	Body respond.Envelope[struct{}]
}

// sessionEnder is the interface for invalidating sessions.
type sessionEnder interface {
	Logout(ctx context.Context, token string) error
}

// LogoutHandler handles POST /v1/auth/logout.
type LogoutHandler struct {
	UserService sessionEnder
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(svc sessionEnder) *LogoutHandler {
	return &LogoutHandler{UserService: svc}
}

// Register registers the logout endpoint with the Huma API.
func (h *LogoutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/v1/auth/logout",
		Summary:     "Logout",
		Description: "Invalidates the presented session token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LogoutHandler) handle(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	token := strings.TrimPrefix(input.Authorization, "Bearer ")
	if token == "" {
		return nil, huma.NewError(http.StatusBadRequest, "missing bearer token")
	}

	if err := h.UserService.Logout(ctx, token); err != nil {
		return nil, respond.Error(err, "failed to logout")
	}

	return &LogoutOutput{Body: respond.OK("logged out", struct{}{})}, nil
}
