package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// LoginBody is the request body for logging in.
type LoginBody struct {
	Email    string `json:"email" required:"true" format:"email" doc:"Account email"`
	Password string `json:"password" required:"true" doc:"Plaintext password"`
}

// LoginInput is the Huma input for logging in.
type LoginInput struct {
	Body LoginBody
}

// LoginOutput is the Huma output for logging in.
type LoginOutput struct {
	Body respond.Envelope[Session]
}

// authenticator is the interface for verifying credentials.
type authenticator interface {
	Login(ctx context.Context, email, password string) (*service.AuthenticatedUser, error)
}

// LoginHandler handles POST /v1/auth/login.
type LoginHandler struct {
	UserService authenticator
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(svc authenticator) *LoginHandler {
	return &LoginHandler{UserService: svc}
}

// Register registers the login endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Login",
		Description: "Verifies credentials and mints a session token.",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{"public": true},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	authenticated, err := h.UserService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		// Bad credentials are 401 here, not the 403 used for
		// cross-owner access elsewhere.
		if apperr.KindOf(err) == apperr.KindForbidden {
			return nil, huma.NewError(http.StatusUnauthorized, "invalid email or password")
		}
		return nil, respond.Error(err, "failed to login")
	}

	return &LoginOutput{Body: respond.OK("logged in", sessionFromService(*authenticated))}, nil
}
