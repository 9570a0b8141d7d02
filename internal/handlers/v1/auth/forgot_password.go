package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
)

// ForgotPasswordBody is the request body for requesting a reset code.
type ForgotPasswordBody struct {
	Email string `json:"email" required:"true" format:"email" doc:"Account email"`
}

// ForgotPasswordInput is the Huma input for requesting a reset code.
type ForgotPasswordInput struct {
	Body ForgotPasswordBody
}

// ForgotPasswordOutput is the Huma output for requesting a reset code.
type ForgotPasswordOutput struct {
	Body respond.Envelope[struct{}]
}

// resetRequester is the interface for issuing reset codes.
type resetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// ForgotPasswordHandler handles POST /v1/auth/forgot-password.
type ForgotPasswordHandler struct {
	UserService resetRequester
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler.
func NewForgotPasswordHandler(svc resetRequester) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{UserService: svc}
}

// Register registers the forgot password endpoint with the Huma API.
func (h *ForgotPasswordHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "forgot-password",
		Method:      http.MethodPost,
		Path:        "/v1/auth/forgot-password",
		Summary:     "Forgot password",
		Description: "Issues a one-time reset code. Responds identically whether or not the email has an account.",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{"public": true},
	}, h.handle)
}

func (h *ForgotPasswordHandler) handle(ctx context.Context, input *ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	if err := h.UserService.RequestPasswordReset(ctx, input.Body.Email); err != nil {
		return nil, respond.Error(err, "failed to request password reset")
	}

	return &ForgotPasswordOutput{
		Body: respond.OK("if the account exists, a reset code has been sent", struct{}{}),
	}, nil
}
