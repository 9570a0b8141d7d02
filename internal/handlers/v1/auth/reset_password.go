package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
)

// ResetPasswordBody is the request body for completing a password reset.
type ResetPasswordBody struct {
	Email       string `json:"email" required:"true" format:"email" doc:"Account email"`
	OTP         string `json:"otp" required:"true" minLength:"6" maxLength:"6" doc:"Six-digit reset code"`
	NewPassword string `json:"newPassword" required:"true" minLength:"8" doc:"New plaintext password"`
}

// ResetPasswordInput is the Huma input for completing a password reset.
type ResetPasswordInput struct {
	Body ResetPasswordBody
}

// ResetPasswordOutput is the Huma output for completing a password reset.
type ResetPasswordOutput struct {
	Body respond.Envelope[struct{}]
}

// passwordResetter is the interface for completing password resets.
type passwordResetter interface {
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// ResetPasswordHandler handles POST /v1/auth/reset-password.
type ResetPasswordHandler struct {
	UserService passwordResetter
}

// NewResetPasswordHandler creates a new ResetPasswordHandler.
func NewResetPasswordHandler(svc passwordResetter) *ResetPasswordHandler {
	return &ResetPasswordHandler{UserService: svc}
}

// Register registers the reset password endpoint with the Huma API.
func (h *ResetPasswordHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reset-password",
		Method:      http.MethodPost,
		Path:        "/v1/auth/reset-password",
		Summary:     "Reset password",
		Description: "Sets a new password when the reset code matches and has not expired.",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{"public": true},
	}, h.handle)
}

func (h *ResetPasswordHandler) handle(ctx context.Context, input *ResetPasswordInput) (*ResetPasswordOutput, error) {
	err := h.UserService.ResetPassword(ctx, input.Body.Email, input.Body.OTP, input.Body.NewPassword)
	if err != nil {
		return nil, respond.Error(err, "failed to reset password")
	}

	return &ResetPasswordOutput{Body: respond.OK("password updated", struct{}{})}, nil
}
