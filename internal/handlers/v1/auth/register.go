package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// RegisterBody is the request body for creating an account.
type RegisterBody struct {
	Email     string `json:"email" required:"true" format:"email" doc:"Account email"`
	Password  string `json:"password" required:"true" minLength:"8" doc:"Plaintext password"`
	FirstName string `json:"firstName" required:"true" doc:"First name"`
	LastName  string `json:"lastName" required:"true" doc:"Last name"`
}

// RegisterInput is the Huma input for creating an account.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterOutput is the Huma output for creating an account.
type RegisterOutput struct {
	Status int
	Body   respond.Envelope[Session]
}

// registrar is the interface for creating accounts.
type registrar interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*service.AuthenticatedUser, error)
}

// RegisterHandler handles POST /v1/auth/register.
type RegisterHandler struct {
	UserService registrar
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc registrar) *RegisterHandler {
	return &RegisterHandler{UserService: svc}
}

// Register registers the register endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/v1/auth/register",
		Summary:       "Register",
		Description:   "Creates an account and logs it in.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
		Metadata:      map[string]any{"public": true},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	authenticated, err := h.UserService.Register(ctx,
		input.Body.Email, input.Body.Password,
		input.Body.FirstName, input.Body.LastName,
	)
	if err != nil {
		return nil, respond.Error(err, "failed to register")
	}

	return &RegisterOutput{
		Status: http.StatusCreated,
		Body:   respond.OK("account created", sessionFromService(*authenticated)),
	}, nil
}
