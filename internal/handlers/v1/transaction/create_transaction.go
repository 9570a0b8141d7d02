package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
// There is no type field: the entry's type always comes from the
// category it is recorded against.
type CreateTransactionBody struct {
	CategoryID string `json:"categoryId" required:"true" doc:"Category UUID"`
	Amount     string `json:"amount" required:"true" doc:"Decimal amount, greater than zero"`
	Note       string `json:"note,omitempty" doc:"Free-text note"`
	Date       string `json:"date" required:"true" doc:"Calendar day, YYYY-MM-DD"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   respond.Envelope[Transaction]
}

// transactionCreator is the interface for recording ledger entries.
type transactionCreator interface {
	Create(ctx context.Context, ownerID uuid.UUID, input service.CreateTransactionInput) (*service.TransactionView, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Records a ledger entry against one of the authenticated user's categories.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.CreateTransactionInput, error) {
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	date, err := service.ParseDate("date", input.Body.Date)
	if err != nil {
		return service.CreateTransactionInput{}, respond.Error(err, "failed to create transaction")
	}

	return service.CreateTransactionInput{
		CategoryID: categoryID,
		Amount:     amount,
		Note:       input.Body.Note,
		Date:       date,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	view, err := h.TransactionService.Create(ctx, ownerID, create)
	if err != nil {
		return nil, respond.Error(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   respond.OK("transaction created", fromService(*view)),
	}, nil
}
