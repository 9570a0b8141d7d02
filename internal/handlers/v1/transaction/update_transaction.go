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

// UpdateTransactionBody is the request body for updating a transaction.
// All fields are optional; absent fields are left unchanged. There is
// no type field: reassigning the category is the only way a type can
// change, and only to a category of the same type.
type UpdateTransactionBody struct {
	CategoryID *string `json:"categoryId,omitempty" doc:"New category UUID, must match the entry's type"`
	Amount     *string `json:"amount,omitempty" doc:"New decimal amount, greater than zero"`
	Note       *string `json:"note,omitempty" doc:"New free-text note"`
	Date       *string `json:"date,omitempty" doc:"New calendar day, YYYY-MM-DD"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Body respond.Envelope[Transaction]
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	Update(ctx context.Context, id, ownerID uuid.UUID, input service.UpdateTransactionInput) (*service.TransactionView, error)
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Applies a partial update to a ledger entry.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseUpdateTransactionInput parses and validates the API input.
func parseUpdateTransactionInput(input *UpdateTransactionInput) (id uuid.UUID, update service.UpdateTransactionInput, err error) {
	id, err = uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, update, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	if input.Body.CategoryID != nil {
		categoryID, parseErr := uuid.FromString(*input.Body.CategoryID)
		if parseErr != nil {
			return uuid.Nil, update, huma.NewError(http.StatusBadRequest, "invalid categoryId", parseErr)
		}
		update.CategoryID.Set(categoryID)
	}
	if input.Body.Amount != nil {
		amount, parseErr := decimal.NewFromString(*input.Body.Amount)
		if parseErr != nil {
			return uuid.Nil, update, huma.NewError(http.StatusBadRequest, "invalid amount", parseErr)
		}
		update.Amount.Set(amount)
	}
	if input.Body.Note != nil {
		update.Note.Set(*input.Body.Note)
	}
	if input.Body.Date != nil {
		date, parseErr := service.ParseDate("date", *input.Body.Date)
		if parseErr != nil {
			return uuid.Nil, update, respond.Error(parseErr, "failed to update transaction")
		}
		update.Date.Set(date)
	}

	return id, update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	id, update, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	view, err := h.TransactionService.Update(ctx, id, ownerID, update)
	if err != nil {
		return nil, respond.Error(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Body: respond.OK("transaction updated", fromService(*view))}, nil
}
