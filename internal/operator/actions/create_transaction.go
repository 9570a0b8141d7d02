package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// CreateTransaction records a ledger entry. The owning category is read
// under a row lock so the derived type cannot race a concurrent category
// type cascade. The transaction's type always comes from the category,
// never from client input.
type CreateTransaction struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Note       string
	Date       time.Time

	// Set by Perform on success.
	Result   *storage.Transaction
	Category *storage.Category
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	category, err := writer.Categories.FindByIDForUpdate(ctx, a.CategoryID, a.OwnerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("category not found or does not belong to user")
		}
		return err
	}

	created, err := writer.Transactions.Insert(ctx, &storage.TransactionCreate{
		OwnerID:    a.OwnerID,
		CategoryID: a.CategoryID,
		Type:       category.Type,
		Amount:     a.Amount,
		Note:       a.Note,
		Date:       a.Date,
	})
	if err != nil {
		return err
	}

	a.Result = created
	a.Category = category
	return nil
}
