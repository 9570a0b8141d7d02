package actions

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// UpdateTransaction applies a partial update to a ledger entry. When the
// category is reassigned, the new category must belong to the same owner
// and carry the transaction's type; the type itself never changes here.
type UpdateTransaction struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	Amount     omit.Val[decimal.Decimal]
	Note       omit.Val[string]
	Date       omit.Val[time.Time]
	CategoryID omit.Val[uuid.UUID]

	// Set by Perform on success.
	Result   *storage.Transaction
	Category *storage.Category
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, a.ID, a.OwnerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("transaction not found")
		}
		return err
	}

	update := storage.TransactionUpdate{
		Amount: a.Amount,
		Note:   a.Note,
		Date:   a.Date,
	}

	category := &storage.Category{
		ID:   existing.CategoryID,
		Name: existing.CategoryName,
		Type: existing.CategoryType,
	}

	if a.CategoryID.IsValue() && a.CategoryID.MustGet() != existing.CategoryID {
		newCategory, err := writer.Categories.FindByIDForUpdate(ctx, a.CategoryID.MustGet(), a.OwnerID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperr.NotFound("category not found or does not belong to user")
			}
			return err
		}
		if newCategory.Type != existing.Type {
			return apperr.Validation("categoryId", "category type does not match transaction type")
		}
		update.CategoryID = a.CategoryID
		category = newCategory
	}

	updated, err := writer.Transactions.Update(ctx, a.ID, a.OwnerID, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("transaction not found")
		}
		return err
	}

	a.Result = updated
	a.Category = category
	return nil
}
