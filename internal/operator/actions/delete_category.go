package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteCategory removes a category unless any transaction still
// references it. The reference count and the delete run in one store
// transaction so a concurrent ledger entry cannot slip in between.
type DeleteCategory struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
}

func (a *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Categories.FindByIDForUpdate(ctx, a.CategoryID, a.OwnerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("category not found")
		}
		return err
	}

	inUse, err := writer.Transactions.CountByCategory(ctx, a.CategoryID, a.OwnerID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.Conflict("category is in use and cannot be deleted")
	}

	return writer.Categories.Delete(ctx, a.CategoryID, a.OwnerID)
}
