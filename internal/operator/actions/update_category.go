package actions

import (
	"context"
	"errors"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// UpdateCategory renames a category and/or changes its type. A type
// change rewrites the type on every transaction referencing the category
// in the same store transaction, so the type-agreement invariant holds
// at commit or not at all.
type UpdateCategory struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID

	Name omit.Val[string]
	Type omit.Val[string]

	// Set by Perform on success.
	Result   *storage.Category
	Cascaded int64
}

func (a *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Categories.FindByIDForUpdate(ctx, a.CategoryID, a.OwnerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("category not found")
		}
		return err
	}

	updated, err := writer.Categories.Update(ctx, a.CategoryID, a.OwnerID, storage.CategoryUpdate{
		Name: a.Name,
		Type: a.Type,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUniqueViolation) {
			return apperr.Conflict("category already exists")
		}
		return err
	}

	if a.Type.IsValue() && a.Type.MustGet() != existing.Type {
		cascaded, err := writer.Transactions.RewriteTypeByCategory(ctx, a.CategoryID, a.OwnerID, a.Type.MustGet())
		if err != nil {
			// Surfacing the failure rolls back the category write too;
			// stale-type transactions must never persist.
			return err
		}
		a.Cascaded = cascaded
	}

	a.Result = updated
	return nil
}
