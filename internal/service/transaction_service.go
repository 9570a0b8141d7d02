package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// TransactionService is the ledger: it validates and records entries
// against an owning category and keeps the type-agreement invariant.
type TransactionService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op *operator.OperatorDelegator) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// Create records a ledger entry. The entry's type is always derived from
// the owning category; the category must belong to the owner.
func (s *TransactionService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTransactionInput) (*TransactionView, error) {
	if !input.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "must be greater than zero")
	}
	if input.Date.IsZero() {
		return nil, apperr.Validation("date", "is required")
	}

	action := &actions.CreateTransaction{
		OwnerID:    ownerID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Note:       input.Note,
		Date:       input.Date,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	view := transactionViewFromParts(action.Result, action.Category)
	return &view, nil
}

// List returns the owner's transactions matching all supplied filters,
// sorted by date descending then creation time descending.
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID, filters TransactionFilters) ([]TransactionView, error) {
	storageFilter := &storage.TransactionFilter{
		OwnerID:    ownerID,
		CategoryID: filters.CategoryID,
		DateFrom:   filters.StartDate,
		DateTo:     filters.EndDate,
	}
	if filters.Type != nil {
		v := entryTypeToStorage(*filters.Type)
		storageFilter.Type = &v
	}

	rows, err := s.storage.Transactions.List(ctx, storageFilter)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, len(rows))
	for i, row := range rows {
		views[i] = transactionViewFromRow(row)
	}
	return views, nil
}

// Update applies a partial update. Reassigning the category re-checks
// ownership and type agreement before anything is written.
func (s *TransactionService) Update(ctx context.Context, id, ownerID uuid.UUID, input UpdateTransactionInput) (*TransactionView, error) {
	if !input.Amount.IsValue() && !input.Note.IsValue() && !input.Date.IsValue() && !input.CategoryID.IsValue() {
		return nil, apperr.Validation("body", "nothing to update")
	}
	if input.Amount.IsValue() && !input.Amount.MustGet().IsPositive() {
		return nil, apperr.Validation("amount", "must be greater than zero")
	}

	action := &actions.UpdateTransaction{
		ID:         id,
		OwnerID:    ownerID,
		Amount:     input.Amount,
		Note:       input.Note,
		Date:       input.Date,
		CategoryID: input.CategoryID,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	view := transactionViewFromParts(action.Result, action.Category)
	return &view, nil
}

// Delete removes a ledger entry. Aggregates recompute lazily on the next
// query, so there is nothing to cascade.
func (s *TransactionService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	err := s.storage.Transactions.Delete(ctx, id, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("transaction not found")
	}
	return err
}
