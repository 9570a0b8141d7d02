package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// CategoryService enforces category consistency: uniqueness of the
// (owner, name, type) triple, the type-change cascade, and the in-use
// delete guard.
type CategoryService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage, op *operator.OperatorDelegator) *CategoryService {
	return &CategoryService{storage: store, operator: op}
}

// Create inserts a category for the owner. A duplicate (owner, name,
// type) triple fails with Conflict; the store's unique index serializes
// concurrent duplicates.
func (s *CategoryService) Create(ctx context.Context, ownerID uuid.UUID, name string, entryType EntryType) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}

	row, err := s.storage.Categories.Insert(ctx, &storage.CategoryCreate{
		OwnerID: ownerID,
		Name:    name,
		Type:    entryTypeToStorage(entryType),
	})
	if err != nil {
		if errors.Is(err, storage.ErrUniqueViolation) {
			return nil, apperr.Conflict("category already exists")
		}
		return nil, err
	}

	category := categoryFromStorage(row)
	return &category, nil
}

// List returns the owner's categories ordered by name ascending,
// optionally filtered by type.
func (s *CategoryService) List(ctx context.Context, ownerID uuid.UUID, typeFilter *EntryType) ([]Category, error) {
	var storageFilter *string
	if typeFilter != nil {
		v := entryTypeToStorage(*typeFilter)
		storageFilter = &v
	}

	rows, err := s.storage.Categories.List(ctx, ownerID, storageFilter)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromStorage(row)
	}
	return categories, nil
}

// Update renames and/or retypes a category. A type change cascades to
// every transaction referencing the category inside one store
// transaction, so readers never observe a stale-type transaction.
func (s *CategoryService) Update(ctx context.Context, ownerID, categoryID uuid.UUID, input CategoryUpdateInput) (*Category, error) {
	if !input.Name.IsValue() && !input.Type.IsValue() {
		return nil, apperr.Validation("body", "nothing to update")
	}

	action := &actions.UpdateCategory{
		OwnerID:    ownerID,
		CategoryID: categoryID,
	}
	if input.Name.IsValue() {
		name := strings.TrimSpace(input.Name.MustGet())
		if name == "" {
			return nil, apperr.Validation("name", "must not be empty")
		}
		action.Name.Set(name)
	}
	if input.Type.IsValue() {
		action.Type.Set(entryTypeToStorage(input.Type.MustGet()))
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	category := categoryFromStorage(action.Result)
	return &category, nil
}

// Remove deletes a category unless it is still referenced by any
// transaction, in which case it fails with Conflict.
func (s *CategoryService) Remove(ctx context.Context, ownerID, categoryID uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteCategory{
		OwnerID:    ownerID,
		CategoryID: categoryID,
	})
}

// FindOrCreate returns the category matching (owner, name, type),
// creating it when absent. This is the explicit opt-in convenience for
// clients that enter transactions against free-text category names; the
// ledger itself never auto-creates.
func (s *CategoryService) FindOrCreate(ctx context.Context, ownerID uuid.UUID, name string, entryType EntryType) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}

	row, err := s.storage.Categories.FindByNameAndType(ctx, ownerID, name, entryTypeToStorage(entryType))
	if err == nil {
		category := categoryFromStorage(row)
		return &category, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	created, err := s.Create(ctx, ownerID, name, entryType)
	if err == nil {
		return created, nil
	}
	// Lost a creation race: the winner's row is the one we wanted.
	if apperr.KindOf(err) == apperr.KindConflict {
		row, findErr := s.storage.Categories.FindByNameAndType(ctx, ownerID, name, entryTypeToStorage(entryType))
		if findErr != nil {
			return nil, findErr
		}
		category := categoryFromStorage(row)
		return &category, nil
	}
	return nil, err
}
