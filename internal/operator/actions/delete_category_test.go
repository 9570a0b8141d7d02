package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func TestDeleteCategory_Unreferenced(t *testing.T) {
	writer, categories, transactions := newTestWriter()

	ownerID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	existing := &storage.Category{ID: categoryID, OwnerID: ownerID, Name: "Old", Type: "expense"}

	categories.On("FindByIDForUpdate", mock.Anything, categoryID, ownerID).Return(existing, nil)
	transactions.On("CountByCategory", mock.Anything, categoryID, ownerID).Return(int64(0), nil)
	categories.On("Delete", mock.Anything, categoryID, ownerID).Return(nil)

	action := &DeleteCategory{OwnerID: ownerID, CategoryID: categoryID}
	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	categories.AssertExpectations(t)
}

func TestDeleteCategory_InUse(t *testing.T) {
	writer, categories, transactions := newTestWriter()

	ownerID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	existing := &storage.Category{ID: categoryID, OwnerID: ownerID, Name: "Groceries", Type: "expense"}

	categories.On("FindByIDForUpdate", mock.Anything, categoryID, ownerID).Return(existing, nil)
	transactions.On("CountByCategory", mock.Anything, categoryID, ownerID).Return(int64(3), nil)

	action := &DeleteCategory{OwnerID: ownerID, CategoryID: categoryID}
	err := action.Perform(context.Background(), writer)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	writer, categories, _ := newTestWriter()

	categories.On("FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, storage.ErrNotFound)

	action := &DeleteCategory{OwnerID: uuid.Must(uuid.NewV4()), CategoryID: uuid.Must(uuid.NewV4())}
	err := action.Perform(context.Background(), writer)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
