package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func existingRow(ownerID, categoryID uuid.UUID, entryType string) *storage.TransactionRow {
	return &storage.TransactionRow{
		Transaction: storage.Transaction{
			ID:         uuid.Must(uuid.NewV4()),
			OwnerID:    ownerID,
			CategoryID: categoryID,
			Type:       entryType,
			Amount:     decimal.RequireFromString("25.00"),
			Date:       time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		CategoryName: "Groceries",
		CategoryType: entryType,
	}
}

func TestUpdateTransaction_AmountOnly(t *testing.T) {
	writer, _, transactions := newTestWriter()

	ownerID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	existing := existingRow(ownerID, categoryID, "expense")
	updated := &existing.Transaction

	transactions.On("FindByID", mock.Anything, existing.ID, ownerID).Return(existing, nil)
	transactions.On("Update", mock.Anything, existing.ID, ownerID, mock.MatchedBy(func(u storage.TransactionUpdate) bool {
		return u.Amount.IsValue() && !u.CategoryID.IsValue()
	})).Return(updated, nil)

	action := &UpdateTransaction{ID: existing.ID, OwnerID: ownerID}
	action.Amount.Set(decimal.RequireFromString("40.00"))

	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	assert.Equal(t, updated, action.Result)
	assert.Equal(t, categoryID, action.Category.ID)
}

func TestUpdateTransaction_ReassignSameTypeCategory(t *testing.T) {
	writer, categories, transactions := newTestWriter()

	ownerID := uuid.Must(uuid.NewV4())
	oldCategory := uuid.Must(uuid.NewV4())
	newCategoryID := uuid.Must(uuid.NewV4())
	existing := existingRow(ownerID, oldCategory, "expense")
	newCategory := &storage.Category{ID: newCategoryID, OwnerID: ownerID, Name: "Dining", Type: "expense"}

	transactions.On("FindByID", mock.Anything, existing.ID, ownerID).Return(existing, nil)
	categories.On("FindByIDForUpdate", mock.Anything, newCategoryID, ownerID).Return(newCategory, nil)
	transactions.On("Update", mock.Anything, existing.ID, ownerID, mock.MatchedBy(func(u storage.TransactionUpdate) bool {
		return u.CategoryID.IsValue() && u.CategoryID.MustGet() == newCategoryID
	})).Return(&existing.Transaction, nil)

	action := &UpdateTransaction{ID: existing.ID, OwnerID: ownerID}
	action.CategoryID.Set(newCategoryID)

	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	assert.Equal(t, newCategory, action.Category)
}

func TestUpdateTransaction_ReassignTypeMismatch(t *testing.T) {
	writer, categories, transactions := newTestWriter()

	ownerID := uuid.Must(uuid.NewV4())
	newCategoryID := uuid.Must(uuid.NewV4())
	existing := existingRow(ownerID, uuid.Must(uuid.NewV4()), "expense")
	incomeCategory := &storage.Category{ID: newCategoryID, OwnerID: ownerID, Name: "Salary", Type: "income"}

	transactions.On("FindByID", mock.Anything, existing.ID, ownerID).Return(existing, nil)
	categories.On("FindByIDForUpdate", mock.Anything, newCategoryID, ownerID).Return(incomeCategory, nil)

	action := &UpdateTransaction{ID: existing.ID, OwnerID: ownerID}
	action.CategoryID.Set(newCategoryID)

	err := action.Perform(context.Background(), writer)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	transactions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTransaction_CrossOwnerLooksAbsent(t *testing.T) {
	writer, _, transactions := newTestWriter()

	transactions.On("FindByID", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, storage.ErrNotFound)

	action := &UpdateTransaction{ID: uuid.Must(uuid.NewV4()), OwnerID: uuid.Must(uuid.NewV4())}
	action.Note.Set("updated")

	err := action.Perform(context.Background(), writer)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
