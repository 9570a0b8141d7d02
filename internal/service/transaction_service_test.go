package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func newTransactionTestService(t *testing.T) (*TransactionService, *mockTransactionTable) {
	t.Helper()
	mockTable := new(mockTransactionTable)
	store := &storage.Storage{Transactions: mockTable}
	return NewTransactionService(store, nil), mockTable
}

func makeTransactionRow(ownerID uuid.UUID, categoryName, entryType, amount string, date time.Time) *storage.TransactionRow {
	return &storage.TransactionRow{
		Transaction: storage.Transaction{
			ID:         uuid.Must(uuid.NewV4()),
			OwnerID:    ownerID,
			CategoryID: uuid.Must(uuid.NewV4()),
			Type:       entryType,
			Amount:     decimal.RequireFromString(amount),
			Date:       date,
			CreatedAt:  date,
		},
		CategoryName: categoryName,
		CategoryType: entryType,
	}
}

// -- Create validation tests --

func TestCreateTransaction_NonPositiveAmount(t *testing.T) {
	svc, _ := newTransactionTestService(t)

	_, err := svc.Create(context.Background(), uuid.Must(uuid.NewV4()), CreateTransactionInput{
		CategoryID: uuid.Must(uuid.NewV4()),
		Amount:     decimal.RequireFromString("-5.00"),
		Date:       time.Now(),
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateTransaction_ZeroAmount(t *testing.T) {
	svc, _ := newTransactionTestService(t)

	_, err := svc.Create(context.Background(), uuid.Must(uuid.NewV4()), CreateTransactionInput{
		CategoryID: uuid.Must(uuid.NewV4()),
		Amount:     decimal.Zero,
		Date:       time.Now(),
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateTransaction_MissingDate(t *testing.T) {
	svc, _ := newTransactionTestService(t)

	_, err := svc.Create(context.Background(), uuid.Must(uuid.NewV4()), CreateTransactionInput{
		CategoryID: uuid.Must(uuid.NewV4()),
		Amount:     decimal.RequireFromString("10.00"),
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

// -- List tests --

func TestListTransactions_MapsFilters(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)

	ownerID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	startDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	row := makeTransactionRow(ownerID, "Groceries", "expense", "80.00", startDate)

	mockTable.On("List", mock.Anything, mock.MatchedBy(func(f *storage.TransactionFilter) bool {
		return f.OwnerID == ownerID &&
			f.CategoryID != nil && *f.CategoryID == categoryID &&
			f.Type != nil && *f.Type == "expense" &&
			f.DateFrom != nil && f.DateFrom.Equal(startDate) &&
			f.DateTo != nil && f.DateTo.Equal(endDate)
	})).Return([]*storage.TransactionRow{row}, nil)

	expense := EntryTypeExpense
	views, err := svc.List(context.Background(), ownerID, TransactionFilters{
		StartDate:  &startDate,
		EndDate:    &endDate,
		Type:       &expense,
		CategoryID: &categoryID,
	})
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "Groceries", views[0].CategoryName)
	assert.Equal(t, EntryTypeExpense, views[0].Type)
	assert.True(t, views[0].Amount.Equal(decimal.RequireFromString("80.00")))
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)

	mockTable.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.List(context.Background(), uuid.Must(uuid.NewV4()), TransactionFilters{})
	assert.Error(t, err)
}

// -- Update validation tests --

func TestUpdateTransaction_NothingToUpdate(t *testing.T) {
	svc, _ := newTransactionTestService(t)

	_, err := svc.Update(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), UpdateTransactionInput{})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateTransaction_NonPositiveAmount(t *testing.T) {
	svc, _ := newTransactionTestService(t)

	var input UpdateTransactionInput
	input.Amount.Set(decimal.Zero)

	_, err := svc.Update(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), input)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

// -- Delete tests --

func TestDeleteTransaction_Success(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)

	id := uuid.Must(uuid.NewV4())
	ownerID := uuid.Must(uuid.NewV4())
	mockTable.On("Delete", mock.Anything, id, ownerID).Return(nil)

	err := svc.Delete(context.Background(), id, ownerID)
	assert.NoError(t, err)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)

	mockTable.On("Delete", mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ErrNotFound)

	err := svc.Delete(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
