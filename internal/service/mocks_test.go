package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/storage"
)

type mockCategoryTable struct {
	mock.Mock
}

func (m *mockCategoryTable) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*storage.Category, error) {
	args := m.Called(ctx, id, ownerID)
	row, _ := args.Get(0).(*storage.Category)
	return row, args.Error(1)
}

func (m *mockCategoryTable) FindByIDForUpdate(ctx context.Context, id, ownerID uuid.UUID) (*storage.Category, error) {
	args := m.Called(ctx, id, ownerID)
	row, _ := args.Get(0).(*storage.Category)
	return row, args.Error(1)
}

func (m *mockCategoryTable) FindByNameAndType(ctx context.Context, ownerID uuid.UUID, name, categoryType string) (*storage.Category, error) {
	args := m.Called(ctx, ownerID, name, categoryType)
	row, _ := args.Get(0).(*storage.Category)
	return row, args.Error(1)
}

func (m *mockCategoryTable) Insert(ctx context.Context, create *storage.CategoryCreate) (*storage.Category, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*storage.Category)
	return row, args.Error(1)
}

func (m *mockCategoryTable) List(ctx context.Context, ownerID uuid.UUID, typeFilter *string) ([]*storage.Category, error) {
	args := m.Called(ctx, ownerID, typeFilter)
	rows, _ := args.Get(0).([]*storage.Category)
	return rows, args.Error(1)
}

func (m *mockCategoryTable) Update(ctx context.Context, id, ownerID uuid.UUID, update storage.CategoryUpdate) (*storage.Category, error) {
	args := m.Called(ctx, id, ownerID, update)
	row, _ := args.Get(0).(*storage.Category)
	return row, args.Error(1)
}

func (m *mockCategoryTable) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*storage.TransactionRow, error) {
	args := m.Called(ctx, id, ownerID)
	row, _ := args.Get(0).(*storage.TransactionRow)
	return row, args.Error(1)
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *storage.TransactionCreate) (*storage.Transaction, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*storage.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *storage.TransactionFilter) ([]*storage.TransactionRow, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*storage.TransactionRow)
	return rows, args.Error(1)
}

func (m *mockTransactionTable) Update(ctx context.Context, id, ownerID uuid.UUID, update storage.TransactionUpdate) (*storage.Transaction, error) {
	args := m.Called(ctx, id, ownerID, update)
	row, _ := args.Get(0).(*storage.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *mockTransactionTable) CountByCategory(ctx context.Context, categoryID, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionTable) RewriteTypeByCategory(ctx context.Context, categoryID, ownerID uuid.UUID, newType string) (int64, error) {
	args := m.Called(ctx, categoryID, ownerID, newType)
	return args.Get(0).(int64), args.Error(1)
}

type mockBudgetTable struct {
	mock.Mock
}

func (m *mockBudgetTable) Upsert(ctx context.Context, upsert *storage.BudgetUpsert) (*storage.Budget, error) {
	args := m.Called(ctx, upsert)
	row, _ := args.Get(0).(*storage.Budget)
	return row, args.Error(1)
}

func (m *mockBudgetTable) FindByMonth(ctx context.Context, ownerID uuid.UUID, month string) (*storage.Budget, error) {
	args := m.Called(ctx, ownerID, month)
	row, _ := args.Get(0).(*storage.Budget)
	return row, args.Error(1)
}

func (m *mockBudgetTable) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type mockUserTable struct {
	mock.Mock
}

func (m *mockUserTable) FindByID(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*storage.User)
	return row, args.Error(1)
}

func (m *mockUserTable) FindByEmail(ctx context.Context, email string) (*storage.User, error) {
	args := m.Called(ctx, email)
	row, _ := args.Get(0).(*storage.User)
	return row, args.Error(1)
}

func (m *mockUserTable) Insert(ctx context.Context, create *storage.UserCreate) (*storage.User, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*storage.User)
	return row, args.Error(1)
}

func (m *mockUserTable) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, email string) error {
	args := m.Called(ctx, id, firstName, lastName, email)
	return args.Error(0)
}

func (m *mockUserTable) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserTable) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	args := m.Called(ctx, id, otp, expiresAt)
	return args.Error(0)
}

type mockSessionTable struct {
	mock.Mock
}

func (m *mockSessionTable) Insert(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	args := m.Called(ctx, token, userID, expiresAt)
	return args.Error(0)
}

func (m *mockSessionTable) Find(ctx context.Context, token string) (*storage.Session, error) {
	args := m.Called(ctx, token)
	row, _ := args.Get(0).(*storage.Session)
	return row, args.Error(1)
}

func (m *mockSessionTable) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockSessionTable) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
