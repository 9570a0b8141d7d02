package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

type mockTransactionCreator struct {
	mock.Mock
}

func (m *mockTransactionCreator) Create(ctx context.Context, ownerID uuid.UUID, input service.CreateTransactionInput) (*service.TransactionView, error) {
	args := m.Called(ctx, ownerID, input)
	view, _ := args.Get(0).(*service.TransactionView)
	return view, args.Error(1)
}

// ownerMiddleware injects a fixed owner ID the way the session
// middleware does in production.
func ownerMiddleware(ownerID uuid.UUID) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithOwner(ctx.Context(), ownerID)))
	}
}

func newCreateTestAPI(t *testing.T, ownerID uuid.UUID, svc transactionCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(ownerMiddleware(ownerID))
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

// -- parseCreateTransactionInput unit tests --

func TestParseCreateTransactionInput_Valid(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			CategoryID: categoryID.String(),
			Amount:     "42.50",
			Note:       "weekly shop",
			Date:       "2025-03-04",
		},
	}

	create, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, categoryID, create.CategoryID)
	assert.True(t, create.Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), create.Date)
}

func TestParseCreateTransactionInput_BadAmount(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			CategoryID: uuid.Must(uuid.NewV4()).String(),
			Amount:     "lots",
			Date:       "2025-03-04",
		},
	}

	_, err := parseCreateTransactionInput(input)
	assert.Error(t, err)
}

func TestParseCreateTransactionInput_BadDate(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			CategoryID: uuid.Must(uuid.NewV4()).String(),
			Amount:     "10.00",
			Date:       "04/03/2025",
		},
	}

	_, err := parseCreateTransactionInput(input)
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_CreateTransaction_TypeComesFromCategory(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	view := &service.TransactionView{
		ID:           uuid.Must(uuid.NewV4()),
		CategoryID:   categoryID,
		CategoryName: "Salary",
		CategoryType: service.EntryTypeIncome,
		Type:         service.EntryTypeIncome,
		Amount:       decimal.RequireFromString("3000.00"),
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	mockSvc := new(mockTransactionCreator)
	mockSvc.On("Create", mock.Anything, ownerID, mock.MatchedBy(func(input service.CreateTransactionInput) bool {
		return input.CategoryID == categoryID
	})).Return(view, nil)

	api := newCreateTestAPI(t, ownerID, mockSvc)
	resp := api.Post("/v1/transaction", map[string]any{
		"categoryId": categoryID.String(),
		"amount":     "3000.00",
		"date":       "2025-03-01",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body respond.Envelope[Transaction]
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "income", body.Data.Type)
	assert.Equal(t, "Salary", body.Data.CategoryName)
}

func TestHTTP_CreateTransaction_CategoryNotOwned(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionCreator)
	mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperr.NotFound("category not found or does not belong to user"))

	api := newCreateTestAPI(t, ownerID, mockSvc)
	resp := api.Post("/v1/transaction", map[string]any{
		"categoryId": uuid.Must(uuid.NewV4()).String(),
		"amount":     "10.00",
		"date":       "2025-03-01",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
