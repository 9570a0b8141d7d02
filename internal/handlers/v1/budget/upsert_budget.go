package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// UpsertBudgetBody is the request body for setting a monthly budget.
type UpsertBudgetBody struct {
	Month string `json:"month" required:"true" doc:"Month key, YYYY-MM"`
	Limit string `json:"limit" required:"true" doc:"Decimal spending limit, greater than zero"`
}

// UpsertBudgetInput is the Huma input for setting a monthly budget.
type UpsertBudgetInput struct {
	Body UpsertBudgetBody
}

// UpsertBudgetOutput is the Huma output for setting a monthly budget.
type UpsertBudgetOutput struct {
	Body respond.Envelope[Budget]
}

// budgetUpserter is the interface for setting monthly budgets.
type budgetUpserter interface {
	Upsert(ctx context.Context, ownerID uuid.UUID, monthKey string, limit decimal.Decimal) (*service.Budget, error)
}

// UpsertBudgetHandler handles PUT /v1/budget.
type UpsertBudgetHandler struct {
	BudgetService budgetUpserter
}

// NewUpsertBudgetHandler creates a new UpsertBudgetHandler.
func NewUpsertBudgetHandler(svc budgetUpserter) *UpsertBudgetHandler {
	return &UpsertBudgetHandler{BudgetService: svc}
}

// Register registers the upsert budget endpoint with the Huma API.
func (h *UpsertBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set monthly budget",
		Description: "Creates or overwrites the authenticated user's budget for a month.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *UpsertBudgetHandler) handle(ctx context.Context, input *UpsertBudgetInput) (*UpsertBudgetOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	limit, err := decimal.NewFromString(input.Body.Limit)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid limit", err)
	}

	budget, err := h.BudgetService.Upsert(ctx, ownerID, input.Body.Month, limit)
	if err != nil {
		return nil, respond.Error(err, "failed to set budget")
	}

	return &UpsertBudgetOutput{Body: respond.OK("budget saved", fromService(*budget))}, nil
}
