package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetBudgetInput is the Huma input for fetching a month's budget.
type GetBudgetInput struct {
	Month string `path:"month" doc:"Month key, YYYY-MM"`
}

// GetBudgetOutput is the Huma output for fetching a month's budget.
// Data is null when no budget is set; that is a normal state, not a 404.
type GetBudgetOutput struct {
	Body respond.Envelope[*Budget]
}

// budgetGetter is the interface for fetching monthly budgets.
type budgetGetter interface {
	GetForMonth(ctx context.Context, ownerID uuid.UUID, monthKey string) (*service.Budget, error)
}

// GetBudgetHandler handles GET /v1/budget/{month}.
type GetBudgetHandler struct {
	BudgetService budgetGetter
}

// NewGetBudgetHandler creates a new GetBudgetHandler.
func NewGetBudgetHandler(svc budgetGetter) *GetBudgetHandler {
	return &GetBudgetHandler{BudgetService: svc}
}

// Register registers the get budget endpoint with the Huma API.
func (h *GetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{month}",
		Summary:     "Get monthly budget",
		Description: "Returns the authenticated user's budget for a month, or null data when none is set.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *GetBudgetHandler) handle(ctx context.Context, input *GetBudgetInput) (*GetBudgetOutput, error) {
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}

	budget, err := h.BudgetService.GetForMonth(ctx, ownerID, input.Month)
	if err != nil {
		return nil, respond.Error(err, "failed to get budget")
	}

	if budget == nil {
		return &GetBudgetOutput{Body: respond.OK[*Budget]("no budget set for month", nil)}, nil
	}
	resp := fromService(*budget)
	return &GetBudgetOutput{Body: respond.OK("", &resp)}, nil
}
