package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// EvaluateBudgetInput is the Huma input for evaluating a month's budget.
type EvaluateBudgetInput struct {
	Month string `path:"month" doc:"Month key, YYYY-MM"`
}

// EvaluateBudgetOutput is the Huma output for evaluating a month's budget.
type EvaluateBudgetOutput struct {
	Body respond.Envelope[Evaluation]
}

// budgetEvaluator is the interface for evaluating monthly budgets.
type budgetEvaluator interface {
	Evaluate(ctx context.Context, ownerID uuid.UUID, monthKey string) (*service.BudgetEvaluation, error)
}

// EvaluateBudgetHandler handles GET /v1/budget/{month}/evaluation.
type EvaluateBudgetHandler struct {
	BudgetService budgetEvaluator
}

// NewEvaluateBudgetHandler creates a new EvaluateBudgetHandler.
func NewEvaluateBudgetHandler(svc budgetEvaluator) *EvaluateBudgetHandler {
	return &EvaluateBudgetHandler{BudgetService: svc}
}

// Register registers the evaluate budget endpoint with the Huma API.
func (h *EvaluateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "evaluate-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{month}/evaluation",
		Summary:     "Evaluate monthly budget",
		Description: "Compares the month's expense total against the stored limit and classifies the alert level.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *EvaluateBudgetHandler) handle(ctx context.Context, input *EvaluateBudgetInput) (*EvaluateBudgetOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("evaluateBudgetMs")
	}
	evaluation, err := h.BudgetService.Evaluate(ctx, ownerID, input.Month)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to evaluate budget")
	}

	if logData != nil {
		logData.AddData("alertLevel", string(evaluation.Level))
	}

	return &EvaluateBudgetOutput{Body: respond.OK("", evaluationFromService(*evaluation))}, nil
}
