package budget

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Budget is the API response model for a monthly budget.
// It is used only for responses, not for request bodies.
type Budget struct {
	ID        string `json:"id" doc:"Budget UUID"`
	Month     string `json:"month" doc:"Month key, YYYY-MM"`
	Limit     string `json:"limit" doc:"Decimal spending limit"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last update time"`
}

// Evaluation is the API response model for a budget evaluation.
type Evaluation struct {
	Budget     Budget `json:"budget" doc:"The evaluated budget"`
	Spent      string `json:"spent" doc:"Decimal expense total for the month"`
	Percentage string `json:"percentage" doc:"Spend as a percentage of the limit"`
	Remaining  string `json:"remaining" doc:"Amount left under the limit, zero once exceeded"`
	ExceededBy string `json:"exceededBy" doc:"Amount over the limit, zero while under"`
	Level      string `json:"level" enum:"ok,info,warning,critical,exceeded" doc:"Alert level"`
}

func fromService(b service.Budget) Budget {
	return Budget{
		ID:        b.ID.String(),
		Month:     b.Month,
		Limit:     b.Limit.String(),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func evaluationFromService(e service.BudgetEvaluation) Evaluation {
	return Evaluation{
		Budget:     fromService(e.Budget),
		Spent:      e.Spent.String(),
		Percentage: e.Percentage.StringFixed(2),
		Remaining:  e.Remaining.String(),
		ExceededBy: e.ExceededBy.String(),
		Level:      string(e.Level),
	}
}
