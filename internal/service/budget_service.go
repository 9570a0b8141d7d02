package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// BudgetService stores monthly limits and evaluates spend against them.
type BudgetService struct {
	storage   *storage.Storage
	dashboard *DashboardService
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store *storage.Storage, dashboard *DashboardService) *BudgetService {
	return &BudgetService{storage: store, dashboard: dashboard}
}

// Upsert inserts or overwrites the owner's budget for a month. At most
// one budget exists per (owner, month); the second writer of a race
// overwrites rather than errors.
func (s *BudgetService) Upsert(ctx context.Context, ownerID uuid.UUID, monthKey string, limit decimal.Decimal) (*Budget, error) {
	if _, _, err := MonthWindow(monthKey); err != nil {
		return nil, err
	}
	if !limit.IsPositive() {
		return nil, apperr.Validation("limit", "must be greater than zero")
	}

	row, err := s.storage.Budgets.Upsert(ctx, &storage.BudgetUpsert{
		OwnerID: ownerID,
		Month:   monthKey,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	budget := budgetFromStorage(row)
	return &budget, nil
}

// GetForMonth returns the owner's budget for a month, or nil when none
// is set. Absence is a normal state, not an error.
func (s *BudgetService) GetForMonth(ctx context.Context, ownerID uuid.UUID, monthKey string) (*Budget, error) {
	if _, _, err := MonthWindow(monthKey); err != nil {
		return nil, err
	}

	row, err := s.storage.Budgets.FindByMonth(ctx, ownerID, monthKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	budget := budgetFromStorage(row)
	return &budget, nil
}

// Evaluate compares the month's expense total against the stored limit.
// Callers should check budget presence via GetForMonth first; evaluating
// a month without a budget fails with NotFound.
func (s *BudgetService) Evaluate(ctx context.Context, ownerID uuid.UUID, monthKey string) (*BudgetEvaluation, error) {
	budget, err := s.GetForMonth(ctx, ownerID, monthKey)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, apperr.NotFound("no budget set for month")
	}

	summary, err := s.dashboard.MonthlySummary(ctx, ownerID, monthKey)
	if err != nil {
		return nil, err
	}

	spent := summary.TotalExpense
	percentage := spent.Div(budget.Limit).Mul(hundred)

	remaining := decimal.Zero
	exceededBy := decimal.Zero
	if budget.Limit.GreaterThan(spent) {
		remaining = budget.Limit.Sub(spent)
	} else {
		exceededBy = spent.Sub(budget.Limit)
	}

	return &BudgetEvaluation{
		Budget:     *budget,
		Spent:      spent,
		Percentage: percentage,
		Remaining:  remaining,
		ExceededBy: exceededBy,
		Level:      alertLevelFor(percentage),
	}, nil
}

// Delete removes a budget scoped to its owner.
func (s *BudgetService) Delete(ctx context.Context, ownerID, budgetID uuid.UUID) error {
	err := s.storage.Budgets.Delete(ctx, budgetID, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("budget not found")
	}
	return err
}
