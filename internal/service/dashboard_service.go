package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DashboardService is the aggregation engine. Every operation is a pure
// read over the owner's transactions, recomputed per call; there is no
// cached roll-up to invalidate.
type DashboardService struct {
	storage *storage.Storage
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store *storage.Storage) *DashboardService {
	return &DashboardService{storage: store}
}

// monthTransactions lists the owner's transactions inside the month
// window, optionally narrowed to one type.
func (s *DashboardService) monthTransactions(ctx context.Context, ownerID uuid.UUID, monthKey string, entryType *EntryType) ([]*storage.TransactionRow, error) {
	start, end, err := MonthWindow(monthKey)
	if err != nil {
		return nil, err
	}

	// The storage filter is inclusive on both ends; the window is
	// half-open, so the upper bound is the month's last day.
	lastDay := end.AddDate(0, 0, -1)
	filter := &storage.TransactionFilter{
		OwnerID:  ownerID,
		DateFrom: &start,
		DateTo:   &lastDay,
	}
	if entryType != nil {
		v := entryTypeToStorage(*entryType)
		filter.Type = &v
	}
	return s.storage.Transactions.List(ctx, filter)
}

// MonthlySummary sums the owner's transactions for the month, split by
// type. A month with no transactions yields an all-zero summary.
func (s *DashboardService) MonthlySummary(ctx context.Context, ownerID uuid.UUID, monthKey string) (*MonthlySummary, error) {
	rows, err := s.monthTransactions(ctx, ownerID, monthKey, nil)
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for _, row := range rows {
		switch entryTypeFromStorage(row.Type) {
		case EntryTypeIncome:
			totalIncome = totalIncome.Add(row.Amount)
		case EntryTypeExpense:
			totalExpense = totalExpense.Add(row.Amount)
		}
	}

	return &MonthlySummary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome.Sub(totalExpense),
	}, nil
}

// CategoryBreakdown groups the month's transactions of one type by
// category. Categories without transactions in the window are omitted.
// Order is unspecified; callers sort if they need to.
func (s *DashboardService) CategoryBreakdown(ctx context.Context, ownerID uuid.UUID, monthKey string, entryType EntryType) ([]CategoryTotal, error) {
	rows, err := s.monthTransactions(ctx, ownerID, monthKey, &entryType)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*CategoryTotal)
	for _, row := range rows {
		group, ok := totals[row.CategoryID]
		if !ok {
			group = &CategoryTotal{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				Total:        decimal.Zero,
			}
			totals[row.CategoryID] = group
		}
		group.Total = group.Total.Add(row.Amount)
	}

	breakdown := make([]CategoryTotal, 0, len(totals))
	for _, group := range totals {
		breakdown = append(breakdown, *group)
	}
	return breakdown, nil
}

// SpendingTrend groups transactions of one type by calendar day over an
// inclusive date range, sorted ascending by day. Days without
// transactions are omitted; callers needing a dense series fill gaps
// themselves.
func (s *DashboardService) SpendingTrend(ctx context.Context, ownerID uuid.UUID, startDate, endDate time.Time, entryType EntryType) ([]TrendPoint, error) {
	if endDate.Before(startDate) {
		return nil, apperr.Validation("endDate", "must not be before startDate")
	}

	typeFilter := entryTypeToStorage(entryType)
	rows, err := s.storage.Transactions.List(ctx, &storage.TransactionFilter{
		OwnerID:  ownerID,
		Type:     &typeFilter,
		DateFrom: &startDate,
		DateTo:   &endDate,
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		day := DayKey(row.Date)
		totals[day] = totals[day].Add(row.Amount)
	}

	trend := make([]TrendPoint, 0, len(totals))
	for day, total := range totals {
		trend = append(trend, TrendPoint{Day: day, Total: total})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Day < trend[j].Day })
	return trend, nil
}
