package service

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// MonthlySummary is the owner's income/expense roll-up for one month.
type MonthlySummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// CategoryTotal is one group of a category breakdown.
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}

// TrendPoint is the total for one calendar day of a spending trend.
// Days without transactions are omitted, not zero-filled.
type TrendPoint struct {
	Day   string
	Total decimal.Decimal
}
