package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// Budget represents a monthly spending limit in the service layer.
type Budget struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Month     string
	Limit     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AlertLevel classifies budget utilization for the alerting UI.
type AlertLevel string

const (
	AlertLevelOK       AlertLevel = "ok"
	AlertLevelInfo     AlertLevel = "info"     // >= 80%
	AlertLevelWarning  AlertLevel = "warning"  // >= 90%
	AlertLevelCritical AlertLevel = "critical" // >= 95%
	AlertLevelExceeded AlertLevel = "exceeded" // >= 100%
)

// BudgetEvaluation compares a month's spend against its stored limit.
type BudgetEvaluation struct {
	Budget     Budget
	Spent      decimal.Decimal
	Percentage decimal.Decimal
	Remaining  decimal.Decimal
	ExceededBy decimal.Decimal
	Level      AlertLevel
}

func budgetFromStorage(row *storage.Budget) Budget {
	return Budget{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Month:     row.Month,
		Limit:     row.Limit,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

var (
	hundred           = decimal.NewFromInt(100)
	infoThreshold     = decimal.NewFromInt(80)
	warningThreshold  = decimal.NewFromInt(90)
	criticalThreshold = decimal.NewFromInt(95)
)

// alertLevelFor maps a utilization percentage to its alert level.
func alertLevelFor(percentage decimal.Decimal) AlertLevel {
	switch {
	case percentage.GreaterThanOrEqual(hundred):
		return AlertLevelExceeded
	case percentage.GreaterThanOrEqual(criticalThreshold):
		return AlertLevelCritical
	case percentage.GreaterThanOrEqual(warningThreshold):
		return AlertLevelWarning
	case percentage.GreaterThanOrEqual(infoThreshold):
		return AlertLevelInfo
	}
	return AlertLevelOK
}
