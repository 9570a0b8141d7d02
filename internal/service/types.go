package service

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/apperr"
)

// EntryType is the direction of a category or transaction.
type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeIncome  EntryType = "income"
)

const (
	// DateLayout is the wire format for calendar days.
	DateLayout = "2006-01-02"
	// MonthLayout is the wire format for month keys, e.g. "2025-03".
	MonthLayout = "2006-01"
)

// ParseEntryType validates a client-supplied type string.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryTypeExpense, EntryTypeIncome:
		return EntryType(s), nil
	}
	return "", apperr.Validation("type", `must be "expense" or "income"`)
}

func entryTypeToStorage(t EntryType) string {
	return string(t)
}

func entryTypeFromStorage(s string) EntryType {
	return EntryType(s)
}

// MonthWindow computes the half-open window [firstDay, firstDayOfNext)
// for a month key. All aggregation is bucketed against this window.
func MonthWindow(monthKey string) (start, end time.Time, err error) {
	t, parseErr := time.Parse(MonthLayout, monthKey)
	if parseErr != nil {
		return time.Time{}, time.Time{}, apperr.Validation("month", `must be formatted "YYYY-MM"`)
	}
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// ParseDate validates a client-supplied calendar day.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Validation(field, `must be formatted "YYYY-MM-DD"`)
	}
	return t, nil
}

// DayKey buckets a timestamp to its calendar day, ignoring time of day.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}
