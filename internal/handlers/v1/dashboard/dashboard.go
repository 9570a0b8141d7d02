package dashboard

import (
	"github.com/carson-networks/ledger-server/internal/service"
)

// Summary is the API response model for a monthly summary.
type Summary struct {
	TotalIncome  string `json:"totalIncome" doc:"Decimal income total for the month"`
	TotalExpense string `json:"totalExpense" doc:"Decimal expense total for the month"`
	Balance      string `json:"balance" doc:"Income minus expense, may be negative"`
}

// CategoryTotal is the API response model for one breakdown group.
type CategoryTotal struct {
	CategoryID   string `json:"categoryId" doc:"Category UUID"`
	CategoryName string `json:"categoryName" doc:"Category name"`
	Total        string `json:"total" doc:"Decimal total for the category"`
}

// TrendPoint is the API response model for one day of a spending trend.
type TrendPoint struct {
	Day   string `json:"day" doc:"Calendar day, YYYY-MM-DD"`
	Total string `json:"total" doc:"Decimal total for the day"`
}

func summaryFromService(s service.MonthlySummary) Summary {
	return Summary{
		TotalIncome:  s.TotalIncome.String(),
		TotalExpense: s.TotalExpense.String(),
		Balance:      s.Balance.String(),
	}
}
