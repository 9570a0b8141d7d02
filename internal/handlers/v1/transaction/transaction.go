package transaction

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Transaction is the API response model for a ledger entry.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction UUID"`
	CategoryID   string `json:"categoryId" doc:"Category UUID"`
	CategoryName string `json:"categoryName" doc:"Name of the owning category"`
	Type         string `json:"type" enum:"expense,income" doc:"Entry type, always the owning category's type"`
	Amount       string `json:"amount" doc:"Decimal amount"`
	Note         string `json:"note,omitempty" doc:"Free-text note"`
	Date         string `json:"date" doc:"Calendar day, YYYY-MM-DD"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(view service.TransactionView) Transaction {
	return Transaction{
		ID:           view.ID.String(),
		CategoryID:   view.CategoryID.String(),
		CategoryName: view.CategoryName,
		Type:         string(view.Type),
		Amount:       view.Amount.String(),
		Note:         view.Note,
		Date:         view.Date.Format(service.DateLayout),
		CreatedAt:    view.CreatedAt.Format(time.RFC3339),
	}
}
