package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// TransactionView is the read model for ledger entries. Category name
// and type are always joined in at the query boundary, never stored on
// the transaction itself.
type TransactionView struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	CategoryType EntryType
	Type         EntryType
	Amount       decimal.Decimal
	Note         string
	Date         time.Time
	CreatedAt    time.Time
}

// CreateTransactionInput is the input for recording a ledger entry. The
// type is derived from the category and deliberately absent here.
type CreateTransactionInput struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Note       string
	Date       time.Time
}

// UpdateTransactionInput carries the optional fields of a partial update.
type UpdateTransactionInput struct {
	Amount     omit.Val[decimal.Decimal]
	Note       omit.Val[string]
	Date       omit.Val[time.Time]
	CategoryID omit.Val[uuid.UUID]
}

// TransactionFilters narrows a ledger listing. The date range is
// inclusive on both ends.
type TransactionFilters struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *EntryType
	CategoryID *uuid.UUID
}

func transactionViewFromRow(row *storage.TransactionRow) TransactionView {
	return TransactionView{
		ID:           row.ID,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		CategoryType: entryTypeFromStorage(row.CategoryType),
		Type:         entryTypeFromStorage(row.Type),
		Amount:       row.Amount,
		Note:         row.Note,
		Date:         row.Date,
		CreatedAt:    row.CreatedAt,
	}
}

func transactionViewFromParts(tx *storage.Transaction, category *storage.Category) TransactionView {
	return TransactionView{
		ID:           tx.ID,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		CategoryType: entryTypeFromStorage(category.Type),
		Type:         entryTypeFromStorage(tx.Type),
		Amount:       tx.Amount,
		Note:         tx.Note,
		Date:         tx.Date,
		CreatedAt:    tx.CreatedAt,
	}
}
