package storage

import (
	"context"

	"github.com/stephenafamo/bob"
)

// Writer exposes the tables bound to a single store transaction. Every
// multi-record mutation (category type cascade, in-use delete guard,
// transaction create against a locked category) goes through a Writer so
// the writes commit or roll back together.
type Writer struct {
	tx bob.Tx

	Categories   ICategoryTable
	Transactions ITransactionTable
}

// NewWriter binds the mutable tables to the given transaction.
func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Categories:   NewCategoryTable(tx),
		Transactions: NewTransactionTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
