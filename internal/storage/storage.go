package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

// Storage bundles the entity tables behind their interfaces so services
// and tests can swap implementations.
type Storage struct {
	DB  *sql.DB
	bdb bob.DB

	Users        IUserTable
	Categories   ICategoryTable
	Transactions ITransactionTable
	Budgets      IBudgetTable
	Sessions     ISessionTable
}

// NewStorage opens the Postgres connection and wires the tables.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		return nil, err
	}

	bdb := bob.NewDB(db)

	return &Storage{
		DB:           db,
		bdb:          bdb,
		Users:        NewUserTable(bdb),
		Categories:   NewCategoryTable(bdb),
		Transactions: NewTransactionTable(bdb),
		Budgets:      NewBudgetTable(bdb),
		Sessions:     NewSessionTable(bdb),
	}, nil
}

// Write begins a transaction and returns a Writer scoped to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
