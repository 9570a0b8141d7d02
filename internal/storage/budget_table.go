package storage

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

// Budget represents a budget record. (owner_id, month) is unique; writes
// go through Upsert so the second writer of a race overwrites rather
// than errors.
type Budget struct {
	ID        uuid.UUID       `db:"id"`
	OwnerID   uuid.UUID       `db:"owner_id"`
	Month     string          `db:"month"`
	Limit     decimal.Decimal `db:"limit_amount"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// BudgetUpsert is the input for creating or overwriting a budget.
type BudgetUpsert struct {
	OwnerID uuid.UUID
	Month   string
	Limit   decimal.Decimal
}

// IBudgetTable defines the interface for budget storage operations.
//
//go:generate mockery --name IBudgetTable
type IBudgetTable interface {
	Upsert(ctx context.Context, upsert *BudgetUpsert) (*Budget, error)
	FindByMonth(ctx context.Context, ownerID uuid.UUID, month string) (*Budget, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

var _ IBudgetTable = (*BudgetTable)(nil)

// BudgetTable provides access to the budgets table.
type BudgetTable struct {
	exec bob.Executor
}

// NewBudgetTable creates a BudgetTable on the given executor.
func NewBudgetTable(exec bob.Executor) *BudgetTable {
	return &BudgetTable{exec: exec}
}

// Upsert inserts the budget or, on an (owner_id, month) conflict,
// overwrites the limit. Returns the stored row either way.
func (t *BudgetTable) Upsert(ctx context.Context, upsert *BudgetUpsert) (*Budget, error) {
	q := psql.Insert(
		im.Into("budgets", "owner_id", "month", "limit_amount"),
		im.Values(psql.Arg(upsert.OwnerID, upsert.Month, upsert.Limit)),
		im.OnConflict("owner_id", "month").DoUpdate(
			im.SetExcluded("limit_amount", "updated_at"),
		),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Budget]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// FindByMonth retrieves the owner's budget for a month key.
func (t *BudgetTable) FindByMonth(ctx context.Context, ownerID uuid.UUID, month string) (*Budget, error) {
	q := psql.Select(
		sm.From("budgets"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("month").EQ(psql.Arg(month))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Budget]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// Delete removes a budget scoped to its owner.
func (t *BudgetTable) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	q := psql.Delete(
		dm.From("budgets"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
