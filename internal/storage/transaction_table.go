package storage

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Transaction represents a transaction record.
type Transaction struct {
	ID         uuid.UUID       `db:"id"`
	OwnerID    uuid.UUID       `db:"owner_id"`
	CategoryID uuid.UUID       `db:"category_id"`
	Type       string          `db:"type"`
	Amount     decimal.Decimal `db:"amount"`
	Note       string          `db:"note"`
	Date       time.Time       `db:"date"`
	CreatedAt  time.Time       `db:"created_at"`
}

// TransactionRow is a transaction joined with its category's name and
// type. It is the read model for all list and lookup responses.
type TransactionRow struct {
	Transaction
	CategoryName string `db:"category_name"`
	CategoryType string `db:"category_type"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
	Type       string
	Amount     decimal.Decimal
	Note       string
	Date       time.Time
}

// TransactionUpdate carries the optional fields of a transaction update.
// Unset fields are left untouched.
type TransactionUpdate struct {
	CategoryID omit.Val[uuid.UUID]
	Type       omit.Val[string]
	Amount     omit.Val[decimal.Decimal]
	Note       omit.Val[string]
	Date       omit.Val[time.Time]
}

// TransactionFilter specifies filters for listing transactions. OwnerID
// is required; the date range is inclusive on both ends.
type TransactionFilter struct {
	OwnerID    uuid.UUID
	CategoryID *uuid.UUID
	Type       *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
//
//go:generate mockery --name ITransactionTable
type ITransactionTable interface {
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*TransactionRow, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*TransactionRow, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, update TransactionUpdate) (*Transaction, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID, ownerID uuid.UUID) (int64, error)
	RewriteTypeByCategory(ctx context.Context, categoryID, ownerID uuid.UUID, newType string) (int64, error)
}

var _ ITransactionTable = (*TransactionTable)(nil)

// TransactionTable provides access to the transactions table.
type TransactionTable struct {
	exec bob.Executor
}

// NewTransactionTable creates a TransactionTable on the given executor.
func NewTransactionTable(exec bob.Executor) *TransactionTable {
	return &TransactionTable{exec: exec}
}

// joinedColumns selects transaction columns plus the denormalized
// category name and type for the read model.
func joinedColumns() []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.id",
			"t.owner_id",
			"t.category_id",
			"t.type",
			"t.amount",
			"t.note",
			"t.date",
			"t.created_at",
			"c.name AS category_name",
			"c.type AS category_type",
		),
		sm.From("transactions").As("t"),
		sm.InnerJoin("categories AS c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
	}
}

// FindByID retrieves a transaction scoped to its owner, with category
// info joined in.
func (t *TransactionTable) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*TransactionRow, error) {
	mods := joinedColumns()
	mods = append(mods,
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("t", "owner_id").EQ(psql.Arg(ownerID))),
	)
	q := psql.Select(mods...)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*TransactionRow]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// Insert creates a new transaction and returns the stored row.
func (t *TransactionTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	q := psql.Insert(
		im.Into("transactions", "owner_id", "category_id", "type", "amount", "note", "date"),
		im.Values(psql.Arg(
			create.OwnerID,
			create.CategoryID,
			create.Type,
			create.Amount,
			create.Note,
			create.Date,
		)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// List returns the owner's transactions matching all supplied filters,
// sorted by date descending then creation time descending.
func (t *TransactionTable) List(ctx context.Context, filter *TransactionFilter) ([]*TransactionRow, error) {
	mods := joinedColumns()
	mods = append(mods, sm.Where(psql.Quote("t", "owner_id").EQ(psql.Arg(filter.OwnerID))))
	if filter.CategoryID != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "category_id").EQ(psql.Arg(*filter.CategoryID))))
	}
	if filter.Type != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "type").EQ(psql.Arg(*filter.Type))))
	}
	if filter.DateFrom != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "date").GTE(psql.Arg(*filter.DateFrom))))
	}
	if filter.DateTo != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "date").LTE(psql.Arg(*filter.DateTo))))
	}
	mods = append(mods,
		sm.OrderBy(psql.Quote("t", "date")).Desc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
	)
	q := psql.Select(mods...)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*TransactionRow]())
	if err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}

// Update applies the set fields and returns the stored row.
func (t *TransactionTable) Update(ctx context.Context, id, ownerID uuid.UUID, update TransactionUpdate) (*Transaction, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Returning("*"),
	}
	if update.CategoryID.IsValue() {
		mods = append(mods, um.SetCol("category_id").ToArg(update.CategoryID.MustGet()))
	}
	if update.Type.IsValue() {
		mods = append(mods, um.SetCol("type").ToArg(update.Type.MustGet()))
	}
	if update.Amount.IsValue() {
		mods = append(mods, um.SetCol("amount").ToArg(update.Amount.MustGet()))
	}
	if update.Note.IsValue() {
		mods = append(mods, um.SetCol("note").ToArg(update.Note.MustGet()))
	}
	if update.Date.IsValue() {
		mods = append(mods, um.SetCol("date").ToArg(update.Date.MustGet()))
	}
	q := psql.Update(mods...)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// Delete removes a transaction scoped to its owner.
func (t *TransactionTable) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	q := psql.Delete(
		dm.From("transactions"),
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

// CountByCategory reports how many of the owner's transactions reference
// the category. Used by the in-use delete guard.
func (t *TransactionTable) CountByCategory(ctx context.Context, categoryID, ownerID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns(psql.F("count", "*")),
		sm.From("transactions"),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	count, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// RewriteTypeByCategory sets the type of every transaction referencing
// the category. This is the cascade half of a category type change and
// runs in the same store transaction as the category write.
func (t *TransactionTable) RewriteTypeByCategory(ctx context.Context, categoryID, ownerID uuid.UUID, newType string) (int64, error) {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("type").ToArg(newType),
		um.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}
