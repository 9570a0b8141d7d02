package storage

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Category represents a category record.
type Category struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	OwnerID uuid.UUID
	Name    string
	Type    string
}

// CategoryUpdate carries the optional fields of a category update.
// Unset fields are left untouched.
type CategoryUpdate struct {
	Name omit.Val[string]
	Type omit.Val[string]
}

// ICategoryTable defines the interface for category storage operations.
//
//go:generate mockery --name ICategoryTable
type ICategoryTable interface {
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Category, error)
	FindByIDForUpdate(ctx context.Context, id, ownerID uuid.UUID) (*Category, error)
	FindByNameAndType(ctx context.Context, ownerID uuid.UUID, name, categoryType string) (*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	List(ctx context.Context, ownerID uuid.UUID, typeFilter *string) ([]*Category, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, update CategoryUpdate) (*Category, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

var _ ICategoryTable = (*CategoryTable)(nil)

// CategoryTable provides access to the categories table.
type CategoryTable struct {
	exec bob.Executor
}

// NewCategoryTable creates a CategoryTable on the given executor. The
// executor may be a plain DB or a transaction.
func NewCategoryTable(exec bob.Executor) *CategoryTable {
	return &CategoryTable{exec: exec}
}

func (t *CategoryTable) findByID(ctx context.Context, id, ownerID uuid.UUID, forUpdate bool) (*Category, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	}
	if forUpdate {
		mods = append(mods, sm.ForUpdate())
	}
	q := psql.Select(mods...)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// FindByID retrieves a category scoped to its owner.
func (t *CategoryTable) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Category, error) {
	return t.findByID(ctx, id, ownerID, false)
}

// FindByIDForUpdate retrieves a category with a row lock. Only valid
// inside a transaction; used to serialize type changes against concurrent
// transaction writes.
func (t *CategoryTable) FindByIDForUpdate(ctx context.Context, id, ownerID uuid.UUID) (*Category, error) {
	return t.findByID(ctx, id, ownerID, true)
}

// FindByNameAndType retrieves the category matching the unique
// (owner, name, type) triple.
func (t *CategoryTable) FindByNameAndType(ctx context.Context, ownerID uuid.UUID, name, categoryType string) (*Category, error) {
	q := psql.Select(
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(categoryType))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// Insert creates a new category and returns the stored row. A duplicate
// (owner, name, type) surfaces as ErrUniqueViolation.
func (t *CategoryTable) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	q := psql.Insert(
		im.Into("categories", "owner_id", "name", "type"),
		im.Values(psql.Arg(create.OwnerID, create.Name, create.Type)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// List returns the owner's categories ordered by name ascending,
// optionally filtered by type.
func (t *CategoryTable) List(ctx context.Context, ownerID uuid.UUID, typeFilter *string) ([]*Category, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	}
	if typeFilter != nil {
		mods = append(mods, sm.Where(psql.Quote("type").EQ(psql.Arg(*typeFilter))))
	}
	mods = append(mods,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	q := psql.Select(mods...)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}

// Update applies the set fields and returns the stored row.
func (t *CategoryTable) Update(ctx context.Context, id, ownerID uuid.UUID, update CategoryUpdate) (*Category, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("categories"),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Returning("*"),
	}
	if update.Name.IsValue() {
		mods = append(mods, um.SetCol("name").ToArg(update.Name.MustGet()))
	}
	if update.Type.IsValue() {
		mods = append(mods, um.SetCol("type").ToArg(update.Type.MustGet()))
	}
	q := psql.Update(mods...)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// Delete removes a category scoped to its owner.
func (t *CategoryTable) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	q := psql.Delete(
		dm.From("categories"),
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
