package storage

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// User represents a user record. Emails are stored lowercased; the unique
// index makes registration races surface as ErrUniqueViolation.
type User struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	OTP          *string    `db:"otp"`
	OTPExpiresAt *time.Time `db:"otp_expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// IUserTable defines the interface for user storage operations.
//
//go:generate mockery --name IUserTable
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error
}

var _ IUserTable = (*UserTable)(nil)

// UserTable provides access to the users table.
type UserTable struct {
	exec bob.Executor
}

// NewUserTable creates a UserTable on the given executor.
func NewUserTable(exec bob.Executor) *UserTable {
	return &UserTable{exec: exec}
}

// FindByID retrieves a user by primary key.
func (t *UserTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := psql.Select(
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*User]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// FindByEmail retrieves a user by email, case-insensitively.
func (t *UserTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := psql.Select(
		sm.From("users"),
		sm.Where(psql.Quote("email").EQ(psql.Arg(strings.ToLower(email)))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*User]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// Insert creates a new user and returns the stored row.
func (t *UserTable) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	q := psql.Insert(
		im.Into("users", "email", "password_hash", "first_name", "last_name"),
		im.Values(psql.Arg(
			strings.ToLower(create.Email),
			create.PasswordHash,
			create.FirstName,
			create.LastName,
		)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*User]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// UpdateProfile rewrites the user's name and email.
func (t *UserTable) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, email string) error {
	q := psql.Update(
		um.Table("users"),
		um.SetCol("first_name").ToArg(firstName),
		um.SetCol("last_name").ToArg(lastName),
		um.SetCol("email").ToArg(strings.ToLower(email)),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
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

// UpdatePassword replaces the password hash and clears any pending OTP.
func (t *UserTable) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	q := psql.Update(
		um.Table("users"),
		um.SetCol("password_hash").ToArg(passwordHash),
		um.SetCol("otp").To(psql.Raw("NULL")),
		um.SetCol("otp_expires_at").To(psql.Raw("NULL")),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
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

// SetOTP stores a one-time passcode and its expiry for the reset flow.
func (t *UserTable) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	q := psql.Update(
		um.Table("users"),
		um.SetCol("otp").ToArg(otp),
		um.SetCol("otp_expires_at").ToArg(expiresAt),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
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
