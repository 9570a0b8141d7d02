package storage

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

// Session backs a bearer credential. Expiry is enforced at lookup time.
type Session struct {
	Token     string    `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// ISessionTable defines the interface for session storage operations.
//
//go:generate mockery --name ISessionTable
type ISessionTable interface {
	Insert(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	Find(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

var _ ISessionTable = (*SessionTable)(nil)

// SessionTable provides access to the sessions table.
type SessionTable struct {
	exec bob.Executor
}

// NewSessionTable creates a SessionTable on the given executor.
func NewSessionTable(exec bob.Executor) *SessionTable {
	return &SessionTable{exec: exec}
}

// Insert stores a new session token.
func (t *SessionTable) Insert(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	q := psql.Insert(
		im.Into("sessions", "token", "user_id", "expires_at"),
		im.Values(psql.Arg(token, userID, expiresAt)),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return mapError(err)
}

// Find retrieves a live session by token. Expired sessions are treated
// as absent.
func (t *SessionTable) Find(ctx context.Context, token string) (*Session, error) {
	q := psql.Select(
		sm.From("sessions"),
		sm.Where(psql.Quote("token").EQ(psql.Arg(token))),
		sm.Where(psql.Quote("expires_at").GT(psql.Arg(time.Now()))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Session]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

// Delete removes a session, logging the owner out.
func (t *SessionTable) Delete(ctx context.Context, token string) error {
	q := psql.Delete(
		dm.From("sessions"),
		dm.Where(psql.Quote("token").EQ(psql.Arg(token))),
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

// DeleteExpired removes sessions past their expiry.
func (t *SessionTable) DeleteExpired(ctx context.Context) (int64, error) {
	q := psql.Delete(
		dm.From("sessions"),
		dm.Where(psql.Quote("expires_at").LTE(psql.Arg(time.Now()))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}
