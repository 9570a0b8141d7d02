package storage

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("storage: not found")
	// ErrUniqueViolation is returned when an insert or update breaks a
	// unique constraint. Callers map this to their Conflict error.
	ErrUniqueViolation = errors.New("storage: unique violation")
)

const pqUniqueViolation = "23505"

// mapError translates driver-level errors into the storage sentinels so
// callers never have to inspect pq internals.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrUniqueViolation
	}
	return err
}
