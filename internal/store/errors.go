package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("unique constraint violation")
	ErrForeignKey       = errors.New("foreign key violation")
	ErrConnectionFailed = errors.New("database connection failed")
)

// Error carries the operation and table an underlying database error came
// from.
type Error struct {
	Op    string // Operation that failed
	Table string // Table involved
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("store: %s", e.Op)}
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// mapError classifies driver errors into the sentinel errors above. Both
// backends are matched on message text: neither modernc.org/sqlite nor
// lib/pq exposes stable error codes without importing driver internals.
func mapError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	wrap := func(sentinel error) error {
		return &Error{Op: op, Table: table, Err: sentinel}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return wrap(ErrNotFound)
	}

	msg := err.Error()

	// sqlite: "UNIQUE constraint failed: users.username"
	// postgres: "duplicate key value violates unique constraint ..."
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") {
		return wrap(ErrDuplicate)
	}

	// sqlite: "FOREIGN KEY constraint failed"
	// postgres: "violates foreign key constraint ..."
	if strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") {
		return wrap(ErrForeignKey)
	}

	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") {
		return wrap(ErrConnectionFailed)
	}

	return &Error{Op: op, Table: table, Err: err}
}
