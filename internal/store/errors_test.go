package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), ErrDuplicate},
		{"postgres unique", errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`), ErrDuplicate},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ErrForeignKey},
		{"postgres foreign key", errors.New(`pq: insert or update on table "todos" violates foreign key constraint "todos_user_id_fkey"`), ErrForeignKey},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), ErrConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "op", "table")
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, mapError(nil, "op", "table"))
}

func TestMapErrorPassthrough(t *testing.T) {
	cause := errors.New("disk I/O error")
	got := mapError(cause, "todos.create", "todos")

	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, ErrNotFound)
	assert.NotErrorIs(t, got, ErrDuplicate)
}

func TestErrorMessageIncludesOpAndTable(t *testing.T) {
	err := mapError(sql.ErrNoRows, "users.get_by_username", "users")

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "users.get_by_username", storeErr.Op)
	assert.Equal(t, "users", storeErr.Table)
	assert.Equal(t, "store: users.get_by_username: table=users: record not found", err.Error())
}
