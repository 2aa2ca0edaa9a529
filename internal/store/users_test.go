package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersCreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Users().Create(ctx, "bob", "bob@mail.com", "$argon2id$hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	t.Run("by username", func(t *testing.T) {
		got, err := st.Users().GetByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "bob@mail.com", got.Email)
		assert.Equal(t, "$argon2id$hash", got.PasswordHash)
	})

	t.Run("by id", func(t *testing.T) {
		got, err := st.Users().GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Username)
	})
}

func TestUsersGetMissing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Users().GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsersUsernameIsUnique(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().Create(ctx, "bob", "bob@mail.com", "hash")
	require.NoError(t, err)

	_, err = st.Users().Create(ctx, "bob", "other@mail.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUsersLookupIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().Create(ctx, "bob", "bob@mail.com", "hash")
	require.NoError(t, err)

	_, err = st.Users().GetByUsername(ctx, "Bob")
	assert.ErrorIs(t, err, ErrNotFound)
}
