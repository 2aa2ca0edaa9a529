package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/tudu/internal/domain"
)

func seedUser(t *testing.T, st *Store, username string) domain.User {
	t.Helper()
	u, err := st.Users().Create(context.Background(), username, username+"@mail.com", "hash")
	require.NoError(t, err)
	return u
}

func TestTodosCreateDefaultsToNotDone(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")

	todo, err := st.Todos().Create(ctx, bob.ID, "Wash dishes")
	require.NoError(t, err)
	assert.NotZero(t, todo.ID)
	assert.False(t, todo.Done)

	got, err := st.Todos().GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wash dishes", got.Text)
	assert.Equal(t, bob.ID, got.UserID)
	assert.False(t, got.Done)
}

func TestToggleTwiceRestoresOriginalState(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")

	todo, err := st.Todos().Create(ctx, bob.ID, "Wash dishes")
	require.NoError(t, err)

	toggle := func() bool {
		cur, err := st.Todos().GetByID(ctx, todo.ID)
		require.NoError(t, err)
		require.NoError(t, st.Todos().SetDone(ctx, todo.ID, !cur.Done))
		return !cur.Done
	}

	assert.True(t, toggle())
	assert.False(t, toggle())

	got, err := st.Todos().GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, got.Done)
}

func TestSetDoneMissingTodo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	err := st.Todos().SetDone(ctx, 42, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDForOwnerScopesToOwner(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")
	alice := seedUser(t, st, "alice")

	todo, err := st.Todos().Create(ctx, bob.ID, "Wash dishes")
	require.NoError(t, err)

	_, err = st.Todos().GetByIDForOwner(ctx, todo.ID, bob.ID)
	require.NoError(t, err)

	_, err = st.Todos().GetByIDForOwner(ctx, todo.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAllJoinsOwnerAndOrdersByID(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")
	alice := seedUser(t, st, "alice")

	first, err := st.Todos().Create(ctx, bob.ID, "Wash dishes")
	require.NoError(t, err)
	second, err := st.Todos().Create(ctx, alice.ID, "Walk dog")
	require.NoError(t, err)

	todos, err := st.Todos().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)

	assert.Equal(t, first.ID, todos[0].ID)
	assert.Equal(t, "bob", todos[0].Username)
	assert.Equal(t, second.ID, todos[1].ID)
	assert.Equal(t, "alice", todos[1].Username)
}

func TestListAllEmpty(t *testing.T) {
	st := newTestStore(t)

	todos, err := st.Todos().ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")
	alice := seedUser(t, st, "alice")

	_, err := st.Todos().Create(ctx, bob.ID, "Wash dishes")
	require.NoError(t, err)
	_, err = st.Todos().Create(ctx, alice.ID, "Walk dog")
	require.NoError(t, err)

	todos, err := st.Todos().ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Wash dishes", todos[0].Text)

	n, err := st.Todos().CountByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMarkAllDoneCountsOnlyPending(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")

	var ids []int64
	for _, text := range []string{"one", "two", "three"} {
		todo, err := st.Todos().Create(ctx, bob.ID, text)
		require.NoError(t, err)
		ids = append(ids, todo.ID)
	}
	require.NoError(t, st.Todos().SetDone(ctx, ids[0], true))

	n, err := st.Todos().MarkAllDone(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n, "count equals todos pending before the call")

	// Idempotent: everything is already done, so the second pass is zero.
	n, err = st.Todos().MarkAllDone(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	todos, err := st.Todos().ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	for _, todo := range todos {
		assert.True(t, todo.Done)
	}
}

func TestMarkAllDoneNoTodos(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")

	n, err := st.Todos().MarkAllDone(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestDeleteRemovesAssociationRows(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	bob := seedUser(t, st, "bob")

	todo, err := st.Todos().Create(ctx, bob.ID, "Wash dishes")
	require.NoError(t, err)
	category, err := st.Categories().Create(ctx, bob.ID, "home")
	require.NoError(t, err)

	attached, err := st.Categories().Assign(ctx, todo.ID, category.ID)
	require.NoError(t, err)
	require.True(t, attached)

	require.NoError(t, st.Todos().Delete(ctx, todo.ID))

	_, err = st.Todos().GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// No orphaned join entries survive the delete.
	n, err := st.Categories().CountAssignments(ctx, todo.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	// The category itself is untouched.
	_, err = st.Categories().GetByTextAndOwner(ctx, "home", bob.ID)
	require.NoError(t, err)
}

func TestDeleteMissingTodo(t *testing.T) {
	st := newTestStore(t)

	err := st.Todos().Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
