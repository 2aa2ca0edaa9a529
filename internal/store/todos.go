package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/tudu/internal/domain"
)

var todoColumns = []string{"id", "user_id", "text", "done", "created_at"}

type TodosRepo struct {
	s *Store
}

// Create persists a new todo for ownerID with done initialized to false.
func (r *TodosRepo) Create(ctx context.Context, ownerID int64, text string) (domain.Todo, error) {
	t := domain.Todo{
		UserID:    ownerID,
		Text:      text,
		Done:      false,
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := r.s.sb.
		Insert("todos").
		Columns("user_id", "text", "done", "created_at").
		Values(t.UserID, t.Text, t.Done, t.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.Todo{}, err
	}

	if err := sqlx.GetContext(ctx, r.s.ext, &t.ID, query, args...); err != nil {
		return domain.Todo{}, mapError(err, "todos.create", "todos")
	}
	return t, nil
}

func (r *TodosRepo) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id})
}

// GetByIDForOwner resolves a todo scoped to its owner: a todo that exists
// but belongs to someone else is ErrNotFound here.
func (r *TodosRepo) GetByIDForOwner(ctx context.Context, id, ownerID int64) (domain.Todo, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id, "user_id": ownerID})
}

func (r *TodosRepo) getWhere(ctx context.Context, pred squirrel.Eq) (domain.Todo, error) {
	query, args, err := r.s.sb.
		Select(todoColumns...).
		From("todos").
		Where(pred).
		ToSql()
	if err != nil {
		return domain.Todo{}, err
	}

	var t domain.Todo
	if err := sqlx.GetContext(ctx, r.s.ext, &t, query, args...); err != nil {
		return domain.Todo{}, mapError(err, "todos.get", "todos")
	}
	return t, nil
}

// SetDone writes the done flag. Toggling is a read-modify-write performed
// by the caller inside one WithTx unit of work.
func (r *TodosRepo) SetDone(ctx context.Context, id int64, done bool) error {
	query, args, err := r.s.sb.
		Update("todos").
		Set("done", done).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.s.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "todos.set_done", "todos")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &Error{Op: "todos.set_done", Table: "todos", Err: ErrNotFound}
	}
	return nil
}

// ListAll returns every todo joined with its owner's username, ordered by
// id for deterministic output.
func (r *TodosRepo) ListAll(ctx context.Context) ([]domain.TodoWithUser, error) {
	query, args, err := r.s.sb.
		Select("t.id", "t.user_id", "t.text", "t.done", "t.created_at", "u.username").
		From("todos t").
		Join("users u ON u.id = t.user_id").
		OrderBy("t.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var todos []domain.TodoWithUser
	if err := sqlx.SelectContext(ctx, r.s.ext, &todos, query, args...); err != nil {
		return nil, mapError(err, "todos.list_all", "todos")
	}
	return todos, nil
}

func (r *TodosRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	query, args, err := r.s.sb.
		Select(todoColumns...).
		From("todos").
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var todos []domain.Todo
	if err := sqlx.SelectContext(ctx, r.s.ext, &todos, query, args...); err != nil {
		return nil, mapError(err, "todos.list_by_owner", "todos")
	}
	return todos, nil
}

func (r *TodosRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	query, args, err := r.s.sb.
		Select("COUNT(*)").
		From("todos").
		Where(squirrel.Eq{"user_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := sqlx.GetContext(ctx, r.s.ext, &n, query, args...); err != nil {
		return 0, mapError(err, "todos.count_by_owner", "todos")
	}
	return n, nil
}

// Delete hard-deletes a todo. The schema's ON DELETE CASCADE removes any
// todo_categories rows in the same statement, so no orphaned join entries
// survive.
func (r *TodosRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := r.s.sb.
		Delete("todos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.s.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "todos.delete", "todos")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &Error{Op: "todos.delete", Table: "todos", Err: ErrNotFound}
	}
	return nil
}

// MarkAllDone flips done=true on every still-pending todo owned by
// ownerID and reports how many rows actually changed. Already-done todos
// are untouched, which is what makes the operation idempotent.
func (r *TodosRepo) MarkAllDone(ctx context.Context, ownerID int64) (int64, error) {
	query, args, err := r.s.sb.
		Update("todos").
		Set("done", true).
		Where(squirrel.Eq{"user_id": ownerID, "done": false}).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.s.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "todos.mark_all_done", "todos")
	}
	return res.RowsAffected()
}
