package store

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/tudu/internal/domain"
)

var categoryColumns = []string{"id", "user_id", "text", "created_at"}

type CategoriesRepo struct {
	s *Store
}

func (r *CategoriesRepo) GetByTextAndOwner(ctx context.Context, text string, ownerID int64) (domain.Category, error) {
	query, args, err := r.s.sb.
		Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"text": text, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return domain.Category{}, err
	}

	var c domain.Category
	if err := sqlx.GetContext(ctx, r.s.ext, &c, query, args...); err != nil {
		return domain.Category{}, mapError(err, "categories.get_by_text", "categories")
	}
	return c, nil
}

// Create persists a new category. A duplicate (text, owner) pair surfaces
// as ErrDuplicate via the unique constraint.
func (r *CategoriesRepo) Create(ctx context.Context, ownerID int64, text string) (domain.Category, error) {
	c := domain.Category{
		UserID:    ownerID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := r.s.sb.
		Insert("categories").
		Columns("user_id", "text", "created_at").
		Values(c.UserID, c.Text, c.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.Category{}, err
	}

	if err := sqlx.GetContext(ctx, r.s.ext, &c.ID, query, args...); err != nil {
		return domain.Category{}, mapError(err, "categories.create", "categories")
	}
	return c, nil
}

// FindOrCreate returns the category matching (text, ownerID), creating it
// when absent, and reports whether a row was created. The unique
// constraint closes the lookup/insert race: a concurrent insert turns into
// ErrDuplicate, which falls back to a re-read instead of a second row.
func (r *CategoriesRepo) FindOrCreate(ctx context.Context, ownerID int64, text string) (domain.Category, bool, error) {
	c, err := r.GetByTextAndOwner(ctx, text, ownerID)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Category{}, false, err
	}

	c, err = r.Create(ctx, ownerID, text)
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return domain.Category{}, false, err
	}

	c, err = r.GetByTextAndOwner(ctx, text, ownerID)
	return c, false, err
}

func (r *CategoriesRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	query, args, err := r.s.sb.
		Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := sqlx.SelectContext(ctx, r.s.ext, &categories, query, args...); err != nil {
		return nil, mapError(err, "categories.list_by_owner", "categories")
	}
	return categories, nil
}

// ListForTodo returns the categories attached to a todo through the join
// table, ordered by category id.
func (r *CategoriesRepo) ListForTodo(ctx context.Context, todoID int64) ([]domain.Category, error) {
	query, args, err := r.s.sb.
		Select("c.id", "c.user_id", "c.text", "c.created_at").
		From("categories c").
		Join("todo_categories tc ON tc.category_id = c.id").
		Where(squirrel.Eq{"tc.todo_id": todoID}).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := sqlx.SelectContext(ctx, r.s.ext, &categories, query, args...); err != nil {
		return nil, mapError(err, "categories.list_for_todo", "todo_categories")
	}
	return categories, nil
}

// Assign attaches a category to a todo. The association is a set keyed by
// (todo_id, category_id): inserting an existing pair is a no-op, reported
// through the returned bool.
func (r *CategoriesRepo) Assign(ctx context.Context, todoID, categoryID int64) (bool, error) {
	query, args, err := r.s.sb.
		Insert("todo_categories").
		Columns("todo_id", "category_id").
		Values(todoID, categoryID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.s.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return false, mapError(err, "categories.assign", "todo_categories")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountAssignments reports how many join rows reference a todo.
func (r *CategoriesRepo) CountAssignments(ctx context.Context, todoID int64) (int64, error) {
	query, args, err := r.s.sb.
		Select("COUNT(*)").
		From("todo_categories").
		Where(squirrel.Eq{"todo_id": todoID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := sqlx.GetContext(ctx, r.s.ext, &n, query, args...); err != nil {
		return 0, mapError(err, "categories.count_assignments", "todo_categories")
	}
	return n, nil
}
