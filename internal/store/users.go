package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/tudu/internal/domain"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at"}

type UsersRepo struct {
	s *Store
}

// GetByUsername does an exact, case-sensitive lookup. Returns ErrNotFound
// when no such user exists.
func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	query, args, err := r.s.sb.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return domain.User{}, err
	}

	var u domain.User
	if err := sqlx.GetContext(ctx, r.s.ext, &u, query, args...); err != nil {
		return domain.User{}, mapError(err, "users.get_by_username", "users")
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	query, args, err := r.s.sb.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.User{}, err
	}

	var u domain.User
	if err := sqlx.GetContext(ctx, r.s.ext, &u, query, args...); err != nil {
		return domain.User{}, mapError(err, "users.get_by_id", "users")
	}
	return u, nil
}

// Create persists a new user. The password must already be hashed; this
// layer never sees plaintext. A taken username surfaces as ErrDuplicate via
// the unique constraint.
func (r *UsersRepo) Create(ctx context.Context, username, email, passwordHash string) (domain.User, error) {
	u := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	query, args, err := r.s.sb.
		Insert("users").
		Columns("username", "email", "password_hash", "created_at").
		Values(u.Username, u.Email, u.PasswordHash, u.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.User{}, err
	}

	if err := sqlx.GetContext(ctx, r.s.ext, &u.ID, query, args...); err != nil {
		return domain.User{}, mapError(err, "users.create", "users")
	}
	return u, nil
}
