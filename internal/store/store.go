// Package store implements the relational persistence layer: connection
// lifecycle, schema migrations and one repository per entity. It speaks
// both sqlite (the embedded default) and postgres through the same
// squirrel-built SQL.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds connection settings for Open.
type Config struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewConfig returns a Config with pool defaults for the given driver and
// URL.
func NewConfig(driver, url string) *Config {
	return &Config{
		Driver:          driver,
		URL:             url,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 10 * time.Minute,
	}
}

// Store wraps a database handle (or a transaction scoped from one) and
// hands out the entity repositories.
type Store struct {
	db     *sqlx.DB        // nil when transaction-scoped
	ext    sqlx.ExtContext // the db itself, or an open tx
	sb     squirrel.StatementBuilderType
	driver string
}

// Open connects to the database described by cfg, verifies the connection
// and returns a ready Store.
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.Driver == DriverSQLite {
		// The foreign_keys pragma is per-connection, so keep a single
		// connection rather than chasing the pool. sqlite is
		// single-writer anyway.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, mapError(fmt.Errorf("failed to ping database: %w", err), "open", "")
	}

	return &Store{
		db:     db,
		ext:    db,
		sb:     builderFor(cfg.Driver),
		driver: cfg.Driver,
	}, nil
}

func builderFor(driver string) squirrel.StatementBuilderType {
	if driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn against a transaction-scoped Store, rolling back on
// error or panic and committing on success. Each CLI invocation is one
// unit of work; this is the boundary that guarantees release on every exit
// path.
func (s *Store) WithTx(ctx context.Context, fn func(*Store) error) error {
	if s.db == nil {
		return fmt.Errorf("store: already inside a transaction")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txStore := &Store{ext: tx, sb: s.sb, driver: s.driver}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Store) Users() *UsersRepo           { return &UsersRepo{s: s} }
func (s *Store) Todos() *TodosRepo           { return &TodosRepo{s: s} }
func (s *Store) Categories() *CategoriesRepo { return &CategoriesRepo{s: s} }
