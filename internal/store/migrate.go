package store

import (
	"embed"
	"errors"
	"fmt"
	"path"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migration files are embedded per driver: the DDL dialects differ enough
// (serial columns, timestamp types) that sharing one set is not worth the
// contortions.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store: cannot migrate inside a transaction")
	}

	src, err := iofs.New(migrationsFS, path.Join("migrations", s.driver))
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	var drv database.Driver
	switch s.driver {
	case DriverPostgres:
		drv, err = postgres.WithInstance(s.db.DB, &postgres.Config{})
	default:
		drv, err = sqlite.WithInstance(s.db.DB, &sqlite.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, s.driver, drv)
}

// Migrate applies any pending migrations.
func (s *Store) Migrate() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Reset drops everything and re-applies the full schema. Used by the
// initialize command.
func (s *Store) Reset() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}

	if err := m.Drop(); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}

	// Drop removes the migration bookkeeping table too, so start from a
	// fresh instance.
	return s.Migrate()
}
