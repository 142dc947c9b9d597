package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// SchemaVersion is the newest migration embedded in the binary.
const SchemaVersion = 1

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateURL rewrites a postgres:// or postgresql:// URL to the pgx5://
// scheme the migrate driver registers.
func MigrateURL(rawURL string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(rawURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(rawURL, prefix)
		}
	}
	return rawURL
}

func newMigrator(databaseURL, password string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	dbURL, err := WithPassword(databaseURL, password)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, MigrateURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// Migrate applies all pending migrations.
func Migrate(databaseURL, password string) error {
	m, err := newMigrator(databaseURL, password)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Info("schema up to date", "version", version, "dirty", dirty)
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(databaseURL, password string) error {
	m, err := newMigrator(databaseURL, password)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}
