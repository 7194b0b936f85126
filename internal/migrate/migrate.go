// Package migrate runs schema migrations against the target database.
package migrate

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// dialectFor maps an adapter type to its goose dialect. DuckDB has no goose
// dialect; migrations against it are a configuration error.
func dialectFor(adapterType string) (string, error) {
	switch adapterType {
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", dberr.Newf(dberr.KindConfiguration,
			"migrations are not supported for target type %q", adapterType)
	}
}

func setup(adapterType, dir string) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return dberr.Newf(dberr.KindConfiguration, "migrations directory %q not found", dir)
	}

	dialect, err := dialectFor(adapterType)
	if err != nil {
		return err
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	// Migrations live on disk, not embedded; clear any previously set FS.
	goose.SetBaseFS(nil)
	return nil
}

// Up applies all pending migrations from dir.
func Up(db *sql.DB, adapterType, dir string) error {
	if err := setup(adapterType, dir); err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB, adapterType, dir string) error {
	if err := setup(adapterType, dir); err != nil {
		return err
	}
	if err := goose.Down(db, dir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status prints the migration status for dir.
func Status(db *sql.DB, adapterType, dir string) error {
	if err := setup(adapterType, dir); err != nil {
		return err
	}
	if err := goose.Status(db, dir); err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	return nil
}

// Version returns the current migration version.
func Version(db *sql.DB, adapterType, dir string) (int64, error) {
	if err := setup(adapterType, dir); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}
