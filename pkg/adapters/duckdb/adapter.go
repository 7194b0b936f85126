// Package duckdb provides the DuckDB adapter for dataport.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/dataport/pkg/adapter"
)

const defaultSchema = "main"

// Adapter implements adapter.Adapter for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "duckdb"
}

// Placeholder returns the ? bind placeholder.
func (a *Adapter) Placeholder(_ int) string {
	return "?"
}

// SupportsReturning reports RETURNING support (DuckDB supports it).
func (a *Adapter) SupportsReturning() bool {
	return true
}

// Connect opens the DuckDB database. Use ":memory:" (or an empty path) for an
// in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	if a.Connected() {
		return nil
	}

	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}
	if path == ":memory:" {
		path = ""
	}

	a.Logger.Debug("opening duckdb database", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.SQLDB = db
	a.Cfg = cfg
	return nil
}

func (a *Adapter) schema() string {
	if a.Cfg.Schema != "" {
		return a.Cfg.Schema
	}
	return defaultSchema
}

// TableExists checks the information_schema catalog for the table.
func (a *Adapter) TableExists(ctx context.Context, table string) (bool, error) {
	return a.InformationSchemaTableExists(ctx, table, a.schema(), a.Placeholder)
}

// TableColumns returns column metadata from information_schema in ordinal order.
func (a *Adapter) TableColumns(ctx context.Context, table string) ([]adapter.Column, error) {
	return a.InformationSchemaColumns(ctx, table, a.schema(), a.Placeholder)
}

// ListTables returns base table names in the configured schema.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	return a.InformationSchemaListTables(ctx, a.schema(), a.Placeholder)
}

// Ensure Adapter implements adapter.Adapter
var _ adapter.Adapter = (*Adapter)(nil)
