// Package postgres provides the PostgreSQL adapter for dataport.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/leapstack-labs/dataport/pkg/adapter"
)

const defaultSchema = "public"

// Adapter implements adapter.Adapter for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
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
	return "postgres"
}

// Placeholder returns the $N bind placeholder for a 1-based index.
func (a *Adapter) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

// SupportsReturning reports RETURNING support (always true for PostgreSQL).
func (a *Adapter) SupportsReturning() bool {
	return true
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	if a.Connected() {
		return nil
	}

	dsn := buildDSN(cfg)

	a.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.SQLDB = db
	a.Cfg = cfg
	return nil
}

// buildDSN constructs a key=value PostgreSQL connection string.
func buildDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
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
