// Package sqlite provides the SQLite adapter for dataport.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // cgo-free sqlite driver

	"github.com/leapstack-labs/dataport/pkg/adapter"
)

// Adapter implements adapter.Adapter for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
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
	return "sqlite"
}

// Placeholder returns the ? bind placeholder.
func (a *Adapter) Placeholder(_ int) string {
	return "?"
}

// SupportsReturning reports RETURNING support. The manager falls back to
// LastInsertId for generated keys on SQLite.
func (a *Adapter) SupportsReturning() bool {
	return false
}

// Connect opens the SQLite database file. Use ":memory:" for an in-memory
// database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	if a.Connected() {
		return nil
	}

	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("opening sqlite database", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	// The manager owns exactly one session; a single connection keeps
	// in-memory databases coherent across statements.
	db.SetMaxOpenConns(1)

	a.SQLDB = db
	a.Cfg = cfg
	return nil
}

// TableExists checks sqlite_master for the table.
func (a *Adapter) TableExists(ctx context.Context, table string) (bool, error) {
	if !a.Connected() {
		return false, adapter.ErrNotConnected
	}

	var count int
	err := a.SQLDB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`, table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query table catalog: %w", err)
	}
	return count > 0, nil
}

// TableColumns returns column metadata via PRAGMA table_info.
func (a *Adapter) TableColumns(ctx context.Context, table string) ([]adapter.Column, error) {
	if !a.Connected() {
		return nil, adapter.ErrNotConnected
	}

	rows, err := a.SQLDB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		columns = append(columns, adapter.Column{
			Name:     name,
			Type:     colType,
			Nullable: notNull == 0,
			Position: cid + 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	return columns, nil
}

// ListTables returns user table names from sqlite_master.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	if !a.Connected() {
		return nil, adapter.ErrNotConnected
	}

	rows, err := a.SQLDB.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table names: %w", err)
	}
	return names, nil
}

// quoteIdent quotes an identifier for interpolation into PRAGMA statements,
// which do not accept bind parameters.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// Ensure Adapter implements adapter.Adapter
var _ adapter.Adapter = (*Adapter)(nil)
