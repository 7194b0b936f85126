// Package adapter provides the database adapter interface and shared
// implementation dataport uses to talk to relational engines.
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "postgres", "sqlite", "duckdb")
	Type string

	// Path is the file path for file-based databases (SQLite, DuckDB).
	// Use ":memory:" for in-memory databases.
	Path string

	// Host is the hostname for network-based databases
	Host string

	// Port is the port number for network-based databases
	Port int

	// Database is the database name
	Database string

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Schema is the default schema to use
	Schema string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Column describes a column of a database table.
type Column struct {
	// Name is the column name
	Name string

	// Type is the data type of the column
	Type string

	// Nullable indicates whether the column allows NULL values
	Nullable bool

	// Position is the ordinal position of the column in the table
	Position int
}

// Adapter is implemented once per supported engine. It owns a single
// connection for the lifetime of a session; there is no pooling and no
// sharing across concurrent callers.
type Adapter interface {
	// Connect establishes a connection using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources. Idempotent.
	Close() error

	// Connected reports whether a connection is established.
	Connected() bool

	// DB exposes the underlying *sql.DB for callers that need transactions.
	DB() *sql.DB

	// Exec executes a statement that doesn't return rows.
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// TableExists reports whether a table is present in the engine catalog.
	// A missing table is (false, nil), never an error.
	TableExists(ctx context.Context, table string) (bool, error)

	// TableColumns returns catalog metadata for a table's columns in
	// ordinal order. An unknown table yields an empty slice.
	TableColumns(ctx context.Context, table string) ([]Column, error)

	// ListTables returns the user-visible table names in the default schema.
	ListTables(ctx context.Context) ([]string, error)

	// Placeholder returns the bind placeholder for a 1-based parameter
	// index ("$3" for postgres, "?" elsewhere).
	Placeholder(index int) string

	// SupportsReturning reports whether the engine supports
	// INSERT ... RETURNING for generated keys.
	SupportsReturning() bool

	// DialectName returns the SQL dialect name ("postgres", "sqlite", ...).
	DialectName() string
}
