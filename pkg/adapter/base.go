package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNotConnected is returned by operations invoked before Connect.
var ErrNotConnected = fmt.Errorf("database connection not established")

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, and Query implementations.
type BaseSQLAdapter struct {
	SQLDB  *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// DB returns the underlying database handle, or nil before Connect.
func (b *BaseSQLAdapter) DB() *sql.DB {
	return b.SQLDB
}

// Connected reports whether the database connection is established.
func (b *BaseSQLAdapter) Connected() bool {
	return b.SQLDB != nil
}

// Close closes the database connection. Safe to call repeatedly.
func (b *BaseSQLAdapter) Close() error {
	if b.SQLDB == nil {
		return nil
	}
	if b.Logger != nil {
		b.Logger.Debug("closing database connection")
	}
	db := b.SQLDB
	b.SQLDB = nil
	return db.Close()
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if b.SQLDB == nil {
		return nil, ErrNotConnected
	}
	res, err := b.SQLDB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SQL: %w", err)
	}
	return res, nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if b.SQLDB == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.SQLDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// ParseQualifiedName splits a table reference into schema and name, falling
// back to the given default schema.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return defaultSchema, table
}

// InformationSchemaColumns is the shared information_schema implementation of
// TableColumns used by the postgres and duckdb adapters. Placeholders come
// from the adapter's own Placeholder method.
func (b *BaseSQLAdapter) InformationSchemaColumns(ctx context.Context, table, defaultSchema string, placeholder func(int) string) ([]Column, error) {
	if b.SQLDB == nil {
		return nil, ErrNotConnected
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // placeholders come from the adapter's dialect, not user input
	query := fmt.Sprintf(`
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, placeholder(1), placeholder(2))

	rows, err := b.SQLDB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	for rows.Next() {
		var col Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	return columns, nil
}

// InformationSchemaTableExists is the shared information_schema implementation
// of TableExists.
func (b *BaseSQLAdapter) InformationSchemaTableExists(ctx context.Context, table, defaultSchema string, placeholder func(int) string) (bool, error) {
	if b.SQLDB == nil {
		return false, ErrNotConnected
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // placeholders come from the adapter's dialect, not user input
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = %s AND table_name = %s
		)
	`, placeholder(1), placeholder(2))

	var exists bool
	if err := b.SQLDB.QueryRowContext(ctx, query, schema, tableName).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to query table catalog: %w", err)
	}
	return exists, nil
}

// InformationSchemaListTables is the shared information_schema implementation
// of ListTables.
func (b *BaseSQLAdapter) InformationSchemaListTables(ctx context.Context, defaultSchema string, placeholder func(int) string) ([]string, error) {
	if b.SQLDB == nil {
		return nil, ErrNotConnected
	}

	//nolint:gosec // placeholders come from the adapter's dialect, not user input
	query := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = %s AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`, placeholder(1))

	rows, err := b.SQLDB.QueryContext(ctx, query, defaultSchema)
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
