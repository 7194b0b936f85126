package manager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/dataport/pkg/adapter"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// ColumnDef pairs a column name with its type/constraint string. Definitions
// are ordered; the DDL preserves insertion order.
type ColumnDef struct {
	Name string
	Type string
}

// CreateOptions tunes CreateTable.
type CreateOptions struct {
	// PrimaryKey designates the primary-key column by name.
	PrimaryKey string

	// ErrorIfExists omits IF NOT EXISTS, so an existing table is an error.
	ErrorIfExists bool
}

// DropOptions tunes DropTable.
type DropOptions struct {
	// ErrorIfMissing omits IF EXISTS, so a missing table is an error.
	ErrorIfMissing bool
}

// CreateTable builds and executes a CREATE TABLE statement from the ordered
// column definitions, appending PRIMARY KEY to the designated column.
func (m *Manager) CreateTable(ctx context.Context, table string, cols []ColumnDef, opts CreateOptions) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}
	if len(cols) == 0 {
		return dberr.Newf(dberr.KindSchema, "create table %s: no columns defined", table)
	}

	defs := make([]string, 0, len(cols))
	for _, col := range cols {
		def := col.Name + " " + col.Type
		if opts.PrimaryKey != "" && col.Name == opts.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}

	ifNotExists := "IF NOT EXISTS "
	if opts.ErrorIfExists {
		ifNotExists = ""
	}

	stmt := fmt.Sprintf("CREATE TABLE %s%s (%s)", ifNotExists, table, strings.Join(defs, ", "))

	if _, err := m.db.Exec(ctx, stmt); err != nil {
		m.logStatementFailure(table, stmt, err)
		return dberr.Wrap(dberr.KindSchema, table, stmt, err)
	}

	m.logger.Info("table created", slog.String("table", table))
	return nil
}

// DropTable drops a table, by default tolerating a missing one.
func (m *Manager) DropTable(ctx context.Context, table string, opts DropOptions) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}

	ifExists := "IF EXISTS "
	if opts.ErrorIfMissing {
		ifExists = ""
	}

	stmt := fmt.Sprintf("DROP TABLE %s%s", ifExists, table)

	if _, err := m.db.Exec(ctx, stmt); err != nil {
		m.logStatementFailure(table, stmt, err)
		return dberr.Wrap(dberr.KindSchema, table, stmt, err)
	}

	m.logger.Info("table dropped", slog.String("table", table))
	return nil
}

// TableExists reports whether the table is present in the engine catalog.
// A missing table is (false, nil); only an unusable session yields an error.
func (m *Manager) TableExists(ctx context.Context, table string) (bool, error) {
	if err := m.ensureOpen(); err != nil {
		return false, err
	}

	exists, err := m.db.TableExists(ctx, table)
	if err != nil {
		return false, dberr.Wrap(dberr.KindConnection, table, "", err)
	}
	return exists, nil
}

// Columns returns the table's column metadata in ordinal order. A table with
// no reachable columns yields an empty slice, not an error.
func (m *Manager) Columns(ctx context.Context, table string) ([]adapter.Column, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}

	cols, err := m.db.TableColumns(ctx, table)
	if err != nil {
		return nil, dberr.Wrap(dberr.KindConnection, table, "", err)
	}
	return cols, nil
}

// Tables returns the names of user tables in the session's default schema.
func (m *Manager) Tables(ctx context.Context) ([]string, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}

	names, err := m.db.ListTables(ctx)
	if err != nil {
		return nil, dberr.Wrap(dberr.KindConnection, "", "", err)
	}
	return names, nil
}

// logStatementFailure records a failed statement's shape: the SQL text with
// placeholders, never bound values.
func (m *Manager) logStatementFailure(table, stmt string, err error) {
	m.logger.Error("statement failed",
		slog.String("table", table),
		slog.String("stmt", stmt),
		slog.Any("error", err))
}
