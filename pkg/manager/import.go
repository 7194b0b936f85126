package manager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/dataport/pkg/dataset"
	"github.com/leapstack-labs/dataport/pkg/dberr"
	"github.com/leapstack-labs/dataport/pkg/reader"
)

// ImportOptions tunes file imports.
type ImportOptions struct {
	// Sheet selects a workbook sheet by name. Only meaningful for Excel
	// files; ignored otherwise.
	Sheet string

	// BatchSize overrides the manager's default chunk size for this import.
	BatchSize int
}

// ImportFile loads a file into the table, dispatching on its extension.
// SQL scripts are executed statement by statement rather than imported as
// rows; their reported row count is zero.
func (m *Manager) ImportFile(ctx context.Context, table, path string, opts ImportOptions) (int, error) {
	format, err := reader.DetectFormat(path)
	if err != nil {
		return 0, err
	}

	switch format {
	case reader.FormatCSV:
		return m.ImportCSV(ctx, table, path, opts)
	case reader.FormatJSON:
		return m.ImportJSON(ctx, table, path, opts)
	case reader.FormatExcel:
		return m.ImportExcel(ctx, table, path, opts)
	case reader.FormatScript:
		if _, err := m.ExecScript(ctx, path); err != nil {
			return 0, err
		}
		return 0, nil
	default:
		return 0, dberr.Newf(dberr.KindUnsupportedFormat, "unsupported format %v", format)
	}
}

// ImportCSV loads a CSV file into the table.
func (m *Manager) ImportCSV(ctx context.Context, table, path string, opts ImportOptions) (int, error) {
	return m.importWith(ctx, table, path, &reader.CSVReader{}, opts)
}

// ImportJSON loads a JSON file (object or array of objects) into the table.
func (m *Manager) ImportJSON(ctx context.Context, table, path string, opts ImportOptions) (int, error) {
	return m.importWith(ctx, table, path, &reader.JSONReader{}, opts)
}

// ImportExcel loads a workbook sheet into the table. An empty opts.Sheet
// selects the first sheet.
func (m *Manager) ImportExcel(ctx context.Context, table, path string, opts ImportOptions) (int, error) {
	return m.importWith(ctx, table, path, &reader.ExcelReader{Sheet: opts.Sheet}, opts)
}

// ImportDataset batch-inserts an in-memory dataset into the table.
func (m *Manager) ImportDataset(ctx context.Context, table string, d *dataset.Dataset, batchSize int) (int, error) {
	return m.InsertBatch(ctx, table, d.Rows, batchSize)
}

func (m *Manager) importWith(ctx context.Context, table, path string, r reader.Reader, opts ImportOptions) (int, error) {
	d, err := r.Read(path)
	if err != nil {
		return 0, err
	}

	m.logger.Info("importing file",
		slog.String("table", table),
		slog.String("path", path),
		slog.Int("rows", d.Len()))

	n, err := m.InsertBatch(ctx, table, d.Rows, opts.BatchSize)
	if err != nil {
		return n, err
	}

	m.logger.Info("import completed",
		slog.String("table", table),
		slog.String("path", path),
		slog.Int("rows", n))
	return n, nil
}

// ExecScript runs a SQL script statement by statement, in file order. The
// result of the last statement that produced rows is returned; a script with
// no reads returns nil. Execution stops at the first failing statement.
func (m *Manager) ExecScript(ctx context.Context, path string) (*dataset.Dataset, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}

	sr := &reader.ScriptReader{}
	stmts, err := sr.ReadStatements(path)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		m.logger.Warn("script has no statements", slog.String("path", path))
		return nil, nil
	}

	var last *dataset.Dataset
	for i, stmt := range stmts {
		if reader.IsReadStatement(stmt) {
			d, err := m.QueryDataset(ctx, stmt)
			if err != nil {
				return nil, scriptStatementError(path, i, stmt, err)
			}
			last = d
			continue
		}

		if _, err := m.db.Exec(ctx, stmt); err != nil {
			m.logStatementFailure("", statementShape(stmt), err)
			return nil, scriptStatementError(path, i, stmt, err)
		}
	}

	m.logger.Info("script executed",
		slog.String("path", path),
		slog.Int("statements", len(stmts)))
	return last, nil
}

// scriptStatementError classifies a failed script statement by its leading
// keyword so callers see a schema failure for DDL and a write failure for DML.
func scriptStatementError(path string, idx int, stmt string, err error) error {
	if dbe := dberr.KindOf(err); dbe != dberr.KindUnknown {
		return err
	}

	kind := dberr.KindWrite
	upper := strings.ToUpper(strings.TrimSpace(stmt))
	switch {
	case strings.HasPrefix(upper, "CREATE"),
		strings.HasPrefix(upper, "DROP"),
		strings.HasPrefix(upper, "ALTER"):
		kind = dberr.KindSchema
	case strings.HasPrefix(upper, "SELECT"), strings.HasPrefix(upper, "WITH"):
		kind = dberr.KindQuery
	}

	return dberr.Wrap(kind, "", statementShape(stmt),
		fmt.Errorf("statement %d in %s: %w", idx+1, path, err))
}
