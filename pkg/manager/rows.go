package manager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/dataport/pkg/dataset"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// Insert writes a single row. All values are bound positionally; nothing is
// string-interpolated into the statement.
func (m *Manager) Insert(ctx context.Context, table string, row dataset.Row) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}
	if len(row) == 0 {
		return dberr.Newf(dberr.KindWrite, "insert into %s: empty row", table)
	}

	stmt, args := buildInsert(table, row)
	stmt = rebind(stmt, m.db)

	if _, err := m.db.Exec(ctx, stmt, args...); err != nil {
		m.logStatementFailure(table, stmt, err)
		return dberr.Wrap(dberr.KindWrite, table, stmt, err)
	}

	m.logger.Debug("row inserted", slog.String("table", table))
	return nil
}

// InsertReturningID writes a single row and returns the generated identifier
// of the id column. Engines with RETURNING support use it; others fall back
// to the driver's LastInsertId.
func (m *Manager) InsertReturningID(ctx context.Context, table string, row dataset.Row) (int64, error) {
	if err := m.ensureOpen(); err != nil {
		return 0, err
	}
	if len(row) == 0 {
		return 0, dberr.Newf(dberr.KindWrite, "insert into %s: empty row", table)
	}

	stmt, args := buildInsert(table, row)

	if m.db.SupportsReturning() {
		stmt += " RETURNING id"
		stmt = rebind(stmt, m.db)

		var id int64
		if err := m.db.DB().QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
			m.logStatementFailure(table, stmt, err)
			return 0, dberr.Wrap(dberr.KindWrite, table, stmt, err)
		}
		m.logger.Debug("row inserted", slog.String("table", table), slog.Int64("id", id))
		return id, nil
	}

	stmt = rebind(stmt, m.db)
	res, err := m.db.Exec(ctx, stmt, args...)
	if err != nil {
		m.logStatementFailure(table, stmt, err)
		return 0, dberr.Wrap(dberr.KindWrite, table, stmt, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, dberr.Wrap(dberr.KindWrite, table, stmt, err)
	}
	m.logger.Debug("row inserted", slog.String("table", table), slog.Int64("id", id))
	return id, nil
}

// InsertBatch partitions rows into consecutive chunks of at most batchSize
// (the manager default when batchSize <= 0) and issues one multi-row insert
// per chunk, each in its own transaction. It returns the number of rows
// submitted. A chunk failure aborts the batch at that point: rows committed
// by earlier chunks stay committed; there is no cross-chunk atomicity.
func (m *Manager) InsertBatch(ctx context.Context, table string, rows []dataset.Row, batchSize int) (int, error) {
	if err := m.ensureOpen(); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		m.logger.Warn("empty row set for batch insert", slog.String("table", table))
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = m.batchSize
	}

	inserted := 0
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		if err := m.insertChunk(ctx, table, chunk, start); err != nil {
			return inserted, err
		}

		inserted += len(chunk)
		m.logger.Debug("chunk inserted",
			slog.String("table", table),
			slog.Int("rows", len(chunk)))
	}

	m.logger.Info("batch insert completed",
		slog.String("table", table),
		slog.Int("rows", inserted))
	return inserted, nil
}

// insertChunk issues one multi-row insert for the chunk, transactionally.
// The column set comes from the chunk's first row; a row with a differing
// column set fails the chunk.
func (m *Manager) insertChunk(ctx context.Context, table string, chunk []dataset.Row, offset int) error {
	cols := chunk[0].Columns()

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(cols, ", "))

	args := make([]any, 0, len(chunk)*len(cols))
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"

	for i, row := range chunk {
		if len(row) != len(cols) {
			return dberr.Newf(dberr.KindWrite,
				"insert into %s: row %d has %d columns, chunk expects %d",
				table, offset+i, len(row), len(cols))
		}
		for _, col := range cols {
			v, ok := row[col]
			if !ok {
				return dberr.Newf(dberr.KindWrite,
					"insert into %s: row %d is missing column %q", table, offset+i, col)
			}
			args = append(args, v)
		}

		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tuple)
	}

	stmt := rebind(b.String(), m.db)

	tx, err := m.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return dberr.Wrap(dberr.KindWrite, table, "", err)
	}

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		_ = tx.Rollback()
		m.logStatementFailure(table, statementShape(stmt), err)
		return dberr.Wrap(dberr.KindWrite, table, statementShape(stmt), err)
	}

	if err := tx.Commit(); err != nil {
		m.logStatementFailure(table, statementShape(stmt), err)
		return dberr.Wrap(dberr.KindWrite, table, statementShape(stmt), err)
	}
	return nil
}

// Update applies the assignments to rows matching the predicate and returns
// the affected-row count.
func (m *Manager) Update(ctx context.Context, table string, assignments dataset.Row, pred Predicate) (int64, error) {
	if err := m.ensureOpen(); err != nil {
		return 0, err
	}
	if len(assignments) == 0 {
		return 0, dberr.Newf(dberr.KindWrite, "update %s: no assignments", table)
	}
	if err := pred.validate(dberr.KindWrite, table); err != nil {
		return 0, err
	}

	cols := assignments.Columns()
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(pred.Args))
	for i, col := range cols {
		sets[i] = col + " = ?"
		args = append(args, assignments[col])
	}
	args = append(args, pred.Args...)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), pred.Expr)
	stmt = rebind(stmt, m.db)

	res, err := m.db.Exec(ctx, stmt, args...)
	if err != nil {
		m.logStatementFailure(table, stmt, err)
		return 0, dberr.Wrap(dberr.KindWrite, table, stmt, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, dberr.Wrap(dberr.KindWrite, table, stmt, err)
	}
	m.logger.Debug("rows updated", slog.String("table", table), slog.Int64("rows", affected))
	return affected, nil
}

// Delete removes rows matching the predicate and returns the affected-row
// count.
func (m *Manager) Delete(ctx context.Context, table string, pred Predicate) (int64, error) {
	if err := m.ensureOpen(); err != nil {
		return 0, err
	}
	if err := pred.validate(dberr.KindWrite, table); err != nil {
		return 0, err
	}

	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s", table, pred.Expr)
	stmt = rebind(stmt, m.db)

	res, err := m.db.Exec(ctx, stmt, pred.Args...)
	if err != nil {
		m.logStatementFailure(table, stmt, err)
		return 0, dberr.Wrap(dberr.KindWrite, table, stmt, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, dberr.Wrap(dberr.KindWrite, table, stmt, err)
	}
	m.logger.Debug("rows deleted", slog.String("table", table), slog.Int64("rows", affected))
	return affected, nil
}

// Query executes a parameterized read and returns the result as value tuples
// in column order.
func (m *Manager) Query(ctx context.Context, query string, args ...any) ([][]any, error) {
	d, err := m.QueryDataset(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([][]any, d.Len())
	for i := range d.Rows {
		out[i] = d.Record(i)
	}
	return out, nil
}

// QueryDataset executes a parameterized read and returns the result as a
// dataset with named columns.
func (m *Manager) QueryDataset(ctx context.Context, query string, args ...any) (*dataset.Dataset, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}
	if n := countPlaceholders(query); n != len(args) {
		return nil, dberr.Newf(dberr.KindQuery,
			"query has %d placeholders but %d bind values", n, len(args))
	}

	stmt := rebind(query, m.db)

	rows, err := m.db.Query(ctx, stmt, args...)
	if err != nil {
		m.logStatementFailure("", stmt, err)
		return nil, dberr.Wrap(dberr.KindQuery, "", stmt, err)
	}
	defer func() { _ = rows.Close() }()

	d, err := dataset.FromSQLRows(rows)
	if err != nil {
		return nil, dberr.Wrap(dberr.KindQuery, "", stmt, err)
	}

	m.logger.Debug("query returned rows", slog.Int("rows", d.Len()))
	return d, nil
}

// buildInsert produces a single-row insert with ? placeholders and the bind
// values in sorted column order.
func buildInsert(table string, row dataset.Row) (string, []any) {
	cols := row.Columns()
	args := make([]any, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		args[i] = row[col]
		marks[i] = "?"
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	return stmt, args
}

// statementShape truncates very long statements (large multi-row inserts)
// for log and error context.
func statementShape(stmt string) string {
	const max = 200
	if len(stmt) <= max {
		return stmt
	}
	return stmt[:max] + "..."
}
