// Package dataset provides the uniform tabular representation passed between
// format readers, row operations and result rendering: an ordered column list
// plus a sequence of rows keyed by column name.
package dataset

import (
	"database/sql"
	"fmt"
	"sort"
)

// Row maps column names to values. Rows have no identity beyond their
// contents.
type Row map[string]any

// Columns returns the row's column names in sorted order.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// Dataset is an ordered collection of rows sharing a column set.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// New creates an empty dataset with the given column order.
func New(columns ...string) *Dataset {
	return &Dataset{Columns: columns}
}

// FromRows builds a dataset from a row slice. Column order is taken from the
// first row's sorted keys; later rows may carry differing column sets, which
// surfaces as a write error at insert time rather than here.
func FromRows(rows []Row) *Dataset {
	d := &Dataset{Rows: rows}
	if len(rows) > 0 {
		d.Columns = rows[0].Columns()
	}
	return d
}

// FromSQLRows drains a *sql.Rows into a dataset. []byte values are converted
// to string for readability. The caller retains responsibility for closing
// rows on error paths; on success the rows are fully consumed.
func FromSQLRows(rows *sql.Rows) (*Dataset, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	d := New(cols...)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		d.Rows = append(d.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Append adds a row to the dataset.
func (d *Dataset) Append(r Row) {
	d.Rows = append(d.Rows, r)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Record returns row i as values in column order.
func (d *Dataset) Record(i int) []any {
	rec := make([]any, len(d.Columns))
	for j, col := range d.Columns {
		rec[j] = d.Rows[i][col]
	}
	return rec
}

// String summarizes the dataset shape.
func (d *Dataset) String() string {
	return fmt.Sprintf("dataset(%d columns, %d rows)", len(d.Columns), d.Len())
}
