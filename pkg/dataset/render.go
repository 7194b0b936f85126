package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the dataset to w in the requested format. Supported formats:
// "json", "csv", "md"/"markdown", and the default bordered text table.
func (d *Dataset) Render(w io.Writer, format string) error {
	switch format {
	case "json":
		return d.renderJSON(w)
	case "csv":
		return d.renderCSV(w)
	case "md", "markdown":
		return d.renderMarkdown(w)
	default:
		return d.renderTable(w)
	}
}

func (d *Dataset) renderTable(w io.Writer) error {
	if d.Empty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(d.Columns))
	for i, col := range d.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range d.Rows {
		row := make(table.Row, len(d.Columns))
		for i, col := range d.Columns {
			row[i] = formatValue(r[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", d.Len())
	return nil
}

func (d *Dataset) renderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if d.Empty() {
		return enc.Encode([]Row{})
	}
	return enc.Encode(d.Rows)
}

func (d *Dataset) renderCSV(w io.Writer) error {
	_, _ = fmt.Fprintln(w, strings.Join(d.Columns, ","))

	for _, r := range d.Rows {
		values := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			values[i] = escapeCSV(formatValue(r[col]))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func (d *Dataset) renderMarkdown(w io.Writer) error {
	if d.Empty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(d.Columns, " | "))
	seps := make([]string, len(d.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range d.Rows {
		values := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			values[i] = formatValue(r[col])
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
