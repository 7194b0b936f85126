package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/dataport/pkg/dataset"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// ExcelReader reads xlsx workbooks. The sheet is selected by name, or by
// index when no name is given (default: first sheet). The first row of the
// sheet is the header. Legacy binary .xls workbooks are not supported;
// excelize parses OOXML only.
type ExcelReader struct {
	// Sheet selects a sheet by name. Takes precedence over SheetIndex.
	Sheet string

	// SheetIndex selects a sheet by 0-based index when Sheet is empty.
	SheetIndex int
}

// Read parses the selected sheet into a dataset. Rows shorter than the header
// are padded with empty strings, matching how spreadsheets omit trailing
// blank cells.
func (r *ExcelReader) Read(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, dberr.New(dberr.KindRead, fmt.Errorf("failed to open workbook %s: %w", path, err))
	}
	defer func() { _ = f.Close() }()

	sheet := r.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if r.SheetIndex < 0 || r.SheetIndex >= len(sheets) {
			return nil, dberr.Newf(dberr.KindRead,
				"workbook %s has no sheet at index %d", path, r.SheetIndex)
		}
		sheet = sheets[r.SheetIndex]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, dberr.New(dberr.KindRead,
			fmt.Errorf("failed to read sheet %q from %s: %w", sheet, path, err))
	}
	if len(rows) == 0 {
		return nil, dberr.Newf(dberr.KindRead,
			"sheet %q in %s has no header row", sheet, path)
	}

	header := rows[0]
	d := dataset.New(header...)
	for _, rec := range rows[1:] {
		row := make(dataset.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		d.Append(row)
	}
	return d, nil
}
