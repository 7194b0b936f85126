package reader

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/leapstack-labs/dataport/pkg/dataset"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// CSVReader reads comma-delimited text. The first line is the header; all
// values are read as strings and left to the engine to coerce.
type CSVReader struct{}

// Read parses the file into a dataset.
func (r *CSVReader) Read(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dberr.New(dberr.KindRead, fmt.Errorf("failed to open csv file %s: %w", path, err))
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, dberr.New(dberr.KindRead, fmt.Errorf("failed to parse csv file %s: %w", path, err))
	}
	if len(records) == 0 {
		return nil, dberr.Newf(dberr.KindRead, "csv file %s has no header line", path)
	}

	header := records[0]
	d := dataset.New(header...)
	for _, rec := range records[1:] {
		row := make(dataset.Row, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		d.Append(row)
	}
	return d, nil
}
