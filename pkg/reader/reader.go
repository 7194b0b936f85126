// Package reader converts tabular files on disk into datasets. One reader
// exists per supported format; DetectFormat selects it by file extension.
package reader

import (
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/dataport/pkg/dataset"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// Format identifies a supported file format. The set is closed: adding a
// format means adding a variant here and a case to DetectFormat and ForFormat.
type Format int

const (
	// FormatCSV is comma-delimited text with a header line.
	FormatCSV Format = iota + 1

	// FormatJSON is a single object or an array of objects.
	FormatJSON

	// FormatExcel is an xlsx workbook; the first row of the selected sheet
	// is the header. Legacy binary .xls workbooks are not supported.
	FormatExcel

	// FormatScript is a SQL script: statements separated by semicolons,
	// executed in sequence rather than imported as rows.
	FormatScript
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatExcel:
		return "excel"
	case FormatScript:
		return "script"
	default:
		return "unknown"
	}
}

// Reader converts a file into the uniform tabular representation.
type Reader interface {
	Read(path string) (*dataset.Dataset, error)
}

// DetectFormat maps a file extension to its format. Unrecognized extensions
// fail with an unsupported-format error.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatExcel, nil
	case ".sql":
		return FormatScript, nil
	default:
		return 0, dberr.Newf(dberr.KindUnsupportedFormat,
			"unsupported file format %q (supported: .csv, .json, .xlsx, .sql)",
			filepath.Ext(path))
	}
}

// ForFormat returns the tabular reader for a format. FormatScript has no
// tabular reader; scripts are executed statement by statement instead.
func ForFormat(f Format) (Reader, error) {
	switch f {
	case FormatCSV:
		return &CSVReader{}, nil
	case FormatJSON:
		return &JSONReader{}, nil
	case FormatExcel:
		return &ExcelReader{}, nil
	case FormatScript:
		return nil, dberr.Newf(dberr.KindUnsupportedFormat,
			"sql scripts are executed, not read as rows")
	default:
		return nil, dberr.Newf(dberr.KindUnsupportedFormat, "unsupported format %v", f)
	}
}

// ForPath returns the tabular reader matching the file's extension.
func ForPath(path string) (Reader, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return ForFormat(f)
}
