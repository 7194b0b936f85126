package reader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leapstack-labs/dataport/pkg/dataset"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// JSONReader reads structured records: either a single object or an array of
// objects. Each object's keys become column names.
type JSONReader struct{}

// Read parses the file into a dataset. Column order comes from the first
// record's sorted keys.
func (r *JSONReader) Read(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dberr.New(dberr.KindRead, fmt.Errorf("failed to read json file %s: %w", path, err))
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, dberr.New(dberr.KindRead, fmt.Errorf("failed to parse json file %s: %w", path, err))
	}

	switch v := raw.(type) {
	case map[string]any:
		return dataset.FromRows([]dataset.Row{dataset.Row(v)}), nil
	case []any:
		rows := make([]dataset.Row, 0, len(v))
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, dberr.Newf(dberr.KindRead,
					"json file %s: element %d is not an object", path, i)
			}
			rows = append(rows, dataset.Row(obj))
		}
		return dataset.FromRows(rows), nil
	default:
		return nil, dberr.Newf(dberr.KindRead,
			"json file %s must contain an object or an array of objects", path)
	}
}
