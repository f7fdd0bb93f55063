package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV loads a table from a CSV file. Ragged rows are tolerated; the
// builders treat missing cells as empty.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return readCSV(f, path)
}

func readCSV(r io.Reader, path string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}
