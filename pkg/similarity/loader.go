package similarity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadCSV parses a headerless CSV of float scores into a Matrix. Shape
// errors (ragged or non-square input) are construction errors surfaced
// here, never deferred to query time.
func ReadCSV(r io.Reader) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var rows [][]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("similarity: read csv: %w", err)
		}
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("similarity: row %d column %d: invalid score %q", len(rows), i, field)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return NewMatrix(rows)
}

// LoadCSV reads a similarity matrix from a CSV file on disk.
func LoadCSV(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("similarity: open %q: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
