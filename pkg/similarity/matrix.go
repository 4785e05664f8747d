// Package similarity holds the precomputed pairwise similarity matrix the
// recommendation engine ranks against.
package similarity

import "fmt"

// Matrix is an immutable square matrix of pairwise similarity scores.
// Cell (i, j) scores entity i against entity j; scores are opaque ordinal
// values, only their relative order matters. Malformed input is rejected
// at construction so queries never need per-row shape checks.
type Matrix struct {
	rows [][]float64
}

// NewMatrix validates and wraps a square matrix. It returns an error when
// any row's length differs from the row count; a 0x0 matrix is valid.
// The rows slice is copied so later caller mutation cannot reach the matrix.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	cp := make([][]float64, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("similarity: row %d has %d columns, want %d", i, len(row), n)
		}
		cp[i] = make([]float64, n)
		copy(cp[i], row)
	}
	return &Matrix{rows: cp}, nil
}

// Size returns the matrix dimension.
func (m *Matrix) Size() int {
	return len(m.rows)
}

// Row returns the score row for position p. The second return is false
// when p is out of range; callers must never index the matrix with an
// unchecked position.
func (m *Matrix) Row(p int) ([]float64, bool) {
	if p < 0 || p >= len(m.rows) {
		return nil, false
	}
	return m.rows[p], true
}

// At returns the score at (i, j), or false when either index is out of range.
func (m *Matrix) At(i, j int) (float64, bool) {
	if i < 0 || i >= len(m.rows) || j < 0 || j >= len(m.rows) {
		return 0, false
	}
	return m.rows[i][j], true
}

// Validate checks the conventions the matrix is assumed to follow but
// that loading does not enforce: symmetry and the diagonal being each
// row's maximum. Intended for an optional strict mode at startup; a
// violation is a data-preparation defect, not a query-time condition.
func (m *Matrix) Validate() error {
	for i := range m.rows {
		for j := i + 1; j < len(m.rows); j++ {
			if m.rows[i][j] != m.rows[j][i] {
				return fmt.Errorf("similarity: matrix not symmetric at (%d,%d): %v != %v",
					i, j, m.rows[i][j], m.rows[j][i])
			}
		}
		for j, v := range m.rows[i] {
			if v > m.rows[i][i] {
				return fmt.Errorf("similarity: score (%d,%d)=%v exceeds self-similarity %v",
					i, j, v, m.rows[i][i])
			}
		}
	}
	return nil
}
