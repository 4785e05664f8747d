package catalog

import (
	"fmt"

	"github.com/ahvonen/phoneadvisor/pkg/similarity"
)

// Dataset couples a catalog with the similarity matrix computed over it.
// Construction enforces the load-time invariant that the matrix dimension
// equals the catalog row count; a mismatch is a configuration error and
// must abort startup rather than surface per-query.
type Dataset struct {
	Catalog *Catalog
	Matrix  *similarity.Matrix
}

// NewDataset validates that m is sized for c and couples them.
func NewDataset(c *Catalog, m *similarity.Matrix) (*Dataset, error) {
	if m.Size() != c.Len() {
		return nil, fmt.Errorf("catalog: similarity matrix is %dx%d but catalog has %d rows",
			m.Size(), m.Size(), c.Len())
	}
	return &Dataset{Catalog: c, Matrix: m}, nil
}

// Load builds a dataset from external CSV artifacts.
func Load(catalogPath, matrixPath string) (*Dataset, error) {
	c, err := LoadCSV(catalogPath)
	if err != nil {
		return nil, err
	}
	m, err := similarity.LoadCSV(matrixPath)
	if err != nil {
		return nil, err
	}
	return NewDataset(c, m)
}
