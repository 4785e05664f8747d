// Package advisor provides the recommendation engine that ranks catalog
// phones by precomputed similarity and the attribute filter applied to
// its results.
package advisor

import (
	"sort"

	"github.com/ahvonen/phoneadvisor/pkg/catalog"
	"github.com/ahvonen/phoneadvisor/pkg/models"
)

// Engine answers similarity queries over a loaded dataset. It is pure and
// stateless: every call is an independent read over the immutable catalog
// and matrix, so an Engine is safe for concurrent use.
type Engine struct {
	ds *catalog.Dataset
}

// NewEngine creates a recommendation engine backed by the given dataset.
func NewEngine(ds *catalog.Dataset) *Engine {
	return &Engine{ds: ds}
}

// Dataset returns the dataset the engine ranks against.
func (e *Engine) Dataset() *catalog.Dataset {
	return e.ds
}

// Recommend returns up to n phones most similar to the one labeled label,
// most similar first. The second return reports whether the label
// resolved at all: (nil, false) means "no such label", while an empty
// slice with true means the label resolved but every candidate was
// excluded. Callers need the distinction to report the two differently.
//
// Ranking is deterministic: score descending, catalog position ascending
// for equal scores. The query phone itself is always excluded, and two
// candidates sharing a display label occupy one result slot, first-ranked
// occurrence winning.
func (e *Engine) Recommend(label string, n int) ([]models.Phone, bool) {
	pos, ok := e.ds.Catalog.Resolve(label)
	if !ok {
		return nil, false
	}
	row, ok := e.ds.Matrix.Row(pos)
	if !ok {
		// Resolve only yields positions inside the catalog, and the
		// dataset guarantees matching dimensions, so this is unreachable
		// short of a corrupted dataset. Treat it as not found rather
		// than indexing the matrix with a bad position.
		return nil, false
	}

	ranked := make([]int, len(row))
	for i := range ranked {
		ranked[i] = i
	}
	// Stable sort keeps equal scores in position order.
	sort.SliceStable(ranked, func(a, b int) bool {
		return row[ranked[a]] > row[ranked[b]]
	})

	if n < 0 {
		n = 0
	}
	capHint := n
	if capHint > len(row) {
		capHint = len(row)
	}
	result := make([]models.Phone, 0, capHint)
	taken := make(map[string]struct{}, capHint)
	for _, cand := range ranked {
		if len(result) == n {
			break
		}
		if cand == pos {
			continue
		}
		p := e.ds.Catalog.MustAt(cand)
		candLabel := p.Label()
		if _, dup := taken[candLabel]; dup {
			continue
		}
		taken[candLabel] = struct{}{}
		result = append(result, p)
	}
	return result, true
}
