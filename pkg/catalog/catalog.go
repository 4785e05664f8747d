// Package catalog provides the immutable in-memory phone table and label
// resolution used by the recommendation engine.
package catalog

import (
	"fmt"
	"sort"

	"github.com/ahvonen/phoneadvisor/pkg/models"
)

// Catalog is an immutable table of phones. Row order is stable: a phone's
// Position equals its row index and is the only valid key into the
// similarity matrix. Catalogs are safe for concurrent readers because they
// are never mutated after construction.
type Catalog struct {
	phones  []models.Phone
	byLabel map[string]int
}

// New builds a catalog from rows in their load order. Positions are
// assigned sequentially, overriding whatever the caller set. Labels are
// not required to be unique; when several rows share a label, Resolve
// returns the first one in row order.
func New(phones []models.Phone) *Catalog {
	c := &Catalog{
		phones:  make([]models.Phone, len(phones)),
		byLabel: make(map[string]int, len(phones)),
	}
	for i, p := range phones {
		p.Position = i
		c.phones[i] = p
		label := p.Label()
		if _, seen := c.byLabel[label]; !seen {
			c.byLabel[label] = i
		}
	}
	return c
}

// Len returns the number of phones in the catalog.
func (c *Catalog) Len() int {
	return len(c.phones)
}

// Resolve maps a display label to the position of the first phone carrying
// it, in catalog row order. The second return is false when no phone has
// that label; an unknown label is an expected input, not an error.
func (c *Catalog) Resolve(label string) (int, bool) {
	pos, ok := c.byLabel[label]
	return pos, ok
}

// At returns the phone at the given position. The second return is false
// when pos is outside the catalog.
func (c *Catalog) At(pos int) (models.Phone, bool) {
	if pos < 0 || pos >= len(c.phones) {
		return models.Phone{}, false
	}
	return c.phones[pos], true
}

// Phones returns a copy of all rows in catalog order.
func (c *Catalog) Phones() []models.Phone {
	cp := make([]models.Phone, len(c.phones))
	copy(cp, c.phones)
	return cp
}

// Labels returns the distinct display labels sorted lexicographically,
// the order selection UIs present them in.
func (c *Catalog) Labels() []string {
	labels := make([]string, 0, len(c.phones))
	seen := make(map[string]struct{}, len(c.phones))
	for _, p := range c.phones {
		label := p.Label()
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// MustAt returns the phone at pos or panics. Intended for callers that
// have already bounds-checked pos against Len, such as the engine walking
// matrix row indices.
func (c *Catalog) MustAt(pos int) models.Phone {
	p, ok := c.At(pos)
	if !ok {
		panic(fmt.Sprintf("catalog: position %d out of range [0,%d)", pos, len(c.phones)))
	}
	return p
}
