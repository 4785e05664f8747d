package advisor

import (
	"fmt"

	"github.com/ahvonen/phoneadvisor/pkg/models"
)

// Predicate constrains one attribute of a phone.
type Predicate interface {
	// Matches reports whether the phone's value for attr satisfies the
	// predicate.
	Matches(p models.Phone, attr string) bool
}

// SetPredicate retains phones whose categorical attribute value is in
// Values. An empty set retains nothing; callers wanting "no constraint"
// omit the predicate instead.
type SetPredicate struct {
	Values []string
}

// Matches implements Predicate.
func (s SetPredicate) Matches(p models.Phone, attr string) bool {
	v, ok := p.Categorical(attr)
	if !ok {
		return false
	}
	for _, want := range s.Values {
		if v == want {
			return true
		}
	}
	return false
}

// RangePredicate retains phones whose numeric attribute value lies in
// [Lo, Hi], inclusive on both ends. A degenerate range (Lo == Hi) is
// valid and retains exactly the phones with that value, which is every
// candidate when they all share it.
type RangePredicate struct {
	Lo float64
	Hi float64
}

// Matches implements Predicate.
func (r RangePredicate) Matches(p models.Phone, attr string) bool {
	v, ok := p.Numeric(attr)
	return ok && r.Lo <= v && v <= r.Hi
}

// Filter returns the phones satisfying every predicate, preserving their
// input order; it never re-ranks. An empty predicate map returns the
// input unchanged. The only error is a predicate keyed by an attribute
// outside the schema, or of the wrong kind for its attribute, which is
// caller misuse rather than a query outcome.
func Filter(phones []models.Phone, preds map[string]Predicate) ([]models.Phone, error) {
	for attr, pred := range preds {
		switch pred.(type) {
		case SetPredicate:
			if !models.IsCategoricalAttr(attr) {
				return nil, fmt.Errorf("advisor: set predicate on non-categorical attribute %q", attr)
			}
		case RangePredicate:
			if !models.IsNumericAttr(attr) {
				return nil, fmt.Errorf("advisor: range predicate on non-numeric attribute %q", attr)
			}
		default:
			return nil, fmt.Errorf("advisor: unsupported predicate %T for attribute %q", pred, attr)
		}
	}

	out := make([]models.Phone, 0, len(phones))
	for _, p := range phones {
		keep := true
		for attr, pred := range preds {
			if !pred.Matches(p, attr) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out, nil
}

// Bounds returns the observed minimum and maximum of a numeric attribute
// over the given phones. These are the data-dependent defaults a caller
// starts a range predicate from; they are recomputed per result set, not
// global constants. The third return is false when phones is empty or
// attr is not numeric.
func Bounds(phones []models.Phone, attr string) (lo, hi float64, ok bool) {
	for _, p := range phones {
		v, valid := p.Numeric(attr)
		if !valid {
			return 0, 0, false
		}
		if !ok || v < lo {
			lo = v
		}
		if !ok || v > hi {
			hi = v
		}
		ok = true
	}
	return lo, hi, ok
}
