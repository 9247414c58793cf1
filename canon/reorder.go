package canon

import (
	"slices"

	"github.com/npillmayer/otfeat/otgraph"
)

// Dependent is an array whose i-th element belongs to the i-th glyph of a
// coverage.
type Dependent interface {
	Len() int
	// Permute moves the element at position i to position perm[i].
	// perm is a permutation of 0…Len()-1.
	Permute(perm []int)
}

// Keyed is a mapping keyed by glyph name which should iterate in coverage order.
// *otgraph.GlyphMap implements Keyed.
type Keyed interface {
	Rebuild(order []string) (dropped int)
}

// Parallel wraps a slice as a Dependent. Permutations replace the slice
// s points to.
func Parallel[T any](s *[]T) Dependent {
	return parallel[T]{s: s}
}

type parallel[T any] struct {
	s *[]T
}

func (p parallel[T]) Len() int {
	if p.s == nil {
		return 0
	}
	return len(*p.s)
}

func (p parallel[T]) Permute(perm []int) {
	out := make([]T, len(*p.s))
	for from, to := range perm {
		out[to] = (*p.s)[from]
	}
	*p.s = out
}

// Reorder sorts a coverage and permutes all dependent arrays accordingly
// (index-permutation policy).
//
// A coverage already in order is left alone, whatever its dependents.
// Otherwise the reorder is all or nothing: if a dependent does not have the
// coverage's length, or positions of the old and the new coverage order do
// not map one-to-one (e.g. because of a duplicate glyph), the coverage and
// all dependents are left in their previous order and the outcome tells why.
func (c *Canonicalizer) Reorder(cov *otgraph.Coverage, deps ...Dependent) Outcome {
	if cov.IsEmpty() {
		return Outcome{}
	}
	old := cov.Glyphs
	s := c.sorted(old)
	if slices.Equal(s, old) {
		return Outcome{}
	}
	n := cov.Len()
	for _, d := range deps {
		if d.Len() != n {
			tracer().Debugf("reorder refused: coverage has %d glyphs, dependent %d entries", n, d.Len())
			return Outcome{Reason: ReasonLengthMismatch}
		}
	}
	perm, ok := permutation(old, s)
	if !ok {
		tracer().Debugf("reorder refused: coverage %v is not a set", old)
		return Outcome{Reason: ReasonNotBijective}
	}
	for _, d := range deps {
		d.Permute(perm)
	}
	cov.Glyphs = s
	return Outcome{Changed: true}
}

// permutation maps each position of old to the position of the same glyph in
// sorted. It fails if any new position would be filled twice.
func permutation(old, sorted []string) ([]int, bool) {
	newPos := make(map[string]int, len(sorted))
	for i, g := range sorted {
		if _, seen := newPos[g]; !seen {
			newPos[g] = i
		}
	}
	perm := make([]int, len(old))
	filled := make([]bool, len(sorted))
	for i, g := range old {
		j, ok := newPos[g]
		if !ok || filled[j] {
			return nil, false
		}
		filled[j] = true
		perm[i] = j
	}
	return perm, true
}

// Rebuild sorts a coverage and rebuilds glyph-keyed mappings in the new
// coverage order (key-rebuild policy). Entries are carried over for every
// covered glyph which has one; covered glyphs without an entry are skipped.
// Entries for glyphs outside the coverage are dropped and counted.
// Rebuild never refuses.
func (c *Canonicalizer) Rebuild(cov *otgraph.Coverage, keyed ...Keyed) Outcome {
	if cov.IsEmpty() {
		return Outcome{}
	}
	out := Outcome{Changed: c.SortCoverage(cov)}
	for _, k := range keyed {
		out.Dropped += k.Rebuild(cov.Glyphs)
	}
	if out.Dropped > 0 {
		out.Reason = ReasonDroppedEntries
	}
	return out
}
