package canon

import (
	"cmp"
	"slices"

	"github.com/npillmayer/otfeat/glyphorder"
	"github.com/npillmayer/otfeat/otgraph"
)

// Canonicalizer sorts coverage-indexed structures by the glyph IDs of an index.
type Canonicalizer struct {
	ix *glyphorder.Index
}

// New creates a canonicalizer for a glyph order index.
func New(ix *glyphorder.Index) *Canonicalizer {
	return &Canonicalizer{ix: ix}
}

// sorted returns a copy of glyphs, stably sorted by glyph ID.
// Unknown glyphs keep their relative order and go last.
func (c *Canonicalizer) sorted(glyphs []string) []string {
	s := slices.Clone(glyphs)
	slices.SortStableFunc(s, func(a, b string) int {
		return cmp.Compare(c.ix.ID(a), c.ix.ID(b))
	})
	return s
}

// SortCoverage sorts a coverage in place and reports whether its order has
// changed. Nil or empty coverages are left alone.
func (c *Canonicalizer) SortCoverage(cov *otgraph.Coverage) bool {
	if cov.IsEmpty() {
		return false
	}
	s := c.sorted(cov.Glyphs)
	if slices.Equal(s, cov.Glyphs) {
		return false
	}
	cov.Glyphs = s
	return true
}

// SortClassDef re-establishes the iteration order of a class definition by
// glyph ID. Glyph-to-class assignments are not touched. SortClassDef reports
// whether the order has changed.
func (c *Canonicalizer) SortClassDef(cd *otgraph.ClassDef) bool {
	if cd.Len() == 0 {
		return false
	}
	keys := cd.Keys()
	s := c.sorted(keys)
	if slices.Equal(s, keys) {
		return false
	}
	cd.Rebuild(s)
	return true
}
