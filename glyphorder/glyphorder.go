/*
Package glyphorder maps glyph names to glyph IDs and Unicode code points.

A glyph's ID is its position in the font's glyph order. Names which do not
occur in the glyph order get the ID Unknown, which sorts after every real
glyph ID. The index also holds the inverse of the font's best Unicode cmap.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphorder

import (
	"iter"
	"math"
	"slices"

	"github.com/npillmayer/otfeat/otgraph"
)

// Unknown is the glyph ID of names not contained in the glyph order.
const Unknown = math.MaxInt

// Index is a read-only view of a glyph order and a cmap.
type Index struct {
	order   []string
	ids     map[string]int
	cmap    map[rune]string
	inverse map[string][]rune
}

// New creates an index from a glyph order and a cmap. If a name occurs more
// than once in order, its first position is its ID.
func New(order []string, cmap map[rune]string) *Index {
	ix := &Index{
		order:   order,
		ids:     make(map[string]int, len(order)),
		cmap:    cmap,
		inverse: make(map[string][]rune),
	}
	for id, name := range order {
		if _, dup := ix.ids[name]; !dup {
			ix.ids[name] = id
		}
	}
	for r, name := range cmap {
		ix.inverse[name] = append(ix.inverse[name], r)
	}
	for _, runes := range ix.inverse {
		slices.Sort(runes)
	}
	return ix
}

// FromFont creates an index for the glyph order and cmap of f.
func FromFont(f *otgraph.Font) *Index {
	if f == nil {
		return New(nil, nil)
	}
	return New(f.GlyphOrder, f.CMap)
}

// ID returns the glyph ID of name, or Unknown.
func (ix *Index) ID(name string) int {
	if ix == nil {
		return Unknown
	}
	if id, ok := ix.ids[name]; ok {
		return id
	}
	return Unknown
}

// Has is true if name is part of the glyph order.
func (ix *Index) Has(name string) bool {
	if ix == nil {
		return false
	}
	_, ok := ix.ids[name]
	return ok
}

// Less orders glyph names by glyph ID.
func (ix *Index) Less(a, b string) bool {
	return ix.ID(a) < ix.ID(b)
}

// Len returns the number of glyphs in the glyph order.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.order)
}

// Glyphs returns the glyph order. Clients must not modify the result.
func (ix *Index) Glyphs() []string {
	if ix == nil {
		return nil
	}
	return ix.order
}

// Range iterates over glyph IDs and names in glyph order.
func (ix *Index) Range() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for id, name := range ix.Glyphs() {
			if !yield(id, name) {
				return
			}
		}
	}
}

// Codepoints returns the code points mapped to name by the cmap, in ascending
// order. Clients must not modify the result.
func (ix *Index) Codepoints(name string) []rune {
	if ix == nil {
		return nil
	}
	return ix.inverse[name]
}

// HasUnicode is true if at least one code point maps to name.
func (ix *Index) HasUnicode(name string) bool {
	return len(ix.Codepoints(name)) > 0
}

// GlyphFor returns the glyph a code point is mapped to by the cmap.
func (ix *Index) GlyphFor(r rune) (string, bool) {
	if ix == nil {
		return "", false
	}
	name, ok := ix.cmap[r]
	return name, ok
}
