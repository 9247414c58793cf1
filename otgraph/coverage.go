package otgraph

import (
	"iter"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Coverage is an ordered sequence of glyph names. For matching it is a set;
// the order is the serialization order, which OpenType requires to be
// ascending by glyph ID. A glyph must not occur twice.
type Coverage struct {
	Glyphs []string
}

// NewCoverage creates a coverage from a list of glyph names, in the order given.
func NewCoverage(glyphs ...string) *Coverage {
	return &Coverage{Glyphs: slices.Clone(glyphs)}
}

// Len returns the number of glyphs covered.
func (c *Coverage) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Glyphs)
}

// IsEmpty is true for a nil coverage or one without glyphs.
func (c *Coverage) IsEmpty() bool {
	return c.Len() == 0
}

// Index returns the coverage index of glyph g.
func (c *Coverage) Index(g string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i := slices.Index(c.Glyphs, g)
	return i, i >= 0
}

// Contains is true if g is covered.
func (c *Coverage) Contains(g string) bool {
	_, ok := c.Index(g)
	return ok
}

// Range iterates over coverage index and glyph name.
func (c *Coverage) Range() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		if c == nil {
			return
		}
		for i, g := range c.Glyphs {
			if !yield(i, g) {
				return
			}
		}
	}
}

// --- Glyph-keyed mappings --------------------------------------------------

// GlyphMap is a mapping from glyph names to values of type V, with an explicit
// iteration order. Insertion of an existing key keeps its position.
type GlyphMap[V any] struct {
	m *linkedhashmap.Map
}

// NewGlyphMap creates an empty glyph map.
func NewGlyphMap[V any]() *GlyphMap[V] {
	return &GlyphMap[V]{m: linkedhashmap.New()}
}

// Put inserts or updates the value for glyph g.
func (gm *GlyphMap[V]) Put(g string, v V) {
	if gm.m == nil {
		gm.m = linkedhashmap.New()
	}
	gm.m.Put(g, v)
}

// Get returns the value for glyph g.
func (gm *GlyphMap[V]) Get(g string) (V, bool) {
	var zero V
	if gm == nil || gm.m == nil {
		return zero, false
	}
	v, found := gm.m.Get(g)
	if !found {
		return zero, false
	}
	return v.(V), true
}

// Len returns the number of entries.
func (gm *GlyphMap[V]) Len() int {
	if gm == nil || gm.m == nil {
		return 0
	}
	return gm.m.Size()
}

// Keys returns the glyph names in iteration order.
func (gm *GlyphMap[V]) Keys() []string {
	if gm == nil || gm.m == nil {
		return nil
	}
	keys := make([]string, 0, gm.m.Size())
	for _, k := range gm.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Range iterates over the entries in iteration order.
func (gm *GlyphMap[V]) Range() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if gm == nil || gm.m == nil {
			return
		}
		it := gm.m.Iterator()
		for it.Next() {
			if !yield(it.Key().(string), it.Value().(V)) {
				return
			}
		}
	}
}

// Rebuild replaces the iteration order by order. Entries are carried over
// for every glyph in order which has an entry; glyphs of order without an
// entry are skipped, and entries for glyphs not contained in order are
// removed. Rebuild returns the number of removed entries.
func (gm *GlyphMap[V]) Rebuild(order []string) (dropped int) {
	if gm == nil || gm.m == nil {
		return 0
	}
	rebuilt := linkedhashmap.New()
	for _, g := range order {
		if v, found := gm.m.Get(g); found {
			rebuilt.Put(g, v)
		}
	}
	dropped = gm.m.Size() - rebuilt.Size()
	gm.m = rebuilt
	return dropped
}

// ClassDef maps glyphs to classes. Glyphs not contained in a ClassDef are
// implicitly in class 0.
type ClassDef = GlyphMap[int]

// NewClassDef creates an empty class definition.
func NewClassDef() *ClassDef {
	return NewGlyphMap[int]()
}

// ClassOf returns the class of glyph g in cd, defaulting to 0.
func ClassOf(cd *ClassDef, g string) int {
	c, _ := cd.Get(g)
	return c
}
