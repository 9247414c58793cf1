package classify

import (
	"iter"

	"github.com/npillmayer/otfeat/otgraph"
)

// FigureKind is the kind of a figure variant.
type FigureKind int

const (
	FigureOldstyle     FigureKind = iota // onum
	FigureLining                         // lnum
	FigureTabular                        // tnum
	FigureProportional                   // pnum
)

// Tag returns the feature tag of a figure kind.
func (k FigureKind) Tag() string {
	switch k {
	case FigureOldstyle:
		return "onum"
	case FigureLining:
		return "lnum"
	case FigureTabular:
		return "tnum"
	case FigureProportional:
		return "pnum"
	}
	return "????"
}

func (k FigureKind) String() string {
	return k.Tag()
}

// MarkOrigin tells how a mark has been recognized.
type MarkOrigin int

const (
	MarkByUnicode MarkOrigin = iota // a code point has general category Mn, Mc or Me
	MarkByPattern                   // the name matches a mark pattern
)

func (o MarkOrigin) String() string {
	if o == MarkByUnicode {
		return "unicode"
	}
	return "pattern"
}

// GlyphClassification holds the results of all detectors for one glyph.
// Flags are independent of each other.
type GlyphClassification struct {
	Glyph string

	IsLigature      bool
	IsDiscretionary bool // ligature with an explicit .dlig suffix
	IsStylisticAlt  bool
	IsSmallCap      bool
	IsFigureVariant bool
	IsSwash         bool
	IsContextualAlt bool
	IsMark          bool

	Components   []string // ligature components, nil for non-ligatures
	StylisticSet otgraph.Option[int]
	Base         otgraph.Option[string] // base glyph of a variant
	Figure       otgraph.Option[FigureKind]
	Mark         otgraph.Option[MarkOrigin]
}

// IsClassified is true if any detector has flagged the glyph.
func (gc *GlyphClassification) IsClassified() bool {
	if gc == nil {
		return false
	}
	return gc.IsLigature || gc.IsStylisticAlt || gc.IsSmallCap || gc.IsFigureVariant ||
		gc.IsSwash || gc.IsContextualAlt || gc.IsMark
}

// Classifications holds the classification of every glyph of a glyph order.
type Classifications struct {
	order  []string
	byName map[string]*GlyphClassification
}

func newClassifications(capacity int) *Classifications {
	return &Classifications{
		order:  make([]string, 0, capacity),
		byName: make(map[string]*GlyphClassification, capacity),
	}
}

func (cs *Classifications) add(gc *GlyphClassification) {
	if _, dup := cs.byName[gc.Glyph]; dup {
		return
	}
	cs.order = append(cs.order, gc.Glyph)
	cs.byName[gc.Glyph] = gc
}

// Get returns the classification of a glyph.
func (cs *Classifications) Get(glyph string) (*GlyphClassification, bool) {
	if cs == nil {
		return nil, false
	}
	gc, ok := cs.byName[glyph]
	return gc, ok
}

// Len returns the number of glyphs classified.
func (cs *Classifications) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.order)
}

// Range iterates over the classifications in glyph order.
func (cs *Classifications) Range() iter.Seq2[string, *GlyphClassification] {
	return func(yield func(string, *GlyphClassification) bool) {
		if cs == nil {
			return
		}
		for _, g := range cs.order {
			if !yield(g, cs.byName[g]) {
				return
			}
		}
	}
}

// Marks returns the glyphs flagged as marks, in glyph order.
func (cs *Classifications) Marks() []string {
	var marks []string
	for g, gc := range cs.Range() {
		if gc.IsMark {
			marks = append(marks, g)
		}
	}
	return marks
}

// Ligatures returns the glyphs flagged as ligatures, in glyph order.
func (cs *Classifications) Ligatures() []string {
	var ligs []string
	for g, gc := range cs.Range() {
		if gc.IsLigature {
			ligs = append(ligs, g)
		}
	}
	return ligs
}
