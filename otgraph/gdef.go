package otgraph

// GlyphClass lists the glyph classes of a GDEF GlyphClassDef.
type GlyphClass int

const (
	UnclassifiedGlyph GlyphClass = iota
	BaseGlyph                    // single character, spacing glyph
	LigatureGlyph                // multiple character, spacing glyph
	MarkGlyph                    // non-spacing combining glyph
	ComponentGlyph               // part of single character, spacing glyph
)

func (c GlyphClass) String() string {
	switch c {
	case BaseGlyph:
		return "base"
	case LigatureGlyph:
		return "ligature"
	case MarkGlyph:
		return "mark"
	case ComponentGlyph:
		return "component"
	}
	return "unclassified"
}

// GDefTable holds the parts of a GDEF table which are indexed by glyph.
type GDefTable struct {
	GlyphClassDef      *ClassDef
	AttachList         *AttachList
	LigCaretList       *LigCaretList
	MarkAttachClassDef *ClassDef
	MarkGlyphSets      []*Coverage
}

// AttachList lists attachment points for glyphs. If AttachPoints is non-empty,
// it is aligned to Coverage.
type AttachList struct {
	Coverage     *Coverage
	AttachPoints [][]int
}

// CaretValue is a caret position within a ligature glyph.
type CaretValue struct {
	Format     int
	Coordinate int
	PointIndex int
}

// LigGlyph holds the caret positions of one ligature glyph.
type LigGlyph struct {
	Carets []CaretValue
}

// LigCaretList lists caret positions for ligature glyphs. LigGlyphs is
// aligned to Coverage.
type LigCaretList struct {
	Coverage  *Coverage
	LigGlyphs []LigGlyph
}

// GlyphClassOf returns the GDEF glyph class of g.
func (gdef *GDefTable) GlyphClassOf(g string) GlyphClass {
	if gdef == nil || gdef.GlyphClassDef == nil {
		return UnclassifiedGlyph
	}
	return GlyphClass(ClassOf(gdef.GlyphClassDef, g))
}
