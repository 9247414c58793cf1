package otgraph

import (
	"slices"
)

// Tag is a 4-byte table identifier, as used throughout OpenType.
type Tag uint32

// MakeTag creates a Tag from 4 bytes.
// If b is shorter or longer, it will be silently padded or cut as appropriate.
func MakeTag(b []byte) Tag {
	var buf [4]byte
	copy(buf[:], "    ")
	if len(b) > 4 {
		b = b[:4]
	}
	copy(buf[:], b)
	return Tag(uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]))
}

// T returns a Tag from a (4-letter) string, e.g. T("GSUB").
func T(t string) Tag {
	return MakeTag([]byte(t))
}

func (t Tag) String() string {
	return string([]byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	})
}

// Tags of the tables the graph may hold.
var (
	GSUB = T("GSUB")
	GPOS = T("GPOS")
	GDEF = T("GDEF")
)

// Font is the mutable table graph of a font. GlyphOrder and CMap are owned by
// the font; layout tables may be nil if absent.
type Font struct {
	Name       string
	GlyphOrder []string        // glyph names, position = glyph ID
	CMap       map[rune]string // best Unicode cmap
	GSub       *LayoutTable
	GPos       *LayoutTable
	GDef       *GDefTable
}

// Layout returns the GSUB or GPOS table of a font, or nil.
func (f *Font) Layout(tag Tag) *LayoutTable {
	if f == nil {
		return nil
	}
	switch tag {
	case GSUB:
		return f.GSub
	case GPOS:
		return f.GPos
	}
	tracer().Debugf("font has no layout table %s", tag)
	return nil
}

// TableTags returns the tags of all layout tables present in f.
func (f *Font) TableTags() []Tag {
	if f == nil {
		return nil
	}
	var tags []Tag
	if f.GDef != nil {
		tags = append(tags, GDEF)
	}
	if f.GPos != nil {
		tags = append(tags, GPOS)
	}
	if f.GSub != nil {
		tags = append(tags, GSUB)
	}
	slices.Sort(tags)
	return tags
}

// NumGlyphs returns the number of glyphs in the glyph order.
func (f *Font) NumGlyphs() int {
	if f == nil {
		return 0
	}
	return len(f.GlyphOrder)
}
