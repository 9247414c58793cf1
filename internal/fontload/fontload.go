/*
Package fontload reads the glyph order and the Unicode cmap of a binary
OpenType font (TTF or OTF) into an otgraph.Font.

Layout tables of binary fonts are not decoded; callers wanting to
canonicalize GSUB, GPOS or GDEF have to go through a TTX dump of the font.
Glyph names come from the 'post' table or the CFF charset. Glyphs without a
name are called "glyphNNNNN", with NNNNN the zero-padded glyph ID.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontload

import (
	"bytes"
	"fmt"
	"os"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'otfeat.fonts'
func tracer() tracing.Trace {
	return tracing.Select("otfeat.fonts")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
	face     *gtfont.Face
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez)
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	if f.face, err = gtfont.ParseTTF(bytes.NewReader(f.Binary)); err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Infof("font has no full name: %v", err)
		f.Fontname = ""
	}
	return f, nil
}

// Load reads a binary font file into a font graph without layout tables.
func Load(fontfile string) (*otgraph.Font, error) {
	sf, err := LoadOpenTypeFont(fontfile)
	if err != nil {
		return nil, err
	}
	return sf.Graph(), nil
}

// Graph returns the glyph order and cmap of the font as a font graph.
func (sf *ScalableFont) Graph() *otgraph.Font {
	f := &otgraph.Font{
		Name:       sf.Fontname,
		GlyphOrder: sf.GlyphOrder(),
		CMap:       make(map[rune]string),
	}
	it := sf.face.Cmap.Iter()
	for it.Next() {
		r, gid := it.Char()
		if int(gid) < len(f.GlyphOrder) {
			f.CMap[r] = f.GlyphOrder[gid]
		}
	}
	tracer().Infof("loaded font %q with %d glyphs and %d cmap entries",
		f.Name, len(f.GlyphOrder), len(f.CMap))
	return f
}

// GlyphOrder lists the glyph names of the font by glyph ID. Missing or
// duplicate names are replaced by "glyphNNNNN".
func (sf *ScalableFont) GlyphOrder() []string {
	n := sf.SFNT.NumGlyphs()
	order := make([]string, n)
	seen := make(map[string]struct{}, n)
	for gid := range n {
		name := sf.face.GlyphName(gtfont.GID(gid))
		if _, dup := seen[name]; name == "" || dup {
			name = fmt.Sprintf("glyph%05d", gid)
		}
		seen[name] = struct{}{}
		order[gid] = name
	}
	return order
}
