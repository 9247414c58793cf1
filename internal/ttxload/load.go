/*
Package ttxload reads fontTools TTX dumps into a mutable otgraph.Font.

TTX is the XML format of fontTools (https://fonttools.readthedocs.io/en/latest/ttx.html).
It is the common interchange format for inspecting compiled layout tables, and
lists glyphs by name, which makes it a natural source for the name-based table
graph of package otgraph. The loader reads the glyph order, the best Unicode
cmap, the full name of the font, GSUB and GPOS lookup lists and the
glyph-indexed parts of GDEF. Script and feature lists are ignored.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttxload

import (
	"encoding/xml"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'otfeat.ttx'
func tracer() tracing.Trace {
	return tracing.Select("otfeat.ttx")
}

// Load reads a TTX file.
func Load(path string) (*otgraph.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a TTX document.
func Parse(data []byte) (*otgraph.Font, error) {
	var font ttxFont
	if err := xml.Unmarshal(data, &font); err != nil {
		return nil, fmt.Errorf("ttx: %w", err)
	}
	f := &otgraph.Font{}
	var err error
	if f.GlyphOrder, err = glyphOrder(font.GlyphOrder); err != nil {
		return nil, err
	}
	f.Name = fullName(font.Name)
	if f.CMap, err = bestCmap(font.Cmap); err != nil {
		return nil, err
	}
	if font.GSUB != nil {
		if f.GSub, err = layoutTable(otgraph.GSUB, font.GSUB); err != nil {
			return nil, err
		}
	}
	if font.GPOS != nil {
		if f.GPos, err = layoutTable(otgraph.GPOS, font.GPOS); err != nil {
			return nil, err
		}
	}
	if font.GDEF != nil {
		if f.GDef, err = gdefTable(font.GDEF); err != nil {
			return nil, err
		}
	}
	tracer().Infof("loaded TTX font %q with %d glyphs, tables %v", f.Name, len(f.GlyphOrder), f.TableTags())
	return f, nil
}

// glyphOrder takes glyphs in document order. fontTools writes IDs in
// ascending order; a missing id attribute reads as 0 and is accepted.
func glyphOrder(gorder ttxGlyphOrder) ([]string, error) {
	order := make([]string, 0, len(gorder.GlyphIDs))
	for i, gid := range gorder.GlyphIDs {
		if gid.ID != i && gid.ID != 0 {
			return nil, fmt.Errorf("ttx: glyph %q has ID %d at position %d", gid.Name, gid.ID, i)
		}
		order = append(order, gid.Name)
	}
	return order, nil
}

func fullName(name *ttxName) string {
	if name == nil {
		return ""
	}
	for _, rec := range name.Records {
		if rec.NameID == 4 {
			return strings.TrimSpace(rec.Text)
		}
	}
	return ""
}

// cmapPreference lists (platformID, platEncID) pairs of Unicode cmaps,
// best first.
var cmapPreference = [][2]int{{3, 10}, {0, 6}, {0, 4}, {3, 1}, {0, 3}, {0, 2}, {0, 1}, {0, 0}}

func bestCmap(cmap *ttxCmap) (map[rune]string, error) {
	m := make(map[rune]string)
	if cmap == nil {
		return m, nil
	}
	best, rank := -1, len(cmapPreference)
	for i, st := range cmap.Subtables {
		if !strings.HasPrefix(st.XMLName.Local, "cmap_format_") {
			continue
		}
		r := slices.Index(cmapPreference, [2]int{st.PlatformID, st.PlatEncID})
		if r >= 0 && r < rank {
			best, rank = i, r
		}
	}
	if best < 0 {
		tracer().Infof("ttx: font has no Unicode cmap")
		return m, nil
	}
	for _, item := range cmap.Subtables[best].Maps {
		code, err := parseInt(item.Code)
		if err != nil {
			return nil, fmt.Errorf("ttx: invalid cmap code %q: %w", item.Code, err)
		}
		m[rune(code)] = item.Name
	}
	return m, nil
}
