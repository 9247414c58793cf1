package ttxload

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/otfeat/otgraph"
)

func gdefTable(g *ttxGDEF) (*otgraph.GDefTable, error) {
	gdef := &otgraph.GDefTable{}
	if g.GlyphClassDef != nil {
		gdef.GlyphClassDef = classDef(*g.GlyphClassDef)
	}
	if g.MarkAttachClassDef != nil {
		gdef.MarkAttachClassDef = classDef(*g.MarkAttachClassDef)
	}
	if g.AttachList != nil {
		al := &otgraph.AttachList{Coverage: otgraph.NewCoverage(g.AttachList.Coverage.Glyphs()...)}
		points := byIndex(g.AttachList.AttachPoint, func(ap ttxAttachPoint) int { return ap.Index })
		for _, ap := range points {
			al.AttachPoints = append(al.AttachPoints, intValues(ap.PointIndex))
		}
		gdef.AttachList = al
	}
	if g.LigCaretList != nil {
		lcl := &otgraph.LigCaretList{Coverage: otgraph.NewCoverage(g.LigCaretList.Coverage.Glyphs()...)}
		ligs := byIndex(g.LigCaretList.LigGlyph, func(lg ttxLigGlyph) int { return lg.Index })
		for _, lg := range ligs {
			var glyph otgraph.LigGlyph
			for _, cv := range byIndex(lg.CaretValue, func(cv ttxCaretValue) int { return cv.Index }) {
				caret, err := cv.toCaret()
				if err != nil {
					return nil, fmt.Errorf("ttx: GDEF LigCaretList: %w", err)
				}
				glyph.Carets = append(glyph.Carets, caret)
			}
			lcl.LigGlyphs = append(lcl.LigGlyphs, glyph)
		}
		gdef.LigCaretList = lcl
	}
	if g.MarkGlyphSetsDef != nil {
		gdef.MarkGlyphSets = coverages(g.MarkGlyphSetsDef.Coverage)
	}
	return gdef, nil
}

func (cv ttxCaretValue) toCaret() (otgraph.CaretValue, error) {
	caret := otgraph.CaretValue{Format: 1}
	if cv.FormatAttr != "" {
		f, err := strconv.Atoi(cv.FormatAttr)
		if err != nil {
			return caret, fmt.Errorf("invalid caret format %q", cv.FormatAttr)
		}
		caret.Format = f
	}
	switch caret.Format {
	case 1, 3:
		caret.Coordinate = cv.Coordinate.IntOr(0)
	case 2:
		caret.PointIndex = cv.CaretValuePoint.IntOr(0)
	default:
		return caret, fmt.Errorf("unsupported caret format %d", caret.Format)
	}
	return caret, nil
}
