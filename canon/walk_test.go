package canon

import (
	"testing"

	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type WalkTestEnviron struct {
	suite.Suite
	font *otgraph.Font
	// handles into the font, for inspection
	ligs   *otgraph.LigatureSubst
	chain  *otgraph.ChainContextSubtable
	single *otgraph.SingleSubst
	marks  *otgraph.MarkAttachPos
}

// listen for 'go test' command --> run test methods
func TestWalkFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	suite.Run(t, new(WalkTestEnviron))
}

// run before each test, as tests mutate the font
func (env *WalkTestEnviron) SetupTest() {
	tracing.Select("otfeat.canon").SetTraceLevel(tracing.LevelInfo)
	order := []string{".notdef", "a", "b", "c", "f", "i", "l", "f_i", "f_l", "c_t",
		"t", "acutecomb", "gravecomb", "a.sc", "b.sc"}
	ligs := otgraph.NewGlyphMap[[]otgraph.Ligature]()
	ligs.Put("f", []otgraph.Ligature{
		{Components: []string{"l"}, Glyph: "f_l"},
		{Components: []string{"i"}, Glyph: "f_i"},
	})
	ligs.Put("c", []otgraph.Ligature{{Components: []string{"t"}, Glyph: "c_t"}})
	env.ligs = &otgraph.LigatureSubst{
		Format:       1,
		Coverage:     otgraph.NewCoverage("f", "c"),
		LigatureSets: ligs,
	}
	env.chain = &otgraph.ChainContextSubtable{
		Format:    3,
		Backtrack: []*otgraph.Coverage{otgraph.NewCoverage("c", "a")},
		Input:     []*otgraph.Coverage{otgraph.NewCoverage("t", "b"), otgraph.NewCoverage("a")},
		LookAhead: []*otgraph.Coverage{otgraph.NewCoverage()},
	}
	mapping := otgraph.NewGlyphMap[string]()
	mapping.Put("b", "b.sc")
	mapping.Put("a", "a.sc")
	env.single = &otgraph.SingleSubst{Format: 2, Coverage: otgraph.NewCoverage("b", "a"), Mapping: mapping}
	anchor := otgraph.Some(otgraph.Anchor{Format: 1, XCoordinate: 250, YCoordinate: 500})
	env.marks = &otgraph.MarkAttachPos{
		Attach:       otgraph.MarkToBase,
		Format:       1,
		MarkCoverage: otgraph.NewCoverage("gravecomb", "acutecomb"),
		BaseCoverage: otgraph.NewCoverage("b", "a"),
		ClassCount:   1,
		Marks:        []otgraph.MarkRecord{{Class: 0, Anchor: anchor}, {Class: 1, Anchor: anchor}},
		Bases: []otgraph.AttachRecord{
			{Components: [][]otgraph.Option[otgraph.Anchor]{{anchor}}},
			{Components: [][]otgraph.Option[otgraph.Anchor]{{otgraph.None[otgraph.Anchor]()}}},
		},
	}
	glyphClasses := otgraph.NewClassDef()
	glyphClasses.Put("gravecomb", int(otgraph.MarkGlyph))
	glyphClasses.Put("f_i", int(otgraph.LigatureGlyph))
	glyphClasses.Put("a", int(otgraph.BaseGlyph))
	env.font = &otgraph.Font{
		GlyphOrder: order,
		GSub: &otgraph.LayoutTable{Tag: otgraph.GSUB, Lookups: []*otgraph.Lookup{
			{Index: 0, Type: otgraph.GSubLookupTypeLigature, Subtables: []otgraph.Subtable{env.ligs}},
			{Index: 1, Type: otgraph.GSubLookupTypeChainingContext, Subtables: []otgraph.Subtable{env.chain}},
			{Index: 2, Type: otgraph.GSubLookupTypeExtensionSubs, Subtables: []otgraph.Subtable{
				&otgraph.ExtensionSubtable{Format: 1, ExtensionType: otgraph.GSubLookupTypeSingle, Subtable: env.single},
			}},
		}},
		GPos: &otgraph.LayoutTable{Tag: otgraph.GPOS, Lookups: []*otgraph.Lookup{
			{Index: 0, Type: otgraph.GPosLookupTypeMarkToBase, Subtables: []otgraph.Subtable{env.marks}},
		}},
		GDef: &otgraph.GDefTable{
			GlyphClassDef: glyphClasses,
			LigCaretList: &otgraph.LigCaretList{
				Coverage: otgraph.NewCoverage("f_l", "f_i"),
				LigGlyphs: []otgraph.LigGlyph{
					{Carets: []otgraph.CaretValue{{Format: 1, Coordinate: 310}}},
					{Carets: []otgraph.CaretValue{{Format: 1, Coordinate: 290}}},
				},
			},
			AttachList: &otgraph.AttachList{Coverage: otgraph.NewCoverage("b", "a")},
		},
	}
}

// --- Tests -----------------------------------------------------------------

func (env *WalkTestEnviron) TestGSubCounts() {
	r := Normalize(env.font)
	gsub, ok := r.Table(otgraph.GSUB)
	env.Require().True(ok)
	// ligature coverage, 4 contextual coverages, single subst coverage
	env.Equal(6, gsub.Found)
	// ligature coverage, backtrack[0], input[0], single subst coverage
	env.Equal(4, gsub.Reordered)
	env.Equal([]string{"c", "f"}, env.ligs.Coverage.Glyphs)
	env.Equal([]string{"c", "f"}, env.ligs.LigatureSets.Keys())
	env.Equal([]string{"a", "c"}, env.chain.Backtrack[0].Glyphs)
	env.Equal([]string{"b", "t"}, env.chain.Input[0].Glyphs)
	env.Equal([]string{"a", "b"}, env.single.Coverage.Glyphs)
	env.Equal([]string{"a", "b"}, env.single.Mapping.Keys())
	out, _ := env.single.Mapping.Get("a")
	env.Equal("a.sc", out)
}

func (env *WalkTestEnviron) TestGPosMarkRecordsFollow() {
	r := Normalize(env.font)
	gpos, ok := r.Table(otgraph.GPOS)
	env.Require().True(ok)
	env.Equal(2, gpos.Found)
	env.Equal(2, gpos.Reordered)
	env.Equal([]string{"acutecomb", "gravecomb"}, env.marks.MarkCoverage.Glyphs)
	env.Equal(1, env.marks.Marks[0].Class, "mark record of acutecomb must move with it")
	env.Equal([]string{"a", "b"}, env.marks.BaseCoverage.Glyphs)
	env.True(env.marks.Bases[0].Components[0][0].IsNone(), "base record of a must move with it")
}

func (env *WalkTestEnviron) TestGDef() {
	r := Normalize(env.font)
	gdef, ok := r.Table(otgraph.GDEF)
	env.Require().True(ok)
	env.Equal(2, gdef.Found)
	env.Equal(2, gdef.Reordered)
	env.Equal(1, gdef.ClassDefsReordered)
	lcl := env.font.GDef.LigCaretList
	env.Equal([]string{"f_i", "f_l"}, lcl.Coverage.Glyphs)
	env.Equal(290, lcl.LigGlyphs[0].Carets[0].Coordinate)
	env.Equal([]string{"a", "f_i", "gravecomb"}, env.font.GDef.GlyphClassDef.Keys())
}

func (env *WalkTestEnviron) TestCaretMismatchIsPreserved() {
	lcl := env.font.GDef.LigCaretList
	lcl.LigGlyphs = lcl.LigGlyphs[:1]
	r := Normalize(env.font)
	gdef, _ := r.Table(otgraph.GDEF)
	env.Equal(1, gdef.Aborted)
	env.Equal([]string{"f_l", "f_i"}, lcl.Coverage.Glyphs, "caret coverage must not be sorted on mismatch")
	env.Require().NotEmpty(r.Issues)
	env.Equal(ReasonLengthMismatch, r.Issues[0].Reason)
	env.Equal(SeverityMajor, r.Issues[0].Severity)
}

func (env *WalkTestEnviron) TestSortedCaretMismatchIsNoAbort() {
	lcl := env.font.GDef.LigCaretList
	lcl.Coverage = otgraph.NewCoverage("f_i", "f_l")
	lcl.LigGlyphs = lcl.LigGlyphs[:1]
	r := Normalize(env.font)
	gdef, _ := r.Table(otgraph.GDEF)
	env.Zero(gdef.Aborted)
	env.Equal(2, gdef.Found)
	env.Equal(1, gdef.Reordered, "only the attach list needed sorting")
	for _, is := range r.Issues {
		env.NotEqual(ReasonLengthMismatch, is.Reason, is.Error())
	}
}

func (env *WalkTestEnviron) TestIdempotence() {
	first := Normalize(env.font)
	env.Positive(first.Total.Reordered)
	second := Normalize(env.font)
	env.Equal(first.Total.Found, second.Total.Found)
	env.Zero(second.Total.Reordered)
	env.Zero(second.Total.ClassDefsReordered)
}
