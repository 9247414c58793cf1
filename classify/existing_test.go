package classify

import (
	"testing"

	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func singles(pairs ...string) *otgraph.GlyphMap[string] {
	m := otgraph.NewGlyphMap[string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Put(pairs[i], pairs[i+1])
	}
	return m
}

func ligatures(first string, ligs ...otgraph.Ligature) *otgraph.GlyphMap[[]otgraph.Ligature] {
	m := otgraph.NewGlyphMap[[]otgraph.Ligature]()
	m.Put(first, ligs)
	return m
}

// gsubFont has substitutions in lookups of type 1 and 4, extension lookups
// wrapping both, and lookups of type 3 and 6 which must be ignored.
func gsubFont() *otgraph.Font {
	gsub := otgraph.NewLayoutTable(otgraph.GSUB)
	gsub.Lookups = []*otgraph.Lookup{
		{Index: 0, Type: otgraph.GSubLookupTypeSingle, Subtables: []otgraph.Subtable{
			&otgraph.SingleSubst{Format: 2, Coverage: otgraph.NewCoverage("a"), Mapping: singles("a", "a.sc")},
			(*otgraph.SingleSubst)(nil),
		}},
		{Index: 1, Type: otgraph.GSubLookupTypeLigature, Subtables: []otgraph.Subtable{
			&otgraph.LigatureSubst{Format: 1, Coverage: otgraph.NewCoverage("f"),
				LigatureSets: ligatures("f", otgraph.Ligature{Components: []string{"i"}, Glyph: "f_i"})},
		}},
		{Index: 2, Type: otgraph.GSubLookupTypeAlternate, Subtables: []otgraph.Subtable{
			&otgraph.AlternateSubst{Format: 1, Coverage: otgraph.NewCoverage("a"),
				Alternates: func() *otgraph.GlyphMap[[]string] {
					m := otgraph.NewGlyphMap[[]string]()
					m.Put("a", []string{"a.ss01"})
					return m
				}()},
		}},
		{Index: 3, Type: otgraph.GSubLookupTypeChainingContext, Subtables: []otgraph.Subtable{
			&otgraph.ChainContextSubtable{Format: 3,
				Input:   []*otgraph.Coverage{otgraph.NewCoverage("b")},
				Records: []otgraph.SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 0}}},
		}},
		{Index: 4, Type: otgraph.GSubLookupTypeExtensionSubs, Subtables: []otgraph.Subtable{
			&otgraph.ExtensionSubtable{Format: 1, ExtensionType: otgraph.GSubLookupTypeSingle,
				Subtable: &otgraph.SingleSubst{Format: 1, Coverage: otgraph.NewCoverage("one"),
					Mapping: singles("one", "one.oldstyle")}},
		}},
		{Index: 5, Type: otgraph.GSubLookupTypeExtensionSubs, Subtables: []otgraph.Subtable{
			&otgraph.ExtensionSubtable{Format: 1, ExtensionType: otgraph.GSubLookupTypeLigature,
				Subtable: &otgraph.LigatureSubst{Format: 1, Coverage: otgraph.NewCoverage("c"),
					LigatureSets: ligatures("c", otgraph.Ligature{Components: []string{"t"}, Glyph: "c_t"})}},
		}},
	}
	return &otgraph.Font{
		GlyphOrder: []string{".notdef", "a", "b", "c", "f", "i", "t", "one",
			"a.sc", "a.ss01", "f_i", "c_t", "one.oldstyle"},
		GSub: gsub,
	}
}

func TestExtractExistingWithoutGSub(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.classify")
	defer teardown()
	//
	for _, f := range []*otgraph.Font{nil, {GlyphOrder: []string{".notdef", "a"}}} {
		ex := ExtractExisting(f)
		assert.NotNil(t, ex)
		assert.Empty(t, ex.Ligatures())
		assert.Empty(t, ex.Singles())
		assert.False(t, ex.HasSingle("a", "a.sc"))
	}
}

func TestExtractExisting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.classify")
	defer teardown()
	//
	ex := ExtractExisting(gsubFont())
	assert.Equal(t, [][]string{{"c", "t"}, {"f", "i"}}, ex.Ligatures())
	assert.Equal(t, []SinglePair{{In: "a", Out: "a.sc"}, {In: "one", Out: "one.oldstyle"}}, ex.Singles())
	//
	assert.True(t, ex.HasLigature([]string{"f", "i"}))
	assert.True(t, ex.HasLigature([]string{"c", "t"}), "ligature inside an extension lookup")
	assert.False(t, ex.HasLigature([]string{"i", "f"}), "component order matters")
	assert.False(t, ex.HasLigature([]string{"f"}))
	assert.True(t, ex.HasSingle("one", "one.oldstyle"), "single substitution inside an extension lookup")
	assert.False(t, ex.HasSingle("a", "a.ss01"), "alternate substitutions are not inspected")
	assert.False(t, ex.HasSingle("a.sc", "a"))
}

func TestWithoutExisting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.classify")
	defer teardown()
	//
	fc := &FeatureCandidates{
		Liga: []LigatureCandidate{
			{Components: []string{"f", "i"}, Ligature: "f_i"},
			{Components: []string{"f", "l"}, Ligature: "f_l"},
		},
		Dlig:          []LigatureCandidate{{Components: []string{"c", "t"}, Ligature: "c_t.dlig"}},
		StylisticSets: map[int][]AlternateCandidate{1: {{Base: "a", Variant: "a.ss01"}}},
		Smcp:          []AlternateCandidate{{Base: "a", Variant: "a.sc"}, {Base: "b", Variant: "b.sc"}},
		Onum:          []AlternateCandidate{{Base: "one", Variant: "one.oldstyle"}},
	}
	fresh := fc.WithoutExisting(ExtractExisting(gsubFont()))
	assert.Equal(t, []LigatureCandidate{{Components: []string{"f", "l"}, Ligature: "f_l"}}, fresh.Liga)
	assert.Empty(t, fresh.Dlig, "c t is substituted already, whatever the ligature glyph")
	assert.Equal(t, []AlternateCandidate{{Base: "b", Variant: "b.sc"}}, fresh.Smcp)
	assert.Equal(t, []AlternateCandidate{{Base: "a", Variant: "a.ss01"}}, fresh.StylisticSets[1])
	assert.Empty(t, fresh.Onum)
	assert.Equal(t, []string{"liga", "smcp", "ss01"}, fresh.Tags())
	assert.Equal(t, 3, fresh.Count())
	assert.Equal(t, 7, fc.Count(), "input candidates are left untouched")
	//
	assert.Equal(t, fc.Count(), fc.WithoutExisting(nil).Count())
}
