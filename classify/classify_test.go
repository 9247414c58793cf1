package classify

import (
	"testing"

	"github.com/npillmayer/otfeat/glyphorder"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type ClassifyTestEnviron struct {
	suite.Suite
	font *otgraph.Font
	cls  *Classifications
}

// listen for 'go test' command --> run test methods
func TestClassifyFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.classify")
	defer teardown()
	suite.Run(t, new(ClassifyTestEnviron))
}

// run once, before test suite methods
func (env *ClassifyTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("otfeat.classify").SetTraceLevel(tracing.LevelInfo)
	env.font = &otgraph.Font{
		GlyphOrder: []string{".notdef", "A", "a", "b", "c", "f", "i", "l", "t", "one", "zero",
			"acutecomb", "gravecomb", "dotbelowcmb",
			"c_t", "c_t.dlig", "ct", "fi", "f_l", "uni0066_uni0069", "f_q",
			"f_q_i", "uni0066_uniFFFF_uni0069",
			"a.ss01", "a.ss00", "a.ss20", "A.sc", "b.smallcap", "z.sc",
			"one.oldstyle", "one.tnum", "zero.lining", "zero.pnum",
			"A.swsh", "t.alt1", "t.calt", "A.salt"},
		CMap: map[rune]string{
			'A': "A", 'a': "a", 'b': "b", 'c': "c", 'f': "f", 'i': "i", 'l': "l", 't': "t",
			'1': "one", '0': "zero", 0x0301: "acutecomb",
		},
	}
	env.cls = ClassifyFont(env.font, DefaultConfig())
}

// --- Tests -----------------------------------------------------------------

func (env *ClassifyTestEnviron) get(name string) *GlyphClassification {
	gc, ok := env.cls.Get(name)
	env.Require().True(ok, "glyph %q not classified", name)
	return gc
}

func (env *ClassifyTestEnviron) TestEveryGlyphClassified() {
	env.Equal(len(env.font.GlyphOrder), env.cls.Len())
	env.False(env.get("a").IsClassified())
	env.False(env.get(".notdef").IsClassified())
}

func (env *ClassifyTestEnviron) TestLigatures() {
	gc := env.get("c_t")
	env.True(gc.IsLigature)
	env.False(gc.IsDiscretionary)
	env.Equal([]string{"c", "t"}, gc.Components)
	//
	gc = env.get("c_t.dlig")
	env.True(gc.IsLigature)
	env.True(gc.IsDiscretionary)
	//
	gc = env.get("ct")
	env.True(gc.IsLigature, "letter pairs are ligatures")
	env.Equal([]string{"c", "t"}, gc.Components)
	//
	env.False(env.get("fi").IsLigature, "fi is the precomposed U+FB01")
	env.Equal([]string{"f", "i"}, env.get("uni0066_uni0069").Components)
	env.False(env.get("f_q").IsLigature, "q is not part of the font")
	gc = env.get("f_q_i")
	env.False(gc.IsLigature, "one unresolved component rejects the whole name")
	env.Nil(gc.Components)
	env.False(env.get("uni0066_uniFFFF_uni0069").IsLigature, "U+FFFF is not in the cmap")
	env.Equal([]string{"c_t", "c_t.dlig", "ct", "f_l", "uni0066_uni0069"}, env.cls.Ligatures())
}

func (env *ClassifyTestEnviron) TestStylisticSets() {
	gc := env.get("a.ss01")
	env.True(gc.IsStylisticAlt)
	env.Equal(1, gc.StylisticSet.Or(0))
	env.Equal("a", gc.Base.Or(""))
	env.False(env.get("a.ss00").IsStylisticAlt)
	env.Equal(20, env.get("a.ss20").StylisticSet.Or(0))
	env.False(env.get("A.salt").IsContextualAlt)
}

func (env *ClassifyTestEnviron) TestSmallCaps() {
	gc := env.get("A.sc")
	env.True(gc.IsSmallCap)
	env.Equal("A", gc.Base.Or(""))
	env.True(env.get("b.smallcap").IsSmallCap)
	env.False(env.get("z.sc").IsSmallCap, "base z is not part of the font")
}

func (env *ClassifyTestEnviron) TestFigures() {
	for _, tt := range []struct {
		name string
		kind FigureKind
		base string
	}{
		{"one.oldstyle", FigureOldstyle, "one"},
		{"one.tnum", FigureTabular, "one"},
		{"zero.lining", FigureLining, "zero"},
		{"zero.pnum", FigureProportional, "zero"},
	} {
		gc := env.get(tt.name)
		env.True(gc.IsFigureVariant, tt.name)
		kind, ok := gc.Figure.Unwrap()
		env.True(ok)
		env.Equal(tt.kind, kind, tt.name)
		env.Equal(tt.base, gc.Base.Or(""))
	}
}

func (env *ClassifyTestEnviron) TestSwashAndContextual() {
	env.True(env.get("A.swsh").IsSwash)
	env.True(env.get("t.alt1").IsContextualAlt)
	env.True(env.get("t.calt").IsContextualAlt)
	env.Equal("t", env.get("t.calt").Base.Or(""))
}

func (env *ClassifyTestEnviron) TestMarks() {
	origin, ok := env.get("acutecomb").Mark.Unwrap()
	env.True(ok)
	env.Equal(MarkByUnicode, origin)
	origin, ok = env.get("gravecomb").Mark.Unwrap()
	env.True(ok)
	env.Equal(MarkByPattern, origin)
	env.Equal([]string{"acutecomb", "gravecomb", "dotbelowcmb"}, env.cls.Marks())
}

func (env *ClassifyTestEnviron) TestAggregate() {
	fc := Aggregate(env.cls)
	env.Len(fc.Liga, 4)
	env.Equal([]LigatureCandidate{{Components: []string{"c", "t"}, Ligature: "c_t.dlig"}}, fc.Dlig)
	env.Equal([]int{1, 20}, fc.StylisticSetNumbers())
	env.Equal([]AlternateCandidate{{Base: "a", Variant: "a.ss01"}}, fc.StylisticSets[1])
	env.Equal([]AlternateCandidate{{Base: "A", Variant: "A.sc"}, {Base: "b", Variant: "b.smallcap"}}, fc.Smcp)
	env.Len(fc.Onum, 1)
	env.Len(fc.Tnum, 1)
	env.Len(fc.Lnum, 1)
	env.Len(fc.Pnum, 1)
	env.Len(fc.Swsh, 1)
	env.Len(fc.Calt, 2)
	env.Equal([]string{"calt", "dlig", "liga", "lnum", "onum", "pnum", "smcp", "ss01", "ss20", "swsh", "tnum"}, fc.Tags())
	env.Equal(5+2+2+4+1+2, fc.Count())
}

// --- Plain tests -----------------------------------------------------------

func TestLigatureNeedsUnicodeMajority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.classify")
	defer teardown()
	//
	ix := glyphorder.New([]string{".notdef", "a", "b", "x", "a_b_x", "a_b"}, map[rune]string{'a': "a"})
	c := New(ix, DefaultConfig())
	if gc := c.Classify("a_b_x"); gc.IsLigature {
		t.Errorf("a_b_x has only 1 of 3 components with Unicode, must not be a ligature")
	}
	if gc := c.Classify("a_b"); !gc.IsLigature {
		t.Errorf("a_b has 1 of 2 components with Unicode, expected a ligature")
	}
}

func TestPrecomposedLigature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.classify")
	defer teardown()
	//
	for name, expected := range map[string]bool{"fi": true, "fl": true, "ct": false} {
		if isPrecomposedLigature(name) != expected {
			t.Errorf("precomposed ligature check for %q: expected %v", name, expected)
		}
	}
}

func TestConfigFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.classify")
	defer teardown()
	//
	conf, err := ConfigFrom(nil)
	if err != nil || len(conf.MarkPatterns) != len(DefaultMarkPatterns) {
		t.Fatalf("expected default configuration, got %v / %v", conf, err)
	}
	conf, err = ConfigFrom(testconfig.Conf{MarkPatternsKey: " "})
	if err != nil || len(conf.MarkPatterns) != len(DefaultMarkPatterns) {
		t.Fatalf("expected blank setting to select defaults, got %v / %v", conf, err)
	}
	conf, err = ConfigFrom(testconfig.Conf{MarkPatternsKey: "accent.*, mark"})
	if err != nil {
		t.Fatal(err)
	}
	if len(conf.MarkPatterns) != 2 {
		t.Fatalf("expected 2 mark patterns, got %d", len(conf.MarkPatterns))
	}
	ix := glyphorder.New([]string{"accentgrave", "markfoo", "umark"}, nil)
	c := New(ix, conf)
	for name, isMark := range map[string]bool{"AccentGrave": true, "markfoo": true, "umark": false} {
		if c.Classify(name).IsMark != isMark {
			t.Errorf("mark detection for %q: expected %v", name, isMark)
		}
	}
	if _, err = ConfigFrom(testconfig.Conf{MarkPatternsKey: "("}); err == nil {
		t.Errorf("expected invalid pattern to be rejected")
	}
}
