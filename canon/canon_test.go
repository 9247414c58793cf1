package canon

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/otfeat/glyphorder"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphOrder creates a glyph order of size n with names placed at given IDs
// and filler names "gNN" elsewhere.
func glyphOrder(n int, placed map[int]string) []string {
	order := make([]string, n)
	for i := range order {
		if name, ok := placed[i]; ok {
			order[i] = name
		} else {
			order[i] = fmt.Sprintf("g%d", i)
		}
	}
	return order
}

func azmIndex() *glyphorder.Index {
	return glyphorder.New(glyphOrder(81, map[int]string{3: "a", 50: "m", 80: "z"}), nil)
}

func TestSortCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	//
	c := New(azmIndex())
	for _, tt := range []struct {
		in      []string
		want    []string
		changed bool
	}{
		{[]string{"z", "a", "m"}, []string{"a", "m", "z"}, true},
		{[]string{"a", "m", "z"}, []string{"a", "m", "z"}, false},
		{[]string{"q", "z", "p", "a"}, []string{"a", "z", "q", "p"}, true}, // unknowns last, stable
		{[]string{"a", "q", "p"}, []string{"a", "q", "p"}, false},
	} {
		cov := otgraph.NewCoverage(tt.in...)
		changed := c.SortCoverage(cov)
		assert.Equal(t, tt.changed, changed, "changed flag for %v", tt.in)
		assert.Equal(t, tt.want, cov.Glyphs)
		assert.False(t, c.SortCoverage(cov), "second sort of %v must be a no-op", tt.in)
	}
	assert.False(t, c.SortCoverage(nil))
	assert.False(t, c.SortCoverage(otgraph.NewCoverage()))
}

func TestSortClassDef(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	//
	c := New(azmIndex())
	cd := otgraph.NewClassDef()
	cd.Put("z", 1)
	cd.Put("a", 2)
	cd.Put("m", 1)
	require.True(t, c.SortClassDef(cd))
	assert.Equal(t, []string{"a", "m", "z"}, cd.Keys())
	assert.Equal(t, 2, otgraph.ClassOf(cd, "a"))
	assert.Equal(t, 1, otgraph.ClassOf(cd, "z"))
	assert.False(t, c.SortClassDef(cd))
	assert.False(t, c.SortClassDef(nil))
}

func TestReorderKeepsPairing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	//
	c := New(azmIndex())
	cov := otgraph.NewCoverage("z", "a", "m")
	deps := []string{"for-z", "for-a", "for-m"}
	values := []int{80, 3, 50}
	o := c.Reorder(cov, Parallel(&deps), Parallel(&values))
	require.True(t, o.Changed)
	require.False(t, o.Aborted())
	assert.Equal(t, []string{"a", "m", "z"}, cov.Glyphs)
	assert.Equal(t, []string{"for-a", "for-m", "for-z"}, deps)
	assert.Equal(t, []int{3, 50, 80}, values)
	o = c.Reorder(cov, Parallel(&deps), Parallel(&values))
	assert.False(t, o.Changed)
}

func TestReorderAbortsOnMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	//
	c := New(azmIndex())
	cov := otgraph.NewCoverage("z", "a", "m")
	short := []string{"for-z", "for-a"}
	o := c.Reorder(cov, Parallel(&short))
	assert.Equal(t, ReasonLengthMismatch, o.Reason)
	assert.True(t, o.Aborted())
	assert.Equal(t, []string{"z", "a", "m"}, cov.Glyphs, "coverage must stay in pre-sort order")
	assert.Equal(t, []string{"for-z", "for-a"}, short)
	//
	dup := otgraph.NewCoverage("z", "a", "z")
	deps := []int{1, 2, 3}
	o = c.Reorder(dup, Parallel(&deps))
	assert.Equal(t, ReasonNotBijective, o.Reason)
	assert.Equal(t, []string{"z", "a", "z"}, dup.Glyphs)
	assert.Equal(t, []int{1, 2, 3}, deps)
	//
	sorted := otgraph.NewCoverage("a", "m", "z")
	o = c.Reorder(sorted, Parallel(&short))
	assert.Equal(t, Outcome{}, o, "nothing to reorder, lengths are not checked")
	assert.False(t, o.Aborted())
}

func TestRebuildSkipsMissingKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	//
	c := New(azmIndex())
	cov := otgraph.NewCoverage("z", "a", "m")
	sets := otgraph.NewGlyphMap[[]otgraph.Ligature]()
	sets.Put("z", []otgraph.Ligature{{Components: []string{"a"}, Glyph: "z_a"}})
	sets.Put("q", []otgraph.Ligature{{Components: []string{"a"}, Glyph: "q_a"}})
	sets.Put("a", []otgraph.Ligature{{Components: []string{"m"}, Glyph: "a_m"}})
	o := c.Rebuild(cov, sets)
	assert.True(t, o.Changed)
	assert.False(t, o.Aborted(), "key rebuild never aborts")
	assert.Equal(t, 1, o.Dropped)
	assert.Equal(t, []string{"a", "m", "z"}, cov.Glyphs)
	assert.Equal(t, []string{"a", "z"}, sets.Keys())
	ligs, ok := sets.Get("z")
	require.True(t, ok)
	assert.Equal(t, "z_a", ligs[0].Glyph)
}

func TestPermutationIsBijection(t *testing.T) {
	perm, ok := permutation([]string{"c", "a", "b"}, []string{"a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, []int{2, 0, 1}, perm)
	_, ok = permutation([]string{"a", "a"}, []string{"a", "a"})
	assert.False(t, ok)
}

// --- Walking fonts ---------------------------------------------------------

func pairSet(second string, adv int) otgraph.PairSet {
	return otgraph.PairSet{Records: []otgraph.PairValueRecord{
		{SecondGlyph: second, Value1: otgraph.ValueRecord{XAdvance: adv}},
	}}
}

func TestWalkEndToEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	//
	pp := &otgraph.PairPos{
		Format:   1,
		Coverage: otgraph.NewCoverage("z", "a", "m"),
		PairSets: []otgraph.PairSet{pairSet("z", -80), pairSet("a", -3), pairSet("m", -50)},
	}
	f := &otgraph.Font{
		GlyphOrder: glyphOrder(81, map[int]string{3: "a", 50: "m", 80: "z"}),
		GPos: &otgraph.LayoutTable{Tag: otgraph.GPOS, Lookups: []*otgraph.Lookup{
			{Index: 0, Type: otgraph.GPosLookupTypePair, Subtables: []otgraph.Subtable{pp}},
		}},
	}
	r := Normalize(f)
	assert.Equal(t, 1, r.Total.Found)
	assert.Equal(t, 1, r.Total.Reordered)
	assert.Equal(t, []string{"a", "m", "z"}, pp.Coverage.Glyphs)
	want := []otgraph.PairSet{pairSet("a", -3), pairSet("m", -50), pairSet("z", -80)}
	if diff := cmp.Diff(want, pp.PairSets); diff != "" {
		t.Errorf("pair sets out of sync (-want +got):\n%s", diff)
	}
	r = Normalize(f)
	assert.Equal(t, 1, r.Total.Found)
	assert.Equal(t, 0, r.Total.Reordered, "canonicalization must be idempotent")
}

func TestWalkSkipsMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.canon")
	defer teardown()
	//
	var nilPair *otgraph.PairPos
	f := &otgraph.Font{
		GlyphOrder: []string{".notdef", "a", "b"},
		GPos: &otgraph.LayoutTable{Tag: otgraph.GPOS, Lookups: []*otgraph.Lookup{
			{Type: otgraph.GPosLookupTypePair, Subtables: []otgraph.Subtable{
				nilPair,
				&otgraph.PairPos{Format: 1},
				&otgraph.ExtensionSubtable{ExtensionType: otgraph.GPosLookupTypePair},
				&otgraph.PairPos{Format: 2, Coverage: otgraph.NewCoverage("b", "a")},
			}},
			nil,
		}},
	}
	r := Normalize(f)
	assert.Equal(t, 1, r.Total.Found, "malformed parts are not counted")
	assert.Equal(t, 1, r.Total.Reordered)
	assert.Len(t, r.Issues, 4)
	for _, is := range r.Issues {
		assert.Equal(t, ReasonMalformed, is.Reason, is.Error())
	}
}
