package classify

import (
	"fmt"
	"slices"
	"strings"
)

// LigatureCandidate proposes a ligature glyph for a sequence of components.
type LigatureCandidate struct {
	Components []string
	Ligature   string
}

func (lc LigatureCandidate) String() string {
	return strings.Join(lc.Components, " ") + " -> " + lc.Ligature
}

// AlternateCandidate proposes a variant glyph for a base glyph.
type AlternateCandidate struct {
	Base    string
	Variant string
}

func (ac AlternateCandidate) String() string {
	return ac.Base + " -> " + ac.Variant
}

// FeatureCandidates holds the candidates per feature tag. Candidates appear
// in glyph order of the variant glyph.
type FeatureCandidates struct {
	Liga          []LigatureCandidate
	Dlig          []LigatureCandidate
	StylisticSets map[int][]AlternateCandidate // ss01…ss99, keyed by set number
	Smcp          []AlternateCandidate
	Onum          []AlternateCandidate
	Lnum          []AlternateCandidate
	Tnum          []AlternateCandidate
	Pnum          []AlternateCandidate
	Swsh          []AlternateCandidate
	Calt          []AlternateCandidate
}

// Aggregate buckets classified glyphs by feature.
func Aggregate(cs *Classifications) *FeatureCandidates {
	fc := &FeatureCandidates{StylisticSets: make(map[int][]AlternateCandidate)}
	for name, gc := range cs.Range() {
		if gc.IsLigature {
			lc := LigatureCandidate{Components: gc.Components, Ligature: name}
			if gc.IsDiscretionary {
				fc.Dlig = append(fc.Dlig, lc)
			} else {
				fc.Liga = append(fc.Liga, lc)
			}
		}
		base, hasBase := gc.Base.Unwrap()
		if !hasBase {
			continue
		}
		ac := AlternateCandidate{Base: base, Variant: name}
		if n, ok := gc.StylisticSet.Unwrap(); ok && gc.IsStylisticAlt {
			fc.StylisticSets[n] = append(fc.StylisticSets[n], ac)
		}
		if gc.IsSmallCap {
			fc.Smcp = append(fc.Smcp, ac)
		}
		if kind, ok := gc.Figure.Unwrap(); ok && gc.IsFigureVariant {
			list := fc.figures(kind)
			*list = append(*list, ac)
		}
		if gc.IsSwash {
			fc.Swsh = append(fc.Swsh, ac)
		}
		if gc.IsContextualAlt {
			fc.Calt = append(fc.Calt, ac)
		}
	}
	tracer().Debugf("aggregated %d feature candidates", fc.Count())
	return fc
}

func (fc *FeatureCandidates) figures(kind FigureKind) *[]AlternateCandidate {
	switch kind {
	case FigureOldstyle:
		return &fc.Onum
	case FigureLining:
		return &fc.Lnum
	case FigureTabular:
		return &fc.Tnum
	}
	return &fc.Pnum
}

// StylisticSetNumbers returns the numbers of all stylistic sets with candidates,
// ascending.
func (fc *FeatureCandidates) StylisticSetNumbers() []int {
	if fc == nil {
		return nil
	}
	nums := make([]int, 0, len(fc.StylisticSets))
	for n, list := range fc.StylisticSets {
		if len(list) > 0 {
			nums = append(nums, n)
		}
	}
	slices.Sort(nums)
	return nums
}

// Singles returns the single-substitution candidates per feature tag, for all
// features except liga and dlig.
func (fc *FeatureCandidates) Singles() map[string][]AlternateCandidate {
	m := make(map[string][]AlternateCandidate)
	if fc == nil {
		return m
	}
	for _, n := range fc.StylisticSetNumbers() {
		m[fmt.Sprintf("ss%02d", n)] = fc.StylisticSets[n]
	}
	for tag, list := range map[string][]AlternateCandidate{
		"smcp": fc.Smcp, "onum": fc.Onum, "lnum": fc.Lnum, "tnum": fc.Tnum,
		"pnum": fc.Pnum, "swsh": fc.Swsh, "calt": fc.Calt,
	} {
		if len(list) > 0 {
			m[tag] = list
		}
	}
	return m
}

// Tags returns the feature tags with at least one candidate, sorted.
func (fc *FeatureCandidates) Tags() []string {
	if fc == nil {
		return nil
	}
	var tags []string
	if len(fc.Liga) > 0 {
		tags = append(tags, "liga")
	}
	if len(fc.Dlig) > 0 {
		tags = append(tags, "dlig")
	}
	for tag := range fc.Singles() {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Count returns the total number of candidates.
func (fc *FeatureCandidates) Count() int {
	if fc == nil {
		return 0
	}
	n := len(fc.Liga) + len(fc.Dlig)
	for _, list := range fc.Singles() {
		n += len(list)
	}
	return n
}

// WithoutExisting returns the candidates which are not yet present as
// substitutions. Ligatures are compared by component sequence, single
// substitutions by (base, variant) pair.
func (fc *FeatureCandidates) WithoutExisting(ex *ExistingSubstitutions) *FeatureCandidates {
	out := &FeatureCandidates{StylisticSets: make(map[int][]AlternateCandidate)}
	if fc == nil {
		return out
	}
	keepLigs := func(in []LigatureCandidate) []LigatureCandidate {
		var kept []LigatureCandidate
		for _, lc := range in {
			if !ex.HasLigature(lc.Components) {
				kept = append(kept, lc)
			}
		}
		return kept
	}
	keepAlts := func(in []AlternateCandidate) []AlternateCandidate {
		var kept []AlternateCandidate
		for _, ac := range in {
			if !ex.HasSingle(ac.Base, ac.Variant) {
				kept = append(kept, ac)
			}
		}
		return kept
	}
	out.Liga, out.Dlig = keepLigs(fc.Liga), keepLigs(fc.Dlig)
	for n, list := range fc.StylisticSets {
		if kept := keepAlts(list); len(kept) > 0 {
			out.StylisticSets[n] = kept
		}
	}
	out.Smcp, out.Swsh, out.Calt = keepAlts(fc.Smcp), keepAlts(fc.Swsh), keepAlts(fc.Calt)
	out.Onum, out.Lnum = keepAlts(fc.Onum), keepAlts(fc.Lnum)
	out.Tnum, out.Pnum = keepAlts(fc.Tnum), keepAlts(fc.Pnum)
	tracer().Infof("%d of %d candidates are new", out.Count(), fc.Count())
	return out
}
