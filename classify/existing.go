package classify

import (
	"slices"
	"strings"

	"github.com/npillmayer/otfeat/otgraph"
)

// SinglePair is a single substitution from In to Out.
type SinglePair struct {
	In  string
	Out string
}

// ExistingSubstitutions are the ligature and single substitutions a font's
// GSUB already contains.
type ExistingSubstitutions struct {
	ligatures map[string][]string // keyed by joined component sequence
	singles   map[SinglePair]struct{}
}

// glyph names never contain spaces
func ligatureKey(components []string) string {
	return strings.Join(components, " ")
}

// ExtractExisting collects the substitutions of GSUB lookups of type 1 (single)
// and type 4 (ligature). Lookups of other types are not inspected; extension
// lookups count with the type of the subtables they wrap. A font without GSUB
// yields an empty result.
func ExtractExisting(f *otgraph.Font) *ExistingSubstitutions {
	ex := &ExistingSubstitutions{
		ligatures: make(map[string][]string),
		singles:   make(map[SinglePair]struct{}),
	}
	if f == nil || f.GSub == nil {
		return ex
	}
	for _, lookup := range f.GSub.Range() {
		switch lookup.EffectiveType() {
		case otgraph.GSubLookupTypeSingle, otgraph.GSubLookupTypeLigature:
		default:
			continue
		}
		for _, sub := range lookup.Range() {
			switch st := otgraph.Unwrap(sub).(type) {
			case *otgraph.SingleSubst:
				if st == nil {
					continue
				}
				for in, out := range st.Mapping.Range() {
					ex.singles[SinglePair{In: in, Out: out}] = struct{}{}
				}
			case *otgraph.LigatureSubst:
				if st == nil {
					continue
				}
				for first, ligs := range st.LigatureSets.Range() {
					for _, lig := range ligs {
						components := append([]string{first}, lig.Components...)
						ex.ligatures[ligatureKey(components)] = components
					}
				}
			}
		}
	}
	tracer().Debugf("font has %d ligature and %d single substitutions", len(ex.ligatures), len(ex.singles))
	return ex
}

// HasLigature is true if a ligature for the component sequence exists.
func (ex *ExistingSubstitutions) HasLigature(components []string) bool {
	if ex == nil {
		return false
	}
	_, ok := ex.ligatures[ligatureKey(components)]
	return ok
}

// HasSingle is true if a single substitution in → out exists.
func (ex *ExistingSubstitutions) HasSingle(in, out string) bool {
	if ex == nil {
		return false
	}
	_, ok := ex.singles[SinglePair{In: in, Out: out}]
	return ok
}

// Ligatures returns the component sequences of all ligatures, sorted.
func (ex *ExistingSubstitutions) Ligatures() [][]string {
	if ex == nil {
		return nil
	}
	keys := make([]string, 0, len(ex.ligatures))
	for k := range ex.ligatures {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	ligs := make([][]string, len(keys))
	for i, k := range keys {
		ligs[i] = ex.ligatures[k]
	}
	return ligs
}

// Singles returns all single substitutions, sorted by input, then output.
func (ex *ExistingSubstitutions) Singles() []SinglePair {
	if ex == nil {
		return nil
	}
	pairs := make([]SinglePair, 0, len(ex.singles))
	for p := range ex.singles {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b SinglePair) int {
		if c := strings.Compare(a.In, b.In); c != 0 {
			return c
		}
		return strings.Compare(a.Out, b.Out)
	})
	return pairs
}
