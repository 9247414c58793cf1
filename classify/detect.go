package classify

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/otfeat/glyphorder"
	"github.com/npillmayer/otfeat/otgraph"
	"golang.org/x/text/unicode/runenames"
	"seehuhn.de/go/postscript/type1/names"
)

var (
	stylisticSetPattern = regexp.MustCompile(`^(.+)\.ss(\d{2})$`)
	smallCapPattern     = regexp.MustCompile(`^(.+)\.(sc|smallcap)$`)
	swashPattern        = regexp.MustCompile(`^(.+)\.(swsh|swash)$`)
	contextualPattern   = regexp.MustCompile(`^(.+)\.(calt|alt)(\d+)?$`)
	discretionarySuffix = ".dlig"
)

// figureSuffixes are checked in this order; the first match wins.
var figureSuffixes = []struct {
	kind     FigureKind
	suffixes []string
}{
	{FigureOldstyle, []string{".oldstyle", ".onum"}},
	{FigureLining, []string{".lining", ".lnum"}},
	{FigureTabular, []string{".tabular", ".tnum"}},
	{FigureProportional, []string{".proportional", ".pnum"}},
}

// Classifier runs the glyph detectors against a glyph order.
type Classifier struct {
	ix   *glyphorder.Index
	conf Config
}

// New creates a classifier for a glyph order index.
func New(ix *glyphorder.Index, conf Config) *Classifier {
	return &Classifier{ix: ix, conf: conf}
}

// ClassifyFont classifies all glyphs of f.
func ClassifyFont(f *otgraph.Font, conf Config) *Classifications {
	return New(glyphorder.FromFont(f), conf).ClassifyAll()
}

// ClassifyAll classifies every glyph of the glyph order, in a single pass.
func (c *Classifier) ClassifyAll() *Classifications {
	cs := newClassifications(c.ix.Len())
	n := 0
	for _, name := range c.ix.Range() {
		gc := c.Classify(name)
		if gc.IsClassified() {
			n++
		}
		cs.add(gc)
	}
	tracer().Infof("classified %d of %d glyphs", n, cs.Len())
	return cs
}

// Classify runs all detectors on a single glyph name.
func (c *Classifier) Classify(name string) *GlyphClassification {
	gc := &GlyphClassification{Glyph: name}
	if components, ok := c.ligatureComponents(name); ok {
		gc.IsLigature = true
		gc.Components = components
		gc.IsDiscretionary = strings.HasSuffix(name, discretionarySuffix)
	}
	if m := stylisticSetPattern.FindStringSubmatch(name); m != nil && c.ix.Has(m[1]) {
		if n, _ := strconv.Atoi(m[2]); n >= 1 {
			gc.IsStylisticAlt = true
			gc.StylisticSet = otgraph.Some(n)
			gc.Base = otgraph.Some(m[1])
		}
	}
	if m := smallCapPattern.FindStringSubmatch(name); m != nil && c.ix.Has(m[1]) {
		gc.IsSmallCap = true
		gc.Base = otgraph.Some(m[1])
	}
	if kind, base, ok := c.figureVariant(name); ok {
		gc.IsFigureVariant = true
		gc.Figure = otgraph.Some(kind)
		gc.Base = otgraph.Some(base)
	}
	if m := swashPattern.FindStringSubmatch(name); m != nil && c.ix.Has(m[1]) {
		gc.IsSwash = true
		gc.Base = otgraph.Some(m[1])
	}
	if m := contextualPattern.FindStringSubmatch(name); m != nil && c.ix.Has(m[1]) {
		gc.IsContextualAlt = true
		gc.Base = otgraph.Some(m[1])
	}
	if origin, ok := c.markOrigin(name); ok {
		gc.IsMark = true
		gc.Mark = otgraph.Some(origin)
	}
	return gc
}

// --- Ligatures -------------------------------------------------------------

// ligatureComponents parses a glyph name as a ligature. The part of the name
// before the first '.' is either split at '_', or taken as a pair of letters.
// Components named uniXXXX are resolved through the cmap. If any component
// cannot be resolved to a glyph of the font, the name is not a ligature.
// A ligature needs at least two components, at least half of which carry a
// Unicode mapping.
func (c *Classifier) ligatureComponents(name string) ([]string, bool) {
	base, _, _ := strings.Cut(name, ".")
	var parts []string
	if strings.Contains(base, "_") {
		parts = strings.Split(base, "_")
	} else if r := []rune(base); len(r) == 2 && unicode.IsLetter(r[0]) && unicode.IsLetter(r[1]) {
		if isPrecomposedLigature(base) {
			tracer().Debugf("%s is a precomposed ligature", name)
			return nil, false
		}
		first, second := string(r[0]), string(r[1])
		if !c.ix.Has(first) || !c.ix.Has(second) {
			return nil, false
		}
		parts = []string{first, second}
	} else {
		return nil, false
	}
	components := make([]string, 0, len(parts))
	for _, p := range parts {
		g, ok := c.resolveComponent(p)
		if !ok {
			tracer().Debugf("%s: component %q not in font", name, p)
			return nil, false
		}
		components = append(components, g)
	}
	if len(components) < 2 {
		return nil, false
	}
	withUnicode := 0
	for _, g := range components {
		if c.ix.HasUnicode(g) {
			withUnicode++
		}
	}
	if 2*withUnicode < len(components) {
		tracer().Debugf("%s: only %d of %d components have a Unicode mapping", name, withUnicode, len(components))
		return nil, false
	}
	return components, true
}

func (c *Classifier) resolveComponent(part string) (string, bool) {
	if strings.HasPrefix(part, "uni") && len(part) >= 7 {
		cp, err := strconv.ParseUint(part[3:7], 16, 32)
		if err != nil {
			return "", false
		}
		return c.ix.GlyphFor(rune(cp))
	}
	if c.ix.Has(part) {
		return part, true
	}
	return "", false
}

// isPrecomposedLigature checks if a glyph name denotes a single Unicode
// character which is itself a ligature, such as "fi" for U+FB01.
func isPrecomposedLigature(name string) bool {
	rr := []rune(names.ToUnicode(name, ""))
	if len(rr) != 1 {
		return false
	}
	return strings.Contains(runenames.Name(rr[0]), "LIGATURE")
}

// --- Figures and marks -----------------------------------------------------

func (c *Classifier) figureVariant(name string) (FigureKind, string, bool) {
	for _, fs := range figureSuffixes {
		for _, suffix := range fs.suffixes {
			if base, ok := strings.CutSuffix(name, suffix); ok && base != "" && c.ix.Has(base) {
				return fs.kind, base, true
			}
		}
	}
	return 0, "", false
}

func (c *Classifier) markOrigin(name string) (MarkOrigin, bool) {
	for _, r := range c.ix.Codepoints(name) {
		if unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me) {
			return MarkByUnicode, true
		}
	}
	lower := strings.ToLower(name)
	for _, re := range c.conf.MarkPatterns {
		if re.MatchString(lower) {
			return MarkByPattern, true
		}
	}
	return 0, false
}
