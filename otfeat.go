/*
Package otfeat canonicalizes OpenType layout tables and proposes layout
features from glyph names.

A font is loaded into a mutable table graph (package otgraph), either from a
fontTools TTX dump or, without layout tables, from a binary TTF/OTF file.
Normalize brings every coverage table of GSUB, GPOS and GDEF into glyph-ID
order and realigns the arrays which depend on coverage positions. Candidates
classifies the glyph names of a font and groups them by the OpenType feature
they suggest, e.g. "f_i" for liga or "a.ss01" for ss01.

# Status

Binary fonts are read for their glyph order and cmap only. Writing fonts
back is left to other tools.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

fontTools TTX:
https://fonttools.readthedocs.io/en/latest/ttx.html

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfeat

import (
	"path/filepath"
	"strings"

	"github.com/npillmayer/otfeat/canon"
	"github.com/npillmayer/otfeat/classify"
	"github.com/npillmayer/otfeat/internal/fontload"
	"github.com/npillmayer/otfeat/internal/ttxload"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otfeat'
func tracer() tracing.Trace {
	return tracing.Select("otfeat")
}

// LoadFont loads a font from a file. Files with extension ".ttx" are read as
// fontTools TTX dumps, all others as binary OpenType fonts.
func LoadFont(path string) (*otgraph.Font, error) {
	if strings.EqualFold(filepath.Ext(path), ".ttx") {
		return ttxload.Load(path)
	}
	return fontload.Load(path)
}

// Normalize canonicalizes the GSUB, GPOS and GDEF tables of f in place.
func Normalize(f *otgraph.Font) canon.Report {
	r := canon.Normalize(f)
	if f == nil {
		tracer().Errorf("no font to normalize")
		return r
	}
	tracer().Infof("normalized %d coverage tables of %q, %d issues", r.Total.Found, f.Name, len(r.Issues))
	return r
}

// Candidates classifies all glyphs of f and aggregates them by feature.
func Candidates(f *otgraph.Font, conf classify.Config) *classify.FeatureCandidates {
	return classify.Aggregate(classify.ClassifyFont(f, conf))
}

// NewCandidates is like Candidates, but leaves out every candidate for which
// the GSUB table of f already has a substitution.
func NewCandidates(f *otgraph.Font, conf classify.Config) *classify.FeatureCandidates {
	return Candidates(f, conf).WithoutExisting(classify.ExtractExisting(f))
}

// Marks lists the glyphs of f which classify as combining marks, in glyph
// order.
func Marks(f *otgraph.Font, conf classify.Config) []string {
	return classify.ClassifyFont(f, conf).Marks()
}
