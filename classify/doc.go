/*
Package classify infers typographic roles of glyphs from their names and
code points, and derives OpenType feature candidates from them.

A single pass over the glyph order runs seven independent detectors on every
glyph: ligature, stylistic alternate, small cap, figure variant, swash,
contextual alternate and mark. A glyph may be flagged by more than one
detector. The aggregator then buckets the flagged glyphs into candidates
per feature tag (liga, dlig, ss01…ss99, smcp, onum, lnum, tnum, pnum, swsh,
calt).

Candidates already present as substitutions in a font's GSUB may be filtered
out with the help of ExtractExisting.

Detection is purely name based, with two exceptions: ligature components have
to carry a Unicode mapping in part, and marks are recognized by their
Unicode general category before falling back to configurable name patterns.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package classify

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'otfeat.classify'
func tracer() tracing.Trace {
	return tracing.Select("otfeat.classify")
}
