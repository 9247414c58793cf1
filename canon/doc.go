/*
Package canon brings the coverage-indexed structures of a font's layout tables
into canonical order, i.e. ascending glyph ID.

OpenType requires coverage tables to list glyphs sorted by glyph ID. Fonts
produced by tools which build tables from glyph names frequently violate this,
and shapers will then silently fail to match glyphs. Sorting a coverage is
not enough, however: many subtables carry arrays which are positionally
parallel to a coverage (PairSets of a PairPos, caret lists of GDEF, mark
records, …). These have to be permuted along with the coverage, or the font
is corrupted.

Two policies are used to keep dependent structures in sync:

▪︎ index permutation, for arrays aligned to a coverage. If a one-to-one
mapping from old to new positions cannot be established, nothing is
changed.

▪︎ key rebuild, for mappings keyed by glyph name (ligature sets, single
substitutions). These are rebuilt in the new coverage order; glyphs
without an entry are skipped.

Canonicalization is idempotent: a second pass over a font reports no
reordered structures.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package canon

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'otfeat.canon'
func tracer() tracing.Trace {
	return tracing.Select("otfeat.canon")
}
