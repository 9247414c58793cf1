/*
Package otgraph holds an in-memory, mutable graph of the OpenType layout tables
of a font: GSUB, GPOS and GDEF, together with the font's glyph order and its
best Unicode cmap.

Glyphs are referenced by name throughout. A glyph's ID is its position in the
glyph order, which makes the graph independent of any binary encoding. Clients
get a graph from a loader (see the internal ttxload and fontload packages) and
then hand it to packages canon or classify.

Subtables are modelled as a closed set of variants, all implementing the
sealed interface Subtable. Every variant reports a fixed set of capabilities,
which tells clients which coverage-indexed structures it carries:

▪︎ a primary coverage, possibly with arrays aligned to it (PairSets, MarkRecords, …)

▪︎ glyph-keyed mappings (ligature sets, single substitutions, alternate sets)

▪︎ class definitions

▪︎ arrays of contextual coverages (backtrack, input, look-ahead)

The graph is not safe for concurrent mutation. Callers guarantee exclusive
access during a pass.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otgraph

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'otfeat'
func tracer() tracing.Trace {
	return tracing.Select("otfeat")
}
