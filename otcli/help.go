package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "coverage", "coverages":
		pterm.Info.Println("Coverage")
		pterm.Println(`
	A coverage table lists the glyphs a subtable applies to. Many subtables keep
	arrays which are aligned to the coverage: entry i belongs to coverage glyph i.
	+-----------------+         +---------------------+
	| Coverage        |         | PairSet / MarkArray |
	+-----------------+         +---------------------+
	| glyph 0         | ------> | record 0            |
	| glyph 1         | ------> | record 1            |
	+-----------------+         +---------------------+
	coverage:<GSUB|GPOS>:<n> shows the coverages of lookup n.
	`)
	case "canon", "normalize":
		pterm.Info.Println("Canonicalization")
		pterm.Println(`
	canon sorts every coverage of GSUB, GPOS and GDEF by glyph ID.
	Aligned arrays are permuted together with their coverage; if they do not
	match the coverage, the coverage stays unsorted and an issue is reported.
	Maps keyed by glyph are rebuilt in coverage order.
	Class definitions are sorted by glyph ID as well.
	`)
	case "features", "classify", "existing", "marks":
		pterm.Info.Println("Feature candidates")
		pterm.Println(`
	Glyph names suggest layout features:
	+-----------------+---------+
	| f_i, c_t        | liga    |
	| c_t.dlig        | dlig    |
	| a.ss01          | ss01    |
	| a.sc            | smcp    |
	| one.oldstyle    | onum    |
	| A.swsh          | swsh    |
	| t.alt1, t.calt  | calt    |
	+-----------------+---------+
	classify:<glyph>  shows the classification of a single glyph
	features[:new]    lists candidates per feature (:new omits existing ones)
	existing          lists ligature and single substitutions already in GSUB
	marks             lists glyphs detected as combining marks
	`)
	default:
		pterm.Info.Println("Commands")
		data := [][]string{
			{"Command", "Description"},
			{"load:<file>", "load a font (.ttx or binary)"},
			{"order[:<from>]", "show the glyph order"},
			{"lookups:<GSUB|GPOS>", "list the lookups of a table"},
			{"coverage:<GSUB|GPOS>:<n>", "show the coverages of a lookup"},
			{"canon", "canonicalize all coverages"},
			{"classify:<glyph>", "classify a glyph name"},
			{"features[:new]", "show feature candidates"},
			{"existing", "show existing substitutions"},
			{"marks", "show mark glyphs"},
			{"help[:<topic>]", "topics: coverage, canon, features"},
			{"quit", "leave"},
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}
