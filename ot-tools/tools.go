/*
Command ot-tools runs canonicalization and feature detection on fonts in
batch mode.

	ot-tools font   <font> [tables...]   print font diagnostics
	ot-tools canon  <font> [-e]          canonicalize coverages, print counts
	ot-tools features <font> [-n]        print feature candidates
	ot-tools marks  <font>               print mark glyphs

Fonts ending in ".ttx" are read as fontTools TTX dumps, others as binary
OpenType fonts (glyph order and cmap only).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/otfeat"
	"github.com/npillmayer/otfeat/classify"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for OpenType layout table canonicalization and feature detection.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("font").
		SetDescription("Print diagnostics and layout table information for a font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "font file path (.ttx or binary)", "").
		AddArgument("tables...", "optional list of table tags (e.g. GSUB,GPOS)", "").
		SetAction(runFontCommand)

	commando.
		Register("canon").
		SetDescription("Sort all coverage tables of GSUB, GPOS and GDEF by glyph ID and report the counts.").
		SetShortDescription("canonicalize coverages").
		AddArgument("font", "font file path (.ttx or binary)", "").
		AddFlag("errors,e", "print issues found while walking the tables", commando.Bool, nil).
		SetAction(runCanonCommand)

	commando.
		Register("features").
		SetDescription("Classify glyph names and print layout feature candidates.").
		SetShortDescription("feature candidates").
		AddArgument("font", "font file path (.ttx or binary)", "").
		AddFlag("new,n", "omit candidates already substituted in GSUB", commando.Bool, nil).
		AddFlag("marks,m", "comma separated regular expressions for mark glyph names", commando.String, "-").
		SetAction(runFeaturesCommand)

	commando.
		Register("marks").
		SetDescription("Print glyphs detected as combining marks.").
		SetShortDescription("mark glyphs").
		AddArgument("font", "font file path (.ttx or binary)", "").
		AddFlag("marks,m", "comma separated regular expressions for mark glyph names", commando.String, "-").
		SetAction(runMarksCommand)

	commando.Parse(nil)
}

func mustLoadFont(path string) *otgraph.Font {
	path = strings.TrimSpace(path)
	if path == "" {
		fatalf("font path is required")
	}
	f, err := otfeat.LoadFont(path)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return f
}

// mustClassifyConfig reads the mark patterns flag. "-" selects the default
// patterns.
func mustClassifyConfig(flag commando.FlagValue) classify.Config {
	patterns, err := flag.GetString()
	if err != nil {
		fatalf("invalid --marks flag: %v", err)
	}
	if patterns == "-" {
		patterns = ""
	}
	conf, err := classify.ConfigFrom(testconfig.Conf{classify.MarkPatternsKey: patterns})
	if err != nil {
		fatalf("invalid --marks flag: %v", err)
	}
	return conf
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
