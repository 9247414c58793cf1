package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/otfeat/otgraph"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	f := mustLoadFont(fontPath)
	fmt.Printf("Path: %s\n", fontPath)
	printFontInfo(os.Stdout, f)
	if len(args["tables"].Value) > 0 {
		printSelectedTables(os.Stdout, f, args["tables"].Value)
	}
}

func printFontInfo(w io.Writer, f *otgraph.Font) {
	if f.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", f.Name)
	}
	fmt.Fprintf(w, "Glyphs: %d\n", f.NumGlyphs())
	fmt.Fprintf(w, "Cmap: %d code points\n", len(f.CMap))
	tags := f.TableTags()
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.String()
	}
	fmt.Fprintf(w, "Layout: %s\n", strings.Join(names, ","))
}

func printSelectedTables(w io.Writer, f *otgraph.Font, raw string) {
	for _, t := range splitCSVSpace(raw) {
		tag := otgraph.T(strings.ToUpper(strings.TrimSpace(t)))
		if tag == otgraph.GDEF {
			printGDef(w, f.GDef)
			continue
		}
		lt := f.Layout(tag)
		if lt == nil {
			fmt.Fprintf(w, "table %s: missing\n", tag)
			continue
		}
		fmt.Fprintf(w, "table %s: %d lookups\n", tag, lt.Len())
		for i, lookup := range lt.Range() {
			typ := lookup.EffectiveType()
			name := typ.GPosString()
			if lt.IsGSub() {
				name = typ.GSubString()
			}
			fmt.Fprintf(w, "  lookup %d: %s, %d subtable(s) %s\n", i, name, lookup.Len(), capabilities(lookup))
		}
	}
}

// capabilities joins the capabilities of all subtables of a lookup, looking
// through extensions.
func capabilities(lookup *otgraph.Lookup) otgraph.Capability {
	var caps otgraph.Capability
	for _, sub := range lookup.Range() {
		if st := otgraph.Unwrap(sub); st != nil {
			caps |= st.Capabilities()
		}
	}
	return caps
}

func printGDef(w io.Writer, gdef *otgraph.GDefTable) {
	if gdef == nil {
		fmt.Fprintf(w, "table GDEF: missing\n")
		return
	}
	fmt.Fprintf(w, "table GDEF:\n")
	if gdef.GlyphClassDef != nil {
		fmt.Fprintf(w, "  GlyphClassDef: %d glyphs\n", gdef.GlyphClassDef.Len())
	}
	if gdef.AttachList != nil {
		fmt.Fprintf(w, "  AttachList: %d glyphs\n", gdef.AttachList.Coverage.Len())
	}
	if gdef.LigCaretList != nil {
		fmt.Fprintf(w, "  LigCaretList: %d glyphs\n", gdef.LigCaretList.Coverage.Len())
	}
	if gdef.MarkAttachClassDef != nil {
		fmt.Fprintf(w, "  MarkAttachClassDef: %d glyphs\n", gdef.MarkAttachClassDef.Len())
	}
	if len(gdef.MarkGlyphSets) > 0 {
		fmt.Fprintf(w, "  MarkGlyphSets: %d sets\n", len(gdef.MarkGlyphSets))
	}
}
