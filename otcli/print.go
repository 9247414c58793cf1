package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/npillmayer/otfeat"
	"github.com/npillmayer/otfeat/classify"
	"github.com/npillmayer/otfeat/glyphorder"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/pterm/pterm"
)

func printLookupList(table *otgraph.LayoutTable) {
	count := table.Len()
	pterm.Printf("%s LookupList has %d entries\n", table.Tag, count)
	if count == 0 {
		return
	}
	data := [][]string{
		{"Index", "Type", "Subtables", "Flags"},
	}
	for i, lookup := range table.Range() {
		data = append(data, []string{
			strconv.Itoa(i),
			formatLookupType(table, lookup.Type),
			strconv.Itoa(lookup.Len()),
			formatLookupFlags(lookup.Flag),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookup(table *otgraph.LayoutTable, index int) {
	lookup := table.Lookup(index)
	if lookup == nil {
		pterm.Error.Printf("Lookup index out of range: %d\n", index)
		return
	}
	pterm.Printf("Lookup %d: type=%s flags=%s subtables=%d\n",
		index,
		formatLookupType(table, lookup.EffectiveType()),
		formatLookupFlags(lookup.Flag),
		lookup.Len(),
	)
	data := [][]string{
		{"Sub", "Kind", "Format", "Capabilities", "Coverage"},
	}
	for i, sub := range lookup.Range() {
		st := otgraph.Unwrap(sub)
		if st == nil {
			continue
		}
		data = append(data, []string{
			strconv.Itoa(i),
			st.Kind().String(),
			strconv.Itoa(subtableFormat(st)),
			st.Capabilities().String(),
			formatCoverages(st),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatLookupType(table *otgraph.LayoutTable, ltype otgraph.LookupType) string {
	if ltype == 0 {
		return "Unknown(0)"
	}
	if table.IsGSub() {
		return ltype.GSubString()
	}
	return ltype.GPosString()
}

// Lookup flag bits
const (
	flagRightToLeft         = 0x0001
	flagIgnoreBaseGlyphs    = 0x0002
	flagIgnoreLigatures     = 0x0004
	flagIgnoreMarks         = 0x0008
	flagUseMarkFilteringSet = 0x0010
	flagMarkAttachTypeMask  = 0xFF00
)

func formatLookupFlags(flag uint16) string {
	if flag == 0 {
		return "-"
	}
	parts := make([]string, 0, 6)
	if flag&flagRightToLeft != 0 {
		parts = append(parts, "RightToLeft")
	}
	if flag&flagIgnoreBaseGlyphs != 0 {
		parts = append(parts, "IgnoreBase")
	}
	if flag&flagIgnoreLigatures != 0 {
		parts = append(parts, "IgnoreLigatures")
	}
	if flag&flagIgnoreMarks != 0 {
		parts = append(parts, "IgnoreMarks")
	}
	if flag&flagUseMarkFilteringSet != 0 {
		parts = append(parts, "UseMarkFilteringSet")
	}
	if flag&flagMarkAttachTypeMask != 0 {
		parts = append(parts, fmt.Sprintf("MarkAttachType=%d", flag>>8))
	}
	return strings.Join(parts, "|")
}

func subtableFormat(st otgraph.Subtable) int {
	switch st := st.(type) {
	case *otgraph.SingleSubst:
		return st.Format
	case *otgraph.MultipleSubst:
		return st.Format
	case *otgraph.AlternateSubst:
		return st.Format
	case *otgraph.LigatureSubst:
		return st.Format
	case *otgraph.ReverseChainSubst:
		return st.Format
	case *otgraph.ContextSubtable:
		return st.Format
	case *otgraph.ChainContextSubtable:
		return st.Format
	case *otgraph.SinglePos:
		return st.Format
	case *otgraph.PairPos:
		return st.Format
	case *otgraph.CursivePos:
		return st.Format
	case *otgraph.MarkAttachPos:
		return st.Format
	}
	return 0
}

func formatCoverages(st otgraph.Subtable) string {
	var parts []string
	add := func(name string, covs ...*otgraph.Coverage) {
		for i, cov := range covs {
			if cov == nil {
				continue
			}
			label := name
			if len(covs) > 1 {
				label = fmt.Sprintf("%s[%d]", name, i)
			}
			parts = append(parts, label+"="+formatGlyphs(cov.Glyphs))
		}
	}
	switch st := st.(type) {
	case *otgraph.SingleSubst:
		add("cov", st.Coverage)
	case *otgraph.MultipleSubst:
		add("cov", st.Coverage)
	case *otgraph.AlternateSubst:
		add("cov", st.Coverage)
	case *otgraph.LigatureSubst:
		add("cov", st.Coverage)
	case *otgraph.ReverseChainSubst:
		add("cov", st.Coverage)
		add("back", st.Backtrack...)
		add("ahead", st.LookAhead...)
	case *otgraph.ContextSubtable:
		add("cov", st.Coverage)
		add("in", st.InputCoverages...)
	case *otgraph.ChainContextSubtable:
		add("cov", st.Coverage)
		add("back", st.Backtrack...)
		add("in", st.Input...)
		add("ahead", st.LookAhead...)
	case *otgraph.SinglePos:
		add("cov", st.Coverage)
	case *otgraph.PairPos:
		add("cov", st.Coverage)
	case *otgraph.CursivePos:
		add("cov", st.Coverage)
	case *otgraph.MarkAttachPos:
		add("marks", st.MarkCoverage)
		add("bases", st.BaseCoverage)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "\n")
}

const maxShownGlyphs = 12

func formatGlyphs(glyphs []string) string {
	if len(glyphs) > maxShownGlyphs {
		return fmt.Sprintf("[%s … +%d]", strings.Join(glyphs[:maxShownGlyphs], " "), len(glyphs)-maxShownGlyphs)
	}
	return "[" + strings.Join(glyphs, " ") + "]"
}

func formatRunes(rr []rune) string {
	if len(rr) == 0 {
		return "-"
	}
	slices.Sort(rr)
	s := make([]string, len(rr))
	for i, r := range rr {
		s[i] = fmt.Sprintf("U+%04X", r)
	}
	return strings.Join(s, " ")
}

// --- Classification ---------------------------------------------------

func classifyOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	name, ok := op.hasArg()
	if !ok {
		return errors.New("usage: classify:<glyph>"), false
	}
	c := classify.New(glyphorder.FromFont(intp.font), intp.conf)
	gc := c.Classify(name)
	data := [][]string{{"Property", "Value"}}
	add := func(prop string, value string) {
		data = append(data, []string{prop, value})
	}
	if gc.IsLigature {
		add("ligature", strings.Join(gc.Components, " + "))
		if gc.IsDiscretionary {
			add("discretionary", "yes")
		}
	}
	if n, ok := gc.StylisticSet.Unwrap(); ok {
		add("stylistic set", fmt.Sprintf("ss%02d", n))
	}
	if gc.IsSmallCap {
		add("small cap", "yes")
	}
	if kind, ok := gc.Figure.Unwrap(); ok {
		add("figure", kind.String())
	}
	if gc.IsSwash {
		add("swash", "yes")
	}
	if gc.IsContextualAlt {
		add("contextual alternate", "yes")
	}
	if origin, ok := gc.Mark.Unwrap(); ok {
		add("mark", origin.String())
	}
	if base, ok := gc.Base.Unwrap(); ok {
		add("base", base)
	}
	if !gc.IsClassified() {
		pterm.Printf("%s: no feature detected\n", name)
		return nil, false
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func featuresOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	var fc *classify.FeatureCandidates
	if op.arg == "new" {
		fc = otfeat.NewCandidates(intp.font, intp.conf)
	} else {
		fc = otfeat.Candidates(intp.font, intp.conf)
	}
	data := [][]string{{"Feature", "Count", "Candidates"}}
	if len(fc.Liga) > 0 {
		data = append(data, ligatureRow("liga", fc.Liga))
	}
	if len(fc.Dlig) > 0 {
		data = append(data, ligatureRow("dlig", fc.Dlig))
	}
	singles := fc.Singles()
	for _, tag := range fc.Tags() {
		if list, ok := singles[tag]; ok {
			data = append(data, alternateRow(tag, list))
		}
	}
	pterm.Printf("%d candidates\n", fc.Count())
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func ligatureRow(tag string, list []classify.LigatureCandidate) []string {
	s := make([]string, len(list))
	for i, lc := range list {
		s[i] = lc.String()
	}
	return []string{tag, strconv.Itoa(len(list)), strings.Join(s, "\n")}
}

func alternateRow(tag string, list []classify.AlternateCandidate) []string {
	s := make([]string, len(list))
	for i, ac := range list {
		s[i] = ac.String()
	}
	return []string{tag, strconv.Itoa(len(list)), strings.Join(s, "\n")}
}

func existingOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	ex := classify.ExtractExisting(intp.font)
	ligs, singles := ex.Ligatures(), ex.Singles()
	pterm.Printf("GSUB has %d ligatures and %d single substitutions\n", len(ligs), len(singles))
	data := [][]string{{"Kind", "Input", "Output"}}
	for _, lig := range ligs {
		data = append(data, []string{"ligature", strings.Join(lig, " "), "-"})
	}
	for _, p := range singles {
		data = append(data, []string{"single", p.In, p.Out})
	}
	if len(data) > 1 {
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	return nil, false
}

func marksOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	marks := otfeat.Marks(intp.font, intp.conf)
	pterm.Printf("%d mark glyphs\n", len(marks))
	for _, m := range marks {
		pterm.Println("  " + m)
	}
	return nil, false
}
