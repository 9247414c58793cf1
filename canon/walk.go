package canon

import (
	"fmt"

	"github.com/npillmayer/otfeat/glyphorder"
	"github.com/npillmayer/otfeat/otgraph"
)

// Counts summarizes a canonicalization pass.
type Counts struct {
	Found              int // coverage structures found
	Reordered          int // coverage structures whose order changed
	ClassDefsReordered int // class definitions whose iteration order changed
	Aborted            int // coverages left unsorted to protect dependent arrays
	Dropped            int // keyed entries removed for glyphs outside their coverage
}

func (c *Counts) add(other Counts) {
	c.Found += other.Found
	c.Reordered += other.Reordered
	c.ClassDefsReordered += other.ClassDefsReordered
	c.Aborted += other.Aborted
	c.Dropped += other.Dropped
}

// TableCounts are the counts for a single table.
type TableCounts struct {
	Table otgraph.Tag
	Counts
}

// Report is the result of walking a font.
type Report struct {
	Tables []TableCounts // in order GSUB, GPOS, GDEF; absent tables are omitted
	Total  Counts
	Issues []Issue
}

// Table returns the counts for table tag.
func (r Report) Table(tag otgraph.Tag) (Counts, bool) {
	for _, tc := range r.Tables {
		if tc.Table == tag {
			return tc.Counts, true
		}
	}
	return Counts{}, false
}

// Normalize canonicalizes the layout tables of f, using the glyph order of f.
func Normalize(f *otgraph.Font) Report {
	return New(glyphorder.FromFont(f)).Walk(f)
}

// Walk canonicalizes GSUB, GPOS and GDEF of f in place. Sub-structures which
// cannot be processed are recorded as issues and skipped; Walk never fails
// as a whole.
func (c *Canonicalizer) Walk(f *otgraph.Font) Report {
	var r Report
	if f == nil {
		return r
	}
	for _, lt := range []*otgraph.LayoutTable{f.GSub, f.GPos} {
		if lt == nil {
			continue
		}
		w := &walker{c: c, table: lt.Tag}
		w.layout(lt)
		r.Tables = append(r.Tables, TableCounts{Table: lt.Tag, Counts: w.counts})
		r.Total.add(w.counts)
		r.Issues = append(r.Issues, w.issues...)
	}
	if f.GDef != nil {
		w := &walker{c: c, table: otgraph.GDEF}
		w.gdef(f.GDef)
		r.Tables = append(r.Tables, TableCounts{Table: otgraph.GDEF, Counts: w.counts})
		r.Total.add(w.counts)
		r.Issues = append(r.Issues, w.issues...)
	}
	tracer().Infof("found %d coverage table(s), sorted %d", r.Total.Found, r.Total.Reordered)
	if r.Total.Aborted > 0 {
		tracer().Infof("left %d coverage table(s) unsorted to keep dependent arrays intact", r.Total.Aborted)
	}
	return r
}

// --- Walker ----------------------------------------------------------------

type walker struct {
	c       *Canonicalizer
	table   otgraph.Tag
	section string
	counts  Counts
	issues  []Issue
}

func (w *walker) issue(reason Reason, sev Severity) {
	is := Issue{Table: w.table, Section: w.section, Reason: reason, Severity: sev}
	tracer().Debugf("%s", is.Error())
	w.issues = append(w.issues, is)
}

func (w *walker) malformed(what string) {
	tracer().Infof("%s/%s: skipping, %s", w.table, w.section, what)
	w.issue(ReasonMalformed, SeverityMinor)
}

// count registers a coverage structure before it is touched.
func (w *walker) count(cov *otgraph.Coverage) {
	if !cov.IsEmpty() {
		w.counts.Found++
	}
}

func (w *walker) sortCoverage(cov *otgraph.Coverage) {
	if w.c.SortCoverage(cov) {
		w.counts.Reordered++
	}
}

func (w *walker) sortClassDef(cd *otgraph.ClassDef) {
	if w.c.SortClassDef(cd) {
		w.counts.ClassDefsReordered++
	}
}

// contextual counts and sorts each coverage of an array independently.
func (w *walker) contextual(covs []*otgraph.Coverage) {
	for _, cov := range covs {
		if cov == nil {
			w.malformed("missing contextual coverage")
			continue
		}
		w.counts.Found++
		w.sortCoverage(cov)
	}
}

func (w *walker) record(o Outcome) {
	if o.Changed {
		w.counts.Reordered++
	}
	if o.Aborted() {
		w.counts.Aborted++
		w.issue(o.Reason, SeverityMajor)
	}
	if o.Dropped > 0 {
		w.counts.Dropped += o.Dropped
		w.issue(ReasonDroppedEntries, SeverityMinor)
	}
}

func (w *walker) reorder(cov *otgraph.Coverage, deps ...Dependent) {
	w.count(cov)
	w.record(w.c.Reorder(cov, deps...))
}

func (w *walker) rebuild(cov *otgraph.Coverage, keyed ...Keyed) {
	w.count(cov)
	w.record(w.c.Rebuild(cov, keyed...))
}

func (w *walker) layout(lt *otgraph.LayoutTable) {
	for i, lookup := range lt.Range() {
		if lookup == nil {
			w.section = fmt.Sprintf("lookup %d", i)
			w.malformed("missing lookup")
			continue
		}
		for j, sub := range lookup.Range() {
			w.section = fmt.Sprintf("lookup %d/subtable %d", i, j)
			if ext, ok := sub.(*otgraph.ExtensionSubtable); ok {
				if ext == nil || ext.Subtable == nil {
					w.malformed("extension without subtable")
					continue
				}
				if _, nested := ext.Subtable.(*otgraph.ExtensionSubtable); nested {
					w.malformed("nested extension")
					continue
				}
			}
			w.subtable(otgraph.Unwrap(sub))
		}
	}
}

// subtable dispatches on the subtable variant.
func (w *walker) subtable(sub otgraph.Subtable) {
	if sub == nil {
		w.malformed("missing subtable")
		return
	}
	w.section = fmt.Sprintf("%s (%s)", w.section, sub.Kind())
	switch st := sub.(type) {
	case *otgraph.SingleSubst:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.rebuild(st.Coverage, st.Mapping)
	case *otgraph.MultipleSubst:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.rebuild(st.Coverage, st.Sequences)
	case *otgraph.AlternateSubst:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.rebuild(st.Coverage, st.Alternates)
	case *otgraph.LigatureSubst:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.rebuild(st.Coverage, st.LigatureSets)
	case *otgraph.ReverseChainSubst:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.reorder(st.Coverage, Parallel(&st.Substitutes))
		w.contextual(st.Backtrack)
		w.contextual(st.LookAhead)
	case *otgraph.ContextSubtable:
		if st == nil {
			w.malformed("missing subtable")
			return
		}
		w.context(st)
	case *otgraph.ChainContextSubtable:
		if st == nil {
			w.malformed("missing subtable")
			return
		}
		w.chainContext(st)
	case *otgraph.SinglePos:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		if st.Format == 2 {
			w.reorder(st.Coverage, Parallel(&st.Values))
			return
		}
		w.count(st.Coverage)
		w.sortCoverage(st.Coverage)
	case *otgraph.PairPos:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		if st.Format == 2 {
			w.count(st.Coverage)
			w.sortCoverage(st.Coverage)
			w.sortClassDef(st.ClassDef1)
			w.sortClassDef(st.ClassDef2)
			return
		}
		w.reorder(st.Coverage, Parallel(&st.PairSets))
	case *otgraph.CursivePos:
		if st == nil || st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.reorder(st.Coverage, Parallel(&st.EntryExits))
	case *otgraph.MarkAttachPos:
		if st == nil || st.MarkCoverage == nil || st.BaseCoverage == nil {
			w.malformed("no mark or base coverage")
			return
		}
		w.reorder(st.MarkCoverage, Parallel(&st.Marks))
		w.reorder(st.BaseCoverage, Parallel(&st.Bases))
	default:
		w.malformed(fmt.Sprintf("unexpected subtable %T", sub))
	}
}

func (w *walker) context(st *otgraph.ContextSubtable) {
	switch st.Format {
	case 1:
		if st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.reorder(st.Coverage, Parallel(&st.RuleSets))
	case 2:
		if st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.count(st.Coverage)
		w.sortCoverage(st.Coverage)
		w.sortClassDef(st.ClassDef)
	case 3:
		w.contextual(st.InputCoverages)
	default:
		w.malformed(fmt.Sprintf("format %d", st.Format))
	}
}

func (w *walker) chainContext(st *otgraph.ChainContextSubtable) {
	switch st.Format {
	case 1:
		if st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.reorder(st.Coverage, Parallel(&st.ChainRuleSets))
	case 2:
		if st.Coverage == nil {
			w.malformed("no coverage")
			return
		}
		w.count(st.Coverage)
		w.sortCoverage(st.Coverage)
		w.sortClassDef(st.BacktrackClassDef)
		w.sortClassDef(st.InputClassDef)
		w.sortClassDef(st.LookAheadClassDef)
	case 3:
		w.contextual(st.Backtrack)
		w.contextual(st.Input)
		w.contextual(st.LookAhead)
	default:
		w.malformed(fmt.Sprintf("format %d", st.Format))
	}
}

// gdef handles the glyph-indexed parts of GDEF. Caret lists follow the same
// all-or-nothing policy as arrays aligned to coverages in GSUB and GPOS.
func (w *walker) gdef(gdef *otgraph.GDefTable) {
	if lcl := gdef.LigCaretList; lcl != nil {
		w.section = "LigCaretList"
		if lcl.Coverage == nil {
			w.malformed("no coverage")
		} else {
			w.reorder(lcl.Coverage, Parallel(&lcl.LigGlyphs))
		}
	}
	if al := gdef.AttachList; al != nil {
		w.section = "AttachList"
		switch {
		case al.Coverage == nil:
			w.malformed("no coverage")
		case len(al.AttachPoints) == 0:
			w.count(al.Coverage)
			w.sortCoverage(al.Coverage)
		default:
			w.reorder(al.Coverage, Parallel(&al.AttachPoints))
		}
	}
	w.section = "MarkAttachClassDef"
	w.sortClassDef(gdef.MarkAttachClassDef)
	w.section = "GlyphClassDef"
	w.sortClassDef(gdef.GlyphClassDef)
	if len(gdef.MarkGlyphSets) > 0 {
		w.section = "MarkGlyphSetsDef"
		w.contextual(gdef.MarkGlyphSets)
	}
}
