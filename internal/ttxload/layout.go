package ttxload

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/npillmayer/otfeat/otgraph"
)

var gsubElements = map[string]otgraph.LookupType{
	"SingleSubst":             otgraph.GSubLookupTypeSingle,
	"MultipleSubst":           otgraph.GSubLookupTypeMultiple,
	"AlternateSubst":          otgraph.GSubLookupTypeAlternate,
	"LigatureSubst":           otgraph.GSubLookupTypeLigature,
	"ContextSubst":            otgraph.GSubLookupTypeContext,
	"ChainContextSubst":       otgraph.GSubLookupTypeChainingContext,
	"ExtensionSubst":          otgraph.GSubLookupTypeExtensionSubs,
	"ReverseChainSingleSubst": otgraph.GSubLookupTypeReverseChainingSubst,
}

var gposElements = map[string]otgraph.LookupType{
	"SinglePos":       otgraph.GPosLookupTypeSingle,
	"PairPos":         otgraph.GPosLookupTypePair,
	"CursivePos":      otgraph.GPosLookupTypeCursive,
	"MarkBasePos":     otgraph.GPosLookupTypeMarkToBase,
	"MarkLigPos":      otgraph.GPosLookupTypeMarkToLigature,
	"MarkMarkPos":     otgraph.GPosLookupTypeMarkToMark,
	"ContextPos":      otgraph.GPosLookupTypeContextPos,
	"ChainContextPos": otgraph.GPosLookupTypeChainedContextPos,
	"ExtensionPos":    otgraph.GPosLookupTypeExtensionPos,
}

func elementsFor(tag otgraph.Tag) map[string]otgraph.LookupType {
	if tag == otgraph.GSUB {
		return gsubElements
	}
	return gposElements
}

func layoutTable(tag otgraph.Tag, l *ttxLayout) (*otgraph.LayoutTable, error) {
	lt := otgraph.NewLayoutTable(tag)
	if l.LookupList == nil {
		tracer().Infof("ttx: %s has no LookupList", tag)
		return lt, nil
	}
	elements := elementsFor(tag)
	for i, lk := range l.LookupList.Lookups {
		typ, err := lk.LookupType.Int()
		if err != nil {
			return nil, fmt.Errorf("ttx: %s lookup %d: invalid LookupType: %w", tag, i, err)
		}
		var flag int
		if lk.LookupFlag.IsSet() {
			if flag, err = lk.LookupFlag.Int(); err != nil {
				return nil, fmt.Errorf("ttx: %s lookup %d: invalid LookupFlag: %w", tag, i, err)
			}
		}
		lookup := &otgraph.Lookup{Index: i, Type: otgraph.LookupType(typ), Flag: uint16(flag)}
		for _, st := range lk.Subtables {
			if _, ok := elements[st.XMLName.Local]; !ok {
				continue // e.g. MarkFilteringSet
			}
			sub, err := buildSubtable(tag, lookup.Type, st)
			if err != nil {
				return nil, fmt.Errorf("ttx: %s lookup %d: %w", tag, i, err)
			}
			lookup.Subtables = append(lookup.Subtables, sub)
		}
		lt.Lookups = append(lt.Lookups, lookup)
	}
	tracer().Debugf("ttx: %s has %d lookups", tag, len(lt.Lookups))
	return lt, nil
}

func buildSubtable(tag otgraph.Tag, lookupType otgraph.LookupType, st ttxSubtable) (otgraph.Subtable, error) {
	name := st.XMLName.Local
	if typ := elementsFor(tag)[name]; typ != lookupType {
		return nil, fmt.Errorf("unsupported lookup type %d with %s", lookupType, name)
	}
	format, err := st.format()
	if err != nil {
		return nil, err
	}
	switch name {
	case "SingleSubst":
		return singleSubst(format, st), nil
	case "MultipleSubst":
		return multipleSubst(format, st), nil
	case "AlternateSubst":
		return alternateSubst(format, st), nil
	case "LigatureSubst":
		return ligatureSubst(format, st), nil
	case "ContextSubst", "ContextPos":
		return contextSubtable(format, st)
	case "ChainContextSubst", "ChainContextPos":
		return chainContextSubtable(format, st)
	case "ReverseChainSingleSubst":
		return reverseChainSubst(format, st)
	case "ExtensionSubst", "ExtensionPos":
		return extensionSubtable(tag, format, st)
	case "SinglePos":
		return singlePos(format, st)
	case "PairPos":
		return pairPos(format, st)
	case "CursivePos":
		return cursivePos(format, st)
	case "MarkBasePos", "MarkLigPos", "MarkMarkPos":
		return markAttachPos(format, st)
	}
	return nil, fmt.Errorf("unsupported subtable %s", name)
}

func extensionSubtable(tag otgraph.Tag, format int, st ttxSubtable) (otgraph.Subtable, error) {
	extType, err := st.ExtensionLookupType.Int()
	if err != nil {
		return nil, fmt.Errorf("invalid ExtensionLookupType: %w", err)
	}
	ext := &otgraph.ExtensionSubtable{Format: format, ExtensionType: otgraph.LookupType(extType)}
	elements := elementsFor(tag)
	for _, wrapped := range st.Wrapped {
		if _, ok := elements[wrapped.XMLName.Local]; !ok {
			continue
		}
		if ext.Subtable, err = buildSubtable(tag, ext.ExtensionType, wrapped); err != nil {
			return nil, fmt.Errorf("extension: %w", err)
		}
		break
	}
	if ext.Subtable == nil {
		tracer().Infof("ttx: extension subtable of type %d wraps nothing", extType)
	}
	return ext, nil
}

// --- GSUB 1–4 --------------------------------------------------------------

// keyedCoverage returns the explicit coverage of a subtable, if present, or a
// coverage built from the keys in document order.
func keyedCoverage(st ttxSubtable, keys []string) *otgraph.Coverage {
	if len(st.Coverage) > 0 {
		return otgraph.NewCoverage(st.Coverage[0].Glyphs()...)
	}
	return otgraph.NewCoverage(keys...)
}

func singleSubst(format int, st ttxSubtable) otgraph.Subtable {
	mapping := otgraph.NewGlyphMap[string]()
	for _, s := range st.Substitutions {
		if s.In != "" && s.Out != "" {
			mapping.Put(s.In, s.Out)
		}
	}
	return &otgraph.SingleSubst{
		Format:   format,
		Coverage: keyedCoverage(st, mapping.Keys()),
		Mapping:  mapping,
	}
}

func multipleSubst(format int, st ttxSubtable) otgraph.Subtable {
	seqs := otgraph.NewGlyphMap[[]string]()
	for _, s := range st.Substitutions {
		if s.In != "" {
			seqs.Put(s.In, splitGlyphList(s.Out))
		}
	}
	return &otgraph.MultipleSubst{
		Format:    format,
		Coverage:  keyedCoverage(st, seqs.Keys()),
		Sequences: seqs,
	}
}

func alternateSubst(format int, st ttxSubtable) otgraph.Subtable {
	alts := otgraph.NewGlyphMap[[]string]()
	for _, set := range st.AlternateSet {
		g := strings.TrimSpace(set.Glyph)
		if g == "" {
			continue
		}
		list := make([]string, 0, len(set.Alternates))
		for _, a := range set.Alternates {
			if a.Glyph != "" {
				list = append(list, a.Glyph)
			}
		}
		alts.Put(g, list)
	}
	return &otgraph.AlternateSubst{
		Format:     format,
		Coverage:   keyedCoverage(st, alts.Keys()),
		Alternates: alts,
	}
}

func ligatureSubst(format int, st ttxSubtable) otgraph.Subtable {
	sets := otgraph.NewGlyphMap[[]otgraph.Ligature]()
	for _, set := range st.LigatureSet {
		first := strings.TrimSpace(set.Glyph)
		if first == "" {
			continue
		}
		list, _ := sets.Get(first)
		for _, lig := range set.Ligatures {
			if lig.Glyph == "" {
				continue
			}
			list = append(list, otgraph.Ligature{
				Components: splitGlyphList(lig.Components),
				Glyph:      lig.Glyph,
			})
		}
		sets.Put(first, list)
	}
	return &otgraph.LigatureSubst{
		Format:       format,
		Coverage:     keyedCoverage(st, sets.Keys()),
		LigatureSets: sets,
	}
}

// --- Contextual subtables --------------------------------------------------

func contextSubtable(format int, st ttxSubtable) (otgraph.Subtable, error) {
	ctx := &otgraph.ContextSubtable{Format: format}
	switch format {
	case 1, 2:
		if len(st.Coverage) == 0 {
			return nil, fmt.Errorf("%s format %d without Coverage", st.XMLName.Local, format)
		}
		ctx.Coverage = otgraph.NewCoverage(st.Coverage[0].Glyphs()...)
		if format == 1 {
			sets := slices.Concat(st.SubRuleSet, st.PosRuleSet)
			ctx.RuleSets = ruleSets(sets, false)
		} else {
			ctx.ClassDef = classDef(st.ClassDef)
			sets := slices.Concat(st.SubClassSet, st.PosClassSet)
			ctx.ClassRuleSets = ruleSets(sets, true)
		}
	case 3:
		ctx.InputCoverages = coverages(st.Coverage)
		ctx.Records = lookupRecords(slices.Concat(st.SubstLookupRecord, st.PosLookupRecord))
	default:
		return nil, fmt.Errorf("unsupported %s format %d", st.XMLName.Local, format)
	}
	return ctx, nil
}

func ruleSets(sets []ttxRuleSet, classes bool) []otgraph.RuleSet {
	sets = byIndex(sets, func(rs ttxRuleSet) int { return rs.Index })
	out := make([]otgraph.RuleSet, len(sets))
	for i, rs := range sets {
		if rs.EmptyAttr == "1" {
			continue
		}
		rules := byIndex(rs.rules(), func(r ttxRule) int { return r.Index })
		for _, r := range rules {
			rule := otgraph.SequenceRule{
				Records: lookupRecords(slices.Concat(r.SubstLookupRecord, r.PosLookupRecord)),
			}
			if classes {
				rule.Classes = intValues(r.Class)
			} else {
				rule.Input = glyphValues(r.Input)
			}
			out[i].Rules = append(out[i].Rules, rule)
		}
	}
	return out
}

func chainContextSubtable(format int, st ttxSubtable) (otgraph.Subtable, error) {
	ctx := &otgraph.ChainContextSubtable{Format: format}
	switch format {
	case 1, 2:
		if len(st.Coverage) == 0 {
			return nil, fmt.Errorf("%s format %d without Coverage", st.XMLName.Local, format)
		}
		ctx.Coverage = otgraph.NewCoverage(st.Coverage[0].Glyphs()...)
		if format == 1 {
			sets := slices.Concat(st.ChainSubRuleSet, st.ChainPosRuleSet)
			ctx.ChainRuleSets = chainRuleSets(sets, false)
		} else {
			ctx.BacktrackClassDef = classDef(st.BacktrackClassDef)
			ctx.InputClassDef = classDef(st.InputClassDef)
			ctx.LookAheadClassDef = classDef(st.LookAheadClassDef)
			sets := slices.Concat(st.ChainSubClassSet, st.ChainPosClassSet)
			ctx.ChainClassRuleSets = chainRuleSets(sets, true)
		}
	case 3:
		ctx.Backtrack = coverages(st.BacktrackCoverage)
		ctx.Input = coverages(st.InputCoverage)
		ctx.LookAhead = coverages(st.LookAheadCoverage)
		ctx.Records = lookupRecords(slices.Concat(st.SubstLookupRecord, st.PosLookupRecord))
	default:
		return nil, fmt.Errorf("unsupported %s format %d", st.XMLName.Local, format)
	}
	return ctx, nil
}

func chainRuleSets(sets []ttxChainRuleSet, classes bool) []otgraph.ChainRuleSet {
	sets = byIndex(sets, func(rs ttxChainRuleSet) int { return rs.Index })
	out := make([]otgraph.ChainRuleSet, len(sets))
	for i, rs := range sets {
		if rs.EmptyAttr == "1" {
			continue
		}
		rules := byIndex(rs.rules(), func(r ttxChainRule) int { return r.Index })
		for _, r := range rules {
			rule := otgraph.ChainRule{
				Records: lookupRecords(slices.Concat(r.SubstLookupRecord, r.PosLookupRecord)),
			}
			if classes {
				rule.BacktrackClasses = intValues(r.Backtrack)
				rule.InputClasses = intValues(r.Input)
				rule.LookAheadClasses = intValues(r.LookAhead)
			} else {
				rule.Backtrack = glyphValues(r.Backtrack)
				rule.Input = glyphValues(r.Input)
				rule.LookAhead = glyphValues(r.LookAhead)
			}
			out[i].Rules = append(out[i].Rules, rule)
		}
	}
	return out
}

func reverseChainSubst(format int, st ttxSubtable) (otgraph.Subtable, error) {
	if len(st.Coverage) == 0 {
		return nil, fmt.Errorf("ReverseChainSingleSubst without Coverage")
	}
	return &otgraph.ReverseChainSubst{
		Format:      format,
		Coverage:    otgraph.NewCoverage(st.Coverage[0].Glyphs()...),
		Backtrack:   coverages(st.BacktrackCoverage),
		LookAhead:   coverages(st.LookAheadCoverage),
		Substitutes: glyphValues(st.Substitute),
	}, nil
}

// --- GPOS ------------------------------------------------------------------

func singlePos(format int, st ttxSubtable) (otgraph.Subtable, error) {
	if len(st.Coverage) == 0 {
		return nil, fmt.Errorf("SinglePos without Coverage")
	}
	sp := &otgraph.SinglePos{
		Format:      format,
		Coverage:    otgraph.NewCoverage(st.Coverage[0].Glyphs()...),
		ValueFormat: uint16(st.ValueFormat.IntOr(0)),
	}
	values := byIndex(st.Value, func(v ttxValueRec) int { return v.Index })
	switch format {
	case 1:
		if len(values) > 0 {
			v, err := values[0].toValueRecord()
			if err != nil {
				return nil, err
			}
			sp.Value = v
		}
	case 2:
		sp.Values = make([]otgraph.ValueRecord, len(values))
		for i, vr := range values {
			v, err := vr.toValueRecord()
			if err != nil {
				return nil, err
			}
			sp.Values[i] = v
		}
	default:
		return nil, fmt.Errorf("unsupported SinglePos format %d", format)
	}
	return sp, nil
}

func pairPos(format int, st ttxSubtable) (otgraph.Subtable, error) {
	if len(st.Coverage) == 0 {
		return nil, fmt.Errorf("PairPos without Coverage")
	}
	pp := &otgraph.PairPos{
		Format:       format,
		Coverage:     otgraph.NewCoverage(st.Coverage[0].Glyphs()...),
		ValueFormat1: uint16(st.ValueFormat1.IntOr(0)),
		ValueFormat2: uint16(st.ValueFormat2.IntOr(0)),
	}
	switch format {
	case 1:
		sets := byIndex(st.PairSet, func(ps ttxPairSet) int { return ps.Index })
		pp.PairSets = make([]otgraph.PairSet, len(sets))
		for i, ps := range sets {
			records := byIndex(ps.PairValueRecord, func(r ttxPairValueRecord) int { return r.Index })
			for _, r := range records {
				v1, err := r.Value1.toValueRecord()
				if err != nil {
					return nil, err
				}
				v2, err := r.Value2.toValueRecord()
				if err != nil {
					return nil, err
				}
				pp.PairSets[i].Records = append(pp.PairSets[i].Records, otgraph.PairValueRecord{
					SecondGlyph: r.SecondGlyph.Value,
					Value1:      v1,
					Value2:      v2,
				})
			}
		}
	case 2:
		pp.ClassDef1 = classDef(st.ClassDef1)
		pp.ClassDef2 = classDef(st.ClassDef2)
		class1 := byIndex(st.Class1Record, func(r ttxClass1Record) int { return r.Index })
		pp.Class1Records = make([][]otgraph.Class2Record, len(class1))
		for i, c1 := range class1 {
			for _, c2 := range byIndex(c1.Class2Record, func(r ttxClass2Record) int { return r.Index }) {
				v1, err := c2.Value1.toValueRecord()
				if err != nil {
					return nil, err
				}
				v2, err := c2.Value2.toValueRecord()
				if err != nil {
					return nil, err
				}
				pp.Class1Records[i] = append(pp.Class1Records[i], otgraph.Class2Record{Value1: v1, Value2: v2})
			}
		}
	default:
		return nil, fmt.Errorf("unsupported PairPos format %d", format)
	}
	return pp, nil
}

func cursivePos(format int, st ttxSubtable) (otgraph.Subtable, error) {
	if len(st.Coverage) == 0 {
		return nil, fmt.Errorf("CursivePos without Coverage")
	}
	cp := &otgraph.CursivePos{
		Format:   format,
		Coverage: otgraph.NewCoverage(st.Coverage[0].Glyphs()...),
	}
	for _, r := range byIndex(st.EntryExitRecord, func(r ttxEntryExitRecord) int { return r.Index }) {
		entry, err := r.EntryAnchor.toAnchor()
		if err != nil {
			return nil, err
		}
		exit, err := r.ExitAnchor.toAnchor()
		if err != nil {
			return nil, err
		}
		cp.EntryExits = append(cp.EntryExits, otgraph.EntryExit{Entry: entry, Exit: exit})
	}
	return cp, nil
}

func markAttachPos(format int, st ttxSubtable) (otgraph.Subtable, error) {
	mp := &otgraph.MarkAttachPos{Format: format}
	markArray := st.MarkArray
	switch st.XMLName.Local {
	case "MarkBasePos":
		mp.Attach = otgraph.MarkToBase
		mp.MarkCoverage = otgraph.NewCoverage(st.MarkCoverage.Glyphs()...)
		mp.BaseCoverage = otgraph.NewCoverage(st.BaseCoverage.Glyphs()...)
		for _, br := range byIndex(st.BaseArray.BaseRecord, func(r ttxBaseRecord) int { return r.Index }) {
			anchors, err := anchorList(br.BaseAnchor)
			if err != nil {
				return nil, err
			}
			mp.Bases = append(mp.Bases, otgraph.AttachRecord{Components: [][]otgraph.Option[otgraph.Anchor]{anchors}})
		}
	case "MarkLigPos":
		mp.Attach = otgraph.MarkToLigature
		mp.MarkCoverage = otgraph.NewCoverage(st.MarkCoverage.Glyphs()...)
		mp.BaseCoverage = otgraph.NewCoverage(st.LigatureCoverage.Glyphs()...)
		for _, la := range byIndex(st.LigatureArray.LigatureAttach, func(r ttxLigatureAttach) int { return r.Index }) {
			var rec otgraph.AttachRecord
			for _, cr := range byIndex(la.ComponentRecord, func(r ttxComponentRecord) int { return r.Index }) {
				anchors, err := anchorList(cr.LigatureAnchor)
				if err != nil {
					return nil, err
				}
				rec.Components = append(rec.Components, anchors)
			}
			mp.Bases = append(mp.Bases, rec)
		}
	case "MarkMarkPos":
		mp.Attach = otgraph.MarkToMark
		mp.MarkCoverage = otgraph.NewCoverage(st.Mark1Coverage.Glyphs()...)
		mp.BaseCoverage = otgraph.NewCoverage(st.Mark2Coverage.Glyphs()...)
		markArray = st.Mark1Array
		for _, mr := range byIndex(st.Mark2Array.Mark2Record, func(r ttxMark2Record) int { return r.Index }) {
			anchors, err := anchorList(mr.Mark2Anchor)
			if err != nil {
				return nil, err
			}
			mp.Bases = append(mp.Bases, otgraph.AttachRecord{Components: [][]otgraph.Option[otgraph.Anchor]{anchors}})
		}
	}
	for _, mr := range byIndex(markArray.MarkRecord, func(r ttxMarkRecord) int { return r.Index }) {
		anchor, err := mr.MarkAnchor.toAnchor()
		if err != nil {
			return nil, err
		}
		class := mr.Class.IntOr(0)
		if class+1 > mp.ClassCount {
			mp.ClassCount = class + 1
		}
		mp.Marks = append(mp.Marks, otgraph.MarkRecord{Class: class, Anchor: anchor})
	}
	return mp, nil
}

// --- Helpers ---------------------------------------------------------------

// byIndex orders items by their index attribute. If the indices do not
// cover the items, e.g. because the attribute is missing, document order is
// kept.
func byIndex[T any](items []T, index func(T) int) []T {
	n := 0
	for _, it := range items {
		if i := index(it); i+1 > n {
			n = i + 1
		}
	}
	if n < len(items) {
		return items
	}
	out := make([]T, n)
	for _, it := range items {
		if i := index(it); i >= 0 {
			out[i] = it
		}
	}
	return out
}

func coverages(list []ttxCoverage) []*otgraph.Coverage {
	list = byIndex(list, func(c ttxCoverage) int { return c.Index })
	out := make([]*otgraph.Coverage, len(list))
	for i, c := range list {
		out[i] = otgraph.NewCoverage(c.Glyphs()...)
	}
	return out
}

func classDef(cd ttxClassDef) *otgraph.ClassDef {
	if len(cd.Entries) == 0 {
		return nil
	}
	out := otgraph.NewClassDef()
	for _, e := range cd.Entries {
		if e.Glyph != "" {
			out.Put(e.Glyph, e.Class)
		}
	}
	return out
}

func glyphValues(in []ttxIndexedValue) []string {
	in = byIndex(in, func(v ttxIndexedValue) int { return v.Index })
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = v.Value
	}
	return out
}

func intValues(in []ttxIndexedValue) []int {
	in = byIndex(in, func(v ttxIndexedValue) int { return v.Index })
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	for i, v := range in {
		out[i], _ = parseInt(v.Value)
	}
	return out
}

func lookupRecords(in []ttxLookupRecord) []otgraph.SequenceLookupRecord {
	in = byIndex(in, func(r ttxLookupRecord) int { return r.Index })
	if len(in) == 0 {
		return nil
	}
	out := make([]otgraph.SequenceLookupRecord, 0, len(in))
	for _, r := range in {
		si, err := r.SequenceIndex.Int()
		if err != nil {
			continue
		}
		li, err := r.LookupListIndex.Int()
		if err != nil {
			continue
		}
		out = append(out, otgraph.SequenceLookupRecord{SequenceIndex: si, LookupListIndex: li})
	}
	return out
}

func splitGlyphList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (v ttxValueRec) toValueRecord() (otgraph.ValueRecord, error) {
	var out otgraph.ValueRecord
	for _, field := range []struct {
		attr string
		dest *int
	}{
		{v.XPlacement, &out.XPlacement},
		{v.YPlacement, &out.YPlacement},
		{v.XAdvance, &out.XAdvance},
		{v.YAdvance, &out.YAdvance},
	} {
		if field.attr == "" {
			continue
		}
		n, err := strconv.Atoi(field.attr)
		if err != nil {
			return otgraph.ValueRecord{}, fmt.Errorf("invalid value record entry %q: %w", field.attr, err)
		}
		*field.dest = n
	}
	return out, nil
}

// toAnchor converts an anchor element. Absent or empty anchors are None.
func (a ttxAnchor) toAnchor() (otgraph.Option[otgraph.Anchor], error) {
	if a.EmptyAttr == "1" || (a.FormatAttr == "" && !a.XCoordinate.IsSet()) {
		return otgraph.None[otgraph.Anchor](), nil
	}
	anchor := otgraph.Anchor{Format: 1}
	if a.FormatAttr != "" {
		f, err := strconv.Atoi(a.FormatAttr)
		if err != nil {
			return otgraph.None[otgraph.Anchor](), fmt.Errorf("invalid anchor format %q", a.FormatAttr)
		}
		anchor.Format = f
	}
	anchor.XCoordinate = a.XCoordinate.IntOr(0)
	anchor.YCoordinate = a.YCoordinate.IntOr(0)
	if p, err := a.AnchorPoint.Int(); err == nil {
		anchor.AnchorPoint = otgraph.Some(p)
	}
	return otgraph.Some(anchor), nil
}

func anchorList(list []ttxAnchor) ([]otgraph.Option[otgraph.Anchor], error) {
	list = byIndex(list, func(a ttxAnchor) int { return a.Index })
	out := make([]otgraph.Option[otgraph.Anchor], len(list))
	for i, a := range list {
		anchor, err := a.toAnchor()
		if err != nil {
			return nil, err
		}
		out[i] = anchor
	}
	return out, nil
}
