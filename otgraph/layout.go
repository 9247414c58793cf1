package otgraph

import (
	"iter"
	"strconv"
)

// LayoutTable is a GSUB or GPOS table, reduced to its lookup list.
// Script and feature lists are not part of the graph.
type LayoutTable struct {
	Tag     Tag
	Lookups []*Lookup
}

// NewLayoutTable creates an empty layout table for tag.
func NewLayoutTable(tag Tag) *LayoutTable {
	return &LayoutTable{Tag: tag}
}

// Len returns the number of lookups in the table.
func (lt *LayoutTable) Len() int {
	if lt == nil {
		return 0
	}
	return len(lt.Lookups)
}

// Lookup returns lookup i, or nil if out of range.
func (lt *LayoutTable) Lookup(i int) *Lookup {
	if lt == nil || i < 0 || i >= len(lt.Lookups) {
		return nil
	}
	return lt.Lookups[i]
}

// Range iterates over all lookups in lookup-list order.
func (lt *LayoutTable) Range() iter.Seq2[int, *Lookup] {
	return func(yield func(int, *Lookup) bool) {
		if lt == nil {
			return
		}
		for i, l := range lt.Lookups {
			if !yield(i, l) {
				return
			}
		}
	}
}

// IsGSub is true for a GSUB table.
func (lt *LayoutTable) IsGSub() bool {
	return lt != nil && lt.Tag == GSUB
}

// LookupType is the type of a GSUB or GPOS lookup. Its meaning depends on the
// table the lookup is contained in.
type LookupType int

// GSUB lookup types
const (
	GSubLookupTypeSingle               LookupType = 1 // Replace one glyph with one glyph
	GSubLookupTypeMultiple             LookupType = 2 // Replace one glyph with more than one glyph
	GSubLookupTypeAlternate            LookupType = 3 // Replace one glyph with one of many glyphs
	GSubLookupTypeLigature             LookupType = 4 // Replace multiple glyphs with one glyph
	GSubLookupTypeContext              LookupType = 5 // Replace one or more glyphs in context
	GSubLookupTypeChainingContext      LookupType = 6 // Replace one or more glyphs in chained context
	GSubLookupTypeExtensionSubs        LookupType = 7 // Extension mechanism for other substitutions
	GSubLookupTypeReverseChainingSubst LookupType = 8 // Applied in reverse order, replace single glyph in chaining context
)

// GPOS lookup types
const (
	GPosLookupTypeSingle            LookupType = 1 // Adjust position of a single glyph
	GPosLookupTypePair              LookupType = 2 // Adjust position of a pair of glyphs
	GPosLookupTypeCursive           LookupType = 3 // Attach cursive glyphs
	GPosLookupTypeMarkToBase        LookupType = 4 // Attach a combining mark to a base glyph
	GPosLookupTypeMarkToLigature    LookupType = 5 // Attach a combining mark to a ligature
	GPosLookupTypeMarkToMark        LookupType = 6 // Attach a combining mark to another mark
	GPosLookupTypeContextPos        LookupType = 7 // Position one or more glyphs in context
	GPosLookupTypeChainedContextPos LookupType = 8 // Position one or more glyphs in chained context
	GPosLookupTypeExtensionPos      LookupType = 9 // Extension mechanism for other positionings
)

var gsubLookupTypeNames = [...]string{"Single", "Multiple", "Alternate", "Ligature",
	"Context", "Chaining", "Extension", "ReverseChaining"}

var gposLookupTypeNames = [...]string{"Single", "Pair", "Cursive", "MarkToBase",
	"MarkToLigature", "MarkToMark", "ContextPos", "Chained", "Ext"}

// GSubString interprets a lookup type as a GSUB lookup type.
func (lt LookupType) GSubString() string {
	if lt >= 1 && int(lt) <= len(gsubLookupTypeNames) {
		return gsubLookupTypeNames[lt-1]
	}
	return strconv.Itoa(int(lt))
}

// GPosString interprets a lookup type as a GPOS lookup type.
func (lt LookupType) GPosString() string {
	if lt >= 1 && int(lt) <= len(gposLookupTypeNames) {
		return gposLookupTypeNames[lt-1]
	}
	return strconv.Itoa(int(lt))
}

// Lookup is an entry of a lookup list. All subtables of a lookup share the
// lookup's type, except that extension subtables wrap subtables of the
// extension's target type.
type Lookup struct {
	Index     int
	Type      LookupType
	Flag      uint16
	Subtables []Subtable
}

// Len returns the number of subtables of the lookup.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Subtables)
}

// EffectiveType returns the lookup type after resolving extension subtables.
// For non-extension lookups this is the lookup's type.
func (l *Lookup) EffectiveType() LookupType {
	if l == nil {
		return 0
	}
	for _, st := range l.Subtables {
		if ext, ok := st.(*ExtensionSubtable); ok && ext.ExtensionType != 0 {
			return ext.ExtensionType
		}
	}
	return l.Type
}

// Range iterates over the subtables of a lookup.
func (l *Lookup) Range() iter.Seq2[int, Subtable] {
	return func(yield func(int, Subtable) bool) {
		if l == nil {
			return
		}
		for i, st := range l.Subtables {
			if !yield(i, st) {
				return
			}
		}
	}
}
