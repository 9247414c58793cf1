package otgraph

import "strings"

// Capability flags tell which coverage-indexed structures a subtable carries.
type Capability uint16

const (
	HasCoverage           Capability = 1 << iota // a primary coverage
	HasClassDef                                  // one or more class definitions
	HasContextualCoverage                        // arrays of backtrack/input/look-ahead coverages
	HasPairSets                                  // pair sets aligned to the primary coverage
	HasLigatureSets                              // ligature sets keyed by first glyph
	HasKeyedMapping                              // other glyph-keyed mappings
	HasAlignedArray                              // other arrays aligned to a coverage
	HasMarkCoverage                              // mark and base/ligature/mark2 coverages
	IsExtension                                  // wraps another subtable
)

var capabilityNames = [...]string{"Coverage", "ClassDef", "ContextualCoverage", "PairSets",
	"LigatureSets", "KeyedMapping", "AlignedArray", "MarkCoverage", "Extension"}

// Has is true if all flags of x are set in c.
func (c Capability) Has(x Capability) bool {
	return c&x == x
}

func (c Capability) String() string {
	var names []string
	for i, n := range capabilityNames {
		if c&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return "{" + strings.Join(names, "|") + "}"
}

// SubtableKind identifies the variant of a Subtable.
type SubtableKind int

const (
	KindSingleSubst SubtableKind = iota + 1
	KindMultipleSubst
	KindAlternateSubst
	KindLigatureSubst
	KindContext
	KindChainContext
	KindReverseChainSubst
	KindSinglePos
	KindPairPos
	KindCursivePos
	KindMarkAttachPos
	KindExtension
)

var kindNames = [...]string{"?", "SingleSubst", "MultipleSubst", "AlternateSubst",
	"LigatureSubst", "Context", "ChainContext", "ReverseChainSubst", "SinglePos",
	"PairPos", "CursivePos", "MarkAttachPos", "Extension"}

func (k SubtableKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Subtable is a lookup subtable. The set of implementations is closed; clients
// switch on the concrete type.
type Subtable interface {
	Kind() SubtableKind
	Capabilities() Capability
	isSubtable()
}

// --- GSUB subtables --------------------------------------------------------

// SingleSubst replaces one glyph by another (GSUB type 1). Mapping is keyed by
// the covered glyph.
type SingleSubst struct {
	Format   int
	Coverage *Coverage
	Mapping  *GlyphMap[string]
}

// MultipleSubst replaces one glyph by a sequence of glyphs (GSUB type 2).
type MultipleSubst struct {
	Format    int
	Coverage  *Coverage
	Sequences *GlyphMap[[]string]
}

// AlternateSubst offers alternates for a glyph (GSUB type 3).
type AlternateSubst struct {
	Format     int
	Coverage   *Coverage
	Alternates *GlyphMap[[]string]
}

// Ligature is an entry of a ligature set. Components lists the components
// following the first one, which is the key of the ligature set.
type Ligature struct {
	Components []string
	Glyph      string
}

// LigatureSubst replaces a sequence of glyphs by a ligature (GSUB type 4).
// LigatureSets is keyed by the first component.
type LigatureSubst struct {
	Format       int
	Coverage     *Coverage
	LigatureSets *GlyphMap[[]Ligature]
}

// ReverseChainSubst is GSUB type 8. Substitutes is aligned to Coverage.
type ReverseChainSubst struct {
	Format      int
	Coverage    *Coverage
	Backtrack   []*Coverage
	LookAhead   []*Coverage
	Substitutes []string
}

// --- Contextual subtables --------------------------------------------------

// SequenceLookupRecord applies a lookup at a position of a matched sequence.
type SequenceLookupRecord struct {
	SequenceIndex   int
	LookupListIndex int
}

// SequenceRule is a rule of a context subtable of format 1 or 2. Input holds
// the remaining glyphs (format 1) or classes (format 2) after the first one.
type SequenceRule struct {
	Input   []string
	Classes []int
	Records []SequenceLookupRecord
}

// RuleSet is a list of sequence rules.
type RuleSet struct {
	Rules []SequenceRule
}

// ContextSubtable is a contextual substitution or positioning subtable
// (GSUB type 5, GPOS type 7).
//
// Format 1: RuleSets is aligned to Coverage.
// Format 2: ClassRuleSets is indexed by class of ClassDef.
// Format 3: InputCoverages holds one coverage per input position.
type ContextSubtable struct {
	Format         int
	Coverage       *Coverage
	ClassDef       *ClassDef
	RuleSets       []RuleSet
	ClassRuleSets  []RuleSet
	InputCoverages []*Coverage
	Records        []SequenceLookupRecord
}

// ChainRule is a rule of a chained context subtable of format 1 or 2.
// For format 1 sequences hold glyph names, for format 2 they hold classes.
type ChainRule struct {
	Backtrack        []string
	Input            []string
	LookAhead        []string
	BacktrackClasses []int
	InputClasses     []int
	LookAheadClasses []int
	Records          []SequenceLookupRecord
}

// ChainRuleSet is a list of chained rules.
type ChainRuleSet struct {
	Rules []ChainRule
}

// ChainContextSubtable is a chained contextual substitution or positioning
// subtable (GSUB type 6, GPOS type 8).
//
// Format 1: ChainRuleSets is aligned to Coverage.
// Format 2: ChainClassRuleSets is indexed by class of InputClassDef.
// Format 3: Backtrack, Input and LookAhead hold one coverage per position.
type ChainContextSubtable struct {
	Format             int
	Coverage           *Coverage
	BacktrackClassDef  *ClassDef
	InputClassDef      *ClassDef
	LookAheadClassDef  *ClassDef
	ChainRuleSets      []ChainRuleSet
	ChainClassRuleSets []ChainRuleSet
	Backtrack          []*Coverage
	Input              []*Coverage
	LookAhead          []*Coverage
	Records            []SequenceLookupRecord
}

// --- GPOS subtables --------------------------------------------------------

// ValueRecord holds positioning adjustments. Device table offsets are not
// part of the graph.
type ValueRecord struct {
	XPlacement int
	YPlacement int
	XAdvance   int
	YAdvance   int
}

// Anchor is an attachment point of a glyph.
type Anchor struct {
	Format      int
	XCoordinate int
	YCoordinate int
	AnchorPoint Option[int]
}

// SinglePos adjusts the position of single glyphs (GPOS type 1).
// For format 2 Values is aligned to Coverage.
type SinglePos struct {
	Format      int
	Coverage    *Coverage
	ValueFormat uint16
	Value       ValueRecord
	Values      []ValueRecord
}

// PairValueRecord is an entry of a pair set.
type PairValueRecord struct {
	SecondGlyph string
	Value1      ValueRecord
	Value2      ValueRecord
}

// PairSet lists the pair adjustments for one first glyph.
type PairSet struct {
	Records []PairValueRecord
}

// Class2Record holds the adjustments for a class pair.
type Class2Record struct {
	Value1 ValueRecord
	Value2 ValueRecord
}

// PairPos adjusts the positions of glyph pairs (GPOS type 2).
//
// Format 1: PairSets is aligned to Coverage.
// Format 2: Class1Records is indexed by ClassDef1 class, then ClassDef2 class.
type PairPos struct {
	Format        int
	Coverage      *Coverage
	ValueFormat1  uint16
	ValueFormat2  uint16
	PairSets      []PairSet
	ClassDef1     *ClassDef
	ClassDef2     *ClassDef
	Class1Records [][]Class2Record
}

// EntryExit holds the cursive attachment anchors of a glyph.
type EntryExit struct {
	Entry Option[Anchor]
	Exit  Option[Anchor]
}

// CursivePos attaches glyphs cursively (GPOS type 3). EntryExits is aligned
// to Coverage.
type CursivePos struct {
	Format     int
	Coverage   *Coverage
	EntryExits []EntryExit
}

// MarkAttachKind distinguishes the mark attachment lookup types.
type MarkAttachKind int

const (
	MarkToBase MarkAttachKind = iota
	MarkToLigature
	MarkToMark
)

func (k MarkAttachKind) String() string {
	switch k {
	case MarkToBase:
		return "MarkToBase"
	case MarkToLigature:
		return "MarkToLigature"
	case MarkToMark:
		return "MarkToMark"
	}
	return "MarkAttach?"
}

// MarkRecord is an entry of a mark array.
type MarkRecord struct {
	Class  int
	Anchor Option[Anchor]
}

// AttachRecord holds the anchors of a base glyph (one component), ligature
// glyph (one component per ligature component) or base mark (one component).
// Each component holds one optional anchor per mark class.
type AttachRecord struct {
	Components [][]Option[Anchor]
}

// MarkAttachPos attaches marks to bases, ligatures or other marks
// (GPOS types 4, 5 and 6). Marks is aligned to MarkCoverage, Bases is aligned
// to BaseCoverage. For MarkToLigature BaseCoverage is the ligature coverage,
// for MarkToMark it is the coverage of the base marks.
type MarkAttachPos struct {
	Attach       MarkAttachKind
	Format       int
	MarkCoverage *Coverage
	BaseCoverage *Coverage
	ClassCount   int
	Marks        []MarkRecord
	Bases        []AttachRecord
}

// --- Extension --------------------------------------------------------------

// ExtensionSubtable wraps a subtable of another lookup type
// (GSUB type 7, GPOS type 9).
type ExtensionSubtable struct {
	Format        int
	ExtensionType LookupType
	Subtable      Subtable
}

// Unwrap returns the subtable wrapped by st if st is an extension, and st
// otherwise. Only one level of wrapping is removed.
func Unwrap(st Subtable) Subtable {
	if ext, ok := st.(*ExtensionSubtable); ok && ext != nil {
		return ext.Subtable
	}
	return st
}

// --- Variant plumbing ------------------------------------------------------

func (*SingleSubst) Kind() SubtableKind          { return KindSingleSubst }
func (*MultipleSubst) Kind() SubtableKind        { return KindMultipleSubst }
func (*AlternateSubst) Kind() SubtableKind       { return KindAlternateSubst }
func (*LigatureSubst) Kind() SubtableKind        { return KindLigatureSubst }
func (*ReverseChainSubst) Kind() SubtableKind    { return KindReverseChainSubst }
func (*ContextSubtable) Kind() SubtableKind      { return KindContext }
func (*ChainContextSubtable) Kind() SubtableKind { return KindChainContext }
func (*SinglePos) Kind() SubtableKind            { return KindSinglePos }
func (*PairPos) Kind() SubtableKind              { return KindPairPos }
func (*CursivePos) Kind() SubtableKind           { return KindCursivePos }
func (*MarkAttachPos) Kind() SubtableKind        { return KindMarkAttachPos }
func (*ExtensionSubtable) Kind() SubtableKind    { return KindExtension }

func (*SingleSubst) isSubtable()          {}
func (*MultipleSubst) isSubtable()        {}
func (*AlternateSubst) isSubtable()       {}
func (*LigatureSubst) isSubtable()        {}
func (*ReverseChainSubst) isSubtable()    {}
func (*ContextSubtable) isSubtable()      {}
func (*ChainContextSubtable) isSubtable() {}
func (*SinglePos) isSubtable()            {}
func (*PairPos) isSubtable()              {}
func (*CursivePos) isSubtable()           {}
func (*MarkAttachPos) isSubtable()        {}
func (*ExtensionSubtable) isSubtable()    {}

func (*SingleSubst) Capabilities() Capability    { return HasCoverage | HasKeyedMapping }
func (*MultipleSubst) Capabilities() Capability  { return HasCoverage | HasKeyedMapping }
func (*AlternateSubst) Capabilities() Capability { return HasCoverage | HasKeyedMapping }
func (*LigatureSubst) Capabilities() Capability  { return HasCoverage | HasLigatureSets }
func (*CursivePos) Capabilities() Capability     { return HasCoverage | HasAlignedArray }
func (*MarkAttachPos) Capabilities() Capability  { return HasMarkCoverage | HasAlignedArray }
func (*ExtensionSubtable) Capabilities() Capability {
	return IsExtension
}

func (st *ReverseChainSubst) Capabilities() Capability {
	return HasCoverage | HasContextualCoverage | HasAlignedArray
}

func (st *ContextSubtable) Capabilities() Capability {
	switch st.Format {
	case 1:
		return HasCoverage | HasAlignedArray
	case 2:
		return HasCoverage | HasClassDef
	}
	return HasContextualCoverage
}

func (st *ChainContextSubtable) Capabilities() Capability {
	switch st.Format {
	case 1:
		return HasCoverage | HasAlignedArray
	case 2:
		return HasCoverage | HasClassDef
	}
	return HasContextualCoverage
}

func (st *SinglePos) Capabilities() Capability {
	if st.Format == 2 {
		return HasCoverage | HasAlignedArray
	}
	return HasCoverage
}

func (st *PairPos) Capabilities() Capability {
	if st.Format == 2 {
		return HasCoverage | HasClassDef
	}
	return HasCoverage | HasPairSets
}

var _ Subtable = (*SingleSubst)(nil)
var _ Subtable = (*MultipleSubst)(nil)
var _ Subtable = (*AlternateSubst)(nil)
var _ Subtable = (*LigatureSubst)(nil)
var _ Subtable = (*ReverseChainSubst)(nil)
var _ Subtable = (*ContextSubtable)(nil)
var _ Subtable = (*ChainContextSubtable)(nil)
var _ Subtable = (*SinglePos)(nil)
var _ Subtable = (*PairPos)(nil)
var _ Subtable = (*CursivePos)(nil)
var _ Subtable = (*MarkAttachPos)(nil)
var _ Subtable = (*ExtensionSubtable)(nil)
