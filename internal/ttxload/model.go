package ttxload

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// XML model of the parts of a fontTools TTX dump we read. Element and
// attribute names follow fontTools' otData definitions.

type ttxFont struct {
	GlyphOrder ttxGlyphOrder `xml:"GlyphOrder"`
	Name       *ttxName      `xml:"name"`
	Cmap       *ttxCmap      `xml:"cmap"`
	GSUB       *ttxLayout    `xml:"GSUB"`
	GPOS       *ttxLayout    `xml:"GPOS"`
	GDEF       *ttxGDEF      `xml:"GDEF"`
}

type ttxGlyphOrder struct {
	GlyphIDs []ttxGlyphID `xml:"GlyphID"`
}

type ttxGlyphID struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type ttxName struct {
	Records []ttxNameRecord `xml:"namerecord"`
}

type ttxNameRecord struct {
	NameID     int    `xml:"nameID,attr"`
	PlatformID int    `xml:"platformID,attr"`
	Text       string `xml:",chardata"`
}

type ttxCmap struct {
	Subtables []ttxCmapSubtable `xml:",any"`
}

type ttxCmapSubtable struct {
	XMLName    xml.Name
	PlatformID int           `xml:"platformID,attr"`
	PlatEncID  int           `xml:"platEncID,attr"`
	Maps       []ttxCmapItem `xml:"map"`
}

type ttxCmapItem struct {
	Code string `xml:"code,attr"`
	Name string `xml:"name,attr"`
}

// --- Layout tables ---------------------------------------------------------

type ttxLayout struct {
	LookupList *ttxLookupList `xml:"LookupList"`
}

type ttxLookupList struct {
	Lookups []ttxLookup `xml:"Lookup"`
}

type ttxLookup struct {
	Index      int           `xml:"index,attr"`
	LookupType ttxValue      `xml:"LookupType"`
	LookupFlag ttxValue      `xml:"LookupFlag"`
	Subtables  []ttxSubtable `xml:",any"`
}

// ttxSubtable is the union of the children of all GSUB and GPOS subtable
// elements. Which fields are populated depends on XMLName and Format.
type ttxSubtable struct {
	XMLName    xml.Name
	Index      int    `xml:"index,attr"`
	FormatAttr string `xml:"Format,attr"`

	Coverage []ttxCoverage `xml:"Coverage"`

	// GSUB 1–4
	Substitutions []ttxSubstitution `xml:"Substitution"`
	AlternateSet  []ttxAlternateSet `xml:"AlternateSet"`
	LigatureSet   []ttxLigatureSet  `xml:"LigatureSet"`

	// contextual, GSUB 5/6/8 and GPOS 7/8
	ClassDef          ttxClassDef        `xml:"ClassDef"`
	SubRuleSet        []ttxRuleSet       `xml:"SubRuleSet"`
	PosRuleSet        []ttxRuleSet       `xml:"PosRuleSet"`
	SubClassSet       []ttxRuleSet       `xml:"SubClassSet"`
	PosClassSet       []ttxRuleSet       `xml:"PosClassSet"`
	SubstLookupRecord []ttxLookupRecord  `xml:"SubstLookupRecord"`
	PosLookupRecord   []ttxLookupRecord  `xml:"PosLookupRecord"`
	BacktrackCoverage []ttxCoverage      `xml:"BacktrackCoverage"`
	InputCoverage     []ttxCoverage      `xml:"InputCoverage"`
	LookAheadCoverage []ttxCoverage      `xml:"LookAheadCoverage"`
	BacktrackClassDef ttxClassDef        `xml:"BacktrackClassDef"`
	InputClassDef     ttxClassDef        `xml:"InputClassDef"`
	LookAheadClassDef ttxClassDef        `xml:"LookAheadClassDef"`
	ChainSubRuleSet   []ttxChainRuleSet  `xml:"ChainSubRuleSet"`
	ChainPosRuleSet   []ttxChainRuleSet  `xml:"ChainPosRuleSet"`
	ChainSubClassSet  []ttxChainRuleSet  `xml:"ChainSubClassSet"`
	ChainPosClassSet  []ttxChainRuleSet  `xml:"ChainPosClassSet"`
	Substitute        []ttxIndexedValue  `xml:"Substitute"`

	// GPOS 1–3
	ValueFormat     ttxValue             `xml:"ValueFormat"`
	Value           []ttxValueRec        `xml:"Value"`
	ValueFormat1    ttxValue             `xml:"ValueFormat1"`
	ValueFormat2    ttxValue             `xml:"ValueFormat2"`
	PairSet         []ttxPairSet         `xml:"PairSet"`
	ClassDef1       ttxClassDef          `xml:"ClassDef1"`
	ClassDef2       ttxClassDef          `xml:"ClassDef2"`
	Class1Record    []ttxClass1Record    `xml:"Class1Record"`
	EntryExitRecord []ttxEntryExitRecord `xml:"EntryExitRecord"`

	// GPOS 4–6
	MarkCoverage     ttxCoverage      `xml:"MarkCoverage"`
	BaseCoverage     ttxCoverage      `xml:"BaseCoverage"`
	LigatureCoverage ttxCoverage      `xml:"LigatureCoverage"`
	Mark1Coverage    ttxCoverage      `xml:"Mark1Coverage"`
	Mark2Coverage    ttxCoverage      `xml:"Mark2Coverage"`
	MarkArray        ttxMarkArray     `xml:"MarkArray"`
	Mark1Array       ttxMarkArray     `xml:"Mark1Array"`
	BaseArray        ttxBaseArray     `xml:"BaseArray"`
	LigatureArray    ttxLigatureArray `xml:"LigatureArray"`
	Mark2Array       ttxMark2Array    `xml:"Mark2Array"`

	// extensions
	ExtensionLookupType ttxValue      `xml:"ExtensionLookupType"`
	Wrapped             []ttxSubtable `xml:",any"`
}

func (st ttxSubtable) format() (int, error) {
	if st.FormatAttr == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(st.FormatAttr)
	if err != nil {
		return 0, fmt.Errorf("ttx: invalid %s format %q", st.XMLName.Local, st.FormatAttr)
	}
	return n, nil
}

type ttxCoverage struct {
	Index     int        `xml:"index,attr"`
	GlyphList []ttxGlyph `xml:"Glyph"`
}

func (c ttxCoverage) Glyphs() []string {
	out := make([]string, 0, len(c.GlyphList))
	for _, g := range c.GlyphList {
		if g.Value != "" {
			out = append(out, g.Value)
		}
	}
	return out
}

type ttxGlyph struct {
	Value string `xml:"value,attr"`
}

type ttxSubstitution struct {
	In  string `xml:"in,attr"`
	Out string `xml:"out,attr"`
}

type ttxAlternateSet struct {
	Glyph      string         `xml:"glyph,attr"`
	Alternates []ttxAlternate `xml:"Alternate"`
}

type ttxAlternate struct {
	Glyph string `xml:"glyph,attr"`
}

type ttxLigatureSet struct {
	Glyph     string        `xml:"glyph,attr"`
	Ligatures []ttxLigature `xml:"Ligature"`
}

type ttxLigature struct {
	Components string `xml:"components,attr"`
	Glyph      string `xml:"glyph,attr"`
}

type ttxClassDef struct {
	Entries []ttxClassDefEntry `xml:"ClassDef"`
}

type ttxClassDefEntry struct {
	Glyph string `xml:"glyph,attr"`
	Class int    `xml:"class,attr"`
}

// ttxRuleSet covers SubRuleSet, PosRuleSet, SubClassSet and PosClassSet.
type ttxRuleSet struct {
	Index     int       `xml:"index,attr"`
	EmptyAttr string    `xml:"empty,attr"`
	SubRule   []ttxRule `xml:"SubRule"`
	PosRule   []ttxRule `xml:"PosRule"`
	SubClass  []ttxRule `xml:"SubClassRule"`
	PosClass  []ttxRule `xml:"PosClassRule"`
}

func (rs ttxRuleSet) rules() []ttxRule {
	var all []ttxRule
	all = append(all, rs.SubRule...)
	all = append(all, rs.PosRule...)
	all = append(all, rs.SubClass...)
	return append(all, rs.PosClass...)
}

type ttxRule struct {
	Index             int               `xml:"index,attr"`
	Input             []ttxIndexedValue `xml:"Input"`
	Class             []ttxIndexedValue `xml:"Class"`
	SubstLookupRecord []ttxLookupRecord `xml:"SubstLookupRecord"`
	PosLookupRecord   []ttxLookupRecord `xml:"PosLookupRecord"`
}

// ttxChainRuleSet covers chained rule sets and class sets of GSUB and GPOS.
type ttxChainRuleSet struct {
	Index         int            `xml:"index,attr"`
	EmptyAttr     string         `xml:"empty,attr"`
	ChainSubRule  []ttxChainRule `xml:"ChainSubRule"`
	ChainPosRule  []ttxChainRule `xml:"ChainPosRule"`
	ChainSubClass []ttxChainRule `xml:"ChainSubClassRule"`
	ChainPosClass []ttxChainRule `xml:"ChainPosClassRule"`
}

func (rs ttxChainRuleSet) rules() []ttxChainRule {
	var all []ttxChainRule
	all = append(all, rs.ChainSubRule...)
	all = append(all, rs.ChainPosRule...)
	all = append(all, rs.ChainSubClass...)
	return append(all, rs.ChainPosClass...)
}

type ttxChainRule struct {
	Index             int               `xml:"index,attr"`
	Backtrack         []ttxIndexedValue `xml:"Backtrack"`
	Input             []ttxIndexedValue `xml:"Input"`
	LookAhead         []ttxIndexedValue `xml:"LookAhead"`
	SubstLookupRecord []ttxLookupRecord `xml:"SubstLookupRecord"`
	PosLookupRecord   []ttxLookupRecord `xml:"PosLookupRecord"`
}

type ttxIndexedValue struct {
	Index int    `xml:"index,attr"`
	Value string `xml:"value,attr"`
}

type ttxLookupRecord struct {
	Index           int      `xml:"index,attr"`
	SequenceIndex   ttxValue `xml:"SequenceIndex"`
	LookupListIndex ttxValue `xml:"LookupListIndex"`
}

type ttxValueRec struct {
	Index      int    `xml:"index,attr"`
	XPlacement string `xml:"XPlacement,attr"`
	YPlacement string `xml:"YPlacement,attr"`
	XAdvance   string `xml:"XAdvance,attr"`
	YAdvance   string `xml:"YAdvance,attr"`
}

type ttxPairSet struct {
	Index           int                  `xml:"index,attr"`
	PairValueRecord []ttxPairValueRecord `xml:"PairValueRecord"`
}

type ttxPairValueRecord struct {
	Index       int         `xml:"index,attr"`
	SecondGlyph ttxGlyph    `xml:"SecondGlyph"`
	Value1      ttxValueRec `xml:"Value1"`
	Value2      ttxValueRec `xml:"Value2"`
}

type ttxClass1Record struct {
	Index        int               `xml:"index,attr"`
	Class2Record []ttxClass2Record `xml:"Class2Record"`
}

type ttxClass2Record struct {
	Index  int         `xml:"index,attr"`
	Value1 ttxValueRec `xml:"Value1"`
	Value2 ttxValueRec `xml:"Value2"`
}

type ttxEntryExitRecord struct {
	Index       int       `xml:"index,attr"`
	EntryAnchor ttxAnchor `xml:"EntryAnchor"`
	ExitAnchor  ttxAnchor `xml:"ExitAnchor"`
}

type ttxMarkArray struct {
	MarkRecord []ttxMarkRecord `xml:"MarkRecord"`
}

type ttxMarkRecord struct {
	Index      int       `xml:"index,attr"`
	Class      ttxValue  `xml:"Class"`
	MarkAnchor ttxAnchor `xml:"MarkAnchor"`
}

type ttxBaseArray struct {
	BaseRecord []ttxBaseRecord `xml:"BaseRecord"`
}

type ttxBaseRecord struct {
	Index      int         `xml:"index,attr"`
	BaseAnchor []ttxAnchor `xml:"BaseAnchor"`
}

type ttxLigatureArray struct {
	LigatureAttach []ttxLigatureAttach `xml:"LigatureAttach"`
}

type ttxLigatureAttach struct {
	Index           int                  `xml:"index,attr"`
	ComponentRecord []ttxComponentRecord `xml:"ComponentRecord"`
}

type ttxComponentRecord struct {
	Index          int         `xml:"index,attr"`
	LigatureAnchor []ttxAnchor `xml:"LigatureAnchor"`
}

type ttxMark2Array struct {
	Mark2Record []ttxMark2Record `xml:"Mark2Record"`
}

type ttxMark2Record struct {
	Index       int         `xml:"index,attr"`
	Mark2Anchor []ttxAnchor `xml:"Mark2Anchor"`
}

type ttxAnchor struct {
	Index       int      `xml:"index,attr"`
	FormatAttr  string   `xml:"Format,attr"`
	EmptyAttr   string   `xml:"empty,attr"`
	XCoordinate ttxValue `xml:"XCoordinate"`
	YCoordinate ttxValue `xml:"YCoordinate"`
	AnchorPoint ttxValue `xml:"AnchorPoint"`
}

// --- GDEF ------------------------------------------------------------------

type ttxGDEF struct {
	GlyphClassDef      *ttxClassDef         `xml:"GlyphClassDef"`
	AttachList         *ttxAttachList       `xml:"AttachList"`
	LigCaretList       *ttxLigCaretList     `xml:"LigCaretList"`
	MarkAttachClassDef *ttxClassDef         `xml:"MarkAttachClassDef"`
	MarkGlyphSetsDef   *ttxMarkGlyphSetsDef `xml:"MarkGlyphSetsDef"`
}

type ttxAttachList struct {
	Coverage    ttxCoverage      `xml:"Coverage"`
	AttachPoint []ttxAttachPoint `xml:"AttachPoint"`
}

type ttxAttachPoint struct {
	Index      int               `xml:"index,attr"`
	PointIndex []ttxIndexedValue `xml:"PointIndex"`
}

type ttxLigCaretList struct {
	Coverage ttxCoverage   `xml:"Coverage"`
	LigGlyph []ttxLigGlyph `xml:"LigGlyph"`
}

type ttxLigGlyph struct {
	Index      int             `xml:"index,attr"`
	CaretValue []ttxCaretValue `xml:"CaretValue"`
}

type ttxCaretValue struct {
	Index           int      `xml:"index,attr"`
	FormatAttr      string   `xml:"Format,attr"`
	Coordinate      ttxValue `xml:"Coordinate"`
	CaretValuePoint ttxValue `xml:"CaretValuePoint"`
}

type ttxMarkGlyphSetsDef struct {
	Coverage []ttxCoverage `xml:"Coverage"`
}

// --- Values ----------------------------------------------------------------

type ttxValue struct {
	Value string `xml:"value,attr"`
}

func (v ttxValue) IsSet() bool {
	return v.Value != ""
}

func (v ttxValue) Int() (int, error) {
	if v.Value == "" {
		return 0, fmt.Errorf("missing value")
	}
	return parseInt(v.Value)
}

// IntOr returns the value, or def if the value is missing or malformed.
func (v ttxValue) IntOr(def int) int {
	if n, err := v.Int(); err == nil {
		return n
	}
	return def
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		return int(n), err
	}
	return strconv.Atoi(s)
}
