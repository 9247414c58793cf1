package canon

import (
	"fmt"

	"github.com/npillmayer/otfeat/otgraph"
)

// Reason tells why a structure has not been reordered as a whole.
type Reason int

const (
	ReasonNone           Reason = iota
	ReasonLengthMismatch        // a dependent array differs in length from its coverage
	ReasonNotBijective          // old and new coverage positions do not map one-to-one
	ReasonMalformed             // a sub-structure is missing or of unexpected shape
	ReasonDroppedEntries        // keyed entries without a coverage glyph have been removed
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonLengthMismatch:
		return "dependent array length differs from coverage"
	case ReasonNotBijective:
		return "coverage positions do not map one-to-one"
	case ReasonMalformed:
		return "malformed sub-structure"
	case ReasonDroppedEntries:
		return "dropped entries not in coverage"
	}
	return "unknown reason"
}

// Outcome is the result of reordering a coverage together with its dependents.
type Outcome struct {
	Changed bool   // coverage order has changed
	Reason  Reason // why the reorder has been refused, or ReasonNone
	Dropped int    // keyed entries removed by a key rebuild
}

// Aborted is true if the reorder has been refused and everything has been
// left in its previous order.
func (o Outcome) Aborted() bool {
	return o.Reason == ReasonLengthMismatch || o.Reason == ReasonNotBijective
}

// Severity classifies an Issue.
type Severity int

const (
	// SeverityMajor: a structure has been left unsorted.
	SeverityMajor Severity = iota
	// SeverityMinor: a structure has been skipped or trimmed.
	SeverityMinor
)

func (s Severity) String() string {
	switch s {
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	}
	return "UNKNOWN"
}

// Issue records a structure which could not be canonicalized completely.
// Issues are collected during a walk and never stop it.
type Issue struct {
	Table    otgraph.Tag // GSUB, GPOS or GDEF
	Section  string      // location within the table, e.g. "lookup 3/subtable 0 (PairPos)"
	Reason   Reason
	Severity Severity
}

// Error implements the error interface.
func (is Issue) Error() string {
	return fmt.Sprintf("[%s] %s/%s: %s", is.Severity, is.Table, is.Section, is.Reason)
}
