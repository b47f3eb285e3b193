package domain

// Dialect classifies source text as a standard module or legacy script.
type Dialect uint8

const (
	// DialectModule marks source with top-level import/export statements.
	DialectModule Dialect = iota
	// DialectLegacy marks bare source that must be wrapped before processing.
	DialectLegacy
)

// String returns the dialect name.
func (d Dialect) String() string {
	if d == DialectLegacy {
		return "legacy"
	}
	return "standard-module"
}
