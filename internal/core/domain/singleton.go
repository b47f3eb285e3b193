package domain

import (
	"slices"
	"strings"
)

// SingletonSet is the configured list of external references that must
// resolve to one shared runtime instance host-wide. The set is immutable for
// the lifetime of a session; the rewriter must never emit a concrete locator
// for a matching specifier.
type SingletonSet struct {
	names []string
}

// NewSingletonSet copies names into an immutable set.
func NewSingletonSet(names []string) SingletonSet {
	return SingletonSet{names: slices.Clone(names)}
}

// Matches reports whether specifier is an entry of the set or a sub-path of
// one (e.g. "ui-runtime" matches both "ui-runtime" and "ui-runtime/hooks").
func (s SingletonSet) Matches(specifier string) bool {
	for _, name := range s.names {
		if specifier == name || strings.HasPrefix(specifier, name+"/") {
			return true
		}
	}
	return false
}

// Primary returns the first entry, the module that supplies framework
// helpers for inference repair. Empty when the set is empty.
func (s SingletonSet) Primary() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

// Names returns a copy of the configured entries.
func (s SingletonSet) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of entries.
func (s SingletonSet) Len() int {
	return len(s.names)
}
