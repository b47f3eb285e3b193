// Package library ships the built-in component collection. Built-ins are
// ordinary module sources registered under stable names; a few hot ones
// carry precompiled output so the pipeline can skip straight to the cache.
package library

import (
	"sort"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.Library = (*Library)(nil)

// Library is an in-memory registry of built-in components.
type Library struct {
	components map[string]ports.LibraryComponent
	names      []string
}

// New creates a Library holding the stock collection.
func New() *Library {
	return FromComponents(stock)
}

// FromComponents creates a Library over an explicit collection.
func FromComponents(components []ports.LibraryComponent) *Library {
	byName := make(map[string]ports.LibraryComponent, len(components))
	names := make([]string, 0, len(components))
	for _, c := range components {
		if _, dup := byName[c.Name]; dup {
			continue
		}
		byName[c.Name] = c
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return &Library{components: byName, names: names}
}

// Lookup returns the named component.
func (l *Library) Lookup(name string) (ports.LibraryComponent, error) {
	c, ok := l.components[name]
	if !ok {
		return ports.LibraryComponent{}, zerr.With(
			zerr.Wrap(domain.ErrComponentNotFound, "no such built-in component"), "name", name)
	}
	return c, nil
}

// Names lists the available components in sorted order.
func (l *Library) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}
