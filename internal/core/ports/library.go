package ports

// LibraryComponent is a named built-in component shipped with the host.
type LibraryComponent struct {
	Name   string
	Source string
	// Precompiled, when non-empty, lets the pipeline skip the rewriter and
	// transpiler and go straight to the cache.
	Precompiled string
}

// Library provides the built-in component collection.
//
//go:generate mockgen -source=library.go -destination=mocks/mock_library.go -package=mocks
type Library interface {
	// Lookup returns the named component or domain.ErrComponentNotFound.
	Lookup(name string) (LibraryComponent, error)

	// Names lists the available components in sorted order.
	Names() []string
}
