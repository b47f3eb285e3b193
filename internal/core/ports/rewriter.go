package ports

import "github.com/mosaic-ui/mosaic/internal/core/domain"

// RewriteResult is the outcome of a dependency rewrite pass.
type RewriteResult struct {
	// Source is the rewritten module text.
	Source string
	// Dependencies lists the external specifiers referenced by the module
	// after rewriting, singleton entries included, in declaration order.
	Dependencies []string
	// Inferred lists framework identifiers for which a missing import was
	// synthesized.
	Inferred []string
}

// Rewriter rewrites external dependency references so that singleton
// references stay unresolved while everything else becomes a fully
// resolvable locator.
//
//go:generate mockgen -source=rewriter.go -destination=mocks/mock_rewriter.go -package=mocks
type Rewriter interface {
	// Rewrite is purely textual; it never executes the source.
	Rewrite(source string, singletons domain.SingletonSet) (RewriteResult, error)
}
