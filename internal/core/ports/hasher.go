package ports

// Hasher computes content digests for source text.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashSource returns the digest of the normalized source. Identical
	// sources (modulo line endings and trailing whitespace) hash equal.
	HashSource(source string) string
}
