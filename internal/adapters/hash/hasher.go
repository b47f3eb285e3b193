// Package hash implements content hashing for component source text.
package hash

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash content digests over normalized source.
type Hasher struct{}

// New creates a new Hasher.
func New() *Hasher {
	return &Hasher{}
}

// HashSource computes the digest of the normalized source, hex encoded.
func (h *Hasher) HashSource(source string) string {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(Normalize(source))
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// Normalize canonicalizes source for hashing: CRLF becomes LF and trailing
// whitespace is stripped per line. Two sources that differ only in these
// ways are the same content and share a cache entry.
func Normalize(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
