package ports

import "github.com/mosaic-ui/mosaic/internal/core/domain"

// ManifestStore persists compile summaries across sessions.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestStore interface {
	// Record upserts the summary keyed by its original hash.
	Record(info domain.CompileInfo) error

	// Lookup returns the stored summary for originalHash.
	Lookup(originalHash string) (domain.CompileInfo, bool)

	// All lists the stored summaries sorted by record id.
	All() []domain.CompileInfo
}
