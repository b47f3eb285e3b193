// Package ports defines the core interfaces for the application.
package ports

import "github.com/mosaic-ui/mosaic/internal/core/domain"

// Detector classifies raw source text into a module dialect.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type Detector interface {
	// Detect classifies the source by structural inspection only; it never
	// executes the text.
	Detect(source string) domain.Dialect

	// WrapLegacy rewrites a legacy source so it presents a synthetic default
	// export. It returns ErrFormat when no top-level component declaration
	// can be found to export.
	WrapLegacy(source string) (string, error)
}
