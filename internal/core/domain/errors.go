package domain

import "go.trai.ch/zerr"

var (
	// ErrFormat is returned when source cannot be classified or a legacy
	// source cannot be wrapped into a synthetic module.
	ErrFormat = zerr.New("source dialect unrecognizable")

	// ErrImportResolution is returned when an import specifier is malformed
	// or unresolvable under strict resolution.
	ErrImportResolution = zerr.New("import specifier malformed or unresolvable")

	// ErrTranspile is returned when inline markup syntax is invalid.
	ErrTranspile = zerr.New("markup syntax invalid")

	// ErrLoad is returned when loading the materialized module fails for
	// network or compilation reasons. Load failures are retried once.
	ErrLoad = zerr.New("failed to load materialized module")

	// ErrRuntime is returned when the module body throws during evaluation.
	// Runtime failures are never retried.
	ErrRuntime = zerr.New("module body evaluation failed")

	// ErrMissingDefaultExport is returned when a loaded module exposes no
	// default export to use as the component constructor.
	ErrMissingDefaultExport = zerr.New("module has no default export")

	// ErrCacheMiss is returned when a requested hash is not in the cache.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrComponentNotFound is returned when a built-in library lookup fails.
	ErrComponentNotFound = zerr.New("component not found in library")

	// ErrRecordNotFound is returned when a component record id is unknown.
	ErrRecordNotFound = zerr.New("component record not found")

	// ErrEmptySource is returned when ingested source text is empty.
	ErrEmptySource = zerr.New("empty source text")

	// ErrFetchFailed is returned when fetching a remote source fails.
	ErrFetchFailed = zerr.New("failed to fetch remote source")

	// ErrUnsupportedContentType is returned when a remote import responds
	// with a content type that is not script-like.
	ErrUnsupportedContentType = zerr.New("unsupported content type")

	// ErrSourceTooLarge is returned when a remote source exceeds the size cap.
	ErrSourceTooLarge = zerr.New("source exceeds size limit")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)
