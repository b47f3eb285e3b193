package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags a pipeline failure so callers can branch on the kind
// instead of unwrapping exception chains.
type ErrorKind uint8

const (
	// KindFormat marks an unrecognizable source dialect.
	KindFormat ErrorKind = iota
	// KindImportResolution marks a malformed or unresolvable specifier.
	KindImportResolution
	// KindTranspile marks invalid inline markup.
	KindTranspile
	// KindLoad marks a network or compilation failure of the materialized unit.
	KindLoad
	// KindRuntime marks an exception thrown during module-body evaluation.
	KindRuntime
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindImportResolution:
		return "import-resolution"
	case KindTranspile:
		return "transpile"
	case KindLoad:
		return "load"
	case KindRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Retryable reports whether the pipeline may retry a failure of this kind.
// Only load failures are retried; retrying a runtime failure would execute
// user code again with identical inputs and an identical outcome.
func (k ErrorKind) Retryable() bool {
	return k == KindLoad
}

// PipelineError is the typed failure surfaced by the pipeline. It carries
// the failing stage and, when known, the byte offset or specifier that
// triggered the failure.
type PipelineError struct {
	Kind      ErrorKind
	Stage     string
	Offset    int // byte offset into the source, -1 when unknown
	Specifier string
	Err       error
}

// NewPipelineError wraps err with a kind and stage; offset defaults to unknown.
func NewPipelineError(kind ErrorKind, stage string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Stage: stage, Offset: -1, Err: err}
}

// Error implements error.
func (e *PipelineError) Error() string {
	msg := fmt.Sprintf("%s error in %s", e.Kind, e.Stage)
	if e.Specifier != "" {
		msg += fmt.Sprintf(" (specifier %q)", e.Specifier)
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// AsPipelineError unwraps err into a *PipelineError if one is in the chain.
func AsPipelineError(err error) (*PipelineError, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// ClassifyError maps an error produced by a pipeline stage onto its kind
// using the domain sentinels. Unrecognized errors classify as load failures
// when fetch-related and runtime failures otherwise.
func ClassifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrImportResolution):
		return KindImportResolution
	case errors.Is(err, ErrTranspile):
		return KindTranspile
	case errors.Is(err, ErrLoad), errors.Is(err, ErrFetchFailed):
		return KindLoad
	default:
		return KindRuntime
	}
}
