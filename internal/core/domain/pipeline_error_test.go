package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want domain.ErrorKind
	}{
		{domain.ErrFormat, domain.KindFormat},
		{domain.ErrImportResolution, domain.KindImportResolution},
		{domain.ErrTranspile, domain.KindTranspile},
		{domain.ErrLoad, domain.KindLoad},
		{domain.ErrFetchFailed, domain.KindLoad},
		{domain.ErrRuntime, domain.KindRuntime},
		{errors.New("anything else"), domain.KindRuntime},
	}
	for _, tc := range cases {
		if got := domain.ClassifyError(tc.err); got != tc.want {
			t.Errorf("ClassifyError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestErrorKind_Retryable(t *testing.T) {
	for _, kind := range []domain.ErrorKind{
		domain.KindFormat,
		domain.KindImportResolution,
		domain.KindTranspile,
		domain.KindRuntime,
	} {
		if kind.Retryable() {
			t.Errorf("%v should not be retryable", kind)
		}
	}
	if !domain.KindLoad.Retryable() {
		t.Error("load failures should be retryable")
	}
}

func TestPipelineError_Message(t *testing.T) {
	pe := domain.NewPipelineError(domain.KindTranspile, "transpile", domain.ErrTranspile)
	pe.Offset = 42
	pe.Specifier = "left-pad"

	msg := pe.Error()
	for _, want := range []string{"transpile error", "offset 42", `"left-pad"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestPipelineError_Unwrap(t *testing.T) {
	pe := domain.NewPipelineError(domain.KindLoad, "load", domain.ErrLoad)

	if !errors.Is(pe, domain.ErrLoad) {
		t.Error("sentinel lost through wrapping")
	}
	got, ok := domain.AsPipelineError(pe)
	if !ok || got.Kind != domain.KindLoad {
		t.Errorf("AsPipelineError = %+v, %t", got, ok)
	}
	if _, ok := domain.AsPipelineError(errors.New("plain")); ok {
		t.Error("plain error classified as PipelineError")
	}
}
