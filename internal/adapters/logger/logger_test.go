package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Info("some message")

	out := buf.String()
	if !strings.Contains(out, "some message") {
		t.Errorf("expected output to contain the message, got: %s", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("expected INFO level, got: %s", out)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Warn("some warning")

	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected WARN level, got: %s", buf.String())
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(zerr.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "boom") {
		t.Errorf("expected output to contain the error, got: %s", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Errorf("expected ERROR level, got: %s", out)
	}
}

func TestLogger_ErrorMetadataSurfaces(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(zerr.With(zerr.New("compile failed"), "module", "component:abc"))

	out := buf.String()
	if !strings.Contains(out, "component:abc") {
		t.Errorf("expected metadata value in output, got: %s", out)
	}
}
