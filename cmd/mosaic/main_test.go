package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_RendersComponentFile(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "greeting.jsx")
	source := `export default function Greeting(props) {
  return <p>Hello, {props.name}</p>;
}`
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	t.Chdir(tmpDir)

	os.Args = []string{"mosaic", "render", path, "--prop", "name=Ada"}
	assert.Equal(t, 0, run())
}

func TestRun_MissingSourceFile(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Chdir(t.TempDir())
	os.Args = []string{"mosaic", "compile", "does-not-exist.jsx"}
	assert.Equal(t, 1, run())
}
