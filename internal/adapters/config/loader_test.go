package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mosaic.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
version: "1"
singletonDependencies:
  - ui-runtime
  - icon-pack
packageRegistryBase: https://registry.example.com
cache:
  maxEntries: 32
imports:
  strict: true
fetch:
  timeoutSeconds: 3
  maxBytes: 1024
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Singletons.Matches("icon-pack/outline") {
		t.Error("singleton sub-path should match")
	}
	if cfg.RegistryBase != "https://registry.example.com" {
		t.Errorf("registry base = %q", cfg.RegistryBase)
	}
	if cfg.CacheMaxEntries != 32 {
		t.Errorf("cache entries = %d", cfg.CacheMaxEntries)
	}
	if !cfg.StrictImports {
		t.Error("strict imports should be on")
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("fetch timeout = %v", cfg.FetchTimeout)
	}
	if cfg.FetchMaxBytes != 1024 {
		t.Errorf("fetch max bytes = %d", cfg.FetchMaxBytes)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, "cache:\n  maxEntries: 7\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := config.Default()
	if cfg.CacheMaxEntries != 7 {
		t.Errorf("cache entries = %d", cfg.CacheMaxEntries)
	}
	if cfg.RegistryBase != def.RegistryBase {
		t.Error("unset fields must keep defaults")
	}
	if cfg.Singletons.Primary() != def.Singletons.Primary() {
		t.Error("unset singleton list must keep the default framework module")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, domain.ErrConfigReadFailed) {
		t.Errorf("expected ErrConfigReadFailed, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "cache: [not: a, mapping\n")

	_, err := config.Load(path)
	if !errors.Is(err, domain.ErrConfigParseFailed) {
		t.Errorf("expected ErrConfigParseFailed, got %v", err)
	}
}

func TestLoad_NegativeValuesRejected(t *testing.T) {
	path := writeConfig(t, "cache:\n  maxEntries: -1\n")

	_, err := config.Load(path)
	if !errors.Is(err, domain.ErrConfigParseFailed) {
		t.Errorf("expected ErrConfigParseFailed, got %v", err)
	}
}

func TestDiscover_EnvOverride(t *testing.T) {
	path := writeConfig(t, "packageRegistryBase: https://env.example.com\n")
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := config.Discover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RegistryBase != "https://env.example.com" {
		t.Errorf("registry base = %q", cfg.RegistryBase)
	}
}

func TestDiscover_FallsBackToDefaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Chdir(t.TempDir())

	cfg, err := config.Discover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheMaxEntries != config.Default().CacheMaxEntries {
		t.Error("expected default configuration")
	}
}
