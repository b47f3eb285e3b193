// Package config provides the configuration loader for mosaic.
package config

import (
	"os"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

// DefaultFilename is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFilename = "mosaic.yaml"

// EnvConfigPath overrides the configuration file location when set.
const EnvConfigPath = "MOSAIC_CONFIG"

const (
	defaultRegistryBase  = "https://esm.sh"
	defaultCacheEntries  = 128
	defaultFetchTimeout  = 10 * time.Second
	defaultFetchMaxBytes = 5 << 20
	defaultFrameworkMod  = "ui-runtime"
	defaultManifestPath  = ".mosaic/manifest.json"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Singletons lists the module specifiers that must resolve to shared
	// host instances instead of being fetched.
	Singletons domain.SingletonSet
	// RegistryBase is the URL prefix for bare package specifiers.
	RegistryBase string
	// CacheMaxEntries bounds the compiled component cache.
	CacheMaxEntries int
	// StrictImports makes malformed import statements fatal.
	StrictImports bool
	// FetchTimeout bounds a single remote source retrieval.
	FetchTimeout time.Duration
	// FetchMaxBytes caps the size of fetched source.
	FetchMaxBytes int64
	// ManifestPath locates the persisted compile manifest.
	ManifestPath string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Singletons:      domain.NewSingletonSet([]string{defaultFrameworkMod}),
		RegistryBase:    defaultRegistryBase,
		CacheMaxEntries: defaultCacheEntries,
		FetchTimeout:    defaultFetchTimeout,
		FetchMaxBytes:   defaultFetchMaxBytes,
		ManifestPath:    defaultManifestPath,
	}
}

// Load reads a configuration file and merges it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	cfg := Default()
	if len(file.SingletonDependencies) > 0 {
		cfg.Singletons = domain.NewSingletonSet(file.SingletonDependencies)
	}
	if file.PackageRegistryBase != "" {
		cfg.RegistryBase = file.PackageRegistryBase
	}
	if file.ManifestPath != "" {
		cfg.ManifestPath = file.ManifestPath
	}
	if file.Cache.MaxEntries != 0 {
		if file.Cache.MaxEntries < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "cache.maxEntries must be positive"), "value", file.Cache.MaxEntries)
		}
		cfg.CacheMaxEntries = file.Cache.MaxEntries
	}
	cfg.StrictImports = file.Imports.Strict
	if file.Fetch.TimeoutSeconds != 0 {
		if file.Fetch.TimeoutSeconds < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "fetch.timeoutSeconds must be positive"), "value", file.Fetch.TimeoutSeconds)
		}
		cfg.FetchTimeout = time.Duration(file.Fetch.TimeoutSeconds) * time.Second
	}
	if file.Fetch.MaxBytes != 0 {
		if file.Fetch.MaxBytes < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "fetch.maxBytes must be positive"), "value", file.Fetch.MaxBytes)
		}
		cfg.FetchMaxBytes = int64(file.Fetch.MaxBytes)
	}
	return cfg, nil
}

// Discover resolves the effective configuration: the MOSAIC_CONFIG path when
// set, otherwise mosaic.yaml in the working directory, otherwise defaults.
func Discover() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFilename); err == nil {
		return Load(DefaultFilename)
	}
	return Default(), nil
}
