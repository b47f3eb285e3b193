package config

// File represents the structure of the mosaic.yaml configuration file.
type File struct {
	Version               string     `yaml:"version"`
	SingletonDependencies []string   `yaml:"singletonDependencies"`
	PackageRegistryBase   string     `yaml:"packageRegistryBase"`
	ManifestPath          string     `yaml:"manifestPath"`
	Cache                 CacheDTO   `yaml:"cache"`
	Imports               ImportsDTO `yaml:"imports"`
	Fetch                 FetchDTO   `yaml:"fetch"`
}

// CacheDTO configures the compiled component cache.
type CacheDTO struct {
	MaxEntries int `yaml:"maxEntries"`
}

// ImportsDTO configures dependency rewriting.
type ImportsDTO struct {
	Strict bool `yaml:"strict"`
}

// FetchDTO configures remote source retrieval.
type FetchDTO struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"`
	MaxBytes       int `yaml:"maxBytes"`
}
