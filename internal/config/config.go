package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "config.yaml"

// Config holds the report settings parsed from config.yaml.
type Config struct {
	Report ReportConfig `yaml:"report"`
}

// ReportConfig controls how the asset report collects and renders fields.
type ReportConfig struct {
	// LookupHost is the host queried for the model description. An empty
	// value disables the lookup (and the "Model Description" line).
	LookupHost string `yaml:"lookup_host"`

	// LookupTimeoutSeconds bounds the description lookup. 0 means no
	// timeout, matching the blocking fire-and-wait behavior the report
	// has always had.
	LookupTimeoutSeconds int `yaml:"lookup_timeout_seconds"`

	// CacheFile is the JSON file caching successful description lookups.
	CacheFile string `yaml:"cache_file"`

	// RegistryStrict makes a failed registry property snapshot abort the
	// query that hit it instead of silently skipping the entry.
	RegistryStrict bool `yaml:"registry_strict"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Report: ReportConfig{
			LookupHost: "support-sp.apple.com",
			CacheFile:  "lookup-cache.json",
		},
	}
}

// Load reads the YAML config at path. A missing file at the default path
// yields Default() so the tool works with zero setup; an unreadable or
// malformed file is a hard failure.
func Load(path string) Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default()
		}
		panic("Failed to read " + path + ": " + err.Error())
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		panic("Failed to unmarshal " + path + ": " + err.Error())
	}
	return cfg
}
