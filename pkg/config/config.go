// Package config loads solstat's run configuration: which detectors are
// active and how output is produced.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/0xkitsune/solstat/pkg/detect"
)

// Config holds all configuration options for solstat.
type Config struct {
	// Detectors maps a detector's config name to whether it's enabled.
	// A name absent from the map falls back to enabled, so a config file
	// only needs to list the detectors it wants to turn off.
	Detectors map[string]bool `koanf:"detectors" toml:"detectors"`

	Output  OutputConfig  `koanf:"output" toml:"output"`
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`
}

// OutputConfig controls report and terminal output.
type OutputConfig struct {
	Dir     string `koanf:"dir" toml:"dir"`
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// ExcludeConfig lists additional path patterns the directory scanner skips,
// on top of its built-in `.t.sol` exclusion.
type ExcludeConfig struct {
	Patterns []string `koanf:"patterns" toml:"patterns"`
}

// DefaultConfig returns a config with every detector enabled and report
// output written to the working directory.
func DefaultConfig() *Config {
	return &Config{
		Detectors: map[string]bool{},
		Output: OutputConfig{
			Dir:     ".",
			Color:   true,
			Verbose: false,
		},
		Exclude: ExcludeConfig{},
	}
}

// Load reads a config file, picking a koanf parser from its extension
// (.toml, .yaml/.yml, .json; unrecognized extensions are tried as TOML).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Enabled reports whether the named detector is active: explicitly set in
// the config, or true by default when absent.
func (c *Config) Enabled(name string) bool {
	enabled, ok := c.Detectors[strings.ToLower(name)]
	if !ok {
		return true
	}
	return enabled
}

// ActiveIDs returns every detector ID whose config name is enabled.
func (c *Config) ActiveIDs() []detect.ID {
	var ids []detect.ID
	for _, info := range detect.All() {
		if c.Enabled(info.Name) {
			ids = append(ids, info.ID)
		}
	}
	return ids
}

// Validate checks that every name in the `[detectors]` table is a known
// detector, joining all violations with errors.Join so a run reports every
// bad name at once rather than one at a time.
func (c *Config) Validate() error {
	var errs []error
	for name := range c.Detectors {
		if _, ok := detect.Lookup(name); !ok {
			errs = append(errs, fmt.Errorf("unknown detector %q", name))
		}
	}
	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir must not be empty"))
	}
	return errors.Join(errs...)
}

// FindConfigFile searches the working directory for a default config file.
func FindConfigFile() string {
	for _, name := range []string{"solstat.toml", "solstat.yaml", "solstat.yml", "solstat.json"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
