// Package config loads the optional alanfl.yml run configuration: cache
// bounds, decimal precision, and a git source locator, following the
// teacher's YAML-plus-validation-aggregation idiom for package manifests.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"alanfl/pkg/numeric"
	"alanfl/pkg/runtime"
)

// Git names a remote repository and ref, as written in an alanfl.yml's
// `git:` block. The block is parsed and validated only: the CLI does not
// fetch source from it, and its `-git` flag takes the url and ref from the
// command line instead.
type Git struct {
	URL string `yaml:"url"`
	Ref string `yaml:"ref"`
}

// Config is the parsed contents of an alanfl.yml file. Every field is
// optional; zero values fall back to the interpreter's built-in defaults.
type Config struct {
	Entry            string `yaml:"entry"`
	IntCacheMin      *int   `yaml:"intCacheMin"`
	IntCacheMax      *int   `yaml:"intCacheMax"`
	DecimalPrecision uint   `yaml:"decimalPrecision"`
	Git              *Git   `yaml:"git"`
}

// ValidationError aggregates every problem found while validating a parsed
// Config, rather than failing on the first one — the same shape the
// teacher's manifest loader reports dependency/build-target problems with.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Issues, "; "))
}

// Default returns the configuration used when no alanfl.yml is present.
func Default() *Config {
	return &Config{
		DecimalPrecision: numeric.DecimalPrecision,
	}
}

// Load reads and parses the YAML file at path, validating its contents
// before returning it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var issues []string

	if c.IntCacheMin != nil && c.IntCacheMax != nil && *c.IntCacheMin > *c.IntCacheMax {
		issues = append(issues, fmt.Sprintf("intCacheMin (%d) exceeds intCacheMax (%d)", *c.IntCacheMin, *c.IntCacheMax))
	}
	if c.DecimalPrecision != 0 && c.DecimalPrecision < 64 {
		issues = append(issues, fmt.Sprintf("decimalPrecision (%d) is too small to be useful", c.DecimalPrecision))
	}
	if c.Git != nil {
		if c.Git.URL == "" {
			issues = append(issues, "git.url is required when a git block is present")
		}
		if c.Git.Ref == "" {
			issues = append(issues, "git.ref is required when a git block is present")
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// CacheBounds returns the configured int-cache bounds, falling back to
// runtime's built-in defaults for any field left unset.
func (c *Config) CacheBounds() (min, max int) {
	min, max = runtime.MinCachedInt, runtime.MaxCachedInt
	if c.IntCacheMin != nil {
		min = *c.IntCacheMin
	}
	if c.IntCacheMax != nil {
		max = *c.IntCacheMax
	}
	return min, max
}
