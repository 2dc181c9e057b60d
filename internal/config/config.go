// Package config loads the optional CLI configuration file (formdoc.yaml).
// A missing file yields defaults; a malformed one is an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks when no -config flag is given.
const DefaultPath = "formdoc.yaml"

// Config captures the CLI knobs.
type Config struct {
	// Renderer names the default renderer for all conversions.
	Renderer string `yaml:"renderer"`

	// StructuredExtensions lists extensions dispatched to the structured
	// tree parser. Defaults to [".xml"].
	StructuredExtensions []string `yaml:"structured_extensions"`

	// DSLExtensions lists extensions dispatched to the line DSL parser.
	// Defaults to [".java"].
	DSLExtensions []string `yaml:"dsl_extensions"`

	Log   Log   `yaml:"log"`
	Watch Watch `yaml:"watch"`
}

// Log configures the go-logger instance.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Watch configures the directory watch mode.
type Watch struct {
	// Debounce is a duration string ("200ms") bounding how often a burst of
	// file events triggers a reconversion.
	Debounce string `yaml:"debounce"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Renderer:             "markdown",
		StructuredExtensions: []string{".xml"},
		DSLExtensions:        []string{".java"},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Watch: Watch{
			Debounce: "200ms",
		},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// the file does not exist.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// Debounce parses the watch debounce interval, falling back to the default
// when unset or invalid.
func (c Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}
