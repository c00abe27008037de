// Package config loads tool configuration from a TOML file with environment
// variable overrides.
//
// Configuration covers the tool's surfaces only (output location, log level,
// highlight theme, watch debounce). The math matching behavior itself is
// deliberately not configurable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pelletier/go-toml/v2"
)

// envPrefix is the prefix for environment overrides (MATHLENS_LOG_LEVEL,
// MATHLENS_THEME, MATHLENS_OUTPUT, MATHLENS_DEBOUNCE_MS).
const envPrefix = "MATHLENS_"

// Config holds the tool settings.
type Config struct {
	// Output is the HTML output path. Empty writes to stdout.
	Output string `toml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Theme is the chroma highlight style for fenced code blocks.
	Theme string `toml:"theme"`

	// DebounceMS is the delay before re-rendering after a watched file
	// changes, in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:   "info",
		Theme:      "github",
		DebounceMS: 150,
	}
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DefaultPath returns the conventional config file location, or empty when
// the user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mathlens", "config.toml")
}

// Load builds the configuration: defaults, then the TOML file at path, then
// environment overrides. An empty path falls back to DefaultPath; a missing
// file at the fallback location is not an error, but a missing file at an
// explicitly given path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
			}
		case os.IsNotExist(err) && !explicit:
			// No config file; defaults apply.
		default:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays MATHLENS_* environment variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(envPrefix + "OUTPUT"); ok {
		cfg.Output = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envPrefix + "THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := os.LookupEnv(envPrefix + "DEBOUNCE_MS"); ok {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.DebounceMS = ms
		}
	}
}

// Validate checks field values, normalizing an unknown theme to the default
// rather than failing.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMS)
	}
	if _, ok := styles.Registry[c.Theme]; !ok {
		c.Theme = Default().Theme
	}
	return nil
}
