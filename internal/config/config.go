// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/splitnav/internal/nav"
)

// Config holds all splitnav configuration.
type Config struct {
	Layout Layout `yaml:"layout"`
	Log    Log    `yaml:"log"`
	Demo   Demo   `yaml:"demo"`
}

// Layout holds split container settings.
type Layout struct {
	CompactWidth int    `yaml:"compact_width"` // Collapse below this many columns
	Overlay      string `yaml:"overlay"`       // "none" | "supplementary_secondary" | "secondary"
	LargeTitles  bool   `yaml:"large_titles"`
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // TUI log sink; empty disables file logging
}

// Demo holds demo application settings.
type Demo struct {
	Catalog string `yaml:"catalog"` // Path to a catalog file; empty uses the embedded one
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Layout: Layout{
			CompactWidth: nav.DefaultCompactWidth,
			Overlay:      nav.OverlaySupplementaryAndSecondary.String(),
			LargeTitles:  true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Layout.CompactWidth <= 0 {
		return fmt.Errorf("config: layout.compact_width must be positive, got %d", c.Layout.CompactWidth)
	}
	if _, err := nav.ParseOverlaySpan(c.Layout.Overlay); err != nil {
		return fmt.Errorf("config: layout.overlay: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// OverlaySpan returns the parsed layout.overlay value. Call Validate first.
func (c *Config) OverlaySpan() nav.OverlaySpan {
	span, _ := nav.ParseOverlaySpan(c.Layout.Overlay)
	return span
}

// LogLevel returns the parsed log.level value, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: SPLITNAV_COMPACT_WIDTH, SPLITNAV_OVERLAY,
// SPLITNAV_LOG_LEVEL, SPLITNAV_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("SPLITNAV_COMPACT_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid SPLITNAV_COMPACT_WIDTH %q: %w", v, err)
		}
		c.Layout.CompactWidth = n
	}
	if v := os.Getenv("SPLITNAV_OVERLAY"); v != "" {
		c.Layout.Overlay = v
	}
	if v := os.Getenv("SPLITNAV_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SPLITNAV_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Layout *rawLayout `yaml:"layout"`
	Log    *rawLog    `yaml:"log"`
	Demo   *rawDemo   `yaml:"demo"`
}

type rawLayout struct {
	CompactWidth *int    `yaml:"compact_width"`
	Overlay      *string `yaml:"overlay"`
	LargeTitles  *bool   `yaml:"large_titles"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type rawDemo struct {
	Catalog *string `yaml:"catalog"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if l := layer.Layout; l != nil {
		if l.CompactWidth != nil {
			c.Layout.CompactWidth = *l.CompactWidth
		}
		if l.Overlay != nil {
			c.Layout.Overlay = *l.Overlay
		}
		if l.LargeTitles != nil {
			c.Layout.LargeTitles = *l.LargeTitles
		}
	}
	if l := layer.Log; l != nil {
		if l.Level != nil {
			c.Log.Level = *l.Level
		}
		if l.File != nil {
			c.Log.File = *l.File
		}
	}
	if d := layer.Demo; d != nil && d.Catalog != nil {
		c.Demo.Catalog = *d.Catalog
	}
}
