// Package config handles loading and saving ahkam configuration.
//
// The config file follows the XDG Base Directory specification and lives at
// ~/.config/ahkam/config.yaml (or $XDG_CONFIG_HOME/ahkam/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a value is missing or out of range.
const (
	DefaultScrollTopThreshold = 400
	DefaultLineHeight         = 16
	DefaultCompactWidth       = 96
	DefaultGlamourStyle       = "auto"
)

// UIConfig holds reader preferences.
type UIConfig struct {
	SmoothScroll       bool   `yaml:"smooth_scroll"`
	ScrollTopThreshold int    `yaml:"scroll_top_threshold,omitempty"` // offset units, see LineHeight
	LineHeight         int    `yaml:"line_height,omitempty"`          // offset units per terminal line
	CompactWidth       int    `yaml:"compact_width,omitempty"`        // below this many columns the chapter menu replaces the bar
	GlamourStyle       string `yaml:"glamour_style,omitempty"`        // auto, dark, light, notty
}

// ContentConfig selects the document to read.
type ContentConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Content ContentConfig `yaml:"content,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			SmoothScroll:       true,
			ScrollTopThreshold: DefaultScrollTopThreshold,
			LineHeight:         DefaultLineHeight,
			CompactWidth:       DefaultCompactWidth,
			GlamourStyle:       DefaultGlamourStyle,
		},
	}
}

// ConfigDir returns the XDG config directory for ahkam.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ahkam")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ahkam")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults and expands ~.
func (c *Config) normalize() {
	if c.UI.ScrollTopThreshold < 0 {
		c.UI.ScrollTopThreshold = DefaultScrollTopThreshold
	}
	if c.UI.LineHeight <= 0 {
		c.UI.LineHeight = DefaultLineHeight
	}
	if c.UI.CompactWidth <= 0 {
		c.UI.CompactWidth = DefaultCompactWidth
	}
	switch c.UI.GlamourStyle {
	case "auto", "dark", "light", "notty":
	default:
		c.UI.GlamourStyle = DefaultGlamourStyle
	}
	c.Content.Path = expandHome(c.Content.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
