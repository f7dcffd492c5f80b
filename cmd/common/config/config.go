// Package config provides configuration loading for karaoke.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gigurra/karaoke/cmd/common"
)

// Config represents the karaoke configuration file structure.
type Config struct {
	RefreshHz        float64 `json:"refresh_hz,omitempty"`
	CountdownSeconds *int    `json:"countdown_seconds,omitempty"`
	ScrollIncrement  int     `json:"scroll_increment,omitempty"`
	FallbackColumns  int     `json:"fallback_columns,omitempty"`
	FallbackRows     int     `json:"fallback_rows,omitempty"`
	Colors           *Colors `json:"colors,omitempty"`
}

// Colors holds lipgloss color specs ("226", "#ffcc00", ...) for each render class.
type Colors struct {
	Title    string `json:"title,omitempty"`
	Inactive string `json:"inactive,omitempty"`
	Sung     string `json:"sung,omitempty"`
	Current  string `json:"current,omitempty"`
	Upcoming string `json:"upcoming,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	countdown := 5
	return &Config{
		RefreshHz:        120,
		CountdownSeconds: &countdown,
		ScrollIncrement:  10,
		FallbackColumns:  80,
		FallbackRows:     24,
		Colors:           DefaultColors(),
	}
}

// DefaultColors returns the default palette: grey inactive lines, yellow lyrics.
func DefaultColors() *Colors {
	return &Colors{
		Title:    "15",
		Inactive: "245",
		Sung:     "178",
		Current:  "226",
		Upcoming: "136",
		Error:    "196",
	}
}

// RefreshInterval is the sleep between two frames.
func (c *Config) RefreshInterval() time.Duration {
	if c.RefreshHz <= 0 {
		return time.Second / 120
	}
	return time.Duration(float64(time.Second) / c.RefreshHz)
}

// Countdown is the pause before playback starts.
func (c *Config) Countdown() time.Duration {
	if c.CountdownSeconds == nil {
		return 0
	}
	return time.Duration(*c.CountdownSeconds) * time.Second
}

// ConfigPath returns the path to the config file (~/.karaoke/config.json).
func ConfigPath() string {
	return filepath.Join(common.HomeDir(), "config.json")
}

// Load loads the config from ~/.karaoke/config.json.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the config from path, applying defaults for missing fields.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.RefreshHz <= 0 {
		c.RefreshHz = defaults.RefreshHz
	}
	if c.CountdownSeconds == nil || *c.CountdownSeconds < 0 {
		c.CountdownSeconds = defaults.CountdownSeconds
	}
	if c.ScrollIncrement <= 0 {
		c.ScrollIncrement = defaults.ScrollIncrement
	}
	if c.FallbackColumns <= 0 {
		c.FallbackColumns = defaults.FallbackColumns
	}
	if c.FallbackRows <= 0 {
		c.FallbackRows = defaults.FallbackRows
	}
	if c.Colors == nil {
		c.Colors = defaults.Colors
		return
	}
	// Fill individual missing colors
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.Colors.Title, defaults.Colors.Title)
	fill(&c.Colors.Inactive, defaults.Colors.Inactive)
	fill(&c.Colors.Sung, defaults.Colors.Sung)
	fill(&c.Colors.Current, defaults.Colors.Current)
	fill(&c.Colors.Upcoming, defaults.Colors.Upcoming)
	fill(&c.Colors.Error, defaults.Colors.Error)
}

// Save saves the config to ~/.karaoke/config.json.
func Save(config *Config) error {
	return SaveTo(ConfigPath(), config)
}

// SaveTo writes config as indented JSON to path, creating parent directories.
func SaveTo(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
