// Package config loads tracedent settings from the user's config file.
// Every setting is a default that flags may override; a missing file is not
// an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/vrtbl/tracedent/internal/label"
)

// Config captures the settings tracedent reads from its config file.
type Config struct {
	Input      string // default dump path for all commands
	LabelWidth int    // label pad width for indent
	Color      string // color mode name for indent
	Rules      string // default rules file for check, empty for built-ins
}

const (
	defaultConfigPath = "~/.config/tracedent/config.toml"

	// DefaultInput is the dump path used when neither a positional argument
	// nor a config value names one. It matches the path the historical
	// viewer had hardcoded.
	DefaultInput = "dump.txt"

	defaultColor = "always"
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. An empty path means the default location.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Input:      DefaultInput,
		LabelWidth: label.DefaultWidth,
		Color:      defaultColor,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Input      string `toml:"input"`
		LabelWidth int    `toml:"label_width"`
		Color      string `toml:"color"`
		Rules      string `toml:"rules"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if input := strings.TrimSpace(raw.Input); input != "" {
		cfg.Input = expandHome(input)
	}

	if raw.LabelWidth < 0 {
		return Config{}, fmt.Errorf("config label_width %d: must be at least 1", raw.LabelWidth)
	}
	if raw.LabelWidth > 0 {
		cfg.LabelWidth = raw.LabelWidth
	}

	if c := strings.TrimSpace(raw.Color); c != "" {
		cfg.Color = c
	}

	if rules := strings.TrimSpace(raw.Rules); rules != "" {
		cfg.Rules = expandHome(rules)
	}

	return cfg, nil
}

// resolvePath picks the config file location, expanding a leading ~.
func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultConfigPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return trimmed, nil
}

// expandHome expands a leading ~ in user-supplied paths. Relative paths
// stay relative: dump paths are resolved against the working directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
