// Package rules loads the YAML rule files that the check command
// verifies trace dumps against.
package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules bounds what a trace dump is allowed to do.
type Rules struct {
	// MaxDepth is the deepest nesting the trace may reach. Zero means
	// unlimited.
	MaxDepth int
	// RequireBalanced demands that every entering line has a matching
	// exiting line by the end of the dump.
	RequireBalanced bool
	// AllowNegative permits exiting lines to outnumber entering lines
	// mid-trace.
	AllowNegative bool
}

// Default returns the rules applied when no rules file is configured.
func Default() Rules {
	return Rules{RequireBalanced: true}
}

// Load reads a rules file. Unlike the config file, a rules path is
// always named explicitly, so a missing file is an error rather than
// a fallback.
func Load(path string) (Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return Rules{}, fmt.Errorf("open rules %s: %w", path, err)
	}
	defer f.Close()

	rules, err := Parse(f)
	if err != nil {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

// Parse decodes rules from YAML. Absent keys keep their defaults and
// unknown keys are rejected.
func Parse(r io.Reader) (Rules, error) {
	raw := struct {
		MaxDepth        *int  `yaml:"max_depth"`
		RequireBalanced *bool `yaml:"require_balanced"`
		AllowNegative   *bool `yaml:"allow_negative"`
	}{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("parse rules: %w", err)
	}

	rules := Default()
	if raw.MaxDepth != nil {
		if *raw.MaxDepth < 0 {
			return Rules{}, fmt.Errorf("max_depth %d: must not be negative", *raw.MaxDepth)
		}
		rules.MaxDepth = *raw.MaxDepth
	}
	if raw.RequireBalanced != nil {
		rules.RequireBalanced = *raw.RequireBalanced
	}
	if raw.AllowNegative != nil {
		rules.AllowNegative = *raw.AllowNegative
	}
	return rules, nil
}
