// Package label renders the fixed-width, color-wrapped depth labels used to
// indent trace lines. The historical dump viewer wrote each label as the
// depth value left-justified in eight columns, cyan on black; those remain
// the defaults so existing tooling sees identical bytes.
package label

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// DefaultWidth is the column width a label is padded to. Values wider than
// the pad width are never truncated.
const DefaultWidth = 8

// Mode selects when ANSI escape sequences are emitted.
type Mode int

const (
	// ModeAlways emits escape sequences unconditionally. This is the
	// default: it matches the dump viewer's historical output byte for byte.
	ModeAlways Mode = iota
	// ModeAuto defers to terminal detection (a non-TTY stdout or the
	// NO_COLOR convention disables color).
	ModeAuto
	// ModeNever suppresses escape sequences.
	ModeNever
)

// String returns the flag-facing name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeNever:
		return "never"
	default:
		return "always"
	}
}

// ParseMode converts a flag or config value into a Mode. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "always":
		return ModeAlways, nil
	case "auto":
		return ModeAuto, nil
	case "never":
		return ModeNever, nil
	}
	return ModeAlways, fmt.Errorf("invalid color mode %q (expected always, auto, or never)", s)
}

// Renderer produces depth labels and line prefixes.
type Renderer struct {
	width int
	color *color.Color
}

// New creates a Renderer padding labels to width columns. Widths below one
// fall back to DefaultWidth.
func New(width int, mode Mode) *Renderer {
	if width < 1 {
		width = DefaultWidth
	}

	c := color.New(color.Reset, color.FgCyan, color.BgBlack)
	switch mode {
	case ModeAlways:
		c.EnableColor()
	case ModeNever:
		c.DisableColor()
	}

	return &Renderer{width: width, color: c}
}

// Width returns the configured pad width.
func (r *Renderer) Width() int {
	return r.width
}

// Label returns the rendered form of a single depth value: the decimal
// depth left-justified in the pad width, wrapped in the color sequence.
func (r *Renderer) Label(depth int) string {
	return r.color.Sprintf("%-*d", r.width, depth)
}

// Prefix returns the label repeated depth times. Non-positive depths yield
// an empty prefix; the repeat count clamps at zero rather than failing.
func (r *Renderer) Prefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(r.Label(depth), depth)
}
