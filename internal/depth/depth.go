// Package depth tracks the nesting level implied by the "entering"/"exiting"
// marker lines the passerine VM writes into its trace dumps.
package depth

import "strings"

// Marker tokens recognized at the start of a trace line. The tokens are part
// of the dump format and are not configurable.
const (
	// EnterMarker opens a scope when it begins a line.
	EnterMarker = "entering"
	// ExitMarker closes a scope when it begins a line.
	ExitMarker = "exiting"
)

// Kind classifies a trace line's effect on the nesting level.
type Kind int

const (
	// KindNeutral leaves the nesting level unchanged.
	KindNeutral Kind = iota
	// KindEnter increases the nesting level by one.
	KindEnter
	// KindExit decreases the nesting level by one.
	KindExit
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEnter:
		return "enter"
	case KindExit:
		return "exit"
	default:
		return "neutral"
	}
}

// Delta returns the depth change the kind applies: +1, -1, or 0.
func (k Kind) Delta() int {
	switch k {
	case KindEnter:
		return 1
	case KindExit:
		return -1
	default:
		return 0
	}
}

// Classify reports the effect of a single trace line. A line matches a
// marker when its leading bytes equal the marker exactly; anything may
// follow, including the line terminator. Lines shorter than a marker never
// match it, and the exit check runs first. The line is otherwise opaque:
// unrecognized content is neutral, never an error.
func Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, ExitMarker):
		return KindExit
	case strings.HasPrefix(line, EnterMarker):
		return KindEnter
	}
	return KindNeutral
}

// Tracker accumulates nesting depth over a sequence of trace lines.
// The zero value is ready to use and starts at depth zero.
type Tracker struct {
	depth int
}

// Depth returns the current nesting level. It goes negative when the trace
// closes scopes it never opened; no bound is enforced in either direction.
func (t *Tracker) Depth() int {
	return t.depth
}

// Apply adjusts the depth by the kind's delta.
func (t *Tracker) Apply(k Kind) {
	t.depth += k.Delta()
}

// Observe classifies line and applies its effect, returning the depth in
// effect before the update. That pre-update depth is the level the line
// itself is displayed at.
func (t *Tracker) Observe(line string) int {
	before := t.depth
	t.Apply(Classify(line))
	return before
}
