// Package tail retains the most recent lines of a rendered stream so the
// end of a large dump can be shown without holding the whole dump in memory.
package tail

// Ring is a fixed-capacity buffer over rendered lines. Writing beyond the
// capacity evicts the oldest line.
type Ring struct {
	lines []string
	idx   int
	count int
}

// NewRing creates a Ring holding at most capacity lines. Capacities below
// one are raised to one.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{lines: make([]string, capacity)}
}

// Push appends a line, evicting the oldest when the ring is full.
func (r *Ring) Push(line string) {
	r.lines[r.idx] = line
	r.idx = (r.idx + 1) % len(r.lines)
	if r.count < len(r.lines) {
		r.count++
	}
}

// Len returns the number of retained lines.
func (r *Ring) Len() int {
	return r.count
}

// Lines returns the retained lines oldest first.
func (r *Ring) Lines() []string {
	out := make([]string, r.count)
	if r.count == len(r.lines) {
		for i := range out {
			out[i] = r.lines[(r.idx+i)%len(r.lines)]
		}
		return out
	}
	copy(out, r.lines[:r.count])
	return out
}
