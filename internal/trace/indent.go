package trace

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/vrtbl/tracedent/internal/tail"
)

// IndentOptions configures one indent pass.
type IndentOptions struct {
	// Input is the dump path handed to the source opener.
	Input string
	// Output, when non-empty, routes the rendered dump to a locked
	// file instead of the writer passed to Indent.
	Output string
	// Tail, when positive, emits only the last Tail rendered lines.
	// Depth is still tracked over the whole dump.
	Tail int
}

// Indent re-emits the dump at opts.Input onto w, prefixing every line
// with the depth label repeated once per level of nesting. The prefix
// reflects the depth before the line's own marker takes effect, so an
// entering line sits at the level it was entered from.
func (s *Service) Indent(ctx context.Context, w io.Writer, render LabelRenderer, opts IndentOptions) (sum Summary, err error) {
	out := w
	if opts.Output != "" {
		lk := s.locks(opts.Output)
		if err := lk.TryLock(ctx); err != nil {
			return Summary{}, err
		}
		defer func() {
			if uerr := lk.Unlock(); uerr != nil && err == nil {
				err = uerr
			}
		}()

		snk, cerr := s.sink.Create(ctx, opts.Output)
		if cerr != nil {
			return Summary{}, cerr
		}
		defer func() {
			if cerr := snk.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output %s: %w", opts.Output, cerr)
			}
		}()
		out = snk
	}

	bw := bufio.NewWriter(out)
	var ring *tail.Ring
	if opts.Tail > 0 {
		ring = tail.NewRing(opts.Tail)
	}

	sum, err = s.walk(ctx, opts.Input, func(_ int, line string, before, _ int) error {
		rendered := render.Prefix(before) + line
		if ring != nil {
			ring.Push(rendered)
			return nil
		}
		if _, werr := io.WriteString(bw, rendered); werr != nil {
			return fmt.Errorf("write output: %w", werr)
		}
		return nil
	})
	if err != nil {
		return sum, err
	}

	if ring != nil {
		for _, rendered := range ring.Lines() {
			if _, werr := io.WriteString(bw, rendered); werr != nil {
				return sum, fmt.Errorf("write output: %w", werr)
			}
		}
	}
	if ferr := bw.Flush(); ferr != nil {
		return sum, fmt.Errorf("write output: %w", ferr)
	}
	return sum, nil
}
