// Package trace runs the indent, check, and stats passes over the
// "entering ..."/"exiting ..." dumps the passerine VM emits. Each pass
// streams the dump once, line by line, tracking the nesting depth as
// it goes.
package trace

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vrtbl/tracedent/internal/depth"
)

// SourceOpener opens a trace dump for reading.
type SourceOpener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// SinkCreator creates the file an indented dump is written to.
type SinkCreator interface {
	Create(ctx context.Context, path string) (io.WriteCloser, error)
}

// Locker serializes writers of one output path.
type Locker interface {
	TryLock(ctx context.Context) error
	Unlock() error
}

// LockFactory yields the lock guarding one output path.
type LockFactory func(path string) Locker

// LabelRenderer renders the depth prefix for one line. A non-positive
// depth must yield an empty prefix.
type LabelRenderer interface {
	Prefix(depth int) string
}

// Service wires the passes to their filesystem collaborators.
type Service struct {
	source SourceOpener
	sink   SinkCreator
	locks  LockFactory
}

// NewService returns a Service reading dumps through source and
// writing files through sink. locks guards output paths.
func NewService(source SourceOpener, sink SinkCreator, locks LockFactory) *Service {
	return &Service{source: source, sink: sink, locks: locks}
}

// walk streams the dump at input, classifying every line and folding
// it into the returned summary. fn, when non-nil, sees each raw line
// with its 1-based number and the depth before and after the line's
// marker is applied. Cancellation is observed between lines.
func (s *Service) walk(ctx context.Context, input string, fn func(n int, line string, before, after int) error) (Summary, error) {
	src, err := s.source.Open(ctx, input)
	if err != nil {
		return Summary{}, err
	}
	defer src.Close()

	var (
		sum     Summary
		tracker depth.Tracker
		lines   = newLineReader(src)
	)
	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("read %s: %w", input, err)
		}

		kind := depth.Classify(line)
		before := tracker.Depth()
		tracker.Apply(kind)
		after := tracker.Depth()
		sum.accumulate(kind, after)

		if fn != nil {
			if err := fn(sum.Lines, line, before, after); err != nil {
				return sum, err
			}
		}
	}
	sum.Balanced = sum.FinalDepth == 0
	return sum, nil
}
