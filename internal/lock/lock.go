// Package lock provides advisory file locking so two tracedent invocations
// cannot interleave writes into the same output file.
package lock

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrAlreadyLocked is returned when another process already holds the lock
// for the same output path.
var ErrAlreadyLocked = errors.New("another tracedent command is writing this output")

// Flocker abstracts the subset of flock.Flock used for advisory locking.
type Flocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Lock wraps a Flocker to provide fail-fast advisory locking.
type Lock struct {
	flocker Flocker
}

// New creates a Lock from the given Flocker.
func New(f Flocker) *Lock {
	return &Lock{flocker: f}
}

// ForOutput creates a Lock guarding the given output path. The lock file
// lives alongside the output as "<path>.lock" so the output itself is never
// opened just to probe it.
func ForOutput(path string) *Lock {
	return New(flock.New(path + ".lock"))
}

// TryLock attempts a non-blocking acquisition. It returns ErrAlreadyLocked
// when the lock belongs to another process, or wraps any underlying Flocker
// error.
func (l *Lock) TryLock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ok, err := l.flocker.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if !ok {
		return ErrAlreadyLocked
	}
	return nil
}

// Unlock releases the advisory lock.
func (l *Lock) Unlock() error {
	if err := l.flocker.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}
