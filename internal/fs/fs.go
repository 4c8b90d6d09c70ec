// Package fs provides filesystem adapters that implement trace service interfaces.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OSOpener implements trace.SourceOpener using os.Open.
type OSOpener struct{}

// Open opens the dump file at path for reading. The caller owns the handle
// and must close it on every path out of the scan.
func (OSOpener) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return f, nil
}

// OSCreator implements trace.SinkCreator using os.Create, creating parent
// directories as needed.
type OSCreator struct{}

// Create truncates or creates the output file at path.
func (OSCreator) Create(_ context.Context, path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, nil
}
