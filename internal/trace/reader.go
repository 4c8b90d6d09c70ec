package trace

import (
	"bufio"
	"io"
)

// lineReader yields lines including their trailing newline byte, so a
// dump can be re-emitted without touching its terminators. A carriage
// return before the newline is ordinary content and passes through.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// Next returns the next line. The final line comes back without a
// newline when the input did not end with one. After the last line,
// Next returns io.EOF.
func (lr *lineReader) Next() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
