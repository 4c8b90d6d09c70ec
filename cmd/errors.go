package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ErrNoService is returned when a command runs without a wired trace
// service, which only happens in a misassembled command tree.
var ErrNoService = errors.New("trace service is not available")

// FormatError formats an error with the "tracedent: " prefix and trailing newline.
func FormatError(err error) string {
	return fmt.Sprintf("tracedent: %s\n", err.Error())
}

// RunCLI executes root with the given args, writing output to stdout
// and errors to stderr. It returns the process exit code.
func RunCLI(ctx context.Context, root *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(stderr, FormatError(err))
		return ExitCodeFromError(err)
	}
	return 0
}
