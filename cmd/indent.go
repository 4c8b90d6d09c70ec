package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// IndentRequest carries the resolved input and rendering options for
// one indent run.
type IndentRequest struct {
	Input  string
	Output string
	Width  int
	Color  string
	Tail   int
}

// IndentResult summarizes a completed indent run.
type IndentResult struct {
	Lines      int
	MaxDepth   int
	FinalDepth int
}

// IndentRunner defines the interface for running the indent pass.
type IndentRunner interface {
	Indent(ctx context.Context, w io.Writer, req IndentRequest) (*IndentResult, error)
}

// NewIndentCmd creates the indent command with the given runner.
func NewIndentCmd(runner IndentRunner) *cobra.Command {
	var (
		output    string
		width     int
		colorMode string
		tailLines int
	)

	cmd := &cobra.Command{
		Use:          "indent [file]",
		Short:        "Re-emit a trace dump with a depth label in front of every line",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNoService
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			req := IndentRequest{
				Input:  resolveInput(args, cfg),
				Output: output,
				Width:  cfg.LabelWidth,
				Color:  cfg.Color,
				Tail:   tailLines,
			}
			if cmd.Flags().Changed("width") {
				req.Width = width
			}
			if cmd.Flags().Changed("color") {
				req.Color = colorMode
			}
			if req.Width < 1 {
				return fmt.Errorf("width %d: must be at least 1", req.Width)
			}
			if req.Tail < 0 {
				return fmt.Errorf("tail %d: must not be negative", req.Tail)
			}

			result, err := runner.Indent(cmd.Context(), cmd.OutOrStdout(), req)
			if err != nil {
				return err
			}

			if GetVerbose() {
				fmt.Fprintf(cmd.ErrOrStderr(), "indented %d lines (max depth %d, final depth %d)\n",
					result.Lines, result.MaxDepth, result.FinalDepth)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the indented dump to a file instead of stdout")
	cmd.Flags().IntVar(&width, "width", 0, "Pad depth labels to this many columns (default 8)")
	cmd.Flags().StringVar(&colorMode, "color", "", "When to emit ANSI color: always, auto, or never (default always)")
	cmd.Flags().IntVar(&tailLines, "tail", 0, "Emit only the last N rendered lines")

	return cmd
}
