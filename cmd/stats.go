package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StatsReport holds the numbers stats reports for one dump.
type StatsReport struct {
	Lines      int  `json:"lines"`
	Entering   int  `json:"entering"`
	Exiting    int  `json:"exiting"`
	MaxDepth   int  `json:"max_depth"`
	MinDepth   int  `json:"min_depth"`
	FinalDepth int  `json:"final_depth"`
	Balanced   bool `json:"balanced"`
}

// StatsRunner defines the interface for summarizing a trace dump.
type StatsRunner interface {
	Stats(ctx context.Context, input string) (*StatsReport, error)
}

// formatStatsHuman writes the report as aligned text. Counts are
// grouped for readability, so a million-line dump reads as 1,000,000.
func formatStatsHuman(w io.Writer, r *StatsReport) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Lines:       %d\n", r.Lines)
	p.Fprintf(w, "Entering:    %d\n", r.Entering)
	p.Fprintf(w, "Exiting:     %d\n", r.Exiting)
	p.Fprintf(w, "Max depth:   %d\n", r.MaxDepth)
	p.Fprintf(w, "Min depth:   %d\n", r.MinDepth)
	p.Fprintf(w, "Final depth: %d\n", r.FinalDepth)
	p.Fprintf(w, "Balanced:    %t\n", r.Balanced)
}

// NewStatsCmd creates the stats command with the given runner.
func NewStatsCmd(runner StatsRunner) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "stats [file]",
		Short:        "Summarize the depth trajectory of a trace dump",
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

			report, err := runner.Stats(cmd.Context(), resolveInput(args, cfg))
			if err != nil {
				return err
			}

			if jsonOutput || GetJSON() {
				writeJSON(cmd.OutOrStdout(), report)
			} else {
				formatStatsHuman(cmd.OutOrStdout(), report)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
