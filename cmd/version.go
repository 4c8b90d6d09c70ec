package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrtbl/tracedent/internal/buildinfo"
)

// VersionInfo holds the build metadata the version command reports.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "version",
		Short:        "Print version information",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput || GetJSON() {
				writeJSON(cmd.OutOrStdout(), VersionInfo{
					Version: buildinfo.Version,
					Commit:  buildinfo.Commit,
					Date:    buildinfo.Date,
				})
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
