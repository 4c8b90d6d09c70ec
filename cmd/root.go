// Package cmd contains the CLI commands for the tracedent application.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vrtbl/tracedent/internal/config"
)

// verbose holds the global --verbose flag state.
var verbose bool

// jsonOut holds the global --json flag state.
var jsonOut bool

// configPath holds the global --config flag state.
var configPath string

// GetVerbose returns the current verbose flag state.
// This is used by commands to decide whether to write diagnostics to stderr.
func GetVerbose() bool {
	return verbose
}

// GetJSON returns the current global --json flag state.
func GetJSON() bool {
	return jsonOut
}

// GetConfigPath returns the --config flag value, or "" for the default
// config location.
func GetConfigPath() string {
	return configPath
}

// NewRootCmd creates a new root command instance.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracedent",
		Short: "Indent and inspect passerine VM trace dumps",
		Long: "tracedent reads the entering/exiting trace dumps the passerine VM emits\n" +
			"and re-emits them with a color-coded depth label in front of every line.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Add persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable diagnostic output on stderr")
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output results as JSON where supported")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/tracedent/config.toml)")

	return cmd
}

// BuildCommandTree assembles the root command with every subcommand
// wired to svc. A nil svc registers the tree anyway; commands then
// fail with ErrNoService, which keeps the tree inspectable in tests.
func BuildCommandTree(svc traceServicer) *cobra.Command {
	var (
		indentRunner IndentRunner
		checkRunner  CheckRunner
		statsRunner  StatsRunner
	)
	if svc != nil {
		indentRunner = &indentAdapter{svc: svc}
		checkRunner = &checkAdapter{svc: svc}
		statsRunner = &statsAdapter{svc: svc}
	}

	root := NewRootCmd()
	root.AddCommand(NewIndentCmd(indentRunner))
	root.AddCommand(NewCheckCmd(checkRunner))
	root.AddCommand(NewStatsCmd(statsRunner))
	root.AddCommand(NewVersionCmd())
	return root
}

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset.
func loadConfig() (config.Config, error) {
	return config.Load(GetConfigPath())
}

// resolveInput picks the dump to read: the positional argument when
// given, else the configured input path.
func resolveInput(args []string, cfg config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Input
}
