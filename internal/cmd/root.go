package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for trialstats
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trialstats",
		Short: "Summary statistics for behavioral task outputs",
		Long: `Trialstats summarizes the output files of behavioral tasks.

Each subcommand reads one task's trial table (and, for BELT, the event log
recorded alongside it), computes per-condition response times, scores and
accuracy, and writes the results as summary CSV files named after the
subject id.

Configuration is loaded from .trialstats/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: .trialstats/config.yaml)")
	flags.String("out-dir", "", "Directory for output files (default: current directory)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-dir", "", "Directory for run log files (default: no run log)")

	// Add subcommands
	cmd.AddCommand(NewBeltCommand())
	cmd.AddCommand(NewNBackCommand())
	cmd.AddCommand(NewFaceMatchCommand())
	cmd.AddCommand(NewBandaCommand())

	return cmd
}
