package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/trialstats/internal/analysis"
	"github.com/harrison/trialstats/internal/fileutil"
)

// NewBeltCommand creates the belt command
func NewBeltCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "belt",
		Short: "Analyze a BELT (balloon task) session",
		Long: `Analyze a BELT session from its trial table and event log.

Per-trial response times are reconstructed from the keypresses in the event
log and attached to the trial table. Scores, pops and response times are then
aggregated by balloon color, load size, session third and around popped
balloons.

When --log-path is omitted, the .log file with the same name as the CSV file
is used.

Outputs (SUBJECT is the part of the CSV name before the first "_"):
  SUBJECT_rxntime_from_onset_from_previous.csv
  SUBJECT_aggregated_stats.csv
  SUBJECT_post_explosion_behavior.csv

Examples:
  trialstats belt --csv-path data/AA06LC00_BELT_TEST_2021_Jun_09_1320.csv
  trialstats belt --csv-path s.csv --log-path s.log --out-dir results`,
		Args: cobra.NoArgs,
		RunE: runBelt,
	}

	cmd.Flags().String("csv-path", "", "Path to the BELT trial table (.csv)")
	cmd.Flags().String("log-path", "", "Path to the BELT event log (default: sibling .log file)")
	cmd.MarkFlagRequired("csv-path")

	return cmd
}

func runBelt(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv-path")
	logPath, _ := cmd.Flags().GetString("log-path")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.log.LogInfo(fmt.Sprintf("Processing %s...", csvPath))
	if logPath == "" {
		logPath, err = fileutil.FindCompanion(csvPath, ".log")
		if err != nil {
			return s.fail(fmt.Errorf("no --log-path given: %w", err))
		}
		s.log.LogInfo(fmt.Sprintf("Using event log %s", logPath))
	}

	in, err := analysis.LoadBelt(csvPath, logPath)
	if err != nil {
		return s.fail(err)
	}
	result, err := analysis.AnalyzeBelt(in, s.cfg.Belt, s.log)
	if err != nil {
		return s.fail(err)
	}
	return s.finish("belt", result)
}
