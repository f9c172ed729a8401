package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/trialstats/internal/analysis"
)

// NewNBackCommand creates the nback command
func NewNBackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nback",
		Short: "Analyze an N-back session",
		Long: `Analyze an N-back session against its stimulus reference table.

Fixation rows are dropped from the reference table, which is then joined with
the session's responses. Instruction screens, incorrect responses and trials
without a response time are excluded before averaging.

Outputs:
  SUBJECT_avg_rxntime_per_loadsize.csv
  SUBJECT_avg_rxntime_per_stimulus.csv

Example:
  trialstats nback --csv-main-path AA06LC00_Nback_2021_Jun_09_1034.csv --csv-ref-path nback_AB.csv`,
		Args: cobra.NoArgs,
		RunE: runNBack,
	}

	addPairedFlags(cmd, "nback_AB.csv")

	return cmd
}

// addPairedFlags adds the main/reference table flags shared by the paired tasks
func addPairedFlags(cmd *cobra.Command, refExample string) {
	cmd.Flags().String("csv-main-path", "", "Path to the session's main table (.csv)")
	cmd.Flags().String("csv-ref-path", "", fmt.Sprintf("Path to the reference table (e.g. %s)", refExample))
	cmd.MarkFlagRequired("csv-main-path")
	cmd.MarkFlagRequired("csv-ref-path")
}

// loadPaired reads both tables named by the paired flags
func loadPaired(cmd *cobra.Command, s *session) (*analysis.PairedInput, error) {
	mainPath, _ := cmd.Flags().GetString("csv-main-path")
	refPath, _ := cmd.Flags().GetString("csv-ref-path")

	s.log.LogInfo(fmt.Sprintf("Processing %s...", mainPath))
	return analysis.LoadPaired(mainPath, refPath)
}

func runNBack(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	in, err := loadPaired(cmd, s)
	if err != nil {
		return s.fail(err)
	}
	result, err := analysis.AnalyzeNBack(in, s.cfg.NBack, s.log)
	if err != nil {
		return s.fail(err)
	}
	return s.finish("nback", result)
}
