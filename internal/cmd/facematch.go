package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/trialstats/internal/analysis"
)

// NewFaceMatchCommand creates the facematch command
func NewFaceMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facematch",
		Short: "Analyze a face-matching session",
		Long: `Analyze a face-matching session against its condition reference table.

The main and reference tables must hold the same number of trials. Response
time and accuracy are averaged per condition.

Outputs:
  SUBJECT_avg_rxntime_per_condition.csv
  SUBJECT_avg_accuracy_per_condition.csv

Example:
  trialstats facematch --csv-main-path AA06LC00_FaceMatching_2021_Jun_09_1112.csv --csv-ref-path facematching_AB.csv`,
		Args: cobra.NoArgs,
		RunE: runFaceMatch,
	}

	addPairedFlags(cmd, "facematching_AB.csv")

	return cmd
}

func runFaceMatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	in, err := loadPaired(cmd, s)
	if err != nil {
		return s.fail(err)
	}
	result, err := analysis.AnalyzeFaceMatch(in, s.log)
	if err != nil {
		return s.fail(err)
	}
	return s.finish("facematch", result)
}
