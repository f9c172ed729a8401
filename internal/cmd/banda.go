package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/trialstats/internal/analysis"
)

// NewBandaCommand creates the banda command group
func NewBandaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banda",
		Short: "Analyze BANDA scanner tasks",
		Long: `Analyze BANDA scanner task files.

Each subcommand writes analyzed_<input name>.csv. Input files may be comma or
tab separated regardless of their extension.`,
	}

	cmd.AddCommand(newBandaTaskCommand("conflict", "Analyze a BANDA conflict session",
		`Summarize the conflict task per fearful x attended condition: mean
response time and the number of right and wrong answers.`,
		analysis.AnalyzeBandaConflict))
	cmd.AddCommand(newBandaTaskCommand("facematch", "Analyze a BANDA face-matching session",
		`Summarize the face-matching task: mean response time and number of
correct responses per condition, then mean response time of correct and of
incorrect responses.`,
		analysis.AnalyzeBandaFaceMatch))

	return cmd
}

type bandaAnalyzer func(in *analysis.TableInput, log analysis.Logger) (*analysis.Result, error)

func newBandaTaskCommand(name, short, long string, analyze bandaAnalyzer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long + "\n\nExample:\n  trialstats banda " + name + " --csv-path BANDA001_Scanner_" + name + ".csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath, _ := cmd.Flags().GetString("csv-path")

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			s.log.LogInfo(fmt.Sprintf("Processing %s...", csvPath))
			in, err := analysis.LoadTableInput(csvPath)
			if err != nil {
				return s.fail(err)
			}
			result, err := analyze(in, s.log)
			if err != nil {
				return s.fail(err)
			}
			return s.finish("banda "+name, result)
		},
	}

	cmd.Flags().String("csv-path", "", "Path to the task table")
	cmd.MarkFlagRequired("csv-path")

	return cmd
}
