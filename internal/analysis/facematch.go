package analysis

import (
	"fmt"

	"github.com/harrison/trialstats/internal/aggregate"
	"github.com/harrison/trialstats/internal/models"
	"github.com/harrison/trialstats/internal/output"
)

// Output purposes for the face-matching task.
const (
	FaceMatchRxnTimePurpose  = "avg_rxntime_per_condition"
	FaceMatchAccuracyPurpose = "avg_accuracy_per_condition"
)

// AnalyzeFaceMatch joins the face-matching responses with their reference
// rows and averages response time and accuracy per condition.
// Main and reference must hold the same number of trials.
func AnalyzeFaceMatch(in *PairedInput, log Logger) (*Result, error) {
	if in.Main.Len() != in.Ref.Len() {
		return nil, &InputShapeMismatchError{
			MainPath: in.MainPath,
			RefPath:  in.RefPath,
			MainRows: in.Main.Len(),
			RefRows:  in.Ref.Len(),
		}
	}
	result := &Result{Subject: output.SubjectID(in.MainPath), Trials: in.Main.Len()}

	if err := renameFirstColumn(in.Main); err != nil {
		return nil, fmt.Errorf("main table: %w", err)
	}
	if err := deriveTrialID(in.Ref, func(t float64) float64 { return t - 1 }); err != nil {
		return nil, err
	}

	merged, err := innerJoin(in.Main, in.Ref, columnMainTrialID)
	if err != nil {
		return nil, err
	}
	log.LogDebug(fmt.Sprintf("joined %d of %d trials", merged.Len(), in.Main.Len()))
	if merged.Len() == 0 {
		result.warn(log, "no trials matched between %s and %s", in.MainPath, in.RefPath)
	}

	condCol, err := resolveColumn(merged, columnCondition)
	if err != nil {
		return nil, err
	}
	outputs := []struct {
		purpose string
		value   string
	}{
		{FaceMatchRxnTimePurpose, columnRxnTime},
		{FaceMatchAccuracyPurpose, columnAccuracy},
	}
	for _, o := range outputs {
		valueCol, err := resolveColumn(merged, o.value)
		if err != nil {
			return nil, err
		}
		groups, err := aggregate.GroupMean(merged, condCol, valueCol)
		if err != nil {
			return nil, err
		}
		table := models.NewTable(columnCondition, o.value)
		for _, g := range groups {
			table.Rows = append(table.Rows, []string{g.Key, models.FormatFloat(g.Value)})
		}
		result.add(output.FileName(result.Subject, o.purpose), table, false)
	}

	return result, nil
}
