package timeline

import (
	"fmt"

	"github.com/harrison/trialstats/internal/models"
)

// Column names written onto the trial table by Align.
const (
	ColumnTimestamps        = "timestamps"
	ColumnOnsetLatency      = "avgOnsetRxnTime"
	ColumnPriorTrialLatency = "avgPrevRxnTime"
	ColumnMeanInterval      = "avgRxnTime"
	ColumnTrialDuration     = "trialDuration"
)

// IntegrityMismatchError reports that the event log produced a different
// number of trials than the trial table holds.
type IntegrityMismatchError struct {
	Groups int // Trials reconstructed from the event log
	Rows   int // Rows in the trial table
}

// Error implements the error interface for IntegrityMismatchError.
func (e *IntegrityMismatchError) Error() string {
	return fmt.Sprintf("integrity mismatch: event log has %d trials, trial table has %d rows", e.Groups, e.Rows)
}

// Align attaches the audit timestamps and the four derived metric columns
// onto table, 1:1 by row ordinal. The table is left untouched on error.
func Align(table *models.Table, rec *Reconstruction) error {
	if rec.Len() != table.Len() {
		return &IntegrityMismatchError{Groups: rec.Len(), Rows: table.Len()}
	}

	n := rec.Len()
	timestamps := make([]string, n)
	onset := make([]float64, n)
	prior := make([]float64, n)
	mean := make([]float64, n)
	duration := make([]float64, n)
	for i, g := range rec.Groups {
		m := rec.Metrics[i]
		timestamps[i] = models.FormatFloatList(g.Timestamps)
		onset[i] = m.OnsetLatency
		prior[i] = m.PriorTrialLatency
		mean[i] = m.MeanInterActionInterval
		duration[i] = m.TrialDuration
	}

	if err := table.SetColumn(ColumnTimestamps, timestamps); err != nil {
		return err
	}
	columns := []struct {
		name   string
		values []float64
	}{
		{ColumnOnsetLatency, onset},
		{ColumnPriorTrialLatency, prior},
		{ColumnMeanInterval, mean},
		{ColumnTrialDuration, duration},
	}
	for _, c := range columns {
		if err := table.SetFloatColumn(c.name, c.values); err != nil {
			return err
		}
	}

	return nil
}
