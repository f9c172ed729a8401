package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/harrison/trialstats/internal/aggregate"
	"github.com/harrison/trialstats/internal/models"
	"github.com/harrison/trialstats/internal/output"
	"github.com/harrison/trialstats/internal/parser"
)

// Conflict task columns.
const (
	columnFearful      = "facesAreFearful"
	columnAttended     = "facesAreAttended"
	columnConflictRT   = "SameDiffResponse.rt"
	columnConflictKeys = "SameDiffResponse.keys"
	columnItemsMatch   = "attendedItemsMatch"
)

// BANDA face-matching columns.
const (
	columnFaceCondition = "Condition"
	columnFaceRT        = "key_resp_trial.rt"
	columnFaceCorr      = "key_resp_trial.corr"
)

// Response keys in the conflict task.
const (
	keySame      = 1
	keyDifferent = 2
)

var (
	leadingNumberRe = regexp.MustCompile(`^[0-9]*\.?[0-9]*`)
	responseKeyRe   = regexp.MustCompile(`^[1-2]`)
)

// leadingNumber parses the numeric prefix of a cell such as "0.734" or
// "0.734,1.02". Cells without one are NaN.
func leadingNumber(cell string) float64 {
	m := leadingNumberRe.FindString(cell)
	if m == "" || m == "." {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// responseKey returns the leading 1 or 2 of a keys cell, or 0.
func responseKey(cell string) int {
	m := responseKeyRe.FindString(cell)
	if m == "" {
		return 0
	}
	return int(m[0] - '0')
}

// conflictCondition is one fearful x attended cell of the conflict design.
type conflictCondition struct {
	label    string
	fearful  float64
	attended float64
}

var conflictConditions = []conflictCondition{
	{label: "NOT Fearful & NOT Attended", fearful: 0, attended: 0},
	{label: "NOT Fearful & Attended", fearful: 0, attended: 1},
	{label: "Fearful & NOT Attended", fearful: 1, attended: 0},
	{label: "Fearful & Attended", fearful: 1, attended: 1},
}

// TableInput is a single loaded task table.
type TableInput struct {
	Path  string
	Table *models.Table
}

// LoadTableInput reads the table at path.
func LoadTableInput(path string) (*TableInput, error) {
	table, err := parser.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load task table: %w", err)
	}
	return &TableInput{Path: path, Table: table}, nil
}

// AnalyzeBandaConflict summarizes the conflict task per fearful x attended
// condition: mean response time and the number of right and wrong answers.
// An answer is right when the same/different key agrees with whether the
// attended items match.
func AnalyzeBandaConflict(in *TableInput, log Logger) (*Result, error) {
	t := in.Table
	result := &Result{Subject: output.SubjectID(in.Path), Trials: t.Len()}

	fearful, err := t.Floats(columnFearful)
	if err != nil {
		return nil, err
	}
	attended, err := t.Floats(columnAttended)
	if err != nil {
		return nil, err
	}
	rts, err := t.Column(columnConflictRT)
	if err != nil {
		return nil, err
	}
	keys, err := t.Column(columnConflictKeys)
	if err != nil {
		return nil, err
	}
	match, err := t.Floats(columnItemsMatch)
	if err != nil {
		return nil, err
	}

	out := models.NewTable("Condition", "Avg Response Time", "Num of Right Ans", "Num of Wrong Ans")
	for _, cond := range conflictConditions {
		var rt []float64
		trials, right := 0, 0
		for i := range fearful {
			if fearful[i] != cond.fearful || attended[i] != cond.attended {
				continue
			}
			trials++
			rt = append(rt, leadingNumber(rts[i]))
			switch responseKey(keys[i]) {
			case keySame:
				if match[i] == 1 {
					right++
				}
			case keyDifferent:
				if match[i] == 0 {
					right++
				}
			}
		}
		if trials == 0 {
			result.warn(log, "no trials for condition %q; its response time is left empty", cond.label)
		}
		out.Rows = append(out.Rows, []string{
			cond.label,
			models.FormatFloat(aggregate.Mean(rt)),
			countCell(right),
			countCell(trials - right),
		})
	}

	result.add(output.AnalyzedFileName(in.Path), out, false)
	return result, nil
}

// AnalyzeBandaFaceMatch summarizes the BANDA face-matching task: per
// condition mean response time and correct count, then the mean response
// time of correct and of incorrect responses.
func AnalyzeBandaFaceMatch(in *TableInput, log Logger) (*Result, error) {
	t := in.Table
	result := &Result{Subject: output.SubjectID(in.Path), Trials: t.Len()}

	meanRT, err := aggregate.GroupMean(t, columnFaceCondition, columnFaceRT)
	if err != nil {
		return nil, err
	}
	correct, err := aggregate.GroupSum(t, columnFaceCondition, columnFaceCorr)
	if err != nil {
		return nil, err
	}

	out := models.NewTable("Condition", "Avg Response Time", "Num of Correct Resp")
	for i, g := range meanRT {
		out.Rows = append(out.Rows, []string{
			g.Key,
			models.FormatFloat(g.Value),
			countCell(int(correct[i].Value)),
		})
	}

	rts, err := t.Floats(columnFaceRT)
	if err != nil {
		return nil, err
	}
	corr, err := t.Floats(columnFaceCorr)
	if err != nil {
		return nil, err
	}
	var corrRT, incorrRT []float64
	for i, c := range corr {
		switch c {
		case 1:
			corrRT = append(corrRT, rts[i])
		case 0:
			incorrRT = append(incorrRT, rts[i])
		}
	}
	if len(corrRT) == 0 || len(incorrRT) == 0 {
		result.warn(log, "%d correct and %d incorrect responses; an empty group's response time is left empty",
			len(corrRT), len(incorrRT))
	}
	out.Rows = append(out.Rows,
		[]string{"-", "-", "-"},
		[]string{"Corr Resp", models.FormatFloat(aggregate.Mean(corrRT)), "-"},
		[]string{"Incorr Resp", models.FormatFloat(aggregate.Mean(incorrRT)), "-"},
	)

	result.add(output.AnalyzedFileName(in.Path), out, false)
	return result, nil
}
