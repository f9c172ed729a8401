package analysis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/harrison/trialstats/internal/aggregate"
	"github.com/harrison/trialstats/internal/config"
	"github.com/harrison/trialstats/internal/models"
	"github.com/harrison/trialstats/internal/output"
	"github.com/harrison/trialstats/internal/parser"
	"github.com/harrison/trialstats/internal/timeline"
)

// Output purposes for the BELT task.
const (
	BeltTimelinePurpose    = "rxntime_from_onset_from_previous"
	BeltAggregatePurpose   = "aggregated_stats"
	BeltPostFailurePurpose = "post_explosion_behavior"
)

// columnLocalIndex records each post-failure row's ordinal in the trial table.
const columnLocalIndex = "local_index"

// BeltInput is a loaded BELT session.
type BeltInput struct {
	CSVPath string
	Table   *models.Table
	Log     *parser.EventLog
}

// LoadBelt reads the trial table and its event log.
func LoadBelt(csvPath, logPath string) (*BeltInput, error) {
	table, err := parser.LoadTable(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial table: %w", err)
	}
	log, err := parser.ReadEventLog(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load event log: %w", err)
	}
	return &BeltInput{CSVPath: csvPath, Table: table, Log: log}, nil
}

// AnalyzeBelt reconstructs per-trial timing from the event log, aligns it
// onto the trial table and computes the balloon score aggregates.
// The input table gains the derived columns.
func AnalyzeBelt(in *BeltInput, cfg config.BeltConfig, log Logger) (*Result, error) {
	result := &Result{
		Subject:      output.SubjectID(in.CSVPath),
		SkippedLines: in.Log.Skipped(),
	}
	for _, line := range in.Log.SkippedLines {
		log.LogDebug(fmt.Sprintf("skipped malformed event log line %d", line))
	}

	rec := timeline.Reconstruct(in.Log.Events, cfg.Markers)
	log.LogDebug(fmt.Sprintf("reconstructed %d trials from %d events", rec.Len(), len(in.Log.Events)))

	table := in.Table
	if err := timeline.Align(table, rec); err != nil {
		return nil, err
	}
	result.Trials = table.Len()
	if cfg.ExpectedTrials > 0 && table.Len() != cfg.ExpectedTrials {
		result.warn(log, "session has %d trials, expected %d", table.Len(), cfg.ExpectedTrials)
	}

	result.add(output.FileName(result.Subject, BeltTimelinePurpose), table, true)

	stats, err := beltAggregates(table, cfg, result, log)
	if err != nil {
		return nil, err
	}
	result.add(output.FileName(result.Subject, BeltAggregatePurpose), stats, false)

	post, err := postFailureTable(table, cfg)
	if err != nil {
		return nil, err
	}
	result.add(output.FileName(result.Subject, BeltPostFailurePurpose), post, false)

	return result, nil
}

// statsTable accumulates Task,Key,Value rows.
type statsTable struct {
	*models.Table
}

func newStatsTable() statsTable {
	return statsTable{models.NewTable("Task", "Key", "Value")}
}

func (s statsTable) add(task, key string, value float64) {
	s.Rows = append(s.Rows, []string{task, key, models.FormatFloat(value)})
}

func (s statsTable) addGroups(task string, groups []aggregate.Group) {
	for _, g := range groups {
		s.add(task, g.Key, g.Value)
	}
}

func beltAggregates(table *models.Table, cfg config.BeltConfig, result *Result, log Logger) (*models.Table, error) {
	stats := newStatsTable()

	byColor, err := aggregate.GroupMean(table, cfg.CategoryColumn, cfg.ScoreColumn)
	if err != nil {
		return nil, err
	}
	stats.addGroups("balloonscore_per_color", byColor)

	scores, err := table.Floats(cfg.ScoreColumn)
	if err != nil {
		return nil, err
	}
	stats.add("balloonscore_pop", "total_balloonscore", aggregate.Sum(scores))
	stats.add("balloonscore_pop", "total_pops", float64(aggregate.CountWhere(scores, aggregate.IsFailure)))

	segments, err := aggregate.Split(table.Len(), cfg.Segments)
	if err != nil {
		return nil, err
	}
	if segments.Uneven {
		result.warn(log, "%d trials do not divide into %d equal parts; the last part takes the remainder",
			table.Len(), cfg.Segments)
	}
	for _, seg := range segments.Segments {
		log.LogDebug(fmt.Sprintf("segment %s: %d trials", seg.Name, seg.Len()))
		tallies, err := aggregate.ScoresAndFailures(table.Slice(seg.Start, seg.End),
			cfg.CategoryColumn, cfg.ScoreColumn, cfg.CategoryLabels())
		if err != nil {
			return nil, err
		}
		task := "balloonscore_pop_per_color_" + seg.Name
		for _, t := range tallies {
			alias := cfg.AliasFor(t.Category)
			stats.add(task, alias+"_score", t.Score)
			stats.add(task, alias+"_pops", float64(t.Failures))
		}
	}

	after := aggregate.AfterFailureIndices(scores)
	afterValue := math.NaN()
	switch {
	case len(after.Failures) == 0:
		result.warn(log, "no popped balloons; avg_rxntime_after_popped is left empty")
	default:
		if after.DroppedLast {
			result.warn(log, "a balloon popped on the last trial; it has no following trial and is not counted")
		}
		rxn, err := table.Floats(timeline.ColumnMeanInterval)
		if err != nil {
			return nil, err
		}
		following := make([]float64, len(after.Following))
		for i, ord := range after.Following {
			following[i] = rxn[ord]
		}
		afterValue = aggregate.Mean(following)
	}
	stats.add("avg_rxntime_after_popped", "avg_rxntime_after_popped", afterValue)

	rxnByColor, err := aggregate.GroupMean(table, cfg.CategoryColumn, timeline.ColumnMeanInterval)
	if err != nil {
		return nil, err
	}
	stats.addGroups("avg_rxntime_by_color", rxnByColor)

	loadRows, err := table.FilterColumn(cfg.CategoryColumn, func(cell string) bool {
		return cell == cfg.LoadCategory
	})
	if err != nil {
		return nil, err
	}
	byLoad, err := aggregate.GroupMean(loadRows, cfg.LoadColumn, timeline.ColumnMeanInterval)
	if err != nil {
		return nil, err
	}
	stats.addGroups("avg_rxntime_by_loadsize", byLoad)

	return stats.Table, nil
}

// postFailureTable lists every failure trial with the same-category trial
// that follows it. The result keeps all trial columns plus local_index.
func postFailureTable(table *models.Table, cfg config.BeltConfig) (*models.Table, error) {
	pairs, err := aggregate.PostFailurePairs(table, cfg.CategoryColumn, cfg.ScoreColumn)
	if err != nil {
		return nil, err
	}

	picked := make([]int, len(pairs))
	ordinals := make([]string, len(pairs))
	for i, p := range pairs {
		picked[i] = p.Ordinal
		ordinals[i] = strconv.Itoa(p.Ordinal)
	}
	out := table.Pick(picked)
	if err := out.SetColumn(columnLocalIndex, ordinals); err != nil {
		return nil, err
	}
	return out, nil
}
