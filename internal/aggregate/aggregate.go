// Package aggregate provides pure reducers over trial tables: grouped means,
// positional segments and lag-1 analysis around failure trials.
package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/harrison/trialstats/internal/models"
)

// Group is one category's reduced value.
type Group struct {
	Key   string
	Value float64
	Count int // Non-NaN values that contributed
}

type runningMean struct {
	sum   float64
	count int
}

// GroupMean returns the mean of valueCol for every distinct keyCol label.
// Rows with a blank label and NaN values are skipped; a label whose values
// are all NaN reduces to NaN.
// Groups are ordered numerically when every key is numeric, otherwise
// lexicographically.
func GroupMean(table *models.Table, keyCol, valueCol string) ([]Group, error) {
	return groupBy(table, keyCol, valueCol, func(m *runningMean) float64 {
		if m.count == 0 {
			return math.NaN()
		}
		return m.sum / float64(m.count)
	})
}

// GroupSum is GroupMean with a sum reducer; an all-NaN label sums to 0.
func GroupSum(table *models.Table, keyCol, valueCol string) ([]Group, error) {
	return groupBy(table, keyCol, valueCol, func(m *runningMean) float64 {
		return m.sum
	})
}

func groupBy(table *models.Table, keyCol, valueCol string, reduce func(*runningMean) float64) ([]Group, error) {
	keys, err := table.Column(keyCol)
	if err != nil {
		return nil, err
	}
	values, err := table.Floats(valueCol)
	if err != nil {
		return nil, err
	}

	acc := make(map[string]*runningMean)
	for i, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		m, ok := acc[k]
		if !ok {
			m = &runningMean{}
			acc[k] = m
		}
		if math.IsNaN(values[i]) {
			continue
		}
		m.sum += values[i]
		m.count++
	}

	labels := make([]string, 0, len(acc))
	for k := range acc {
		labels = append(labels, k)
	}
	SortKeys(labels)

	groups := make([]Group, len(labels))
	for i, k := range labels {
		groups[i] = Group{Key: k, Value: reduce(acc[k]), Count: acc[k].count}
	}
	return groups, nil
}

// SortKeys sorts labels numerically when all parse as numbers, otherwise
// lexicographically.
func SortKeys(labels []string) {
	numeric := make([]float64, len(labels))
	allNumeric := true
	for i, l := range labels {
		v, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[i] = v
	}

	if !allNumeric {
		sort.Strings(labels)
		return
	}
	sort.Sort(byNumber{labels: labels, values: numeric})
}

type byNumber struct {
	labels []string
	values []float64
}

func (b byNumber) Len() int           { return len(b.labels) }
func (b byNumber) Less(i, j int) bool { return b.values[i] < b.values[j] }
func (b byNumber) Swap(i, j int) {
	b.labels[i], b.labels[j] = b.labels[j], b.labels[i]
	b.values[i], b.values[j] = b.values[j], b.values[i]
}

// Mean returns the mean of the non-NaN values, or NaN when there are none.
func Mean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Sum returns the sum of the non-NaN values.
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// CountWhere returns how many values satisfy pred.
func CountWhere(values []float64, pred func(float64) bool) int {
	n := 0
	for _, v := range values {
		if pred(v) {
			n++
		}
	}
	return n
}

// IsFailure reports whether a trial score marks a failure (e.g. a popped
// balloon).
func IsFailure(score float64) bool {
	return score == 0
}
