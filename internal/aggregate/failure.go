package aggregate

import (
	"math"
	"sort"

	"github.com/harrison/trialstats/internal/models"
)

// AfterFailure is the result of pairing each failure with the trial that
// follows it chronologically.
type AfterFailure struct {
	// Failures holds the ordinals of every failure trial
	Failures []int
	// Following holds the ordinal after each failure that has one
	Following []int
	// DroppedLast is set when the final row is a failure; it has no
	// following trial and contributes nothing.
	DroppedLast bool
}

// AfterFailureIndices pairs every failure at ordinal i with i+1.
// A failure at i == len(scores)-1 is dropped and flagged.
func AfterFailureIndices(scores []float64) *AfterFailure {
	out := &AfterFailure{
		Failures:  make([]int, 0),
		Following: make([]int, 0),
	}
	last := len(scores) - 1
	for i, s := range scores {
		if !IsFailure(s) {
			continue
		}
		out.Failures = append(out.Failures, i)
		if i < last {
			out.Following = append(out.Following, i+1)
		} else {
			out.DroppedLast = true
		}
	}
	return out
}

// PostFailureRow is one row of the post-failure report.
type PostFailureRow struct {
	Ordinal   int  // Row ordinal in the source table
	IsFailure bool // False for the trial paired after a failure
}

// PostFailurePairs orders rows by (category, ordinal) and emits every
// failure followed by the next row in that order when that row exists, is
// not itself a failure and shares the failure's category. The final row of
// the ordering has no successor and is emitted alone.
func PostFailurePairs(table *models.Table, categoryCol, scoreCol string) ([]PostFailureRow, error) {
	categories, err := table.Column(categoryCol)
	if err != nil {
		return nil, err
	}
	scores, err := table.Floats(scoreCol)
	if err != nil {
		return nil, err
	}

	order := make([]int, table.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return categories[order[a]] < categories[order[b]]
	})

	rows := make([]PostFailureRow, 0)
	last := len(order) - 1
	for pos, ord := range order {
		if !IsFailure(scores[ord]) {
			continue
		}
		rows = append(rows, PostFailureRow{Ordinal: ord, IsFailure: true})
		if pos >= last {
			continue
		}
		next := order[pos+1]
		if IsFailure(scores[next]) {
			continue
		}
		if categories[next] == categories[ord] {
			rows = append(rows, PostFailureRow{Ordinal: next, IsFailure: false})
		}
	}
	return rows, nil
}

// CategoryTally is the points and failure count for one category.
type CategoryTally struct {
	Category string
	Score    float64
	Failures int
}

// ScoresAndFailures sums scoreCol and counts failures for each requested
// category, in the order given. Categories absent from the table tally zero.
func ScoresAndFailures(table *models.Table, categoryCol, scoreCol string, categories []string) ([]CategoryTally, error) {
	labels, err := table.Column(categoryCol)
	if err != nil {
		return nil, err
	}
	scores, err := table.Floats(scoreCol)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(categories))
	out := make([]CategoryTally, len(categories))
	for i, c := range categories {
		index[c] = i
		out[i] = CategoryTally{Category: c}
	}
	for i, l := range labels {
		k, ok := index[l]
		if !ok {
			continue
		}
		if !math.IsNaN(scores[i]) {
			out[k].Score += scores[i]
		}
		if IsFailure(scores[i]) {
			out[k].Failures++
		}
	}
	return out, nil
}
