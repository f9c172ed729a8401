package aggregate

import (
	"testing"

	"github.com/harrison/trialstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFailureIndices(t *testing.T) {
	tests := []struct {
		name          string
		scores        []float64
		wantFailures  []int
		wantFollowing []int
		wantDropped   bool
	}{
		{
			name:          "interior failures",
			scores:        []float64{3, 0, 4, 0, 5},
			wantFailures:  []int{1, 3},
			wantFollowing: []int{2, 4},
		},
		{
			name:          "failure on last row is excluded",
			scores:        []float64{0, 2, 0},
			wantFailures:  []int{0, 2},
			wantFollowing: []int{1},
			wantDropped:   true,
		},
		{
			name:          "no failures",
			scores:        []float64{1, 2},
			wantFailures:  []int{},
			wantFollowing: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AfterFailureIndices(tt.scores)
			assert.Equal(t, tt.wantFailures, got.Failures)
			assert.Equal(t, tt.wantFollowing, got.Following)
			assert.Equal(t, tt.wantDropped, got.DroppedLast)
		})
	}
}

func TestPostFailurePairs(t *testing.T) {
	// Sorted by category: blue(1,2,4) orange(3) pink(0,5)
	rows, err := PostFailurePairs(balloonTable(), "imgroot", "balloonscore")
	require.NoError(t, err)

	assert.Equal(t, []PostFailureRow{
		{Ordinal: 1, IsFailure: true},
		{Ordinal: 2, IsFailure: false},
		{Ordinal: 5, IsFailure: true},
	}, rows)
}

func TestPostFailurePairsSkipsConsecutiveFailuresAndCategoryChange(t *testing.T) {
	table := models.NewTable("imgroot", "balloonscore")
	table.Rows = [][]string{
		{"blue", "0"},
		{"blue", "0"},
		{"blue", "4"},
		{"pink", "0"},
		{"pink", "0"},
		{"red", "7"},
	}

	rows, err := PostFailurePairs(table, "imgroot", "balloonscore")
	require.NoError(t, err)

	assert.Equal(t, []PostFailureRow{
		{Ordinal: 0, IsFailure: true},
		{Ordinal: 1, IsFailure: true},
		{Ordinal: 2, IsFailure: false},
		{Ordinal: 3, IsFailure: true},
		{Ordinal: 4, IsFailure: true},
	}, rows)
}

func TestPostFailurePairsLastRowFailure(t *testing.T) {
	table := models.NewTable("imgroot", "balloonscore")
	table.Rows = [][]string{{"blue", "3"}, {"blue", "0"}}

	rows, err := PostFailurePairs(table, "imgroot", "balloonscore")
	require.NoError(t, err)
	assert.Equal(t, []PostFailureRow{{Ordinal: 1, IsFailure: true}}, rows)
}

func TestScoresAndFailures(t *testing.T) {
	tallies, err := ScoresAndFailures(balloonTable(), "imgroot", "balloonscore",
		[]string{"blueballoon", "pinkballoon", "orangeballoon", "greenballoon"})
	require.NoError(t, err)

	assert.Equal(t, []CategoryTally{
		{Category: "blueballoon", Score: 18, Failures: 1},
		{Category: "pinkballoon", Score: 5, Failures: 1},
		{Category: "orangeballoon", Score: 3, Failures: 0},
		{Category: "greenballoon", Score: 0, Failures: 0},
	}, tallies)
}
