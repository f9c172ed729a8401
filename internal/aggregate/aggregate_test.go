package aggregate

import (
	"math"
	"testing"

	"github.com/harrison/trialstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balloonTable() *models.Table {
	table := models.NewTable("imgroot", "balloonscore", "maxpumps", "avgRxnTime")
	table.Rows = [][]string{
		{"pinkballoon", "5", "8", "0.4"},
		{"blueballoon", "0", "32", "0.2"},
		{"blueballoon", "12", "128", ""},
		{"orangeballoon", "3", "8", "0.6"},
		{"blueballoon", "6", "32", "0.3"},
		{"pinkballoon", "0", "8", "0.5"},
	}
	return table
}

func TestGroupMean(t *testing.T) {
	groups, err := GroupMean(balloonTable(), "imgroot", "balloonscore")
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Equal(t, "blueballoon", groups[0].Key)
	assert.InDelta(t, 6.0, groups[0].Value, 1e-9)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, "orangeballoon", groups[1].Key)
	assert.InDelta(t, 3.0, groups[1].Value, 1e-9)
	assert.Equal(t, "pinkballoon", groups[2].Key)
	assert.InDelta(t, 2.5, groups[2].Value, 1e-9)
}

func TestGroupMeanSkipsNaN(t *testing.T) {
	groups, err := GroupMean(balloonTable(), "imgroot", "avgRxnTime")
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.InDelta(t, 0.25, groups[0].Value, 1e-9)
	assert.Equal(t, 2, groups[0].Count)
}

func TestGroupMeanAllNaNGroup(t *testing.T) {
	table := models.NewTable("cond", "rt")
	table.Rows = [][]string{{"a", ""}, {"b", "1.5"}}

	groups, err := GroupMean(table, "cond", "rt")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.True(t, math.IsNaN(groups[0].Value))
	assert.Equal(t, 0, groups[0].Count)
}

func TestGroupMeanNumericKeyOrder(t *testing.T) {
	groups, err := GroupMean(balloonTable(), "maxpumps", "balloonscore")
	require.NoError(t, err)

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"8", "32", "128"}, keys)
}

func TestGroupMeanMissingColumn(t *testing.T) {
	_, err := GroupMean(balloonTable(), "color", "balloonscore")
	assert.Error(t, err)

	_, err = GroupMean(balloonTable(), "imgroot", "score")
	assert.Error(t, err)
}

func TestMeanSumCount(t *testing.T) {
	values := []float64{1, math.NaN(), 3, 0}

	assert.InDelta(t, 4.0/3.0, Mean(values), 1e-9)
	assert.Equal(t, 4.0, Sum(values))
	assert.Equal(t, 1, CountWhere(values, IsFailure))
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(Mean([]float64{math.NaN()})))
}

func TestSortKeys(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "numeric", in: []string{"10", "2", "1.5"}, want: []string{"1.5", "2", "10"}},
		{name: "lexicographic", in: []string{"pos", "neg", "neu"}, want: []string{"neg", "neu", "pos"}},
		{name: "mixed falls back to strings", in: []string{"10", "fix", "2"}, want: []string{"10", "2", "fix"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortKeys(tt.in)
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestGroupSum(t *testing.T) {
	groups, err := GroupSum(balloonTable(), "imgroot", "balloonscore")
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Equal(t, Group{Key: "blueballoon", Value: 18, Count: 3}, groups[0])
	assert.Equal(t, Group{Key: "orangeballoon", Value: 3, Count: 1}, groups[1])
	assert.Equal(t, Group{Key: "pinkballoon", Value: 5, Count: 2}, groups[2])
}

func TestGroupBySkipsBlankKeys(t *testing.T) {
	table := balloonTable()
	table.Rows = append(table.Rows,
		[]string{"", "40", "8", "9"},
		[]string{"  ", "40", "8", "9"},
	)

	means, err := GroupMean(table, "imgroot", "balloonscore")
	require.NoError(t, err)
	sums, err := GroupSum(table, "imgroot", "balloonscore")
	require.NoError(t, err)

	for _, groups := range [][]Group{means, sums} {
		require.Len(t, groups, 3)
		assert.Equal(t, "blueballoon", groups[0].Key)
	}
	assert.Equal(t, Group{Key: "pinkballoon", Value: 5, Count: 2}, sums[2])
}
