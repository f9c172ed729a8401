package timeline

import "math"

// ActionGroup holds the timestamps collected for one trial. The first
// element is the trial-start timestamp; the rest are action timestamps.
type ActionGroup struct {
	Timestamps []float64
}

// First returns the trial-start timestamp, or NaN for an empty group.
func (g ActionGroup) First() float64 {
	if len(g.Timestamps) == 0 {
		return math.NaN()
	}
	return g.Timestamps[0]
}

// OnsetLatency is the time from trial start to the first action.
// NaN when the group has fewer than two timestamps.
func (g ActionGroup) OnsetLatency() float64 {
	if len(g.Timestamps) < 2 {
		return math.NaN()
	}
	return g.Timestamps[1] - g.Timestamps[0]
}

// MeanInterval is the mean of consecutive timestamp differences.
// NaN when the group has fewer than two timestamps.
func (g ActionGroup) MeanInterval() float64 {
	diffs := Intervals(g.Timestamps)
	if len(diffs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, d := range diffs {
		sum += d
	}
	return sum / float64(len(diffs))
}

// Duration is the span from first to last timestamp, 0 for fewer than two.
func (g ActionGroup) Duration() float64 {
	if len(g.Timestamps) < 2 {
		return 0.0
	}
	return g.Timestamps[len(g.Timestamps)-1] - g.Timestamps[0]
}

// Intervals returns the consecutive differences of ts.
// [1, 4, 12, 13] -> [3, 8, 1]
func Intervals(ts []float64) []float64 {
	if len(ts) < 2 {
		return nil
	}
	out := make([]float64, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		out[i-1] = ts[i] - ts[i-1]
	}
	return out
}

// TrialMetrics are the derived timing values for one trial.
type TrialMetrics struct {
	OnsetLatency            float64
	MeanInterActionInterval float64
	PriorTrialLatency       float64
	TrialDuration           float64
}

// computeMetrics derives metrics for every group. Prior-trial latency of
// trial 0 falls back to its own duration.
func computeMetrics(groups []ActionGroup) []TrialMetrics {
	out := make([]TrialMetrics, len(groups))
	for i, g := range groups {
		m := TrialMetrics{
			OnsetLatency:            g.OnsetLatency(),
			MeanInterActionInterval: g.MeanInterval(),
			TrialDuration:           g.Duration(),
		}
		if i == 0 {
			m.PriorTrialLatency = m.TrialDuration
		} else {
			m.PriorTrialLatency = g.First() - groups[i-1].First()
		}
		out[i] = m
	}
	return out
}
