package timeline

import "github.com/harrison/trialstats/internal/models"

// State is the reconstructor's position within the current trial.
type State int

const (
	// StateIdle is before the first trial-start message
	StateIdle State = iota
	// StateCollecting records action timestamps into the open group
	StateCollecting
	// StateEnded ignores actions until the next trial-start message
	StateEnded
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Reconstruction is the outcome of replaying an event stream.
// Groups and Metrics are index-aligned, one entry per trial.
type Reconstruction struct {
	Groups  []ActionGroup
	Metrics []TrialMetrics
}

// Len returns the number of reconstructed trials.
func (r *Reconstruction) Len() int {
	return len(r.Groups)
}

// Reconstructor segments an event stream into one ActionGroup per trial.
type Reconstructor struct {
	markers Markers
	state   State
	current []float64
	groups  []ActionGroup
}

// NewReconstructor creates a Reconstructor in StateIdle.
func NewReconstructor(markers Markers) *Reconstructor {
	return &Reconstructor{
		markers: markers,
		state:   StateIdle,
		groups:  make([]ActionGroup, 0),
	}
}

// State returns the current state.
func (r *Reconstructor) State() State {
	return r.state
}

// Feed advances the state machine by one event.
func (r *Reconstructor) Feed(e models.Event) {
	if r.markers.isTrialStart(e.Message) {
		r.closeGroup()
		r.current = []float64{e.Timestamp}
		r.state = StateCollecting
		return
	}

	if r.state != StateCollecting {
		return
	}

	switch {
	case r.markers.isTrialEnd(e.Message):
		r.state = StateEnded
	case r.markers.isAction(e.Message):
		r.current = append(r.current, e.Timestamp)
	}
}

// Finish finalizes the open group, if any, and returns every group with its
// metrics. The Reconstructor returns to StateIdle and can be reused.
func (r *Reconstructor) Finish() *Reconstruction {
	r.closeGroup()
	groups := r.groups
	r.groups = make([]ActionGroup, 0)
	r.state = StateIdle

	return &Reconstruction{
		Groups:  groups,
		Metrics: computeMetrics(groups),
	}
}

func (r *Reconstructor) closeGroup() {
	if r.state == StateIdle {
		return
	}
	r.groups = append(r.groups, ActionGroup{Timestamps: r.current})
	r.current = nil
}

// Reconstruct replays events in order and returns one group per trial-start
// message. Events before the first trial-start are ignored.
func Reconstruct(events []models.Event, markers Markers) *Reconstruction {
	r := NewReconstructor(markers)
	for _, e := range events {
		r.Feed(e)
	}
	return r.Finish()
}
