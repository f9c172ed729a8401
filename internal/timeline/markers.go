package timeline

import "strings"

// Markers configures which event messages drive the state machine.
type Markers struct {
	// TrialStart is the message prefix that opens a trial
	TrialStart string `yaml:"trial_start"`
	// TrialEnd lists substrings that close a trial for further actions
	TrialEnd []string `yaml:"trial_end"`
	// Actions lists message prefixes recorded as participant actions
	Actions []string `yaml:"actions"`
}

// DefaultMarkers returns the BELT task markers.
func DefaultMarkers() Markers {
	return Markers{
		TrialStart: "New trial",
		TrialEnd:   []string{"Popped", "Score"},
		Actions:    []string{"Keypress: space", "Keypress: return"},
	}
}

func (m Markers) isTrialStart(msg string) bool {
	return strings.HasPrefix(msg, m.TrialStart)
}

func (m Markers) isTrialEnd(msg string) bool {
	for _, kw := range m.TrialEnd {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func (m Markers) isAction(msg string) bool {
	for _, prefix := range m.Actions {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
