package models

// Event is one line of a task event log: "timestamp\tkind\tmessage".
type Event struct {
	Timestamp float64 // Seconds since experiment start
	Kind      string  // Log level column, e.g. "EXP" or "DATA"
	Message   string  // Free-form message, e.g. "New trial" or "Keypress: space"
}
