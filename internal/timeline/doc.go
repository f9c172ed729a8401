// Package timeline rebuilds per-trial participant actions from a task event
// log and derives reaction-time metrics for each trial.
//
// A Reconstructor is a small state machine (Idle, Collecting, Ended) fed one
// event at a time. A trial-start message opens a new ActionGroup seeded with
// the start timestamp; action messages append to it until a trial-end
// message closes it for actions. The next trial-start finalizes the group.
//
// Align attaches the derived columns onto the trial table. It refuses to
// pad or truncate: a group count that differs from the row count is an
// IntegrityMismatchError.
package timeline
