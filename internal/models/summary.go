package models

import "time"

// RunSummary describes the outcome of one analysis run
type RunSummary struct {
	Task         string        // Subcommand that ran, e.g. "belt"
	Subject      string        // Subject id derived from the input file name
	Trials       int           // Rows in the main trial table
	SkippedLines int           // Malformed event log lines that were dropped
	Warnings     []string      // Non-fatal conditions reported during the run
	Outputs      []string      // Paths of the files written
	Duration     time.Duration // Wall time of the run
}
