// Package analysis turns loaded task files into summary tables.
//
// Each task has an Analyze function that works purely on parsed tables
// (and, for BELT, a parsed event log) and returns a Result naming the
// files to write. Load functions read every input first, so a missing or
// malformed input fails the run before any output exists.
package analysis

import (
	"fmt"
	"strconv"

	"github.com/harrison/trialstats/internal/models"
	"github.com/harrison/trialstats/internal/output"
)

// Logger is the logging surface the analyses need.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
}

// Result is the outcome of one analysis.
type Result struct {
	Subject      string
	Trials       int
	SkippedLines int
	Warnings     []string
	Files        []output.File
}

func (r *Result) warn(log Logger, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	log.LogWarn(msg)
}

func (r *Result) add(name string, table *models.Table, withOrdinal bool) {
	r.Files = append(r.Files, output.File{Name: name, Table: table, WithOrdinal: withOrdinal})
}

// resolveColumn returns name, or name+"_x" when a join suffixed it.
func resolveColumn(table *models.Table, name string) (string, error) {
	if table.HasColumn(name) {
		return name, nil
	}
	if table.HasColumn(name + "_x") {
		return name + "_x", nil
	}
	return "", fmt.Errorf("column %q not found", name)
}

// countCell renders an integer count.
func countCell(n int) string {
	return strconv.Itoa(n)
}
