package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/harrison/trialstats/internal/models"
)

// eventFields is the number of tab-separated columns in an event log line.
const eventFields = 3

// EventLog is the result of reading an event log.
type EventLog struct {
	// Events holds every well-formed line in file order
	Events []models.Event
	// SkippedLines holds the 1-based line numbers of malformed lines
	SkippedLines []int
}

// Skipped returns the number of malformed lines that were dropped.
func (l *EventLog) Skipped() int {
	return len(l.SkippedLines)
}

// ParseEventLog reads "timestamp\tkind\tmessage" lines from r.
//
// A line that does not split into exactly three fields, or whose first field
// is not a number, is skipped and recorded in SkippedLines. Reading continues
// past malformed lines; only I/O errors are returned. Timestamps are not
// checked for monotonicity.
func ParseEventLog(r io.Reader) (*EventLog, error) {
	log := &EventLog{Events: make([]models.Event, 0)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		event, ok := parseEventLine(scanner.Text())
		if !ok {
			log.SkippedLines = append(log.SkippedLines, lineNum)
			continue
		}
		log.Events = append(log.Events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log at line %d: %w", lineNum+1, err)
	}

	return log, nil
}

// ReadEventLog opens path and parses it with ParseEventLog.
func ReadEventLog(path string) (*EventLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	log, err := ParseEventLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return log, nil
}

func parseEventLine(line string) (models.Event, bool) {
	columns := strings.Split(line, "\t")
	if len(columns) != eventFields {
		return models.Event{}, false
	}

	ts, err := strconv.ParseFloat(strings.TrimSpace(columns[0]), 64)
	if err != nil {
		return models.Event{}, false
	}

	return models.Event{
		Timestamp: ts,
		Kind:      strings.TrimRightFunc(columns[1], unicode.IsSpace),
		Message:   strings.TrimRightFunc(columns[2], unicode.IsSpace),
	}, true
}
