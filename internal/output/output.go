// Package output names and writes summary tables.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harrison/trialstats/internal/filelock"
	"github.com/harrison/trialstats/internal/models"
)

// lockName is the advisory lock held on the output directory during a run.
const lockName = ".trialstats.lock"

// lockTimeout bounds how long a run waits for another run on the same
// output directory.
const lockTimeout = 30 * time.Second

// SubjectID returns the leading "_"-separated token of the input file name.
// "data/AA06LC00_BELT_TEST_2021_Jun_09_1320.csv" -> "AA06LC00"
func SubjectID(path string) string {
	base := filepath.Base(path)
	return strings.SplitN(base, "_", 2)[0]
}

// FileName returns "{subject}_{purpose}.csv".
func FileName(subject, purpose string) string {
	return subject + "_" + purpose + ".csv"
}

// AnalyzedFileName returns "analyzed_{input stem}.csv".
func AnalyzedFileName(inputPath string) string {
	base := filepath.Base(inputPath)
	return "analyzed_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}

// EncodeCSV renders table as comma-separated text with a header row.
// With withOrdinal set, a leading unnamed column holds each row's 0-based
// ordinal.
func EncodeCSV(table *models.Table, withOrdinal bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := table.Header
	if withOrdinal {
		header = append([]string{""}, table.Header...)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}

	for i, row := range table.Rows {
		record := row
		if withOrdinal {
			record = append([]string{strconv.Itoa(i)}, row...)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to encode row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// File is one output ready to be written.
type File struct {
	Name        string        // File name relative to the output directory
	Table       *models.Table // Content
	WithOrdinal bool          // Prepend the unnamed ordinal column
}

// Writer writes a run's outputs into one directory while holding the
// directory's lock, so two runs never interleave their files.
type Writer struct {
	dir string
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteAll encodes every file, then writes them atomically under the
// directory lock. Nothing is written if any file fails to encode.
// Returns the written paths in input order.
func (w *Writer) WriteAll(files []File) ([]string, error) {
	encoded := make([][]byte, len(files))
	for i, f := range files {
		data, err := EncodeCSV(f.Table, f.WithOrdinal)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		encoded[i] = data
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	lock := filelock.NewFileLock(filepath.Join(w.dir, lockName))
	if err := lock.LockWithTimeout(lockTimeout); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	paths := make([]string, 0, len(files))
	for i, f := range files {
		path := filepath.Join(w.dir, f.Name)
		if err := filelock.AtomicWrite(path, encoded[i]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
