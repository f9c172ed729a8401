package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/trialstats/internal/models"
)

// Format represents the delimiter convention of a trial table
type Format int

const (
	// FormatUnknown is treated as comma-separated
	FormatUnknown Format = iota
	// FormatCSV represents a comma-separated (.csv) table
	FormatCSV
	// FormatTSV represents a tab-separated (.tsv, .txt) table
	FormatTSV
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// Delimiter returns the field separator for the format
func (f Format) Delimiter() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// DetectFormat detects the table format based on file extension
// Supported extensions:
//   - .csv -> FormatCSV
//   - .tsv, .txt -> FormatTSV
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV
	case ".tsv", ".txt":
		return FormatTSV
	default:
		return FormatUnknown
	}
}

// ErrEmptyTable is returned when a table has no header row
var ErrEmptyTable = errors.New("table has no header row")

// ParseTable reads a delimited table with a header row from r.
// Every data row must have as many fields as the header.
func ParseTable(r io.Reader, format Format) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = format.Delimiter()
	reader.LazyQuotes = true
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := models.NewTable(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", table.Len()+1, err)
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// LoadTable reads the table at path.
//
// The delimiter comes from the file extension. Exported task files are
// sometimes tab-separated despite a .csv name, so when the first parse
// yields a single column the file is parsed again as tab-separated.
func LoadTable(path string) (*models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	format := DetectFormat(path)
	table, err := ParseTable(bytes.NewReader(data), format)
	if format != FormatTSV && (err != nil || len(table.Header) <= 1) {
		if retry, retryErr := ParseTable(bytes.NewReader(data), FormatTSV); retryErr == nil && len(retry.Header) > 1 {
			table, err = retry, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return table, nil
}
