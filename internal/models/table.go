package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Table is a flat delimited table: a header row plus string cells.
// Row ordinals are the 0-based positions in Rows and are stable across
// column additions; filtering produces a new Table.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable creates an empty table with a copy of the given header.
func NewTable(header ...string) *Table {
	h := make([]string, len(header))
	copy(h, header)
	return &Table{Header: h}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Floats returns the named column parsed as float64.
// Empty or non-numeric cells read as NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = ParseFloat(c)
	}
	return out, nil
}

// SetColumn appends a new column or replaces an existing one.
// The value count must match the row count.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.Rows))
	}
	if idx, ok := t.ColumnIndex(name); ok {
		for i := range t.Rows {
			t.Rows[i][idx] = values[i]
		}
		return nil
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// SetFloatColumn is SetColumn for numeric values, formatted with FormatFloat.
func (t *Table) SetFloatColumn(name string, values []float64) error {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = FormatFloat(v)
	}
	return t.SetColumn(name, cells)
}

// RenameColumn renames the column at idx.
func (t *Table) RenameColumn(idx int, name string) error {
	if idx < 0 || idx >= len(t.Header) {
		return fmt.Errorf("column index %d out of range [0,%d)", idx, len(t.Header))
	}
	t.Header[idx] = name
	return nil
}

// Filter returns a new table holding the rows for which keep returns true.
// Rows are copied so the result can be modified independently.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := NewTable(t.Header...)
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, cloneRow(row))
		}
	}
	return out
}

// FilterColumn is Filter keyed on a single named column.
func (t *Table) FilterColumn(name string, keep func(cell string) bool) (*Table, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return t.Filter(func(row []string) bool { return keep(row[idx]) }), nil
}

// Slice returns rows [from, to) as a new table.
func (t *Table) Slice(from, to int) *Table {
	out := NewTable(t.Header...)
	for _, row := range t.Rows[from:to] {
		out.Rows = append(out.Rows, cloneRow(row))
	}
	return out
}

// Pick returns the rows at the given ordinals, in the given order.
func (t *Table) Pick(ordinals []int) *Table {
	out := NewTable(t.Header...)
	for _, i := range ordinals {
		out.Rows = append(out.Rows, cloneRow(t.Rows[i]))
	}
	return out
}

func cloneRow(row []string) []string {
	c := make([]string, len(row))
	copy(c, row)
	return c
}

// ParseFloat parses a numeric cell. Empty, "nan" or non-numeric cells are NaN.
func ParseFloat(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FormatFloat renders v with the shortest representation that round-trips.
// NaN is rendered as an empty cell.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFloatList renders values as "[a, b, c]".
func FormatFloatList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
