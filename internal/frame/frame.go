// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package frame provides a small column-oriented table abstraction for CSV
// exports. A Frame preserves column declaration order, which the schema
// resolver depends on for deterministic fallback selection.
//
// Cells are kept as raw strings; numeric interpretation happens lazily via
// Kind and ParseFloat. A column whose non-empty cells all parse as numbers
// is numeric; a column with no non-empty cells also counts as numeric,
// matching the float64 inference CSV-importing tools apply to empty columns.
package frame

import (
	"strconv"
	"strings"
)

// Kind classifies a column's contents.
type Kind int

const (
	// KindNumeric means every non-empty cell parses as a float.
	KindNumeric Kind = iota
	// KindText means at least one non-empty cell is not a number.
	KindText
)

// String returns the dtype-style name of the kind.
func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column is a named sequence of raw string cells.
type Column struct {
	Name   string
	Values []string
}

// Kind classifies the column. See the package comment for the empty-column
// rule.
func (c Column) Kind() Kind {
	for _, v := range c.Values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := ParseFloat(v); !ok {
			return KindText
		}
	}
	return KindNumeric
}

// Frame is an ordered collection of named columns.
type Frame struct {
	columns []Column
}

// New returns an empty frame.
func New() *Frame {
	return &Frame{}
}

// AddColumn appends a column. Duplicate names are kept; lookups return the
// first occurrence.
func (f *Frame) AddColumn(name string, values []string) {
	f.columns = append(f.columns, Column{Name: name, Values: values})
}

// AddConst appends a column whose every cell is value, sized to the current
// row count.
func (f *Frame) AddConst(name, value string) {
	values := make([]string, f.NumRows())
	for i := range values {
		values[i] = value
	}
	f.AddColumn(name, values)
}

// Columns returns column names in declaration order, including duplicates.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnList returns the underlying columns in declaration order.
func (f *Frame) ColumnList() []Column {
	return f.columns
}

// Col returns the values of the first column with the given name.
func (f *Frame) Col(name string) ([]string, bool) {
	for _, c := range f.columns {
		if c.Name == name {
			return c.Values, true
		}
	}
	return nil, false
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.Col(name)
	return ok
}

// Kind returns the kind of the named column.
func (f *Frame) Kind(name string) (Kind, bool) {
	for _, c := range f.columns {
		if c.Name == name {
			return c.Kind(), true
		}
	}
	return KindText, false
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.columns)
}

// NumRows returns the row count (the length of the longest column).
func (f *Frame) NumRows() int {
	n := 0
	for _, c := range f.columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	return n
}

// Empty reports whether the frame has no rows or no columns.
func (f *Frame) Empty() bool {
	return f == nil || len(f.columns) == 0 || f.NumRows() == 0
}

// Cell returns the cell at (row, col name), or "" when the row is beyond the
// column's length.
func (f *Frame) Cell(name string, row int) string {
	values, ok := f.Col(name)
	if !ok || row < 0 || row >= len(values) {
		return ""
	}
	return values[row]
}

// Rename renames the first column with the given name. Renaming to an
// existing name is allowed; the earlier column keeps winning lookups.
func (f *Frame) Rename(oldName, newName string) bool {
	for i := range f.columns {
		if f.columns[i].Name == oldName {
			f.columns[i].Name = newName
			return true
		}
	}
	return false
}

// SetColumn replaces the values of the first column with the given name.
func (f *Frame) SetColumn(name string, values []string) bool {
	for i := range f.columns {
		if f.columns[i].Name == name {
			f.columns[i].Values = values
			return true
		}
	}
	return false
}

// Filter returns a new frame containing only the rows for which keep is
// true. Column order is preserved.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	rows := f.NumRows()
	out := New()
	for _, c := range f.columns {
		values := make([]string, 0, len(c.Values))
		for i := 0; i < rows; i++ {
			if !keep(i) {
				continue
			}
			if i < len(c.Values) {
				values = append(values, c.Values[i])
			} else {
				values = append(values, "")
			}
		}
		out.AddColumn(c.Name, values)
	}
	return out
}

// ParseFloat parses a cell as a float, trimming surrounding whitespace.
func ParseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
