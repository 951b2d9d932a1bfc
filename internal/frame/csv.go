// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCSV reads a headered CSV into a frame. Short rows are padded with
// empty cells; an input with only a header row yields an empty frame with
// named columns.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports occasionally carry ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		for i := range header {
			if i < len(record) {
				columns[i] = append(columns[i], record[i])
			} else {
				columns[i] = append(columns[i], "")
			}
		}
	}

	f := New()
	for i, name := range header {
		f.AddColumn(name, columns[i])
	}
	return f, nil
}

// ReadFile reads a CSV file into a frame.
func ReadFile(path string) (*Frame, error) {
	file, err := os.Open(path) //nolint:gosec // path comes from config/discovery
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	f, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// WriteCSV writes the frame as a headered CSV.
func (f *Frame) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(f.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	rows := f.NumRows()
	record := make([]string, len(f.columns))
	for i := 0; i < rows; i++ {
		for j, c := range f.columns {
			if i < len(c.Values) {
				record[j] = c.Values[i]
			} else {
				record[j] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the frame to a CSV file, creating parent directories.
func (f *Frame) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path) //nolint:gosec // path comes from config
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := f.WriteCSV(file); err != nil {
		return err
	}
	return file.Close()
}
