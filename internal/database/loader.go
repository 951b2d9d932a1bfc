// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/frame"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/metrics"
)

// columnType selects the coercion applied when loading a CSV cell.
type columnType int

const (
	typeText columnType = iota
	typeInt
	typeFloat
	typeTimestamp
)

// loadSpec fixes each table's column order and types. Cells that fail
// coercion load as NULL; a frame lacking a column loads that column as
// all NULL. Extra frame columns are ignored.
var loadSpecs = []struct {
	table   string
	columns []string
	types   []columnType
}{
	{
		table:   "content",
		columns: []string{"video_id", "title", "views", "likes", "avg_view_duration", "source"},
		types:   []columnType{typeText, typeText, typeInt, typeInt, typeFloat, typeText},
	},
	{
		table:   "traffic",
		columns: []string{"traffic_source", "views", "source"},
		types:   []columnType{typeText, typeInt, typeText},
	},
	{
		table:   "geography",
		columns: []string{"country", "views", "source"},
		types:   []columnType{typeText, typeInt, typeText},
	},
	{
		table:   "subscriptions",
		columns: []string{"audience_type", "views", "source"},
		types:   []columnType{typeText, typeInt, typeText},
	},
	{
		table:   "dates",
		columns: []string{"date", "subs_gained", "source"},
		types:   []columnType{typeTimestamp, typeFloat, typeText},
	},
}

// datasetTables maps dataset names to their table spec index.
var datasetTables = map[string]int{
	"content":       0,
	"traffic":       1,
	"geography":     2,
	"subscriptions": 3,
	"dates":         4,
}

// LoadFrames replaces the dataset tables with the given standardized
// frames. Absent or nil frames leave their table empty. Returns rows
// loaded per table.
func (db *DB) LoadFrames(ctx context.Context, frames map[string]*frame.Frame) (map[string]int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.InitSchema(ctx); err != nil {
		return nil, err
	}

	loaded := make(map[string]int, len(loadSpecs))
	for dataset, idx := range datasetTables {
		spec := loadSpecs[idx]
		f := frames[dataset]
		if f == nil || f.Empty() {
			loaded[spec.table] = 0
			continue
		}
		n, err := db.loadTable(ctx, spec.table, spec.columns, spec.types, f)
		if err != nil {
			return nil, fmt.Errorf("loading table %s: %w", spec.table, err)
		}
		loaded[spec.table] = n
		metrics.DBRowsLoaded.WithLabelValues(spec.table).Add(float64(n))
		db.log.Info().Str("table", spec.table).Int("rows", n).Msg("Loaded dataset")
	}
	return loaded, nil
}

func (db *DB) loadTable(ctx context.Context, table string, columns []string, types []columnType, f *frame.Frame) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	rows := f.NumRows()
	for row := 0; row < rows; row++ {
		args := make([]any, len(columns))
		for i, col := range columns {
			if !f.Has(col) {
				args[i] = nil
				continue
			}
			args[i] = coerce(f.Cell(col, row), types[i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("row %d: %w", row, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rows, nil
}

// coerce converts a raw CSV cell to the driver value for its column type.
// Anything unparsable becomes NULL, mirroring a lenient numeric cast.
func coerce(raw string, t columnType) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch t {
	case typeInt:
		if v, ok := frame.ParseFloat(s); ok {
			return int64(v)
		}
		return nil
	case typeFloat:
		if v, ok := frame.ParseFloat(s); ok {
			return v
		}
		return nil
	case typeTimestamp:
		for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
		return nil
	default:
		return s
	}
}
