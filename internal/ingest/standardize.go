// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/frame"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/metrics"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/schema"
)

// canonicalNames maps resolution keys to the column name every downstream
// stage expects after standardization.
var canonicalNames = map[string]string{
	"content.views":          "views",
	"content.title":          "title",
	"content.video_id":       "video_id",
	"content.likes":          "likes",
	"content.avg_dur":        "avg_view_duration",
	"traffic.source":         "traffic_source",
	"traffic.views":          "views",
	"geo.country":            "country",
	"geo.views":              "views",
	"dates.date":             "date",
	"dates.subs":             "subs_gained",
	"subscriptions.audience": "audience_type",
	"subscriptions.views":    "views",
}

// dateLayouts are the accepted spellings of the dates export's date
// column, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"01/02/2006",
	"02.01.2006",
}

// Standardize resolves the column schema of the loaded datasets and
// rewrites each frame in place to the canonical column names and types.
// It returns the resolution used and the schema warnings encountered.
// Frames map entries may be nil or absent; both count as a missing
// dataset.
func Standardize(frames map[string]*frame.Frame) (schema.Resolution, []string) {
	log := logging.Component("standardize")

	res, warnings := schema.Validate(frames)
	for _, w := range warnings {
		log.Warn().Str("warning", w).Msg("Schema resolution")
	}
	metrics.SchemaWarnings.Add(float64(len(warnings)))

	// Renames walk the descriptor tables in order, not the resolution map,
	// so a column that satisfies two fields always keeps the first field's
	// canonical name.
	for _, table := range schema.Tables {
		f := frames[table.Name]
		if f == nil {
			continue
		}
		for _, field := range table.Fields {
			column := res[field.Key]
			if column == "" {
				continue
			}
			canonical := canonicalNames[field.Key]
			if column != canonical && f.Has(column) && !f.Has(canonical) {
				f.Rename(column, canonical)
			}
		}
	}

	if dates := frames["dates"]; dates != nil {
		standardizeDates(dates, log)
	}
	return res, warnings
}

// standardizeDates forces the date column to ISO dates, drops rows whose
// date cannot be parsed (Studio appends a totals row) and coerces the
// subscribers column to numbers with zero as the default.
func standardizeDates(f *frame.Frame, log zerolog.Logger) {
	dates, ok := f.Col("date")
	if !ok {
		return
	}

	parsed := make([]string, len(dates))
	bad := make(map[int]bool)
	for i, raw := range dates {
		if t, ok := parseDate(raw); ok {
			parsed[i] = t.Format("2006-01-02")
		} else {
			bad[i] = true
		}
	}
	if len(bad) > 0 {
		log.Info().Int("rows", len(bad)).Msg("Dropping rows with unparseable dates")
		metrics.RowsDropped.WithLabelValues("dates", "bad_date").Add(float64(len(bad)))
	}
	f.SetColumn("date", parsed)

	if subs, ok := f.Col("subs_gained"); ok {
		coerced := make([]string, len(subs))
		for i, raw := range subs {
			if v, ok := frame.ParseFloat(raw); ok {
				coerced[i] = formatFloat(v)
			} else {
				coerced[i] = "0"
			}
		}
		f.SetColumn("subs_gained", coerced)
	}

	if len(bad) > 0 {
		clean := f.Filter(func(row int) bool { return !bad[row] })
		*f = *clean
	}
}

// parseDate tries each accepted layout in order.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteProcessed persists the standardized frames back to the processed
// CSVs so that reruns and external tools see canonical columns.
func WriteProcessed(paths config.PathsConfig, frames map[string]*frame.Frame) error {
	for _, target := range Targets {
		f := frames[target.Dataset]
		if f == nil {
			continue
		}
		if err := f.WriteFile(paths.ProcessedFile(target.OutFile)); err != nil {
			return err
		}
	}
	return nil
}
