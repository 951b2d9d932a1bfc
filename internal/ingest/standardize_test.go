// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package ingest

import (
	"reflect"
	"testing"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/frame"
)

func TestStandardizeRenamesToCanonical(t *testing.T) {
	content := frame.New()
	content.AddColumn("Content", []string{"abc", "def"})
	content.AddColumn("Video title", []string{"Launch", "Deep dive"})
	content.AddColumn("View Count", []string{"100", "50"})
	content.AddColumn("Likes", []string{"10", "5"})
	content.AddColumn("Average view duration", []string{"120.5", "90"})

	traffic := frame.New()
	traffic.AddColumn("Traffic source", []string{"Search"})
	traffic.AddColumn("Views", []string{"10"})

	frames := map[string]*frame.Frame{"content": content, "traffic": traffic}
	res, warnings := Standardize(frames)

	// Three datasets genuinely absent.
	if len(warnings) != 3 {
		t.Errorf("warnings = %v", warnings)
	}
	if res["content.views"] != "View Count" {
		t.Errorf("content.views resolved to %q", res["content.views"])
	}

	want := []string{"video_id", "title", "views", "likes", "avg_view_duration"}
	if got := content.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("content columns = %v, want %v", got, want)
	}
	if got := traffic.Columns(); !reflect.DeepEqual(got, []string{"traffic_source", "views"}) {
		t.Errorf("traffic columns = %v", got)
	}
}

func TestStandardizeDates(t *testing.T) {
	dates := frame.New()
	dates.AddColumn("Date", []string{"2026-05-01", "Total", "2026-05-02"})
	dates.AddColumn("Subscribers", []string{"3", "9", "n/a"})

	frames := map[string]*frame.Frame{"dates": dates}
	Standardize(frames)

	d := frames["dates"]
	if got := d.NumRows(); got != 2 {
		t.Fatalf("rows = %d, want 2 (totals row dropped)", got)
	}
	dateCol, _ := d.Col("date")
	if !reflect.DeepEqual(dateCol, []string{"2026-05-01", "2026-05-02"}) {
		t.Errorf("date column = %v", dateCol)
	}
	subs, _ := d.Col("subs_gained")
	// Unparseable subscriber counts default to zero.
	if !reflect.DeepEqual(subs, []string{"3", "0"}) {
		t.Errorf("subs_gained column = %v", subs)
	}
}

func TestStandardizeDoubleMatchKeepsFirstField(t *testing.T) {
	// A single numeric column can satisfy both dates fields: the secondary
	// "timestamp" alias of the date field and the 'sub' name heuristic of
	// the subscribers field. The date field is declared first, so the
	// column must always end up named "date".
	dates := frame.New()
	dates.AddColumn("Sub_Timestamp", []string{"100", "200"})

	frames := map[string]*frame.Frame{"dates": dates}
	res, _ := Standardize(frames)

	if res["dates.date"] != "Sub_Timestamp" || res["dates.subs"] != "Sub_Timestamp" {
		t.Fatalf("resolution = %v, want both dates keys on Sub_Timestamp", res)
	}

	d := frames["dates"]
	if !d.Has("date") {
		t.Errorf("columns = %v, want date present", d.Columns())
	}
	if d.Has("subs_gained") || d.Has("Sub_Timestamp") {
		t.Errorf("columns = %v, want only the first field's canonical name", d.Columns())
	}
}

func TestStandardizeDateLayouts(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2026-05-01", "2026-05-01", true},
		{"2026-05-01 13:45:00", "2026-05-01", true},
		{"May 1, 2026", "2026-05-01", true},
		{"05/01/2026", "2026-05-01", true},
		{" 2026-05-01 ", "2026-05-01", true},
		{"Total", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.raw)
		if ok != tt.ok {
			t.Errorf("parseDate(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("parseDate(%q) = %s, want %s", tt.raw, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestStandardizeGeographyFallback(t *testing.T) {
	geography := frame.New()
	geography.AddColumn("Market", []string{"US", "DE"})
	geography.AddColumn("Views", []string{"7", "3"})

	frames := map[string]*frame.Frame{"geography": geography}
	res, _ := Standardize(frames)

	if res["geo.country"] != "Market" {
		t.Fatalf("geo.country = %q", res["geo.country"])
	}
	if !geography.Has("country") {
		t.Errorf("fallback column not renamed: %v", geography.Columns())
	}
}

func TestStandardizeMissingDatasetsKept(t *testing.T) {
	res, warnings := Standardize(map[string]*frame.Frame{})
	if len(warnings) != 5 {
		t.Errorf("warnings = %v", warnings)
	}
	// Defaults still present for every field.
	if res["content.title"] != "title" || res["dates.date"] != "" {
		t.Errorf("resolution = %v", res)
	}
}
