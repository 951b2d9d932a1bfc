// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/database"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/frame"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewInMemory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	content := frame.New()
	content.AddColumn("video_id", []string{"a1", "b2"})
	content.AddColumn("title", []string{"Launch talk", "Deep dive"})
	content.AddColumn("views", []string{"100", "50"})
	content.AddColumn("likes", []string{"10", "5"})
	content.AddColumn("avg_view_duration", []string{"120", "60"})

	subscriptions := frame.New()
	subscriptions.AddColumn("audience_type", []string{"Subscribed", "Not subscribed"})
	subscriptions.AddColumn("views", []string{"30", "120"})

	dates := frame.New()
	dates.AddColumn("date", []string{"2026-05-01", "2026-05-02"})
	dates.AddColumn("subs_gained", []string{"3", "2"})

	_, err = db.LoadFrames(context.Background(), map[string]*frame.Frame{
		"content":       content,
		"subscriptions": subscriptions,
		"dates":         dates,
	})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func testWriter(t *testing.T, db *database.DB) (*Writer, config.PathsConfig) {
	t.Helper()
	root := t.TempDir()
	paths := config.PathsConfig{
		Reports: filepath.Join(root, "reports"),
		Figures: filepath.Join(root, "figures"),
	}
	if err := os.MkdirAll(paths.Reports, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(paths.Figures, 0o750); err != nil {
		t.Fatal(err)
	}
	return NewWriter(db, paths), paths
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestWriteKPIs(t *testing.T) {
	db := testDB(t)
	w, paths := testWriter(t, db)

	if err := w.WriteKPIs(context.Background()); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, filepath.Join(paths.Reports, FileKPIs))
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + one row", len(records))
	}
	wantHeader := []string{"total_videos", "total_views", "total_likes", "avg_view_duration_sec", "subs_total_gain", "subscribed_view_share"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}
	if records[1][0] != "2" || records[1][1] != "150" {
		t.Errorf("KPI row = %v", records[1])
	}
	if records[1][5] != "1" {
		t.Errorf("share cell = %q, want %q", records[1][5], "1")
	}
}

func TestWriteKPIsWithoutSubscriptionData(t *testing.T) {
	db, err := database.NewInMemory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	content := frame.New()
	content.AddColumn("video_id", []string{"a1"})
	content.AddColumn("views", []string{"100"})
	if _, err := db.LoadFrames(context.Background(), map[string]*frame.Frame{"content": content}); err != nil {
		t.Fatal(err)
	}

	w, paths := testWriter(t, db)
	if err := w.WriteKPIs(context.Background()); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, filepath.Join(paths.Reports, FileKPIs))
	// The share column is empty, not zero, when no subscription data exists.
	if got := records[1][5]; got != "" {
		t.Errorf("share cell = %q, want empty", got)
	}

	if err := w.WriteExecutiveSummary(context.Background()); err != nil {
		t.Fatal(err)
	}
	html, err := os.ReadFile(filepath.Join(paths.Reports, FileExecSummary))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "<td>n/a</td>") {
		t.Error("executive summary should report the share as n/a")
	}
}

func TestWriteSubscriberBreakdown(t *testing.T) {
	db := testDB(t)
	w, paths := testWriter(t, db)

	if err := w.WriteSubscriberBreakdown(context.Background()); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, filepath.Join(paths.Reports, FileSubBreakdown))
	if len(records) != 3 {
		t.Fatalf("records = %v", records)
	}
	// Descending by views.
	if records[1][0] != "Not subscribed" || records[1][1] != "120" {
		t.Errorf("first segment = %v", records[1])
	}
}

func TestWriteDataDictionary(t *testing.T) {
	db := testDB(t)
	w, paths := testWriter(t, db)

	if err := w.WriteDataDictionary(context.Background()); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, filepath.Join(paths.Reports, FileDictionary))
	// Header plus one row per column of the five tables.
	if len(records) != 19 {
		t.Fatalf("got %d records, want 19", len(records))
	}
}

func TestWriteExecutiveSummary(t *testing.T) {
	db := testDB(t)
	w, paths := testWriter(t, db)

	// One figure on disk; the summary should reference it and skip the rest.
	if err := os.WriteFile(filepath.Join(paths.Figures, FigTopVideos), []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteExecutiveSummary(context.Background()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(paths.Reports, FileExecSummary))
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{
		"AI Talks Campaign Executive Summary",
		"Total views",
		"150",
		"Launch talk",
		"../figures/" + FigTopVideos,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("summary missing %q", want)
		}
	}
	if strings.Contains(html, FigTrafficSources) {
		t.Error("summary references a figure that does not exist")
	}
}

func TestWriteAll(t *testing.T) {
	db := testDB(t)
	w, paths := testWriter(t, db)

	if err := w.WriteAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{FileKPIs, FileSubBreakdown, FileDictionary, FileExecSummary} {
		if _, err := os.Stat(filepath.Join(paths.Reports, f)); err != nil {
			t.Errorf("missing report %s: %v", f, err)
		}
	}
}

func TestRenderAllCharts(t *testing.T) {
	db := testDB(t)
	root := t.TempDir()
	figures := filepath.Join(root, "figures")

	r := NewRenderer(db, config.ReportConfig{TopVideos: 10, TopCountries: 10}, figures)
	if err := r.RenderAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	// content, subscriptions and dates fixtures have data; traffic and
	// geography are empty and skipped.
	for _, f := range []string{FigTopVideos, FigSubsOverTime, FigSubBreakdown} {
		info, err := os.Stat(filepath.Join(figures, f))
		if err != nil {
			t.Errorf("missing figure %s: %v", f, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("figure %s is empty", f)
		}
	}
	for _, f := range []string{FigTrafficSources, FigTopCountries} {
		if _, err := os.Stat(filepath.Join(figures, f)); err == nil {
			t.Errorf("figure %s should be skipped for empty dataset", f)
		}
	}
}
