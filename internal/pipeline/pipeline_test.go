// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/database"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/runlog"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		DataRaw:       filepath.Join(root, "raw"),
		DataProcessed: filepath.Join(root, "processed"),
		Figures:       filepath.Join(root, "figures"),
		Reports:       filepath.Join(root, "reports"),
	}
	return cfg
}

func writeExport(t *testing.T, cfg *config.Config, folder, content string) {
	t.Helper()
	dir := filepath.Join(cfg.Paths.DataRaw, folder)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Table data.csv"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	writeExport(t, cfg, "Content_Ai-talks-CA 2026",
		"Content,Video title,Views,Likes,Average view duration\na1,Launch talk,100,10,120\nb2,Deep dive,50,5,60\n")
	writeExport(t, cfg, "Traffic sources_Ai-Talks-CA",
		"Traffic source,Views\nSearch,60\nSuggested,30\n")
	writeExport(t, cfg, "Date_Ai-talks-CA",
		"Date,Subscribers\n2026-05-01,3\n2026-05-02,2\nTotal,5\n")

	ctx := context.Background()
	db, err := database.NewInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := runlog.OpenInMemory(10)
	if err != nil {
		t.Fatal(err)
	}
	defer runs.Close()

	rec, err := New(cfg).Run(ctx, db, runs)
	if err != nil {
		t.Fatalf("run failed: %v (record %+v)", err, rec)
	}
	if rec.Status != "ok" || rec.ID == "" {
		t.Errorf("record = %+v", rec)
	}
	// geography and subscriptions exports are absent.
	if len(rec.Warnings) != 2 {
		t.Errorf("warnings = %v", rec.Warnings)
	}
	if rec.Resolution["content.views"] != "Views" {
		t.Errorf("resolution = %v", rec.Resolution)
	}

	kpis, err := db.KPISummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if kpis.TotalVideos != 2 || kpis.TotalViews != 150 || kpis.SubsTotalGain != 5 {
		t.Errorf("kpis = %+v", kpis)
	}

	// Standardized CSVs rewritten with canonical names; totals row gone.
	data, err := os.ReadFile(cfg.Paths.ProcessedFile("date_clean_ready.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "date,subs_gained,source\n2026-05-01,3,Date_Ai-talks-CA\n2026-05-02,2,Date_Ai-talks-CA\n" {
		t.Errorf("standardized dates CSV:\n%s", got)
	}

	for _, f := range []string{"kpis.csv", "data_dictionary.csv", "executive_summary.html"} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.Reports, f)); err != nil {
			t.Errorf("missing report %s", f)
		}
	}
	for _, f := range []string{"top_videos_by_views.png", "traffic_sources.png", "subs_over_time.png"} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.Figures, f)); err != nil {
			t.Errorf("missing figure %s", f)
		}
	}

	saved, err := runs.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != rec.ID {
		t.Errorf("latest run = %s, want %s", saved.ID, rec.ID)
	}
}

func TestRunRecordsFailure(t *testing.T) {
	cfg := testConfig(t)
	// Raw directory exists but holds no exports; extraction reports all
	// datasets missing and the run still completes on empty tables.
	if err := os.MkdirAll(cfg.Paths.DataRaw, 0o750); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.NewInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rec, err := New(cfg).Run(ctx, db, nil)
	if err != nil {
		t.Fatalf("run on empty data should degrade, not fail: %v", err)
	}
	if len(rec.Warnings) != 5 {
		t.Errorf("warnings = %v", rec.Warnings)
	}
	for _, d := range rec.Datasets {
		if !d.Missing {
			t.Errorf("dataset %s should be missing", d.Dataset)
		}
	}
}

func TestRebuild(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.DataProcessed, 0o750); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(cfg.Paths.ProcessedFile("content_clean_ready.csv"),
		[]byte("video_id,title,views,likes,avg_view_duration\na1,Launch talk,100,10,120\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.NewInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := New(cfg).Rebuild(ctx, db); err != nil {
		t.Fatal(err)
	}
	kpis, err := db.KPISummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if kpis.TotalViews != 100 {
		t.Errorf("kpis = %+v", kpis)
	}
}
