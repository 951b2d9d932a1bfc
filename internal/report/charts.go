// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package report renders the campaign's chart files and tabular reports
// from the analytics layer. Every artifact degrades gracefully: a dataset
// with no rows skips its outputs instead of failing the run.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/database"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/metrics"
)

// Figure filenames, referenced by the executive summary and the static
// file server.
const (
	FigTopVideos      = "top_videos_by_views.png"
	FigTrafficSources = "traffic_sources.png"
	FigTopCountries   = "top_countries.png"
	FigSubsOverTime   = "subs_over_time.png"
	FigSubBreakdown   = "subscriber_breakdown.png"
)

// maxBarLabel keeps long video titles from overflowing the chart canvas.
const maxBarLabel = 28

// Renderer writes chart PNGs into the figures directory.
type Renderer struct {
	db  *database.DB
	cfg config.ReportConfig
	dir string
	log zerolog.Logger
}

// NewRenderer returns a Renderer writing into figuresDir.
func NewRenderer(db *database.DB, cfg config.ReportConfig, figuresDir string) *Renderer {
	return &Renderer{
		db:  db,
		cfg: cfg,
		dir: figuresDir,
		log: logging.Component("charts"),
	}
}

// RenderAll produces every chart the data allows. It returns the first
// I/O or query error; empty datasets are skipped silently apart from a
// debug log.
func (r *Renderer) RenderAll(ctx context.Context) error {
	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return fmt.Errorf("creating figures directory: %w", err)
	}
	steps := []struct {
		name   string
		render func(context.Context) error
	}{
		{FigTopVideos, r.renderTopVideos},
		{FigTrafficSources, r.renderTrafficSources},
		{FigTopCountries, r.renderTopCountries},
		{FigSubsOverTime, r.renderSubsOverTime},
		{FigSubBreakdown, r.renderSubscriberBreakdown},
	}
	for _, step := range steps {
		err := step.render(ctx)
		metrics.RecordChart(step.name, err)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", step.name, err)
		}
	}
	return nil
}

func (r *Renderer) renderTopVideos(ctx context.Context) error {
	videos, err := r.db.TopVideos(ctx, r.cfg.TopVideos)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		r.log.Debug().Msg("No video data, skipping top videos chart")
		return nil
	}
	bars := make([]chart.Value, 0, len(videos))
	for _, v := range videos {
		label := v.Title
		if label == "" {
			label = v.VideoID
		}
		bars = append(bars, chart.Value{Label: truncateLabel(label), Value: float64(v.Views)})
	}
	return r.writeBarChart(fmt.Sprintf("Top %d Videos by Views", r.cfg.TopVideos), bars, FigTopVideos)
}

func (r *Renderer) renderTrafficSources(ctx context.Context) error {
	sources, err := r.db.TrafficSources(ctx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		r.log.Debug().Msg("No traffic data, skipping traffic sources chart")
		return nil
	}
	bars := make([]chart.Value, 0, len(sources))
	for _, s := range sources {
		bars = append(bars, chart.Value{Label: truncateLabel(s.Source), Value: float64(s.Views)})
	}
	return r.writeBarChart("Traffic Sources by Views", bars, FigTrafficSources)
}

func (r *Renderer) renderTopCountries(ctx context.Context) error {
	countries, err := r.db.TopCountries(ctx, r.cfg.TopCountries)
	if err != nil {
		return err
	}
	if len(countries) == 0 {
		r.log.Debug().Msg("No geography data, skipping top countries chart")
		return nil
	}
	bars := make([]chart.Value, 0, len(countries))
	for _, c := range countries {
		bars = append(bars, chart.Value{Label: truncateLabel(c.Country), Value: float64(c.Views)})
	}
	return r.writeBarChart(fmt.Sprintf("Top %d Countries by Views", r.cfg.TopCountries), bars, FigTopCountries)
}

func (r *Renderer) renderSubsOverTime(ctx context.Context) error {
	daily, err := r.db.DailySubscribers(ctx)
	if err != nil {
		return err
	}
	// A line needs at least two points.
	if len(daily) < 2 {
		r.log.Debug().Int("days", len(daily)).Msg("Not enough date data, skipping subscribers chart")
		return nil
	}
	series := chart.TimeSeries{
		Name:    "Subs Gained",
		XValues: make([]time.Time, 0, len(daily)),
		YValues: make([]float64, 0, len(daily)),
	}
	for _, d := range daily {
		series.XValues = append(series.XValues, d.Date)
		series.YValues = append(series.YValues, d.SubsGained)
	}
	graph := chart.Chart{
		Title:  "Subscribers Gained Over Time",
		Width:  1000,
		Height: 500,
		XAxis:  chart.XAxis{Name: "Date"},
		YAxis:  chart.YAxis{Name: "Subs Gained"},
		Series: []chart.Series{series},
	}
	return r.writeChart(FigSubsOverTime, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func (r *Renderer) renderSubscriberBreakdown(ctx context.Context) error {
	segments, err := r.db.AudienceBreakdown(ctx)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		r.log.Debug().Msg("No subscription data, skipping breakdown chart")
		return nil
	}
	bars := make([]chart.Value, 0, len(segments))
	for _, s := range segments {
		bars = append(bars, chart.Value{Label: truncateLabel(s.AudienceType), Value: float64(s.Views)})
	}
	return r.writeBarChart("Subscribed vs Non-Subscribed Audience", bars, FigSubBreakdown)
}

func (r *Renderer) writeBarChart(title string, bars []chart.Value, filename string) error {
	graph := chart.BarChart{
		Title:    title,
		Width:    1000,
		Height:   500,
		BarWidth: 60,
		Bars:     bars,
	}
	return r.writeChart(filename, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func (r *Renderer) writeChart(filename string, render func(*os.File) error) error {
	path := filepath.Join(r.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.log.Info().Str("figure", filename).Msg("Rendered chart")
	return nil
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxBarLabel {
		return s
	}
	return string(runes[:maxBarLabel-1]) + "…"
}
