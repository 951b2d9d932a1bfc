// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package pipeline orchestrates the campaign stages end to end: extract
// raw exports, standardize schemas, rebuild the database, render figures
// and reports, and record the run in history.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/database"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/ingest"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/metrics"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/models"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/report"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/runlog"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/schema"
)

// Pipeline wires the stages to one configuration.
type Pipeline struct {
	cfg *config.Config
	log zerolog.Logger
}

// New returns a Pipeline for the given configuration.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg, log: logging.Component("pipeline")}
}

// Extract copies the latest raw export of each dataset into the
// processed area.
func (p *Pipeline) Extract(ctx context.Context) ([]models.DatasetStat, error) {
	return ingest.NewExtractor(p.cfg.Paths).Extract(ctx)
}

// BuildDB standardizes the processed CSVs and rebuilds the database from
// them. It returns the schema resolution and warnings of the
// standardization pass.
func (p *Pipeline) BuildDB(ctx context.Context, db *database.DB) (schema.Resolution, []string, error) {
	frames, err := ingest.LoadProcessed(p.cfg.Paths)
	if err != nil {
		return nil, nil, err
	}
	res, warnings := ingest.Standardize(frames)
	if err := ingest.WriteProcessed(p.cfg.Paths, frames); err != nil {
		return nil, nil, fmt.Errorf("writing standardized CSVs: %w", err)
	}
	if _, err := db.LoadFrames(ctx, frames); err != nil {
		return nil, nil, err
	}
	return res, warnings, nil
}

// Report renders every figure and tabular report from the database.
func (p *Pipeline) Report(ctx context.Context, db *database.DB) error {
	renderer := report.NewRenderer(db, p.cfg.Report, p.cfg.Paths.Figures)
	if err := renderer.RenderAll(ctx); err != nil {
		return err
	}
	return report.NewWriter(db, p.cfg.Paths).WriteAll(ctx)
}

// Run executes the full pipeline and, when runs is non-nil, records the
// outcome. The returned record reflects the run even when it failed.
func (p *Pipeline) Run(ctx context.Context, db *database.DB, runs *runlog.Store) (models.RunRecord, error) {
	rec := models.RunRecord{
		ID:        uuid.New().String(),
		Command:   "run",
		StartedAt: time.Now().UTC(),
		Status:    "ok",
	}

	runErr := p.runStages(ctx, db, &rec)
	if runErr != nil {
		rec.Status = "error"
		rec.Error = runErr.Error()
	}
	rec.FinishedAt = time.Now().UTC()
	rec.DurationMS = rec.FinishedAt.Sub(rec.StartedAt).Milliseconds()
	metrics.RecordPipelineRun(rec.FinishedAt.Sub(rec.StartedAt), runErr)

	if runs != nil {
		if err := runs.Save(ctx, rec); err != nil {
			p.log.Error().Err(err).Msg("Failed to record run")
		}
	}
	p.log.Info().
		Str("run_id", rec.ID).
		Str("status", rec.Status).
		Int64("duration_ms", rec.DurationMS).
		Int("warnings", len(rec.Warnings)).
		Msg("Pipeline run finished")
	return rec, runErr
}

func (p *Pipeline) runStages(ctx context.Context, db *database.DB, rec *models.RunRecord) error {
	stats, err := p.Extract(ctx)
	rec.Datasets = stats
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	res, warnings, err := p.BuildDB(ctx, db)
	if err != nil {
		return fmt.Errorf("build database: %w", err)
	}
	rec.Resolution = res
	rec.Warnings = warnings

	if err := p.Report(ctx, db); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Rebuild refreshes the database and reports from the processed CSVs.
// Used by the periodic sync service; extraction is skipped so a running
// server never touches the raw export area concurrently with a manual
// extract.
func (p *Pipeline) Rebuild(ctx context.Context, db *database.DB) error {
	if _, _, err := p.BuildDB(ctx, db); err != nil {
		return err
	}
	return p.Report(ctx, db)
}
