// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/frame"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/metrics"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/models"
)

// Extractor copies the latest raw export of each dataset into the
// processed area, tagging every row with its source folder.
type Extractor struct {
	paths config.PathsConfig
	log   zerolog.Logger
}

// NewExtractor returns an Extractor rooted at the configured data paths.
func NewExtractor(paths config.PathsConfig) *Extractor {
	return &Extractor{
		paths: paths,
		log:   logging.Component("ingest"),
	}
}

// Extract processes every dataset target. A dataset whose raw export is
// absent is reported as missing, not fatal; the pipeline continues with
// whatever is available. The returned stats cover all targets in order.
func (e *Extractor) Extract(ctx context.Context) ([]models.DatasetStat, error) {
	if err := os.MkdirAll(e.paths.DataRaw, 0o750); err != nil {
		return nil, fmt.Errorf("creating raw directory: %w", err)
	}
	if err := os.MkdirAll(e.paths.DataProcessed, 0o750); err != nil {
		return nil, fmt.Errorf("creating processed directory: %w", err)
	}

	stats := make([]models.DatasetStat, 0, len(Targets))
	for _, target := range Targets {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stat, err := e.extractOne(target)
		if err != nil {
			e.log.Warn().
				Str("dataset", target.Dataset).
				Err(err).
				Msg("Dataset export not available")
			metrics.DatasetsMissing.WithLabelValues(target.Dataset).Inc()
			stats = append(stats, models.DatasetStat{Dataset: target.Dataset, Missing: true})
			continue
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func (e *Extractor) extractOne(target Target) (models.DatasetStat, error) {
	folder, err := ResolveFolder(e.paths.DataRaw, target.FolderPrefixes)
	if err != nil {
		return models.DatasetStat{}, err
	}
	path, err := LatestCSV(filepath.Join(e.paths.DataRaw, folder))
	if err != nil {
		return models.DatasetStat{}, err
	}

	f, err := frame.ReadFile(path)
	if err != nil {
		return models.DatasetStat{}, fmt.Errorf("reading %s: %w", path, err)
	}
	// Provenance column: which export folder each row came from.
	f.AddConst("source", folder)

	out := e.paths.ProcessedFile(target.OutFile)
	if err := f.WriteFile(out); err != nil {
		return models.DatasetStat{}, fmt.Errorf("writing %s: %w", out, err)
	}

	e.log.Info().
		Str("dataset", target.Dataset).
		Str("file", filepath.Base(path)).
		Int("rows", f.NumRows()).
		Int("columns", f.NumCols()).
		Msg("Extracted latest export")
	metrics.RowsExtracted.WithLabelValues(target.Dataset).Add(float64(f.NumRows()))

	return models.DatasetStat{
		Dataset:    target.Dataset,
		SourceFile: filepath.Base(path),
		Rows:       f.NumRows(),
		Columns:    f.NumCols(),
	}, nil
}

// LoadProcessed reads the processed CSV of every dataset. Datasets whose
// processed file does not exist are simply absent from the map.
func LoadProcessed(paths config.PathsConfig) (map[string]*frame.Frame, error) {
	frames := make(map[string]*frame.Frame, len(Targets))
	for _, target := range Targets {
		path := paths.ProcessedFile(target.OutFile)
		f, err := frame.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		frames[target.Dataset] = f
	}
	return frames, nil
}
