// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package main is the entry point for the campaign CLI.
//
// The campaign binary drives the whole analytics pipeline for the AI Talks
// YouTube channel: extracting the latest Studio CSV exports, standardizing
// their schemas, loading them into DuckDB, rendering charts, writing reports,
// and serving the results over HTTP.
//
// Commands:
//
//	campaign extract   Copy the newest CSV from each raw export folder
//	campaign builddb   Standardize processed CSVs and load them into DuckDB
//	campaign report    Render charts and write reports from the database
//	campaign analyze   builddb followed by report
//	campaign run       Full pipeline (extract, builddb, report) with history
//	campaign runs      List recorded pipeline runs
//	campaign serve     Serve the API, reports, and figures over HTTP
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins): environment variables prefixed CAMPAIGN_, an optional config.yaml,
// and built-in defaults.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/database"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/runlog"
)

var rootCmd = &cobra.Command{
	Use:           "campaign",
	Short:         "AI Talks YouTube campaign analytics pipeline",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

// loadConfig loads configuration and initializes logging from it. Every
// subcommand goes through here so flags and env vars behave identically.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Logging)
	return cfg, nil
}

// openDatabase opens the configured DuckDB file and logs the connection.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("path", cfg.Database.Path).Msg("Database opened")
	return db, nil
}

// openRunLog opens the Badger run history store when configured. A nil store
// with a nil error means run logging is disabled.
func openRunLog(cfg *config.Config) (*runlog.Store, error) {
	if cfg.RunLog.Path == "" {
		return nil, nil
	}
	return runlog.Open(cfg.RunLog.Path, cfg.RunLog.Keep)
}

func closeQuietly(name string, c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		logging.Error().Err(err).Str("component", name).Msg("Error closing")
	}
}
