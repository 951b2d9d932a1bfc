// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/pipeline"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics API, reports, and figures over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeQuietly("database", db)

		runs, err := openRunLog(cfg)
		if err != nil {
			return err
		}
		if runs != nil {
			defer closeQuietly("runlog", runs)
		}

		handlers := server.NewHandlers(db, runs, cfg.Report)
		srv := server.NewServer(server.NewRouter(handlers, cfg.Server, cfg.Paths), cfg.Server)

		sup := server.NewSupervisor()
		sup.Add(server.NewHTTPService(srv))
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server service added")

		if cfg.Sync.Enabled {
			p := pipeline.New(cfg)
			rebuild := func(ctx context.Context) error {
				if err := p.Rebuild(ctx, db); err != nil {
					return err
				}
				handlers.InvalidateCache()
				return nil
			}
			sup.Add(server.NewSyncService(cfg.Sync.Interval, rebuild))
			logging.Info().Dur("interval", cfg.Sync.Interval).Msg("Periodic sync service added")
		}

		ctx := cmd.Context()
		errCh := sup.ServeBackground(ctx)

		select {
		case <-ctx.Done():
			logging.Info().Msg("Shutdown signal received, stopping services")
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}

		// Wait for the supervisor to finish shutting down.
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logging.Info().Msg("Stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
