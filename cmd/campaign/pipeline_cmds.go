// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Copy the newest CSV from each raw export folder into data/processed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		stats, err := pipeline.New(cfg).Extract(cmd.Context())
		if err != nil {
			return err
		}
		for _, st := range stats {
			if st.Missing {
				logging.Warn().Str("dataset", st.Dataset).Msg("Dataset missing")
				continue
			}
			logging.Info().
				Str("dataset", st.Dataset).
				Str("source_file", st.SourceFile).
				Int("rows", st.Rows).
				Msg("Dataset extracted")
		}
		return nil
	},
}

var builddbCmd = &cobra.Command{
	Use:   "builddb",
	Short: "Standardize processed CSVs and load them into DuckDB",
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

		resolution, warnings, err := pipeline.New(cfg).BuildDB(cmd.Context(), db)
		if err != nil {
			return err
		}
		logging.Info().
			Int("columns_resolved", len(resolution)).
			Int("warnings", len(warnings)).
			Msg("Database build complete")
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render charts and write reports from the database",
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

		if err := pipeline.New(cfg).Report(cmd.Context(), db); err != nil {
			return err
		}
		logging.Info().
			Str("figures", cfg.Paths.Figures).
			Str("reports", cfg.Paths.Reports).
			Msg("Reports written")
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rebuild the database and regenerate all reports",
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

		return pipeline.New(cfg).Rebuild(cmd.Context(), db)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: extract, builddb, report",
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

		rec, err := pipeline.New(cfg).Run(cmd.Context(), db, runs)
		if err != nil {
			logging.Error().
				Str("run_id", rec.ID).
				Dur("duration", rec.Duration()).
				Err(err).
				Msg("Pipeline run failed")
			return err
		}
		logging.Info().
			Str("run_id", rec.ID).
			Dur("duration", rec.Duration()).
			Int("warnings", len(rec.Warnings)).
			Msg("Pipeline run complete")
		return nil
	},
}

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runs, err := openRunLog(cfg)
		if err != nil {
			return err
		}
		if runs == nil {
			return fmt.Errorf("run logging disabled: set runlog.path to enable history")
		}
		defer closeQuietly("runlog", runs)

		records, err := runs.List(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tSTATUS\tWARNINGS")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				rec.ID,
				rec.StartedAt.Format(time.RFC3339),
				rec.Duration().Truncate(time.Millisecond),
				rec.Status,
				len(rec.Warnings))
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")

	rootCmd.AddCommand(extractCmd, builddbCmd, reportCmd, analyzeCmd, runCmd, runsCmd)
}
