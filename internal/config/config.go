// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package config holds all configuration for the campaign analysis pipeline.
//
// Configuration loading order (Koanf v2):
//  1. Defaults: built-in sensible defaults for every setting
//  2. Config file: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Environment variables: CAMPAIGN_* overrides any setting
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	Paths    PathsConfig    `koanf:"paths"`
	Database DatabaseConfig `koanf:"database"`
	RunLog   RunLogConfig   `koanf:"runlog"`
	Report   ReportConfig   `koanf:"report"`
	Server   ServerConfig   `koanf:"server"`
	Sync     SyncConfig     `koanf:"sync"`
	Logging  logging.Config `koanf:"logging"`
}

// PathsConfig defines the on-disk layout of the pipeline.
// The defaults mirror the layout the analysts already use:
//
//	data/raw/<Export Folder>/<export>.csv   raw YouTube Studio exports
//	data/processed/<dataset>_clean_ready.csv
//	figures/*.png
//	reports/*.csv, reports/executive_summary.html
type PathsConfig struct {
	DataRaw       string `koanf:"data_raw" validate:"required"`
	DataProcessed string `koanf:"data_processed" validate:"required"`
	Figures       string `koanf:"figures" validate:"required"`
	Reports       string `koanf:"reports" validate:"required"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. The parent directory is created on
	// demand.
	Path string `koanf:"path" validate:"required"`

	// MaxMemory caps DuckDB memory usage, e.g. "1GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`
}

// RunLogConfig holds settings for the Badger-backed ingest run log.
type RunLogConfig struct {
	// Path is the Badger directory. Empty disables run logging.
	Path string `koanf:"path"`

	// Keep is how many most-recent runs to retain.
	Keep int `koanf:"keep" validate:"min=1"`
}

// ReportConfig holds chart and report options.
type ReportConfig struct {
	TopVideos    int `koanf:"top_videos" validate:"min=1,max=100"`
	TopCountries int `koanf:"top_countries" validate:"min=1,max=100"`
}

// ServerConfig holds HTTP server settings for `campaign serve`.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// SyncConfig controls the periodic pipeline re-run in serve mode.
type SyncConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// Addr returns the host:port address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ProcessedFile returns the processed CSV path for a dataset name.
func (p PathsConfig) ProcessedFile(filename string) string {
	return filepath.Join(p.DataProcessed, filename)
}

// Default returns a Config with all default values applied.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all default values applied.
func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataRaw:       "data/raw",
			DataProcessed: "data/processed",
			Figures:       "figures",
			Reports:       "reports",
		},
		Database: DatabaseConfig{
			Path:      "data/ai_talks.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		RunLog: RunLogConfig{
			Path: "data/runlog",
			Keep: 50,
		},
		Report: ReportConfig{
			TopVideos:    10,
			TopCountries: 10,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8787,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Sync: SyncConfig{
			Enabled:  false,
			Interval: time.Hour,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for consistency. Field-level rules come
// from validator tags; cross-field rules are checked explicitly.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Sync.Enabled && c.Sync.Interval < time.Minute {
		return fmt.Errorf("sync.interval must be at least 1m, got %s", c.Sync.Interval)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	return nil
}
