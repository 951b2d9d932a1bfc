// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/campaign/config.yaml",
	"/etc/campaign/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them to
// config keys: CAMPAIGN_DATABASE_PATH -> database.path.
const envPrefix = "CAMPAIGN_"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: CAMPAIGN_* (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars arrive as strings; known slice fields accept comma-separated
	// values.
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps CAMPAIGN_* environment variable names to koanf
// config paths.
//
// Examples:
//   - CAMPAIGN_DATABASE_PATH      -> database.path
//   - CAMPAIGN_PATHS_DATA_RAW     -> paths.data_raw
//   - CAMPAIGN_SERVER_PORT        -> server.port
//   - CAMPAIGN_LOGGING_LEVEL      -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	// Multi-word leaf keys cannot be derived mechanically from the
	// underscore form, so they are mapped explicitly.
	explicit := map[string]string{
		"paths_data_raw":           "paths.data_raw",
		"paths_data_processed":     "paths.data_processed",
		"paths_figures":            "paths.figures",
		"paths_reports":            "paths.reports",
		"database_path":            "database.path",
		"database_max_memory":      "database.max_memory",
		"database_threads":         "database.threads",
		"runlog_path":              "runlog.path",
		"runlog_keep":              "runlog.keep",
		"report_top_videos":        "report.top_videos",
		"report_top_countries":     "report.top_countries",
		"server_host":              "server.host",
		"server_port":              "server.port",
		"server_timeout":           "server.timeout",
		"server_cors_origins":      "server.cors_origins",
		"server_rate_limit_reqs":   "server.rate_limit_reqs",
		"server_rate_limit_window": "server.rate_limit_window",
		"sync_enabled":             "sync.enabled",
		"sync_interval":            "sync.interval",
		"logging_level":            "logging.level",
		"logging_format":           "logging.format",
		"logging_caller":           "logging.caller",
	}
	if path, ok := explicit[key]; ok {
		return path
	}

	// Fall back to replacing the first underscore with a dot.
	return strings.Replace(key, "_", ".", 1)
}

// sliceConfigPaths are the config paths parsed as comma-separated slices
// when they arrive from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			// Already a slice (from YAML or defaults), or nothing to do.
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}
