// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package database stores the standardized campaign datasets in an
// embedded DuckDB file and answers the analytical queries behind the
// reports and the HTTP API.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/rs/zerolog"
)

// defaultQueryTimeout bounds analytical queries when the caller's context
// carries no deadline.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection with the campaign analytics queries.
type DB struct {
	conn *sql.DB
	log  zerolog.Logger
}

// New opens (or creates) the DuckDB database at cfg.Path and initializes
// the schema.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	// Auto-install/auto-load disabled: no extensions are needed and the
	// lookups hang in network-restricted environments.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// DuckDB is embedded: one writer, no pool churn.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn, log: logging.Component("database")}
	if err := db.conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// NewInMemory opens an ephemeral DuckDB instance, used in tests.
func NewInMemory(ctx context.Context) (*DB, error) {
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	db := &DB{conn: conn, log: logging.Component("database")}
	if err := db.conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// Close releases the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Health verifies the connection is usable.
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
