// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package database

import (
	"context"
	"fmt"
)

// tableDDL defines the stable schema, one statement per dataset. Rebuilds
// replace the tables wholesale, so each create is preceded by a drop.
var tableDDL = []struct {
	name   string
	create string
}{
	{
		name: "content",
		create: `CREATE TABLE content (
			video_id VARCHAR,
			title VARCHAR,
			views BIGINT,
			likes BIGINT,
			avg_view_duration DOUBLE,
			source VARCHAR
		)`,
	},
	{
		name: "traffic",
		create: `CREATE TABLE traffic (
			traffic_source VARCHAR,
			views BIGINT,
			source VARCHAR
		)`,
	},
	{
		name: "geography",
		create: `CREATE TABLE geography (
			country VARCHAR,
			views BIGINT,
			source VARCHAR
		)`,
	},
	{
		name: "subscriptions",
		create: `CREATE TABLE subscriptions (
			audience_type VARCHAR,
			views BIGINT,
			source VARCHAR
		)`,
	},
	{
		name: "dates",
		create: `CREATE TABLE dates (
			date TIMESTAMP,
			subs_gained DOUBLE,
			source VARCHAR
		)`,
	},
}

var indexDDL = []string{
	"CREATE INDEX IF NOT EXISTS idx_content_video ON content(video_id)",
	"CREATE INDEX IF NOT EXISTS idx_traffic_source ON traffic(traffic_source)",
	"CREATE INDEX IF NOT EXISTS idx_geo_country ON geography(country)",
	"CREATE INDEX IF NOT EXISTS idx_dates_date ON dates(date)",
}

// InitSchema drops and recreates every dataset table plus the lookup
// indexes.
func (db *DB) InitSchema(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	for _, t := range tableDDL {
		if _, err := db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+t.name); err != nil {
			return fmt.Errorf("dropping table %s: %w", t.name, err)
		}
		if _, err := db.conn.ExecContext(ctx, t.create); err != nil {
			return fmt.Errorf("creating table %s: %w", t.name, err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	db.log.Debug().Int("tables", len(tableDDL)).Msg("Schema initialized")
	return nil
}
