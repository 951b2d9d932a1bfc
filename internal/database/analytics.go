// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/metrics"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/models"
)

// KPISummary computes the campaign's headline metrics. Empty tables yield
// zero values, not errors, so reports can render on partial data.
func (db *DB) KPISummary(ctx context.Context) (*models.KPISummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	var (
		contentRows    int64
		distinctVideos int64
		summary        models.KPISummary
		avgDur         sql.NullFloat64
	)
	err := db.conn.QueryRowContext(ctx, `
	SELECT
		COUNT(*),
		COUNT(DISTINCT video_id),
		COALESCE(SUM(views), 0),
		COALESCE(SUM(likes), 0),
		AVG(avg_view_duration)
	FROM content`).Scan(&contentRows, &distinctVideos, &summary.TotalViews, &summary.TotalLikes, &avgDur)
	metrics.RecordDBQuery("kpi_content", "content", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("content KPIs: %w", err)
	}
	// Rows without a usable video ID still count as videos.
	summary.TotalVideos = distinctVideos
	if distinctVideos == 0 {
		summary.TotalVideos = contentRows
	}
	if avgDur.Valid {
		summary.AvgViewDurationSec = avgDur.Float64
	}

	start = time.Now()
	err = db.conn.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(subs_gained), 0) FROM dates").Scan(&summary.SubsTotalGain)
	metrics.RecordDBQuery("kpi_dates", "dates", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("dates KPIs: %w", err)
	}

	start = time.Now()
	var total, subscribed float64
	err = db.conn.QueryRowContext(ctx, `
	SELECT
		COALESCE(SUM(views), 0),
		COALESCE(SUM(CASE WHEN LOWER(audience_type) LIKE '%sub%' THEN views END), 0)
	FROM subscriptions`).Scan(&total, &subscribed)
	metrics.RecordDBQuery("kpi_subscriptions", "subscriptions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("subscriptions KPIs: %w", err)
	}
	if total > 0 {
		share := subscribed / total
		summary.SubscribedViewShare = &share
	}

	return &summary, nil
}

// TopVideos returns the best performing videos by views.
func (db *DB) TopVideos(ctx context.Context, limit int) ([]models.VideoStat, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	if limit <= 0 {
		limit = 10
	}
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
	SELECT
		COALESCE(video_id, ''),
		COALESCE(title, video_id, ''),
		views,
		COALESCE(likes, 0),
		COALESCE(avg_view_duration, 0)
	FROM content
	WHERE views IS NOT NULL
	ORDER BY views DESC
	LIMIT ?`, limit)
	metrics.RecordDBQuery("top_videos", "content", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("top videos: %w", err)
	}
	defer rows.Close()

	var out []models.VideoStat
	for rows.Next() {
		var v models.VideoStat
		if err := rows.Scan(&v.VideoID, &v.Title, &v.Views, &v.Likes, &v.AvgViewDurationSec); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// TrafficSources returns total views per acquisition channel, descending.
func (db *DB) TrafficSources(ctx context.Context) ([]models.TrafficSource, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
	SELECT traffic_source, COALESCE(SUM(views), 0) AS total_views
	FROM traffic
	WHERE traffic_source IS NOT NULL
	GROUP BY traffic_source
	ORDER BY total_views DESC`)
	metrics.RecordDBQuery("traffic_sources", "traffic", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("traffic sources: %w", err)
	}
	defer rows.Close()

	var out []models.TrafficSource
	for rows.Next() {
		var s models.TrafficSource
		if err := rows.Scan(&s.Source, &s.Views); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TopCountries returns total views per country, descending, capped at
// limit.
func (db *DB) TopCountries(ctx context.Context, limit int) ([]models.CountryViews, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	if limit <= 0 {
		limit = 10
	}
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
	SELECT country, COALESCE(SUM(views), 0) AS total_views
	FROM geography
	WHERE country IS NOT NULL
	GROUP BY country
	ORDER BY total_views DESC
	LIMIT ?`, limit)
	metrics.RecordDBQuery("top_countries", "geography", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("top countries: %w", err)
	}
	defer rows.Close()

	var out []models.CountryViews
	for rows.Next() {
		var c models.CountryViews
		if err := rows.Scan(&c.Country, &c.Views); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DailySubscribers returns net subscriber gains per day in chronological
// order, with a running cumulative total.
func (db *DB) DailySubscribers(ctx context.Context) ([]models.DailySubscribers, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
	SELECT date, COALESCE(SUM(subs_gained), 0) AS gained
	FROM dates
	WHERE date IS NOT NULL
	GROUP BY date
	ORDER BY date`)
	metrics.RecordDBQuery("daily_subscribers", "dates", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("daily subscribers: %w", err)
	}
	defer rows.Close()

	var out []models.DailySubscribers
	var running float64
	for rows.Next() {
		var d models.DailySubscribers
		if err := rows.Scan(&d.Date, &d.SubsGained); err != nil {
			return nil, err
		}
		running += d.SubsGained
		d.Cumulative = running
		out = append(out, d)
	}
	return out, rows.Err()
}

// AudienceBreakdown returns total views per subscription status,
// descending, with each segment's share of the total.
func (db *DB) AudienceBreakdown(ctx context.Context) ([]models.AudienceSegment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
	SELECT audience_type, COALESCE(SUM(views), 0) AS total_views
	FROM subscriptions
	WHERE audience_type IS NOT NULL
	GROUP BY audience_type
	ORDER BY total_views DESC`)
	metrics.RecordDBQuery("audience_breakdown", "subscriptions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("audience breakdown: %w", err)
	}
	defer rows.Close()

	var out []models.AudienceSegment
	var total int64
	for rows.Next() {
		var a models.AudienceSegment
		if err := rows.Scan(&a.AudienceType, &a.Views); err != nil {
			return nil, err
		}
		total += a.Views
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if total > 0 {
		for i := range out {
			out[i].Share = float64(out[i].Views) / float64(total)
		}
	}
	return out, nil
}

// DataDictionary lists every dataset table's columns and types.
func (db *DB) DataDictionary(ctx context.Context) ([]models.DictionaryEntry, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
	SELECT table_name, column_name, data_type
	FROM information_schema.columns
	WHERE table_name IN ('content', 'traffic', 'geography', 'subscriptions', 'dates')
	ORDER BY table_name, ordinal_position`)
	metrics.RecordDBQuery("data_dictionary", "information_schema", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("data dictionary: %w", err)
	}
	defer rows.Close()

	var out []models.DictionaryEntry
	for rows.Next() {
		var e models.DictionaryEntry
		if err := rows.Scan(&e.Table, &e.Column, &e.Type); err != nil {
			return nil, err
		}
		e.Description = columnDescriptions[e.Table+"."+e.Column]
		out = append(out, e)
	}
	return out, rows.Err()
}

// columnDescriptions backs the generated data dictionary.
var columnDescriptions = map[string]string{
	"content.video_id":            "YouTube video identifier",
	"content.title":               "Video title at export time",
	"content.views":               "Total views in the export window",
	"content.likes":               "Total likes in the export window",
	"content.avg_view_duration":   "Average view duration in seconds",
	"content.source":              "Raw export folder the row came from",
	"traffic.traffic_source":      "Acquisition channel reported by Studio",
	"traffic.views":               "Views attributed to the channel",
	"traffic.source":              "Raw export folder the row came from",
	"geography.country":           "Viewer country",
	"geography.views":             "Views attributed to the country",
	"geography.source":            "Raw export folder the row came from",
	"subscriptions.audience_type": "Subscribed vs not subscribed segment",
	"subscriptions.views":         "Views attributed to the segment",
	"subscriptions.source":        "Raw export folder the row came from",
	"dates.date":                  "Report day",
	"dates.subs_gained":           "Net subscribers gained that day",
	"dates.source":                "Raw export folder the row came from",
}
