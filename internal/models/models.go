// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package models holds the shared data structures exchanged between the
// ingest pipeline, the analytics layer, reporting and the HTTP API.
package models

import "time"

// KPISummary is the headline metric set for the whole campaign.
// SubscribedViewShare is nil when no subscription data was loaded, which
// is distinct from a genuine zero share.
type KPISummary struct {
	TotalVideos         int64    `json:"total_videos"`
	TotalViews          int64    `json:"total_views"`
	TotalLikes          int64    `json:"total_likes"`
	AvgViewDurationSec  float64  `json:"avg_view_duration_sec"`
	SubsTotalGain       float64  `json:"subs_total_gain"`
	SubscribedViewShare *float64 `json:"subscribed_view_share,omitempty"`
}

// VideoStat is one video's aggregate performance.
type VideoStat struct {
	VideoID            string  `json:"video_id"`
	Title              string  `json:"title"`
	Views              int64   `json:"views"`
	Likes              int64   `json:"likes"`
	AvgViewDurationSec float64 `json:"avg_view_duration_sec"`
}

// TrafficSource is aggregated views for one acquisition channel.
type TrafficSource struct {
	Source string `json:"source"`
	Views  int64  `json:"views"`
}

// CountryViews is aggregated views for one country.
type CountryViews struct {
	Country string `json:"country"`
	Views   int64  `json:"views"`
}

// DailySubscribers is net subscribers gained on one day.
type DailySubscribers struct {
	Date       time.Time `json:"date"`
	SubsGained float64   `json:"subs_gained"`
	Cumulative float64   `json:"cumulative"`
}

// AudienceSegment is aggregated views for one subscription status.
type AudienceSegment struct {
	AudienceType string  `json:"audience_type"`
	Views        int64   `json:"views"`
	Share        float64 `json:"share"`
}

// DatasetStat summarizes one dataset's extraction outcome within a run.
type DatasetStat struct {
	Dataset    string `json:"dataset"`
	SourceFile string `json:"source_file,omitempty"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	Missing    bool   `json:"missing,omitempty"`
}

// RunRecord is the persisted history entry for one pipeline run.
type RunRecord struct {
	ID         string            `json:"id"`
	Command    string            `json:"command"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	DurationMS int64             `json:"duration_ms"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Datasets   []DatasetStat     `json:"datasets,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
	Resolution map[string]string `json:"resolution,omitempty"`
}

// Duration returns the run's wall-clock duration.
func (r RunRecord) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// DictionaryEntry is one row of the generated data dictionary.
type DictionaryEntry struct {
	Table       string `json:"table"`
	Column      string `json:"column"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
