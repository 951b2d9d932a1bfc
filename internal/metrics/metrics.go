// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package metrics exposes Prometheus instrumentation for the pipeline and
// the HTTP API. Collectors are registered at init time via promauto and
// served at /metrics in Prometheus text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingest metrics

	RowsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_rows_extracted_total",
			Help: "Total data rows extracted from raw CSV exports, by dataset",
		},
		[]string{"dataset"},
	)

	DatasetsMissing = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_datasets_missing_total",
			Help: "Total extraction runs where a dataset had no matching raw export",
		},
		[]string{"dataset"},
	)

	SchemaWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_schema_warnings_total",
			Help: "Total schema resolution warnings emitted across runs",
		},
	)

	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_rows_dropped_total",
			Help: "Total rows dropped during standardization, by dataset and reason",
		},
		[]string{"dataset", "reason"},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_pipeline_runs_total",
			Help: "Total pipeline runs by outcome",
		},
		[]string{"status"}, // "ok", "error"
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "campaign_pipeline_duration_seconds",
			Help:    "End-to-end pipeline run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 0.1s .. ~51s
		},
	)

	// Database metrics

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	DBRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_duckdb_rows_loaded_total",
			Help: "Total rows loaded into DuckDB tables",
		},
		[]string{"table"},
	)

	// HTTP API metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Report metrics

	ChartsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_charts_rendered_total",
			Help: "Total chart files rendered, by outcome",
		},
		[]string{"chart", "status"},
	)
)

// RecordDBQuery records one database query observation.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records one HTTP request observation.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordPipelineRun records one pipeline run observation.
func RecordPipelineRun(duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PipelineRuns.WithLabelValues(status).Inc()
	PipelineDuration.Observe(duration.Seconds())
}

// RecordChart records the outcome of rendering one chart file.
func RecordChart(chart string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ChartsRendered.WithLabelValues(chart, status).Inc()
}
