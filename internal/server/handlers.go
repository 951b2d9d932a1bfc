// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/cache"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/database"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/runlog"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/validation"
)

// Analytics responses are reused until the next pipeline rebuild clears the
// cache, so the TTL only bounds staleness when serve runs without sync.
const cacheTTL = time.Minute

// apiResponse is the uniform JSON envelope.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// listQuery carries the validated query parameters of list endpoints.
type listQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

// Handlers serves the campaign analytics API.
type Handlers struct {
	db    *database.DB
	runs  *runlog.Store
	cfg   config.ReportConfig
	cache *cache.Cache
}

// NewHandlers wires the API handlers to the analytics layer and run
// history. runs may be nil when no run log is configured.
func NewHandlers(db *database.DB, runs *runlog.Store, cfg config.ReportConfig) *Handlers {
	return &Handlers{
		db:    db,
		runs:  runs,
		cfg:   cfg,
		cache: cache.New(cacheTTL),
	}
}

// InvalidateCache drops cached analytics responses. Called after a pipeline
// rebuild replaces the underlying tables.
func (h *Handlers) InvalidateCache() {
	h.cache.Clear()
}

// Healthz reports liveness of the process and the database.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

// KPIs returns the campaign's headline metrics.
func (h *Handlers) KPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.cached("kpis", func() (any, error) {
		return h.db.KPISummary(r.Context())
	})
	if err != nil {
		h.serverError(w, err, "computing KPIs")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: kpis})
}

// TopVideos returns the best performing videos, honoring ?limit=.
func (h *Handlers) TopVideos(w http.ResponseWriter, r *http.Request) {
	q, ok := h.limitQuery(w, r, h.cfg.TopVideos)
	if !ok {
		return
	}
	videos, err := h.cached(cache.Key("top_videos", q), func() (any, error) {
		return h.db.TopVideos(r.Context(), q.Limit)
	})
	if err != nil {
		h.serverError(w, err, "querying top videos")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: videos})
}

// TrafficSources returns views per acquisition channel.
func (h *Handlers) TrafficSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.cached("traffic_sources", func() (any, error) {
		return h.db.TrafficSources(r.Context())
	})
	if err != nil {
		h.serverError(w, err, "querying traffic sources")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: sources})
}

// TopCountries returns views per country, honoring ?limit=.
func (h *Handlers) TopCountries(w http.ResponseWriter, r *http.Request) {
	q, ok := h.limitQuery(w, r, h.cfg.TopCountries)
	if !ok {
		return
	}
	countries, err := h.cached(cache.Key("top_countries", q), func() (any, error) {
		return h.db.TopCountries(r.Context(), q.Limit)
	})
	if err != nil {
		h.serverError(w, err, "querying top countries")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: countries})
}

// DailySubscribers returns the subscriber time series.
func (h *Handlers) DailySubscribers(w http.ResponseWriter, r *http.Request) {
	daily, err := h.cached("daily_subscribers", func() (any, error) {
		return h.db.DailySubscribers(r.Context())
	})
	if err != nil {
		h.serverError(w, err, "querying daily subscribers")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: daily})
}

// AudienceBreakdown returns views per subscription status.
func (h *Handlers) AudienceBreakdown(w http.ResponseWriter, r *http.Request) {
	segments, err := h.cached("audience_breakdown", func() (any, error) {
		return h.db.AudienceBreakdown(r.Context())
	})
	if err != nil {
		h.serverError(w, err, "querying audience breakdown")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: segments})
}

// SchemaResolution returns the column resolution of the latest run.
func (h *Handlers) SchemaResolution(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "run history not configured")
		return
	}
	latest, err := h.runs.Latest(r.Context())
	if errors.Is(err, runlog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no runs recorded yet")
		return
	}
	if err != nil {
		h.serverError(w, err, "reading run history")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: map[string]any{
		"run_id":     latest.ID,
		"resolution": latest.Resolution,
		"warnings":   latest.Warnings,
	}})
}

// Runs lists recent pipeline runs, honoring ?limit=.
func (h *Handlers) Runs(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "run history not configured")
		return
	}
	q, ok := h.limitQuery(w, r, 20)
	if !ok {
		return
	}
	runs, err := h.runs.List(r.Context(), q.Limit)
	if err != nil {
		h.serverError(w, err, "listing runs")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: runs})
}

// limitQuery parses and validates the limit query parameter, falling back
// to def when absent.
func (h *Handlers) limitQuery(w http.ResponseWriter, r *http.Request, def int) (listQuery, bool) {
	q := listQuery{Limit: def}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return q, false
		}
		q.Limit = n
	}
	if err := validation.Struct(&q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return q, false
	}
	return q, true
}

// cached serves key from the response cache, computing it via fetch on a
// miss. Errors are never cached.
func (h *Handlers) cached(key string, fetch func() (any, error)) (any, error) {
	if v, ok := h.cache.Get(key); ok {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		return nil, err
	}
	h.cache.Set(key, v)
	return v, nil
}

func (h *Handlers) serverError(w http.ResponseWriter, err error, msg string) {
	logging.Error().Err(err).Msg("Request failed: " + msg)
	writeError(w, http.StatusInternalServerError, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, Error: msg})
}
