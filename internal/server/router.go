// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package server exposes the campaign analytics over HTTP: a JSON API for
// the computed metrics, the generated reports and figures as static
// files, and Prometheus metrics. The server and the optional periodic
// rebuild run as supervised services.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
)

// NewRouter assembles the HTTP routes and middleware stack.
func NewRouter(h *Handlers, cfg config.ServerConfig, paths config.PathsConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogging)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Get("/kpis", h.KPIs)
		r.Get("/videos/top", h.TopVideos)
		r.Get("/traffic", h.TrafficSources)
		r.Get("/countries", h.TopCountries)
		r.Get("/subscribers/daily", h.DailySubscribers)
		r.Get("/audience", h.AudienceBreakdown)
		r.Get("/schema/resolution", h.SchemaResolution)
		r.Get("/runs", h.Runs)
	})

	// Generated artifacts, served read-only.
	fileServer(r, "/reports", paths.Reports)
	fileServer(r, "/figures", paths.Figures)

	return r
}

func fileServer(r chi.Router, prefix, dir string) {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}

// NewServer builds the http.Server with the configured timeouts.
func NewServer(handler http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Timeout,
		WriteTimeout:      cfg.Timeout,
		IdleTimeout:       2 * cfg.Timeout,
	}
}
