// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// HTTPService wraps the http.Server as a supervised service, translating
// the blocking ListenAndServe into suture's context-aware Serve.
type HTTPService struct {
	server *http.Server
}

// NewHTTPService wraps srv for supervision.
func NewHTTPService(srv *http.Server) *HTTPService {
	return &HTTPService{server: srv}
}

// Serve implements suture.Service.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		// The original context is canceled, shutdown needs its own.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

// String identifies the service in supervisor logs.
func (s *HTTPService) String() string {
	return "http-server"
}

// SyncService periodically rebuilds the database from the processed CSVs
// so long-running servers pick up fresh exports without a restart.
type SyncService struct {
	interval time.Duration
	rebuild  func(context.Context) error
}

// NewSyncService runs rebuild every interval.
func NewSyncService(interval time.Duration, rebuild func(context.Context) error) *SyncService {
	return &SyncService{interval: interval, rebuild: rebuild}
}

// Serve implements suture.Service. A failed rebuild is logged and retried
// at the next tick rather than crashing the service.
func (s *SyncService) Serve(ctx context.Context) error {
	log := logging.Component("sync")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.rebuild(ctx); err != nil {
				log.Error().Err(err).Msg("Periodic rebuild failed")
				continue
			}
			log.Info().Dur("duration", time.Since(start)).Msg("Periodic rebuild complete")
		}
	}
}

// String identifies the service in supervisor logs.
func (s *SyncService) String() string {
	return "periodic-sync"
}

// NewSupervisor builds the root supervisor with suture's defaults and
// structured event logging.
func NewSupervisor() *suture.Supervisor {
	handler := &sutureslog.Handler{Logger: logging.Slog()}
	return suture.New("campaign", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          shutdownTimeout,
	})
}
