// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSyncServiceRunsRebuilds(t *testing.T) {
	var calls atomic.Int32
	svc := NewSyncService(10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Serve() err = %v", err)
	}
	if calls.Load() == 0 {
		t.Error("rebuild never ran")
	}
}

func TestSyncServiceSurvivesRebuildErrors(t *testing.T) {
	var calls atomic.Int32
	svc := NewSyncService(10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)
	if calls.Load() < 2 {
		t.Errorf("rebuild should be retried after errors, got %d calls", calls.Load())
	}
}

func TestSyncServiceStopsOnCancel(t *testing.T) {
	svc := NewSyncService(time.Hour, func(ctx context.Context) error { return nil })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve() err = %v", err)
	}
}
