// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package runlog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/models"
)

func testStore(t *testing.T, keep int) *Store {
	t.Helper()
	s, err := OpenInMemory(keep)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRecord(id string, start time.Time) models.RunRecord {
	return models.RunRecord{
		ID:         id,
		Command:    "run",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		DurationMS: 2000,
		Status:     "ok",
		Warnings:   []string{"missing dataframe: traffic"},
		Resolution: map[string]string{"content.views": "Views"},
	}
}

func TestSaveAndList(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rec := testRecord(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	// Newest first.
	if runs[0].ID != "run-2" || runs[2].ID != "run-0" {
		t.Errorf("order = [%s %s %s]", runs[0].ID, runs[1].ID, runs[2].ID)
	}
	if runs[0].Warnings[0] != "missing dataframe: traffic" {
		t.Errorf("warnings not round-tripped: %v", runs[0].Warnings)
	}
	if runs[0].Resolution["content.views"] != "Views" {
		t.Errorf("resolution not round-tripped: %v", runs[0].Resolution)
	}
}

func TestListLimit(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := s.Save(ctx, testRecord(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "run-4" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestRetention(t *testing.T) {
	s := testStore(t, 2)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := s.Save(ctx, testRecord(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs after pruning, want 2", len(runs))
	}
	if runs[0].ID != "run-4" || runs[1].ID != "run-3" {
		t.Errorf("kept runs = [%s %s]", runs[0].ID, runs[1].ID)
	}
}

func TestGet(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()
	rec := testRecord("abc-123", time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "abc-123")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "abc-123" || got.Status != "ok" {
		t.Errorf("got = %+v", got)
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) err = %v, want ErrNotFound", err)
	}
}

func TestLatestEmpty(t *testing.T) {
	s := testStore(t, 0)
	if _, err := s.Latest(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest() err = %v, want ErrNotFound", err)
	}
}

func TestSaveRequiresID(t *testing.T) {
	s := testStore(t, 0)
	if err := s.Save(context.Background(), models.RunRecord{}); err == nil {
		t.Fatal("expected error for record without ID")
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, 10)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Save(ctx, testRecord("persisted", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(dir, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "persisted" {
		t.Errorf("latest = %+v", got)
	}
}
