// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package cache provides a thread-safe in-memory TTL cache for analytics
// query results. DuckDB aggregates are cheap but not free, and the API serves
// the same handful of queries to every dashboard client, so responses are
// cached between pipeline rebuilds and cleared when fresh data lands.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const cleanupInterval = 5 * time.Minute

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache is a TTL map with hit/miss accounting. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	done    chan struct{}

	statsMu   sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Keys      int
}

// New creates a cache whose entries expire after ttl. A background goroutine
// sweeps expired entries until Stop is called.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Stop terminates the background sweeper. The cache remains usable.
func (c *Cache) Stop() {
	close(c.done)
}

// Get returns the cached value for key. Expired entries are removed and
// reported as misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.count(&c.misses)
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.count(&c.misses)
		c.count(&c.evictions)
		return nil, false
	}

	c.count(&c.hits)
	return e.data, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{data: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear drops every entry. Called after a pipeline rebuild so the API serves
// the new aggregates immediately instead of waiting out the TTL.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.evictions += evicted
	c.statsMu.Unlock()
}

// GetStats returns a copy of the current counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	keys := len(c.entries)
	c.mu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Keys: keys}
}

func (c *Cache) count(field *int64) {
	c.statsMu.Lock()
	*field++
	c.statsMu.Unlock()
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	evicted := int64(0)
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	c.mu.Unlock()

	c.statsMu.Lock()
	c.evictions += evicted
	c.statsMu.Unlock()
}

// Key builds a stable cache key from an endpoint name and its parameters.
// Parameters are JSON-encoded and hashed so keys stay short regardless of
// query shape.
func Key(endpoint string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", endpoint, params)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", endpoint, sum[:16])
}
