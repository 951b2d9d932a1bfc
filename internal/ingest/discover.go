// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package ingest discovers raw YouTube Studio exports, extracts the latest
// CSV per dataset into the processed area and standardizes column names and
// types so downstream stages see one stable schema.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Target describes one dataset's raw export location and processed output.
type Target struct {
	// Dataset is the logical name (content, traffic, ...).
	Dataset string

	// FolderPrefixes are accepted raw subfolder name prefixes, matched
	// case-insensitively, first hit wins. Studio renamed some export
	// folders over time, hence the alternatives.
	FolderPrefixes []string

	// OutFile is the processed CSV filename.
	OutFile string
}

// Targets lists the datasets in processing order. The dates output keeps
// its historical singular filename.
var Targets = []Target{
	{Dataset: "content", FolderPrefixes: []string{"Content_Ai-talks-CA"}, OutFile: "content_clean_ready.csv"},
	{Dataset: "traffic", FolderPrefixes: []string{"Traffic Source_Ai-Talks-CA", "Traffic Sources_Ai-Talks-CA"}, OutFile: "traffic_clean_ready.csv"},
	{Dataset: "geography", FolderPrefixes: []string{"Geography_Ai-Talks-CA"}, OutFile: "geography_clean_ready.csv"},
	{Dataset: "subscriptions", FolderPrefixes: []string{"Subscription_Ai-talks-CA", "Subscription Status_Ai-talks-CA"}, OutFile: "subscriptions_clean_ready.csv"},
	{Dataset: "dates", FolderPrefixes: []string{"Date_Ai-talks-CA"}, OutFile: "date_clean_ready.csv"},
}

// ResolveFolder scans rawDir and returns the first subfolder whose name
// starts with any of the prefixes, case-insensitively. Prefix order wins
// over directory order.
func ResolveFolder(rawDir string, prefixes []string) (string, error) {
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return "", fmt.Errorf("reading raw directory %s: %w", rawDir, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	for _, prefix := range prefixes {
		p := strings.ToLower(prefix)
		for _, d := range dirs {
			if strings.HasPrefix(strings.ToLower(d), p) {
				return d, nil
			}
		}
	}
	return "", fmt.Errorf("no folder starting with any of %v in %s (available: %v)", prefixes, rawDir, dirs)
}

// LatestCSV returns the most recently modified *.csv file in dir. Ties
// break on filename to keep the choice deterministic.
func LatestCSV(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading folder %s: %w", dir, err)
	}
	type candidate struct {
		name  string
		mtime int64
	}
	var csvs []candidate
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
		if !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		csvs = append(csvs, candidate{name: e.Name(), mtime: info.ModTime().UnixNano()})
	}
	if len(csvs) == 0 {
		return "", fmt.Errorf("no CSV files in %s (available files: %v)", dir, files)
	}
	sort.Slice(csvs, func(i, j int) bool {
		if csvs[i].mtime != csvs[j].mtime {
			return csvs[i].mtime > csvs[j].mtime
		}
		return csvs[i].name > csvs[j].name
	})
	return filepath.Join(dir, csvs[0].name), nil
}
