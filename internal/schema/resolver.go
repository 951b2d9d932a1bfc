// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package schema resolves the heterogeneous column names of YouTube Studio
// CSV exports onto the canonical logical schema the rest of the pipeline
// depends on.
//
// Exports rename, reorder and restyle columns between runs ("views",
// "view_count", "Views total", ...). Rather than hardcoding renames, every
// canonical field carries an ordered alias list and an optional fallback
// heuristic; Validate walks the descriptor table, resolves what it can and
// reports the rest as human-readable warnings. Resolution never fails hard:
// a schema shortfall degrades to an unresolved field, and the pipeline
// continues with partial output.
//
// The package is pure: no I/O, no shared state, a fresh resolution map and
// warning list per call.
package schema

import "strings"

// Normalize reduces a column name to lowercase ASCII letters and digits for
// comparison. Two raw names with equal normalized forms refer to the same
// field.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// columnSet is the normalized view of a table's column names: insertion
// order preserved, first occurrence winning on normalization collisions.
type columnSet struct {
	keys []string          // normalized names in column order
	orig map[string]string // normalized name -> first original name
}

func newColumnSet(columns []string) columnSet {
	cs := columnSet{orig: make(map[string]string, len(columns))}
	for _, col := range columns {
		key := Normalize(col)
		if _, seen := cs.orig[key]; seen {
			continue
		}
		cs.keys = append(cs.keys, key)
		cs.orig[key] = col
	}
	return cs
}

// minSubstringLen is the minimum normalized candidate length for the
// substring pass. Shorter candidates ("id", "dt") match far too much.
const minSubstringLen = 3

// Table is the minimal view of tabular input the resolver needs. It is
// satisfied by *frame.Frame.
type Table interface {
	// Columns returns column names in declaration order.
	Columns() []string
	// Empty reports whether the table has no rows or no columns.
	Empty() bool
}

// Resolve returns the first column of t matching the candidate aliases,
// most-preferred first. Two passes, first success wins:
//
//  1. Exact: the candidate's normalized form equals a column's normalized
//     form.
//  2. Substring: for candidates of normalized length >= 3, the candidate's
//     normalized form contains or is contained by a column's normalized
//     form, columns scanned in declaration order.
//
// An empty table or empty candidate list resolves to nothing; that is a
// normal outcome, not an error. Resolve is a pure function of the table's
// column list and the candidates.
func Resolve(t Table, candidates []string) (string, bool) {
	if t == nil || t.Empty() {
		return "", false
	}

	cs := newColumnSet(t.Columns())

	for _, cand := range candidates {
		if col, ok := cs.orig[Normalize(cand)]; ok {
			return col, true
		}
	}

	for _, cand := range candidates {
		norm := Normalize(cand)
		if len(norm) < minSubstringLen {
			continue
		}
		for _, key := range cs.keys {
			if strings.Contains(key, norm) || strings.Contains(norm, key) {
				return cs.orig[key], true
			}
		}
	}

	return "", false
}
