// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package schema

import (
	"fmt"
	"strings"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/frame"
)

// Resolution maps descriptor keys ("content.views") to the actual column
// name chosen in the input data. A missing or unresolvable field maps to
// its conventional default, or "" when no sensible default exists.
type Resolution map[string]string

// Validate resolves every canonical field against the given table set and
// returns the resolution together with human-readable warnings. Tables are
// keyed by dataset name (content, traffic, geography, dates, subscriptions).
// A nil table yields one "missing dataframe" warning and default-fills the
// table's fields. Validate never fails: downstream consumers work with
// whatever resolved.
func Validate(tables map[string]*frame.Frame) (Resolution, []string) {
	res := make(Resolution, 13)
	var warnings []string

	for _, td := range Tables {
		f := tables[td.Name]
		if f == nil {
			warnings = append(warnings, "missing dataframe: "+td.Name)
			for _, fd := range td.Fields {
				res[fd.Key] = fd.Default
			}
			continue
		}
		for _, fd := range td.Fields {
			col, warn := resolveField(f, fd)
			res[fd.Key] = col
			if warn != "" {
				warnings = append(warnings, warn)
			}
		}
	}
	return res, warnings
}

// resolveField applies the descriptor's aliases, then its fallback, and
// finally its default. The returned warning is empty when nothing notable
// happened.
func resolveField(f *frame.Frame, fd FieldDescriptor) (string, string) {
	if col, ok := Resolve(f, fd.Aliases); ok {
		return col, ""
	}

	switch fd.Fallback.Kind {
	case FallbackDefaultName:
		return fd.Default, ""

	case FallbackFirstTextColumn:
		if col, ok := firstColumnOfKind(f, frame.KindText); ok {
			return col, fmt.Sprintf(fd.FallbackMsg, col)
		}

	case FallbackFirstNumericColumn:
		if col, ok := firstColumnOfKind(f, frame.KindNumeric); ok {
			return col, fmt.Sprintf(fd.FallbackMsg, col)
		}

	case FallbackSecondaryAliases:
		if col, ok := Resolve(f, fd.Fallback.Aliases); ok {
			return col, fmt.Sprintf(fd.FallbackMsg, col)
		}

	case FallbackNumericNameContains:
		if col, ok := firstNumericNameContains(f, fd.Fallback.Substring); ok {
			return col, fmt.Sprintf(fd.FallbackMsg, col)
		}
	}

	return fd.Default, fd.MissingMsg
}

func firstColumnOfKind(f *frame.Frame, kind frame.Kind) (string, bool) {
	for _, c := range f.ColumnList() {
		if c.Kind() == kind {
			return c.Name, true
		}
	}
	return "", false
}

func firstNumericNameContains(f *frame.Frame, sub string) (string, bool) {
	for _, c := range f.ColumnList() {
		if strings.Contains(strings.ToLower(c.Name), sub) && c.Kind() == frame.KindNumeric {
			return c.Name, true
		}
	}
	return "", false
}
