// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package validation

import (
	"errors"
	"strings"
	"testing"
)

type limitQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

type pathsInput struct {
	DataRaw string `validate:"required"`
	Reports string `validate:"required"`
}

func TestStructValid(t *testing.T) {
	if err := Struct(&limitQuery{Limit: 10}); err != nil {
		t.Fatalf("Struct() = %v, want nil", err)
	}
}

func TestStructRangeErrors(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  string
	}{
		{"below minimum", 0, "limit must be at least 1"},
		{"above maximum", 101, "limit must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&limitQuery{Limit: tt.limit})
			if err == nil {
				t.Fatalf("Struct(limit=%d) = nil, want error", tt.limit)
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStructCollectsAllFields(t *testing.T) {
	err := Struct(&pathsInput{})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}

	var serr *StructError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StructError", err)
	}
	if len(serr.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(serr.Fields))
	}
	if serr.Fields[0].Tag != "required" {
		t.Errorf("Fields[0].Tag = %q, want %q", serr.Fields[0].Tag, "required")
	}
	if !strings.Contains(err.Error(), "dataraw is required") {
		t.Errorf("Error() = %q, want it to mention dataraw", err.Error())
	}
}

func TestValidatorSingleton(t *testing.T) {
	if Validator() != Validator() {
		t.Error("Validator() returned different instances")
	}
}
