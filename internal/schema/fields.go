// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package schema

// FallbackKind enumerates the heuristics applied when no alias matches.
type FallbackKind int

const (
	// FallbackNone leaves the field unresolved and warns.
	FallbackNone FallbackKind = iota

	// FallbackDefaultName silently records the field's conventional name.
	// Downstream must still guard against the column not existing.
	FallbackDefaultName

	// FallbackFirstTextColumn picks the first non-numeric column.
	FallbackFirstTextColumn

	// FallbackFirstNumericColumn picks the first numeric column.
	FallbackFirstNumericColumn

	// FallbackSecondaryAliases retries resolution with a second alias set.
	FallbackSecondaryAliases

	// FallbackNumericNameContains picks the first numeric column whose name
	// contains a substring (case-insensitive).
	FallbackNumericNameContains
)

// Fallback is a tagged variant describing a field's last-resort heuristic.
type Fallback struct {
	Kind      FallbackKind
	Aliases   []string // secondary aliases for FallbackSecondaryAliases
	Substring string   // name fragment for FallbackNumericNameContains
}

// FieldDescriptor declares one canonical field: where it lives, how to find
// it, and what to do when it cannot be found.
type FieldDescriptor struct {
	// Key is the resolution-map key, "{table}.{field}".
	Key string

	// Aliases are accepted spellings, most-preferred first.
	Aliases []string

	// Fallback is applied when no alias matches.
	Fallback Fallback

	// Default is the conventional column name recorded when resolution
	// fails entirely. Empty means "record nothing usable".
	Default string

	// FallbackMsg is the warning template (one %s: the chosen column) when
	// the fallback heuristic fires. Empty means the fallback is silent.
	FallbackMsg string

	// MissingMsg is the warning emitted when aliases and fallback both
	// fail. Empty means failure is silent (DefaultName fields).
	MissingMsg string
}

// TableDescriptor groups the canonical fields of one dataset.
type TableDescriptor struct {
	// Name is the dataset key in the input table set.
	Name string

	// Fields in their fixed processing order.
	Fields []FieldDescriptor
}

// Tables is the full descriptor table, in the fixed processing order:
// content, traffic, geography, dates, subscriptions. Warning wording is
// load-bearing: analysts grep run logs for these exact messages.
var Tables = []TableDescriptor{
	{
		Name: "content",
		Fields: []FieldDescriptor{
			{
				Key:        "content.views",
				Aliases:    []string{"views", "view_count", "views_total", "views_sum"},
				Fallback:   Fallback{Kind: FallbackNone},
				MissingMsg: "content missing a views column (tried: views, view_count, views_total, views_sum)",
			},
			{
				Key:      "content.title",
				Aliases:  []string{"title", "video_title", "video title", "name", "videoname"},
				Fallback: Fallback{Kind: FallbackDefaultName},
				Default:  "title",
			},
			{
				Key:      "content.video_id",
				Aliases:  []string{"video_id", "video id", "content", "content_id", "id", "videoid"},
				Fallback: Fallback{Kind: FallbackDefaultName},
				Default:  "video_id",
			},
			{
				Key:      "content.likes",
				Aliases:  []string{"likes", "like_count", "likes_total"},
				Fallback: Fallback{Kind: FallbackDefaultName},
				Default:  "likes",
			},
			{
				Key: "content.avg_dur",
				Aliases: []string{
					"avg_view_duration",
					"average_view_duration",
					"avg_watch_seconds",
					"avg_view_duration_sec",
					"duration",
				},
				Fallback: Fallback{Kind: FallbackDefaultName},
				Default:  "avg_view_duration",
			},
		},
	},
	{
		Name: "traffic",
		Fields: []FieldDescriptor{
			{
				Key:        "traffic.source",
				Aliases:    []string{"traffic_source", "source", "traffic_source_type"},
				Fallback:   Fallback{Kind: FallbackNone},
				MissingMsg: "traffic missing a source column (tried: traffic_source, source, traffic_source_type)",
			},
			{
				Key:        "traffic.views",
				Aliases:    []string{"views", "view_count"},
				Fallback:   Fallback{Kind: FallbackNone},
				MissingMsg: "traffic missing a views column (tried: views, view_count)",
			},
		},
	},
	{
		Name: "geography",
		Fields: []FieldDescriptor{
			{
				Key: "geo.country",
				Aliases: []string{
					"country",
					"country_name",
					"country_code",
					"geo",
					"location",
					"region",
					"region_name",
					"region_code",
				},
				Fallback:    Fallback{Kind: FallbackFirstTextColumn},
				FallbackMsg: "geography country not found; using first text column: %s",
				MissingMsg:  "geography missing a country-like column (tried: country, country_name, country_code, geo, location, region, region_name, region_code)",
			},
			{
				Key:        "geo.views",
				Aliases:    []string{"views", "view_count"},
				Fallback:   Fallback{Kind: FallbackNone},
				MissingMsg: "geography missing a views column (tried: views, view_count)",
			},
		},
	},
	{
		Name: "dates",
		Fields: []FieldDescriptor{
			{
				Key:         "dates.date",
				Aliases:     []string{"date", "day", "report_date"},
				Fallback:    Fallback{Kind: FallbackSecondaryAliases, Aliases: []string{"dt", "timestamp"}},
				FallbackMsg: "dates date not found; using: %s",
				MissingMsg:  "dates missing a date column (tried: date, day, report_date)",
			},
			{
				Key: "dates.subs",
				Aliases: []string{
					"subs_gained",
					"subscribers_gained",
					"subs_added",
					"subscribers_added",
					"subs",
					"subscribers",
					"net_subscribers",
					"subscribers_net",
				},
				Fallback:    Fallback{Kind: FallbackNumericNameContains, Substring: "sub"},
				FallbackMsg: "dates subscribers-gained not found; using numeric column containing 'sub': %s",
				MissingMsg:  "dates missing a subscribers-gained column (tried multiple variants and heuristics)",
			},
		},
	},
	{
		Name: "subscriptions",
		Fields: []FieldDescriptor{
			{
				Key: "subscriptions.audience",
				Aliases: []string{
					"audience_type",
					"viewer_status",
					"subscription_status",
					"subscriber_status",
					"status",
				},
				Fallback:    Fallback{Kind: FallbackFirstTextColumn},
				FallbackMsg: "subscriptions audience column not found; using first text column: %s",
				MissingMsg:  "subscriptions missing an audience column (tried viewer_status, subscription_status, subscriber_status, status)",
			},
			{
				Key:         "subscriptions.views",
				Aliases:     []string{"views", "view_count", "views_total", "views_sum"},
				Fallback:    Fallback{Kind: FallbackFirstNumericColumn},
				FallbackMsg: "subscriptions views metric not found; using first numeric column: %s",
				MissingMsg:  "subscriptions missing a numeric metric column (tried views variants)",
			},
		},
	},
}

// TableNames returns the dataset names in processing order.
func TableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}
