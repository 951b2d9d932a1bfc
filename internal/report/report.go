// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/config"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/database"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/logging"
	"github.com/keshavgb/ai-talks-campaign-analysis/internal/models"
)

// Report filenames in the reports directory.
const (
	FileKPIs         = "kpis.csv"
	FileSubBreakdown = "subscriber_breakdown.csv"
	FileDictionary   = "data_dictionary.csv"
	FileExecSummary  = "executive_summary.html"
)

// Writer produces the tabular reports and the executive summary.
type Writer struct {
	db         *database.DB
	reportsDir string
	figuresDir string
	log        zerolog.Logger
}

// NewWriter returns a Writer placing reports in reportsDir and reading
// figures from figuresDir.
func NewWriter(db *database.DB, paths config.PathsConfig) *Writer {
	return &Writer{
		db:         db,
		reportsDir: paths.Reports,
		figuresDir: paths.Figures,
		log:        logging.Component("report"),
	}
}

// WriteAll produces every tabular report and the executive summary.
func (w *Writer) WriteAll(ctx context.Context) error {
	if err := os.MkdirAll(w.reportsDir, 0o750); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}
	if err := w.WriteKPIs(ctx); err != nil {
		return err
	}
	if err := w.WriteSubscriberBreakdown(ctx); err != nil {
		return err
	}
	if err := w.WriteDataDictionary(ctx); err != nil {
		return err
	}
	return w.WriteExecutiveSummary(ctx)
}

// WriteKPIs exports the headline metrics as a single-row CSV.
func (w *Writer) WriteKPIs(ctx context.Context) error {
	kpis, err := w.db.KPISummary(ctx)
	if err != nil {
		return err
	}
	record := []string{
		strconv.FormatInt(kpis.TotalVideos, 10),
		strconv.FormatInt(kpis.TotalViews, 10),
		strconv.FormatInt(kpis.TotalLikes, 10),
		formatFloat(kpis.AvgViewDurationSec),
		formatFloat(kpis.SubsTotalGain),
		"",
	}
	// An empty cell means the share could not be computed.
	if kpis.SubscribedViewShare != nil {
		record[5] = formatFloat(*kpis.SubscribedViewShare)
	}
	header := []string{"total_videos", "total_views", "total_likes", "avg_view_duration_sec", "subs_total_gain", "subscribed_view_share"}
	return w.writeCSV(FileKPIs, header, [][]string{record})
}

// WriteSubscriberBreakdown exports views per subscription status.
func (w *Writer) WriteSubscriberBreakdown(ctx context.Context) error {
	segments, err := w.db.AudienceBreakdown(ctx)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		w.log.Debug().Msg("No subscription data, skipping breakdown report")
		return nil
	}
	rows := make([][]string, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, []string{s.AudienceType, strconv.FormatInt(s.Views, 10)})
	}
	return w.writeCSV(FileSubBreakdown, []string{"audience_type", "views"}, rows)
}

// WriteDataDictionary exports every table's columns and types.
func (w *Writer) WriteDataDictionary(ctx context.Context) error {
	entries, err := w.db.DataDictionary(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Table, e.Column, e.Type, e.Description})
	}
	return w.writeCSV(FileDictionary, []string{"table", "column", "type", "description"}, rows)
}

// summaryData feeds the executive summary template.
type summaryData struct {
	GeneratedAt string
	KPIs        *models.KPISummary
	SubShare    string
	TopVideos   []models.VideoStat
	Figures     []summaryFigure
}

type summaryFigure struct {
	Title string
	Path  string
}

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Talks Campaign Executive Summary</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f4f4f4; }
img { max-width: 100%; margin: 1rem 0; }
footer { margin-top: 2rem; color: #888; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>AI Talks Campaign Executive Summary</h1>

<h2>Key Performance Indicators</h2>
<table>
<tr><th>Metric</th><th>Value</th></tr>
<tr><td>Total videos</td><td>{{.KPIs.TotalVideos}}</td></tr>
<tr><td>Total views</td><td>{{.KPIs.TotalViews}}</td></tr>
<tr><td>Total likes</td><td>{{.KPIs.TotalLikes}}</td></tr>
<tr><td>Avg view duration (sec)</td><td>{{printf "%.1f" .KPIs.AvgViewDurationSec}}</td></tr>
<tr><td>Subscribers gained</td><td>{{printf "%.0f" .KPIs.SubsTotalGain}}</td></tr>
<tr><td>Subscribed view share</td><td>{{.SubShare}}</td></tr>
</table>

{{if .TopVideos}}
<h2>Top Videos</h2>
<table>
<tr><th>Title</th><th>Views</th><th>Likes</th></tr>
{{range .TopVideos}}<tr><td>{{.Title}}</td><td>{{.Views}}</td><td>{{.Likes}}</td></tr>
{{end}}</table>
{{end}}

{{if .Figures}}
<h2>Key Visuals</h2>
{{range .Figures}}<figure>
<img src="{{.Path}}" alt="{{.Title}}">
<figcaption>{{.Title}}</figcaption>
</figure>
{{end}}{{end}}

<footer>Generated {{.GeneratedAt}}</footer>
</body>
</html>
`))

// WriteExecutiveSummary renders the HTML summary referencing whichever
// figures exist on disk.
func (w *Writer) WriteExecutiveSummary(ctx context.Context) error {
	kpis, err := w.db.KPISummary(ctx)
	if err != nil {
		return err
	}
	top, err := w.db.TopVideos(ctx, 5)
	if err != nil {
		return err
	}

	figures := []summaryFigure{
		{Title: "Top Videos by Views", Path: FigTopVideos},
		{Title: "Traffic Sources by Views", Path: FigTrafficSources},
		{Title: "Top Countries by Views", Path: FigTopCountries},
		{Title: "Subscribers Gained Over Time", Path: FigSubsOverTime},
		{Title: "Subscribed vs Non-Subscribed Audience", Path: FigSubBreakdown},
	}
	var present []summaryFigure
	for _, fig := range figures {
		if _, err := os.Stat(filepath.Join(w.figuresDir, fig.Path)); err == nil {
			// Reports and figures are sibling directories.
			fig.Path = "../figures/" + fig.Path
			present = append(present, fig)
		}
	}

	subShare := "n/a"
	if kpis.SubscribedViewShare != nil {
		subShare = fmt.Sprintf("%.1f%%", *kpis.SubscribedViewShare*100)
	}
	data := summaryData{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		KPIs:        kpis,
		SubShare:    subShare,
		TopVideos:   top,
		Figures:     present,
	}

	path := filepath.Join(w.reportsDir, FileExecSummary)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := summaryTemplate.Execute(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendering executive summary: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	w.log.Info().Str("report", FileExecSummary).Int("figures", len(present)).Msg("Wrote executive summary")
	return nil
}

func (w *Writer) writeCSV(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.reportsDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	w.log.Info().Str("report", filename).Int("rows", len(rows)).Msg("Wrote report")
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
