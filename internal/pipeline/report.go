package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/metrics"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/publish"
)

// TopK is one entry of a top-k report
type TopK struct {
	Rank     int
	Label    string
	Headline string
	Summary  string
}

// TopHeadlines reads the window's ranking and label map and returns the k
// best headlines with their summaries. k must not exceed the ranking size.
func (p *Pipeline) TopHeadlines(w model.Window, k int) ([]TopK, error) {
	if k <= 0 {
		return nil, fmt.Errorf("report: k must be positive, got %d", k)
	}
	rows, err := p.store.ReadRanking(w)
	if err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	if k > len(rows) {
		return nil, fmt.Errorf("report: k=%d exceeds the %d ranked headlines in window %s", k, len(rows), w.Key())
	}
	labels, err := p.store.ReadLabels(w)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}

	top := make([]TopK, 0, k)
	for _, row := range rows[:k] {
		headline, ok := labels.LabelsToHeadlines[row.Label]
		if !ok {
			return nil, fmt.Errorf("report: label %s missing from label map", row.Label)
		}
		summaryLabel := "S" + strings.TrimPrefix(row.Label, "H")
		summary, ok := labels.LabelsToSummaries[summaryLabel]
		if !ok {
			return nil, fmt.Errorf("report: label %s missing from label map", summaryLabel)
		}
		top = append(top, TopK{Rank: row.Rank, Label: row.Label, Headline: headline, Summary: summary})
	}
	return top, nil
}

// FormatReport renders top-k entries as numbered headline/summary pairs
func FormatReport(top []TopK) string {
	lines := make([]string, 0, len(top)*3)
	for i, t := range top {
		lines = append(lines,
			fmt.Sprintf("Headline %d: %s", i+1, t.Headline),
			fmt.Sprintf("Summary %d: %s", i+1, t.Summary),
			"")
	}
	return strings.Join(lines, "\n")
}

// Report writes <start>_<end>_final_<k>.txt for the window and returns its path
func (p *Pipeline) Report(w model.Window, k int) (string, error) {
	start := time.Now()
	top, err := p.TopHeadlines(w, k)
	if err != nil {
		return "", err
	}
	path, err := p.store.WriteReport(w, k, FormatReport(top))
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	p.metrics.ObserveStageDuration(metrics.StageReport, time.Since(start).Seconds())
	p.logger.Info("report written", logging.FieldWindow, w.Key(), "k", k, "path", path)
	return path, nil
}

// Publish uploads the window's ranking, label map and reports
func (p *Pipeline) Publish(ctx context.Context, w model.Window, pub *publish.Publisher) ([]publish.Upload, error) {
	start := time.Now()
	files := []string{p.store.RankingPath(w), p.store.LabelsPath(w)}
	reports, err := filepath.Glob(filepath.Join(p.store.Paths().ReportDir, w.Key()+"_final_*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	files = append(files, reports...)

	uploads, err := pub.PublishFiles(ctx, w, files)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusFailure
	}
	p.metrics.AddSegments(metrics.StagePublish, status, len(uploads))
	p.metrics.ObserveStageDuration(metrics.StagePublish, time.Since(start).Seconds())
	if err != nil {
		return uploads, err
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("publish: no artifacts for window %s", w.Key())
	}
	p.logger.Info("window published", logging.FieldWindow, w.Key(), "objects", len(uploads))
	return uploads, nil
}
