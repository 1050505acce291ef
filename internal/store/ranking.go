package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

var rankingHeader = []string{"rank", "label", "headline", "mean", "deviation", "ci95"}

// RankingPath is the ranking CSV for a window
func (s *Store) RankingPath(w model.Window) string {
	return filepath.Join(s.paths.RankingDir, w.Key()+"_ranking.csv")
}

// LabelsPath is the label map JSON for a window
func (s *Store) LabelsPath(w model.Window) string {
	return filepath.Join(s.paths.RankingDir, w.Key()+"_labels.json")
}

// ReportPath is the top-k text report for a window
func (s *Store) ReportPath(w model.Window, k int) string {
	return filepath.Join(s.paths.ReportDir, fmt.Sprintf("%s_final_%d.txt", w.Key(), k))
}

// WriteRanking writes the ranking CSV with two-decimal scores
func (s *Store) WriteRanking(w model.Window, rows []model.RankedHeadline) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(rankingHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.Label,
			r.Headline,
			strconv.FormatFloat(r.Mean, 'f', 2, 64),
			strconv.FormatFloat(r.Deviation, 'f', 2, 64),
			strconv.FormatFloat(r.CI95, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("encode ranking: %w", err)
	}
	return WriteFileAtomic(s.RankingPath(w), buf.Bytes(), 0o644)
}

// ReadRanking reads a ranking CSV back in rank order
func (s *Store) ReadRanking(w model.Window) ([]model.RankedHeadline, error) {
	t, err := readTable(s.RankingPath(w), rankingHeader...)
	if err != nil {
		return nil, err
	}

	rows := make([]model.RankedHeadline, 0, len(t.rows))
	for i, row := range t.rows {
		r := model.RankedHeadline{
			Label:    t.get(row, "label"),
			Headline: t.get(row, "headline"),
		}
		var perr error
		parse := func(col string) float64 {
			v, err := strconv.ParseFloat(t.get(row, col), 64)
			if err != nil && perr == nil {
				perr = err
			}
			return v
		}
		rank, err := strconv.Atoi(t.get(row, "rank"))
		if err != nil {
			perr = err
		}
		r.Rank = rank
		r.Mean = parse("mean")
		r.Deviation = parse("deviation")
		r.CI95 = parse("ci95")
		if perr != nil {
			return nil, fmt.Errorf("read %s row %d: %w", t.path, i+1, perr)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// WriteLabels writes the label map JSON
func (s *Store) WriteLabels(w model.Window, labels model.LabelMap) error {
	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	return WriteFileAtomic(s.LabelsPath(w), append(data, '\n'), 0o644)
}

// ReadLabels reads the label map JSON
func (s *Store) ReadLabels(w model.Window) (model.LabelMap, error) {
	var labels model.LabelMap
	data, err := os.ReadFile(s.LabelsPath(w))
	if err != nil {
		return labels, err
	}
	if err := json.Unmarshal(data, &labels); err != nil {
		return labels, fmt.Errorf("decode %s: %w", s.LabelsPath(w), err)
	}
	return labels, nil
}

// WriteReport writes a text report atomically
func (s *Store) WriteReport(w model.Window, k int, text string) (string, error) {
	path := s.ReportPath(w, k)
	return path, WriteFileAtomic(path, []byte(text), 0o644)
}
