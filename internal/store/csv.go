package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/extract"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// table is a CSV file read into memory with its header indexed by name
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: missing header", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	t := &table{path: path, columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.columns[name] = i
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("read %s: missing column %q", path, name)
		}
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// get returns the named cell, or "" for short rows
func (t *table) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ReadAgenda reads the ordered agenda_segment column
func ReadAgenda(path string) ([]string, error) {
	t, err := readTable(path, "agenda_segment")
	if err != nil {
		return nil, err
	}
	segments := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		segments = append(segments, t.get(row, "agenda_segment"))
	}
	return segments, nil
}

// ReadLegislation reads item,text,link rows. Item identifiers are normalized
// with extract.ItemKey. Plain text is kept as written; HTML bodies are reduced
// to their visible text.
func ReadLegislation(path string) ([]model.LegislationRecord, error) {
	t, err := readTable(path, "item", "text")
	if err != nil {
		return nil, err
	}
	records := make([]model.LegislationRecord, 0, len(t.rows))
	for i, row := range t.rows {
		text, err := extract.VisibleText(t.get(row, "text"))
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: legislation text: %w", path, i+1, err)
		}
		records = append(records, model.LegislationRecord{
			ItemKey: extract.ItemKey(t.get(row, "item")),
			Text:    text,
			Link:    strings.TrimSpace(t.get(row, "link")),
		})
	}
	return records, nil
}

// ReadTranscript reads agenda_item,transcript rows in file order
func ReadTranscript(path string) ([]model.TranscriptPassage, error) {
	t, err := readTable(path, "agenda_item", "transcript")
	if err != nil {
		return nil, err
	}
	passages := make([]model.TranscriptPassage, 0, len(t.rows))
	for _, row := range t.rows {
		passages = append(passages, model.TranscriptPassage{
			Label: t.get(row, "agenda_item"),
			Text:  t.get(row, "transcript"),
		})
	}
	return passages, nil
}
