package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("visible", FieldMeeting, "20250505_council")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line at info level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry[FieldMeeting] != "20250505_council" {
		t.Errorf("expected meeting attr, got %v", entry[FieldMeeting])
	}
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestNewComponentLogger_Nil(t *testing.T) {
	logger := NewComponentLogger(nil, "align")
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Info("dropped")
}
