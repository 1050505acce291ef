package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestText_Accumulate(t *testing.T) {
	var txt Text
	if txt.IsPresent() {
		t.Fatal("expected zero value to be absent")
	}

	txt = txt.Accumulate("first", " ")
	if !txt.IsPresent() || txt.Value != "first" {
		t.Errorf("expected sentinel replaced with %q, got %+v", "first", txt)
	}

	txt = txt.Accumulate("second", " ")
	if txt.Value != "first second" {
		t.Errorf("expected %q, got %q", "first second", txt.Value)
	}

	joined := None().Accumulate("a", "").Accumulate("b", "")
	if joined.Value != "ab" {
		t.Errorf("expected %q, got %q", "ab", joined.Value)
	}
}

func TestText_MarkerTextIsStillPresent(t *testing.T) {
	txt := Some("NO_LEGISLATION")
	if !txt.IsPresent() {
		t.Error("real text equal to a legacy marker must stay present")
	}
	if got := None().Or("NO_LEGISLATION"); got != "NO_LEGISLATION" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestText_JSON(t *testing.T) {
	type row struct {
		A Text `json:"a"`
		B Text `json:"b"`
	}

	data, err := json.Marshal(row{A: Some("x"), B: None()})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"a":"x","b":null}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var decoded row
	if err := json.Unmarshal([]byte(`{"a":"","b":null}`), &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.A.IsPresent() || decoded.A.Value != "" {
		t.Errorf("expected empty string to decode as present, got %+v", decoded.A)
	}
	if decoded.B.IsPresent() {
		t.Errorf("expected null to decode as absent, got %+v", decoded.B)
	}
}

func TestStage_Transitions(t *testing.T) {
	tests := []struct {
		from, to Stage
		ok       bool
	}{
		{StageSegmented, StageLegislationMatched, true},
		{StageLegislationMatched, StageTranscriptMatched, true},
		{StageTranscriptMatched, StageCombined, true},
		{StageCombined, StageHeadlined, true},
		{StageHeadlined, StageRanked, true},
		{StageSegmented, StageTranscriptMatched, false},
		{StageCombined, StageSegmented, false},
		{StageRanked, StageRanked + 1, false},
		{StageHeadlined, StageHeadlined, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanAdvanceTo(tt.to); got != tt.ok {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.ok, got)
		}
	}
}

func TestStage_TextRoundTrip(t *testing.T) {
	for s := StageSegmented; s <= StageRanked; s++ {
		data, err := s.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", s, err)
		}
		var back Stage
		if err := back.UnmarshalText(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != s {
			t.Errorf("expected %s, got %s", s, back)
		}
	}

	var s Stage
	if err := s.UnmarshalText([]byte("published")); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestAgendaSegment_Advance(t *testing.T) {
	seg := AgendaSegment{Ordinal: 1}
	if err := seg.Advance(StageLegislationMatched); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := seg.Advance(StageCombined); err == nil {
		t.Error("expected error when skipping a stage")
	}
	if seg.Stage != StageLegislationMatched {
		t.Errorf("failed transition must not change the stage, got %s", seg.Stage)
	}
}

func TestTranscriptPassage_ClaimedOrdinal(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"Agenda Item 4: Proclamation 2022-1222", 4, true},
		{"Agenda Item 12", 12, true},
		{"7", 7, true},
		{"  Agenda Item 2 : Pledge", 2, true},
		{"Agenda Item four: Budget", 0, false},
		{"", 0, false},
		{": no number", 0, false},
	}

	for _, tt := range tests {
		got, err := TranscriptPassage{Label: tt.label}.ClaimedOrdinal()
		if tt.ok {
			if err != nil {
				t.Errorf("%q: unexpected error: %v", tt.label, err)
			} else if got != tt.want {
				t.Errorf("%q: expected %d, got %d", tt.label, tt.want, got)
			}
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: expected ParseError, got %v", tt.label, err)
		} else if perr.Value != tt.label {
			t.Errorf("%q: expected raw value in error, got %q", tt.label, perr.Value)
		}
	}
}

func TestParseMeetingID(t *testing.T) {
	id, err := ParseMeetingID("/data/agenda_segments/20250505_city-council.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Stem != "20250505_city-council" {
		t.Errorf("unexpected stem %q", id.Stem)
	}
	if id.Source != "city-council" {
		t.Errorf("unexpected source %q", id.Source)
	}
	if !id.Date.Equal(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", id.Date)
	}

	if _, err := ParseMeetingID("notes.csv"); err == nil {
		t.Error("expected error for file without date prefix")
	}
}

func TestWindow(t *testing.T) {
	w, err := ParseWindow("20250505", "20250509")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Key() != "20250505_20250509" {
		t.Errorf("unexpected key %q", w.Key())
	}

	inside := []string{"20250505", "20250507", "20250509"}
	for _, d := range inside {
		date, _ := time.Parse(DateLayout, d)
		if !w.Contains(date) {
			t.Errorf("expected %s inside window", d)
		}
	}
	outside := []string{"20250504", "20250510"}
	for _, d := range outside {
		date, _ := time.Parse(DateLayout, d)
		if w.Contains(date) {
			t.Errorf("expected %s outside window", d)
		}
	}

	if _, err := ParseWindow("20250509", "20250505"); err == nil {
		t.Error("expected error for inverted window")
	}
}

func TestMeeting_MinStage(t *testing.T) {
	m := NewMeeting(MeetingID{Stem: "20250505_x"}, []string{"a", "b"})
	if m.Segments[1].Ordinal != 2 {
		t.Errorf("expected contiguous ordinals, got %d", m.Segments[1].Ordinal)
	}
	m.Segments[0].Stage = StageCombined
	if m.MinStage() != StageSegmented {
		t.Errorf("expected segmented, got %s", m.MinStage())
	}
}
