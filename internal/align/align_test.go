package align

import (
	"errors"
	"strings"
	"testing"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

func newMeeting(agenda ...string) *model.Meeting {
	return model.NewMeeting(model.MeetingID{Stem: "20250505_council"}, agenda)
}

func TestMatch_ConcatenatesInRecordOrder(t *testing.T) {
	m := newMeeting(
		"Call to order",
		"Ordinance 2025-0101 and Resolution 2025-0202 on zoning",
		"Adjournment",
	)
	records := []model.LegislationRecord{
		{ItemKey: "2025-0101", Text: "ORDINANCE TEXT."},
		{ItemKey: "2025-0202", Text: "RESOLUTION TEXT."},
	}

	report := NewLegislationMatcher(nil).Match(m, records)

	if report.Matches != 2 {
		t.Errorf("expected 2 matches, got %d", report.Matches)
	}
	if got := m.Segments[1].MatchedLegislation; !got.IsPresent() || got.Value != "ORDINANCE TEXT.RESOLUTION TEXT." {
		t.Errorf("expected concatenated legislation, got %+v", got)
	}
	for _, i := range []int{0, 2} {
		if m.Segments[i].MatchedLegislation.IsPresent() {
			t.Errorf("segment %d: expected absent legislation, got %q", i+1, m.Segments[i].MatchedLegislation.Value)
		}
	}
	for _, seg := range m.Segments {
		if seg.Stage != model.StageLegislationMatched {
			t.Errorf("segment %d: expected stage %s, got %s", seg.Ordinal, model.StageLegislationMatched, seg.Stage)
		}
	}
}

func TestMatch_OneRecordManySegments(t *testing.T) {
	m := newMeeting("First reading of 2025-7", "Second reading of 2025-7")
	records := []model.LegislationRecord{{ItemKey: "2025-7", Text: "BILL"}}

	NewLegislationMatcher(nil).Match(m, records)

	for _, seg := range m.Segments {
		if seg.MatchedLegislation.Value != "BILL" {
			t.Errorf("segment %d: expected BILL, got %q", seg.Ordinal, seg.MatchedLegislation.Value)
		}
	}
}

func TestMatch_EmptyKeyNeverMatches(t *testing.T) {
	m := newMeeting("anything at all")
	records := []model.LegislationRecord{{ItemKey: "", Text: "ORPHAN"}}

	report := NewLegislationMatcher(nil).Match(m, records)

	if m.Segments[0].MatchedLegislation.IsPresent() {
		t.Error("empty item key must not match")
	}
	if len(report.Unmatched) != 1 {
		t.Errorf("expected 1 unmatched record, got %d", len(report.Unmatched))
	}
}

func TestMatch_ReapplicationIsNoop(t *testing.T) {
	m := newMeeting("Ordinance 2025-0101")
	records := []model.LegislationRecord{{ItemKey: "2025-0101", Text: "TEXT"}}
	matcher := NewLegislationMatcher(nil)

	matcher.Match(m, records)
	report := matcher.Match(m, records)

	if report.Segments != 0 || report.Matches != 0 {
		t.Errorf("expected empty report on rerun, got %+v", report)
	}
	if m.Segments[0].MatchedLegislation.Value != "TEXT" {
		t.Errorf("expected text not duplicated, got %q", m.Segments[0].MatchedLegislation.Value)
	}
}

func matched(t *testing.T, agenda ...string) *model.Meeting {
	t.Helper()
	m := newMeeting(agenda...)
	NewLegislationMatcher(nil).Match(m, nil)
	return m
}

func TestAlign_SingletonFallback(t *testing.T) {
	m := matched(t, "Public hearing")
	passages := []model.TranscriptPassage{{Label: "Public Hearing on the budget", Text: "spoken words"}}

	report, err := NewTranscriptAligner(nil).Align(m, passages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Singleton {
		t.Error("expected singleton fallback")
	}
	if m.Segments[0].MatchedTranscript.Value != "spoken words" {
		t.Errorf("expected transcript assigned, got %+v", m.Segments[0].MatchedTranscript)
	}
}

func TestAlign_AccumulatesWithSpace(t *testing.T) {
	m := matched(t, "Pledge", "Proclamation", "Budget")
	passages := []model.TranscriptPassage{
		{Label: "Agenda Item 2: Proclamation 2022-1222", Text: "first part"},
		{Label: "Agenda Item 3: Budget", Text: "budget talk"},
		{Label: "Agenda Item 2: Proclamation 2022-1222", Text: "second part"},
	}

	report, err := NewTranscriptAligner(nil).Align(m, passages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Matched != 2 {
		t.Errorf("expected 2 matched segments, got %d", report.Matched)
	}
	if got := m.Segments[1].MatchedTranscript.Value; got != "first part second part" {
		t.Errorf("expected passages joined by a space, got %q", got)
	}
	if m.Segments[0].MatchedTranscript.IsPresent() {
		t.Error("segment 1 should have no transcript")
	}
	for _, seg := range m.Segments {
		if seg.Stage != model.StageTranscriptMatched {
			t.Errorf("segment %d: expected stage %s, got %s", seg.Ordinal, model.StageTranscriptMatched, seg.Stage)
		}
	}
}

func TestAlign_OutOfRangeMutatesNothing(t *testing.T) {
	m := matched(t, "one", "two", "three")
	passages := []model.TranscriptPassage{
		{Label: "Agenda Item 1: one", Text: "valid first"},
		{Label: "Agenda Item 5: nowhere", Text: "stray"},
	}

	_, err := NewTranscriptAligner(nil).Align(m, passages)

	var aerr *model.AlignmentError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AlignmentError, got %v", err)
	}
	if aerr.Ordinal != 5 || aerr.Segments != 3 || aerr.Row != 2 {
		t.Errorf("unexpected error details: %+v", aerr)
	}
	if aerr.File != "20250505_council" {
		t.Errorf("expected file stem in error, got %q", aerr.File)
	}
	for _, seg := range m.Segments {
		if seg.MatchedTranscript.IsPresent() {
			t.Errorf("segment %d mutated: %q", seg.Ordinal, seg.MatchedTranscript.Value)
		}
		if seg.Stage != model.StageLegislationMatched {
			t.Errorf("segment %d: stage changed to %s", seg.Ordinal, seg.Stage)
		}
	}
}

func TestAlign_ZeroOrdinalIsOutOfRange(t *testing.T) {
	m := matched(t, "one", "two")
	passages := []model.TranscriptPassage{{Label: "Agenda Item 0: call", Text: "x"}}

	_, err := NewTranscriptAligner(nil).Align(m, passages)

	var aerr *model.AlignmentError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AlignmentError, got %v", err)
	}
}

func TestAlign_UnparseableLabel(t *testing.T) {
	m := matched(t, "one", "two")
	passages := []model.TranscriptPassage{
		{Label: "Agenda Item 1", Text: "ok"},
		{Label: "Closing remarks", Text: "bye"},
	}

	_, err := NewTranscriptAligner(nil).Align(m, passages)

	var perr *model.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Row != 2 || perr.File != "20250505_council" || perr.Value != "Closing remarks" {
		t.Errorf("unexpected error details: %+v", perr)
	}
	if m.Segments[0].MatchedTranscript.IsPresent() {
		t.Error("no segment should be mutated on parse failure")
	}
}

func TestAlign_RequiresLegislationPass(t *testing.T) {
	m := newMeeting("one")
	if _, err := NewTranscriptAligner(nil).Align(m, nil); err == nil {
		t.Error("expected error when legislation pass has not run")
	}
}

func TestAlign_ReapplicationIsNoop(t *testing.T) {
	m := matched(t, "one", "two")
	passages := []model.TranscriptPassage{{Label: "Agenda Item 2: two", Text: "words"}}
	aligner := NewTranscriptAligner(nil)

	if _, err := aligner.Align(m, passages); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := aligner.Align(m, passages); err != nil {
		t.Fatalf("unexpected error on rerun: %v", err)
	}
	if got := m.Segments[1].MatchedTranscript.Value; got != "words" {
		t.Errorf("expected transcript not duplicated, got %q", got)
	}
}

func TestCombine(t *testing.T) {
	m := matched(t, "Ordinance 12", "Adjournment")
	m.Segments[0].MatchedLegislation = model.Some("BILL TEXT")
	passages := []model.TranscriptPassage{{Label: "Agenda Item 1: Ordinance", Text: "debate"}}
	if _, err := NewTranscriptAligner(nil).Align(m, passages); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := NewSegmentCombiner(nil).Combine(m)

	if report.Combined != 1 || report.Excluded != 1 {
		t.Errorf("expected 1 combined and 1 excluded, got %+v", report)
	}
	want := "**Section of meeting agenda:**\nOrdinance 12\n\n" +
		"**Section of meeting legislation:**\nBILL TEXT\n\n" +
		"**Section of meeting transcript:**\ndebate"
	if got := m.Segments[0].Combined.Value; got != want {
		t.Errorf("unexpected combined text:\n%s", got)
	}
	if m.Segments[1].Combined.IsPresent() {
		t.Error("segment without transcript must stay uncombined")
	}
	for _, seg := range m.Segments {
		if seg.Stage != model.StageCombined {
			t.Errorf("segment %d: expected stage %s, got %s", seg.Ordinal, model.StageCombined, seg.Stage)
		}
	}
}

func TestCombine_PlaceholderOnlyInCompositeText(t *testing.T) {
	m := matched(t, "Proclamation")
	if _, err := NewTranscriptAligner(nil).Align(m, []model.TranscriptPassage{{Label: "x", Text: "spoken"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	NewSegmentCombiner(nil).Combine(m)

	seg := m.Segments[0]
	if !strings.Contains(seg.Combined.Value, "**Section of meeting legislation:**\n"+NoLegislation+"\n") {
		t.Errorf("expected placeholder in combined text, got %q", seg.Combined.Value)
	}
	if seg.MatchedLegislation.IsPresent() {
		t.Error("placeholder must not be stored in the legislation field")
	}
}

func TestCombine_ReapplicationIsNoop(t *testing.T) {
	m := matched(t, "one")
	if _, err := NewTranscriptAligner(nil).Align(m, []model.TranscriptPassage{{Label: "1", Text: "t"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	combiner := NewSegmentCombiner(nil)
	combiner.Combine(m)
	first := m.Segments[0].Combined.Value

	report := combiner.Combine(m)

	if report.Combined != 0 {
		t.Errorf("expected nothing combined on rerun, got %d", report.Combined)
	}
	if m.Segments[0].Combined.Value != first {
		t.Error("combined text changed on rerun")
	}
}
