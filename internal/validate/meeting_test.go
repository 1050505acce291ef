package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

func combinedMeeting() *model.Meeting {
	m := model.NewMeeting(model.MeetingID{Stem: "20250505_council"}, []string{"Agenda Item 1: Budget", "Agenda Item 2: Parks"})
	m.Segments[0].Stage = model.StageCombined
	m.Segments[0].MatchedLegislation = model.Some("Fare ordinance")
	m.Segments[0].MatchedTranscript = model.Some("We vote yes")
	m.Segments[0].Combined = model.Some("combined")
	m.Segments[1].Stage = model.StageCombined
	return m
}

func TestMeeting_Valid(t *testing.T) {
	if err := Meeting(combinedMeeting()); err != nil {
		t.Fatalf("Expected valid meeting, got %v", err)
	}

	m := combinedMeeting()
	m.Segments[0].Stage = model.StageHeadlined
	m.Segments[0].Headline = model.Some("Council raises fares")
	m.Segments[0].Summary = model.Some("- Fares up")
	if err := Meeting(m); err != nil {
		t.Fatalf("Expected valid headlined meeting, got %v", err)
	}

	empty := model.NewMeeting(model.MeetingID{Stem: "20250506_council"}, nil)
	if err := Meeting(empty); err != nil {
		t.Errorf("Expected empty meeting to be valid, got %v", err)
	}
}

func TestMeeting_Issues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *model.Meeting)
		field  string
	}{
		{
			name:   "gap in ordinals",
			mutate: func(m *model.Meeting) { m.Segments[1].Ordinal = 3 },
			field:  "ordinal",
		},
		{
			name: "combined without transcript",
			mutate: func(m *model.Meeting) {
				m.Segments[1].Combined = model.Some("orphan")
			},
			field: "combined",
		},
		{
			name: "transcript before alignment",
			mutate: func(m *model.Meeting) {
				m.Segments[1].Stage = model.StageLegislationMatched
				m.Segments[1].MatchedTranscript = model.Some("early")
			},
			field: "matched_transcript",
		},
		{
			name: "headline before generation",
			mutate: func(m *model.Meeting) {
				m.Segments[0].Headline = model.Some("early")
			},
			field: "headline",
		},
		{
			name: "headlined without headline",
			mutate: func(m *model.Meeting) {
				m.Segments[0].Stage = model.StageHeadlined
				m.Segments[0].Summary = model.Some("s")
			},
			field: "headline",
		},
		{
			name: "headlined without combined",
			mutate: func(m *model.Meeting) {
				m.Segments[1].Stage = model.StageHeadlined
				m.Segments[1].Headline = model.Some("h")
				m.Segments[1].Summary = model.Some("s")
			},
			field: "stage",
		},
		{
			name:   "unknown stage",
			mutate: func(m *model.Meeting) { m.Segments[0].Stage = model.Stage(42) },
			field:  "stage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := combinedMeeting()
			tt.mutate(m)

			err := Meeting(m)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *Error, got %v", err)
			}
			found := false
			for _, issue := range verr.Issues {
				if issue.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected an issue on %s, got %v", tt.field, verr.Issues)
			}
			if !strings.Contains(err.Error(), "20250505_council") {
				t.Errorf("Expected meeting stem in error, got %v", err)
			}
		})
	}
}

func TestAtLeast(t *testing.T) {
	m := combinedMeeting()
	if err := AtLeast(m, model.StageCombined); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := AtLeast(m, model.StageHeadlined); err == nil {
		t.Error("Expected error for segments behind the required stage")
	}
}
