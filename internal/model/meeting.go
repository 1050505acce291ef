package model

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the compact date format used in file names and windows
const DateLayout = "20060102"

// MeetingID identifies a meeting by date and source. Stem is the shared file
// stem used across the agenda, legislation, transcript and meeting directories.
type MeetingID struct {
	Date   time.Time `json:"-"`
	Source string    `json:"-"`
	Stem   string    `json:"-"`
}

// ParseMeetingID extracts the meeting identity from a file name such as
// "20250505_city-council.csv".
func ParseMeetingID(fileName string) (MeetingID, error) {
	stem := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	datePart, source, _ := strings.Cut(stem, "_")

	date, err := time.Parse(DateLayout, datePart)
	if err != nil {
		return MeetingID{}, fmt.Errorf("meeting file %q: date prefix: %w", fileName, err)
	}

	return MeetingID{Date: date, Source: source, Stem: stem}, nil
}

func (id MeetingID) String() string {
	return id.Stem
}

// Window is an inclusive date range [Start, End]
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow parses two YYYYMMDD dates into a window
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Window{}, fmt.Errorf("window start %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Window{}, fmt.Errorf("window end %q: %w", end, err)
	}
	if e.Before(s) {
		return Window{}, fmt.Errorf("window end %s is before start %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether the date lies inside the window (inclusive)
func (w Window) Contains(date time.Time) bool {
	return !date.Before(w.Start) && !date.After(w.End)
}

// Key returns "YYYYMMDD_YYYYMMDD", the prefix of every per-window artifact
func (w Window) Key() string {
	return w.Start.Format(DateLayout) + "_" + w.End.Format(DateLayout)
}

// AgendaSegment is one topic of a meeting agenda plus everything attached to it
// by later stages.
type AgendaSegment struct {
	Ordinal            int    `json:"ordinal"` // 1-based published agenda order
	Stage              Stage  `json:"stage"`
	RawText            string `json:"segment"`
	MatchedLegislation Text   `json:"matched_legislation"`
	MatchedTranscript  Text   `json:"matched_transcript"`
	Combined           Text   `json:"combined"`
	Headline           Text   `json:"headline"`
	Summary            Text   `json:"summary"`
}

// Advance moves the segment to next, rejecting anything but the single next stage.
func (s *AgendaSegment) Advance(next Stage) error {
	if !s.Stage.CanAdvanceTo(next) {
		return fmt.Errorf("segment %d: illegal stage transition %s -> %s", s.Ordinal, s.Stage, next)
	}
	s.Stage = next
	return nil
}

// Meeting owns the ordered agenda segments of one meeting
type Meeting struct {
	ID       MeetingID
	Segments []AgendaSegment
}

// NewMeeting builds a meeting from agenda texts in published order.
func NewMeeting(id MeetingID, agenda []string) *Meeting {
	segments := make([]AgendaSegment, len(agenda))
	for i, text := range agenda {
		segments[i] = AgendaSegment{
			Ordinal: i + 1,
			Stage:   StageSegmented,
			RawText: text,
		}
	}
	return &Meeting{ID: id, Segments: segments}
}

// MinStage returns the least advanced stage among the segments.
// An empty meeting reports StageSegmented.
func (m *Meeting) MinStage() Stage {
	if len(m.Segments) == 0 {
		return StageSegmented
	}
	min := m.Segments[0].Stage
	for _, seg := range m.Segments[1:] {
		if seg.Stage < min {
			min = seg.Stage
		}
	}
	return min
}

// LegislationRecord is one bill/ordinance/resolution row linked to a meeting
type LegislationRecord struct {
	ItemKey string // identifier with letters and whitespace stripped
	Text    string
	Link    string
}

// TranscriptPassage is a span of transcript attributed to an agenda item by an
// external labeler.
type TranscriptPassage struct {
	Label string // raw label, e.g. "Agenda Item 4: Proclamation 2022-1222"
	Text  string
}

// ClaimedOrdinal parses the agenda ordinal out of the label: the last word
// before the first colon. "Agenda Item 4: Proclamation" claims ordinal 4.
func (p TranscriptPassage) ClaimedOrdinal() (int, error) {
	head, _, _ := strings.Cut(p.Label, ":")
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return 0, &ParseError{Value: p.Label, Err: errEmptyLabel}
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, &ParseError{Value: p.Label, Err: err}
	}
	return n, nil
}
