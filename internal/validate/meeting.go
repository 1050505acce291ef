package validate

import (
	"fmt"
	"strings"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Issue is one inconsistency found in a meeting record
type Issue struct {
	Ordinal int // 0 for meeting-level issues
	Field   string
	Message string
}

func (i Issue) String() string {
	if i.Ordinal == 0 {
		return fmt.Sprintf("%s: %s", i.Field, i.Message)
	}
	return fmt.Sprintf("segment %d %s: %s", i.Ordinal, i.Field, i.Message)
}

// Error collects every issue found in one meeting record
type Error struct {
	Meeting string
	Issues  []Issue
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid meeting record %s: %s", e.Meeting, strings.Join(parts, "; "))
}

// Meeting checks that a meeting record is internally consistent:
//   - ordinals run 1..N in order
//   - every stage is a known stage
//   - a field is only filled once the pass that writes it has been applied
//   - combined text exists only alongside a matched transcript
//   - headlined rows carry a headline and summary
//
// It returns nil or an *Error listing every issue.
func Meeting(m *model.Meeting) error {
	var issues []Issue

	for i, seg := range m.Segments {
		if seg.Ordinal != i+1 {
			issues = append(issues, Issue{
				Ordinal: seg.Ordinal,
				Field:   "ordinal",
				Message: fmt.Sprintf("expected %d at position %d", i+1, i),
			})
		}
		issues = append(issues, checkSegment(seg)...)
	}

	if len(issues) == 0 {
		return nil
	}
	return &Error{Meeting: m.ID.Stem, Issues: issues}
}

func checkSegment(seg model.AgendaSegment) []Issue {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Ordinal: seg.Ordinal, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if seg.Stage < model.StageSegmented || seg.Stage > model.StageRanked {
		add("stage", "unknown stage %d", int(seg.Stage))
		return issues
	}

	if seg.MatchedLegislation.Present && seg.Stage < model.StageLegislationMatched {
		add("matched_legislation", "set before legislation matching (stage %s)", seg.Stage)
	}
	if seg.MatchedTranscript.Present && seg.Stage < model.StageTranscriptMatched {
		add("matched_transcript", "set before transcript alignment (stage %s)", seg.Stage)
	}
	if seg.Combined.Present {
		if seg.Stage < model.StageCombined {
			add("combined", "set before combining (stage %s)", seg.Stage)
		}
		if !seg.MatchedTranscript.Present {
			add("combined", "present without a matched transcript")
		}
	}

	if seg.Stage >= model.StageHeadlined {
		if !seg.Combined.Present {
			add("stage", "%s without combined text", seg.Stage)
		}
		if !seg.Headline.Present || strings.TrimSpace(seg.Headline.Value) == "" {
			add("headline", "missing at stage %s", seg.Stage)
		}
		if !seg.Summary.Present {
			add("summary", "missing at stage %s", seg.Stage)
		}
	} else {
		if seg.Headline.Present {
			add("headline", "set before generation (stage %s)", seg.Stage)
		}
		if seg.Summary.Present {
			add("summary", "set before generation (stage %s)", seg.Stage)
		}
	}

	return issues
}

// AtLeast checks that every segment has reached stage. Pipeline steps call it
// on their inputs so a step never runs over records a prior step skipped.
func AtLeast(m *model.Meeting, stage model.Stage) error {
	for _, seg := range m.Segments {
		if seg.Stage < stage {
			return fmt.Errorf("meeting %s segment %d: stage %s, need %s", m.ID.Stem, seg.Ordinal, seg.Stage, stage)
		}
	}
	return nil
}
