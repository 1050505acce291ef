package align

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// transcriptSeparator joins passages that land on the same segment
const transcriptSeparator = " "

// AlignReport summarizes one transcript alignment pass
type AlignReport struct {
	Passages  int
	Singleton bool // sole passage assigned to the sole segment without parsing
	Matched   int  // segments that received at least one passage
}

// TranscriptAligner assigns labeled transcript passages to agenda segments
// by the ordinal parsed from each label.
type TranscriptAligner struct {
	logger *slog.Logger
}

// NewTranscriptAligner creates an aligner. A nil logger discards output.
func NewTranscriptAligner(logger *slog.Logger) *TranscriptAligner {
	return &TranscriptAligner{logger: logging.NewComponentLogger(logger, "transcript")}
}

// Align attaches passages to segments. A meeting with exactly one segment and
// one passage is paired directly without reading the label. Otherwise every
// label must parse to an ordinal in [1, len(segments)].
//
// All passages are resolved before anything is written: on error the meeting
// is left exactly as it was. Segments must be at StageLegislationMatched and
// advance to StageTranscriptMatched; a meeting already past that stage is
// left alone.
func (ta *TranscriptAligner) Align(m *model.Meeting, passages []model.TranscriptPassage) (AlignReport, error) {
	report := AlignReport{Passages: len(passages)}

	if len(m.Segments) > 0 && m.MinStage() >= model.StageTranscriptMatched {
		ta.logger.Debug("transcript already aligned", logging.FieldMeeting, m.ID.Stem)
		return AlignReport{}, nil
	}
	for _, seg := range m.Segments {
		if seg.Stage != model.StageLegislationMatched {
			return AlignReport{}, fmt.Errorf("align transcript: meeting %s segment %d: expected stage %s, got %s",
				m.ID.Stem, seg.Ordinal, model.StageLegislationMatched, seg.Stage)
		}
	}

	targets, singleton, err := resolve(m, passages)
	if err != nil {
		return AlignReport{}, err
	}
	report.Singleton = singleton

	touched := make(map[int]bool, len(targets))
	for k, idx := range targets {
		seg := &m.Segments[idx]
		seg.MatchedTranscript = seg.MatchedTranscript.Accumulate(passages[k].Text, transcriptSeparator)
		touched[idx] = true
	}
	report.Matched = len(touched)

	for i := range m.Segments {
		_ = m.Segments[i].Advance(model.StageTranscriptMatched)
	}

	ta.logger.Debug("transcript aligned",
		logging.FieldMeeting, m.ID.Stem,
		"passages", report.Passages,
		"matched", report.Matched,
		"singleton", report.Singleton)

	return report, nil
}

// resolve maps each passage to a segment index without touching the meeting.
func resolve(m *model.Meeting, passages []model.TranscriptPassage) ([]int, bool, error) {
	segments := len(m.Segments)
	if segments == 1 && len(passages) == 1 {
		return []int{0}, true, nil
	}

	targets := make([]int, len(passages))
	for k, p := range passages {
		row := k + 1
		ordinal, err := p.ClaimedOrdinal()
		if err != nil {
			var perr *model.ParseError
			if errors.As(err, &perr) {
				perr.File = m.ID.Stem
				perr.Row = row
			}
			return nil, false, err
		}
		if ordinal < 1 || ordinal > segments {
			return nil, false, &model.AlignmentError{
				File:     m.ID.Stem,
				Row:      row,
				Value:    p.Label,
				Ordinal:  ordinal,
				Segments: segments,
			}
		}
		targets[k] = ordinal - 1
	}
	return targets, false, nil
}
