package align

import (
	"log/slog"
	"strings"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// MatchReport summarizes one legislation matching pass
type MatchReport struct {
	Segments  int      // segments the pass was applied to
	Matches   int      // (record, segment) pairs accumulated
	Unmatched []string // item keys that matched no segment
}

// LegislationMatcher attaches legislation text to agenda segments whose raw
// text mentions the record's item key.
type LegislationMatcher struct {
	logger *slog.Logger
}

// NewLegislationMatcher creates a matcher. A nil logger discards output.
func NewLegislationMatcher(logger *slog.Logger) *LegislationMatcher {
	return &LegislationMatcher{logger: logging.NewComponentLogger(logger, "legislation")}
}

// Match accumulates every record's text onto every segment that contains its
// item key, in record order with no separator. Only segments still at
// StageSegmented take part; they all advance to StageLegislationMatched,
// matched or not. Running Match again on the same meeting changes nothing.
func (lm *LegislationMatcher) Match(m *model.Meeting, records []model.LegislationRecord) MatchReport {
	var report MatchReport

	pending := make([]int, 0, len(m.Segments))
	for i := range m.Segments {
		if m.Segments[i].Stage == model.StageSegmented {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		lm.logger.Debug("legislation already matched", logging.FieldMeeting, m.ID.Stem)
		return report
	}

	for _, rec := range records {
		hit := false
		if rec.ItemKey != "" {
			for _, i := range pending {
				seg := &m.Segments[i]
				if strings.Contains(seg.RawText, rec.ItemKey) {
					seg.MatchedLegislation = seg.MatchedLegislation.Accumulate(rec.Text, "")
					report.Matches++
					hit = true
				}
			}
		}
		if !hit {
			report.Unmatched = append(report.Unmatched, rec.ItemKey)
		}
	}

	for _, i := range pending {
		// pending segments are at StageSegmented, so this cannot fail
		_ = m.Segments[i].Advance(model.StageLegislationMatched)
	}
	report.Segments = len(pending)

	lm.logger.Debug("legislation matched",
		logging.FieldMeeting, m.ID.Stem,
		"segments", report.Segments,
		"matches", report.Matches,
		"unmatched", len(report.Unmatched))

	return report
}
