package align

import (
	"log/slog"
	"strings"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// NoLegislation stands in for missing legislation inside the combined text.
// It never appears in a stored field.
const NoLegislation = "NO_LEGISLATION"

// CombineReport summarizes one combining pass
type CombineReport struct {
	Combined int
	Excluded int // segments with no transcript
}

// SegmentCombiner builds the composite agenda/legislation/transcript record
// that headline generation reads.
type SegmentCombiner struct {
	logger *slog.Logger
}

// NewSegmentCombiner creates a combiner. A nil logger discards output.
func NewSegmentCombiner(logger *slog.Logger) *SegmentCombiner {
	return &SegmentCombiner{logger: logging.NewComponentLogger(logger, "combine")}
}

// Combine fills Combined for every segment at StageTranscriptMatched that has
// a transcript. Segments never mentioned in the transcript keep Combined
// absent. All of them advance to StageCombined.
func (sc *SegmentCombiner) Combine(m *model.Meeting) CombineReport {
	var report CombineReport

	for i := range m.Segments {
		seg := &m.Segments[i]
		if seg.Stage != model.StageTranscriptMatched {
			continue
		}
		if seg.MatchedTranscript.IsPresent() {
			seg.Combined = model.Some(CombinedText(seg))
			report.Combined++
		} else {
			report.Excluded++
		}
		_ = seg.Advance(model.StageCombined)
	}

	sc.logger.Debug("segments combined",
		logging.FieldMeeting, m.ID.Stem,
		"combined", report.Combined,
		"excluded", report.Excluded)

	return report
}

// CombinedText renders the composite text for one segment
func CombinedText(seg *model.AgendaSegment) string {
	var b strings.Builder
	b.WriteString("**Section of meeting agenda:**\n")
	b.WriteString(seg.RawText)
	b.WriteString("\n\n**Section of meeting legislation:**\n")
	b.WriteString(seg.MatchedLegislation.Or(NoLegislation))
	b.WriteString("\n\n**Section of meeting transcript:**\n")
	b.WriteString(seg.MatchedTranscript.Value)
	return b.String()
}
