package tournament

import (
	"fmt"
	"log/slog"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// BuildLabelMap assigns H<k>/S<k> labels in discovery order and returns the
// deduplicated pool. A headline whose text was already seen collapses into
// the first occurrence; each collapsed duplicate is logged with its source.
func BuildLabelMap(headlines []model.Headline, logger *slog.Logger) (model.LabelMap, []model.Headline) {
	if logger == nil {
		logger = logging.NewNop()
	}

	lm := model.LabelMap{
		HeadlinesToLabels: make(map[string]string, len(headlines)),
		LabelsToHeadlines: make(map[string]string, len(headlines)),
		SummariesToLabels: make(map[string]string, len(headlines)),
		LabelsToSummaries: make(map[string]string, len(headlines)),
	}
	pool := make([]model.Headline, 0, len(headlines))

	for _, h := range headlines {
		if first, dup := lm.HeadlinesToLabels[h.Text]; dup {
			logger.Warn("duplicate headline collapsed",
				"label", first,
				logging.FieldMeeting, h.Meeting,
				"ordinal", h.Ordinal,
				"headline", h.Text)
			continue
		}

		k := len(pool) + 1
		hl := fmt.Sprintf("H%d", k)
		sl := fmt.Sprintf("S%d", k)

		lm.HeadlinesToLabels[h.Text] = hl
		lm.LabelsToHeadlines[hl] = h.Text
		lm.LabelsToSummaries[sl] = h.Summary
		// a summary shared by several headlines maps back to its first label
		if _, seen := lm.SummariesToLabels[h.Summary]; !seen {
			lm.SummariesToLabels[h.Summary] = sl
		}

		h.Label = hl
		pool = append(pool, h)
	}

	return lm, pool
}
