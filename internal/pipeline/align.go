package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/metrics"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/validate"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/worker"
)

// MeetingOutcome is the result of one meeting in a stage
type MeetingOutcome struct {
	Stem     string
	Skipped  bool // already past the stage
	Segments int
	Err      error
}

// AlignSummary reports an alignment pass over a window
type AlignSummary struct {
	Meetings []MeetingOutcome
	Failed   int
}

// alignProcessor adapts the pipeline to worker.MeetingProcessor
type alignProcessor struct {
	p   *Pipeline
	ids map[string]model.MeetingID
	out map[string]*MeetingOutcome
}

func (a *alignProcessor) ProcessMeeting(ctx context.Context, stem string) error {
	outcome := a.out[stem]
	return a.p.alignMeeting(ctx, a.ids[stem], outcome)
}

// AlignWindow matches legislation, aligns transcripts and builds combined
// records for every meeting in the window. Meetings run in parallel; an error
// in one meeting leaves its record unwritten and does not stop the others.
func (p *Pipeline) AlignWindow(ctx context.Context, w model.Window) (*AlignSummary, error) {
	start := time.Now()
	ids, err := p.store.Discover(w)
	if err != nil {
		return nil, fmt.Errorf("discover meetings: %w", err)
	}

	proc := &alignProcessor{
		p:   p,
		ids: make(map[string]model.MeetingID, len(ids)),
		out: make(map[string]*MeetingOutcome, len(ids)),
	}
	stems := make([]string, 0, len(ids))
	for _, id := range ids {
		proc.ids[id.Stem] = id
		proc.out[id.Stem] = &MeetingOutcome{Stem: id.Stem}
		stems = append(stems, id.Stem)
	}

	p.logger.Info("aligning window", logging.FieldWindow, w.Key(), "meetings", len(ids))

	batch := worker.NewBatchProcessor(proc, p.cfg.Concurrency.Workers)
	summary := &AlignSummary{}
	for _, r := range batch.ProcessMeetings(ctx, stems) {
		outcome := proc.out[r.Stem]
		outcome.Err = r.Error
		status := metrics.StatusSuccess
		switch {
		case r.Error != nil:
			summary.Failed++
			status = metrics.StatusFailure
			p.logger.Error("meeting alignment failed", logging.FieldMeeting, r.Stem, "error", r.Error)
		case outcome.Skipped:
			status = metrics.StatusSkipped
		}
		p.metrics.IncMeetings(metrics.StageAlign, status)
		summary.Meetings = append(summary.Meetings, *outcome)
	}

	p.metrics.ObserveStageDuration(metrics.StageAlign, time.Since(start).Seconds())
	return summary, ctx.Err()
}

func (p *Pipeline) alignMeeting(ctx context.Context, id model.MeetingID, outcome *MeetingOutcome) error {
	logger := p.logger.With(logging.FieldMeeting, id.Stem, logging.FieldStage, metrics.StageAlign)

	m, err := p.store.LoadMeeting(id)
	if err != nil {
		return err
	}
	outcome.Segments = len(m.Segments)
	if m.MinStage() >= model.StageCombined {
		outcome.Skipped = true
		logger.Debug("meeting already aligned")
		return nil
	}

	records, err := p.store.Legislation(id)
	if err != nil {
		return err
	}
	passages, err := p.store.Transcript(id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.matcher.Match(m, records)
	if _, err := p.aligner.Align(m, passages); err != nil {
		return err
	}
	report := p.combiner.Combine(m)

	if err := validate.Meeting(m); err != nil {
		return err
	}
	if err := validate.AtLeast(m, model.StageCombined); err != nil {
		return err
	}
	if err := p.store.SaveMeeting(m); err != nil {
		return fmt.Errorf("save meeting: %w", err)
	}

	p.metrics.AddSegments(metrics.StageAlign, metrics.StatusSuccess, report.Combined)
	p.metrics.AddSegments(metrics.StageAlign, metrics.StatusSkipped, report.Excluded)
	logger.Info("meeting aligned", "segments", len(m.Segments), "combined", report.Combined, "excluded", report.Excluded)
	return nil
}
