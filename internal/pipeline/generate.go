package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/metrics"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/validate"
)

// GenerateSummary reports a generation pass over a window
type GenerateSummary struct {
	Generated int // rows that received a headline and summary
	Skipped   int // rows already headlined
	Excluded  int // rows without combined text
	Failed    int // rows whose generation failed; they stay at the combined stage
	Meetings  []MeetingOutcome
}

// GenerateWindow writes a headline and summary for every combined row in the
// window that does not have one yet. Each row is saved as soon as it is
// generated, so an interrupted run resumes where it stopped. A failing row is
// logged and left for the next run.
func (p *Pipeline) GenerateWindow(ctx context.Context, w model.Window) (*GenerateSummary, error) {
	if p.opts.Generator == nil {
		return nil, errors.New("generate: no headline generator configured")
	}

	start := time.Now()
	ids, err := p.store.Recorded(w)
	if err != nil {
		return nil, fmt.Errorf("discover meetings: %w", err)
	}
	p.logger.Info("generating headlines", logging.FieldWindow, w.Key(), "meetings", len(ids))

	summary := &GenerateSummary{}
	for _, id := range ids {
		outcome := MeetingOutcome{Stem: id.Stem}
		err := p.generateMeeting(ctx, id, summary, &outcome)
		outcome.Err = err
		summary.Meetings = append(summary.Meetings, outcome)

		if err != nil {
			p.metrics.IncMeetings(metrics.StageGenerate, metrics.StatusFailure)
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			p.logger.Error("meeting generation failed", logging.FieldMeeting, id.Stem, "error", err)
			continue
		}
		p.metrics.IncMeetings(metrics.StageGenerate, metrics.StatusSuccess)
	}

	p.metrics.AddSegments(metrics.StageGenerate, metrics.StatusSuccess, summary.Generated)
	p.metrics.AddSegments(metrics.StageGenerate, metrics.StatusFailure, summary.Failed)
	p.metrics.AddSegments(metrics.StageGenerate, metrics.StatusSkipped, summary.Skipped)
	p.metrics.ObserveStageDuration(metrics.StageGenerate, time.Since(start).Seconds())

	p.logger.Info("generation finished",
		logging.FieldWindow, w.Key(),
		"generated", summary.Generated,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return summary, nil
}

func (p *Pipeline) generateMeeting(ctx context.Context, id model.MeetingID, summary *GenerateSummary, outcome *MeetingOutcome) error {
	logger := p.logger.With(logging.FieldMeeting, id.Stem, logging.FieldStage, metrics.StageGenerate)

	m, err := p.store.ReadMeeting(id)
	if err != nil {
		return err
	}
	outcome.Segments = len(m.Segments)
	if err := validate.AtLeast(m, model.StageCombined); err != nil {
		return err
	}

	for i := range m.Segments {
		seg := &m.Segments[i]
		if seg.Stage >= model.StageHeadlined {
			summary.Skipped++
			continue
		}
		if !seg.Combined.IsPresent() {
			summary.Excluded++
			continue
		}

		if err := p.limiter.Wait(ctx, generateKey); err != nil {
			return err
		}

		headline, text, err := p.opts.Generator.Generate(ctx, seg.Combined.Value)
		if err == nil && strings.TrimSpace(headline) == "" {
			err = errors.New("empty headline")
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			summary.Failed++
			logger.Warn("generation failed, row left for next run", "ordinal", seg.Ordinal, "error", err)
			continue
		}

		seg.Headline = model.Some(headline)
		seg.Summary = model.Some(text)
		if err := seg.Advance(model.StageHeadlined); err != nil {
			return err
		}
		if err := validate.Meeting(m); err != nil {
			return err
		}
		if err := p.store.SaveMeeting(m); err != nil {
			return fmt.Errorf("save meeting: %w", err)
		}

		summary.Generated++
		logger.Info("headline generated", "ordinal", seg.Ordinal, "headline", headline)
	}
	return nil
}
