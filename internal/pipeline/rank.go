package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/ledger"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/metrics"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/score"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/tournament"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/validate"
)

// RankSummary reports a finished tournament
type RankSummary struct {
	Window      string
	RunID       string // ledger run, empty without a ledger
	Headlines   int    // headlines collected before deduplication
	Pool        int
	Comparisons int
	Rows        []model.RankedHeadline
	Labels      model.LabelMap
}

// RankWindow runs the pairwise tournament over every headlined row in the
// window and writes the ranking CSV and label map. The window is locked for
// the duration so two rankings cannot race. Any judge failure aborts the run
// and nothing is written.
func (p *Pipeline) RankWindow(ctx context.Context, w model.Window) (*RankSummary, error) {
	if p.opts.Judge == nil {
		return nil, errors.New("rank: no judge configured")
	}
	start := time.Now()
	logger := p.logger.With(logging.FieldWindow, w.Key(), logging.FieldStage, metrics.StageRank)

	lock, err := p.store.LockWindow(w)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release window lock", "error", err)
		}
	}()

	meetings, headlines, err := p.collectHeadlines(w)
	if err != nil {
		return nil, err
	}
	if len(headlines) == 0 {
		return nil, fmt.Errorf("rank window %s: no headlined rows", w.Key())
	}

	labels, pool := tournament.BuildLabelMap(headlines, p.opts.Logger)
	items := make([]string, len(pool))
	for i, h := range pool {
		items[i] = h.Text
	}
	p.metrics.SetPoolSize(len(items))

	engine, err := engineFromConfig(p.cfg.Tournament)
	if err != nil {
		return nil, err
	}
	tieBreak, err := score.ParseTieBreak(p.cfg.Tournament.TieBreak)
	if err != nil {
		return nil, err
	}

	observers := tournament.Observers{p.metrics}
	var run *ledger.Run
	if p.opts.Ledger != nil {
		pairs := len(items) * (len(items) - 1) / 2
		run, err = p.opts.Ledger.BeginRun(ctx, w.Key(), p.opts.JudgeName, len(items), pairs)
		if err != nil {
			return nil, err
		}
		observers = append(observers, run)
		logger = logger.With(logging.FieldRunID, run.ID())
	}

	runner := tournament.NewRunner(p.opts.Judge, engine, tournament.Options{
		Window:   w.Key(),
		Labels:   labels.HeadlinesToLabels,
		Limiter:  p.limiter,
		Rand:     p.rand(),
		Observer: observers,
		Progress: p.opts.Progress,
		Logger:   p.opts.Logger,
	})
	if err := runner.Schedule(items); err != nil {
		return nil, p.finishRun(ctx, run, err)
	}

	logger.Info("tournament starting", "headlines", len(headlines), "pool", len(items), "pairs", runner.Pairs())
	table, err := runner.Run(ctx)
	if err != nil {
		return nil, p.finishRun(ctx, run, err)
	}

	rows := score.Publish(table, labels.HeadlinesToLabels, tieBreak)
	if err := p.store.WriteRanking(w, rows); err != nil {
		return nil, p.finishRun(ctx, run, fmt.Errorf("write ranking: %w", err))
	}
	if err := p.store.WriteLabels(w, labels); err != nil {
		return nil, p.finishRun(ctx, run, fmt.Errorf("write labels: %w", err))
	}
	if err := p.markRanked(meetings); err != nil {
		return nil, p.finishRun(ctx, run, err)
	}
	if err := p.finishRun(ctx, run, nil); err != nil {
		return nil, err
	}

	p.metrics.ObserveStageDuration(metrics.StageRank, time.Since(start).Seconds())
	logger.Info("ranking written", "path", p.store.RankingPath(w), "rows", len(rows))

	summary := &RankSummary{
		Window:      w.Key(),
		Headlines:   len(headlines),
		Pool:        len(items),
		Comparisons: runner.Pairs(),
		Rows:        rows,
		Labels:      labels,
	}
	if run != nil {
		summary.RunID = run.ID()
	}
	return summary, nil
}

// collectHeadlines gathers headlined rows from every recorded meeting in the
// window in meeting then agenda order, which is the label discovery order.
func (p *Pipeline) collectHeadlines(w model.Window) ([]*model.Meeting, []model.Headline, error) {
	ids, err := p.store.Recorded(w)
	if err != nil {
		return nil, nil, fmt.Errorf("discover meetings: %w", err)
	}

	var meetings []*model.Meeting
	var headlines []model.Headline
	for _, id := range ids {
		m, err := p.store.ReadMeeting(id)
		if err != nil {
			return nil, nil, err
		}
		if err := validate.Meeting(m); err != nil {
			return nil, nil, err
		}
		meetings = append(meetings, m)

		for _, seg := range m.Segments {
			if seg.Stage < model.StageHeadlined {
				continue
			}
			headlines = append(headlines, model.Headline{
				Text:    seg.Headline.Value,
				Summary: seg.Summary.Value,
				Meeting: id.Stem,
				Ordinal: seg.Ordinal,
			})
		}
	}
	return meetings, headlines, nil
}

// markRanked advances headlined rows to the ranked stage
func (p *Pipeline) markRanked(meetings []*model.Meeting) error {
	for _, m := range meetings {
		changed := false
		for i := range m.Segments {
			seg := &m.Segments[i]
			if seg.Stage != model.StageHeadlined {
				continue
			}
			if err := seg.Advance(model.StageRanked); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			continue
		}
		if err := validate.Meeting(m); err != nil {
			return err
		}
		if err := p.store.SaveMeeting(m); err != nil {
			return fmt.Errorf("save meeting: %w", err)
		}
	}
	return nil
}

// finishRun closes the ledger run and returns runErr, or the ledger error
// when the run itself succeeded.
func (p *Pipeline) finishRun(ctx context.Context, run *ledger.Run, runErr error) error {
	if run == nil {
		return runErr
	}
	if err := run.Finish(context.WithoutCancel(ctx), runErr); err != nil {
		if runErr != nil {
			p.logger.Warn("ledger finish failed", logging.FieldRunID, run.ID(), "error", err)
			return runErr
		}
		return err
	}
	return runErr
}

func (p *Pipeline) rand() *rand.Rand {
	if p.opts.Rand != nil {
		return p.opts.Rand
	}
	seed := p.cfg.Tournament.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// engineFromConfig builds the rating engine. Each zero parameter falls back
// to its standard value: mu 25, sigma 25/3, beta sigma/2, tau sigma/100.
func engineFromConfig(cfg model.TournamentConfig) (*score.Engine, error) {
	mu, sigma, beta, tau := cfg.Mu, cfg.Sigma, cfg.Beta, cfg.Tau
	if mu == 0 {
		mu = model.DefaultMu
	}
	if sigma == 0 {
		sigma = model.DefaultSigma
	}
	if beta == 0 {
		beta = sigma / 2
	}
	if tau == 0 {
		tau = sigma / 100
	}
	return score.NewEngine(mu, sigma, beta, tau)
}
