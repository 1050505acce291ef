// Package pipeline runs the meeting stages over a date window: alignment,
// headline generation, the ranking tournament and the top-k report.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"math/rand"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/align"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/ledger"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/metrics"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/store"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/tournament"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/worker"
)

// pacing key for generation calls
const generateKey = "generate"

// HeadlineGenerator writes a headline and a summary for one combined record
type HeadlineGenerator interface {
	Generate(ctx context.Context, combined string) (headline, summary string, err error)
}

// Options wires the collaborators a pipeline needs. Only the stages that use
// a collaborator require it: Generator for GenerateWindow, Judge for RankWindow.
type Options struct {
	Generator HeadlineGenerator
	Judge     tournament.Judge
	JudgeName string           // recorded in the ledger, e.g. the provider name
	Ledger    *ledger.Ledger   // optional comparison audit
	Metrics   *metrics.Metrics // optional stage metrics
	Rand      *rand.Rand       // orientation source; nil uses tournament.seed
	Progress  io.Writer        // optional per-comparison progress lines
	Logger    *slog.Logger
}

// Pipeline orchestrates the stages over the configured directories
type Pipeline struct {
	cfg   *model.Config
	store *store.Store
	opts  Options

	matcher  *align.LegislationMatcher
	aligner  *align.TranscriptAligner
	combiner *align.SegmentCombiner
	limiter  *worker.Limiter
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a pipeline
func New(cfg *model.Config, st *store.Store, opts Options) *Pipeline {
	limiter := worker.NewLimiter(0)
	limiter.SetDelay(generateKey, cfg.Generation.Delay)
	limiter.SetDelay("judge", cfg.Tournament.Delay)

	m := opts.Metrics
	if m == nil {
		m = metrics.NewMetrics()
	}

	return &Pipeline{
		cfg:      cfg,
		store:    st,
		opts:     opts,
		matcher:  align.NewLegislationMatcher(opts.Logger),
		aligner:  align.NewTranscriptAligner(opts.Logger),
		combiner: align.NewSegmentCombiner(opts.Logger),
		limiter:  limiter,
		metrics:  m,
		logger:   logging.NewComponentLogger(opts.Logger, "pipeline"),
	}
}

// Store returns the pipeline's store
func (p *Pipeline) Store() *store.Store {
	return p.store
}

// RunSummary collects the outcome of every stage of a full run
type RunSummary struct {
	Align    *AlignSummary
	Generate *GenerateSummary
	Rank     *RankSummary
	Report   string
}

// Run aligns, generates, ranks and reports a window in order. Meeting-level
// alignment and row-level generation failures are logged and carried in the
// summary; a failed tournament stops the run.
func (p *Pipeline) Run(ctx context.Context, w model.Window, k int) (*RunSummary, error) {
	var out RunSummary
	var err error

	if out.Align, err = p.AlignWindow(ctx, w); err != nil {
		return &out, err
	}
	if out.Generate, err = p.GenerateWindow(ctx, w); err != nil {
		return &out, err
	}
	if out.Rank, err = p.RankWindow(ctx, w); err != nil {
		return &out, err
	}
	if k > 0 {
		if out.Report, err = p.Report(w, k); err != nil {
			return &out, err
		}
	}
	return &out, nil
}
