package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/score"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/worker"
)

// pacing key shared by every judge call
const judgeKey = "judge"

// State is the lifecycle of a tournament run
type State int

const (
	StateIdle State = iota
	StateScheduled
	StateRunning
	StateFinalized
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	case StateFinalized:
		return "finalized"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures a Runner
type Options struct {
	Window   string            // window key, used in errors and logs
	Labels   map[string]string // headline -> label, for progress lines
	Limiter  *worker.Limiter   // paces judge calls; nil disables pacing
	Rand     *rand.Rand        // orientation source; nil seeds from the clock
	Observer Observer          // optional, sees every comparison in order
	Progress io.Writer         // optional "[i/N] H1 vs H2 --- H1" lines
	Logger   *slog.Logger
}

// Runner plays one round-robin tournament. It is single-use: once finalized
// or aborted it cannot be run again.
type Runner struct {
	judge  Judge
	engine *score.Engine
	opts   Options
	logger *slog.Logger

	state   State
	items   []string
	pairs   []Pair
	table   *score.Table
	results []model.ComparisonResult
}

// NewRunner creates a runner in StateIdle
func NewRunner(judge Judge, engine *score.Engine, opts Options) *Runner {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Limiter == nil {
		opts.Limiter = worker.NewLimiter(0)
	}
	logger := logging.NewComponentLogger(opts.Logger, "tournament")
	if opts.Window != "" {
		logger = logger.With(logging.FieldWindow, opts.Window)
	}
	return &Runner{
		judge:  judge,
		engine: engine,
		opts:   opts,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state
func (r *Runner) State() State {
	return r.state
}

// Schedule fixes the pool and enumerates its pairs. Items must be distinct.
func (r *Runner) Schedule(items []string) error {
	if r.state != StateIdle {
		return fmt.Errorf("schedule tournament: runner is %s", r.state)
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			return fmt.Errorf("schedule tournament: duplicate item %q", item)
		}
		seen[item] = true
	}

	r.items = append([]string(nil), items...)
	r.pairs = Schedule(len(items))
	r.table = r.engine.NewTable(items)
	r.state = StateScheduled

	r.logger.Info("tournament scheduled", "items", len(items), "pairs", len(r.pairs))
	return nil
}

// Pairs returns the number of scheduled comparisons
func (r *Runner) Pairs() int {
	return len(r.pairs)
}

// Run judges every pair in schedule order and folds each verdict into the
// ratings before the next call. Any judge error or protocol violation aborts
// the run; partial ratings are discarded.
func (r *Runner) Run(ctx context.Context) (*score.Table, error) {
	if r.state != StateScheduled {
		return nil, fmt.Errorf("run tournament: runner is %s", r.state)
	}
	r.state = StateRunning

	total := len(r.pairs)
	for k, p := range r.pairs {
		result, err := r.play(ctx, k+1, p)
		if err != nil {
			r.state = StateAborted
			r.logger.Error("tournament aborted", logging.FieldPair, k+1, "total", total, "error", err)
			return nil, err
		}
		r.results = append(r.results, result)

		if r.opts.Progress != nil {
			fmt.Fprintf(r.opts.Progress, "[%d/%d] %s vs %s --- %s\n",
				k+1, total, r.label(result.Left), r.label(result.Right), r.label(result.Winner))
		}
	}

	r.state = StateFinalized
	r.logger.Info("tournament finalized", "pairs", total)
	return r.table, nil
}

func (r *Runner) play(ctx context.Context, index int, p Pair) (model.ComparisonResult, error) {
	if err := r.opts.Limiter.Wait(ctx, judgeKey); err != nil {
		return model.ComparisonResult{}, fmt.Errorf("pair %d: wait: %w", index, err)
	}

	left, right := r.items[p.I], r.items[p.J]
	if r.opts.Rand.Intn(2) == 1 {
		left, right = right, left
	}

	verdict, err := r.judge.Judge(ctx, left, right)
	if err != nil {
		var perr *model.JudgeProtocolError
		if errors.As(err, &perr) {
			perr.Window, perr.Pair = r.opts.Window, index
			return model.ComparisonResult{}, perr
		}
		return model.ComparisonResult{}, fmt.Errorf("pair %d: judge: %w", index, err)
	}

	result := model.ComparisonResult{Index: index, Left: left, Right: right, Verdict: verdict}
	switch verdict {
	case model.SideLeft:
		result.Winner, result.Loser = left, right
	case model.SideRight:
		result.Winner, result.Loser = right, left
	default:
		return model.ComparisonResult{}, &model.JudgeProtocolError{
			Window: r.opts.Window,
			Pair:   index,
			Left:   left,
			Right:  right,
			Value:  string(verdict),
		}
	}

	if err := r.table.Record(result.Winner, result.Loser); err != nil {
		return model.ComparisonResult{}, fmt.Errorf("pair %d: %w", index, err)
	}

	if r.opts.Observer != nil {
		if err := r.opts.Observer.ObserveComparison(ctx, result); err != nil {
			return model.ComparisonResult{}, fmt.Errorf("pair %d: observe: %w", index, err)
		}
	}

	r.logger.Debug("comparison recorded", logging.FieldPair, index, "winner", r.label(result.Winner))
	return result, nil
}

// Results returns the comparisons recorded so far, in schedule order
func (r *Runner) Results() []model.ComparisonResult {
	out := make([]model.ComparisonResult, len(r.results))
	copy(out, r.results)
	return out
}

func (r *Runner) label(item string) string {
	if l, ok := r.opts.Labels[item]; ok {
		return l
	}
	return item
}
