// Package ledger keeps an audit trail of tournament runs and every judged
// pair in SQLite, so a published ranking can be traced back to the verdicts
// that produced it.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Run statuses
const (
	StatusRunning   = "running"
	StatusFinalized = "finalized"
	StatusAborted   = "aborted"
)

// Ledger is the comparison audit database
type Ledger struct {
	db   *sql.DB
	path string
}

// RunSummary describes one recorded tournament run
type RunSummary struct {
	ID         string
	Window     string
	Judge      string
	Items      int
	Pairs      int
	Recorded   int
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Open creates or opens the ledger at path
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure ledger dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	l := &Ledger{db: db, path: path}
	if err := l.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

// Close closes the database
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Run records one tournament. It implements tournament.Observer.
type Run struct {
	ledger *Ledger
	id     string
}

// BeginRun records the start of a tournament over a window
func (l *Ledger) BeginRun(ctx context.Context, window, judge string, items, pairs int) (*Run, error) {
	id := uuid.NewString()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, window_key, judge, items, pairs, status, started_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, window, judge, items, pairs, StatusRunning, formatTime(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	return &Run{ledger: l, id: id}, nil
}

// ID returns the run identifier
func (r *Run) ID() string {
	return r.id
}

// ObserveComparison stores one judged pair
func (r *Run) ObserveComparison(ctx context.Context, c model.ComparisonResult) error {
	_, err := r.ledger.db.ExecContext(ctx,
		`INSERT INTO comparisons (run_id, pair_index, left_text, right_text, verdict, winner, loser, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id, c.Index, c.Left, c.Right, string(c.Verdict), c.Winner, c.Loser, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("record comparison %d: %w", c.Index, err)
	}
	return nil
}

// Finish closes the run as finalized, or aborted when runErr is set
func (r *Run) Finish(ctx context.Context, runErr error) error {
	status := StatusFinalized
	var msg any
	if runErr != nil {
		status = StatusAborted
		msg = runErr.Error()
	}
	_, err := r.ledger.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status, msg, formatTime(time.Now()), r.id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Comparisons returns the recorded pairs of a run in schedule order
func (l *Ledger) Comparisons(ctx context.Context, runID string) ([]model.ComparisonResult, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT pair_index, left_text, right_text, verdict, winner, loser
		 FROM comparisons WHERE run_id = ? ORDER BY pair_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ComparisonResult
	for rows.Next() {
		var c model.ComparisonResult
		var verdict string
		if err := rows.Scan(&c.Index, &c.Left, &c.Right, &verdict, &c.Winner, &c.Loser); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		c.Verdict = model.Side(verdict)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Runs lists the runs for a window, newest first. An empty window lists all.
func (l *Ledger) Runs(ctx context.Context, window string) ([]RunSummary, error) {
	query := `SELECT r.id, r.window_key, r.judge, r.items, r.pairs, r.status, r.error, r.started_at, r.finished_at,
		(SELECT COUNT(1) FROM comparisons c WHERE c.run_id = r.id)
		FROM runs r`
	var args []any
	if window != "" {
		query += " WHERE r.window_key = ?"
		args = append(args, window)
	}
	query += " ORDER BY r.started_at DESC, r.rowid DESC"

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RunSummary
	for rows.Next() {
		var (
			s        RunSummary
			errText  sql.NullString
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Window, &s.Judge, &s.Items, &s.Pairs, &s.Status, &errText, &started, &finished, &s.Recorded); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.Error = errText.String
		if s.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if finished.Valid {
			t, err := parseTime(finished.String)
			if err != nil {
				return nil, err
			}
			s.FinishedAt = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ledger time %q: %w", value, err)
	}
	return t, nil
}
