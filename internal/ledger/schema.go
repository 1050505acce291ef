package ledger

import (
	"context"
	"errors"
	"fmt"
)

const schemaVersion = 1

// ErrSchemaMismatch is returned when the ledger was written by another version
var ErrSchemaMismatch = errors.New("ledger schema mismatch")

const schemaSQL = `
CREATE TABLE schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE runs (
	id          TEXT PRIMARY KEY,
	window_key  TEXT NOT NULL,
	judge       TEXT NOT NULL,
	items       INTEGER NOT NULL,
	pairs       INTEGER NOT NULL,
	status      TEXT NOT NULL,
	error       TEXT,
	started_at  TEXT NOT NULL,
	finished_at TEXT
);

CREATE INDEX idx_runs_window ON runs(window_key);

CREATE TABLE comparisons (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	pair_index  INTEGER NOT NULL,
	left_text   TEXT NOT NULL,
	right_text  TEXT NOT NULL,
	verdict     TEXT NOT NULL,
	winner      TEXT NOT NULL,
	loser       TEXT NOT NULL,
	recorded_at TEXT NOT NULL,
	PRIMARY KEY (run_id, pair_index)
);
`

func (l *Ledger) initSchema(ctx context.Context) error {
	var tableExists int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return l.createSchema(ctx)
	}

	var version int
	if err := l.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, l.path)
	}
	return nil
}

func (l *Ledger) createSchema(ctx context.Context) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}
