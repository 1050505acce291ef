package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// WindowLock is an exclusive advisory lock on one ranking window
type WindowLock struct {
	path string
	lock *flock.Flock
}

// LockWindow takes the window lock without waiting. It fails when another
// process is ranking the same window.
func (s *Store) LockWindow(w model.Window) (*WindowLock, error) {
	if err := os.MkdirAll(s.paths.RankingDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure ranking dir: %w", err)
	}
	path := filepath.Join(s.paths.RankingDir, "."+w.Key()+".lock")
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire window lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("window %s is already being ranked (lock %s)", w.Key(), path)
	}
	return &WindowLock{path: path, lock: lock}, nil
}

// Path returns the lock file path
func (l *WindowLock) Path() string {
	return l.path
}

// Unlock releases the lock
func (l *WindowLock) Unlock() error {
	return l.lock.Unlock()
}
