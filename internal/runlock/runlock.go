// Package runlock enforces single-instance enrichment runs with a flock-based
// lock file, so a watch loop and a manual invocation cannot write the output
// guide concurrently.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld indicates another marquee process holds the lock.
var ErrHeld = errors.New("another marquee run is already in progress")

// Lock guards a single enrichment run.
type Lock struct {
	path string
	lock *flock.Flock
}

// New prepares a lock at path. The lock is not acquired until Acquire.
func New(path string) *Lock {
	return &Lock{path: path, lock: flock.New(path)}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. Returns ErrHeld when another
// process owns it.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrHeld
	}
	return nil
}

// Release drops the lock. Safe to call when not held.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
