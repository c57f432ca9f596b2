// Package watcher triggers enrichment runs when the input guide changes on
// disk. Events for the input file are debounced, then the watcher waits for
// the file size to settle before firing, since guide downloads can take a
// while to finish writing.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"marquee/internal/logging"
)

const settlePollInterval = 500 * time.Millisecond

// Watcher monitors a single guide file and emits a trigger once writes to it
// have quiesced.
type Watcher struct {
	input    string
	debounce time.Duration
	settle   time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	triggers chan time.Time
}

// New prepares a watcher for the guide at input. debounce is how long to wait
// for further events before reacting; settle is how long the file size must
// hold steady before a trigger fires.
func New(input string, debounce, settle time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	if settle < 0 {
		settle = 0
	}

	return &Watcher{
		input:    filepath.Clean(input),
		debounce: debounce,
		settle:   settle,
		watcher:  fsw,
		logger:   logging.NewComponentLogger(logger, "watcher"),
		triggers: make(chan time.Time, 1),
	}, nil
}

// Triggers returns the channel that fires after the input file changes and
// settles. The channel holds at most one pending trigger; bursts collapse.
func (w *Watcher) Triggers() <-chan time.Time {
	return w.triggers
}

// Start watches the input file's directory and begins emitting triggers.
// The triggers channel closes when ctx is cancelled or the watcher stops.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.input)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}
	// Watch the directory, not the file: atomic replacers rename a temp file
	// over the target, which drops a direct file watch.
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go w.run(ctx)

	w.logger.Info("watching input guide",
		logging.String("path", w.input),
		logging.Duration("debounce", w.debounce),
		logging.Duration("settle", w.settle))
	return nil
}

// Stop closes the underlying file watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.triggers)

	debounce := time.NewTimer(w.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("input change detected", logging.String("op", event.Op.String()))
			if pending && !debounce.Stop() {
				<-debounce.C
			}
			debounce.Reset(w.debounce)
			pending = true

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", logging.Error(err))

		case <-debounce.C:
			pending = false
			if !w.waitSettled(ctx) {
				return
			}
			select {
			case w.triggers <- time.Now():
				w.logger.Info("input guide settled, triggering run")
			default:
				// A trigger is already queued.
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.input {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}

// waitSettled blocks until the input file size has held steady for the settle
// window. Returns false only when ctx is cancelled.
func (w *Watcher) waitSettled(ctx context.Context) bool {
	if w.settle == 0 {
		return true
	}

	var lastSize int64 = -1
	stableSince := time.Now()
	ticker := time.NewTicker(settlePollInterval)
	defer ticker.Stop()

	for {
		info, err := os.Stat(w.input)
		switch {
		case err != nil:
			// File vanished mid-write; restart the window.
			lastSize = -1
			stableSince = time.Now()
		case info.Size() != lastSize:
			lastSize = info.Size()
			stableSince = time.Now()
		case time.Since(stableSince) >= w.settle:
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}
