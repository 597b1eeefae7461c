// Package watch reruns a generation whenever the Go sources of the model
// packages change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the quiet period that collapses a burst of events
// into one run.
const DefaultDebounce = 200 * time.Millisecond

// RunFunc is one generation run. Its error is logged and does not stop
// the watcher.
type RunFunc func(ctx context.Context) error

// Watcher watches a set of directories for Go source changes.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	logger   logrus.FieldLogger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period between the last event and the run.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger of the watcher.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New returns a watcher of dirs.
func New(dirs []string, opts ...Option) *Watcher {
	w := &Watcher{dirs: dirs, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		w.logger = l
	}
	return w
}

// Relevant reports whether an event on a file should trigger a run: a
// write, create, remove or rename of a non-test Go source.
func Relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".go" {
		return false
	}
	if ok, _ := filepath.Match("*_test.go", filepath.Base(ev.Name)); ok {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// Run calls fn once, then again after every relevant change, until ctx is
// done. It returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn RunFunc) error {
	if len(w.dirs) == 0 {
		return errors.New("watch: no directories to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}
	w.logger.WithField("dirs", w.dirs).Info("watching for changes")
	w.run(ctx, fn)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !Relevant(ev) {
				continue
			}
			w.logger.WithFields(logrus.Fields{"file": ev.Name, "op": ev.Op.String()}).Debug("source changed")
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("watch error")
		case <-timer.C:
			w.run(ctx, fn)
		}
	}
}

func (w *Watcher) run(ctx context.Context, fn RunFunc) {
	start := time.Now()
	if err := fn(ctx); err != nil {
		w.logger.WithError(err).Error("generation failed")
		return
	}
	w.logger.WithField("took", time.Since(start).Round(time.Millisecond).String()).Info("generation done")
}
