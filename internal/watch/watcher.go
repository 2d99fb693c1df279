// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     watch
// Description: Debounced change notifications for a single source file
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	anerror "github.com/msto63/analiza/pkg/core/error"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero
const DefaultDebounce = 200 * time.Millisecond

// Handler is called once per burst of changes to the watched file
type Handler func(ctx context.Context, path string) error

// Options configures a Watcher
type Options struct {
	Debounce time.Duration
	Logger   *anlog.Logger
}

// Watcher watches one file. Editors that save by renaming a temporary file
// replace the watched inode, so the parent directory is watched and events
// are filtered by name.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *anlog.Logger
}

// New starts watching path. Events that happen after New returns are
// delivered by Run.
func New(path string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = anlog.GetDefault()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, anerror.Wrap(err, "failed to resolve path").
			WithCode(anerror.CodeInvalidInput).
			WithOperation("watch.New").
			WithDetail("path", path)
	}

	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); err != nil {
		return nil, anerror.Wrap(err, "directory not found").
			WithCode(anerror.CodeNotFound).
			WithOperation("watch.New").
			WithDetail("path", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, anerror.Wrap(err, "failed to create watcher").
			WithCode(anerror.CodeIOError).
			WithOperation("watch.New")
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, anerror.Wrap(err, "failed to watch directory").
			WithCode(anerror.CodeIOError).
			WithOperation("watch.New").
			WithDetail("path", dir)
	}

	return &Watcher{
		path:     abs,
		debounce: opts.Debounce,
		fsw:      fsw,
		logger:   opts.Logger.WithField("component", "watch"),
	}, nil
}

// Path returns the absolute path of the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers changes to handler until ctx is canceled. Handler errors are
// logged and do not stop the watcher. Run closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !relevant(event.Op) {
				continue
			}
			w.logger.Trace("file event", anlog.Fields{"op": event.Op.String()})

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("watcher error", err)

		case <-fire:
			fire = nil
			if _, err := os.Stat(w.path); err != nil {
				// removed, wait for it to come back
				continue
			}
			if err := handler(ctx, w.path); err != nil {
				w.logger.WithField("path", w.path).LogError(err)
			}
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
