// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package watch reruns a function when files below a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/albertocavalcante/gdbind/internal/logging"
)

// DefaultDebounce batches the bursts of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce is how long the watcher waits for further events before
	// running the callback. Zero means DefaultDebounce.
	Debounce time.Duration

	// Match selects the files whose changes trigger a run. Nil matches
	// every file.
	Match func(path string) bool
}

// Watcher watches a directory tree.
type Watcher struct {
	fsw  *fsnotify.Watcher
	opts Options
	dirs int
}

// New starts watching dir and every subdirectory below it. Events are
// buffered until Run is called.
func New(dir string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w := &Watcher{fsw: fsw, opts: opts}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && d.Name() == ".git" {
			return filepath.SkipDir
		}
		return w.add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return w, nil
}

func (w *Watcher) add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.dirs++
	return nil
}

// Dirs returns the number of watched directories.
func (w *Watcher) Dirs() int {
	return w.dirs
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run calls fn with the sorted list of changed files after each debounced
// burst of matching events. It returns nil when ctx is canceled; errors
// from fn are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context, changed []string) error) error {
	log := logging.FromContext(ctx)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.add(ev.Name); err != nil {
						log.Warn("failed to watch directory", "path", ev.Name, "err", err)
					}
					continue
				}
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			if w.opts.Match != nil && !w.opts.Match(ev.Name) {
				continue
			}
			log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", "err", err)

		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)

			if err := fn(ctx, changed); err != nil {
				log.Error("rebuild failed", "err", err)
			}
		}
	}
}
