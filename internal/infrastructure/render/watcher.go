// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// ThemeWatcher reloads the templates of a renderer when a theme template
// changes. Bursts of events (editor saves, deploy syncs) trigger one reload.
type ThemeWatcher struct {
	renderer *TemplateRenderer
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Start watches the theme directory and its sub directories until Stop is
// called or ctx is done.
func (w *ThemeWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	err := filepath.WalkDir(w.renderer.themeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.running = true
	go w.run(ctx)

	slog.InfoContext(ctx, "watching theme templates", "theme_dir", w.renderer.themeDir)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *ThemeWatcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	return w.watcher.Close()
}

func (w *ThemeWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ctx, event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.ErrorContext(ctx, "theme watcher error", "error", err)

		case <-pending:
			pending = nil
			if err := w.renderer.Reload(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to reload theme templates, keeping the loaded ones",
					"error", err,
				)
			}
		}
	}
}

// relevant reports whether the event changes a template. A new directory
// tree is watched as a whole and is relevant when it already holds templates,
// as left behind by mkdir -p, cp -r or a checkout.
func (w *ThemeWatcher) relevant(ctx context.Context, event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return w.watchTree(ctx, event.Name)
		}
	}
	if !strings.HasSuffix(event.Name, templateExt) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// watchTree adds root and every directory below it to the watch and reports
// whether the tree contains templates
func (w *ThemeWatcher) watchTree(ctx context.Context, root string) bool {
	var hasTemplates bool
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// removed while walking
			return nil
		}
		if !d.IsDir() {
			hasTemplates = hasTemplates || strings.HasSuffix(path, templateExt)
			return nil
		}
		if errAdd := w.watcher.Add(path); errAdd != nil {
			slog.WarnContext(ctx, "failed to watch theme directory", "dir", path, "error", errAdd)
		}
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to walk theme directory", "dir", root, "error", err)
	}
	return hasTemplates
}

// NewThemeWatcher creates a watcher reloading the renderer theme templates
func NewThemeWatcher(renderer *TemplateRenderer) (*ThemeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ThemeWatcher{
		renderer: renderer,
		watcher:  watcher,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}
