// Package watch rebuilds a site when its sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// RebuildFunc is called once per settled batch of changes. changed holds
// the affected paths in sorted order.
type RebuildFunc func(ctx context.Context, changed []string) error

// Options configures a Watcher.
type Options struct {
	// Dirs are watched recursively. Missing directories are skipped.
	Dirs []string

	// Files are watched individually, for example blogsmith.yaml.
	// A file that does not exist yet is picked up once created.
	Files []string

	// Debounce is how long the tree must be quiet before a rebuild.
	// Zero uses DefaultWatchDebounce.
	Debounce time.Duration
}

// Watcher batches filesystem events and triggers rebuilds.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   blogsmith.Logger
	debounce time.Duration
	files    map[string]bool
	dirs     []string
}

// New starts watching the configured paths. Events that arrive before Run
// is called are buffered and not lost.
func New(opts Options, logger blogsmith.Logger) (*Watcher, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		logger:   logger,
		debounce: opts.Debounce,
		files:    map[string]bool{},
	}
	if w.debounce <= 0 {
		w.debounce = blogsmith.DefaultWatchDebounce
	}

	for _, dir := range opts.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		if err := w.addTree(abs); err != nil {
			fsw.Close()
			return nil, err
		}
		w.dirs = append(w.dirs, abs)
	}

	parents := map[string]bool{}
	for _, file := range opts.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		parent := filepath.Dir(abs)
		if parents[parent] {
			continue
		}
		parents[parent] = true
		if err := fsw.Add(parent); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", parent, err)
		}
	}

	return w, nil
}

// addTree watches root and every non-hidden directory beneath it.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isIgnored(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.logger.Verbose("Watching %s", path)
		return nil
	})
	return err
}

// Run dispatches rebuilds until ctx is done. A failing rebuild is logged
// and watching continues. Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	defer w.fsw.Close()

	pending := map[string]bool{}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) && w.underDirs(ev.Name) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warn("%v", err)
					}
				}
			}
			pending[ev.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watch error: %v", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]bool{}

			w.logger.Info("Change detected in %d path(s), rebuilding", len(changed))
			if err := rebuild(ctx, changed); err != nil {
				w.logger.Error("Rebuild failed: %v", err)
			}
		}
	}
}

// relevant filters out chmod-only events, editor scratch files and events
// on files in a watched parent directory that are not themselves watched.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if isIgnored(filepath.Base(ev.Name)) {
		return false
	}
	if w.files[ev.Name] {
		return true
	}
	return w.underDirs(ev.Name)
}

func (w *Watcher) underDirs(path string) bool {
	for _, dir := range w.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// isIgnored matches hidden files and editor backup or swap files.
func isIgnored(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasPrefix(name, "#")
}
