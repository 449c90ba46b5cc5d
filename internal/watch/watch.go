// Package watch re-runs a callback when watched files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/johnhooks/highlighter/internal/logfields"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Handler is called once per burst of changes.
type Handler func(ctx context.Context) error

// Watcher monitors a set of files and calls a Handler after the files have
// been quiet for the debounce period. The handler never runs concurrently
// with itself.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	handler  Handler
	logger   *slog.Logger
}

// New creates a watcher for files. Paths are resolved to absolute form and
// their parent directories are watched, which survives editors that replace
// a file instead of writing it in place.
func New(files []string, debounce time.Duration, handler Handler, logger *slog.Logger) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(files)),
		debounce: debounce,
		handler:  handler,
		logger:   logger,
	}
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		w.files[abs] = struct{}{}
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation and an
// error only when the watch cannot be set up or the event stream breaks.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.logger.Info("Watching for changes", slog.Int("files", len(w.files)))

	// fire is buffered so a pending run is never queued twice.
	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("fsnotify event stream closed")
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("File change detected", logfields.File(ev.Name), slog.String("op", ev.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			start := time.Now()
			if err := w.handler(ctx); err != nil {
				w.logger.Warn("Rebuild failed", logfields.Error(err))
				continue
			}
			w.logger.Info("Rebuilt", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("fsnotify error stream closed")
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether ev touches one of the watched files with an
// operation that changes its content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if shouldIgnore(ev.Name) {
		return false
	}
	if _, ok := w.files[filepath.Clean(ev.Name)]; !ok {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// shouldIgnore returns true for editor swap, backup and lock files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return false
}
