package artifact

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the artifacts when either file changes on disk.
type Watcher struct {
	paths    Paths
	onReload func(*Artifacts, error)
	debounce time.Duration
	fsw      *fsnotify.Watcher
	reloads  atomic.Uint32

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// NewWatcher starts watching the directories holding paths. onReload is
// called with the new artifacts, or with the error if the reload failed.
func NewWatcher(paths Paths, onReload func(*Artifacts, error)) (*Watcher, error) {
	return newWatcher(paths, defaultDebounce, onReload)
}

func newWatcher(paths Paths, debounce time.Duration, onReload func(*Artifacts, error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("artifact: failed to create file watcher: %w", err)
	}

	// Watch directories rather than files so atomic renames are seen.
	dirs := map[string]bool{
		filepath.Dir(paths.Columns): true,
		filepath.Dir(paths.Model):   true,
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("artifact: failed to watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		paths:    paths,
		onReload: onReload,
		debounce: debounce,
		fsw:      fsw,
		done:     make(chan struct{}),
	}

	go w.watch()

	return w, nil
}

// watch consumes file system events until the watcher is closed.
func (w *Watcher) watch() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if !w.relevant(event) {
				continue
			}

			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("Artifact watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Clean(event.Name)
	return name == filepath.Clean(w.paths.Columns) || name == filepath.Clean(w.paths.Model)
}

// schedule debounces bursts of events into a single reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload reloads both artifacts.
func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	count := w.reloads.Add(1)
	slog.Info("Reloading artifacts", "columns", w.paths.Columns, "model", w.paths.Model, "count", count)

	a, err := LoadSavedArtifacts(w.paths)
	if err != nil {
		slog.Error("Failed to reload artifacts", "error", err)
		w.onReload(nil, err)
		return
	}

	slog.Info("Artifacts reloaded successfully", "count", count)
	w.onReload(a, nil)
}

// ReloadCount returns the number of reloads attempted.
func (w *Watcher) ReloadCount() uint32 {
	return w.reloads.Load()
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}
