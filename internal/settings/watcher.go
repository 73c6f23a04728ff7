package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/scrimkit/scrim/internal/logging"
)

// ReloadFunc receives the freshly loaded document after a file change.
type ReloadFunc func(doc Document)

// Watcher reloads the settings document when the file changes on disk.
// It watches the file's directory rather than the file itself so the
// atomic save rename is seen, and debounces rapid write bursts into one
// reload.
type Watcher struct {
	log      *logging.Logger
	path     string
	debounce time.Duration

	mu       sync.Mutex
	handlers []ReloadFunc
	running  bool
	fsw      *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.log = logger.WithComponent("settings.watcher")
		}
	}
}

// NewWatcher creates a watcher for the settings file at path. Call
// Start to begin watching.
func NewWatcher(path string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		log:      logging.Discard,
		path:     path,
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnReload registers a handler for reloaded documents.
func (w *Watcher) OnReload(fn ReloadFunc) {
	if fn == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, fn)
}

// Start begins watching. Idempotent.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.running = true

	w.wg.Add(1)
	go w.loop(fsw, w.done)

	w.log.Debug("watching %s", w.path)
	return nil
}

// Stop stops watching. Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.done)
	fsw := w.fsw
	w.fsw = nil
	w.mu.Unlock()

	w.wg.Wait()
	fsw.Close()
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	defer w.wg.Done()

	var pending <-chan time.Time
	for {
		select {
		case <-done:
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			pending = time.After(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("settings watch error: %v", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

// relevant filters directory events down to ones touching the settings
// file. Renames count because the atomic save lands as one.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != filepath.Base(w.path) {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	doc, err := Load(w.path)
	if err != nil {
		w.log.Warn("settings reload failed: %v", err)
		return
	}

	w.mu.Lock()
	handlers := make([]ReloadFunc, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	w.log.Debug("settings reloaded from %s", w.path)
	for _, fn := range handlers {
		w.notify(fn, doc)
	}
}

// notify calls one handler, recovering panics so a broken handler does
// not kill the watch loop.
func (w *Watcher) notify(fn ReloadFunc, doc Document) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("settings reload handler panicked: %v\n%s", r, debug.Stack())
		}
	}()
	fn(doc)
}
