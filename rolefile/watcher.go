package rolefile

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fernandezvara/permkit"
)

// ErrorCallback is called when a reload fails.
type ErrorCallback func(error)

// Watcher watches a role file and swaps its contents into a live service
// whenever the file changes. The swap goes through a clean updater, so
// concurrent permission checks are never disturbed; a file that fails to
// load or parse leaves the service on its previous role set.
type Watcher struct {
	path          string
	service       *permkit.Service
	watcher       *fsnotify.Watcher
	logger        *zap.Logger
	errorCallback ErrorCallback
	debounceDelay time.Duration

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// WatcherOption is a functional option for configuring the watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger for the watcher. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounceDelay sets how long the watcher waits after the last file
// event before reloading. Editors often produce bursts of events for one
// save.
func WithDebounceDelay(delay time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounceDelay = delay
	}
}

// WithErrorCallback sets a callback invoked when a reload fails.
func WithErrorCallback(fn ErrorCallback) WatcherOption {
	return func(w *Watcher) {
		w.errorCallback = fn
	}
}

// NewWatcher creates a watcher that keeps service in sync with the role
// file at path.
func NewWatcher(path string, service *permkit.Service, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:          absPath,
		service:       service,
		watcher:       fsWatcher,
		logger:        zap.NewNop(),
		debounceDelay: 100 * time.Millisecond,
		stopCh:        make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start loads and applies the file once, then begins watching it for
// changes. The initial load failing is returned as an error; later reload
// failures go to the logger and the error callback.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	f, err := Load(w.path)
	if err != nil {
		w.setStopped()
		return err
	}
	f.Apply(w.service)

	// Watch the directory, not the file: editors replace files on save
	// and the watch would die with the old inode.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.setStopped()
		return err
	}

	w.logger.Info("watching role file",
		zap.String("path", w.path),
		zap.Int("roles", len(f.Roles)),
	)

	go w.watch(ctx)

	return nil
}

func (w *Watcher) setStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// Stop stops watching the role file. The service keeps the role set it
// last received.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh

	return w.watcher.Close()
}

// ForceReload loads and applies the role file immediately.
func (w *Watcher) ForceReload() error {
	f, err := Load(w.path)
	if err != nil {
		return err
	}
	f.Apply(w.service)
	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.stoppedCh)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("role file watcher stopped", zap.Error(ctx.Err()))
			return

		case <-w.stopCh:
			w.logger.Info("role file watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			debounceTimer, debounceCh = w.handleFileEvent(event, debounceTimer, debounceCh)

		case <-debounceCh:
			debounceCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("role file watcher error", zap.Error(err))
			if w.errorCallback != nil {
				w.errorCallback(err)
			}
		}
	}
}

func (w *Watcher) handleFileEvent(
	event fsnotify.Event,
	debounceTimer *time.Timer,
	debounceCh <-chan time.Time,
) (timer *time.Timer, ch <-chan time.Time) {
	if filepath.Clean(event.Name) != w.path {
		return debounceTimer, debounceCh
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return debounceTimer, debounceCh
	}

	w.logger.Debug("role file changed",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()),
	)

	if debounceTimer != nil {
		debounceTimer.Stop()
	}
	debounceTimer = time.NewTimer(w.debounceDelay)
	return debounceTimer, debounceTimer.C
}

func (w *Watcher) reload() {
	f, err := Load(w.path)
	if err != nil {
		w.logger.Error("role file reload failed", zap.Error(err))
		if w.errorCallback != nil {
			w.errorCallback(err)
		}
		return
	}

	f.Apply(w.service)

	w.logger.Info("role file reloaded",
		zap.String("path", w.path),
		zap.Int("roles", len(f.Roles)),
	)
}
