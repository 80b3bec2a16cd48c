package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"mercator-hq/ganymede/pkg/mcl"
	"mercator-hq/ganymede/pkg/mcl/value"
	"mercator-hq/ganymede/pkg/store"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

// Snapshot is the result of one successful reload: the parsed document and
// its canonical text.
type Snapshot struct {
	// ID uniquely identifies this reload.
	ID uuid.UUID
	// Path is the watched document path.
	Path string
	// Doc is the parsed document tree.
	Doc *value.Value
	// Text is the canonical MCL rendering of Doc.
	Text string
	// Time is when the reload happened.
	Time time.Time
}

// Config contains configuration for the document watcher.
type Config struct {
	// Path is the MCL document to watch.
	Path string

	// DebounceInterval is the time to wait before triggering a reload
	// after detecting file changes (default: 100ms)
	DebounceInterval time.Duration

	// RefreshSchedule is an optional cron expression (standard five-field
	// format) for periodic reloads independent of file events.
	RefreshSchedule string
}

// Watcher watches one MCL document for changes, reparses it on each change,
// and hands the resulting snapshot to a callback. Rapid event bursts are
// debounced so editors that write in several steps trigger a single reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   Config
	debounce *Debouncer
	cron     *cron.Cron

	snapshots *store.Store
	collector *metrics.Collector

	// State
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Option configures optional watcher behavior.
type Option func(*Watcher)

// WithStore makes the watcher persist every successful reload as a snapshot.
func WithStore(st *store.Store) Option {
	return func(w *Watcher) { w.snapshots = st }
}

// WithMetrics makes the watcher record reload outcomes.
func WithMetrics(c *metrics.Collector) Option {
	return func(w *Watcher) { w.collector = c }
}

// New creates a document watcher.
func New(config Config, logger *slog.Logger, opts ...Option) (*Watcher, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("watch path cannot be empty")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	if config.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(config.RefreshSchedule); err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", config.RefreshSchedule, err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsw,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch starts watching for document changes and calls onReload with a
// snapshot after each successful reparse. This is a blocking operation that
// runs until the context is cancelled or Stop is called.
//
// An initial reload happens immediately so callers start from the current
// document state.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Snapshot) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	// Watch the containing directory: editors replace files via rename,
	// which drops a watch on the file itself.
	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	if w.config.RefreshSchedule != "" {
		w.cron = cron.New()
		_, err := w.cron.AddFunc(w.config.RefreshSchedule, func() {
			w.logger.Debug("Scheduled refresh", "path", w.config.Path)
			w.reload(ctx, onReload)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule refresh: %w", err)
		}
		w.cron.Start()
		defer w.cron.Stop()
	}

	w.logger.Info("Document watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	// Initial load.
	w.reload(ctx, onReload)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Document watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("Document watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debounce.Trigger(func() {
				w.reload(ctx, onReload)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("Document watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// reload reparses the document, canonicalizes it, and invokes the callback.
// Parse failures keep the previous state: the error is logged and recorded
// but never stops the watch loop.
func (w *Watcher) reload(ctx context.Context, onReload func(*Snapshot) error) {
	doc, err := mcl.Parse(w.config.Path)
	if err != nil {
		w.logger.Error("Document reload failed", "path", w.config.Path, "error", err)
		w.recordReload(metrics.StatusError)
		return
	}

	text, err := mcl.Format(doc)
	if err != nil {
		w.logger.Error("Document canonicalization failed", "path", w.config.Path, "error", err)
		w.recordReload(metrics.StatusError)
		return
	}

	snap := &Snapshot{
		ID:   uuid.New(),
		Path: w.config.Path,
		Doc:  doc,
		Text: text,
		Time: time.Now(),
	}

	if w.snapshots != nil {
		err := w.snapshots.Save(ctx, &store.Snapshot{
			ID:        snap.ID.String(),
			Path:      snap.Path,
			Canonical: snap.Text,
			CreatedAt: snap.Time,
		})
		if err != nil {
			w.logger.Error("Snapshot save failed", "id", snap.ID, "error", err)
		} else if w.collector != nil {
			w.collector.RecordSnapshotSaved()
		}
	}

	if err := onReload(snap); err != nil {
		w.logger.Error("Reload callback failed", "id", snap.ID, "error", err)
		w.recordReload(metrics.StatusError)
		return
	}

	w.logger.Info("Document reloaded", "path", w.config.Path, "id", snap.ID)
	w.recordReload(metrics.StatusSuccess)
}

func (w *Watcher) recordReload(status string) {
	if w.collector != nil {
		w.collector.RecordReload(status)
	}
}

// shouldProcessEvent determines if an event should trigger a reload. Only
// write-like events on the watched document count.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if filepath.Base(event.Name) != filepath.Base(w.config.Path) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return true
}

// Debouncer implements event debouncing to prevent reload storms.
// It collects rapid events and triggers the callback only after a quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Trigger triggers the debouncer with a new event.
// The callback will be called after the debounce interval if no new events occur.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()

			if cb != nil {
				cb()
			}
		}
	})
}

// Stop stops the debouncer and cancels any pending callbacks.
func (d *Debouncer) Stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
