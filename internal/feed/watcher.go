package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/logging"
)

// DefaultDebounce is how long the watcher waits after a filesystem
// event before draining the spool. Backends append in bursts; one drain
// per burst keeps decode work off the write path.
const DefaultDebounce = 50 * time.Millisecond

// Handler receives each decoded spool event in append order.
type Handler func(event.CoordinationEvent)

// Watcher tails a JSONL spool file and hands each appended record to a
// handler. It remembers the byte offset of the last consumed record, so
// a drain only decodes what the backend appended since the previous
// one. A spool that shrinks was truncated or replaced and is reread
// from the start.
type Watcher struct {
	path     string
	handler  Handler
	logger   *logging.Logger
	debounce time.Duration

	// fromStart replays records already in the spool when the watcher
	// starts; otherwise tailing begins at the current end of file.
	fromStart bool

	// defaultPriority, when set, fills records that omit a priority
	// before conversion. Nil keeps the engine default.
	defaultPriority *event.Priority

	// offset and line are touched only before the watch goroutine
	// starts and then by that goroutine alone.
	offset int64
	line   int

	mu      sync.Mutex
	started bool
	stopped bool
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      conc.WaitGroup
}

// WatchOption adjusts Watcher construction.
type WatchOption func(*Watcher)

// WithDebounce overrides the drain debounce. Non-positive values keep
// the default.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger attaches a logger to the watcher.
func WithLogger(logger *logging.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithFromStart replays records already in the spool before tailing,
// instead of starting at the current end of file.
func WithFromStart() WatchOption {
	return func(w *Watcher) {
		w.fromStart = true
	}
}

// WithDefaultPriority fills spool records that omit a priority before
// they are converted to events.
func WithDefaultPriority(p event.Priority) WatchOption {
	return func(w *Watcher) {
		w.defaultPriority = &p
	}
}

// NewWatcher creates a watcher for the spool at path. The handler is
// called from the watch goroutine; it must not block indefinitely.
func NewWatcher(path string, handler Handler, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, errors.NewValidationError("spool path is required").WithField("path")
	}
	if handler == nil {
		return nil, errors.NewValidationError("handler is required").WithField("handler")
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		handler:  handler,
		logger:   logging.NopLogger(),
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins tailing the spool. The watch runs until Stop is called
// or ctx is canceled. Starting twice or after Stop is an error.
//
// The spool file does not have to exist yet: the watcher observes the
// containing directory, so a spool created later is picked up.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return errors.Wrap(errors.ErrFeedClosed, "starting feed watcher")
	}
	if w.started {
		w.mu.Unlock()
		return errors.Wrap(errors.ErrServiceRunning, "starting feed watcher")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return errors.NewFeedError("creating filesystem watcher", err).WithPath(w.path)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		w.mu.Unlock()
		return errors.NewFeedError("watching spool directory", err).WithPath(w.path)
	}
	w.watcher = fw
	w.started = true
	stopCh := w.stopCh
	w.mu.Unlock()

	if w.fromStart {
		w.drain()
	} else if info, err := os.Stat(w.path); err == nil {
		w.offset = info.Size()
	}

	w.wg.Go(func() {
		w.watchLoop(ctx, fw, stopCh)
	})

	w.logger.Info("feed watcher started",
		"path", w.path,
		"debounce", w.debounce.String(),
		"from_start", w.fromStart,
	)
	return nil
}

// Stop ends the watch and waits for the watch goroutine to exit. Stop
// on a watcher that never started is a no-op. Records appended after
// Stop stay in the spool for the next run.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = false
	w.stopped = true
	close(w.stopCh)
	fw := w.watcher
	w.mu.Unlock()

	closeErr := fw.Close()
	w.wg.Wait()

	w.logger.Info("feed watcher stopped", "path", w.path)
	if closeErr != nil {
		return errors.NewFeedError("closing filesystem watcher", closeErr).WithPath(w.path)
	}
	return nil
}

// Running reports whether the watch goroutine is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

// watchLoop debounces filesystem events into spool drains. Editors and
// backends produce several write events per append; collapsing a burst
// into one drain keeps decoding off the hot path.
func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher, stopCh <-chan struct{}) {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer
	pending := false

	for {
		select {
		case <-ctx.Done():
			return

		case <-stopCh:
			return

		case evt, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = true
			debounce.Reset(w.debounce)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			w.drain()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("feed watcher error", "path", w.path, "error", err.Error())
		}
	}
}

// drain decodes everything between the current offset and the end of
// the spool. A line without a trailing newline is a record the backend
// is still appending; it stays unconsumed until a later drain sees it
// complete.
func (w *Watcher) drain() {
	file, err := os.Open(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("opening spool", "path", w.path, "error", err.Error())
		}
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		w.logger.Warn("inspecting spool", "path", w.path, "error", err.Error())
		return
	}
	if info.Size() < w.offset {
		w.logger.Info("spool truncated, rereading from start", "path", w.path)
		w.offset = 0
		w.line = 0
	}
	if info.Size() == w.offset {
		return
	}
	if _, err := file.Seek(w.offset, io.SeekStart); err != nil {
		w.logger.Warn("seeking spool", "path", w.path, "error", err.Error())
		return
	}

	reader := bufio.NewReader(file)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			// Incomplete trailing record or read failure; either way
			// the next drain retries from the same offset.
			if err != io.EOF {
				w.logger.Warn("reading spool", "path", w.path, "error", err.Error())
			}
			return
		}
		w.offset += int64(len(raw))
		w.consume(raw)
	}
}

// consume decodes one consumed spool line and hands the event to the
// handler. Malformed records are logged and skipped; the watch goes on.
func (w *Watcher) consume(raw string) {
	w.line++
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}

	var rec Record
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		w.logger.Warn("skipping malformed spool record",
			"path", w.path,
			"record_line", w.line,
			"error", err.Error(),
		)
		return
	}
	if rec.Priority == "" && w.defaultPriority != nil {
		rec.Priority = w.defaultPriority.String()
	}

	ev, err := rec.ToEvent()
	if err != nil {
		w.logger.Warn("skipping malformed spool record",
			"path", w.path,
			"record_line", w.line,
			"error", err.Error(),
		)
		return
	}

	w.logger.Debug("spool record decoded",
		"path", w.path,
		"event_type", string(ev.Type),
		"trip_id", ev.TripID,
	)
	w.handler(ev)
}
