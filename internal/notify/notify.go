// Package notify provides Notifier implementations: an in-memory
// recorder for tests and embedders, and a log-backed notifier for
// deployments without an attached delivery channel. Retry policy belongs
// to real delivery collaborators, never here.
package notify

import (
	"context"
	"sync"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/logging"
)

// Recorder is an in-memory Notifier. Safe for concurrent use.
type Recorder struct {
	mu   sync.RWMutex
	sent []action.Notification
	err  error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records the notification, or fails with the error set by
// FailWith without recording anything.
func (r *Recorder) Send(_ context.Context, n action.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

// FailWith makes every following Send fail with err. Passing nil
// restores normal recording.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Sent returns the recorded notifications in arrival order.
func (r *Recorder) Sent() []action.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]action.Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Len returns the number of recorded notifications.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sent)
}

// LogNotifier writes notifications to the engine log. Urgent
// notifications log at WARN, everything else at INFO. Notifications
// below the minimum priority are dropped silently.
type LogNotifier struct {
	logger      *logging.Logger
	minPriority event.Priority
}

// LogOption adjusts LogNotifier construction.
type LogOption func(*LogNotifier)

// WithMinPriority drops notifications below p.
func WithMinPriority(p event.Priority) LogOption {
	return func(n *LogNotifier) { n.minPriority = p }
}

// NewLogNotifier creates a LogNotifier writing through logger. A nil
// logger discards everything.
func NewLogNotifier(logger *logging.Logger, opts ...LogOption) *LogNotifier {
	n := &LogNotifier{
		logger:      logger,
		minPriority: event.PriorityLow,
	}
	if n.logger == nil {
		n.logger = logging.NopLogger()
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send writes one log record for the notification. It never fails;
// delivery guarantees are out of scope for a log-backed channel.
func (n *LogNotifier) Send(_ context.Context, notification action.Notification) error {
	if notification.Priority < n.minPriority {
		return nil
	}

	log := n.logger.WithTrip(notification.TripID).With(
		"priority", notification.Priority.String(),
	)
	if notification.FamilyID != "" {
		log = log.With("family_id", notification.FamilyID)
	}
	if notification.Template != "" {
		log = log.With("template", notification.Template)
	}

	if notification.Priority == event.PriorityUrgent {
		log.Warn("notification", "message", notification.Message)
		return nil
	}
	log.Info("notification", "message", notification.Message)
	return nil
}
