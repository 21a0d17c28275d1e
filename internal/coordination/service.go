package coordination

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/logging"
	"github.com/vedprakash-m/pathfinder-sub008/internal/rule"
	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

// Telemetry event types the service publishes on its bus. Escalation
// requests reuse [event.EscalationRequested]: the dispatcher republishes
// the queued event itself once the consensus hand-off succeeds.
const (
	// TypeAutomationCompleted reports one processed event. Data carries
	// "event_id", "event_type", "rules_matched", "actions_executed" and
	// "actions_succeeded".
	TypeAutomationCompleted event.Type = "automation.completed"

	// TypeEscalationAborted reports an escalation refused by the cycle
	// guard. Data carries "source_event_id" and "hop_limit"; Hops holds
	// the refused depth.
	TypeEscalationAborted event.Type = "escalation.aborted"
)

// Defaults applied by New unless options override them.
const (
	// DefaultHopLimit allows one escalation derivation per event chain.
	DefaultHopLimit = 1
	// DefaultQueueCapacity bounds the escalation queue.
	DefaultQueueCapacity = 64
)

// Config holds the collaborators a Service is built over.
type Config struct {
	// Registry supplies the automation rules. Required.
	Registry *rule.Registry
	// Notifier delivers notify actions. Nil means notifications are
	// silently dropped.
	Notifier action.Notifier
	// Escalator receives dispatched escalation requests. Nil means
	// escalations are accepted and discarded.
	Escalator action.Escalator
	// Logger receives engine logs. Nil means no logging.
	Logger *logging.Logger
	// Bus receives telemetry events. Nil disables telemetry.
	Bus *event.Bus
}

// Service is the coordination automation engine. It is safe for
// concurrent use: the registry is immutable, the executor is stateless,
// and the escalation queue is owned by the dispatcher goroutine started
// with Start. Concurrent ProcessEvent calls for the same trip carry no
// ordering guarantee.
type Service struct {
	registry  *rule.Registry
	notifier  action.Notifier
	escalator action.Escalator
	advisor   action.Advisor
	executor  *action.Executor
	bus       *event.Bus
	logger    *logging.Logger

	hopLimit int
	capacity int
	timeout  time.Duration

	mu      sync.Mutex
	started bool
	stopped bool
	queue   chan event.CoordinationEvent
	wg      conc.WaitGroup
}

// New creates a Service over the given collaborators.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Registry == nil {
		return nil, errors.NewValidationError("rule registry is required").
			WithField("registry")
	}

	sc := &svcConfig{}
	for _, opt := range opts {
		opt(sc)
	}

	s := &Service{
		registry:  cfg.Registry,
		notifier:  cfg.Notifier,
		escalator: cfg.Escalator,
		advisor:   sc.advisor,
		bus:       cfg.Bus,
		logger:    cfg.Logger,
		hopLimit:  DefaultHopLimit,
		capacity:  DefaultQueueCapacity,
		timeout:   action.DefaultTimeout,
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.escalator == nil {
		s.escalator = noopEscalator{}
	}
	if s.logger == nil {
		s.logger = logging.NopLogger()
	}
	if s.advisor == nil {
		s.advisor = NewPayloadAdvisor()
	}
	if sc.hopLimit != nil {
		s.hopLimit = *sc.hopLimit
	}
	if sc.queueCapacity > 0 {
		s.capacity = sc.queueCapacity
	}
	if sc.actionTimeout > 0 {
		s.timeout = sc.actionTimeout
	}

	s.executor = action.NewExecutor(action.Config{
		Notifier: s.notifier,
		Advisor:  s.advisor,
		FollowUp: s.followUp,
		Logger:   s.logger,
	}, action.WithTimeout(s.timeout))

	return s, nil
}

// ProcessEvent runs the event through every matching rule and returns the
// audit sequence: one ExecutedAction per attempted action, in rule
// registration order then declared action order. Failed actions stay in
// the sequence with Succeeded false; collaborator failures never surface
// as the returned error. A type with no rules yields an empty, non-nil
// sequence.
//
// The error return is reserved for invalid events: an empty type or trip
// ID is rejected with a ValidationError before any rule runs.
func (s *Service) ProcessEvent(ctx context.Context, ev event.CoordinationEvent) ([]action.ExecutedAction, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateEvent(ev); err != nil {
		return nil, err
	}

	s.recordAvailability(ev)

	log := s.logger.WithTrip(ev.TripID).WithEventType(string(ev.Type))

	audit := []action.ExecutedAction{}
	matched := 0
	for _, rl := range s.registry.RulesFor(ev.Type) {
		if !rl.Matches(ev) {
			continue
		}
		matched++
		rlog := log.WithRule(rl.Name)
		rlog.Debug("rule matched", "event_id", ev.ID, "actions", len(rl.Actions))
		rc := rl.ActionContext()
		for _, d := range rl.Actions {
			audit = append(audit, s.executor.Execute(ctx, d, rc, ev))
		}
	}

	succeeded := 0
	for _, record := range audit {
		if record.Succeeded {
			succeeded++
		}
	}
	log.Info("event processed",
		"event_id", ev.ID,
		"rules_matched", matched,
		"actions_executed", len(audit),
		"actions_succeeded", succeeded,
	)
	s.publishCompleted(ev, matched, len(audit), succeeded)
	return audit, nil
}

// Running reports whether the escalation dispatcher is started.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// validateEvent rejects events that bypassed the constructors.
func validateEvent(ev event.CoordinationEvent) error {
	if ev.Type == "" {
		return errors.NewValidationError("event type cannot be empty").
			WithField("type")
	}
	if ev.TripID == "" {
		return errors.NewValidationError("trip ID cannot be empty").
			WithField("trip_id")
	}
	return nil
}

// recordAvailability feeds availability payloads to the advisor when it
// accepts them. Malformed payloads are logged and ignored: availability
// is advisory input, never a reason to reject the event.
func (s *Service) recordAvailability(ev event.CoordinationEvent) {
	rec, ok := s.advisor.(availabilityRecorder)
	if !ok {
		return
	}
	raw, ok := ev.DataValue("availability")
	if !ok {
		return
	}
	fams, err := schedule.ParseAvailability(raw)
	if err != nil {
		s.logger.WithTrip(ev.TripID).Warn("ignoring malformed availability payload",
			"event_id", ev.ID, "error", err.Error())
		return
	}
	rec.RecordAvailability(ev.TripID, fams)
}

func (s *Service) publishCompleted(ev event.CoordinationEvent, matched, executed, succeeded int) {
	if s.bus == nil {
		return
	}
	out, err := event.New(TypeAutomationCompleted, ev.TripID,
		event.WithData(map[string]any{
			"event_id":          ev.ID,
			"event_type":        string(ev.Type),
			"rules_matched":     matched,
			"actions_executed":  executed,
			"actions_succeeded": succeeded,
		}),
	)
	if err != nil {
		return
	}
	s.bus.Publish(out)
}

func (s *Service) publishAborted(ev event.CoordinationEvent) {
	if s.bus == nil {
		return
	}
	out, err := event.New(TypeEscalationAborted, ev.TripID,
		event.WithPriority(ev.Priority),
		event.WithHops(ev.Hops),
		event.WithData(map[string]any{
			"source_event_id": ev.ID,
			"hop_limit":       s.hopLimit,
		}),
	)
	if err != nil {
		return
	}
	s.bus.Publish(out)
}

// noopNotifier drops notifications. Default when no Notifier is wired.
type noopNotifier struct{}

func (noopNotifier) Send(context.Context, action.Notification) error { return nil }

// noopEscalator accepts and discards escalations. Default when no
// Escalator is wired.
type noopEscalator struct{}

func (noopEscalator) Escalate(context.Context, action.EscalationRequest) error { return nil }
