package action

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/logging"
	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

// ExecutedAction is one audit record: what ran, under which rule, against
// which event, and how it went.
type ExecutedAction struct {
	Kind    Kind
	Rule    string
	EventID string
	// Succeeded is false when the collaborator errored, timed out or
	// panicked; FailureReason then says why.
	Succeeded     bool
	FailureReason string
	// Suggestions is set for suggest_schedule actions.
	Suggestions []schedule.Suggestion
	// FollowUp is set for escalate actions: the derived event handed to
	// the escalation queue. It is recorded even when queueing failed so
	// the audit shows what was attempted.
	FollowUp *event.CoordinationEvent
	// Duration is how long the action took, queue handoff included.
	Duration time.Duration
}

// Config wires the executor's collaborators. Nil collaborators are legal;
// actions that need a missing one fail with a clear reason instead of
// panicking.
type Config struct {
	Notifier Notifier
	Advisor  Advisor
	// FollowUp receives events derived by escalate actions. When nil the
	// derived event is only recorded on the audit record.
	FollowUp FollowUpFunc
	Logger   *logging.Logger
}

// Option adjusts executor construction.
type Option func(*Executor)

// WithTimeout caps each collaborator call. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithClock replaces the executor's time source in tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Executor) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// DefaultTimeout caps collaborator calls unless WithTimeout overrides it.
const DefaultTimeout = 5 * time.Second

// Executor runs single actions against the configured collaborators. It
// holds no mutable state and is safe for concurrent use.
type Executor struct {
	notifier Notifier
	advisor  Advisor
	followUp FollowUpFunc
	logger   *logging.Logger
	timeout  time.Duration
	clock    func() time.Time
}

// NewExecutor builds an executor over the given collaborators.
func NewExecutor(cfg Config, opts ...Option) *Executor {
	e := &Executor{
		notifier: cfg.Notifier,
		advisor:  cfg.Advisor,
		followUp: cfg.FollowUp,
		logger:   cfg.Logger,
		timeout:  DefaultTimeout,
		clock:    time.Now,
	}
	if e.logger == nil {
		e.logger = logging.NopLogger()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one action and reports the outcome as an audit record. It
// never returns an error and never panics: collaborator errors, timeouts
// and panics all land in the record's FailureReason, so a failing action
// cannot abort its siblings.
func (e *Executor) Execute(ctx context.Context, d Descriptor, rc RuleContext, ev event.CoordinationEvent) ExecutedAction {
	start := e.clock()
	record := ExecutedAction{
		Kind:    d.Kind,
		Rule:    rc.Name,
		EventID: ev.ID,
	}

	var err error
	recovered := panics.Try(func() {
		switch d.Kind {
		case KindNotify:
			err = e.notify(ctx, d, rc, ev)
		case KindSuggestSchedule:
			record.Suggestions, err = e.suggest(ev)
		case KindEscalate:
			record.FollowUp, err = e.escalate(ctx, d, rc, ev)
		default:
			err = errors.Wrapf(errors.ErrUnknownActionKind, "unsupported action kind %q", d.Kind)
		}
	})

	record.Duration = e.clock().Sub(start)
	switch {
	case recovered != nil:
		record.FailureReason = fmt.Sprintf("panic: %v", recovered.Value)
		e.logger.WithTrip(ev.TripID).WithRule(rc.Name).Error("action panicked",
			"kind", string(d.Kind), "panic", fmt.Sprint(recovered.Value))
	case err != nil:
		record.FailureReason = err.Error()
		e.logger.WithTrip(ev.TripID).WithRule(rc.Name).Warn("action failed",
			"kind", string(d.Kind), "error", err.Error())
	default:
		record.Succeeded = true
	}
	return record
}

func (e *Executor) notify(ctx context.Context, d Descriptor, rc RuleContext, ev event.CoordinationEvent) error {
	if e.notifier == nil {
		return errors.New("no notifier configured")
	}

	n := Notification{
		TripID:   ev.TripID,
		FamilyID: ev.FamilyID,
		Message:  d.stringParam("message"),
		Priority: rc.EffectivePriority(ev),
		Template: d.stringParam("template"),
		Data:     event.CloneData(ev.Data),
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	if err := e.notifier.Send(ctx, n); err != nil {
		return e.classify("notify", err)
	}
	return nil
}

func (e *Executor) suggest(ev event.CoordinationEvent) ([]schedule.Suggestion, error) {
	if e.advisor == nil {
		return nil, errors.New("no advisor configured")
	}
	suggestions, err := e.advisor.Suggest(ev.TripID)
	if err != nil {
		return nil, errors.Wrap(err, "computing schedule suggestions")
	}
	return suggestions, nil
}

// escalate builds the escalation request and its queue-form event. The
// Escalator collaborator is deliberately not called here: queued events go
// through the dispatcher so the hop guard is enforced in one place.
func (e *Executor) escalate(ctx context.Context, d Descriptor, rc RuleContext, ev event.CoordinationEvent) (*event.CoordinationEvent, error) {
	req := EscalationRequest{
		ID:        uuid.NewString(),
		TripID:    ev.TripID,
		Reason:    escalationReason(d, ev),
		FamilyIDs: involvedFamilies(ev),
		Priority:  rc.EffectivePriority(ev),
		Hops:      ev.Hops + 1,
		Requested: e.clock(),
	}

	follow, err := req.Event()
	if err != nil {
		return nil, errors.Wrap(err, "deriving escalation event")
	}
	if e.followUp != nil {
		if err := e.followUp(ctx, follow); err != nil {
			return &follow, err
		}
	}
	return &follow, nil
}

func escalationReason(d Descriptor, ev event.CoordinationEvent) string {
	if reason := d.stringParam("reason"); reason != "" {
		return reason
	}
	if raw, ok := ev.DataValue("description"); ok {
		if desc, ok := raw.(string); ok && desc != "" {
			return desc
		}
	}
	return fmt.Sprintf("unresolved %s event", ev.Type)
}

// classify folds context errors into the timeout classification so audit
// reasons distinguish slow collaborators from broken ones.
func (e *Executor) classify(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.NewTimeoutError(op, e.timeout).WithCause(err)
	case errors.Is(err, context.Canceled):
		return errors.Wrap(err, op+" canceled")
	}
	return err
}
