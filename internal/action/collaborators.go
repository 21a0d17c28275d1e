package action

import (
	"context"

	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

// Notification is the payload handed to the notification collaborator.
// Recipient scope is the trip, narrowed to one family when FamilyID is set.
type Notification struct {
	TripID   string
	FamilyID string
	Message  string
	Priority event.Priority
	// Template optionally names a message template on the delivery side.
	Template string
	// Data carries the event payload for template rendering.
	Data map[string]any
}

// Notifier delivers notifications. Delivery channels and retry policy live
// behind this interface; the engine sees one error per send.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Escalator hands escalation requests to the consensus layer. The
// consensus layer may emit new coordination events in response, which is
// why escalations flow through the dispatcher's hop guard and never call
// this interface from inside a live event chain.
type Escalator interface {
	Escalate(ctx context.Context, req EscalationRequest) error
}

// Advisor computes schedule suggestions for a trip. Implementations bind
// availability data to the pure scheduling computation.
type Advisor interface {
	Suggest(tripID string) ([]schedule.Suggestion, error)
}

// FollowUpFunc receives events derived by escalate actions, along with the
// context of the triggering call. The owner queues them for dispatch, or
// dispatches inline when running synchronously; returning an error fails
// the action that derived the event.
type FollowUpFunc func(ctx context.Context, ev event.CoordinationEvent) error

// RuleContext identifies the matched rule an action runs under.
type RuleContext struct {
	// Name is recorded on audit records.
	Name string
	// PriorityOverride, when set, replaces the event priority for every
	// action the rule produces.
	PriorityOverride *event.Priority
}

// EffectivePriority resolves the priority actions run with: the rule
// override wins over the event's own priority.
func (rc RuleContext) EffectivePriority(ev event.CoordinationEvent) event.Priority {
	if rc.PriorityOverride != nil {
		return *rc.PriorityOverride
	}
	return ev.Priority
}
