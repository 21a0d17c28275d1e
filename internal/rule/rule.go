package rule

import (
	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// AutomationRule binds an event type to the actions the engine takes when
// the rule's conditions hold. Rules are pure configuration with no
// behavior of their own.
type AutomationRule struct {
	// Name uniquely identifies the rule; audit records carry it.
	Name string
	// EventType is the concrete event type the rule reacts to.
	EventType event.Type
	// Conditions must all hold for the rule to fire. Empty means always.
	Conditions []Condition
	// Actions run in declared order when the rule fires.
	Actions []action.Descriptor
	// PriorityOverride, when set, replaces the event priority for every
	// action the rule produces. Nil inherits the event priority.
	PriorityOverride *event.Priority
}

// Matches reports whether the event satisfies all rule conditions.
func (r AutomationRule) Matches(ev event.CoordinationEvent) bool {
	return Matches(r.Conditions, ev)
}

// ActionContext is the rule view handed to the action executor.
func (r AutomationRule) ActionContext() action.RuleContext {
	return action.RuleContext{Name: r.Name, PriorityOverride: r.PriorityOverride}
}
