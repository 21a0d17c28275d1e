package rule

import (
	"fmt"
	"strings"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// Registry is a read-only table of automation rules keyed by event type.
// Construction is the single mutation point; afterwards the registry is
// safe for unsynchronized concurrent reads.
type Registry struct {
	rules map[event.Type][]AutomationRule
	types []event.Type
	count int
}

// NewRegistry validates the given rules and builds the lookup table,
// preserving definition order within each event type. Validation requires
// a non-empty name, a non-empty event type, at least one action with a
// supported kind, and name uniqueness across the whole table.
func NewRegistry(rules ...AutomationRule) (*Registry, error) {
	r := &Registry{rules: make(map[event.Type][]AutomationRule, len(rules))}
	seen := make(map[string]bool, len(rules))

	for _, rl := range rules {
		if err := validateRule(rl); err != nil {
			return nil, err
		}
		if seen[rl.Name] {
			return nil, errors.NewRuleError("duplicate rule name", errors.ErrRuleInvalid).WithRule(rl.Name)
		}
		seen[rl.Name] = true

		if _, ok := r.rules[rl.EventType]; !ok {
			r.types = append(r.types, rl.EventType)
		}
		r.rules[rl.EventType] = append(r.rules[rl.EventType], rl)
		r.count++
	}
	return r, nil
}

func validateRule(rl AutomationRule) error {
	if strings.TrimSpace(rl.Name) == "" {
		return errors.NewRuleError("rule name is required", errors.ErrRuleInvalid).
			WithEventType(string(rl.EventType))
	}
	if strings.TrimSpace(string(rl.EventType)) == "" {
		return errors.NewRuleError("rule event type is required", errors.ErrRuleInvalid).
			WithRule(rl.Name)
	}
	if len(rl.Actions) == 0 {
		return errors.NewRuleError("rule must declare at least one action", errors.ErrRuleInvalid).
			WithRule(rl.Name)
	}
	for _, d := range rl.Actions {
		if !d.Kind.Valid() {
			return errors.NewRuleError(fmt.Sprintf("unsupported action kind %q", d.Kind),
				errors.ErrUnknownActionKind).WithRule(rl.Name)
		}
	}
	return nil
}

// RulesFor returns the rules registered for the event type in definition
// order. The returned slice is a copy, so callers cannot mutate registry
// state; unknown types yield an empty slice.
func (r *Registry) RulesFor(t event.Type) []AutomationRule {
	stored := r.rules[t]
	out := make([]AutomationRule, len(stored))
	copy(out, stored)
	return out
}

// Rule returns the registered rule with the given name. Lookups against
// an empty registry fail with ErrRegistryEmpty so misconfiguration reads
// differently from a typo.
func (r *Registry) Rule(name string) (AutomationRule, error) {
	if r.count == 0 {
		return AutomationRule{}, errors.Wrapf(errors.ErrRegistryEmpty, "looking up %q", name)
	}
	for _, t := range r.types {
		for _, rl := range r.rules[t] {
			if rl.Name == name {
				return rl, nil
			}
		}
	}
	return AutomationRule{}, fmt.Errorf("%w: %s", errors.ErrRuleNotFound, name)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return r.count
}

// Types returns the event types with at least one rule, in first-seen
// definition order.
func (r *Registry) Types() []event.Type {
	out := make([]event.Type, len(r.types))
	copy(out, r.types)
	return out
}
