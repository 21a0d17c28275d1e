package rule

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// rulesFile is the YAML wire shape of a rules file.
type rulesFile struct {
	// Rules lists the automation rules in definition order.
	Rules []ruleSpec `yaml:"rules"`
}

// ruleSpec is one rule entry as written in YAML.
type ruleSpec struct {
	// Name uniquely identifies the rule.
	Name string `yaml:"name"`
	// Event is a concrete event type or a glob pattern over known types.
	Event string `yaml:"event"`
	// Conditions maps field names to condition expressions.
	Conditions map[string]any `yaml:"conditions,omitempty"`
	// Priority optionally overrides the event priority for all actions.
	Priority string `yaml:"priority,omitempty"`
	// Actions run in declared order when the rule fires.
	Actions []actionSpec `yaml:"actions"`
}

// actionSpec is one action entry under a rule.
type actionSpec struct {
	// Kind names the verb: notify, suggest_schedule or escalate.
	Kind string `yaml:"kind"`
	// Params carries open verb parameters.
	Params map[string]any `yaml:"params,omitempty"`
}

// LoadFile reads and parses a YAML rules file into a validated registry.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return reg, nil
}

// Parse parses YAML rule definitions into a validated registry. A file
// with no rules yields an empty registry, which is legal: the engine then
// audits every event as an empty run.
func Parse(data []byte) (*Registry, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}

	var rules []AutomationRule
	for _, spec := range file.Rules {
		expanded, err := buildRules(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, expanded...)
	}
	return NewRegistry(rules...)
}

// buildRules turns one YAML entry into concrete rules, expanding glob
// event patterns against the known event types so registry lookups stay a
// plain map access.
func buildRules(spec ruleSpec) ([]AutomationRule, error) {
	conds, err := buildConditions(spec)
	if err != nil {
		return nil, err
	}
	actions, err := buildActions(spec)
	if err != nil {
		return nil, err
	}
	override, err := buildOverride(spec)
	if err != nil {
		return nil, err
	}

	pattern := strings.TrimSpace(spec.Event)
	if !strings.ContainsAny(pattern, "*?[{") {
		return []AutomationRule{{
			Name:             spec.Name,
			EventType:        event.Type(pattern),
			Conditions:       conds,
			Actions:          actions,
			PriorityOverride: override,
		}}, nil
	}

	matched, err := expandPattern(pattern)
	if err != nil {
		return nil, errors.NewRuleError("expanding event pattern", err).WithRule(spec.Name)
	}
	rules := make([]AutomationRule, 0, len(matched))
	for _, t := range matched {
		rules = append(rules, AutomationRule{
			Name:             spec.Name + "-" + string(t),
			EventType:        t,
			Conditions:       conds,
			Actions:          actions,
			PriorityOverride: override,
		})
	}
	return rules, nil
}

// expandPattern matches a glob pattern against the known event types, in
// catalog order. A pattern matching nothing is a load error so typos in
// rule files surface immediately instead of producing silent dead rules.
func expandPattern(pattern string) ([]event.Type, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling pattern %q", pattern)
	}

	var matched []event.Type
	for _, t := range event.KnownTypes() {
		if g.Match(string(t)) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return nil, errors.Wrapf(errors.ErrPatternUnmatched, "%q", pattern)
	}
	return matched, nil
}

// buildConditions parses the condition map in sorted field order so the
// built rule is identical however YAML iterated the map.
func buildConditions(spec ruleSpec) ([]Condition, error) {
	if len(spec.Conditions) == 0 {
		return nil, nil
	}

	fields := make([]string, 0, len(spec.Conditions))
	for field := range spec.Conditions {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conds := make([]Condition, 0, len(fields))
	for _, field := range fields {
		cond, err := ParseCondition(field, spec.Conditions[field])
		if err != nil {
			return nil, errors.NewRuleError("invalid condition", err).WithRule(spec.Name)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func buildActions(spec ruleSpec) ([]action.Descriptor, error) {
	actions := make([]action.Descriptor, 0, len(spec.Actions))
	for _, a := range spec.Actions {
		kind, err := action.ParseKind(a.Kind)
		if err != nil {
			return nil, errors.NewRuleError("invalid action", err).WithRule(spec.Name)
		}
		actions = append(actions, action.NewDescriptor(kind, a.Params))
	}
	return actions, nil
}

func buildOverride(spec ruleSpec) (*event.Priority, error) {
	if strings.TrimSpace(spec.Priority) == "" {
		return nil, nil
	}
	p, err := event.ParsePriority(spec.Priority)
	if err != nil {
		return nil, errors.NewRuleError("invalid priority override", err).WithRule(spec.Name)
	}
	return &p, nil
}
