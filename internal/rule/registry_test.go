package rule

import (
	"testing"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

func notifyRule(name string, t event.Type) AutomationRule {
	return AutomationRule{
		Name:      name,
		EventType: t,
		Actions:   []action.Descriptor{action.NewDescriptor(action.KindNotify, nil)},
	}
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(
		notifyRule("welcome-family", event.FamilyJoined),
		notifyRule("surface-conflict", event.ConflictDetected),
		notifyRule("nudge-family", event.FamilyJoined),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if reg.Len() != 3 {
		t.Errorf("Expected 3 rules, got %d", reg.Len())
	}

	types := reg.Types()
	if len(types) != 2 {
		t.Fatalf("Expected 2 types, got %d", len(types))
	}
	if types[0] != event.FamilyJoined || types[1] != event.ConflictDetected {
		t.Errorf("Expected first-seen type order, got %v", types)
	}

	joined := reg.RulesFor(event.FamilyJoined)
	if len(joined) != 2 {
		t.Fatalf("Expected 2 rules for family.joined, got %d", len(joined))
	}
	if joined[0].Name != "welcome-family" || joined[1].Name != "nudge-family" {
		t.Errorf("Expected definition order preserved, got %s then %s", joined[0].Name, joined[1].Name)
	}
}

func TestNewRegistryValidation(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := NewRegistry(notifyRule("", event.FamilyJoined))
		if err == nil {
			t.Fatal("Expected error for empty rule name")
		}
		if !errors.Is(err, errors.ErrRuleInvalid) {
			t.Errorf("Expected ErrRuleInvalid, got %v", err)
		}
	})

	t.Run("empty event type", func(t *testing.T) {
		_, err := NewRegistry(notifyRule("r", ""))
		if !errors.Is(err, errors.ErrRuleInvalid) {
			t.Errorf("Expected ErrRuleInvalid, got %v", err)
		}
	})

	t.Run("no actions", func(t *testing.T) {
		_, err := NewRegistry(AutomationRule{Name: "r", EventType: event.FamilyJoined})
		if !errors.Is(err, errors.ErrRuleInvalid) {
			t.Errorf("Expected ErrRuleInvalid, got %v", err)
		}
	})

	t.Run("unsupported action kind", func(t *testing.T) {
		_, err := NewRegistry(AutomationRule{
			Name:      "r",
			EventType: event.FamilyJoined,
			Actions:   []action.Descriptor{{Kind: "reboot"}},
		})
		if !errors.Is(err, errors.ErrUnknownActionKind) {
			t.Errorf("Expected ErrUnknownActionKind, got %v", err)
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := NewRegistry(
			notifyRule("r", event.FamilyJoined),
			notifyRule("r", event.FamilyLeft),
		)
		if !errors.Is(err, errors.ErrRuleInvalid) {
			t.Errorf("Expected ErrRuleInvalid, got %v", err)
		}
	})
}

func TestRulesForReturnsCopy(t *testing.T) {
	reg, err := NewRegistry(notifyRule("welcome-family", event.FamilyJoined))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := reg.RulesFor(event.FamilyJoined)
	first[0].Name = "mutated"

	second := reg.RulesFor(event.FamilyJoined)
	if second[0].Name != "welcome-family" {
		t.Errorf("Expected registry state untouched, got %s", second[0].Name)
	}
}

func TestRulesForUnknownType(t *testing.T) {
	reg, err := NewRegistry(notifyRule("r", event.FamilyJoined))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := reg.RulesFor(event.VotingStarted)
	if got == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("Expected no rules, got %d", len(got))
	}
}

func TestEmptyRegistry(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Expected 0 rules, got %d", reg.Len())
	}
	if len(reg.Types()) != 0 {
		t.Errorf("Expected no types, got %v", reg.Types())
	}

	if _, err := reg.Rule("welcome-family"); !errors.Is(err, errors.ErrRegistryEmpty) {
		t.Errorf("Expected ErrRegistryEmpty, got %v", err)
	}
}

func TestRuleByName(t *testing.T) {
	reg, err := NewRegistry(
		notifyRule("welcome-family", event.FamilyJoined),
		notifyRule("surface-conflict", event.ConflictDetected),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rl, err := reg.Rule("surface-conflict")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rl.EventType != event.ConflictDetected {
		t.Errorf("Expected conflict.detected rule, got %s", rl.EventType)
	}

	if _, err := reg.Rule("no-such-rule"); !errors.Is(err, errors.ErrRuleNotFound) {
		t.Errorf("Expected ErrRuleNotFound, got %v", err)
	}
}

func TestRuleMatches(t *testing.T) {
	r := AutomationRule{
		Name:      "ready-check",
		EventType: event.AllFamiliesReady,
		Conditions: []Condition{
			{Field: "fraction_ready", Op: OpGreaterOrEqual, Value: 1.0},
		},
		Actions: []action.Descriptor{action.NewDescriptor(action.KindNotify, nil)},
	}

	ready, err := event.NewAllFamiliesReady("trip-1", 1.0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !r.Matches(ready) {
		t.Error("Expected rule to match a fully ready trip")
	}

	half, err := event.NewAllFamiliesReady("trip-1", 0.5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if r.Matches(half) {
		t.Error("Expected rule to not match a half-ready trip")
	}
}

func TestActionContext(t *testing.T) {
	urgent := event.PriorityUrgent
	r := AutomationRule{
		Name:             "surface-conflict",
		EventType:        event.ConflictDetected,
		Actions:          []action.Descriptor{action.NewDescriptor(action.KindNotify, nil)},
		PriorityOverride: &urgent,
	}

	rc := r.ActionContext()
	if rc.Name != "surface-conflict" {
		t.Errorf("Expected rule name in context, got %q", rc.Name)
	}
	if rc.PriorityOverride == nil || *rc.PriorityOverride != event.PriorityUrgent {
		t.Errorf("Expected urgent override, got %v", rc.PriorityOverride)
	}
}
