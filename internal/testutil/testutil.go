// Package testutil provides shared builders for engine tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/rule"
	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

// Event builds a coordination event, failing the test on invalid input.
func Event(t *testing.T, typ event.Type, tripID string, opts ...event.EventOption) event.CoordinationEvent {
	t.Helper()

	ev, err := event.New(typ, tripID, opts...)
	if err != nil {
		t.Fatalf("building %s event: %v", typ, err)
	}
	return ev
}

// Registry parses YAML rule definitions into a registry.
func Registry(t *testing.T, rulesYAML string) *rule.Registry {
	t.Helper()

	reg, err := rule.Parse([]byte(rulesYAML))
	if err != nil {
		t.Fatalf("parsing rules: %v", err)
	}
	return reg
}

// Condition parses one condition expression as the rules loader would.
func Condition(t *testing.T, field string, raw any) rule.Condition {
	t.Helper()

	cond, err := rule.ParseCondition(field, raw)
	if err != nil {
		t.Fatalf("parsing condition %s: %v", field, err)
	}
	return cond
}

// Rule builds an automation rule with conditions parsed from their YAML
// forms, in sorted field order so the result is stable.
func Rule(t *testing.T, name string, typ event.Type, conds map[string]any, actions ...action.Descriptor) rule.AutomationRule {
	t.Helper()

	fields := make([]string, 0, len(conds))
	for field := range conds {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	built := make([]rule.Condition, 0, len(fields))
	for _, field := range fields {
		built = append(built, Condition(t, field, conds[field]))
	}
	return rule.AutomationRule{Name: name, EventType: typ, Conditions: built, Actions: actions}
}

// RegistryWith builds a registry from already-constructed rules.
func RegistryWith(t *testing.T, rules ...rule.AutomationRule) *rule.Registry {
	t.Helper()

	reg, err := rule.NewRegistry(rules...)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return reg
}

// TempRulesFile writes YAML rule definitions to a file under the test's
// temp directory and returns its path.
func TempRulesFile(t *testing.T, rulesYAML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(rulesYAML), 0o644); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}
	return path
}

// Window builds a schedule window from RFC 3339 timestamps.
func Window(t *testing.T, start, end string) schedule.Window {
	t.Helper()

	return schedule.NewWindow(Time(t, start), Time(t, end))
}

// Time parses an RFC 3339 timestamp.
func Time(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parsing timestamp %q: %v", value, err)
	}
	return parsed
}

// Availability builds one family's advisor input.
func Availability(familyID string, windows ...schedule.Window) schedule.FamilyAvailability {
	return schedule.FamilyAvailability{FamilyID: familyID, Available: windows}
}

// AvailabilityPayload converts advisor input to the wire shape events
// carry under the "availability" payload key.
func AvailabilityPayload(fams ...schedule.FamilyAvailability) []any {
	payload := make([]any, 0, len(fams))
	for _, fam := range fams {
		m := map[string]any{"family_id": fam.FamilyID}
		if len(fam.Available) > 0 {
			windows := make([]any, 0, len(fam.Available))
			for _, w := range fam.Available {
				windows = append(windows, map[string]any{"start": w.Start, "end": w.End})
			}
			m["available"] = windows
		}
		if fam.Preferred != nil {
			m["preferred"] = map[string]any{"start": fam.Preferred.Start, "end": fam.Preferred.End}
		}
		payload = append(payload, m)
	}
	return payload
}

// TempSpool creates an empty spool file and returns its path together
// with an append function that writes one record line per call.
func TempSpool(t *testing.T) (string, func(record string)) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("creating spool: %v", err)
	}

	appendLine := func(record string) {
		t.Helper()
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			t.Fatalf("opening spool for append: %v", err)
		}
		defer file.Close()
		if _, err := file.WriteString(record + "\n"); err != nil {
			t.Fatalf("appending spool record: %v", err)
		}
	}
	return path, appendLine
}
