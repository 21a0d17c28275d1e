// Package rule models declarative automation rules: condition predicates
// over event payloads, the rules that group them, a read-only registry
// keyed by event type, and the YAML loader that builds it.
//
// # Condition Syntax
//
// Conditions are a fixed comparator set, not an expression language. Each
// entry under a rule's conditions map names an event field (a payload key,
// or the envelope fields trip_id, family_id, user_id, priority) and one
// predicate:
//
//	conditions:
//	  status: confirmed          # equality (bare scalar)
//	  fraction_ready: ">=1.0"    # ordering: >=, >, <=, < plus a number
//	  region: {in: [eu, us]}     # membership
//	  phase: "in [draft, open]"  # membership, string form
//	  family_id: {exists: true}  # presence
//
// A rule fires only when every condition holds. Numeric comparisons coerce
// int, float and numeric strings through float64; equality is loose across
// those kinds. A missing field never matches (and never errors), so rules
// degrade safely when payloads omit data.
//
// # Event Patterns
//
// The event field accepts a glob over the known event catalog:
//
//	- name: audit-family-changes
//	  event: family.*
//
// Patterns are expanded at load time into one concrete rule per matching
// type, named with the type as a suffix (audit-family-changes-family.joined),
// so registry lookups stay a single map access. A pattern matching no known
// type fails the load.
//
// # Usage
//
//	reg, err := rule.LoadFile("rules.yaml")
//	if err != nil {
//	    return err
//	}
//	for _, r := range reg.RulesFor(event.FamilyJoined) {
//	    if r.Matches(ev) {
//	        // run r.Actions
//	    }
//	}
package rule
