package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// Operator is a condition comparator. The set is fixed: equality, the four
// numeric orderings, membership and presence. There is no expression
// language beyond these.
type Operator int

const (
	// OpEqual matches when the field loosely equals Value.
	OpEqual Operator = iota
	// OpGreaterThan matches when the field is numerically greater than Value.
	OpGreaterThan
	// OpGreaterOrEqual matches when the field is numerically at least Value.
	OpGreaterOrEqual
	// OpLessThan matches when the field is numerically less than Value.
	OpLessThan
	// OpLessOrEqual matches when the field is numerically at most Value.
	OpLessOrEqual
	// OpIn matches when the field equals any member of Set.
	OpIn
	// OpExists matches when the field is present, whatever its value.
	OpExists
)

func (op Operator) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpGreaterThan:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpLessThan:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpIn:
		return "in"
	case OpExists:
		return "exists"
	}
	return fmt.Sprintf("operator(%d)", int(op))
}

// Condition is one field predicate inside a rule. All of a rule's
// conditions must hold for the rule to fire.
type Condition struct {
	// Field names a payload key or one of the well-known envelope fields
	// trip_id, family_id, user_id, priority.
	Field string
	// Op selects the comparator variant.
	Op Operator
	// Value is the right-hand operand for equality and ordering.
	Value any
	// Set lists the accepted members for OpIn.
	Set []any
}

// ParseCondition parses one rule-file condition entry. A bare scalar means
// equality. Strings may start with a comparator token: ">=", ">", "<=",
// "<" followed by a number, "in " followed by a bracketed list, or the
// word "exists". Maps carry the native forms {in: [a, b]} and
// {exists: true}. Unknown comparators are load errors.
func ParseCondition(field string, raw any) (Condition, error) {
	if strings.TrimSpace(field) == "" {
		return Condition{}, errors.NewValidationError("condition field cannot be empty").WithField("field")
	}
	switch v := raw.(type) {
	case map[string]any:
		return parseMapCondition(field, v)
	case string:
		return parseStringCondition(field, v)
	default:
		return Condition{Field: field, Op: OpEqual, Value: v}, nil
	}
}

func parseMapCondition(field string, m map[string]any) (Condition, error) {
	if len(m) != 1 {
		return Condition{}, errors.Wrapf(errors.ErrUnknownComparator,
			"field %s: condition maps take exactly one comparator key", field)
	}
	var key string
	var val any
	for k, v := range m {
		key, val = k, v
	}

	switch strings.ToLower(key) {
	case "in":
		items, ok := val.([]any)
		if !ok || len(items) == 0 {
			return Condition{}, errors.NewValidationError("in condition requires a non-empty list").
				WithField(field).WithValue(val)
		}
		set := make([]any, len(items))
		copy(set, items)
		return Condition{Field: field, Op: OpIn, Set: set}, nil
	case "exists":
		b, ok := val.(bool)
		if !ok || !b {
			return Condition{}, errors.NewValidationError("exists condition must be true").
				WithField(field).WithValue(val)
		}
		return Condition{Field: field, Op: OpExists}, nil
	default:
		return Condition{}, errors.Wrapf(errors.ErrUnknownComparator, "field %s: %q", field, key)
	}
}

func parseStringCondition(field, s string) (Condition, error) {
	trimmed := strings.TrimSpace(s)

	orderings := []struct {
		token string
		op    Operator
	}{
		{">=", OpGreaterOrEqual},
		{"<=", OpLessOrEqual},
		{">", OpGreaterThan},
		{"<", OpLessThan},
	}
	for _, cmp := range orderings {
		rest, ok := strings.CutPrefix(trimmed, cmp.token)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return Condition{}, errors.NewValidationError("ordering comparator requires a numeric operand").
				WithField(field).WithValue(s)
		}
		return Condition{Field: field, Op: cmp.op, Value: f}, nil
	}

	if rest, ok := strings.CutPrefix(trimmed, "in "); ok {
		return parseInList(field, rest)
	}
	if trimmed == "exists" {
		return Condition{Field: field, Op: OpExists}, nil
	}
	return Condition{Field: field, Op: OpEqual, Value: s}, nil
}

func parseInList(field, rest string) (Condition, error) {
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "[")
	rest = strings.TrimSuffix(rest, "]")

	var set []any
	for _, item := range strings.Split(rest, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set = append(set, item)
		}
	}
	if len(set) == 0 {
		return Condition{}, errors.NewValidationError("in condition requires a non-empty list").
			WithField(field)
	}
	return Condition{Field: field, Op: OpIn, Set: set}, nil
}

// Matches reports whether the event satisfies every condition. An empty
// slice matches everything. Evaluation is pure and never panics: missing
// fields, incomparable types and malformed stored conditions all evaluate
// to non-match.
func Matches(conds []Condition, ev event.CoordinationEvent) bool {
	for _, c := range conds {
		if !c.matches(ev) {
			return false
		}
	}
	return true
}

func (c Condition) matches(ev event.CoordinationEvent) bool {
	val, ok := fieldValue(c.Field, ev)
	if c.Op == OpExists {
		return ok
	}
	if !ok {
		return false
	}

	switch c.Op {
	case OpEqual:
		return looseEqual(val, c.Value)
	case OpGreaterThan, OpGreaterOrEqual, OpLessThan, OpLessOrEqual:
		return compareNumeric(c.Op, val, c.Value)
	case OpIn:
		for _, member := range c.Set {
			if looseEqual(val, member) {
				return true
			}
		}
		return false
	}
	// Malformed stored operator: non-match, never a panic.
	return false
}

// fieldValue resolves a condition field against the event: the well-known
// envelope fields by name, then the open payload. Empty envelope strings
// count as absent so {exists: true} means what rule authors expect.
func fieldValue(field string, ev event.CoordinationEvent) (any, bool) {
	switch field {
	case "trip_id":
		return ev.TripID, ev.TripID != ""
	case "family_id":
		return ev.FamilyID, ev.FamilyID != ""
	case "user_id":
		return ev.UserID, ev.UserID != ""
	case "priority":
		return ev.Priority.String(), true
	}
	return ev.DataValue(field)
}

// looseEqual compares scalars across the kinds JSON and YAML decoding
// produce: numbers (including numeric strings) through a float64 path,
// then strings and bools by kind. Anything else is unequal.
func looseEqual(a, b any) bool {
	if fa, aok := toNumber(a); aok {
		if fb, bok := toNumber(b); bok {
			return fa == fb
		}
	}
	switch av := a.(type) {
	case string:
		bs, ok := b.(string)
		return ok && av == bs
	case bool:
		bb, ok := b.(bool)
		return ok && av == bb
	}
	return false
}

func compareNumeric(op Operator, a, b any) bool {
	fa, aok := toNumber(a)
	fb, bok := toNumber(b)
	if !aok || !bok {
		return false
	}
	switch op {
	case OpGreaterThan:
		return fa > fb
	case OpGreaterOrEqual:
		return fa >= fb
	case OpLessThan:
		return fa < fb
	case OpLessOrEqual:
		return fa <= fb
	}
	return false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
