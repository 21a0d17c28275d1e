package action

import (
	"strings"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
)

// Kind identifies an action verb.
type Kind string

const (
	// KindNotify sends a notification scoped to the event's trip and family.
	KindNotify Kind = "notify"
	// KindSuggestSchedule asks the scheduling advisor for ranked time slots.
	KindSuggestSchedule Kind = "suggest_schedule"
	// KindEscalate derives an escalation event for the consensus layer.
	KindEscalate Kind = "escalate"
)

// ParseKind parses an action kind as written in rule files.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindNotify, KindSuggestSchedule, KindEscalate:
		return k, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownActionKind, "%q", s)
	}
}

// Valid reports whether the kind is one of the supported verbs.
func (k Kind) Valid() bool {
	switch k {
	case KindNotify, KindSuggestSchedule, KindEscalate:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Descriptor names an action kind plus its open parameter map.
type Descriptor struct {
	Kind   Kind
	Params map[string]any
}

// NewDescriptor builds a descriptor, deep-copying params so a loaded rule
// cannot be mutated through a shared map.
func NewDescriptor(kind Kind, params map[string]any) Descriptor {
	return Descriptor{
		Kind:   kind,
		Params: cloneParams(params),
	}
}

// stringParam reads a string parameter, "" when absent or mistyped.
func (d Descriptor) stringParam(key string) string {
	s, _ := d.Params[key].(string)
	return s
}

func cloneParams(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = cloneParamValue(v)
	}
	return out
}

func cloneParamValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneParams(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneParamValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
