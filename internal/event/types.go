package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
)

// Type identifies a kind of coordination event.
// The set is open: the rule registry accepts any non-empty value, so new
// backend events flow through without an engine release. The named
// constants below form the catalog that glob patterns in rule files
// expand against.
type Type string

// Event types emitted by the trip-planning backend
const (
	// FamilyJoined indicates a family accepted a trip invitation.
	FamilyJoined Type = "family.joined"
	// FamilyLeft indicates a family withdrew from a trip.
	FamilyLeft Type = "family.left"
	// PreferencesUpdated indicates a family changed its trip preferences.
	PreferencesUpdated Type = "preferences.updated"
	// ConflictDetected indicates a scheduling conflict between families.
	ConflictDetected Type = "conflict.detected"
	// AllFamiliesReady indicates every family on the trip reached readiness.
	AllFamiliesReady Type = "families.ready"
	// VotingStarted indicates a consensus round opened for the trip.
	VotingStarted Type = "voting.started"
	// VotingCompleted indicates a consensus round closed.
	VotingCompleted Type = "voting.completed"
)

// Event types emitted by the engine itself
const (
	// EscalationRequested is the derived event produced by the escalate
	// action. Its Hops field carries the escalation depth used by the
	// dispatcher's cycle guard.
	EscalationRequested Type = "escalation.requested"
)

// KnownTypes returns the catalog of named event types in declaration order.
func KnownTypes() []Type {
	return []Type{
		FamilyJoined,
		FamilyLeft,
		PreferencesUpdated,
		ConflictDetected,
		AllFamiliesReady,
		VotingStarted,
		VotingCompleted,
		EscalationRequested,
	}
}

// Priority ranks how urgently downstream consumers should treat an event.
// Priorities are ordered: Low < Medium < High < Urgent.
type Priority int

const (
	// PriorityLow marks informational events.
	PriorityLow Priority = iota
	// PriorityMedium is the default for constructed events.
	PriorityMedium
	// PriorityHigh marks events that should interrupt normal flow.
	PriorityHigh
	// PriorityUrgent marks events requiring immediate attention,
	// such as detected conflicts.
	PriorityUrgent
)

// String returns the lowercase name used in config and rule files.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority converts a config or rule file string into a Priority.
// Matching is case-insensitive. Unknown values return an error.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "urgent":
		return PriorityUrgent, nil
	default:
		return PriorityMedium, errors.NewValidationError("unknown priority").
			WithField("priority").WithValue(s)
	}
}

// CoordinationEvent is one observed group-decision fact: a family joined,
// preferences changed, a conflict surfaced. Events are immutable values:
// constructors deep-copy payloads and derivation helpers return copies, so
// an event handed to the engine can never be altered under it.
type CoordinationEvent struct {
	// ID uniquely identifies this event instance.
	ID string
	// Type is the event kind. Never empty.
	Type Type
	// TripID scopes the event to one trip. Never empty.
	TripID string
	// FamilyID is the acting family, or "" when not family-scoped.
	FamilyID string
	// UserID is the acting user, or "" when not user-scoped.
	UserID string
	// Data is the open payload. Typed constructors document the
	// well-known keys they populate.
	Data map[string]any
	// Timestamp records when the event was constructed. Informative
	// only; the engine never orders by it.
	Timestamp time.Time
	// Priority defaults to PriorityMedium.
	Priority Priority
	// Hops counts escalation depth. Externally triggered events carry 0;
	// each derived escalation event carries its source's count plus one.
	Hops int
}

// EventOption customizes an event at construction time.
type EventOption func(*CoordinationEvent)

// WithFamily sets the acting family.
func WithFamily(familyID string) EventOption {
	return func(e *CoordinationEvent) { e.FamilyID = familyID }
}

// WithUser sets the acting user.
func WithUser(userID string) EventOption {
	return func(e *CoordinationEvent) { e.UserID = userID }
}

// WithData merges the given payload into the event's Data.
// The provided map is deep-copied; later caller mutation cannot alter
// the event.
func WithData(data map[string]any) EventOption {
	return func(e *CoordinationEvent) {
		for k, v := range data {
			e.Data[k] = copyValue(v)
		}
	}
}

// WithPriority overrides the default PriorityMedium.
func WithPriority(p Priority) EventOption {
	return func(e *CoordinationEvent) { e.Priority = p }
}

// WithTimestamp overrides the construction time. Intended for tests and
// for replaying recorded events.
func WithTimestamp(ts time.Time) EventOption {
	return func(e *CoordinationEvent) { e.Timestamp = ts }
}

// WithHops sets the escalation depth at construction time.
func WithHops(hops int) EventOption {
	return func(e *CoordinationEvent) { e.Hops = hops }
}

// New constructs a CoordinationEvent of the given type scoped to tripID.
// The returned event carries a generated ID, the current time, an empty
// payload, and PriorityMedium unless options override them.
//
// An empty type or trip ID is the only construction-time fault in the
// engine and returns a ValidationError.
func New(t Type, tripID string, opts ...EventOption) (CoordinationEvent, error) {
	if t == "" {
		return CoordinationEvent{}, errors.NewValidationError("event type cannot be empty").
			WithField("type")
	}
	if tripID == "" {
		return CoordinationEvent{}, errors.NewValidationError("trip ID cannot be empty").
			WithField("trip_id")
	}

	ev := CoordinationEvent{
		ID:        uuid.NewString(),
		Type:      t,
		TripID:    tripID,
		Data:      make(map[string]any),
		Timestamp: time.Now(),
		Priority:  PriorityMedium,
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev, nil
}

// NewFamilyJoined reports that familyID accepted the invitation to tripID.
// The optional data payload is merged into Data unchanged.
func NewFamilyJoined(tripID, familyID string, data map[string]any) (CoordinationEvent, error) {
	return New(FamilyJoined, tripID, WithFamily(familyID), WithData(data))
}

// NewFamilyLeft reports that familyID withdrew from tripID.
// The optional data payload is merged into Data unchanged.
func NewFamilyLeft(tripID, familyID string, data map[string]any) (CoordinationEvent, error) {
	return New(FamilyLeft, tripID, WithFamily(familyID), WithData(data))
}

// NewPreferencesUpdated reports that a user changed a family's trip
// preferences. Populates Data key "changed_fields" with a copy of the
// changed preference names.
func NewPreferencesUpdated(tripID, familyID, userID string, changedFields []string) (CoordinationEvent, error) {
	fields := make([]string, len(changedFields))
	copy(fields, changedFields)
	return New(PreferencesUpdated, tripID,
		WithFamily(familyID),
		WithUser(userID),
		WithData(map[string]any{"changed_fields": fields}),
	)
}

// NewConflictDetected reports a scheduling conflict between families on a
// trip. Populates Data keys "description" and "family_ids" (copied) and
// defaults the priority to PriorityUrgent.
func NewConflictDetected(tripID, description string, familyIDs []string) (CoordinationEvent, error) {
	ids := make([]string, len(familyIDs))
	copy(ids, familyIDs)
	return New(ConflictDetected, tripID,
		WithPriority(PriorityUrgent),
		WithData(map[string]any{
			"description": description,
			"family_ids":  ids,
		}),
	)
}

// NewAllFamiliesReady reports that the trip reached readiness. Populates
// Data key "fraction_ready" with the fraction of families ready, 1.0
// meaning all of them.
func NewAllFamiliesReady(tripID string, fractionReady float64) (CoordinationEvent, error) {
	return New(AllFamiliesReady, tripID,
		WithData(map[string]any{"fraction_ready": fractionReady}),
	)
}

// NewVotingStarted reports that a consensus round opened for the trip.
// The optional data payload is merged into Data unchanged.
func NewVotingStarted(tripID string, data map[string]any) (CoordinationEvent, error) {
	return New(VotingStarted, tripID, WithData(data))
}

// NewVotingCompleted reports that a consensus round closed.
// The optional data payload is merged into Data unchanged.
func NewVotingCompleted(tripID string, data map[string]any) (CoordinationEvent, error) {
	return New(VotingCompleted, tripID, WithData(data))
}

// DataValue looks up a payload key.
func (e CoordinationEvent) DataValue(key string) (any, bool) {
	v, ok := e.Data[key]
	return v, ok
}

// Clone returns a deep copy. Mutating the copy's payload cannot affect
// the original.
func (e CoordinationEvent) Clone() CoordinationEvent {
	clone := e
	clone.Data = copyData(e.Data)
	return clone
}

// WithHops returns a deep copy of the event with its escalation depth set.
// The receiver is unchanged.
func (e CoordinationEvent) WithHops(hops int) CoordinationEvent {
	clone := e.Clone()
	clone.Hops = hops
	return clone
}

// CloneData deep-copies an event payload map. Callers use it to hand
// payload data across package boundaries without aliasing the event.
func CloneData(data map[string]any) map[string]any {
	return copyData(data)
}

// copyData deep-copies a payload map so events cannot alias caller state.
func copyData(data map[string]any) map[string]any {
	if data == nil {
		return make(map[string]any)
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies the payload value kinds that JSON and YAML
// decoding produce. Other values are copied by assignment.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyData(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
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
