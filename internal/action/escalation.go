package action

import (
	"sort"
	"time"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// EscalationRequest asks the consensus layer to take over a decision the
// engine could not resolve automatically.
type EscalationRequest struct {
	// ID identifies the request across the queue round trip.
	ID string
	// TripID scopes the escalation.
	TripID string
	// Reason describes why automated resolution gave up.
	Reason string
	// FamilyIDs lists the families involved, sorted and deduplicated.
	FamilyIDs []string
	// Priority is the resolved priority of the action that escalated.
	Priority event.Priority
	// Hops counts escalation derivations along the event chain: source
	// event hops plus one. The dispatcher refuses requests past its limit.
	Hops int
	// Requested is when the escalating action ran.
	Requested time.Time
}

// Event renders the request in its queue form: an EscalationRequested
// event carrying the request fields in its payload. EscalationFromEvent
// is the inverse.
func (req EscalationRequest) Event() (event.CoordinationEvent, error) {
	return event.New(event.EscalationRequested, req.TripID,
		event.WithPriority(req.Priority),
		event.WithHops(req.Hops),
		event.WithTimestamp(req.Requested),
		event.WithData(map[string]any{
			"request_id": req.ID,
			"reason":     req.Reason,
			"family_ids": req.FamilyIDs,
		}),
	)
}

// EscalationFromEvent rebuilds the request carried by an
// EscalationRequested event. The dispatcher uses it to hand queued
// escalations to the Escalator collaborator.
func EscalationFromEvent(ev event.CoordinationEvent) (EscalationRequest, error) {
	if ev.Type != event.EscalationRequested {
		return EscalationRequest{}, errors.Wrapf(errors.ErrInvalidInput,
			"not an escalation event: %s", ev.Type)
	}

	req := EscalationRequest{
		TripID:    ev.TripID,
		Priority:  ev.Priority,
		Hops:      ev.Hops,
		Requested: ev.Timestamp,
	}
	if id, ok := ev.DataValue("request_id"); ok {
		req.ID, _ = id.(string)
	}
	if reason, ok := ev.DataValue("reason"); ok {
		req.Reason, _ = reason.(string)
	}
	if raw, ok := ev.DataValue("family_ids"); ok {
		req.FamilyIDs = stringSlice(raw)
	}
	return req, nil
}

// involvedFamilies collects the family scope of an event: the event's own
// family plus any family_ids payload entries, sorted and deduplicated.
func involvedFamilies(ev event.CoordinationEvent) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	add(ev.FamilyID)
	if raw, ok := ev.DataValue("family_ids"); ok {
		for _, id := range stringSlice(raw) {
			add(id)
		}
	}

	sort.Strings(ids)
	return ids
}

// stringSlice normalizes the slice shapes JSON and YAML decoding produce.
func stringSlice(raw any) []string {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
