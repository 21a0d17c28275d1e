package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

// auditRecord is the JSON shape of one executed action. The engine types
// carry no JSON tags; the CLI owns its wire form.
type auditRecord struct {
	Kind          string             `json:"kind"`
	Rule          string             `json:"rule"`
	EventID       string             `json:"event_id"`
	Succeeded     bool               `json:"succeeded"`
	FailureReason string             `json:"failure_reason,omitempty"`
	Suggestions   []suggestionRecord `json:"suggestions,omitempty"`
	FollowUpID    string             `json:"follow_up_id,omitempty"`
	FollowUpHops  int                `json:"follow_up_hops,omitempty"`
	DurationMs    float64            `json:"duration_ms"`
}

type suggestionRecord struct {
	ID             string    `json:"id"`
	TripID         string    `json:"trip_id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Score          float64   `json:"score"`
	FullyAvailable []string  `json:"fully_available"`
	Inputs         []string  `json:"inputs"`
}

func toAuditRecord(act action.ExecutedAction) auditRecord {
	rec := auditRecord{
		Kind:          string(act.Kind),
		Rule:          act.Rule,
		EventID:       act.EventID,
		Succeeded:     act.Succeeded,
		FailureReason: act.FailureReason,
		Suggestions:   toSuggestionRecords(act.Suggestions),
		DurationMs:    float64(act.Duration.Microseconds()) / 1000,
	}
	if act.FollowUp != nil {
		rec.FollowUpID = act.FollowUp.ID
		rec.FollowUpHops = act.FollowUp.Hops
	}
	return rec
}

func toSuggestionRecords(suggestions []schedule.Suggestion) []suggestionRecord {
	if len(suggestions) == 0 {
		return nil
	}
	recs := make([]suggestionRecord, len(suggestions))
	for i, s := range suggestions {
		recs[i] = suggestionRecord{
			ID:             s.ID,
			TripID:         s.TripID,
			Start:          s.Slot.Start,
			End:            s.Slot.End,
			Score:          s.Score,
			FullyAvailable: s.FullyAvailable,
			Inputs:         s.Inputs,
		}
	}
	return recs
}

func writeAuditJSON(w io.Writer, ev event.CoordinationEvent, audit []action.ExecutedAction) error {
	out := struct {
		EventID   string        `json:"event_id"`
		EventType string        `json:"event_type"`
		TripID    string        `json:"trip_id"`
		Actions   []auditRecord `json:"actions"`
	}{
		EventID:   ev.ID,
		EventType: string(ev.Type),
		TripID:    ev.TripID,
		Actions:   make([]auditRecord, 0, len(audit)),
	}
	for _, act := range audit {
		out.Actions = append(out.Actions, toAuditRecord(act))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeAuditText(w io.Writer, ev event.CoordinationEvent, audit []action.ExecutedAction) {
	fmt.Fprintf(w, "%s %s (trip %s): %d actions\n", ev.ID, ev.Type, ev.TripID, len(audit))
	for i, act := range audit {
		status := "ok"
		if !act.Succeeded {
			status = "FAILED: " + act.FailureReason
		}
		fmt.Fprintf(w, "  %d. %-16s %-28s %s\n", i+1, act.Kind, act.Rule, status)
		for _, s := range act.Suggestions {
			fmt.Fprintf(w, "       %s score %.2f families %s\n",
				s.Slot, s.Score, strings.Join(s.FullyAvailable, ", "))
		}
		if act.FollowUp != nil {
			fmt.Fprintf(w, "       follow-up %s (hops %d)\n", act.FollowUp.ID, act.FollowUp.Hops)
		}
	}
}

func writeSuggestionsJSON(w io.Writer, suggestions []schedule.Suggestion) error {
	recs := toSuggestionRecords(suggestions)
	if recs == nil {
		recs = []suggestionRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

func writeSuggestionsText(w io.Writer, tripID string, suggestions []schedule.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(w, "No viable slots for trip %s\n", tripID)
		return
	}
	fmt.Fprintf(w, "%d suggestions for trip %s:\n", len(suggestions), tripID)
	for i, s := range suggestions {
		fmt.Fprintf(w, "  %d. %s score %.2f\n", i+1, s.Slot, s.Score)
		fmt.Fprintf(w, "     fully available: %s\n", formatFamilies(s.FullyAvailable))
	}
}

func formatFamilies(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
