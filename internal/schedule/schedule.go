// Package schedule computes ranked time-slot suggestions from family
// availability. The computation is pure: no clocks, no I/O, no randomness,
// so identical inputs always produce identical suggestions, IDs included.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from start and end.
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// Duration returns the window length. Zero or negative means the window
// is empty.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsValid reports whether the window covers any time at all.
func (w Window) IsValid() bool {
	return w.End.After(w.Start)
}

// Overlaps reports whether two windows share any instant.
// Touching endpoints do not overlap: [a, b) and [b, c) are disjoint.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Intersect returns the shared part of two windows.
// The second return is false when they do not overlap.
func (w Window) Intersect(other Window) (Window, bool) {
	start := w.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := w.End
	if other.End.Before(end) {
		end = other.End
	}
	if !end.After(start) {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}

// Contains reports whether the window fully covers other.
func (w Window) Contains(other Window) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// FamilyAvailability is one family's input to the advisor.
type FamilyAvailability struct {
	// FamilyID identifies the family.
	FamilyID string
	// Available lists the windows the family can travel in.
	Available []Window
	// Preferred optionally marks the window the family would rather have.
	Preferred *Window
}

// Suggestion is one ranked time-slot proposal.
type Suggestion struct {
	// ID is deterministic: derived from the trip and slot, not random,
	// so recomputing over the same inputs yields the same IDs.
	ID string
	// TripID scopes the suggestion.
	TripID string
	// Slot is the proposed window.
	Slot Window
	// Score ranks the suggestion; higher is better.
	Score float64
	// FullyAvailable lists the families available for the whole slot,
	// sorted by family ID.
	FullyAvailable []string
	// Inputs lists every family consulted, sorted by family ID.
	Inputs []string
}

// Options tunes the advisor.
type Options struct {
	// SlotDuration is the length of proposed slots. Defaults to 24h.
	SlotDuration time.Duration
	// MaxSuggestions caps the result length. Defaults to 3.
	MaxSuggestions int
}

// Scoring weights. A family fully available for a slot is worth more than
// any preference bonus, so availability always dominates preference.
const (
	fullAvailabilityWeight = 1.0
	preferredOverlapBonus  = 0.5
	preferredNearbyBonus   = 0.25
	preferredNearbyRange   = 24 * time.Hour
)

const (
	defaultSlotDuration   = 24 * time.Hour
	defaultMaxSuggestions = 3
)

// suggestionNamespace seeds the deterministic suggestion IDs.
var suggestionNamespace = uuid.MustParse("b4f9a8a2-3a84-4cb6-9de1-5a25c8e4f70d")

// ComputeSuggestions ranks candidate slots for the trip from the given
// family availability. Candidates are the distinct intersections of family
// availability windows, sliced to Options.SlotDuration. Each candidate is
// scored by how many families are fully available for it plus a bonus for
// overlapping or nearly matching preferred windows. Ties break on earliest
// start, then on families covered.
//
// Degenerate input (no families, no windows) yields an empty slice.
func ComputeSuggestions(tripID string, fams []FamilyAvailability, opt Options) []Suggestion {
	if opt.SlotDuration <= 0 {
		opt.SlotDuration = defaultSlotDuration
	}
	if opt.MaxSuggestions <= 0 {
		opt.MaxSuggestions = defaultMaxSuggestions
	}

	inputs := make([]string, 0, len(fams))
	for _, fam := range fams {
		inputs = append(inputs, fam.FamilyID)
	}
	sort.Strings(inputs)

	candidates := candidateSlots(fams, opt.SlotDuration)
	if len(candidates) == 0 {
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, slot := range candidates {
		score, fully := scoreSlot(slot, fams)
		suggestions = append(suggestions, Suggestion{
			ID:             suggestionID(tripID, slot),
			TripID:         tripID,
			Slot:           slot,
			Score:          score,
			FullyAvailable: fully,
			Inputs:         inputs,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Slot.Start.Equal(b.Slot.Start) {
			return a.Slot.Start.Before(b.Slot.Start)
		}
		return len(a.FullyAvailable) > len(b.FullyAvailable)
	})

	if len(suggestions) > opt.MaxSuggestions {
		suggestions = suggestions[:opt.MaxSuggestions]
	}
	return suggestions
}

// candidateSlots derives the distinct slots worth scoring: every pairwise
// intersection of availability windows (including each window with itself)
// sliced from its start to the slot duration.
func candidateSlots(fams []FamilyAvailability, slotDuration time.Duration) []Window {
	var windows []Window
	for _, fam := range fams {
		for _, w := range fam.Available {
			if w.IsValid() {
				windows = append(windows, w)
			}
		}
	}
	if len(windows) == 0 {
		return nil
	}

	seen := make(map[int64]bool)
	var slots []Window
	add := func(start time.Time) {
		key := start.UnixNano()
		if seen[key] {
			return
		}
		seen[key] = true
		slots = append(slots, Window{Start: start, End: start.Add(slotDuration)})
	}

	// Each window start is a candidate, as is the start of every overlap
	// between two windows. The overlap start is the later of the two
	// starts, so collecting intersection starts covers both cases.
	for i, a := range windows {
		add(a.Start)
		for _, b := range windows[i+1:] {
			if over, ok := a.Intersect(b); ok {
				add(over.Start)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

// scoreSlot scores one candidate and lists the fully available families.
func scoreSlot(slot Window, fams []FamilyAvailability) (float64, []string) {
	score := 0.0
	fully := make([]string, 0, len(fams))

	for _, fam := range fams {
		if coveredBy(slot, fam.Available) {
			score += fullAvailabilityWeight
			fully = append(fully, fam.FamilyID)
		}
		if fam.Preferred != nil && fam.Preferred.IsValid() {
			switch {
			case slot.Overlaps(*fam.Preferred):
				score += preferredOverlapBonus
			case withinRange(slot, *fam.Preferred, preferredNearbyRange):
				score += preferredNearbyBonus
			}
		}
	}

	sort.Strings(fully)
	return score, fully
}

// coveredBy reports whether one of the windows fully contains the slot.
func coveredBy(slot Window, windows []Window) bool {
	for _, w := range windows {
		if w.Contains(slot) {
			return true
		}
	}
	return false
}

// withinRange reports whether the gap between slot and pref is at most r.
// Overlapping windows have no gap and always qualify.
func withinRange(slot, pref Window, r time.Duration) bool {
	if slot.Overlaps(pref) {
		return true
	}
	if slot.End.Before(pref.Start) || slot.End.Equal(pref.Start) {
		return pref.Start.Sub(slot.End) <= r
	}
	return slot.Start.Sub(pref.End) <= r
}

// suggestionID derives a stable ID from the trip and slot.
func suggestionID(tripID string, slot Window) string {
	name := fmt.Sprintf("%s|%d|%d", tripID, slot.Start.UnixNano(), slot.End.UnixNano())
	return uuid.NewSHA1(suggestionNamespace, []byte(name)).String()
}
