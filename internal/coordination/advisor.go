package coordination

import (
	"sync"

	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

// availabilityRecorder is the optional seam an advisor implements to be
// fed availability snapshots from event payloads. The service checks for
// it on every event; advisors without it source availability themselves.
type availabilityRecorder interface {
	RecordAvailability(tripID string, families []schedule.FamilyAvailability)
}

// PayloadAdvisor is the default Advisor: a per-trip availability snapshot
// store fed from "availability" event payloads. Each recorded payload
// replaces the trip's previous snapshot; suggestions are computed on
// demand from the latest one. Safe for concurrent use.
type PayloadAdvisor struct {
	mu     sync.RWMutex
	byTrip map[string][]schedule.FamilyAvailability
}

// NewPayloadAdvisor creates an empty advisor.
func NewPayloadAdvisor() *PayloadAdvisor {
	return &PayloadAdvisor{
		byTrip: make(map[string][]schedule.FamilyAvailability),
	}
}

// RecordAvailability replaces the trip's availability snapshot. The
// families slice is copied; later caller mutation cannot alter the
// stored snapshot.
func (a *PayloadAdvisor) RecordAvailability(tripID string, families []schedule.FamilyAvailability) {
	snapshot := cloneFamilies(families)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.byTrip[tripID] = snapshot
}

// Suggest computes ranked suggestions from the trip's latest snapshot.
// A trip with no recorded availability yields an empty, non-nil slice
// and no error.
func (a *PayloadAdvisor) Suggest(tripID string) ([]schedule.Suggestion, error) {
	a.mu.RLock()
	families := a.byTrip[tripID]
	a.mu.RUnlock()
	return schedule.ComputeSuggestions(tripID, families, schedule.Options{}), nil
}

func cloneFamilies(families []schedule.FamilyAvailability) []schedule.FamilyAvailability {
	out := make([]schedule.FamilyAvailability, len(families))
	copy(out, families)
	for i := range out {
		out[i].Available = append([]schedule.Window(nil), out[i].Available...)
		if out[i].Preferred != nil {
			preferred := *out[i].Preferred
			out[i].Preferred = &preferred
		}
	}
	return out
}
