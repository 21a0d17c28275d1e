package coordination

import (
	"context"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// Trigger methods build the event for one backend fact and process it.
// They are the convenience surface for callers embedding the engine;
// anything they can express can also be expressed by constructing the
// event and calling ProcessEvent directly.

// FamilyJoined processes a family accepting a trip invitation.
func (s *Service) FamilyJoined(ctx context.Context, tripID, familyID string, data map[string]any) ([]action.ExecutedAction, error) {
	ev, err := event.NewFamilyJoined(tripID, familyID, data)
	if err != nil {
		return nil, err
	}
	return s.ProcessEvent(ctx, ev)
}

// FamilyLeft processes a family withdrawing from a trip.
func (s *Service) FamilyLeft(ctx context.Context, tripID, familyID string, data map[string]any) ([]action.ExecutedAction, error) {
	ev, err := event.NewFamilyLeft(tripID, familyID, data)
	if err != nil {
		return nil, err
	}
	return s.ProcessEvent(ctx, ev)
}

// PreferencesUpdated processes a user changing a family's preferences.
func (s *Service) PreferencesUpdated(ctx context.Context, tripID, familyID, userID string, changedFields []string) ([]action.ExecutedAction, error) {
	ev, err := event.NewPreferencesUpdated(tripID, familyID, userID, changedFields)
	if err != nil {
		return nil, err
	}
	return s.ProcessEvent(ctx, ev)
}

// ConflictDetected processes a scheduling conflict between families.
func (s *Service) ConflictDetected(ctx context.Context, tripID, description string, familyIDs []string) ([]action.ExecutedAction, error) {
	ev, err := event.NewConflictDetected(tripID, description, familyIDs)
	if err != nil {
		return nil, err
	}
	return s.ProcessEvent(ctx, ev)
}

// AllFamiliesReady processes a trip reaching readiness.
func (s *Service) AllFamiliesReady(ctx context.Context, tripID string, fractionReady float64) ([]action.ExecutedAction, error) {
	ev, err := event.NewAllFamiliesReady(tripID, fractionReady)
	if err != nil {
		return nil, err
	}
	return s.ProcessEvent(ctx, ev)
}

// VotingStarted processes a consensus round opening.
func (s *Service) VotingStarted(ctx context.Context, tripID string, data map[string]any) ([]action.ExecutedAction, error) {
	ev, err := event.NewVotingStarted(tripID, data)
	if err != nil {
		return nil, err
	}
	return s.ProcessEvent(ctx, ev)
}
