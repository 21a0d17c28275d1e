package action

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

type notifierFunc func(ctx context.Context, n Notification) error

func (f notifierFunc) Send(ctx context.Context, n Notification) error { return f(ctx, n) }

type advisorFunc func(tripID string) ([]schedule.Suggestion, error)

func (f advisorFunc) Suggest(tripID string) ([]schedule.Suggestion, error) { return f(tripID) }

func familyJoined(t *testing.T) event.CoordinationEvent {
	t.Helper()
	ev, err := event.NewFamilyJoined("trip-1", "fam-1", map[string]any{"family_name": "Garcia"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return ev
}

func TestExecuteNotify(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got Notification
		exec := NewExecutor(Config{
			Notifier: notifierFunc(func(ctx context.Context, n Notification) error {
				got = n
				return nil
			}),
		})

		ev := familyJoined(t)
		d := NewDescriptor(KindNotify, map[string]any{
			"message":  "A new family joined your trip",
			"template": "family_joined",
		})

		record := exec.Execute(context.Background(), d, RuleContext{Name: "welcome-family"}, ev)

		if !record.Succeeded {
			t.Fatalf("Expected success, got failure: %s", record.FailureReason)
		}
		if record.Kind != KindNotify {
			t.Errorf("Expected notify kind, got %q", record.Kind)
		}
		if record.Rule != "welcome-family" {
			t.Errorf("Expected rule welcome-family, got %q", record.Rule)
		}
		if record.EventID != ev.ID {
			t.Errorf("Expected event ID %s, got %s", ev.ID, record.EventID)
		}
		if got.TripID != "trip-1" || got.FamilyID != "fam-1" {
			t.Errorf("Expected trip-1/fam-1 scope, got %s/%s", got.TripID, got.FamilyID)
		}
		if got.Message != "A new family joined your trip" {
			t.Errorf("Expected message from params, got %q", got.Message)
		}
		if got.Template != "family_joined" {
			t.Errorf("Expected template from params, got %q", got.Template)
		}
		if got.Priority != event.PriorityMedium {
			t.Errorf("Expected medium priority, got %v", got.Priority)
		}
		if got.Data["family_name"] != "Garcia" {
			t.Errorf("Expected event payload in data, got %v", got.Data)
		}
	})

	t.Run("priority override wins", func(t *testing.T) {
		var got Notification
		exec := NewExecutor(Config{
			Notifier: notifierFunc(func(ctx context.Context, n Notification) error {
				got = n
				return nil
			}),
		})

		urgent := event.PriorityUrgent
		rc := RuleContext{Name: "surface-conflict", PriorityOverride: &urgent}
		record := exec.Execute(context.Background(), NewDescriptor(KindNotify, nil), rc, familyJoined(t))

		if !record.Succeeded {
			t.Fatalf("Expected success, got failure: %s", record.FailureReason)
		}
		if got.Priority != event.PriorityUrgent {
			t.Errorf("Expected urgent priority, got %v", got.Priority)
		}
	})

	t.Run("collaborator error", func(t *testing.T) {
		exec := NewExecutor(Config{
			Notifier: notifierFunc(func(ctx context.Context, n Notification) error {
				return errors.New("smtp unreachable")
			}),
		})

		record := exec.Execute(context.Background(), NewDescriptor(KindNotify, nil), RuleContext{Name: "r"}, familyJoined(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if record.FailureReason != "smtp unreachable" {
			t.Errorf("Expected collaborator error as reason, got %q", record.FailureReason)
		}
	})

	t.Run("no notifier configured", func(t *testing.T) {
		exec := NewExecutor(Config{})
		record := exec.Execute(context.Background(), NewDescriptor(KindNotify, nil), RuleContext{Name: "r"}, familyJoined(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if !strings.Contains(record.FailureReason, "no notifier configured") {
			t.Errorf("Expected missing notifier reason, got %q", record.FailureReason)
		}
	})

	t.Run("timeout classified", func(t *testing.T) {
		exec := NewExecutor(Config{
			Notifier: notifierFunc(func(ctx context.Context, n Notification) error {
				<-ctx.Done()
				return ctx.Err()
			}),
		}, WithTimeout(20*time.Millisecond))

		record := exec.Execute(context.Background(), NewDescriptor(KindNotify, nil), RuleContext{Name: "r"}, familyJoined(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if !strings.Contains(record.FailureReason, "timeout error: notify") {
			t.Errorf("Expected timeout classification, got %q", record.FailureReason)
		}
	})

	t.Run("cancellation classified", func(t *testing.T) {
		exec := NewExecutor(Config{
			Notifier: notifierFunc(func(ctx context.Context, n Notification) error {
				return ctx.Err()
			}),
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		record := exec.Execute(ctx, NewDescriptor(KindNotify, nil), RuleContext{Name: "r"}, familyJoined(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if !strings.Contains(record.FailureReason, "notify canceled") {
			t.Errorf("Expected cancellation reason, got %q", record.FailureReason)
		}
	})

	t.Run("panic recovered", func(t *testing.T) {
		exec := NewExecutor(Config{
			Notifier: notifierFunc(func(ctx context.Context, n Notification) error {
				panic("boom")
			}),
		})

		record := exec.Execute(context.Background(), NewDescriptor(KindNotify, nil), RuleContext{Name: "r"}, familyJoined(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if !strings.Contains(record.FailureReason, "panic: boom") {
			t.Errorf("Expected recovered panic in reason, got %q", record.FailureReason)
		}
	})
}

func TestExecuteSuggestSchedule(t *testing.T) {
	t.Run("attaches suggestions", func(t *testing.T) {
		want := []schedule.Suggestion{
			{ID: "s-1", TripID: "trip-1", Score: 2.0},
			{ID: "s-2", TripID: "trip-1", Score: 1.0},
		}
		exec := NewExecutor(Config{
			Advisor: advisorFunc(func(tripID string) ([]schedule.Suggestion, error) {
				if tripID != "trip-1" {
					t.Errorf("Expected trip-1, got %s", tripID)
				}
				return want, nil
			}),
		})

		record := exec.Execute(context.Background(), NewDescriptor(KindSuggestSchedule, nil), RuleContext{Name: "r"}, familyJoined(t))

		if !record.Succeeded {
			t.Fatalf("Expected success, got failure: %s", record.FailureReason)
		}
		if len(record.Suggestions) != 2 {
			t.Fatalf("Expected 2 suggestions, got %d", len(record.Suggestions))
		}
		if record.Suggestions[0].ID != "s-1" {
			t.Errorf("Expected ranked order preserved, got %s first", record.Suggestions[0].ID)
		}
	})

	t.Run("advisor error", func(t *testing.T) {
		exec := NewExecutor(Config{
			Advisor: advisorFunc(func(tripID string) ([]schedule.Suggestion, error) {
				return nil, errors.New("no availability data")
			}),
		})

		record := exec.Execute(context.Background(), NewDescriptor(KindSuggestSchedule, nil), RuleContext{Name: "r"}, familyJoined(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if !strings.Contains(record.FailureReason, "computing schedule suggestions") {
			t.Errorf("Expected wrapped advisor error, got %q", record.FailureReason)
		}
	})

	t.Run("no advisor configured", func(t *testing.T) {
		exec := NewExecutor(Config{})
		record := exec.Execute(context.Background(), NewDescriptor(KindSuggestSchedule, nil), RuleContext{Name: "r"}, familyJoined(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if !strings.Contains(record.FailureReason, "no advisor configured") {
			t.Errorf("Expected missing advisor reason, got %q", record.FailureReason)
		}
	})
}

func TestExecuteEscalate(t *testing.T) {
	conflict := func(t *testing.T) event.CoordinationEvent {
		t.Helper()
		ev, err := event.NewConflictDetected("trip-1", "dates overlap", []string{"fam-a", "fam-b"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return ev
	}

	t.Run("derives follow-up event", func(t *testing.T) {
		var queued []event.CoordinationEvent
		exec := NewExecutor(Config{
			FollowUp: func(ctx context.Context, ev event.CoordinationEvent) error {
				queued = append(queued, ev)
				return nil
			},
		})

		ev := conflict(t)
		record := exec.Execute(context.Background(), NewDescriptor(KindEscalate, nil), RuleContext{Name: "escalate-conflict"}, ev)

		if !record.Succeeded {
			t.Fatalf("Expected success, got failure: %s", record.FailureReason)
		}
		if len(queued) != 1 {
			t.Fatalf("Expected 1 queued event, got %d", len(queued))
		}
		follow := queued[0]
		if follow.Type != event.EscalationRequested {
			t.Errorf("Expected escalation.requested, got %s", follow.Type)
		}
		if follow.TripID != "trip-1" {
			t.Errorf("Expected trip-1, got %s", follow.TripID)
		}
		if follow.Hops != ev.Hops+1 {
			t.Errorf("Expected %d hops, got %d", ev.Hops+1, follow.Hops)
		}
		if record.FollowUp == nil || record.FollowUp.ID != follow.ID {
			t.Error("Expected audit record to carry the queued follow-up")
		}

		req, err := EscalationFromEvent(follow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if req.Reason != "dates overlap" {
			t.Errorf("Expected reason from event description, got %q", req.Reason)
		}
		if len(req.FamilyIDs) != 2 {
			t.Errorf("Expected 2 families, got %v", req.FamilyIDs)
		}
		if req.Priority != event.PriorityUrgent {
			t.Errorf("Expected urgent priority, got %v", req.Priority)
		}
		if req.ID == "" {
			t.Error("Expected non-empty request ID")
		}
	})

	t.Run("reason param wins over payload", func(t *testing.T) {
		var queued event.CoordinationEvent
		exec := NewExecutor(Config{
			FollowUp: func(ctx context.Context, ev event.CoordinationEvent) error {
				queued = ev
				return nil
			},
		})

		d := NewDescriptor(KindEscalate, map[string]any{"reason": "needs a vote"})
		record := exec.Execute(context.Background(), d, RuleContext{Name: "r"}, conflict(t))

		if !record.Succeeded {
			t.Fatalf("Expected success, got failure: %s", record.FailureReason)
		}
		req, err := EscalationFromEvent(queued)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if req.Reason != "needs a vote" {
			t.Errorf("Expected param reason, got %q", req.Reason)
		}
	})

	t.Run("fallback reason names event type", func(t *testing.T) {
		var queued event.CoordinationEvent
		exec := NewExecutor(Config{
			FollowUp: func(ctx context.Context, ev event.CoordinationEvent) error {
				queued = ev
				return nil
			},
		})

		record := exec.Execute(context.Background(), NewDescriptor(KindEscalate, nil), RuleContext{Name: "r"}, familyJoined(t))

		if !record.Succeeded {
			t.Fatalf("Expected success, got failure: %s", record.FailureReason)
		}
		req, err := EscalationFromEvent(queued)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.Contains(req.Reason, "family.joined") {
			t.Errorf("Expected fallback reason to name the event type, got %q", req.Reason)
		}
	})

	t.Run("queue failure fails the action", func(t *testing.T) {
		exec := NewExecutor(Config{
			FollowUp: func(ctx context.Context, ev event.CoordinationEvent) error {
				return errors.ErrQueueFull
			},
		})

		record := exec.Execute(context.Background(), NewDescriptor(KindEscalate, nil), RuleContext{Name: "r"}, conflict(t))

		if record.Succeeded {
			t.Fatal("Expected failure")
		}
		if !strings.Contains(record.FailureReason, "queue") {
			t.Errorf("Expected queue failure reason, got %q", record.FailureReason)
		}
		if record.FollowUp == nil {
			t.Error("Expected audit record to carry the derived event even on queue failure")
		}
	})

	t.Run("no queue configured still audits", func(t *testing.T) {
		exec := NewExecutor(Config{})
		record := exec.Execute(context.Background(), NewDescriptor(KindEscalate, nil), RuleContext{Name: "r"}, conflict(t))

		if !record.Succeeded {
			t.Fatalf("Expected success, got failure: %s", record.FailureReason)
		}
		if record.FollowUp == nil {
			t.Fatal("Expected derived event on audit record")
		}
		if record.FollowUp.Hops != 1 {
			t.Errorf("Expected 1 hop, got %d", record.FollowUp.Hops)
		}
	})
}

func TestExecuteUnknownKind(t *testing.T) {
	exec := NewExecutor(Config{})
	record := exec.Execute(context.Background(), Descriptor{Kind: "frobnicate"}, RuleContext{Name: "r"}, familyJoined(t))

	if record.Succeeded {
		t.Fatal("Expected failure")
	}
	if !strings.Contains(record.FailureReason, "unsupported action kind") {
		t.Errorf("Expected unsupported kind reason, got %q", record.FailureReason)
	}
}

func TestExecuteDuration(t *testing.T) {
	now := time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)
	exec := NewExecutor(Config{
		Notifier: notifierFunc(func(ctx context.Context, n Notification) error { return nil }),
	}, WithClock(func() time.Time {
		now = now.Add(15 * time.Millisecond)
		return now
	}))

	record := exec.Execute(context.Background(), NewDescriptor(KindNotify, nil), RuleContext{Name: "r"}, familyJoined(t))

	if record.Duration != 15*time.Millisecond {
		t.Errorf("Expected 15ms duration from fake clock, got %v", record.Duration)
	}
}

func TestExecutorConcurrent(t *testing.T) {
	var mu sync.Mutex
	count := 0
	exec := NewExecutor(Config{
		Notifier: notifierFunc(func(ctx context.Context, n Notification) error {
			mu.Lock()
			count++
			mu.Unlock()
			return nil
		}),
	})

	ev := familyJoined(t)
	d := NewDescriptor(KindNotify, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				record := exec.Execute(context.Background(), d, RuleContext{Name: "r"}, ev)
				if !record.Succeeded {
					t.Errorf("Expected success, got failure: %s", record.FailureReason)
				}
			}
		}()
	}
	wg.Wait()

	if count != 200 {
		t.Errorf("Expected 200 sends, got %d", count)
	}
}
