package coordination

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/panics"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// Start launches the escalation dispatcher goroutine. Escalate actions
// then enqueue their derived events instead of dispatching inline; the
// dispatcher drains the queue in order, applying the hop guard to each
// event it pops. Starting a running or stopped service is an error.
func (s *Service) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.Wrap(errors.ErrServiceStopped, "starting escalation dispatcher")
	}
	if s.started {
		return errors.Wrap(errors.ErrServiceRunning, "starting escalation dispatcher")
	}

	s.queue = make(chan event.CoordinationEvent, s.capacity)
	s.started = true

	queue := s.queue
	s.wg.Go(func() {
		s.dispatchLoop(ctx, queue)
	})

	s.logger.Info("escalation dispatcher started",
		"queue_capacity", s.capacity, "hop_limit", s.hopLimit)
	return nil
}

// Stop closes the escalation queue, waits for the dispatcher to drain
// it, and retires the service. Stop is idempotent; a stopped service
// still processes events, dispatching escalations inline.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.stopped = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("escalation dispatcher stopped")
	return nil
}

// followUp receives the derived event of every escalate action. Started:
// non-blocking enqueue, so a full queue fails the action instead of
// stalling event processing. Not started: dispatch inline, so the hop
// guard's verdict lands on the action's own audit record.
//
// The lock spans the enqueue attempt to keep Stop from closing the
// queue between the started check and the send.
func (s *Service) followUp(ctx context.Context, follow event.CoordinationEvent) error {
	s.mu.Lock()
	if s.started {
		select {
		case s.queue <- follow:
			s.mu.Unlock()
			s.logger.WithTrip(follow.TripID).Debug("escalation queued",
				"event_id", follow.ID, "hops", follow.Hops)
			return nil
		default:
			s.mu.Unlock()
			return errors.Wrapf(errors.ErrQueueFull, "trip %s", follow.TripID)
		}
	}
	s.mu.Unlock()

	return s.dispatch(ctx, follow)
}

// dispatchLoop drains the escalation queue until Stop closes it. Hop
// guard aborts log inside dispatch; other failures are logged here.
func (s *Service) dispatchLoop(ctx context.Context, queue <-chan event.CoordinationEvent) {
	for ev := range queue {
		if err := s.dispatch(ctx, ev); err != nil && !errors.Is(err, errors.ErrEscalationLimit) {
			s.logger.WithTrip(ev.TripID).Error("escalation dispatch failed",
				"event_id", ev.ID, "error", err.Error())
		}
	}
}

// dispatch runs the cycle guard and hands one escalation event to the
// consensus collaborator. It is the single guard location: the queued
// path and the inline path both land here, so the hop limit is enforced
// identically whichever mode the service runs in.
func (s *Service) dispatch(ctx context.Context, ev event.CoordinationEvent) error {
	if ev.Hops > s.hopLimit {
		s.logger.WithTrip(ev.TripID).Warn("escalation cycle aborted",
			"event_id", ev.ID, "hops", ev.Hops, "hop_limit", s.hopLimit)
		s.publishAborted(ev)
		return errors.NewDispatchError(
			fmt.Sprintf("escalation cycle aborted: hop limit %d exceeded", s.hopLimit),
			errors.ErrEscalationLimit,
		).WithTripID(ev.TripID).WithEventID(ev.ID).WithHops(ev.Hops)
	}

	req, err := action.EscalationFromEvent(ev)
	if err != nil {
		return errors.Wrap(err, "rebuilding escalation request")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var callErr error
	recovered := panics.Try(func() {
		callErr = s.escalator.Escalate(callCtx, req)
	})
	if recovered != nil {
		return errors.NewDispatchError(
			fmt.Sprintf("escalating to consensus: panic: %v", recovered.Value),
			errors.ErrOperationFailed,
		).WithTripID(ev.TripID).WithEventID(ev.ID).WithHops(ev.Hops)
	}
	if callErr != nil {
		return errors.Wrap(callErr, "escalating to consensus")
	}

	if s.bus != nil {
		s.bus.Publish(ev)
	}
	s.logger.WithTrip(ev.TripID).Info("escalation dispatched",
		"request_id", req.ID, "hops", req.Hops, "families", len(req.FamilyIDs))
	return nil
}
