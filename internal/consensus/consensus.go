// Package consensus provides Escalator implementations for the boundary
// between the automation engine and the group-decision service. The
// voting algorithm itself is external; these types cover embedding,
// testing and loopback wiring.
package consensus

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// Recorder is an in-memory Escalator that accepts every request and
// keeps it, grouped by trip. Safe for concurrent use. It is the default
// consensus wiring for embedders that poll escalations instead of
// receiving them.
type Recorder struct {
	mu     sync.RWMutex
	byTrip map[string][]action.EscalationRequest
	total  int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{byTrip: make(map[string][]action.EscalationRequest)}
}

// Escalate records the request. It never fails.
func (r *Recorder) Escalate(_ context.Context, req action.EscalationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTrip[req.TripID] = append(r.byTrip[req.TripID], req)
	r.total++
	return nil
}

// Requests returns the recorded requests for one trip in arrival order.
func (r *Recorder) Requests(tripID string) []action.EscalationRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reqs := r.byTrip[tripID]
	out := make([]action.EscalationRequest, len(reqs))
	copy(out, reqs)
	return out
}

// Len returns the total number of recorded requests across all trips.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Processor consumes an event and returns its audit sequence.
// coordination.Service.ProcessEvent satisfies it.
type Processor func(ctx context.Context, ev event.CoordinationEvent) ([]action.ExecutedAction, error)

// Loopback is an Escalator that models a live consensus service: every
// escalation is acknowledged by feeding a derived conflict.detected
// event back into the processor, carrying the escalation's depth. The
// events it emits re-enter the engine, which is exactly the cycle the
// dispatcher's hop guard exists to terminate.
type Loopback struct {
	process Processor
}

// NewLoopback creates a Loopback feeding the given processor.
func NewLoopback(process Processor) *Loopback {
	return &Loopback{process: process}
}

// Escalate derives a conflict.detected event from the request and hands
// it to the processor. The derived event keeps the request's hop depth,
// so chains terminate at the engine's hop limit.
func (l *Loopback) Escalate(ctx context.Context, req action.EscalationRequest) error {
	ev, err := event.New(event.ConflictDetected, req.TripID,
		event.WithPriority(req.Priority),
		event.WithHops(req.Hops),
		event.WithData(map[string]any{
			"description": req.Reason,
			"family_ids":  req.FamilyIDs,
			"request_id":  req.ID,
		}),
	)
	if err != nil {
		return errors.Wrap(err, "deriving consensus response")
	}
	if _, err := l.process(ctx, ev); err != nil {
		return errors.Wrap(err, "processing consensus response")
	}
	return nil
}

// failAfter fails every Escalate call past its budget.
type failAfter struct {
	budget int64
	calls  atomic.Int64
}

// FailAfter returns an Escalator that succeeds for the first n calls and
// fails afterwards. Used to exercise failure isolation.
func FailAfter(n int) action.Escalator {
	return &failAfter{budget: int64(n)}
}

func (f *failAfter) Escalate(context.Context, action.EscalationRequest) error {
	call := f.calls.Add(1)
	if call > f.budget {
		return errors.Wrapf(errors.ErrOperationFailed, "consensus refused escalation %d", call)
	}
	return nil
}
