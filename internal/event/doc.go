// Package event defines the coordination event model and an in-process
// pub-sub bus for the Pathfinder coordination engine.
//
// A [CoordinationEvent] is one observed group-decision fact: a family
// joined a trip, preferences changed, a scheduling conflict surfaced.
// Events are immutable values. Constructors deep-copy payload maps and the
// derivation helpers ([CoordinationEvent.Clone], [CoordinationEvent.WithHops])
// return copies, so an event handed to the engine can never be altered
// under it.
//
// # Main Types
//
//   - [CoordinationEvent]: Immutable value describing one observed fact
//   - [Type]: String identifier for an event kind ("category.action")
//   - [Priority]: Ordered urgency (Low < Medium < High < Urgent)
//   - [Bus]: Synchronous pub-sub dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(CoordinationEvent))
//
// # Event Catalog
//
// Backend events:
//   - [FamilyJoined]: A family accepted a trip invitation
//   - [FamilyLeft]: A family withdrew from a trip
//   - [PreferencesUpdated]: A family changed its trip preferences
//   - [ConflictDetected]: A scheduling conflict between families
//   - [AllFamiliesReady]: Every family on the trip reached readiness
//   - [VotingStarted], [VotingCompleted]: Consensus round lifecycle
//
// Engine events:
//   - [EscalationRequested]: Derived by the escalate action; carries the
//     escalation depth in Hops
//
// The set is open. Any non-empty string is a valid [Type]; the catalog
// returned by [KnownTypes] exists so glob patterns in rule files have a
// concrete set to expand against.
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Multiple goroutines can publish
// and subscribe concurrently. Handlers are called synchronously on the
// publisher's goroutine and protected against panics - a panicking handler
// will not prevent other handlers from being called. Subscriptions are
// copied before dispatch, so a handler may re-enter Publish.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	// Subscribe to specific event types
//	bus.Subscribe(event.ConflictDetected, func(ev event.CoordinationEvent) {
//	    log.Printf("conflict on trip %s", ev.TripID)
//	})
//
//	// Subscribe to all events (useful for logging)
//	bus.SubscribeAll(func(ev event.CoordinationEvent) {
//	    log.Printf("event: %s at %v", ev.Type, ev.Timestamp)
//	})
//
//	// Publish events
//	ev, err := event.NewFamilyJoined("trip-1", "family-1", nil)
//	if err != nil {
//	    return err
//	}
//	bus.Publish(ev)
//
//	// Unsubscribe when done
//	id := bus.Subscribe(event.VotingStarted, handler)
//	bus.Unsubscribe(id)
package event
