// Package coordination provides the Service that wires the automation
// engine together for a trip-planning deployment.
//
// The Service runs the complete event pipeline:
//
//	event → rule registry → action executor → audit sequence
//
// Plus the escalation path:
//
//   - escalate actions derive an escalation.requested event, one hop
//     deeper than its source
//   - the dispatcher enforces the hop limit and hands surviving requests
//     to the consensus collaborator
//   - telemetry (automation.completed, escalation.aborted) is published
//     on the optional event bus
//
// The Service works in two modes. Without Start, escalations dispatch
// inline during ProcessEvent, so library callers get the full outcome in
// the returned audit sequence. With Start, escalations flow through a
// bounded queue drained by a dispatcher goroutine, decoupling consensus
// hand-off latency from event processing.
//
// Usage:
//
//	svc, err := coordination.New(coordination.Config{
//	    Registry:  registry,
//	    Notifier:  notifier,
//	    Escalator: escalator,
//	    Logger:    logger,
//	    Bus:       bus,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := svc.Start(ctx); err != nil {
//	    return err
//	}
//	defer svc.Stop()
//
//	audit, err := svc.FamilyJoined(ctx, "trip-1", "fam-garcia", nil)
package coordination
