// Package action executes the side effects that automation rules request
// when a coordination event matches.
//
// Every action a rule can carry is described by a [Descriptor]: a [Kind]
// plus free-form parameters. The [Executor] resolves each descriptor
// against collaborator interfaces ([Notifier], [Advisor], [FollowUpFunc])
// and records the outcome as an [ExecutedAction]. Failures are isolated
// per action: a panicking or erroring collaborator marks its own record
// failed and never prevents the remaining actions of the rule from
// running.
//
// Escalations do not talk to the consensus engine directly. The escalate
// kind derives a follow-up escalation event, one hop deeper than the
// event that triggered it, and hands it to the follow-up seam. The owner
// of that seam decides whether to queue the event or dispatch it inline,
// and enforces the hop limit that keeps escalation cycles finite.
//
// Usage:
//
//	exec := action.NewExecutor(action.Config{
//	    Notifier: notifier,
//	    Advisor:  advisor,
//	    FollowUp: func(ctx context.Context, ev event.CoordinationEvent) error {
//	        return dispatcher.Enqueue(ctx, ev)
//	    },
//	})
//
//	for _, d := range matched.Actions {
//	    record := exec.Execute(ctx, d, matched.ActionContext(), ev)
//	    audit = append(audit, record)
//	}
package action
