// Package feed bridges the trip-planning backend to the engine through a
// JSONL spool file: the backend appends one wire-format record per line,
// and the engine either reads the spool in one batch or tails it live.
//
// Record is the wire form. Batch readers use ReadFile or Decode, which
// skip blank lines and collect malformed lines as positional errors
// without aborting the batch. Watcher tails the spool with a debounced
// filesystem watch and a byte offset, so only appended records are
// decoded; truncating the spool resets the offset.
//
// Usage:
//
//	w, err := feed.NewWatcher(spool, func(ev event.CoordinationEvent) {
//		audit, err := svc.ProcessEvent(ctx, ev)
//		// ...
//	}, feed.WithFromStart())
//	if err != nil {
//		return err
//	}
//	if err := w.Start(ctx); err != nil {
//		return err
//	}
//	defer func() { _ = w.Stop() }()
package feed
