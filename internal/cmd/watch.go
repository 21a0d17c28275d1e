package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vedprakash-m/pathfinder-sub008/internal/config"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/feed"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail the event spool and process records as they arrive",
	Long: `Run the engine against the spool file: every record a backend
appends is decoded and processed through the automation rules, with
escalations dispatched through the queued consensus path. Runs until
interrupted.

Examples:
  # Tail the configured spool
  pathfinder watch

  # Tail a specific spool and replay its existing records first
  pathfinder watch --spool events.jsonl --from-start`,
	RunE: runWatch,
}

var (
	watchRules     string
	watchSpool     string
	watchFromStart bool
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchRules, "rules", "r", "", "rules file (default: rules.path from config)")
	watchCmd.Flags().StringVar(&watchSpool, "spool", "", "spool file to tail (default: feed.path from config)")
	watchCmd.Flags().BoolVar(&watchFromStart, "from-start", false, "replay records already in the spool")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry, err := loadRegistry(cfg, watchRules)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	svc, _, err := newService(cfg, registry, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = svc.Stop() }()

	spool := cfg.Feed.Path
	if watchSpool != "" {
		spool = watchSpool
	}

	watchOpts := []feed.WatchOption{
		feed.WithDebounce(cfg.Feed.Debounce()),
		feed.WithLogger(logger),
	}
	if watchFromStart || cfg.Feed.FromStart {
		watchOpts = append(watchOpts, feed.WithFromStart())
	}
	if cfg.Engine.DefaultPriority != "" {
		if p, perr := event.ParsePriority(cfg.Engine.DefaultPriority); perr == nil {
			watchOpts = append(watchOpts, feed.WithDefaultPriority(p))
		}
	}

	handler := func(ev event.CoordinationEvent) {
		if _, perr := svc.ProcessEvent(ctx, ev); perr != nil {
			logger.WithTrip(ev.TripID).Error("processing spool event",
				"event_type", string(ev.Type), "error", perr.Error())
		}
	}

	watcher, err := feed.NewWatcher(spool, handler, watchOpts...)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (%d rules loaded). Ctrl-C to stop.\n",
		spool, registry.Len())

	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "shutting down")
	return nil
}
