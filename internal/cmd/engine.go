package cmd

import (
	"context"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
	"github.com/vedprakash-m/pathfinder-sub008/internal/config"
	"github.com/vedprakash-m/pathfinder-sub008/internal/consensus"
	"github.com/vedprakash-m/pathfinder-sub008/internal/coordination"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
	"github.com/vedprakash-m/pathfinder-sub008/internal/logging"
	"github.com/vedprakash-m/pathfinder-sub008/internal/notify"
	"github.com/vedprakash-m/pathfinder-sub008/internal/rule"
)

// newLogger builds the engine logger from config. An empty log file
// means stderr without rotation.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if cfg.Logging.File == "" {
		return logging.NewLogger("", cfg.Logging.Level)
	}
	return logging.NewLoggerWithRotation(cfg.Logging.File, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
}

// loadRegistry loads the rules file named by the override flag, or by
// rules.path from config when the flag is empty.
func loadRegistry(cfg *config.Config, override string) (*rule.Registry, error) {
	path := cfg.Rules.Path
	if override != "" {
		path = override
	}
	return rule.LoadFile(path)
}

// notifyMinPriority resolves the configured notification floor.
// Validation already rejected unknown values; anything left over falls
// back to low, which delivers everything.
func notifyMinPriority(cfg *config.Config) event.Priority {
	if cfg.Notify.MinPriority == "" {
		return event.PriorityLow
	}
	p, err := event.ParsePriority(cfg.Notify.MinPriority)
	if err != nil {
		return event.PriorityLow
	}
	return p
}

// newService wires a coordination service from config: the loaded rules,
// a notifier that writes to the engine log, and a consensus loopback
// that feeds escalations back through ProcessEvent. The loopback closure
// reads svc late, after New has assigned it; the hop guard bounds the
// resulting recursion.
func newService(cfg *config.Config, registry *rule.Registry, logger *logging.Logger) (*coordination.Service, *event.Bus, error) {
	bus := event.NewBus()

	var svc *coordination.Service
	loopback := consensus.NewLoopback(func(ctx context.Context, ev event.CoordinationEvent) ([]action.ExecutedAction, error) {
		return svc.ProcessEvent(ctx, ev)
	})

	svc, err := coordination.New(coordination.Config{
		Registry:  registry,
		Notifier:  notify.NewLogNotifier(logger, notify.WithMinPriority(notifyMinPriority(cfg))),
		Escalator: loopback,
		Logger:    logger,
		Bus:       bus,
	},
		coordination.WithHopLimit(cfg.Engine.HopLimit),
		coordination.WithQueueCapacity(cfg.Engine.QueueCapacity),
		coordination.WithActionTimeout(cfg.Engine.ActionTimeout()),
	)
	if err != nil {
		return nil, nil, err
	}
	return svc, bus, nil
}
