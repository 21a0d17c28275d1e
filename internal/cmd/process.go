package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vedprakash-m/pathfinder-sub008/internal/config"
	"github.com/vedprakash-m/pathfinder-sub008/internal/feed"
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Run one event record through the automation rules",
	Long: `Process a single wire-format event record and print the audit
sequence of executed actions.

The record is read from the given file, or from stdin when no file is
given. Action failures show up in the audit output, not the exit code:
the exit code reflects only contract errors such as an unreadable
record or an invalid rules file.

Examples:
  # Process a record from a file
  pathfinder process event.json

  # Process a record from stdin
  echo '{"event_type":"family.joined","trip_id":"trip-1"}' | pathfinder process

  # Use a specific rules file and emit JSON
  pathfinder process event.json --rules rules.yaml --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

var (
	processRules string
	processJSON  bool
)

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVarP(&processRules, "rules", "r", "", "rules file (default: rules.path from config)")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "print the audit sequence as JSON")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var reader io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening record: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var rec feed.Record
	if err := json.NewDecoder(reader).Decode(&rec); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	if rec.Priority == "" {
		rec.Priority = cfg.Engine.DefaultPriority
	}
	ev, err := rec.ToEvent()
	if err != nil {
		return err
	}

	registry, err := loadRegistry(cfg, processRules)
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

	audit, err := svc.ProcessEvent(cmd.Context(), ev)
	if err != nil {
		return err
	}

	if processJSON {
		return writeAuditJSON(cmd.OutOrStdout(), ev, audit)
	}
	writeAuditText(cmd.OutOrStdout(), ev, audit)
	return nil
}
