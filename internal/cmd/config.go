package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vedprakash-m/pathfinder-sub008/internal/config"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify engine configuration",
	Long: `View or modify engine configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  pathfinder config set engine.hop_limit 2
  pathfinder config set notify.min_priority high
  pathfinder config set feed.from_start true

Valid keys:
  engine.hop_limit          - Max escalation hops before a cycle aborts
                              (0 refuses every escalation)
  engine.queue_capacity     - Escalation queue bound
  engine.action_timeout_ms  - Per-action collaborator timeout in milliseconds
  engine.default_priority   - Priority for spool records that omit one
                              Options: low, medium, high, urgent
  rules.path                - Automation rules YAML file
  feed.path                 - Event spool file to tail
  feed.debounce_ms          - Spool drain debounce in milliseconds
  feed.from_start           - Replay existing spool records on watch (true/false)
  notify.min_priority       - Lowest priority worth delivering
  logging.level             - Log level: debug, info, warn, error
  logging.file              - Log file (empty logs to stderr)
  logging.max_size_mb       - Log size before rotation
  logging.max_backups       - Rotated files to keep
  logging.compress          - Gzip rotated files (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/pathfinder/coordination.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "engine:")
	fmt.Fprintf(out, "  hop_limit: %d\n", cfg.Engine.HopLimit)
	fmt.Fprintf(out, "  queue_capacity: %d\n", cfg.Engine.QueueCapacity)
	fmt.Fprintf(out, "  action_timeout_ms: %d\n", cfg.Engine.ActionTimeoutMs)
	fmt.Fprintf(out, "  default_priority: %s\n", cfg.Engine.DefaultPriority)

	fmt.Fprintln(out, "rules:")
	fmt.Fprintf(out, "  path: %s\n", cfg.Rules.Path)

	fmt.Fprintln(out, "feed:")
	fmt.Fprintf(out, "  path: %s\n", cfg.Feed.Path)
	fmt.Fprintf(out, "  debounce_ms: %d\n", cfg.Feed.DebounceMs)
	fmt.Fprintf(out, "  from_start: %v\n", cfg.Feed.FromStart)

	fmt.Fprintln(out, "notify:")
	fmt.Fprintf(out, "  min_priority: %s\n", cfg.Notify.MinPriority)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  file: %s\n", cfg.Logging.File)
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Fprintf(out, "  compress: %v\n", cfg.Logging.Compress)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	validKeys := map[string]string{
		"engine.hop_limit":         "int",
		"engine.queue_capacity":    "int",
		"engine.action_timeout_ms": "int",
		"engine.default_priority":  "priority",
		"rules.path":               "string",
		"feed.path":                "string",
		"feed.debounce_ms":         "int",
		"feed.from_start":          "bool",
		"notify.min_priority":      "priority",
		"logging.level":            "level",
		"logging.file":             "string",
		"logging.max_size_mb":      "int",
		"logging.max_backups":      "int",
		"logging.compress":         "bool",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'pathfinder config set --help' to see valid keys", key)
	}

	var typedValue interface{}
	switch keyType {
	case "string":
		typedValue = value
	case "priority":
		if _, err := event.ParsePriority(value); err != nil {
			return fmt.Errorf("invalid value for %s: %s\nValid options: low, medium, high, urgent", key, value)
		}
		typedValue = strings.ToLower(value)
	case "level":
		if !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = strings.ToLower(value)
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		typedValue = intVal
	}

	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'pathfinder config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaults := config.Default()
	configContent := fmt.Sprintf(`# Pathfinder coordination engine configuration

# Escalation and action execution
engine:
  # Maximum escalation hops before a cycle is aborted
  # 0 refuses every escalation
  hop_limit: 1
  # Escalation queue bound; a full queue fails the action instead of blocking
  queue_capacity: 64
  # Per-action collaborator timeout in milliseconds
  action_timeout_ms: 5000
  # Priority assigned to spool records that omit one
  # Options: low, medium, high, urgent
  default_priority: medium

# Automation rules
rules:
  # Rules YAML file: one entry per rule with event, conditions and actions
  path: %s

# Event spool (JSONL, one record per line)
feed:
  # Spool file backends append records to
  path: %s
  # How long to wait after a filesystem event before draining, in milliseconds
  debounce_ms: 50
  # Replay records already in the spool when 'pathfinder watch' starts
  from_start: false

# Notifications
notify:
  # Lowest priority worth delivering
  # Options: low, medium, high, urgent
  min_priority: low

# Logging
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file; empty logs to stderr without rotation
  file: ""
  # Rotate once the log reaches this size
  max_size_mb: 10
  # Rotated files to keep
  max_backups: 3
  # Gzip rotated files
  compress: false
`, defaults.Rules.Path, defaults.Feed.Path)

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize the engine's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "coordination.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/pathfinder/coordination.yaml\n")
	fmt.Fprintf(out, "  3. ./coordination.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: PATHFINDER_* (e.g., PATHFINDER_ENGINE_HOP_LIMIT)")

	return nil
}
