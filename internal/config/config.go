package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete engine configuration
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig controls event processing and escalation dispatch
type EngineConfig struct {
	// HopLimit is the maximum escalation depth before the cycle guard
	// aborts a derived event (default: 1, 0 refuses every escalation)
	HopLimit int `mapstructure:"hop_limit"`
	// QueueCapacity is the size of the escalation queue (default: 64)
	QueueCapacity int `mapstructure:"queue_capacity"`
	// ActionTimeoutMs bounds each action execution in milliseconds (default: 5000)
	ActionTimeoutMs int `mapstructure:"action_timeout_ms"`
	// DefaultPriority is the priority assigned to events that do not carry
	// one: "low", "medium", "high", "urgent" (default: "medium")
	DefaultPriority string `mapstructure:"default_priority"`
}

// RulesConfig controls where automation rules are loaded from
type RulesConfig struct {
	// Path is the rule file or directory to load (default: <config dir>/rules.yaml)
	Path string `mapstructure:"path"`
}

// FeedConfig controls the event spool watcher
type FeedConfig struct {
	// Path is the JSONL spool file the backend appends to
	// (default: <config dir>/events.jsonl)
	Path string `mapstructure:"path"`
	// DebounceMs is how long to wait after a filesystem event before
	// draining the spool, in milliseconds (default: 50)
	DebounceMs int `mapstructure:"debounce_ms"`
	// FromStart replays records already in the spool on watcher start
	// instead of tailing from the current end (default: false)
	FromStart bool `mapstructure:"from_start"`
}

// NotifyConfig controls the log-backed notification channel
type NotifyConfig struct {
	// MinPriority drops notifications below this priority:
	// "low", "medium", "high", "urgent" (default: "low" keeps everything)
	MinPriority string `mapstructure:"min_priority"`
}

// LoggingConfig controls engine log output
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr (default: "")
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated log files (default: false)
	Compress bool `mapstructure:"compress"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			HopLimit:        1,
			QueueCapacity:   64,
			ActionTimeoutMs: 5000,
			DefaultPriority: "medium",
		},
		Rules: RulesConfig{
			Path: filepath.Join(ConfigDir(), "rules.yaml"),
		},
		Feed: FeedConfig{
			Path:       filepath.Join(ConfigDir(), "events.jsonl"),
			DebounceMs: 50,
			FromStart:  false,
		},
		Notify: NotifyConfig{
			MinPriority: "low",
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
	}
}

// ActionTimeout returns the per-action timeout as a time.Duration
func (c *EngineConfig) ActionTimeout() time.Duration {
	return time.Duration(c.ActionTimeoutMs) * time.Millisecond
}

// Debounce returns the spool drain debounce as a time.Duration
func (c *FeedConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Engine defaults
	viper.SetDefault("engine.hop_limit", defaults.Engine.HopLimit)
	viper.SetDefault("engine.queue_capacity", defaults.Engine.QueueCapacity)
	viper.SetDefault("engine.action_timeout_ms", defaults.Engine.ActionTimeoutMs)
	viper.SetDefault("engine.default_priority", defaults.Engine.DefaultPriority)

	// Rules defaults
	viper.SetDefault("rules.path", defaults.Rules.Path)

	// Feed defaults
	viper.SetDefault("feed.path", defaults.Feed.Path)
	viper.SetDefault("feed.debounce_ms", defaults.Feed.DebounceMs)
	viper.SetDefault("feed.from_start", defaults.Feed.FromStart)

	// Notify defaults
	viper.SetDefault("notify.min_priority", defaults.Notify.MinPriority)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pathfinder")
	}
	// Fall back to ~/.config/pathfinder
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pathfinder"
	}
	return filepath.Join(home, ".config", "pathfinder")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "coordination.yaml")
}
