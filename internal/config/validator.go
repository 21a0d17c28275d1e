package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "engine.hop_limit")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateEngine()...)
	errors = append(errors, c.validateRules()...)
	errors = append(errors, c.validateFeed()...)
	errors = append(errors, c.validateNotify()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateEngine validates the EngineConfig
func (c *Config) validateEngine() []ValidationError {
	var errors []ValidationError

	// Hop limit bounds: 0 refuses every escalation, which is valid;
	// anything past 10 means a rule set relying on escalation chains
	// the engine is built to prevent
	const maxHopLimit = 10
	if c.Engine.HopLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "engine.hop_limit",
			Value:   c.Engine.HopLimit,
			Message: "must be non-negative (0 refuses all escalations)",
		})
	}
	if c.Engine.HopLimit > maxHopLimit {
		errors = append(errors, ValidationError{
			Field:   "engine.hop_limit",
			Value:   c.Engine.HopLimit,
			Message: fmt.Sprintf("exceeds maximum of %d", maxHopLimit),
		})
	}

	const minQueueCapacity = 1
	const maxQueueCapacity = 65536
	if c.Engine.QueueCapacity < minQueueCapacity {
		errors = append(errors, ValidationError{
			Field:   "engine.queue_capacity",
			Value:   c.Engine.QueueCapacity,
			Message: fmt.Sprintf("must be at least %d", minQueueCapacity),
		})
	}
	if c.Engine.QueueCapacity > maxQueueCapacity {
		errors = append(errors, ValidationError{
			Field:   "engine.queue_capacity",
			Value:   c.Engine.QueueCapacity,
			Message: fmt.Sprintf("exceeds maximum of %d", maxQueueCapacity),
		})
	}

	const minActionTimeout = 10     // 10ms minimum
	const maxActionTimeout = 600000 // 10 minutes maximum
	if c.Engine.ActionTimeoutMs < minActionTimeout {
		errors = append(errors, ValidationError{
			Field:   "engine.action_timeout_ms",
			Value:   c.Engine.ActionTimeoutMs,
			Message: fmt.Sprintf("must be at least %dms", minActionTimeout),
		})
	}
	if c.Engine.ActionTimeoutMs > maxActionTimeout {
		errors = append(errors, ValidationError{
			Field:   "engine.action_timeout_ms",
			Value:   c.Engine.ActionTimeoutMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxActionTimeout),
		})
	}

	if c.Engine.DefaultPriority != "" {
		if _, err := event.ParsePriority(c.Engine.DefaultPriority); err != nil {
			errors = append(errors, ValidationError{
				Field:   "engine.default_priority",
				Value:   c.Engine.DefaultPriority,
				Message: "must be one of: low, medium, high, urgent",
			})
		}
	}

	return errors
}

// validateRules validates the RulesConfig
func (c *Config) validateRules() []ValidationError {
	return validatePath(c.Rules.Path, "rules.path")
}

// validateFeed validates the FeedConfig
func (c *Config) validateFeed() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePath(c.Feed.Path, "feed.path")...)

	const minDebounce = 1    // 1ms minimum
	const maxDebounce = 5000 // 5 seconds maximum
	if c.Feed.DebounceMs < minDebounce {
		errors = append(errors, ValidationError{
			Field:   "feed.debounce_ms",
			Value:   c.Feed.DebounceMs,
			Message: fmt.Sprintf("must be at least %dms", minDebounce),
		})
	}
	if c.Feed.DebounceMs > maxDebounce {
		errors = append(errors, ValidationError{
			Field:   "feed.debounce_ms",
			Value:   c.Feed.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxDebounce),
		})
	}

	return errors
}

// validateNotify validates the NotifyConfig
func (c *Config) validateNotify() []ValidationError {
	var errors []ValidationError

	if c.Notify.MinPriority != "" {
		if _, err := event.ParsePriority(c.Notify.MinPriority); err != nil {
			errors = append(errors, ValidationError{
				Field:   "notify.min_priority",
				Value:   c.Notify.MinPriority,
				Message: "must be one of: low, medium, high, urgent",
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	errors = append(errors, validatePath(c.Logging.File, "logging.file")...)

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validatePath checks a configured path for characters and lengths no
// filesystem accepts. Empty paths are allowed; sections that require a
// path enforce that themselves.
func validatePath(path, field string) []ValidationError {
	var errors []ValidationError

	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: "path contains invalid null character",
		})
	}

	// Reasonable path length limit (most filesystems have limits around 4096)
	const maxPathLength = 4096
	if len(path) > maxPathLength {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
		})
	}

	return errors
}
