// Package logging provides structured logging for the coordination engine.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation support for debugging and post-hoc analysis. It is
// designed to help troubleshoot automation runs by providing structured,
// filterable logs that can be analyzed after the fact.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (trip ID, rule name, event type)
//   - Log rotation with configurable size limits
//   - Optional gzip compression for rotated logs
//   - Log aggregation and filtering utilities
//   - Export to JSON, text, or CSV formats
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses Go's slog internally which is designed for concurrent access. The
// [RotatingWriter] type uses a mutex to protect file operations during
// rotation. Child loggers created via With* methods share the underlying
// writer safely.
//
// # Basic Usage
//
// Create a logger writing to a file:
//
//	logger, err := logging.NewLogger("/var/log/pathfinder/engine.log", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	// Log messages at various levels
//	logger.Debug("detailed info", "key", "value")
//	logger.Info("event processed", "duration_ms", 12)
//	logger.Warn("action failed", "reason", reason)
//	logger.Error("rules file rejected", "error", err.Error())
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	// Add trip context
//	tripLogger := logger.WithTrip("trip-abc123")
//
//	// Add rule context
//	ruleLogger := tripLogger.WithRule("escalate-conflict")
//
//	// Add event type context
//	eventLogger := ruleLogger.WithEventType("conflict.detected")
//
//	// All logs from eventLogger will include trip_id, rule, and event_type
//	eventLogger.Info("action executed", "kind", "notify")
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"action executed","trip_id":"trip-abc123","rule":"escalate-conflict","event_type":"conflict.detected","kind":"notify"}
//
// # Log Rotation
//
// For long-running processes, use log rotation to prevent unbounded growth:
//
//	config := logging.RotationConfig{
//	    MaxSizeMB:  10,    // Rotate when file exceeds 10MB
//	    MaxBackups: 3,     // Keep 3 backup files
//	    Compress:   true,  // Gzip compress rotated files
//	}
//
//	logger, err := logging.NewLoggerWithRotation("/var/log/pathfinder/engine.log", "INFO", config)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
// Rotated files are named: engine.log.1, engine.log.2, etc., where .1 is the
// most recent backup. When compression is enabled, rotated files become
// engine.log.1.gz, etc.
//
// # Testing
//
// For testing, use [NopLogger] to discard all log output:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.NopLogger()
//	    // Use logger in tests without creating files
//	}
//
// # Log Aggregation and Filtering
//
// Read and analyze logs after an automation run:
//
//	// Load all logs from the engine log file
//	entries, err := logging.AggregateLogs("/var/log/pathfinder/engine.log")
//	if err != nil {
//	    return err
//	}
//
//	// Filter logs by various criteria
//	filter := logging.LogFilter{
//	    Level:     "WARN",               // Minimum level
//	    TripID:    "trip-abc123",        // Specific trip
//	    EventType: "conflict.detected",  // Specific event type
//	    StartTime: time.Now().Add(-1 * time.Hour), // Last hour
//	}
//	filtered := logging.FilterLogs(entries, filter)
//
//	// Export to various formats
//	logging.ExportLogEntries(filtered, "errors.json", "json")
//	logging.ExportLogEntries(filtered, "errors.txt", "text")
//	logging.ExportLogEntries(filtered, "errors.csv", "csv")
//
// # Log Levels
//
// The package defines four log levels:
//
//   - [LevelDebug]: Detailed information for debugging
//   - [LevelInfo]: General operational information (default)
//   - [LevelWarn]: Warning conditions that may need attention
//   - [LevelError]: Error conditions that affect functionality
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
//
// # Configuration
//
// The logging system is typically configured via the engine's config file:
//
//	logging:
//	  level: info
//	  file: /var/log/pathfinder/engine.log
//	  max_size_mb: 10
//	  max_backups: 3
//
// See the README for complete configuration documentation.
package logging
