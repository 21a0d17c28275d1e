package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedprakash-m/pathfinder-sub008/internal/config"
	"github.com/vedprakash-m/pathfinder-sub008/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View engine logs",
	Long: `View and filter the engine log file.

By default, shows the last 50 entries. Use flags to filter by trip,
rule, event type, level or time, and to export in other formats.

Examples:
  # Show the last 50 entries
  pathfinder logs

  # Everything the engine did for one trip
  pathfinder logs --trip trip-rockies -n 0

  # Follow logs in real-time
  pathfinder logs -f

  # Warnings and errors from the last hour
  pathfinder logs --level warn --since 1h

  # Export one rule's activity as CSV
  pathfinder logs --rule escalate-conflicts --format csv -o audit.csv`,
	RunE: runLogs,
}

var (
	logsFile   string
	logsTail   int
	logsFollow bool
	logsLevel  string
	logsSince  string
	logsTrip   string
	logsRule   string
	logsEvent  string
	logsGrep   string
	logsFormat string
	logsOutput string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsFile, "file", "", "Log file (default: logging.file from config)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsTrip, "trip", "", "Filter by trip ID")
	logsCmd.Flags().StringVar(&logsRule, "rule", "", "Filter by rule name")
	logsCmd.Flags().StringVar(&logsEvent, "event", "", "Filter by event type")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter by message substring")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Export format: json, text or csv")
	logsCmd.Flags().StringVarP(&logsOutput, "output", "o", "", "Export to file instead of printing")
}

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// levelColor returns the ANSI color code for a log level
func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return colorGray
	case logging.LevelInfo:
		return colorBlue
	case logging.LevelWarn:
		return colorYellow
	case logging.LevelError:
		return colorRed
	default:
		return colorReset
	}
}

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry logging.LogEntry) string {
	var sb strings.Builder

	sb.WriteString(colorGray)
	sb.WriteString("[")
	sb.WriteString(entry.Timestamp.Format("15:04:05.000"))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	sb.WriteString(" ")
	sb.WriteString(levelColor(entry.Level))
	sb.WriteString("[")
	sb.WriteString(strings.ToUpper(entry.Level))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	sb.WriteString(" ")
	sb.WriteString(entry.Message)

	if entry.TripID != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("trip_id=")
		sb.WriteString(entry.TripID)
		sb.WriteString(colorReset)
	}
	if entry.RuleName != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("rule=")
		sb.WriteString(entry.RuleName)
		sb.WriteString(colorReset)
	}
	if entry.EventType != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("event_type=")
		sb.WriteString(entry.EventType)
		sb.WriteString(colorReset)
	}

	for key, value := range entry.Attrs {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(colorReset)
		sb.WriteString(fmt.Sprintf("%v", value))
	}

	return sb.String()
}

// logsFilter builds the filter from the command's flags.
func logsFilter() (logging.LogFilter, error) {
	filter := logging.LogFilter{
		TripID:          logsTrip,
		RuleName:        logsRule,
		EventType:       logsEvent,
		MessageContains: logsGrep,
	}
	if logsLevel != "" {
		filter.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return logging.LogFilter{}, fmt.Errorf("invalid --since duration: %w", err)
		}
		filter.StartTime = time.Now().Add(-d)
	}
	return filter, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logPath := logsFile
	if logPath == "" {
		logPath = cfg.Logging.File
	}
	if logPath == "" {
		return fmt.Errorf("no log file configured: set logging.file in config or pass --file")
	}

	filter, err := logsFilter()
	if err != nil {
		return err
	}

	if logsFollow {
		return followLogs(cmd.OutOrStdout(), logPath, filter)
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "No logs found at %s\n", logPath)
		return nil
	}

	entries, err := logging.AggregateLogs(logPath)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}
	entries = logging.FilterLogs(entries, filter)

	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	if logsOutput != "" {
		if err := logging.ExportLogEntries(entries, logsOutput, logsFormat); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), logsOutput)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, entry := range entries {
		fmt.Fprintln(out, formatLogEntry(entry))
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
	}
	return nil
}

// followLogs implements tail -f behavior for the log file
func followLogs(out io.Writer, logPath string, filter logging.LogFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Fprintf(out, "Following logs... (Ctrl+C to stop)\n\n")

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// No new data, wait briefly and try again
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("error reading log file: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, err := logging.ParseLogEntry(line)
		if err != nil {
			// Not a JSON record, display the raw line
			fmt.Fprintln(out, line)
			continue
		}

		if !logging.MatchesFilter(entry, filter) {
			continue
		}
		fmt.Fprintln(out, formatLogEntry(entry))
	}
}
