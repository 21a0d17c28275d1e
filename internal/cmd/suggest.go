package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vedprakash-m/pathfinder-sub008/internal/schedule"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [availability-file]",
	Short: "Propose trip slots from family availability",
	Long: `Compute ranked schedule suggestions from an availability file.
The computation is deterministic: the same file always yields the same
slots, scores and suggestion IDs.

The file is YAML with a trip ID and one entry per family:

  trip_id: trip-rockies
  families:
    - family_id: fam-garcia
      available:
        - {start: 2026-07-10T00:00:00Z, end: 2026-07-20T00:00:00Z}
      preferred: {start: 2026-07-12T00:00:00Z, end: 2026-07-13T00:00:00Z}
    - family_id: fam-chen
      available:
        - {start: 2026-07-12T00:00:00Z, end: 2026-07-18T00:00:00Z}

When no file is given the availability is read from stdin.

Examples:
  # Rank slots for the families in trip.yaml
  pathfinder suggest trip.yaml

  # Half-day slots, up to five, as JSON
  pathfinder suggest trip.yaml --slot 12h --max 5 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

var (
	suggestSlot time.Duration
	suggestMax  int
	suggestJSON bool
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().DurationVar(&suggestSlot, "slot", 24*time.Hour, "length of proposed slots")
	suggestCmd.Flags().IntVar(&suggestMax, "max", 3, "maximum number of suggestions")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print suggestions as JSON")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading availability: %w", err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading availability: %w", err)
		}
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing availability: %w", err)
	}

	tripID, _ := doc["trip_id"].(string)
	if tripID == "" {
		return fmt.Errorf("availability file missing trip_id")
	}
	fams, err := schedule.ParseAvailability(doc["families"])
	if err != nil {
		return fmt.Errorf("parsing availability: %w", err)
	}

	suggestions := schedule.ComputeSuggestions(tripID, fams, schedule.Options{
		SlotDuration:   suggestSlot,
		MaxSuggestions: suggestMax,
	})

	if suggestJSON {
		return writeSuggestionsJSON(cmd.OutOrStdout(), suggestions)
	}
	writeSuggestionsText(cmd.OutOrStdout(), tripID, suggestions)
	return nil
}
