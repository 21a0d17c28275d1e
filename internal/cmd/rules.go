package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vedprakash-m/pathfinder-sub008/internal/config"
	"github.com/vedprakash-m/pathfinder-sub008/internal/rule"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Validate and inspect the automation rules file",
	Long: `Load the rules file, report whether it is valid, and optionally
list every rule it defines. Rules declared against a glob event type
are listed once per concrete type they expanded to.

Examples:
  # Validate the configured rules file
  pathfinder rules

  # Validate a specific file and list its rules
  pathfinder rules --rules rules.yaml --list`,
	RunE: runRules,
}

var (
	rulesPath string
	rulesList bool
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "rules file (default: rules.path from config)")
	rulesCmd.Flags().BoolVarP(&rulesList, "list", "l", false, "list every loaded rule")
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path := cfg.Rules.Path
	if rulesPath != "" {
		path = rulesPath
	}

	registry, err := rule.LoadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d rules from %s\n", registry.Len(), path)
	if !rulesList {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-28s %-24s %-12s %s\n", "NAME", "EVENT", "CONDITIONS", "ACTIONS")
	for _, t := range registry.Types() {
		for _, rl := range registry.RulesFor(t) {
			kinds := make([]string, len(rl.Actions))
			for i, d := range rl.Actions {
				kinds[i] = string(d.Kind)
			}
			fmt.Fprintf(out, "  %-28s %-24s %-12d %s\n",
				rl.Name, rl.EventType, len(rl.Conditions), strings.Join(kinds, ", "))
		}
	}
	return nil
}
