package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vedprakash-m/pathfinder-sub008/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Coordination automation engine for group trip planning",
	Long: `Pathfinder processes group trip-planning events through declarative
automation rules: notifying families, proposing schedule slots that fit
everyone's availability, and escalating unresolved conflicts to the
consensus layer.

Events arrive as JSONL records on a spool file the web backend appends
to, or as one-shot records handed to the process command.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/pathfinder/coordination.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("coordination")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/pathfinder")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PATHFINDER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., PATHFINDER_ENGINE_HOP_LIMIT for engine.hop_limit
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
