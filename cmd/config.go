package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Resolve the configuration for a project on this machine",
	Long: `Provides commands for resolving the merged configuration an authoring
tool receives for a project: paths for this machine, and settings merged from
studio defaults, project overrides and user overrides.

Examples:
  # Show the resolved configuration
  lucid config resolve PRJ01

  # Print the launch environment
  lucid config resolve PRJ01 --env

  # Re-resolve whenever settings or the registry change
  lucid config watch PRJ01`,
}

func init() {
	addPersistentFlags(ConfigCmd)

	ConfigCmd.AddCommand(configResolveCmd)
	ConfigCmd.AddCommand(configWatchCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	resetCommonState()
	resetConfigResolveState()
	resetCobraFlagState(ConfigCmd)
}
