package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/lucid/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lucid",
	Short: "Lucid - Studio pipeline configuration and project registry.",
	Long: `Lucid resolves where projects and authoring tools live on this machine,
keeps the studio's project registry, and merges studio, project and user
settings into the configuration a tool is launched with.

Features:
  - Register projects under permanent, never-reused codes
  - Resolve project and tool paths for any studio drive layout
  - Merge settings from studio defaults, project overrides and user overrides

Usage:
  lucid <command> [flags]

Available Commands:
  project    Manage the studio project registry
  config     Resolve the configuration for a project
  tool       Locate authoring tools on this machine
  topology   Inspect the studio topology

Run 'lucid help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Lucid", "alligator2", "cyan", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Welcome to Lucid! Run 'lucid --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.ProjectCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
	rootCmd.AddCommand(cmd.ToolCmd)
	rootCmd.AddCommand(cmd.TopologyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
