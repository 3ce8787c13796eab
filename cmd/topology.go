package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

// TopologyCmd is the top-level topology command.
var TopologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Inspect the studio topology",
}

var topologyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the studio topology and this machine's profile",
	Long: `Displays the drive and install modes, the studio path table, and the
profile this machine resolves with. Nothing is probed.

Examples:
  lucid topology show
  lucid topology show --host WS-07`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Reading topology from %s", rt.Settings)

		result, err := workflows.ShowTopology(context.Background(), workflows.TopologyOptions{Runtime: rt})
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}

		fmt.Println(ui.Info.Sprint("Topology") + " " + ui.Muted.Sprint(result.SettingsPath))
		fmt.Printf("  %-15s %s\n", "Drive:", result.Topology.Drive())
		fmt.Printf("  %-15s %s\n", "Install:", result.Topology.Install())
		fmt.Printf("  %-15s %s\n", "Projects root:", ui.Path.Sprint(orUnset(result.Table.ProjectsRoot)))
		if result.Table.LocalMount != "" {
			fmt.Printf("  %-15s %s\n", "Local mount:", ui.Path.Sprint(result.Table.LocalMount))
		}
		fmt.Printf("  %-15s %s\n", "Scratch:", ui.Path.Sprint(orUnset(result.Table.Scratch)))
		fmt.Printf("  %-15s %s\n", "Probe timeout:", result.ProbeTimeout)

		if len(result.Table.Tools) > 0 {
			fmt.Println()
			fmt.Println(ui.Info.Sprint("Studio tools:"))
			fmt.Print(ui.KeyValues("  ", result.Table.Tools))
		}

		fmt.Println()
		if result.Profile == nil {
			fmt.Println(ui.Warning.Sprint("⚠") + " No machine profile for " + ui.Highlight.Sprint(result.Host))
			if !result.Topology.UniformInstalls() {
				fmt.Println(ui.Info.Sprint("→") + " Install paths are inconsistent; tools cannot resolve until this machine has a profile")
			}
			return nil
		}

		p := result.Profile
		fmt.Println(ui.Info.Sprint("Machine profile") + " " + ui.Highlight.Sprint(result.Host))
		for _, row := range [][2]string{{"Mount:", p.Mount}, {"Projects root:", p.ProjectsRoot}, {"Scratch:", p.Scratch}} {
			if row[1] != "" {
				fmt.Printf("  %-15s %s\n", row[0], ui.Path.Sprint(row[1]))
			}
		}
		if len(p.Tools) > 0 {
			fmt.Print(ui.KeyValues("  ", p.Tools))
		}
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	addPersistentFlags(TopologyCmd)
	TopologyCmd.AddCommand(topologyShowCmd)
}

// GetTopologyCmd returns the TopologyCmd for testing.
func GetTopologyCmd() *cobra.Command {
	return TopologyCmd
}

// ResetTopologyState resets all topology command global variables to their default values for testing.
func ResetTopologyState() {
	resetCommonState()
	resetCobraFlagState(TopologyCmd)
}
