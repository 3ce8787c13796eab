package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var projectShowHistory bool

func resetProjectShowState() {
	projectShowHistory = false
}

func init() {
	projectShowCmd.Flags().BoolVar(&projectShowHistory, "history", false, "include the project's audit history")
}

var projectShowCmd = &cobra.Command{
	Use:   "show CODE",
	Short: "Display one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Showing project %s", args[0])

		result, err := workflows.ShowProject(context.Background(), workflows.ShowProjectOptions{
			Runtime: rt,
			Code:    args[0],
		})
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}

		p := result.Project
		fmt.Println(ui.Info.Sprint("Project") + " " + ui.Highlight.Sprint(p.Code))
		fmt.Println()
		fmt.Printf("  %-10s %s\n", "Name:", p.Name)
		fmt.Printf("  %-10s %s\n", "UUID:", p.UUID)
		fmt.Printf("  %-10s %s\n", "Created:", p.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("  %-10s %s\n", "Folder:", ui.Path.Sprint(p.StoragePath()))

		if len(p.Overrides) > 0 {
			fmt.Println()
			fmt.Println(ui.Info.Sprint("Overrides:"))
			fmt.Print(ui.KeyValues("  ", formatSettings(p.Overrides)))
		}

		if projectShowHistory && len(result.History) > 0 {
			fmt.Println()
			fmt.Println(ui.Info.Sprint("History:"))
			outputLogDefault(result.History)
		}
		return nil
	},
}

// formatSettings renders setting values the way they are written in TOML.
func formatSettings(settings map[string]any) map[string]string {
	out := make(map[string]string, len(settings))
	for k, v := range settings {
		switch t := v.(type) {
		case string:
			out[k] = fmt.Sprintf("%q", t)
		default:
			out[k] = fmt.Sprintf("%v", t)
		}
	}
	return out
}
