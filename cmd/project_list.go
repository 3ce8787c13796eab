package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/lucid/internal/registry"
	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	projectListMatch   string
	projectListRetired bool
	projectListJSON    bool
)

func resetProjectListState() {
	projectListMatch = ""
	projectListRetired = false
	projectListJSON = false
}

func init() {
	projectListCmd.Flags().StringVarP(&projectListMatch, "match", "m", "", "only codes matching this glob (e.g. \"PRJ*\")")
	projectListCmd.Flags().BoolVar(&projectListRetired, "retired", false, "also list codes of deleted projects")
	projectListCmd.Flags().BoolVar(&projectListJSON, "json", false, "output as JSON array")
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered projects",
	Long: `Lists projects in the order they were created, oldest first.

Examples:
  lucid project list
  lucid project list --match "PRJ*"
  lucid project list --retired
  lucid project list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Listing projects from %s", rt.Registry)

		result, err := workflows.ListProjects(context.Background(), workflows.ListProjectsOptions{
			Runtime: rt,
			Match:   projectListMatch,
		})
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}
		Logger.Debugf("Found %d projects and %d retired codes", len(result.Projects), len(result.Retired))

		if projectListJSON {
			return outputProjectsJSON(result.Projects)
		}

		if len(result.Projects) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " No projects found.")
		}
		for _, p := range result.Projects {
			fmt.Printf("%-12s  %-30s  %s\n", ui.Highlight.Sprint(p.Code), p.Name, ui.Muted.Sprint(p.CreatedAt.Format("2006-01-02 15:04")))
		}

		if projectListRetired && len(result.Retired) > 0 {
			fmt.Println()
			fmt.Println(ui.Info.Sprint("Retired codes:") + " " + strings.Join(result.Retired, ", "))
		}
		return nil
	},
}

func outputProjectsJSON(projects []registry.ProjectRecord) error {
	if projects == nil {
		projects = []registry.ProjectRecord{}
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal projects to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
