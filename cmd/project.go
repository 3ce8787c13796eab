package cmd

import (
	"github.com/spf13/cobra"
)

// ProjectCmd is the top-level project command.
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the studio project registry",
	Long: `Provides commands for creating, listing, inspecting and retiring projects,
and for managing project-level setting overrides.

Project codes are permanent. A deleted project's code stays retired so a
lingering project folder can never be adopted by a new project.

Examples:
  # Register a project
  lucid project create PRJ01 --name "Demo"

  # List projects matching a pattern
  lucid project list --match "PRJ*"

  # Override a setting for one project
  lucid project set PRJ01 frameRate 30`,
}

func init() {
	addPersistentFlags(ProjectCmd)

	ProjectCmd.AddCommand(projectCreateCmd)
	ProjectCmd.AddCommand(projectListCmd)
	ProjectCmd.AddCommand(projectShowCmd)
	ProjectCmd.AddCommand(projectDeleteCmd)
	ProjectCmd.AddCommand(projectRenameCmd)
	ProjectCmd.AddCommand(projectSetCmd)
	ProjectCmd.AddCommand(projectUnsetCmd)
	ProjectCmd.AddCommand(projectLogCmd)
}

// GetProjectCmd returns the ProjectCmd for testing.
func GetProjectCmd() *cobra.Command {
	return ProjectCmd
}

// ResetProjectState resets all project command global variables to their default values for testing.
func ResetProjectState() {
	resetCommonState()
	resetProjectCreateState()
	resetProjectListState()
	resetProjectShowState()
	resetProjectDeleteState()
	resetProjectLogState()
	resetCobraFlagState(ProjectCmd)
}
