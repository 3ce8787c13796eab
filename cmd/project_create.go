package cmd

import (
	"context"

	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var projectCreateName string

func resetProjectCreateState() {
	projectCreateName = ""
}

func init() {
	projectCreateCmd.Flags().StringVarP(&projectCreateName, "name", "n", "", "display name (defaults to the code)")
}

var projectCreateCmd = &cobra.Command{
	Use:   "create CODE",
	Short: "Register a new project",
	Long: `Registers a new project in the studio registry.

The code is the project's permanent identifier and names its folder under
the projects root. It must be unique and can never be reused, even after
the project is deleted. Codes compare case-insensitively.

Examples:
  lucid project create PRJ01
  lucid project create PRJ01 --name "Spring Campaign"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		Logger.Infof("Creating project %s", code)

		spinner, cleanup := startSpinner("Creating project...")
		defer cleanup()

		result, err := workflows.CreateProject(context.Background(), workflows.CreateProjectOptions{
			Runtime: rt,
			Code:    code,
			Name:    projectCreateName,
		})
		if err != nil {
			Logger.Debugf("Create failed: %v", err)
			spinner.FinalMSG = formatError(err)
			return reported(err)
		}

		Logger.Debugf("Created %s with UUID %s in %s", result.Project.Code, result.Project.UUID, result.RegistryPath)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created project " + ui.Highlight.Sprint(result.Project.Code) +
			" " + ui.Muted.Sprint(result.Project.Name)
		return nil
	},
}
