package cmd

import (
	"context"

	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var projectRenameCmd = &cobra.Command{
	Use:   "rename CODE NAME",
	Short: "Change a project's display name",
	Long: `Changes a project's display name. The code never changes.

Examples:
  lucid project rename PRJ01 "Spring Campaign"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Renaming project %s to %q", args[0], args[1])

		spinner, cleanup := startSpinner("Renaming project...")
		defer cleanup()

		err := workflows.RenameProject(context.Background(), workflows.RenameProjectOptions{
			Runtime: rt,
			Code:    args[0],
			Name:    args[1],
		})
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return reported(err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Renamed " + ui.Highlight.Sprint(args[0]) + " to " + args[1]
		return nil
	},
}
