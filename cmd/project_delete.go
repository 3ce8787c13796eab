package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/utils"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var projectDeleteYes bool

func resetProjectDeleteState() {
	projectDeleteYes = false
}

func init() {
	projectDeleteCmd.Flags().BoolVarP(&projectDeleteYes, "yes", "y", false, "skip the confirmation prompt")
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete CODE",
	Short: "Remove a project from the registry",
	Long: `Removes a project record from the registry.

The project's folder is not touched, and its code is retired for good:
creating a project with the same code later fails.

Examples:
  lucid project delete PRJ01
  lucid project delete PRJ01 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		Logger.Infof("Deleting project %s", code)

		if !projectDeleteYes {
			if !utils.IsStdinTerminal() {
				Logger.Warnf("Refusing to delete %s without confirmation; pass --yes", code)
				return reported(fmt.Errorf("confirmation required to delete %s", code))
			}
			fmt.Printf("Delete %s? Its code can never be used again. [y/N]: ", ui.Highlight.Sprint(code))
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println(ui.Warning.Sprint("⚠") + " Aborted.")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Deleting project...")
		defer cleanup()

		result, err := workflows.DeleteProject(context.Background(), workflows.DeleteProjectOptions{
			Runtime: rt,
			Code:    code,
		})
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return reported(err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted project " + ui.Highlight.Sprint(result.Project.Code) + "\n" +
			ui.Info.Sprint("→") + " Its folder " + ui.Path.Sprint(result.Project.StoragePath()) + " was left in place"
		return nil
	},
}
