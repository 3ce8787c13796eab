package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var toolPathProject string

// ToolCmd is the top-level tool command.
var ToolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Locate authoring tools on this machine",
}

var toolPathCmd = &cobra.Command{
	Use:   "path TOOL",
	Short: "Print the executable path of a tool",
	Long: `Prints where TOOL is installed on this machine, as the studio topology and
this machine's profile say. Nothing else is printed, so the output can be
used directly in scripts.

Examples:
  lucid tool path maya
  lucid tool path unreal --project PRJ01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Resolving %s on %s", args[0], rt.Host)

		result, err := workflows.ToolPath(context.Background(), workflows.ToolPathOptions{
			Runtime:     rt,
			Tool:        args[0],
			ProjectCode: toolPathProject,
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), formatError(err))
			return reported(err)
		}

		Logger.Debugf("Resolved under %s", result.Topology)
		fmt.Println(result.Path)
		return nil
	},
}

func init() {
	addPersistentFlags(ToolCmd)
	toolPathCmd.Flags().StringVarP(&toolPathProject, "project", "p", "", "resolve as a launch for this project would")
	ToolCmd.AddCommand(toolPathCmd)
}

// GetToolCmd returns the ToolCmd for testing.
func GetToolCmd() *cobra.Command {
	return ToolCmd
}

// ResetToolState resets all tool command global variables to their default values for testing.
func ResetToolState() {
	resetCommonState()
	toolPathProject = ""
	resetCobraFlagState(ToolCmd)
}
