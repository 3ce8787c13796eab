package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var projectSetCmd = &cobra.Command{
	Use:   "set CODE KEY VALUE",
	Short: "Override a setting for one project",
	Long: `Sets a project-level override. It beats the studio default and is beaten
by user overrides.

VALUE is read as a TOML value: 30 is an integer, 23.976 a float, true a
boolean. Anything else is stored as a string.

Examples:
  lucid project set PRJ01 frameRate 30
  lucid project set PRJ01 colorspace ACEScg`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Setting %s on %s", args[1], args[0])

		spinner, cleanup := startSpinner("Updating project...")
		defer cleanup()

		result, err := workflows.SetOverride(context.Background(), workflows.SetOverrideOptions{
			Runtime: rt,
			Code:    args[0],
			Key:     args[1],
			Value:   args[2],
		})
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return reported(err)
		}

		Logger.Debugf("Stored %s as %T", result.Key, result.Value)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + ui.Highlight.Sprint(args[0]) + ": " +
			ui.Key.Sprint(result.Key) + " = " + formatSettings(map[string]any{result.Key: result.Value})[result.Key]
		return nil
	},
}

var projectUnsetCmd = &cobra.Command{
	Use:   "unset CODE KEY",
	Short: "Clear a project's setting override",
	Long: `Clears a project-level override so the studio default applies again.
Clearing a key that was never set is not an error.

Examples:
  lucid project unset PRJ01 frameRate`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Clearing %s on %s", args[1], args[0])

		spinner, cleanup := startSpinner("Updating project...")
		defer cleanup()

		result, err := workflows.RemoveOverride(context.Background(), workflows.RemoveOverrideOptions{
			Runtime: rt,
			Code:    args[0],
			Key:     args[1],
		})
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return reported(err)
		}

		if !result.Removed {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + fmt.Sprintf(" %s was not overridden on %s", ui.Key.Sprint(args[1]), ui.Highlight.Sprint(args[0]))
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Cleared " + ui.Key.Sprint(args[1]) + " on " + ui.Highlight.Sprint(args[0])
		return nil
	},
}
