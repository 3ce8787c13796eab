package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/utils"
	"github.com/PolarWolf314/lucid/internal/watch"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var configWatchCmd = &cobra.Command{
	Use:   "watch CODE",
	Short: "Re-resolve a project whenever settings or the registry change",
	Long: `Resolves CODE, then resolves again every time the studio settings, the
project registry, this machine's profile or your user config changes.
Press Ctrl+C to stop.

Examples:
  lucid config watch PRJ01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Print(ui.Info.Sprint("Watching:") + utils.FormatPaths([]string{rt.Settings, rt.Registry, rt.MachineProfile, rt.UserConfig}))
		fmt.Println(ui.Muted.Sprint("Ctrl+C to stop"))

		return workflows.Watch(ctx, workflows.WatchOptions{
			Config: workflows.ConfigOptions{
				Runtime:     rt,
				ProjectCode: args[0],
			},
			OnChange: func(change watch.Change) {
				if change.Kind == watch.ChangeRemoved {
					Logger.Warnf("%s was removed", change.File)
					return
				}
				Logger.Infof("%s %s", change.File, change.Kind)
			},
			OnResolve: func(cfg *workflows.ResolvedConfig, err error) {
				stamp := ui.Muted.Sprint(time.Now().Format("15:04:05"))
				if err != nil {
					fmt.Println(stamp + " " + formatError(err))
					return
				}
				fmt.Println(stamp + " " + ui.Success.Sprint("✓") + " Resolved " + ui.Highlight.Sprint(cfg.Project().Code))
				outputConfigText(cfg)
			},
		})
	},
}
