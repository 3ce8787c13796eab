package workflows

import (
	"context"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/lucid/internal/watch"
)

// WatchOptions configures the watch workflow.
type WatchOptions struct {
	Config ConfigOptions

	// OnResolve receives every resolution, the first one immediately.
	// Failed resolutions are delivered too; the watch keeps running.
	OnResolve func(cfg *ResolvedConfig, err error)

	// OnChange, if set, is told which file triggered a re-resolve.
	OnChange func(change watch.Change)
}

// Watch resolves the configuration, then resolves again each time the
// settings, registry or per-machine files change, until ctx is done.
func Watch(ctx context.Context, opts WatchOptions) error {
	rt := opts.Config.Runtime

	var files []string
	for _, f := range []string{rt.Settings, rt.Registry, rt.MachineProfile, rt.UserConfig} {
		if f == "" {
			continue
		}
		// A directory that doesn't exist yet can't be watched.
		if info, err := os.Stat(filepath.Dir(f)); err == nil && info.IsDir() {
			files = append(files, f)
		}
	}

	w, err := watch.New(files...)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	defer w.Stop()

	opts.OnResolve(GetConfig(ctx, opts.Config))

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if opts.OnChange != nil {
				opts.OnChange(change)
			}
			opts.OnResolve(GetConfig(ctx, opts.Config))
		}
	}
}
