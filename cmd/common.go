package cmd

import (
	"errors"
	"time"

	"github.com/PolarWolf314/lucid/internal/configs"
	logger "github.com/PolarWolf314/lucid/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// rt is loaded once per command invocation in PersistentPreRunE.
	rt configs.Runtime

	settingsFlag    string
	registryFlag    string
	hostFlag        string
	userFlag        string
	lockTimeoutFlag time.Duration
)

// addPersistentFlags registers the flags every command group shares.
func addPersistentFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	f.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	f.StringVar(&settingsFlag, "settings", "", "studio settings document (env LUCID_SETTINGS)")
	f.StringVar(&registryFlag, "registry", "", "project registry document (env LUCID_REGISTRY)")
	f.StringVar(&hostFlag, "host", "", "resolve as this host (env LUCID_HOST)")
	f.StringVar(&userFlag, "user", "", "resolve as this user (env LUCID_USER)")
	f.DurationVar(&lockTimeoutFlag, "lock-timeout", 0, "how long to wait for the registry lock (env LUCID_LOCK_TIMEOUT)")

	c.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := loadRuntime(cmd.Flags())
		if err != nil {
			return err
		}
		rt = loaded
		Logger = logger.Logger{
			Verbose: rt.Verbose,
			Debug:   rt.Debug || studioDebug(rt.Settings),
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), rt.Verbose, rt.Debug)
		Logger.Debugf("Settings: %s, registry: %s, host: %s, user: %s", rt.Settings, rt.Registry, rt.Host, rt.User)
		return nil
	}
}

// loadRuntime layers bound flags over LUCID_* environment variables.
func loadRuntime(flags *pflag.FlagSet) (configs.Runtime, error) {
	v := configs.NewViper()
	for key, name := range map[string]string{
		"verbose":      "verbose",
		"debug":        "debug",
		"settings":     "settings",
		"registry":     "registry",
		"host":         "host",
		"user":         "user",
		"lock_timeout": "lock-timeout",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return configs.Runtime{}, err
			}
		}
	}
	return configs.LoadRuntime(v)
}

// studioDebug reports the settings [developer] debug flag. Unreadable
// settings are left for the command itself to report.
func studioDebug(path string) bool {
	settings, err := configs.LoadSettings(path)
	return err == nil && settings.Developer.Debug
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was already printed by the command.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// resetCommonState resets shared flags and runtime for testing.
func resetCommonState() {
	verbose = false
	debug = false
	settingsFlag = ""
	registryFlag = ""
	hostFlag = ""
	userFlag = ""
	lockTimeoutFlag = 0
	rt = configs.Runtime{}
	Logger = logger.Logger{}
}

// resetCobraFlagState clears Changed on every flag so one test's flags
// don't leak into the next.
func resetCobraFlagState(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
		c.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
		resetCobraFlagState(c.Commands()...)
	}
}
