package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode and stdout is a terminal. Returns the spinner and
// a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !Logger.Verbose && !Logger.Debug
	animate := quiet && utils.IsTerminal()
	if animate {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatError renders a workflow error with a hint at the fix.
func formatError(err error) string {
	var notConfigured *kerrors.ToolNotConfiguredError
	var unreachable *kerrors.DriveUnreachableError

	switch {
	case errors.Is(err, kerrors.ErrConfigMissing):
		return ui.Error.Sprint("✗") + " The studio topology has not been configured\n" +
			ui.Info.Sprint("→") + " Run the settings editor, or point " + ui.Code.Sprint("--settings") +
			" at the studio's " + ui.Path.Sprint("settings.toml") + " " + ui.Muted.Sprint(rt.Settings)

	case errors.Is(err, kerrors.ErrInvalidTopology), errors.Is(err, kerrors.ErrInvalidSettings):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Fix " + ui.Path.Sprint(rt.Settings) + " with the settings editor"

	case errors.As(err, &notConfigured):
		host := notConfigured.Host
		if host == "" {
			host = rt.Host
		}
		return ui.Error.Sprint("✗") + " " + ui.Key.Sprint(notConfigured.Key) + " has no configured path on " + ui.Highlight.Sprint(host) + "\n" +
			ui.Info.Sprint("→") + " Add it to this machine's profile in the settings editor"

	case errors.As(err, &unreachable):
		return ui.Error.Sprint("✗") + " Drive unreachable: " + ui.Path.Sprint(unreachable.Path) + "\n" +
			ui.Info.Sprint("→") + " Reconnect the drive and try again"

	case errors.Is(err, kerrors.ErrDuplicateCode):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Project codes are never reused, even after deletion. Choose a different code"

	case errors.Is(err, kerrors.ErrNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lucid project list") + " to see registered projects"

	case errors.Is(err, kerrors.ErrInvalidProjectCode):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Use up to 32 letters, digits, hyphens or underscores, starting with a letter or digit"

	case errors.Is(err, kerrors.ErrRegistryLocked):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Another machine is writing the registry. Try again shortly"

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}
