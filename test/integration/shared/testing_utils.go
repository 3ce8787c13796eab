// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for laying out a studio on disk,
// switching the calling machine, and running the CLI end to end.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/lucid/cmd"
	"github.com/spf13/cobra"
)

// Studio is a studio laid out under t.TempDir(). Every machine shares the
// settings and registry documents, as they would on a studio server.
type Studio struct {
	Dir      string
	Settings string
	Registry string
}

// SetupStudio writes settings and points the LUCID_* environment at them.
func SetupStudio(t *testing.T, settings string) *Studio {
	t.Helper()
	dir := t.TempDir()
	s := &Studio{
		Dir:      dir,
		Settings: filepath.Join(dir, "server", "settings.toml"),
		Registry: filepath.Join(dir, "server", "registry.toml"),
	}
	if err := os.MkdirAll(filepath.Dir(s.Settings), 0755); err != nil {
		t.Fatalf("Failed to create server directory: %v", err)
	}
	if err := os.WriteFile(s.Settings, []byte(settings), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	t.Setenv("LUCID_SETTINGS", s.Settings)
	t.Setenv("LUCID_REGISTRY", s.Registry)
	t.Setenv("LUCID_LOCK_TIMEOUT", "5s")
	t.Setenv("NO_COLOR", "1")
	s.UseMachine(t, "WS-01", "testuser")

	t.Cleanup(resetState)
	return s
}

// UseMachine makes following CLI runs act as host and user. Each machine
// keeps its own local profile and user config under Dir/home/<host>.
func (s *Studio) UseMachine(t *testing.T, host, user string) {
	t.Helper()
	home := s.Home(host)
	if err := os.MkdirAll(home, 0755); err != nil {
		t.Fatalf("Failed to create home for %s: %v", host, err)
	}
	t.Setenv("LUCID_HOST", host)
	t.Setenv("LUCID_USER", user)
	t.Setenv("LUCID_MACHINE_PROFILE", filepath.Join(home, "machine.toml"))
	t.Setenv("LUCID_USER_CONFIG", filepath.Join(home, "config.toml"))
}

// Home is the machine-local config directory for host.
func (s *Studio) Home(host string) string {
	return filepath.Join(s.Dir, "home", host)
}

// MkdirAll creates a directory below Dir and returns its path.
func (s *Studio) MkdirAll(t *testing.T, rel string) string {
	t.Helper()
	p := filepath.Join(s.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(p, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", p, err)
	}
	return p
}

func resetState() {
	cmd.ResetProjectState()
	cmd.ResetConfigState()
	cmd.ResetToolState()
	cmd.ResetTopologyState()
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI creates a complete CLI instance for testing with the given arguments.
func CreateTestCLI(args ...string) *cobra.Command {
	resetState()

	rootCmd := &cobra.Command{
		Use:           "lucid",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(cmd.GetProjectCmd())
	rootCmd.AddCommand(cmd.GetConfigCmd())
	rootCmd.AddCommand(cmd.GetToolCmd())
	rootCmd.AddCommand(cmd.GetTopologyCmd())

	rootCmd.SetArgs(args)
	return rootCmd
}

// Run runs the CLI and fails the test on error.
func Run(t *testing.T, args ...string) string {
	t.Helper()
	output, err := CaptureOutput(func() error {
		return CreateTestCLI(args...).Execute()
	})
	if err != nil {
		t.Fatalf("lucid %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}

// RunErr runs the CLI and returns its error.
func RunErr(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return CaptureOutput(func() error {
		return CreateTestCLI(args...).Execute()
	})
}
