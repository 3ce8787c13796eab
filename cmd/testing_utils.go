// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up a throwaway studio,
// capturing output, and running commands through a fresh root command.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// testStudio is a studio laid out under t.TempDir().
type testStudio struct {
	Dir          string
	ProjectsRoot string
	Settings     string
	Registry     string
}

// setupTestStudio writes a common-network settings document and points the
// LUCID_* environment at it. The host is WS-01 and the user is testuser.
func setupTestStudio(t *testing.T, install string) *testStudio {
	t.Helper()
	dir := t.TempDir()
	s := &testStudio{
		Dir:          dir,
		ProjectsRoot: filepath.Join(dir, "projects"),
		Settings:     filepath.Join(dir, "studio", "settings.toml"),
		Registry:     filepath.Join(dir, "studio", "registry.toml"),
	}
	for _, d := range []string{s.ProjectsRoot, filepath.Dir(s.Settings), filepath.Join(dir, "home")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", d, err)
		}
	}

	content := fmt.Sprintf(`
[topology]
drive = "common-network"
install = %q

[studio]
projects_root = '%s'
scratch = '%s'
tools = ["maya"]
probe_timeout = "1s"

[studio.paths]
maya = '/opt/autodesk/maya2024/bin/maya'

[defaults]
frameRate = 24
colorspace = "ACEScg"
`, install, s.ProjectsRoot, filepath.Join(dir, "scratch"))
	if err := os.WriteFile(s.Settings, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	t.Setenv("LUCID_SETTINGS", s.Settings)
	t.Setenv("LUCID_REGISTRY", s.Registry)
	t.Setenv("LUCID_HOST", "WS-01")
	t.Setenv("LUCID_USER", "testuser")
	t.Setenv("LUCID_MACHINE_PROFILE", filepath.Join(dir, "home", "machine.toml"))
	t.Setenv("LUCID_USER_CONFIG", filepath.Join(dir, "home", "config.toml"))
	t.Setenv("LUCID_LOCK_TIMEOUT", "5s")
	t.Setenv("NO_COLOR", "1")

	t.Cleanup(resetAllState)
	return s
}

func resetAllState() {
	ResetProjectState()
	ResetConfigState()
	ResetToolState()
	ResetTopologyState()
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
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

// createTestCLI creates a complete CLI instance for testing with the given arguments.
func createTestCLI(args ...string) *cobra.Command {
	resetAllState()

	rootCmd := &cobra.Command{
		Use:           "lucid",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(ProjectCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.AddCommand(ToolCmd)
	rootCmd.AddCommand(TopologyCmd)

	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI runs the CLI with args and returns its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}

// mustRunCLI is runCLI failing the test on error.
func mustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("lucid %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}
