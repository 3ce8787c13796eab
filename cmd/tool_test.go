package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
)

func TestToolPathCommand(t *testing.T) {
	setupTestStudio(t, "consistent")

	output := mustRunCLI(t, "tool", "path", "maya")
	if strings.TrimSpace(output) != "/opt/autodesk/maya2024/bin/maya" {
		t.Errorf("Expected only the path, got: %q", output)
	}

	output, err := runCLI(t, "tool", "path", "houdini")
	var notConfigured *kerrors.ToolNotConfiguredError
	if !errors.As(err, &notConfigured) {
		t.Fatalf("Expected ToolNotConfiguredError, got %v", err)
	}
	if notConfigured.Key != "houdini" {
		t.Errorf("Expected key houdini, got %q", notConfigured.Key)
	}
	if !strings.Contains(output, "WS-01") {
		t.Errorf("Expected host in message, got: %s", output)
	}
}

func TestToolPathInconsistentInstalls(t *testing.T) {
	s := setupTestStudio(t, "inconsistent")
	mustRunCLI(t, "project", "create", "PRJ01")

	// Without a machine profile no tool can resolve.
	_, err := runCLI(t, "tool", "path", "maya", "--project", "PRJ01")
	if !errors.Is(err, kerrors.ErrToolNotConfigured) {
		t.Fatalf("Expected ErrToolNotConfigured, got %v", err)
	}

	profile := `
host = "WS-01"

[machine.tools]
maya = 'D:\Autodesk\Maya2024\bin\maya.exe'
`
	if err := os.WriteFile(filepath.Join(s.Dir, "home", "machine.toml"), []byte(profile), 0644); err != nil {
		t.Fatalf("Failed to write machine profile: %v", err)
	}

	output := mustRunCLI(t, "tool", "path", "maya", "--project", "PRJ01")
	if strings.TrimSpace(output) != `D:\Autodesk\Maya2024\bin\maya.exe` {
		t.Errorf("Expected the machine's path, got: %q", output)
	}
}

func TestTopologyShowCommand(t *testing.T) {
	s := setupTestStudio(t, "inconsistent")

	output := mustRunCLI(t, "topology", "show")
	for _, want := range []string{"common-network", "inconsistent", s.ProjectsRoot, "maya", "No machine profile", "WS-01"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	t.Setenv("LUCID_SETTINGS", filepath.Join(s.Dir, "missing.toml"))
	_, err := runCLI(t, "topology", "show")
	if !errors.Is(err, kerrors.ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing, got %v", err)
	}
}
