package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PolarWolf314/lucid/internal/configs"
)

// studio is a throwaway studio layout under t.TempDir().
type studio struct {
	dir          string
	projectsRoot string
	rt           configs.Runtime
}

func newStudio(t *testing.T) *studio {
	t.Helper()
	dir := t.TempDir()
	s := &studio{
		dir:          dir,
		projectsRoot: filepath.Join(dir, "projects"),
		rt: configs.Runtime{
			Settings:       filepath.Join(dir, "studio", "settings.toml"),
			Registry:       filepath.Join(dir, "studio", "registry.toml"),
			Host:           "WS-01",
			User:           "alice",
			MachineProfile: filepath.Join(dir, "home", "machine.toml"),
			UserConfig:     filepath.Join(dir, "home", "config.toml"),
			LockTimeout:    5 * time.Second,
		},
	}
	for _, d := range []string{s.projectsRoot, filepath.Dir(s.rt.Settings), filepath.Dir(s.rt.MachineProfile)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", d, err)
		}
	}
	return s
}

// writeSettings writes a common-network settings document. extra is
// appended verbatim.
func (s *studio) writeSettings(t *testing.T, install string, extra string) {
	t.Helper()
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
%s`, install, s.projectsRoot, filepath.Join(s.dir, "scratch"), extra)

	if err := os.WriteFile(s.rt.Settings, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
}

func (s *studio) create(t *testing.T, code string) {
	t.Helper()
	if _, err := CreateProject(context.Background(), CreateProjectOptions{Runtime: s.rt, Code: code, Name: code}); err != nil {
		t.Fatalf("CreateProject(%s) failed: %v", code, err)
	}
}

func (s *studio) set(t *testing.T, code, key, value string) {
	t.Helper()
	if _, err := SetOverride(context.Background(), SetOverrideOptions{Runtime: s.rt, Code: code, Key: key, Value: value}); err != nil {
		t.Fatalf("SetOverride failed: %v", err)
	}
}

// stubProber answers every probe with err.
type stubProber struct {
	err   error
	calls int
}

func (p *stubProber) Probe(ctx context.Context, path string) error {
	p.calls++
	return p.err
}
