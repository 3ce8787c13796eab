package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/lucid/internal/configs"
	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/PolarWolf314/lucid/internal/topology"
)

func TestGetConfigMergePrecedence(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", "")
	s.create(t, "PLAIN")
	s.create(t, "PRJ01")
	s.set(t, "PRJ01", "frameRate", "30")

	tests := []struct {
		name    string
		project string
		user    map[string]any
		want    int64
	}{
		{"UserWins", "PRJ01", map[string]any{"frameRate": int64(60)}, 60},
		{"ProjectWins", "PRJ01", nil, 30},
		{"DefaultsOnly", "PLAIN", nil, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := GetConfig(context.Background(), ConfigOptions{
				Runtime:       s.rt,
				ProjectCode:   tt.project,
				UserOverrides: tt.user,
			})
			if err != nil {
				t.Fatalf("GetConfig failed: %v", err)
			}
			got, ok := cfg.Setting("frameRate")
			if !ok || got != tt.want {
				t.Errorf("frameRate = %v, want %d", got, tt.want)
			}
			if v, _ := cfg.Setting("colorspace"); v != "ACEScg" {
				t.Errorf("colorspace = %v, want the global default", v)
			}
		})
	}
}

func TestGetConfigUserConfigFileLayer(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", "")
	s.create(t, "PRJ01")
	s.set(t, "PRJ01", "frameRate", "30")

	userConfig := &configs.UserConfig{Overrides: map[string]any{"frameRate": 50, "theme": "dark"}}
	if err := configs.SaveUserConfig(s.rt.UserConfig, userConfig); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	cfg, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if v, _ := cfg.Setting("frameRate"); v != int64(50) {
		t.Errorf("frameRate = %v, want the user file's 50", v)
	}

	cfg, err = GetConfig(context.Background(), ConfigOptions{
		Runtime:       s.rt,
		ProjectCode:   "PRJ01",
		UserOverrides: map[string]any{"frameRate": int64(60)},
	})
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if v, _ := cfg.Setting("frameRate"); v != int64(60) {
		t.Errorf("frameRate = %v, want supplied overrides to beat the user file", v)
	}
	if v, _ := cfg.Setting("theme"); v != "dark" {
		t.Errorf("theme = %v, want dark", v)
	}
}

func TestGetConfigPaths(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", "")
	s.create(t, "PRJ01")

	cfg, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "prj01"})
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	if cfg.ProjectsRoot() != s.projectsRoot {
		t.Errorf("ProjectsRoot = %s, want %s", cfg.ProjectsRoot(), s.projectsRoot)
	}
	if cfg.ProjectRoot() != filepath.Join(s.projectsRoot, "PRJ01") {
		t.Errorf("ProjectRoot = %s", cfg.ProjectRoot())
	}
	if cfg.ScratchDir() != filepath.Join(s.dir, "scratch", "alice") {
		t.Errorf("ScratchDir = %s", cfg.ScratchDir())
	}
	if p, ok := cfg.Tool("maya"); !ok || p != filepath.Clean("/opt/autodesk/maya2024/bin/maya") {
		t.Errorf("maya = %q, %v", p, ok)
	}
	if cfg.Topology().Drive() != topology.CommonNetwork {
		t.Errorf("Topology = %s", cfg.Topology())
	}
	if cfg.Project().Code != "PRJ01" {
		t.Errorf("Project = %+v", cfg.Project())
	}
}

func TestGetConfigMachineProfileWins(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", `
[machines.WS-01.tools]
maya = '/local/maya'
`)
	s.create(t, "PRJ01")

	cfg, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if p, _ := cfg.Tool("maya"); p != filepath.Clean("/local/maya") {
		t.Errorf("maya = %q, want the machine profile's path", p)
	}
}

func TestGetConfigErrors(t *testing.T) {
	t.Run("ConfigMissing", func(t *testing.T) {
		s := newStudio(t)
		_, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
		if !errors.Is(err, kerrors.ErrConfigMissing) {
			t.Errorf("expected ErrConfigMissing, got %v", err)
		}
	})

	t.Run("PartialTopology", func(t *testing.T) {
		s := newStudio(t)
		if err := os.WriteFile(s.rt.Settings, []byte("[topology]\ninstall = \"consistent\"\n"), 0644); err != nil {
			t.Fatalf("failed to write settings: %v", err)
		}
		_, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
		if !errors.Is(err, kerrors.ErrConfigMissing) {
			t.Errorf("expected ErrConfigMissing, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newStudio(t)
		s.writeSettings(t, "consistent", "")
		_, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "NOPE"})
		if !errors.Is(err, kerrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ToolNotConfigured", func(t *testing.T) {
		s := newStudio(t)
		s.writeSettings(t, "inconsistent", "")
		s.create(t, "PRJ01")

		_, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
		var notConfigured *kerrors.ToolNotConfiguredError
		if !errors.As(err, &notConfigured) {
			t.Fatalf("expected ToolNotConfiguredError, got %v", err)
		}
		if notConfigured.Key != "maya" {
			t.Errorf("Key = %q, want maya", notConfigured.Key)
		}
	})

	t.Run("DriveUnreachable", func(t *testing.T) {
		s := newStudio(t)
		s.writeSettings(t, "consistent", "")
		s.create(t, "PRJ01")
		if err := os.RemoveAll(s.projectsRoot); err != nil {
			t.Fatalf("failed to remove projects root: %v", err)
		}

		start := time.Now()
		_, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
		if !errors.Is(err, kerrors.ErrDriveUnreachable) {
			t.Errorf("expected ErrDriveUnreachable, got %v", err)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("GetConfig took %v", elapsed)
		}
	})
}

// writeProfiledSettings writes a common-network, inconsistent-install studio
// that lists no tools and keeps every tool path under a machine profile.
func (s *studio) writeProfiledSettings(t *testing.T) {
	t.Helper()
	content := fmt.Sprintf(`
[topology]
drive = "common-network"
install = "inconsistent"

[studio]
projects_root = '%s'
scratch = '%s'

[machines.WS-01.tools]
maya = '/opt/maya/bin/maya'
unreal = '/opt/unreal/Engine/Binaries/Linux/UnrealEditor'

[machines.WS-02.tools]
maya = '/usr/local/maya/bin/maya'
`, s.projectsRoot, filepath.Join(s.dir, "scratch"))
	if err := os.WriteFile(s.rt.Settings, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
}

func TestGetConfigInconsistentToolsFromEveryMachine(t *testing.T) {
	tests := []struct {
		host    string
		wantKey string
	}{
		{"WS-01", ""},
		{"WS-02", "unreal"},
		{"WS-09", "maya"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			s := newStudio(t)
			s.writeProfiledSettings(t)
			s.create(t, "PRJ01")
			s.rt.Host = tt.host

			cfg, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("GetConfig failed: %v", err)
				}
				if len(cfg.Tools()) != 2 {
					t.Errorf("Tools = %v, want maya and unreal", cfg.Tools())
				}
				return
			}

			var notConfigured *kerrors.ToolNotConfiguredError
			if !errors.As(err, &notConfigured) {
				t.Fatalf("expected ToolNotConfiguredError, got cfg=%v err=%v", cfg, err)
			}
			if notConfigured.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", notConfigured.Key, tt.wantKey)
			}
		})
	}
}

func TestGetConfigProbesOnce(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", "")
	s.create(t, "PRJ01")

	prober := &stubProber{}
	if _, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01", Prober: prober}); err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if prober.calls != 1 {
		t.Errorf("probe calls = %d, want 1", prober.calls)
	}
}

func TestGetConfigRereadsSettings(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", "")
	s.create(t, "PRJ01")

	first, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	s.writeSettings(t, "inconsistent", "")
	_, err = GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
	if !errors.Is(err, kerrors.ErrToolNotConfigured) {
		t.Errorf("expected the new topology to apply, got %v", err)
	}

	// An earlier snapshot is unaffected.
	if first.Topology().Install() != topology.Consistent {
		t.Errorf("snapshot changed: %s", first.Topology())
	}
}

func TestResolvedConfigIsImmutable(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", "")
	s.create(t, "PRJ01")
	s.set(t, "PRJ01", "render", "{ samples = 64 }")

	cfg, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	settings := cfg.Settings()
	settings["frameRate"] = int64(1)
	settings["render"].(map[string]any)["samples"] = int64(1)
	tools := cfg.Tools()
	tools["maya"] = "/elsewhere"
	project := cfg.Project()
	project.Overrides["render"] = nil

	if v, _ := cfg.Setting("frameRate"); v != int64(24) {
		t.Errorf("frameRate changed to %v", v)
	}
	render, _ := cfg.Setting("render")
	if render.(map[string]any)["samples"] != int64(64) {
		t.Errorf("render changed to %v", render)
	}
	if p, _ := cfg.Tool("maya"); p == "/elsewhere" {
		t.Error("tools changed through a returned map")
	}
	if cfg.Project().Overrides["render"] == nil {
		t.Error("project overrides changed through a returned record")
	}
}

func TestEnviron(t *testing.T) {
	s := newStudio(t)
	s.writeSettings(t, "consistent", `
[developer]
debug = true
`)
	s.create(t, "PRJ01")

	cfg, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	env := cfg.Environ()
	want := map[string]string{
		EnvProject:             "PRJ01",
		EnvProjectRoot:         filepath.Join(s.projectsRoot, "PRJ01"),
		EnvScratch:             filepath.Join(s.dir, "scratch", "alice"),
		EnvToolPrefix + "MAYA": filepath.Clean("/opt/autodesk/maya2024/bin/maya"),
		EnvDebug:               "1",
	}
	got := make(map[string]string)
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		got[k] = v
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got[EnvDev]; ok {
		t.Errorf("%s should be absent when dev is off", EnvDev)
	}
	if !cfg.Developer().Debug {
		t.Error("expected Developer().Debug")
	}
}

func TestEnvName(t *testing.T) {
	tests := map[string]string{
		"maya":               "MAYA",
		"substance-painter":  "SUBSTANCE_PAINTER",
		"substance_designer": "SUBSTANCE_DESIGNER",
		"UE5.3":              "UE5_3",
	}
	for in, want := range tests {
		if got := envName(in); got != want {
			t.Errorf("envName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetConfigRejectsCollidingToolNames(t *testing.T) {
	s := newStudio(t)
	content := fmt.Sprintf(`
[topology]
drive = "common-network"
install = "consistent"

[studio]
projects_root = '%s'
scratch = '%s'

[studio.paths]
substance-painter = '/opt/adobe/painter'
substance_painter = '/opt/adobe/painter-beta'
`, s.projectsRoot, filepath.Join(s.dir, "scratch"))
	if err := os.WriteFile(s.rt.Settings, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	s.create(t, "PRJ01")

	_, err := GetConfig(context.Background(), ConfigOptions{Runtime: s.rt, ProjectCode: "PRJ01"})
	if !errors.Is(err, kerrors.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	if !strings.Contains(err.Error(), "LUCID_TOOL_SUBSTANCE_PAINTER") {
		t.Errorf("error should name the shared variable: %v", err)
	}
}

func TestCheckToolEnvNames(t *testing.T) {
	tests := []struct {
		name    string
		tools   map[string]string
		wantErr bool
	}{
		{"distinct", map[string]string{"maya": "/a", "substance_painter": "/b", "unreal": "/c"}, false},
		{"hyphen and underscore", map[string]string{"substance-painter": "/a", "substance_painter": "/b"}, true},
		{"case only", map[string]string{"Maya": "/a", "maya": "/b"}, true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkToolEnvNames(tt.tools)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkToolEnvNames() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
