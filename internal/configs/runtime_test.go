package configs

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRuntimeDefaults(t *testing.T) {
	t.Setenv("LUCID_SETTINGS", "")
	t.Setenv("LUCID_HOST", "")
	t.Setenv("LUCID_USER", "")
	t.Setenv("LUCID_REGISTRY", "")

	rt, err := LoadRuntime(NewViper())
	if err != nil {
		t.Fatalf("LoadRuntime failed: %v", err)
	}

	if rt.Settings == "" || rt.Registry == "" || rt.MachineProfile == "" || rt.UserConfig == "" {
		t.Errorf("expected every path to be filled, got %+v", rt)
	}
	if filepath.Dir(rt.Registry) != filepath.Dir(rt.Settings) {
		t.Errorf("registry %q should default next to settings %q", rt.Registry, rt.Settings)
	}
	if rt.Host == "" || rt.User == "" {
		t.Errorf("expected host and user to be detected, got %+v", rt)
	}
	if rt.LockTimeout != 10*time.Second {
		t.Errorf("LockTimeout = %v, want 10s", rt.LockTimeout)
	}
}

func TestLoadRuntimeEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "studio", "settings.toml")

	t.Setenv("LUCID_SETTINGS", settings)
	t.Setenv("LUCID_HOST", "ws-01.studio.local")
	t.Setenv("LUCID_USER", "alice")
	t.Setenv("LUCID_LOCK_TIMEOUT", "3s")
	t.Setenv("LUCID_REGISTRY", "")

	rt, err := LoadRuntime(NewViper())
	if err != nil {
		t.Fatalf("LoadRuntime failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Settings", rt.Settings, settings},
		{"Registry", rt.Registry, filepath.Join(dir, "studio", RegistryFileName)},
		{"Host", rt.Host, "ws-01"},
		{"User", rt.User, "alice"},
		{"LockTimeout", rt.LockTimeout, 3 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}
