package configs

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/PolarWolf314/lucid/internal/resolver"
	"github.com/PolarWolf314/lucid/internal/topology"
	"github.com/PolarWolf314/lucid/internal/utils"
)

// Settings is the studio settings document. The settings editor owns it;
// the core only reads it.
type Settings struct {
	Topology  TopologySection           `toml:"topology"`
	Studio    StudioSection             `toml:"studio"`
	Defaults  map[string]any            `toml:"defaults"`
	Developer DeveloperSection          `toml:"developer"`
	Machines  map[string]MachineSection `toml:"machines"`
}

type TopologySection struct {
	Drive   string `toml:"drive"`
	Install string `toml:"install"`
}

type StudioSection struct {
	ProjectsRoot string            `toml:"projects_root"`
	LocalMount   string            `toml:"local_mount"`
	Scratch      string            `toml:"scratch"`
	Tools        []string          `toml:"tools"`
	ProbeTimeout string            `toml:"probe_timeout"`
	Paths        map[string]string `toml:"paths"`
}

type DeveloperSection struct {
	Debug bool `toml:"debug"`
	Dev   bool `toml:"dev"`
}

// MachineSection is one [machines.<host>] table.
type MachineSection struct {
	Mount        string            `toml:"mount"`
	ProjectsRoot string            `toml:"projects_root"`
	Scratch      string            `toml:"scratch"`
	Tools        map[string]string `toml:"tools"`
}

// LoadSettings reads the settings document. A missing file is
// ErrConfigMissing: a studio that never ran setup has no topology.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, fmt.Errorf("no settings path: %w", kerrors.ErrConfigMissing)
	}

	settings := &Settings{}
	if err := LoadTOML(path, settings); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("settings %s: %w", path, kerrors.ErrConfigMissing)
		}
		return nil, fmt.Errorf("settings %s: %w: %v", path, kerrors.ErrInvalidSettings, err)
	}

	if settings.Defaults == nil {
		settings.Defaults = make(map[string]any)
	}
	return settings, nil
}

// LoadTopology reads only the topology from the settings document.
func LoadTopology(path string) (topology.Descriptor, error) {
	settings, err := LoadSettings(path)
	if err != nil {
		return topology.Descriptor{}, err
	}
	return settings.TopologyDescriptor()
}

func (s *Settings) TopologyDescriptor() (topology.Descriptor, error) {
	return topology.New(s.Topology.Drive, s.Topology.Install)
}

// PathTable returns the studio-wide path set.
func (s *Settings) PathTable() resolver.PathTable {
	tools := make(map[string]string, len(s.Studio.Paths))
	for k, v := range s.Studio.Paths {
		tools[k] = v
	}
	known := make([]string, len(s.Studio.Tools))
	copy(known, s.Studio.Tools)
	if len(known) == 0 {
		known = s.declaredTools()
	}

	return resolver.PathTable{
		ProjectsRoot: s.Studio.ProjectsRoot,
		LocalMount:   s.Studio.LocalMount,
		Scratch:      s.Studio.Scratch,
		Tools:        tools,
		KnownTools:   known,
	}
}

// declaredTools is every tool the studio names anywhere: the shared table
// and every machine's tools. A machine missing one of them is unconfigured,
// not a machine without that tool.
func (s *Settings) declaredTools() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(tools map[string]string) {
		for name := range tools {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	add(s.Studio.Paths)
	for _, m := range s.Machines {
		add(m.Tools)
	}
	sort.Strings(names)
	return names
}

// ProbeTimeout parses studio.probe_timeout, falling back to the resolver default.
func (s *Settings) ProbeTimeout() (time.Duration, error) {
	if s.Studio.ProbeTimeout == "" {
		return resolver.DefaultProbeTimeout, nil
	}
	d, err := time.ParseDuration(s.Studio.ProbeTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("studio.probe_timeout %q: %w", s.Studio.ProbeTimeout, kerrors.ErrInvalidSettings)
	}
	return d, nil
}

// Profile returns the [machines] entry for host, or nil. Host names compare
// case-insensitively after normalization since Windows hostnames do.
func (s *Settings) Profile(host string) *resolver.MachineProfile {
	want := utils.NormalizeHost(host)
	if want == "" {
		return nil
	}
	for name, m := range s.Machines {
		if !strings.EqualFold(utils.NormalizeHost(name), want) {
			continue
		}
		tools := make(map[string]string, len(m.Tools))
		for k, v := range m.Tools {
			tools[k] = v
		}
		return &resolver.MachineProfile{
			Host:         name,
			Mount:        m.Mount,
			ProjectsRoot: m.ProjectsRoot,
			Scratch:      m.Scratch,
			Tools:        tools,
		}
	}
	return nil
}
