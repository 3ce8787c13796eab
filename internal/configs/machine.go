package configs

import (
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/PolarWolf314/lucid/internal/resolver"
)

// machineFile is the machine-local profile written by the settings editor
// when install paths are inconsistent.
type machineFile struct {
	Host    string         `toml:"host"`
	Machine MachineSection `toml:"machine"`
}

// LoadMachineProfile reads the machine-local profile. A missing file
// returns nil without error; whether a profile is required is the
// resolver's call, not the loader's.
func LoadMachineProfile(path string) (*resolver.MachineProfile, error) {
	if path == "" {
		return nil, nil
	}

	var f machineFile
	if err := LoadTOML(path, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("machine profile %s: %w: %v", path, kerrors.ErrInvalidSettings, err)
	}

	tools := make(map[string]string, len(f.Machine.Tools))
	for k, v := range f.Machine.Tools {
		tools[k] = v
	}
	return &resolver.MachineProfile{
		Host:         f.Host,
		Mount:        f.Machine.Mount,
		ProjectsRoot: f.Machine.ProjectsRoot,
		Scratch:      f.Machine.Scratch,
		Tools:        tools,
	}, nil
}

// ProfileFor combines the studio [machines] entry for host with the
// machine-local file. The local file wins per key.
func ProfileFor(settings *Settings, host, localPath string) (*resolver.MachineProfile, error) {
	local, err := LoadMachineProfile(localPath)
	if err != nil {
		return nil, err
	}
	studio := settings.Profile(host)

	profile := studio.Merge(local)
	if profile != nil && profile.Host == "" {
		profile.Host = host
	}
	return profile, nil
}
