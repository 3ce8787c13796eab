package topology

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
)

// DriveMode describes how project storage is shared across the team.
type DriveMode string

const (
	// CommonNetwork means every machine mounts one shared network drive.
	CommonNetwork DriveMode = "common-network"
	// LocalNetworks means each machine keeps projects on its own drive.
	LocalNetworks DriveMode = "local-networks"
)

// InstallMode describes whether authoring tools live at the same path everywhere.
type InstallMode string

const (
	Consistent   InstallMode = "consistent"
	Inconsistent InstallMode = "inconsistent"
)

// Descriptor is the studio's deployment topology. It has no setters; a
// topology change is a new value loaded from the settings store.
type Descriptor struct {
	drive   DriveMode
	install InstallMode
}

// New parses both modes. An empty field yields ErrConfigMissing and an
// unknown value yields ErrInvalidTopology; no field is ever defaulted.
func New(drive, install string) (Descriptor, error) {
	d, err := parseDrive(drive)
	if err != nil {
		return Descriptor{}, err
	}
	i, err := parseInstall(install)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{drive: d, install: i}, nil
}

func parseDrive(s string) (DriveMode, error) {
	switch DriveMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", fmt.Errorf("drive mode: %w", kerrors.ErrConfigMissing)
	case CommonNetwork:
		return CommonNetwork, nil
	case LocalNetworks:
		return LocalNetworks, nil
	}
	return "", fmt.Errorf("drive mode %q: %w", s, kerrors.ErrInvalidTopology)
}

func parseInstall(s string) (InstallMode, error) {
	switch InstallMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", fmt.Errorf("install mode: %w", kerrors.ErrConfigMissing)
	case Consistent:
		return Consistent, nil
	case Inconsistent:
		return Inconsistent, nil
	}
	return "", fmt.Errorf("install mode %q: %w", s, kerrors.ErrInvalidTopology)
}

func (d Descriptor) Drive() DriveMode     { return d.drive }
func (d Descriptor) Install() InstallMode { return d.install }

// Validate reports ErrConfigMissing for the zero Descriptor, which is what
// callers hold when they skipped loading.
func (d Descriptor) Validate() error {
	if d.drive == "" || d.install == "" {
		return kerrors.ErrConfigMissing
	}
	return nil
}

// SharedDrive reports whether all machines see the same project drive.
func (d Descriptor) SharedDrive() bool { return d.drive == CommonNetwork }

// UniformInstalls reports whether tool paths are identical on all machines.
func (d Descriptor) UniformInstalls() bool { return d.install == Consistent }

func (d Descriptor) String() string {
	if d.Validate() != nil {
		return "unconfigured"
	}
	return string(d.drive) + "/" + string(d.install)
}
