package topology

import (
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		drive       string
		install     string
		wantDrive   DriveMode
		wantInstall InstallMode
		wantErr     error
	}{
		{"CommonConsistent", "common-network", "consistent", CommonNetwork, Consistent, nil},
		{"CommonInconsistent", "common-network", "inconsistent", CommonNetwork, Inconsistent, nil},
		{"LocalConsistent", "local-networks", "consistent", LocalNetworks, Consistent, nil},
		{"LocalInconsistent", "local-networks", "inconsistent", LocalNetworks, Inconsistent, nil},
		{"CaseAndSpace", " Common-Network ", "CONSISTENT", CommonNetwork, Consistent, nil},
		{"MissingDrive", "", "consistent", "", "", kerrors.ErrConfigMissing},
		{"MissingInstall", "local-networks", "", "", "", kerrors.ErrConfigMissing},
		{"UnknownDrive", "cloud", "consistent", "", "", kerrors.ErrInvalidTopology},
		{"UnknownInstall", "common-network", "mixed", "", "", kerrors.ErrInvalidTopology},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.drive, tt.install)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New(%q, %q) error = %v, want %v", tt.drive, tt.install, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q, %q) unexpected error: %v", tt.drive, tt.install, err)
			}
			if d.Drive() != tt.wantDrive || d.Install() != tt.wantInstall {
				t.Errorf("got %s/%s, want %s/%s", d.Drive(), d.Install(), tt.wantDrive, tt.wantInstall)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestZeroDescriptorIsMissing(t *testing.T) {
	var d Descriptor
	if !errors.Is(d.Validate(), kerrors.ErrConfigMissing) {
		t.Errorf("zero Descriptor should report ErrConfigMissing, got %v", d.Validate())
	}
	if d.String() != "unconfigured" {
		t.Errorf("String() = %q, want unconfigured", d.String())
	}
}

func TestPredicates(t *testing.T) {
	d, err := New("local-networks", "consistent")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if d.SharedDrive() {
		t.Error("local-networks should not report a shared drive")
	}
	if !d.UniformInstalls() {
		t.Error("consistent should report uniform installs")
	}
	if d.String() != "local-networks/consistent" {
		t.Errorf("String() = %q", d.String())
	}
}
