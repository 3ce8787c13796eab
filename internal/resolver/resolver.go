package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/PolarWolf314/lucid/internal/topology"
)

// Options identifies the caller. Host and User only shape error messages
// and the per-user scratch directory.
type Options struct {
	Host   string
	User   string
	Prober Prober
}

// Resolver computes absolute paths for one machine. It lives for a single
// resolution and memoizes nothing beyond its drive probe.
type Resolver struct {
	topo    topology.Descriptor
	table   PathTable
	profile *MachineProfile
	opts    Options

	driveOnce sync.Once
	driveErr  error
}

// New refuses a zero or partial topology with ErrConfigMissing.
func New(topo topology.Descriptor, table PathTable, profile *MachineProfile, opts Options) (*Resolver, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	if opts.Prober == nil {
		opts.Prober = StatProber{}
	}
	return &Resolver{topo: topo, table: table, profile: profile, opts: opts}, nil
}

// Resolve returns the executable path of toolName for the calling machine.
func Resolve(ctx context.Context, topo topology.Descriptor, table PathTable, profile *MachineProfile, toolName string) (string, error) {
	r, err := New(topo, table, profile, Options{})
	if err != nil {
		return "", err
	}
	return r.Tool(ctx, toolName)
}

func (r *Resolver) notConfigured(key string) error {
	host := r.opts.Host
	if r.profile != nil && r.profile.Host != "" {
		host = r.profile.Host
	}
	return &kerrors.ToolNotConfiguredError{Key: key, Host: host}
}

// KnownTools returns the tool names Tools will resolve.
func (r *Resolver) KnownTools() []string {
	return knownTools(r.table, r.profile)
}

// Tool resolves one tool executable. Configuration gaps are reported before
// the drive check so an unconfigured machine is never mistaken for a
// disconnected one. Only local-networks studios check the drive here, since
// their tools need the local mount; on a common network drive tools are
// local installs and ProjectsRoot checks the share.
func (r *Resolver) Tool(ctx context.Context, name string) (string, error) {
	var path string
	if r.topo.UniformInstalls() {
		if p, ok := r.profile.tool(name); ok {
			path = p
		} else if p := r.table.Tools[name]; p != "" {
			path = p
		} else {
			return "", r.notConfigured(name)
		}
	} else {
		if !r.topo.SharedDrive() {
			if err := r.validateProfile(name); err != nil {
				return "", err
			}
		}
		p, ok := r.profile.tool(name)
		if !ok {
			return "", r.notConfigured(name)
		}
		path = p
	}

	if !r.topo.SharedDrive() {
		if err := r.checkDrive(ctx); err != nil {
			return "", err
		}
	}
	return filepath.Clean(path), nil
}

// Tools resolves every known tool. The first failure aborts.
func (r *Resolver) Tools(ctx context.Context) (map[string]string, error) {
	names := r.KnownTools()
	if !r.topo.UniformInstalls() && !r.topo.SharedDrive() {
		if err := r.validateProfile(names...); err != nil {
			return nil, err
		}
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		p, err := r.Tool(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = p
	}
	return out, nil
}

// ProjectsRoot resolves the directory holding every project folder.
func (r *Resolver) ProjectsRoot(ctx context.Context) (string, error) {
	root, err := r.projectsRoot()
	if err != nil {
		return "", err
	}
	if err := r.checkDrive(ctx); err != nil {
		return "", err
	}
	return root, nil
}

// ProjectRoot joins a record's root-relative storage path onto ProjectsRoot.
func (r *Resolver) ProjectRoot(ctx context.Context, storagePath string) (string, error) {
	rel := filepath.FromSlash(storagePath)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("project storage path %q escapes the projects root", storagePath)
	}
	root, err := r.ProjectsRoot(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// Scratch resolves the calling user's scratch directory. It is never probed
// or created; tools create it on first write.
func (r *Resolver) Scratch() (string, error) {
	var base string
	switch {
	case !r.topo.UniformInstalls() && !r.topo.SharedDrive():
		if err := r.validateProfile(); err != nil {
			return "", err
		}
		base = r.profile.Scratch
	case r.profile != nil && r.profile.Scratch != "":
		base = r.profile.Scratch
	default:
		base = r.table.Scratch
	}
	if base == "" {
		return "", r.notConfigured(KeyScratch)
	}
	if r.opts.User != "" {
		base = filepath.Join(base, r.opts.User)
	}
	return filepath.Clean(base), nil
}

func (r *Resolver) projectsRoot() (string, error) {
	switch {
	case r.topo.SharedDrive():
		if r.profile != nil && r.profile.ProjectsRoot != "" {
			return filepath.Clean(r.profile.ProjectsRoot), nil
		}
		if r.table.ProjectsRoot == "" {
			return "", r.notConfigured(KeyProjectsRoot)
		}
		return filepath.Clean(r.table.ProjectsRoot), nil

	case r.topo.UniformInstalls():
		mount, err := r.mount()
		if err != nil {
			return "", err
		}
		if r.profile != nil && r.profile.ProjectsRoot != "" {
			return filepath.Clean(r.profile.ProjectsRoot), nil
		}
		if r.table.ProjectsRoot == "" {
			return "", r.notConfigured(KeyProjectsRoot)
		}
		return filepath.Join(mount, relativeLayout(r.table.ProjectsRoot)), nil

	default:
		if err := r.validateProfile(); err != nil {
			return "", err
		}
		return filepath.Clean(r.profile.ProjectsRoot), nil
	}
}

func (r *Resolver) mount() (string, error) {
	if r.profile != nil && r.profile.Mount != "" {
		return r.profile.Mount, nil
	}
	if r.table.LocalMount != "" {
		return r.table.LocalMount, nil
	}
	return "", r.notConfigured(KeyMount)
}

// probeTarget is the directory whose absence means the drive is gone.
func (r *Resolver) probeTarget() (string, error) {
	if !r.topo.SharedDrive() && r.topo.UniformInstalls() {
		return r.mount()
	}
	return r.projectsRoot()
}

func (r *Resolver) checkDrive(ctx context.Context) error {
	r.driveOnce.Do(func() {
		target, err := r.probeTarget()
		if err != nil {
			r.driveErr = err
			return
		}
		r.driveErr = r.opts.Prober.Probe(ctx, target)
	})
	return r.driveErr
}

// validateProfile is the local-networks/inconsistent gate: every required
// key must exist in the machine profile before any path is returned. Extra
// names are checked alongside the known tools.
func (r *Resolver) validateProfile(extra ...string) error {
	if r.profile == nil {
		return r.notConfigured(KeyProjectsRoot)
	}
	if r.profile.ProjectsRoot == "" {
		return r.notConfigured(KeyProjectsRoot)
	}
	if r.profile.Scratch == "" {
		return r.notConfigured(KeyScratch)
	}

	required := append(r.KnownTools(), extra...)
	sort.Strings(required)
	for _, name := range required {
		if _, ok := r.profile.tool(name); !ok {
			return r.notConfigured(name)
		}
	}
	return nil
}

// relativeLayout strips a drive letter or UNC volume and leading separators
// so a studio path like "T:/projects" becomes "projects" below a local mount.
func relativeLayout(p string) string {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		p = p[2:]
	} else if v := filepath.VolumeName(p); v != "" {
		p = p[len(v):]
	}
	p = strings.TrimLeft(p, `/\`)
	return filepath.FromSlash(p)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
