package workflows

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PolarWolf314/lucid/internal/configs"
	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/PolarWolf314/lucid/internal/registry"
	"github.com/PolarWolf314/lucid/internal/resolver"
	"github.com/PolarWolf314/lucid/internal/topology"
)

// Environment variables handed to a launched authoring tool.
const (
	EnvProject     = "LUCID_PROJECT"
	EnvProjectRoot = "LUCID_PROJECT_ROOT"
	EnvScratch     = "LUCID_SCRATCH"
	EnvToolPrefix  = "LUCID_TOOL_"
	EnvDebug       = "LUCID_DEBUG"
	EnvDev         = "LUCID_DEV"
)

// ConfigOptions configures the config workflow.
type ConfigOptions struct {
	// Runtime says where the settings, registry and per-machine files live.
	Runtime configs.Runtime

	// ProjectCode selects the project record.
	ProjectCode string

	// UserOverrides is the top merge layer, above the user config file.
	UserOverrides map[string]any

	// Prober replaces the drive probe. Nil uses a stat probe bounded by
	// the studio's probe_timeout.
	Prober resolver.Prober
}

// Developer holds the studio's [developer] flags.
type Developer struct {
	Debug bool
	Dev   bool
}

// ResolvedConfig is a merged, machine-specific snapshot. It is built fresh
// for every call and never changes afterwards; every accessor returns a
// copy.
type ResolvedConfig struct {
	project   registry.ProjectRecord
	topo      topology.Descriptor
	host      string
	user      string
	developer Developer

	settings     map[string]any
	projectsRoot string
	projectRoot  string
	scratch      string
	tools        map[string]string
}

// GetConfig resolves the full configuration for this machine, this project
// and this user. Topology and settings are re-read on every call.
//
// Returns ErrConfigMissing if the studio topology was never configured.
// Returns ErrNotFound if the project code is unknown.
// Returns ErrToolNotConfigured naming the missing key, or ErrDriveUnreachable
// if the projects drive did not answer the probe.
func GetConfig(ctx context.Context, opts ConfigOptions) (*ResolvedConfig, error) {
	rt := opts.Runtime

	settings, err := configs.LoadSettings(rt.Settings)
	if err != nil {
		return nil, err
	}
	topo, err := settings.TopologyDescriptor()
	if err != nil {
		return nil, err
	}

	project, err := openStore(rt).GetProject(opts.ProjectCode)
	if err != nil {
		return nil, err
	}

	r, err := newResolver(settings, topo, rt, opts.Prober)
	if err != nil {
		return nil, err
	}

	projectsRoot, err := r.ProjectsRoot(ctx)
	if err != nil {
		return nil, err
	}
	projectRoot, err := r.ProjectRoot(ctx, project.StoragePath())
	if err != nil {
		return nil, err
	}
	scratch, err := r.Scratch()
	if err != nil {
		return nil, err
	}
	tools, err := r.Tools(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkToolEnvNames(tools); err != nil {
		return nil, err
	}

	userConfig, err := configs.LoadUserConfig(rt.UserConfig)
	if err != nil {
		return nil, err
	}

	return &ResolvedConfig{
		project: project,
		topo:    topo,
		host:    rt.Host,
		user:    rt.User,
		developer: Developer{
			Debug: settings.Developer.Debug,
			Dev:   settings.Developer.Dev,
		},
		settings:     configs.Merge(settings.Defaults, project.Overrides, userConfig.Overrides, opts.UserOverrides),
		projectsRoot: projectsRoot,
		projectRoot:  projectRoot,
		scratch:      scratch,
		tools:        tools,
	}, nil
}

// newResolver builds a resolver for the calling machine from the settings
// document and the machine-local profile.
func newResolver(settings *configs.Settings, topo topology.Descriptor, rt configs.Runtime, prober resolver.Prober) (*resolver.Resolver, error) {
	profile, err := configs.ProfileFor(settings, rt.Host, rt.MachineProfile)
	if err != nil {
		return nil, err
	}

	if prober == nil {
		timeout, err := settings.ProbeTimeout()
		if err != nil {
			return nil, err
		}
		prober = resolver.StatProber{Timeout: timeout}
	}

	return resolver.New(topo, settings.PathTable(), profile, resolver.Options{
		Host:   rt.Host,
		User:   rt.User,
		Prober: prober,
	})
}

func (c *ResolvedConfig) Project() registry.ProjectRecord { return c.project.Clone() }
func (c *ResolvedConfig) Topology() topology.Descriptor   { return c.topo }
func (c *ResolvedConfig) Host() string                    { return c.host }
func (c *ResolvedConfig) User() string                    { return c.user }
func (c *ResolvedConfig) Developer() Developer            { return c.developer }
func (c *ResolvedConfig) ProjectsRoot() string            { return c.projectsRoot }
func (c *ResolvedConfig) ProjectRoot() string             { return c.projectRoot }
func (c *ResolvedConfig) ScratchDir() string              { return c.scratch }

// Settings returns the merged setting mapping.
func (c *ResolvedConfig) Settings() map[string]any {
	return configs.Merge(c.settings)
}

// Setting returns one merged setting.
func (c *ResolvedConfig) Setting(key string) (any, bool) {
	v, ok := c.settings[key]
	if !ok {
		return nil, false
	}
	return configs.Merge(map[string]any{key: v})[key], true
}

// Tools returns every resolved tool executable by name.
func (c *ResolvedConfig) Tools() map[string]string {
	out := make(map[string]string, len(c.tools))
	for k, v := range c.tools {
		out[k] = v
	}
	return out
}

// Tool returns one resolved tool executable.
func (c *ResolvedConfig) Tool(name string) (string, bool) {
	p, ok := c.tools[name]
	return p, ok
}

// Environ returns the environment for a launched authoring tool as sorted
// KEY=value pairs, ready to append to os.Environ().
func (c *ResolvedConfig) Environ() []string {
	env := []string{
		EnvProject + "=" + c.project.Code,
		EnvProjectRoot + "=" + c.projectRoot,
		EnvScratch + "=" + c.scratch,
	}
	for name, path := range c.tools {
		env = append(env, EnvToolPrefix+envName(name)+"="+path)
	}
	if c.developer.Debug {
		env = append(env, EnvDebug+"=1")
	}
	if c.developer.Dev {
		env = append(env, EnvDev+"=1")
	}
	sort.Strings(env)
	return env
}

// checkToolEnvNames refuses tool names that would share one LUCID_TOOL_
// variable, such as substance-painter and substance_painter.
func checkToolEnvNames(tools map[string]string) error {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	owner := make(map[string]string, len(names))
	for _, name := range names {
		env := EnvToolPrefix + envName(name)
		if other, ok := owner[env]; ok {
			return fmt.Errorf("tools %q and %q both map to %s: %w", other, name, env, kerrors.ErrInvalidSettings)
		}
		owner[env] = name
	}
	return nil
}

// envName turns a tool name like "substance-painter" into SUBSTANCE_PAINTER.
func envName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

func (c *ResolvedConfig) String() string {
	return fmt.Sprintf("%s on %s (%s)", c.project.Code, c.host, c.topo)
}
