package workflows

import (
	"context"

	"github.com/PolarWolf314/lucid/internal/configs"
	"github.com/PolarWolf314/lucid/internal/resolver"
	"github.com/PolarWolf314/lucid/internal/topology"
)

// ToolPathOptions configures the tool path workflow.
type ToolPathOptions struct {
	Runtime configs.Runtime
	Tool    string

	// ProjectCode, when set, resolves through GetConfig so the answer is
	// exactly what a launch for that project would use.
	ProjectCode string

	Prober resolver.Prober
}

// ToolPathResult contains one resolved executable.
type ToolPathResult struct {
	Tool     string
	Path     string
	Topology topology.Descriptor
}

// ToolPath resolves one tool executable for the calling machine.
//
// Returns ErrConfigMissing, ErrToolNotConfigured or ErrDriveUnreachable.
func ToolPath(ctx context.Context, opts ToolPathOptions) (*ToolPathResult, error) {
	if opts.ProjectCode != "" {
		cfg, err := GetConfig(ctx, ConfigOptions{
			Runtime:     opts.Runtime,
			ProjectCode: opts.ProjectCode,
			Prober:      opts.Prober,
		})
		if err != nil {
			return nil, err
		}
		if p, ok := cfg.Tool(opts.Tool); ok {
			return &ToolPathResult{Tool: opts.Tool, Path: p, Topology: cfg.Topology()}, nil
		}
		// Not a known tool; fall through so the resolver names it.
	}

	settings, err := configs.LoadSettings(opts.Runtime.Settings)
	if err != nil {
		return nil, err
	}
	topo, err := settings.TopologyDescriptor()
	if err != nil {
		return nil, err
	}
	r, err := newResolver(settings, topo, opts.Runtime, opts.Prober)
	if err != nil {
		return nil, err
	}

	p, err := r.Tool(ctx, opts.Tool)
	if err != nil {
		return nil, err
	}
	return &ToolPathResult{Tool: opts.Tool, Path: p, Topology: topo}, nil
}
