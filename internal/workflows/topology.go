package workflows

import (
	"context"
	"time"

	"github.com/PolarWolf314/lucid/internal/configs"
	"github.com/PolarWolf314/lucid/internal/resolver"
	"github.com/PolarWolf314/lucid/internal/topology"
)

// TopologyOptions configures the topology workflow.
type TopologyOptions struct {
	Runtime configs.Runtime
}

// TopologyResult describes the studio layout as this machine sees it.
type TopologyResult struct {
	SettingsPath string
	Topology     topology.Descriptor
	Table        resolver.PathTable
	KnownTools   []string
	ProbeTimeout time.Duration

	Host string
	// Profile is this machine's merged profile, or nil.
	Profile *resolver.MachineProfile
}

// ShowTopology reads the settings without resolving or probing anything.
//
// Returns ErrConfigMissing if the studio topology was never configured.
func ShowTopology(ctx context.Context, opts TopologyOptions) (*TopologyResult, error) {
	rt := opts.Runtime

	settings, err := configs.LoadSettings(rt.Settings)
	if err != nil {
		return nil, err
	}
	topo, err := settings.TopologyDescriptor()
	if err != nil {
		return nil, err
	}
	timeout, err := settings.ProbeTimeout()
	if err != nil {
		return nil, err
	}
	profile, err := configs.ProfileFor(settings, rt.Host, rt.MachineProfile)
	if err != nil {
		return nil, err
	}

	r, err := resolver.New(topo, settings.PathTable(), profile, resolver.Options{Host: rt.Host, User: rt.User})
	if err != nil {
		return nil, err
	}

	return &TopologyResult{
		SettingsPath: rt.Settings,
		Topology:     topo,
		Table:        settings.PathTable(),
		KnownTools:   r.KnownTools(),
		ProbeTimeout: timeout,
		Host:         rt.Host,
		Profile:      profile,
	}, nil
}
