// Package workflows provides high-level orchestration for lucid commands
// and for authoring-tool integrations.
//
// Workflows coordinate the configs, resolver, registry and audit packages
// to implement complete features. They are independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # The Config Facade
//
// GetConfig is the one call an authoring-tool integration depends on:
//
//	cfg, err := workflows.GetConfig(ctx, workflows.ConfigOptions{
//	    Runtime:     rt,
//	    ProjectCode: "PRJ01",
//	})
//	cmd.Env = append(os.Environ(), cfg.Environ()...)
//
// It re-reads the topology and registry on every call and returns an
// immutable snapshot. Integrations never read the settings or registry
// documents themselves.
//
// Settings merge in this order, later layers winning per key:
//
//   - [defaults] from the studio settings
//   - the project's overrides from the registry
//   - [overrides] from the user's config file
//   - ConfigOptions.UserOverrides
//
// # Available Workflows
//
//   - GetConfig, Watch: resolve a project for this machine and user
//   - ToolPath, ShowTopology: inspect resolution without a project
//   - CreateProject, ListProjects, ShowProject, DeleteProject,
//     RenameProject: manage registry records
//   - SetOverride, RemoveOverride: manage project overrides
//   - Log: read the registry audit trail
//
// Every registry mutation records an audit entry.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific error conditions:
//
//	cfg, err := workflows.GetConfig(ctx, opts)
//	if errors.Is(err, kerrors.ErrDriveUnreachable) {
//	    // Ask the user to reconnect the drive
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It bounds registry lock waits and the drive probe.
package workflows
