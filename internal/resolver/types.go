package resolver

import "sort"

// Keys reported in ToolNotConfigured errors for non-tool paths.
const (
	KeyProjectsRoot = "projects_root"
	KeyScratch      = "scratch"
	KeyMount        = "mount"
)

// PathTable is the studio-wide path set shared by every machine.
type PathTable struct {
	// ProjectsRoot is absolute on a common network drive. Under
	// local-networks it is the layout below each machine's mount point.
	ProjectsRoot string
	// LocalMount is the default mount point for local-networks studios.
	LocalMount string
	// Scratch is the base of per-user cache areas.
	Scratch string
	// Tools maps tool name to executable path.
	Tools map[string]string
	// KnownTools lists the tools every machine must resolve. When empty the
	// keys of Tools are used.
	KnownTools []string
}

// MachineProfile holds one host's corrections to the shared path table.
// Any non-empty field wins over the table.
type MachineProfile struct {
	Host         string
	Mount        string
	ProjectsRoot string
	Scratch      string
	Tools        map[string]string
}

func (p *MachineProfile) tool(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.Tools[name]
	return v, ok && v != ""
}

// Merge returns a profile where non-empty fields of over replace those of
// p. Either side may be nil.
func (p *MachineProfile) Merge(over *MachineProfile) *MachineProfile {
	if p == nil && over == nil {
		return nil
	}
	out := &MachineProfile{Tools: make(map[string]string)}
	for _, src := range []*MachineProfile{p, over} {
		if src == nil {
			continue
		}
		if src.Host != "" {
			out.Host = src.Host
		}
		if src.Mount != "" {
			out.Mount = src.Mount
		}
		if src.ProjectsRoot != "" {
			out.ProjectsRoot = src.ProjectsRoot
		}
		if src.Scratch != "" {
			out.Scratch = src.Scratch
		}
		for k, v := range src.Tools {
			if v != "" {
				out.Tools[k] = v
			}
		}
	}
	return out
}

// knownTools returns the tool names to resolve, sorted when derived from maps.
func knownTools(table PathTable, profile *MachineProfile) []string {
	if len(table.KnownTools) > 0 {
		out := make([]string, len(table.KnownTools))
		copy(out, table.KnownTools)
		return out
	}
	seen := make(map[string]bool)
	var names []string
	for name := range table.Tools {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if profile != nil {
		for name := range profile.Tools {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
