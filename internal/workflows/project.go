package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/lucid/internal/audit"
	"github.com/PolarWolf314/lucid/internal/configs"
	"github.com/PolarWolf314/lucid/internal/registry"
	"github.com/bmatcuk/doublestar/v4"
)

func openStore(rt configs.Runtime) *registry.Store {
	return registry.Open(rt.Registry, registry.Options{LockTimeout: rt.LockTimeout})
}

func auditLog(rt configs.Runtime) *audit.Logger {
	return audit.New(audit.PathFor(rt.Registry), rt.User, rt.Host)
}

// CreateProjectOptions configures the create workflow.
type CreateProjectOptions struct {
	Runtime configs.Runtime

	// Code is the permanent project identifier.
	Code string

	// Name is the display name. Empty uses the code.
	Name string
}

// CreateProjectResult contains the outcome of a create operation.
type CreateProjectResult struct {
	Project      registry.ProjectRecord
	RegistryPath string
}

// CreateProject registers a new project.
//
// Returns ErrInvalidProjectCode if the code cannot name a project folder.
// Returns ErrDuplicateCode if the code was ever issued, deleted or not.
// Returns ErrRegistryLocked if another writer held the registry too long.
func CreateProject(ctx context.Context, opts CreateProjectOptions) (*CreateProjectResult, error) {
	record, err := openStore(opts.Runtime).CreateProject(ctx, opts.Code, opts.Name)
	if err != nil {
		return nil, err
	}

	log := auditLog(opts.Runtime)
	entry := log.Entry("create")
	entry.Code = record.Code
	entry.ProjectUUID = record.UUID
	entry.Name = record.Name
	log.Log(entry)

	return &CreateProjectResult{Project: record, RegistryPath: opts.Runtime.Registry}, nil
}

// ListProjectsOptions configures the list workflow.
type ListProjectsOptions struct {
	Runtime configs.Runtime

	// Match filters codes with a glob pattern such as "PRJ*". Matching
	// ignores case.
	Match string
}

// ListProjectsResult contains the outcome of a list operation.
type ListProjectsResult struct {
	// Projects are live records, oldest first.
	Projects []registry.ProjectRecord

	// Retired are issued codes with no live record.
	Retired []string
}

// ListProjects lists projects in creation order.
func ListProjects(ctx context.Context, opts ListProjectsOptions) (*ListProjectsResult, error) {
	pattern := strings.ToUpper(opts.Match)
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid --match pattern %q: %w", opts.Match, doublestar.ErrBadPattern)
	}

	store := openStore(opts.Runtime)
	projects, err := store.ListProjects()
	if err != nil {
		return nil, err
	}
	issued, err := store.IssuedCodes()
	if err != nil {
		return nil, err
	}

	matches := func(code string) bool {
		if pattern == "" {
			return true
		}
		ok, _ := doublestar.Match(pattern, strings.ToUpper(code))
		return ok
	}

	result := &ListProjectsResult{}
	live := make(map[string]bool, len(projects))
	for _, p := range projects {
		live[strings.ToUpper(p.Code)] = true
		if matches(p.Code) {
			result.Projects = append(result.Projects, p)
		}
	}
	for _, code := range issued {
		if !live[strings.ToUpper(code)] && matches(code) {
			result.Retired = append(result.Retired, code)
		}
	}
	return result, nil
}

// ShowProjectOptions configures the show workflow.
type ShowProjectOptions struct {
	Runtime configs.Runtime
	Code    string
}

// ShowProjectResult contains one project and its audit history.
type ShowProjectResult struct {
	Project registry.ProjectRecord
	History []audit.Entry
}

// ShowProject returns one project record.
//
// Returns ErrNotFound if the code is unknown.
func ShowProject(ctx context.Context, opts ShowProjectOptions) (*ShowProjectResult, error) {
	record, err := openStore(opts.Runtime).GetProject(opts.Code)
	if err != nil {
		return nil, err
	}

	// History is informational; an unreadable log leaves it empty.
	entries, _ := audit.ReadEntries(auditLog(opts.Runtime).Path())

	return &ShowProjectResult{
		Project: record,
		History: audit.ForProject(entries, record.Code),
	}, nil
}

// DeleteProjectOptions configures the delete workflow.
type DeleteProjectOptions struct {
	Runtime configs.Runtime
	Code    string
}

// DeleteProjectResult contains the outcome of a delete operation.
type DeleteProjectResult struct {
	Project registry.ProjectRecord
}

// DeleteProject removes a project from the registry. The code stays
// retired and the project folder is not touched.
//
// Returns ErrNotFound if the code is unknown.
func DeleteProject(ctx context.Context, opts DeleteProjectOptions) (*DeleteProjectResult, error) {
	record, err := openStore(opts.Runtime).DeleteProject(ctx, opts.Code)
	if err != nil {
		return nil, err
	}

	log := auditLog(opts.Runtime)
	entry := log.Entry("delete")
	entry.Code = record.Code
	entry.ProjectUUID = record.UUID
	log.Log(entry)

	return &DeleteProjectResult{Project: record}, nil
}

// RenameProjectOptions configures the rename workflow.
type RenameProjectOptions struct {
	Runtime configs.Runtime
	Code    string
	Name    string
}

// RenameProject changes a project's display name.
//
// Returns ErrNotFound if the code is unknown.
func RenameProject(ctx context.Context, opts RenameProjectOptions) error {
	if err := openStore(opts.Runtime).Rename(ctx, opts.Code, opts.Name); err != nil {
		return err
	}

	log := auditLog(opts.Runtime)
	entry := log.Entry("rename")
	entry.Code = opts.Code
	entry.Name = opts.Name
	log.Log(entry)
	return nil
}

// SetOverrideOptions configures the set workflow.
type SetOverrideOptions struct {
	Runtime configs.Runtime
	Code    string
	Key     string

	// Value is parsed as a TOML literal, so "30" stores an integer.
	Value string
}

// SetOverrideResult contains the stored value.
type SetOverrideResult struct {
	Key   string
	Value any
}

// SetOverride sets a project-level setting override.
//
// Returns ErrNotFound if the code is unknown.
func SetOverride(ctx context.Context, opts SetOverrideOptions) (*SetOverrideResult, error) {
	value := configs.ParseValue(opts.Value)
	if err := openStore(opts.Runtime).SetOverride(ctx, opts.Code, opts.Key, value); err != nil {
		return nil, err
	}

	log := auditLog(opts.Runtime)
	entry := log.Entry("set")
	entry.Code = opts.Code
	entry.Key = opts.Key
	entry.Value = opts.Value
	log.Log(entry)

	return &SetOverrideResult{Key: opts.Key, Value: value}, nil
}

// RemoveOverrideOptions configures the unset workflow.
type RemoveOverrideOptions struct {
	Runtime configs.Runtime
	Code    string
	Key     string
}

// RemoveOverrideResult reports whether the key had been set.
type RemoveOverrideResult struct {
	Removed bool
}

// RemoveOverride clears a project-level setting override. Clearing an
// unset key succeeds with Removed false.
//
// Returns ErrNotFound if the code is unknown.
func RemoveOverride(ctx context.Context, opts RemoveOverrideOptions) (*RemoveOverrideResult, error) {
	removed, err := openStore(opts.Runtime).RemoveOverride(ctx, opts.Code, opts.Key)
	if err != nil {
		return nil, err
	}

	if removed {
		log := auditLog(opts.Runtime)
		entry := log.Entry("unset")
		entry.Code = opts.Code
		entry.Key = opts.Key
		log.Log(entry)
	}

	return &RemoveOverrideResult{Removed: removed}, nil
}
