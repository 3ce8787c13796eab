package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/PolarWolf314/lucid/internal/audit"
	kerrors "github.com/PolarWolf314/lucid/internal/errors"
)

func TestCreateProjectRecordsAudit(t *testing.T) {
	s := newStudio(t)

	result, err := CreateProject(context.Background(), CreateProjectOptions{Runtime: s.rt, Code: "PRJ01", Name: "Demo"})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if result.Project.Name != "Demo" || result.RegistryPath != s.rt.Registry {
		t.Errorf("unexpected result: %+v", result)
	}

	entries, err := audit.ReadEntries(audit.PathFor(s.rt.Registry))
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Operation != "create" || e.Code != "PRJ01" || e.User != "alice" || e.Host != "WS-01" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.ProjectUUID != result.Project.UUID {
		t.Errorf("ProjectUUID = %s, want %s", e.ProjectUUID, result.Project.UUID)
	}
}

func TestCreateProjectDuplicateNotAudited(t *testing.T) {
	s := newStudio(t)
	s.create(t, "PRJ01")

	_, err := CreateProject(context.Background(), CreateProjectOptions{Runtime: s.rt, Code: "PRJ01"})
	if !errors.Is(err, kerrors.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}

	entries, _ := audit.ReadEntries(audit.PathFor(s.rt.Registry))
	if len(entries) != 1 {
		t.Errorf("expected only the first create to be audited, got %d entries", len(entries))
	}
}

func TestListProjectsMatchAndRetired(t *testing.T) {
	s := newStudio(t)
	for _, code := range []string{"PRJ01", "PRJ02", "OLD01", "TEST"} {
		s.create(t, code)
	}
	if _, err := DeleteProject(context.Background(), DeleteProjectOptions{Runtime: s.rt, Code: "OLD01"}); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	tests := []struct {
		match   string
		live    []string
		retired []string
	}{
		{"", []string{"PRJ01", "PRJ02", "TEST"}, []string{"OLD01"}},
		{"prj*", []string{"PRJ01", "PRJ02"}, nil},
		{"*01", []string{"PRJ01"}, []string{"OLD01"}},
		{"NOPE*", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.match, func(t *testing.T) {
			result, err := ListProjects(context.Background(), ListProjectsOptions{Runtime: s.rt, Match: tt.match})
			if err != nil {
				t.Fatalf("ListProjects failed: %v", err)
			}
			if len(result.Projects) != len(tt.live) {
				t.Fatalf("live = %d projects, want %v", len(result.Projects), tt.live)
			}
			for i, code := range tt.live {
				if result.Projects[i].Code != code {
					t.Errorf("Projects[%d] = %s, want %s", i, result.Projects[i].Code, code)
				}
			}
			if len(result.Retired) != len(tt.retired) {
				t.Errorf("Retired = %v, want %v", result.Retired, tt.retired)
			}
		})
	}
}

func TestListProjectsBadPattern(t *testing.T) {
	s := newStudio(t)

	_, err := ListProjects(context.Background(), ListProjectsOptions{Runtime: s.rt, Match: "[PRJ"})
	if err == nil {
		t.Fatal("expected an error for a malformed pattern")
	}
}

func TestShowProjectHistory(t *testing.T) {
	s := newStudio(t)
	s.create(t, "PRJ01")
	s.create(t, "PRJ02")
	s.set(t, "PRJ01", "frameRate", "30")

	result, err := ShowProject(context.Background(), ShowProjectOptions{Runtime: s.rt, Code: "prj01"})
	if err != nil {
		t.Fatalf("ShowProject failed: %v", err)
	}
	if result.Project.Overrides["frameRate"] != int64(30) {
		t.Errorf("Overrides = %v", result.Project.Overrides)
	}
	if len(result.History) != 2 {
		t.Errorf("expected create and set in history, got %+v", result.History)
	}

	if _, err := ShowProject(context.Background(), ShowProjectOptions{Runtime: s.rt, Code: "NOPE"}); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectRetiresCode(t *testing.T) {
	s := newStudio(t)
	s.create(t, "PRJ01")

	result, err := DeleteProject(context.Background(), DeleteProjectOptions{Runtime: s.rt, Code: "PRJ01"})
	if err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if result.Project.Code != "PRJ01" {
		t.Errorf("unexpected result: %+v", result)
	}

	_, err = CreateProject(context.Background(), CreateProjectOptions{Runtime: s.rt, Code: "PRJ01"})
	if !errors.Is(err, kerrors.ErrDuplicateCode) {
		t.Errorf("expected ErrDuplicateCode after delete, got %v", err)
	}
}

func TestRenameProject(t *testing.T) {
	s := newStudio(t)
	s.create(t, "PRJ01")

	if err := RenameProject(context.Background(), RenameProjectOptions{Runtime: s.rt, Code: "PRJ01", Name: "Final"}); err != nil {
		t.Fatalf("RenameProject failed: %v", err)
	}
	result, err := ShowProject(context.Background(), ShowProjectOptions{Runtime: s.rt, Code: "PRJ01"})
	if err != nil {
		t.Fatalf("ShowProject failed: %v", err)
	}
	if result.Project.Name != "Final" {
		t.Errorf("Name = %q", result.Project.Name)
	}
}

func TestSetAndRemoveOverride(t *testing.T) {
	s := newStudio(t)
	s.create(t, "PRJ01")
	ctx := context.Background()

	set, err := SetOverride(ctx, SetOverrideOptions{Runtime: s.rt, Code: "PRJ01", Key: "frameRate", Value: "30"})
	if err != nil {
		t.Fatalf("SetOverride failed: %v", err)
	}
	if set.Value != int64(30) {
		t.Errorf("Value = %#v, want int64(30)", set.Value)
	}

	removed, err := RemoveOverride(ctx, RemoveOverrideOptions{Runtime: s.rt, Code: "PRJ01", Key: "frameRate"})
	if err != nil || !removed.Removed {
		t.Fatalf("RemoveOverride = %+v, %v", removed, err)
	}

	again, err := RemoveOverride(ctx, RemoveOverrideOptions{Runtime: s.rt, Code: "PRJ01", Key: "frameRate"})
	if err != nil {
		t.Fatalf("second RemoveOverride failed: %v", err)
	}
	if again.Removed {
		t.Error("second RemoveOverride should report nothing removed")
	}

	entries, _ := audit.ReadEntries(audit.PathFor(s.rt.Registry))
	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
	}
	if len(ops) != 3 || ops[0] != "create" || ops[1] != "set" || ops[2] != "unset" {
		t.Errorf("audit ops = %v, want [create set unset]", ops)
	}
}
