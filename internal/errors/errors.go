package errors

import (
	"errors"
	"fmt"
)

// Configuration errors indicate the studio settings are absent or malformed.
var (
	// ErrConfigMissing indicates the studio topology has never been configured.
	ErrConfigMissing = errors.New("studio topology is not configured")

	// ErrInvalidTopology indicates a topology field holds an unknown mode.
	ErrInvalidTopology = errors.New("invalid topology mode")

	// ErrInvalidSettings indicates the settings document could not be parsed.
	ErrInvalidSettings = errors.New("settings document is invalid")
)

// Registry errors indicate issues with project records.
var (
	// ErrDuplicateCode indicates the project code has already been issued.
	ErrDuplicateCode = errors.New("project code has already been issued")

	// ErrNotFound indicates no project exists with the given code.
	ErrNotFound = errors.New("project not found")

	// ErrInvalidProjectCode indicates the project code is empty or contains illegal characters.
	ErrInvalidProjectCode = errors.New("invalid project code")

	// ErrRegistryLocked indicates another writer held the registry lock for too long.
	ErrRegistryLocked = errors.New("project registry is locked by another writer")

	// ErrInvalidDateFormat indicates a --since or --until date could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Resolution errors indicate a path could not be resolved for this machine.
var (
	// ErrToolNotConfigured indicates a required path key is missing for this machine.
	ErrToolNotConfigured = errors.New("tool not configured")

	// ErrDriveUnreachable indicates a drive or mount point did not answer the existence probe.
	ErrDriveUnreachable = errors.New("drive unreachable")
)

// ToolNotConfiguredError names the missing key so the user can fix their
// machine profile. It matches ErrToolNotConfigured with errors.Is.
type ToolNotConfiguredError struct {
	Key  string
	Host string
}

func (e *ToolNotConfiguredError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("%s: %q has no configured path", ErrToolNotConfigured, e.Key)
	}
	return fmt.Sprintf("%s: %q has no configured path on host %q", ErrToolNotConfigured, e.Key, e.Host)
}

func (e *ToolNotConfiguredError) Unwrap() error {
	return ErrToolNotConfigured
}

// DriveUnreachableError carries the probed path and, when known, the
// underlying stat failure. It matches ErrDriveUnreachable with errors.Is.
type DriveUnreachableError struct {
	Path  string
	Cause error
}

func (e *DriveUnreachableError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", ErrDriveUnreachable, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDriveUnreachable, e.Path, e.Cause)
}

func (e *DriveUnreachableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrDriveUnreachable}
	}
	return []error{ErrDriveUnreachable, e.Cause}
}
