// Package errors provides typed error values for the Lucid pipeline core.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Configuration errors: ErrConfigMissing, ErrInvalidTopology, ErrInvalidSettings
//   - Registry errors: ErrDuplicateCode, ErrNotFound, ErrInvalidProjectCode, ErrRegistryLocked
//   - Resolution errors: ErrToolNotConfigured, ErrDriveUnreachable
//
// ErrConfigMissing is fatal to every resolution and must never be replaced
// by a default topology. ErrDriveUnreachable is the only transient kind; the
// core never retries it.
//
// # Usage
//
// Resolution failures carry detail in typed values that still match the
// sentinels:
//
//	var missing *kerrors.ToolNotConfiguredError
//	if errors.As(err, &missing) {
//	    fmt.Printf("add %s to your machine profile\n", missing.Key)
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading project %s: %w", code, errors.ErrNotFound)
package errors
