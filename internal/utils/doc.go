// Package utils provides shared helpers for the Lucid pipeline.
//
// # System Utilities
//
//   - GetUsername: current OS account, domain prefix stripped
//   - GetHostname: system hostname
//   - NormalizeHost: canonical host identifier for machine profiles
//
// # Project Codes
//
//   - IsValidProjectCode: checks a code is safe as a folder name
//   - CodeKey: case-folded key used for uniqueness
//
// # Filesystem Utilities
//
//   - FindUpwards: locates a settings file in the working tree
//   - FormatPaths: formats file paths for human-readable output
//
// # Terminal Utilities
//
//   - IsTerminal: checks if stdout is a terminal
//   - IsStdinTerminal: checks if a prompt can be answered
package utils
