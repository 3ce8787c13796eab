// Package resolver computes where things live for the calling machine: the
// shared project root, each authoring tool's executable, and the user's
// scratch area.
//
// # Sources
//
// Paths come from two places: the studio-wide PathTable and an optional
// MachineProfile for the calling host. The topology decides which source
// is consulted:
//
//	common-network / consistent     tools and root from the table
//	common-network / inconsistent   root from the table, tools from the profile only
//	local-networks / consistent     tools from the table, root below the machine's mount
//	local-networks / inconsistent   everything from the profile, validated up front
//
// Whenever both sources hold a value for the same key, the profile wins.
//
// # Failures
//
// A missing value is a ToolNotConfiguredError naming the key. Nothing is
// guessed. A drive that doesn't answer a single bounded stat is a
// DriveUnreachableError. The resolver never creates directories and never
// retries.
package resolver
