// Package registry is the durable catalog of studio projects.
//
// The registry is a single TOML document, normally next to the studio
// settings on the shared drive:
//
//	version = 1
//	next_seq = 2
//	issued = ["PRJ01", "OLD99"]
//
//	[[projects]]
//	code = "PRJ01"
//	uuid = "..."
//	name = "Demo"
//	created_at = 2025-03-01T10:00:00Z
//	seq = 2
//	[projects.overrides]
//	frameRate = 30
//
// # Concurrency
//
// Readers never lock. They see either the previous document or the next
// one because writers replace the file with a rename.
//
// Writers serialize through registry.toml.lock, created with O_EXCL. Each
// write re-reads the document under the lock before changing it, so checks
// like the duplicate-code test in CreateProject are atomic across machines.
//
// # Tombstones
//
// Codes in issued are never reused, even after DeleteProject. A deleted
// project's folder may linger on disk and must not be adopted by a new
// project. Codes compare case-insensitively.
package registry
