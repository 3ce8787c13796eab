// Package audit records who changed the project registry and when.
//
// Every registry mutation (create, delete, rename, set, unset) appends one
// line to a JSON Lines file beside the registry document:
//
//	registry.audit.jsonl
//
// Each entry carries a UTC timestamp with microseconds, the user and host,
// the operation name, and the fields that operation touched.
//
// # Usage
//
//	log := audit.New(audit.PathFor(registryPath), user, host)
//	entry := log.Entry("create")
//	entry.Code = record.Code
//	log.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. A registry write that succeeded is never
// reported as failed because its audit line could not be appended.
//
// # Reading Logs
//
// ReadEntries parses the log for display. Malformed lines are skipped so a
// torn final line does not hide the rest of the history.
package audit
