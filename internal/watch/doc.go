// Package watch signals when the settings or registry documents change,
// so long-running callers resolve again instead of holding a stale
// snapshot.
package watch
