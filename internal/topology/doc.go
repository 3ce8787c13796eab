// Package topology defines the studio's deployment topology: whether
// project storage lives on one common network drive or on each machine's
// local drive, and whether authoring tools are installed at the same path
// on every machine.
//
// A Descriptor is immutable and carries no behavior beyond validation. It
// is loaded fresh for every resolution and passed explicitly; there is no
// process-wide topology.
package topology
