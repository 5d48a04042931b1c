// Package memory provides the in-memory storage driver. It is the
// reference implementation: all records live in per-collection maps
// guarded by a read-write mutex and are lost when the process exits.
//
// Identifiers are assigned from a per-collection sequence and are never
// reused, even after deletion.
package memory
