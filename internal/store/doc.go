// Package store persists candidate releases, the reference catalog, and
// group identities in SQLite.
//
// The releases table is read-then-write per row: the matching engine
// selects a batch, then updates each row as its own atomic unit. The predb
// table is read-only from the engine's perspective; only the import
// tooling writes to it.
package store
