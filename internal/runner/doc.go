// Package runner drives batch reconciliation runs: candidate selection,
// the per-row match pipeline, and terminal accounting.
package runner
