// Package match extracts correlation identifiers from noisy release
// titles and resolves them against the reference catalog.
//
// Resolution is a staged cascade: direct identifier+group lookup first,
// then a group remap retry, then exact-title heuristics as the last
// resort. Identifier matching is cheap and precise but unsafe under
// ambiguity, so an ambiguous or season-only direct hit never wins over
// returning nothing.
package match
