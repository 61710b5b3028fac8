// Package core defines the central Clip node type, the composition graph
// (leaf-set tracking), structural identity (hash/pseudo-equality), and the
// shared sentinel errors used throughout the engine.
//
// A Clip is an immutable record describing a pure function "frame index ->
// image". Clips are constructed bottom-up: a clip's sources must already be
// fully built before it exists, so the resulting graph is acyclic by
// construction. Graph tracks only the *leaves* of that DAG (the nodes with
// no consumer yet), since those are the candidates a preview session renders
// from; edges are never added or removed independently of a Clip's
// construction, so — unlike a general V/E graph — there is no separate edge
// table to maintain.
//
// Why a leaf-tracking Graph rather than a general graph?
//
//   - Clip sources are fixed for the clip's lifetime; "edges" are implicit
//     in Clip.Source and never mutate.
//   - The only graph-shaped question sessions ask is "which clips have no
//     consumer yet", i.e. which clips are preview candidates.
//   - Rewrites retire and promote leaves (see package rewrite); Graph's
//     AddLeaf/RemoveLeaf pair is exactly the primitive that needs.
//
// Concurrency model:
//
//   - Graph guards its leaf-set with a single sync.RWMutex; narrower locking
//     (as lvlath's core.Graph splits vertices from edges) isn't warranted
//     here since there is only one mutable set.
//   - The "current graph" is a swappable process-wide singleton (Current,
//     Reset, Swap) with thin package-level accessors for script ergonomics,
//     matching the instruction to prefer explicit context handles with only
//     thin module-level sugar on top.
//
// Errors:
//
//	ErrGraphDomainMismatch — a clip's sources belong to different graphs.
//	ErrNotALeaf            — RemoveLeaf was asked to remove a non-leaf.
//	ErrBadArgument         — contradictory or missing constructor parameters.
//	ErrOutOfRange          — frame index, crop, or subclip bounds violated.
//	ErrBadTimecode         — malformed timecode string.
//	ErrFileNotFound        — Load path does not exist.
package core
