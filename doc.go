// Package reflow is an interactive video-compositing engine: a scripting
// surface builds a composition DAG of Clips, a rewrite engine canonicalises
// it algebraically before render, and a priority-driven, memory-bounded
// cache holds decoded frames across edit/preview cycles.
//
// Under the hood the module is organized as:
//
//	core/    — Clip/Graph identity: structural hashing, equality, the
//	           process-wide current-graph handle
//	vfx/     — effect constructors, each carrying its own CanonicalOrder
//	           rewrite rule (fuse, annihilate, or push through a parent)
//	rewrite/ — graph-wide passes that run once per script execution:
//	           concat flattening, viewport resize fixup
//	cache/   — CacheEntry bookkeeping, reprioritisation, and the
//	           FIFO/LRU/MRU/Specialised eviction policies
//	session/ — the Idle/ScriptRunning/Previewing state machine gluing
//	           script execution, rewrite, and cache together
//	config/  — engine configuration and validation
//	cmd/     — the reflowctl CLI entry point
package reflow
