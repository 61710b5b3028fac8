// Package rewrite implements the two global normalization passes the
// session harness runs once per script, after the script itself has
// finished constructing clips and before reprioritise (spec.md §4.3): per-
// node CanonicalOrder lives inline in each vfx constructor instead, since it
// only ever looks at one node's immediate source.
//
// FlattenConcats expands nested Concat sources into one flat list per leaf
// Concat, grounded on CompositionGraph.flattenConcats in the original
// engine's core/util.py. FixupResizeToViewport implements the session
// fix-up step that appends a Resize to any leaf whose size doesn't match
// the preview viewport.
package rewrite
