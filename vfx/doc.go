// Package vfx implements every clip constructor in the script API surface —
// load, text, resize, crop, brighten, greyscale, blur, gaussianBlur, rate,
// reverse, speed, subclip, concat, composite, slide — plus the per-effect
// side of the rewrite engine's CanonicalOrder pass (package rewrite owns the
// other normalization pass, FlattenConcats, since that one runs once
// globally rather than inside a single constructor).
//
// Each constructor mirrors the original engine's @clipMethod-wrapped
// functions in reflect/core/vfx/*.py: build the candidate node, then always
// apply that effect's push/fuse/annihilate rule against its immediate source
// variant before returning. A rewrite that retires the candidate node
// releases it via core.Graph.RemoveLeaf/ReleaseSource (retireNaive) so
// leaf-set bookkeeping stays correct no matter how deep the rewrite
// recurses.
package vfx
