package rewrite

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/vfx"
)

// FlattenConcats expands every Concat leaf of g into a single flat Concat
// whose source list contains no nested Concat, preserving the original
// leaf's timestamp. Skipped entirely if g has forced preview nodes pending
// (spec.md §4.3.2) — callers must unify those first.
func FlattenConcats(g *core.Graph) error {
	if g.HasForcedPreviewNodes() {
		return nil
	}

	for _, leaf := range g.Leaves() {
		if leaf.Variant != core.VariantConcat {
			continue
		}

		flat := flattenSources(leaf.Source.Parents)
		if sameSources(flat, leaf.Source.Parents) {
			continue
		}

		newLeaf, err := rebuildFlatConcat(g, leaf, flat)
		if err != nil {
			return fmt.Errorf("FlattenConcats: %w", err)
		}
		_ = newLeaf
	}
	return nil
}

// flattenSources recursively expands any Concat member into its own member
// list, depth-first, matching sourcesOf in the original engine's
// core/util.py.
func flattenSources(sources []*core.Clip) []*core.Clip {
	var out []*core.Clip
	for _, s := range sources {
		if s.Variant == core.VariantConcat {
			out = append(out, flattenSources(s.Source.Parents)...)
		} else {
			out = append(out, s)
		}
	}
	return out
}

func sameSources(a, b []*core.Clip) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rebuildFlatConcat constructs a fresh Concat over the already-flattened
// member list, inheriting leaf's timestamp, and retires leaf.
func rebuildFlatConcat(g *core.Graph, leaf *core.Clip, flat []*core.Clip) (*core.Clip, error) {
	fresh, err := vfx.Concat(g, flat[0], flat[1:]...)
	if err != nil {
		return nil, err
	}
	fresh.Timestamp = leaf.Timestamp

	if err := g.RemoveLeaf(leaf); err != nil {
		return nil, fmt.Errorf("rebuildFlatConcat: %w", err)
	}
	return fresh, nil
}
