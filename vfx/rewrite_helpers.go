package vfx

import "github.com/reflowfx/reflow/core"

// retireNaive discards a just-constructed wrapper node in favour of a fused
// or annihilated replacement: it was added as a leaf and linked to its
// parents by core.New a moment ago, and none of that should survive once a
// CanonicalOrder rule decides to replace it (spec.md §4.3.1, algorithmic
// side conditions).
func retireNaive(g *core.Graph, naive *core.Clip) {
	_ = g.RemoveLeaf(naive)
	if naive.Source.Kind == core.SourceParents {
		for _, p := range naive.Source.Parents {
			g.ReleaseSource(p)
		}
	}
}

func singleParent(source core.Source) *core.Clip {
	if source.Kind != core.SourceParents || len(source.Parents) == 0 {
		return nil
	}
	return source.Parents[0]
}
