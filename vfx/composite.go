package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Composite places fg over bg at pixel offset (x,y), active for bg frames
// [n1,n2). Placement coordinates are deduced by the DSL layer (xc/yc/t1/t2
// forms resolve to x/y/n1/n2 before reaching here, spec.md §6).
func Composite(g *core.Graph, bg, fg *core.Clip, x, y int64, n1, n2 uint64) (*core.Clip, error) {
	if bg.Graph != fg.Graph {
		return nil, fmt.Errorf("Composite: %w", core.ErrGraphDomainMismatch)
	}
	if n1 >= n2 || n2 > bg.Metadata.FrameCount {
		return nil, fmt.Errorf("Composite: %w: bad active range", core.ErrOutOfRange)
	}

	params := CompositeParams{X: x, Y: y, N1: n1, N2: n2}
	metadata := bg.Metadata

	return core.New(g, core.VariantComposite, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{bg, fg},
	}, params, false, bg.IsConstant && fg.IsConstant)
}
