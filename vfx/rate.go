package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Rate constructs a RateChanged clip playing back at newFPS, replacing (not
// fusing) a prior Rate change: "Rate against Rate: replace the rate"
// (spec.md §4.3.1) — the parent's original fps is irrelevant once a second
// rate change is requested, so the grandparent is adopted directly.
func Rate(g *core.Graph, parent *core.Clip, newFPS float64) (*core.Clip, error) {
	if newFPS <= 0 {
		return nil, fmt.Errorf("Rate: %w: fps must be positive", core.ErrBadArgument)
	}

	metadata := parent.Metadata
	metadata.FPS = newFPS
	params := RateParams{FPS: newFPS}

	naive, err := core.New(g, core.VariantRateChanged, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, params, true, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	if parent.Variant == core.VariantRateChanged {
		grandparent := singleParent(parent.Source)
		retireNaive(g, naive)
		replacedMeta := grandparent.Metadata
		replacedMeta.FPS = newFPS
		return core.NewInheriting(g, naive, core.VariantRateChanged, replacedMeta, core.Source{
			Kind: core.SourceParents, Parents: []*core.Clip{grandparent},
		}, params, true, grandparent.IsConstant)
	}
	if parent.Variant == core.VariantConcat {
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Rate(g, member, newFPS)
		}); ok || err != nil {
			return fused, err
		}
	}

	return naive, nil
}
