package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Sped constructs a playback-speed-scaled clip: frame_count divides by
// scale. Fuses against another Sped (scales multiply) and pushes through
// SubClip with bounds floor-divided by scale (spec.md §4.3.1).
func Sped(g *core.Graph, parent *core.Clip, scale float64) (*core.Clip, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("Sped: %w: scale must be positive", core.ErrBadArgument)
	}

	metadata := parent.Metadata
	metadata.FrameCount = uint64(float64(parent.Metadata.FrameCount) / scale)
	params := SpedParams{Scale: scale}

	naive, err := core.New(g, core.VariantSped, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, params, true, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	switch parent.Variant {
	case core.VariantSped:
		pp := parent.Params.(SpedParams)
		grandparent := singleParent(parent.Source)
		retireNaive(g, naive)
		fusedMeta := grandparent.Metadata
		fused := SpedParams{Scale: scale * pp.Scale}
		fusedMeta.FrameCount = uint64(float64(grandparent.Metadata.FrameCount) / fused.Scale)
		return core.NewInheriting(g, naive, core.VariantSped, fusedMeta, core.Source{
			Kind: core.SourceParents, Parents: []*core.Clip{grandparent},
		}, fused, true, grandparent.IsConstant)
	case core.VariantSubClip:
		sp := parent.Params.(SubClipParams)
		grandparent := singleParent(parent.Source)
		retireNaive(g, naive)
		spedGrandparent, err := Sped(g, grandparent, scale)
		if err != nil {
			return nil, err
		}
		return SubClip(g, spedGrandparent, uint64(float64(sp.N1)/scale), uint64(float64(sp.N2)/scale))
	case core.VariantConcat:
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Sped(g, member, scale)
		}); ok || err != nil {
			return fused, err
		}
		return naive, nil
	default:
		return naive, nil
	}
}
