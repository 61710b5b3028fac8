package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Resize constructs a Resized clip, applying the Resize↑/Resize↓ fusion
// rules against a Resized source (spec.md §4.3.1), grounded on the original
// engine's vfx/resize.py: compare output area to source area to classify
// up/down, then dispatch on the source's variant.
func Resize(g *core.Graph, parent *core.Clip, width, height uint32, interp Interpolation) (*core.Clip, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("Resize: %w: width and height must be > 0", core.ErrBadArgument)
	}

	metadata := parent.Metadata
	metadata.Width, metadata.Height = width, height
	params := ResizeParams{Width: width, Height: height, Interp: interp}

	naive, err := core.New(g, core.VariantResized, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, params, false, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	return canonicalResize(g, naive, params)
}

func canonicalResize(g *core.Graph, naive *core.Clip, params ResizeParams) (*core.Clip, error) {
	parent := singleParent(naive.Source)

	if parent.Variant == core.VariantConcat {
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Resize(g, member, params.Width, params.Height, params.Interp)
		}); ok || err != nil {
			return fused, err
		}
	}

	if parent.Variant != core.VariantResized {
		return naive, nil
	}
	pp, ok := parent.Params.(ResizeParams)
	if !ok || pp.Interp != params.Interp {
		return naive, nil
	}
	grandparent := singleParent(parent.Source)
	if grandparent == nil {
		return naive, nil
	}

	naiveUp := params.area() > pp.area()
	parentUp := pp.area() > areaOf(grandparent.Metadata)
	if naiveUp && !parentUp {
		// Resize↑ only fuses against a source that was itself Resize↑.
		return naive, nil
	}

	retireNaive(g, naive)

	if params.Width == grandparent.Metadata.Width && params.Height == grandparent.Metadata.Height {
		// Resulting size equals the grandparent's own size: annihilate both
		// resizes entirely.
		return grandparent, nil
	}

	metadata := grandparent.Metadata
	metadata.Width, metadata.Height = params.Width, params.Height
	return core.NewInheriting(g, naive, core.VariantResized, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{grandparent},
	}, params, false, grandparent.IsConstant)
}

func areaOf(m core.Metadata) uint64 { return uint64(m.Width) * uint64(m.Height) }
