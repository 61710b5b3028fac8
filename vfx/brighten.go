package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// brightenPushesInto reports the variants Brighten pushes inside of
// (spec.md §4.3.1): Greyscale, Blur, GaussianBlur, RateChanged, Reversed,
// Sped, SubClip, SlideTransition, Composite, Concat, and a Resize that
// enlarges.
// Brighten commutes with all of these because none of them touch per-pixel
// intensity.
func brightenPushesInto(v core.Variant, resizeIsUp bool) bool {
	switch v {
	case core.VariantGreyscale, core.VariantBlurred, core.VariantGaussianBlurred,
		core.VariantRateChanged, core.VariantReversed, core.VariantSped,
		core.VariantSubClip, core.VariantSlideTransition, core.VariantComposite,
		core.VariantConcat:
		return true
	case core.VariantResized:
		return resizeIsUp
	default:
		return false
	}
}

// Brighten constructs a Brightened clip, fusing against a Brighten source of
// the same sign and pushing inside several commuting variants (spec.md
// §4.3.1).
func Brighten(g *core.Graph, parent *core.Clip, amount float64) (*core.Clip, error) {
	if amount < -1 || amount > 1 {
		return nil, fmt.Errorf("Brighten: %w: amount must be in [-1,1]", core.ErrBadArgument)
	}

	params := BrightenParams{Amount: amount}
	naive, err := core.New(g, core.VariantBrightened, parent.Metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, params, false, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	return canonicalBrighten(g, naive, params)
}

func canonicalBrighten(g *core.Graph, naive *core.Clip, params BrightenParams) (*core.Clip, error) {
	parent := singleParent(naive.Source)

	if parent.Variant == core.VariantBrightened {
		pp := parent.Params.(BrightenParams)
		if combined, ok := combineBrighten(params.Amount, pp.Amount); ok {
			grandparent := singleParent(parent.Source)
			retireNaive(g, naive)
			return core.NewInheriting(g, naive, core.VariantBrightened, grandparent.Metadata, core.Source{
				Kind: core.SourceParents, Parents: []*core.Clip{grandparent},
			}, BrightenParams{Amount: combined}, false, grandparent.IsConstant)
		}
		return naive, nil
	}

	resizeIsUp := false
	if parent.Variant == core.VariantResized {
		rp := parent.Params.(ResizeParams)
		gp := singleParent(parent.Source)
		resizeIsUp = gp != nil && rp.area() > areaOf(gp.Metadata)
	}
	if !brightenPushesInto(parent.Variant, resizeIsUp) {
		return naive, nil
	}
	if parent.Variant == core.VariantConcat {
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Brighten(g, member, params.Amount)
		}); ok || err != nil {
			return fused, err
		}
		return naive, nil
	}

	// Generic push-inside: rebuild parent's variant with Brighten applied to
	// its own source(s) first. Pushing through a multi-parent variant
	// (Composite) brightens every parent symmetrically.
	retireNaive(g, naive)
	newParents := make([]*core.Clip, len(parent.Source.Parents))
	for i, gp := range parent.Source.Parents {
		b, err := Brighten(g, gp, params.Amount)
		if err != nil {
			return nil, err
		}
		newParents[i] = b
	}
	return core.NewInheriting(g, naive, parent.Variant, parent.Metadata, core.Source{
		Kind: core.SourceParents, Parents: newParents,
	}, parent.Params, parent.IsIndirection, parent.IsConstant)
}
