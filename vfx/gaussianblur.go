package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// GaussianBlur constructs a GaussianBlurred clip with an odd, positive
// kernel extent and per-axis sigma (0 meaning "derive from kernel size",
// matching the DSL default, spec.md §6).
func GaussianBlur(g *core.Graph, parent *core.Clip, width, height uint32, sigmaX, sigmaY float64) (*core.Clip, error) {
	if width == 0 || height == 0 || width%2 == 0 || height%2 == 0 {
		return nil, fmt.Errorf("GaussianBlur: %w: width and height must be odd and positive", core.ErrBadArgument)
	}

	naive, err := core.New(g, core.VariantGaussianBlurred, parent.Metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, GaussianBlurParams{Width: width, Height: height, SigmaX: sigmaX, SigmaY: sigmaY}, false, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	if parent.Variant == core.VariantConcat {
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return GaussianBlur(g, member, width, height, sigmaX, sigmaY)
		}); ok || err != nil {
			return fused, err
		}
	}

	return naive, nil
}
