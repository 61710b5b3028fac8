package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Blur constructs a Blurred clip with a box kernel of width x height pixels.
// The contract table (spec.md §4.3.1) names no push/fuse rule specific to
// Blur, so beyond distributing through Concat it is left as constructed —
// matching the table's `A | B` "do not rewrite" treatment for every
// unlisted (effect, source) pair.
func Blur(g *core.Graph, parent *core.Clip, width, height uint32) (*core.Clip, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("Blur: %w: width and height must be positive", core.ErrBadArgument)
	}

	naive, err := core.New(g, core.VariantBlurred, parent.Metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, BlurParams{Width: width, Height: height}, false, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	if parent.Variant == core.VariantConcat {
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Blur(g, member, width, height)
		}); ok || err != nil {
			return fused, err
		}
	}

	return naive, nil
}
