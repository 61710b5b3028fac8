package vfx

import "github.com/reflowfx/reflow/core"

// Greyscale constructs a Greyscale clip, annihilating into a single
// Greyscale when applied to an already-greyscale source (idempotent,
// spec.md §4.3.1) and distributing through Concat.
func Greyscale(g *core.Graph, parent *core.Clip) (*core.Clip, error) {
	naive, err := core.New(g, core.VariantGreyscale, parent.Metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, core.NoParams, false, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	if parent.Variant == core.VariantGreyscale {
		retireNaive(g, naive)
		return parent, nil
	}
	if parent.Variant == core.VariantConcat {
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Greyscale(g, member)
		}); ok || err != nil {
			return fused, err
		}
	}

	return naive, nil
}
