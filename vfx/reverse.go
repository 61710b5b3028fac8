package vfx

import "github.com/reflowfx/reflow/core"

// Reverse constructs a Reversed clip, annihilating against a Reverse source
// and pushing through SubClip per spec.md §4.3.1: reverse(subclip(n1,n2)) ==
// subclip(frame_count-n2, frame_count-n1) of the reversed grandparent, where
// frame_count is the grandparent's.
func Reverse(g *core.Graph, parent *core.Clip) (*core.Clip, error) {
	if parent.Variant == core.VariantSlideTransition {
		return nil, errUnsupportedComposition("Reverse", "SlideTransition")
	}

	naive, err := core.New(g, core.VariantReversed, parent.Metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, core.NoParams, true, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	switch parent.Variant {
	case core.VariantReversed:
		grandparent := singleParent(parent.Source)
		retireNaive(g, naive)
		return grandparent, nil
	case core.VariantSubClip:
		sp := parent.Params.(SubClipParams)
		grandparent := singleParent(parent.Source)
		retireNaive(g, naive)
		reversedGrandparent, err := Reverse(g, grandparent)
		if err != nil {
			return nil, err
		}
		fc := grandparent.Metadata.FrameCount
		return SubClip(g, reversedGrandparent, fc-sp.N2, fc-sp.N1)
	case core.VariantConcat:
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Reverse(g, member)
		}); ok || err != nil {
			return fused, err
		}
		return naive, nil
	default:
		return naive, nil
	}
}
