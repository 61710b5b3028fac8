package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// SubClip constructs a clip restricted to the half-open frame range
// [n1,n2) of parent. Fuses against a SubClip source by offset composition
// (x.subclip(a,b).subclip(c,d) == x.subclip(a+c,a+d)) and splits against a
// Concat source via binary search on the member prefix-sum (spec.md
// §4.3.1), grounded on the original engine's vfx/subclip.py.
func SubClip(g *core.Graph, parent *core.Clip, n1, n2 uint64) (*core.Clip, error) {
	if parent.Variant == core.VariantSlideTransition {
		return nil, errUnsupportedComposition("SubClip", "SlideTransition")
	}
	if n1 >= n2 || n2 > parent.Metadata.FrameCount {
		return nil, fmt.Errorf("SubClip: %w: bad range [%d,%d) over %d frames", core.ErrOutOfRange, n1, n2, parent.Metadata.FrameCount)
	}

	metadata := parent.Metadata
	metadata.FrameCount = n2 - n1
	params := SubClipParams{N1: n1, N2: n2}

	naive, err := core.New(g, core.VariantSubClip, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, params, true, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	switch parent.Variant {
	case core.VariantSubClip:
		pp := parent.Params.(SubClipParams)
		grandparent := singleParent(parent.Source)
		retireNaive(g, naive)
		return SubClip(g, grandparent, pp.N1+n1, pp.N1+n2)
	case core.VariantConcat:
		retireNaive(g, naive)
		return splitSubClipThroughConcat(g, parent, n1, n2)
	default:
		return naive, nil
	}
}

// splitSubClipThroughConcat locates the concat members spanning [n1,n2) via
// binary search on the prefix-sum of member frame counts, subclips the
// boundary members to their overlapping portion, and concatenates the
// result (flattened by the rewrite engine's later global pass).
func splitSubClipThroughConcat(g *core.Graph, concat *core.Clip, n1, n2 uint64) (*core.Clip, error) {
	members := concat.Source.Parents
	prefix := make([]uint64, len(members)+1)
	for i, m := range members {
		prefix[i+1] = prefix[i] + m.Metadata.FrameCount
	}

	// Smallest index whose prefix sum exceeds n1; largest boundary whose
	// prefix sum is < n2 — both via binary search, per spec's explicit
	// call-out that this split is located by bisection, not linear scan.
	startIdx := upperBound(prefix, n1) - 1
	endIdx := upperBound(prefix, n2-1) - 1

	var pieces []*core.Clip
	for i := startIdx; i <= endIdx; i++ {
		lo := uint64(0)
		if i == startIdx {
			lo = n1 - prefix[i]
		}
		hi := members[i].Metadata.FrameCount
		if i == endIdx {
			hi = n2 - prefix[i]
		}
		if lo == 0 && hi == members[i].Metadata.FrameCount {
			pieces = append(pieces, members[i])
			continue
		}
		piece, err := SubClip(g, members[i], lo, hi)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}

	if len(pieces) == 1 {
		return pieces[0], nil
	}
	return Concat(g, pieces[0], pieces[1:]...)
}

// upperBound returns the index of the first element of sorted prefix sums
// strictly greater than target.
func upperBound(prefix []uint64, target uint64) int {
	lo, hi := 0, len(prefix)
	for lo < hi {
		mid := (lo + hi) / 2
		if prefix[mid] <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
