package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/easing"
)

// Slide constructs a slide-transition clip: parent plays, then over
// frameCount frames successor slides in from origin while easing curve fn
// drives progress, finally successor plays alone — unless transitionOnly,
// in which case only the transition window itself is the clip's output
// (spec.md §6).
func Slide(g *core.Graph, parent, successor *core.Clip, origin Origin, frameCount uint64, fn easing.Func, transitionOnly bool) (*core.Clip, error) {
	if parent.Graph != successor.Graph {
		return nil, fmt.Errorf("Slide: %w", core.ErrGraphDomainMismatch)
	}
	if frameCount == 0 {
		return nil, fmt.Errorf("Slide: %w: frame_count must be > 0", core.ErrBadArgument)
	}

	curve := easing.Tabulate(fn, frameCount)
	params := SlideParams{Origin: origin, FrameCount: frameCount, Curve: curve, TransitionOnly: transitionOnly}

	metadata := parent.Metadata
	if transitionOnly {
		metadata.FrameCount = frameCount
	} else {
		metadata.FrameCount = parent.Metadata.FrameCount + successor.Metadata.FrameCount
	}

	return core.New(g, core.VariantSlideTransition, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent, successor},
	}, params, false, false)
}
