package rewrite

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/vfx"
)

// FixupResizeToViewport appends a Resize to every current leaf whose size
// doesn't match (width,height), promoting the result to leaf in its place
// (spec.md §4.3.3). When the fix-up enlarged the leaf, the Resize fusion
// rules in vfx.Resize let a later resize back to the original size
// annihilate against the fix-up resize; a fix-up that shrank the leaf does
// not fuse with a later enlarging Resize.
func FixupResizeToViewport(g *core.Graph, width, height uint32, interp vfx.Interpolation) error {
	for _, leaf := range g.Leaves() {
		if leaf.Metadata.Width == width && leaf.Metadata.Height == height {
			continue
		}

		resized, err := vfx.Resize(g, leaf, width, height, interp)
		if err != nil {
			return fmt.Errorf("FixupResizeToViewport: %w", err)
		}
		resized.Timestamp = leaf.Timestamp
	}
	return nil
}
