package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/rewrite"
	"github.com/reflowfx/reflow/vfx"
)

func md(w, h uint32, frames uint64, fps float64) core.Metadata {
	return core.Metadata{Width: w, Height: h, FrameCount: frames, FPS: fps}
}

func newLoaded(t *testing.T, g *core.Graph, path string, m core.Metadata) *core.Clip {
	t.Helper()
	clip, err := core.New(g, core.VariantLoaded, m, core.Source{Kind: core.SourceFile, FilePath: path}, core.NoParams, false, false)
	assert.NoError(t, err)
	return clip
}

// Scenario C (spec.md §8): a right-leaning chain of binary concats and a
// single n-ary concat over the same members flatten to identical structure.
func TestFlattenConcats_ChainedVsNary(t *testing.T) {
	g1 := core.NewGraph()
	x1 := newLoaded(t, g1, "/a.mp4", md(100, 100, 10, 30))
	chained, err := vfx.Concat(g1, x1, x1)
	assert.NoError(t, err)
	chained, err = vfx.Concat(g1, chained, x1)
	assert.NoError(t, err)
	chained, err = vfx.Concat(g1, chained, x1)
	assert.NoError(t, err)
	assert.NoError(t, rewrite.FlattenConcats(g1))

	g2 := core.NewGraph()
	x2 := newLoaded(t, g2, "/a.mp4", md(100, 100, 10, 30))
	nary, err := vfx.Concat(g2, x2, x2, x2, x2)
	assert.NoError(t, err)
	assert.NoError(t, rewrite.FlattenConcats(g2))

	leaves1 := g1.Leaves()
	leaves2 := g2.Leaves()
	assert.Len(t, leaves1, 1)
	assert.Len(t, leaves2, 1)
	assert.Equal(t, leaves1[0].Hash(), leaves2[0].Hash())
	assert.Equal(t, nary.Metadata.FrameCount, leaves1[0].Metadata.FrameCount)

	assert.Len(t, leaves1[0].Source.Parents, 4)
	for _, m := range leaves1[0].Source.Parents {
		assert.NotEqual(t, core.VariantConcat, m.Variant)
	}
}

func TestFlattenConcats_NoopWhenAlreadyFlat(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))
	flat, err := vfx.Concat(g, x, x, x)
	assert.NoError(t, err)
	assert.NoError(t, rewrite.FlattenConcats(g))

	leaves := g.Leaves()
	assert.Len(t, leaves, 1)
	assert.Same(t, flat, leaves[0])
}

func TestFlattenConcats_SkipsWhileForcedPreviewPending(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))
	chained, err := vfx.Concat(g, x, x)
	assert.NoError(t, err)
	chained, err = vfx.Concat(g, chained, x)
	assert.NoError(t, err)

	g.AddForcedPreviewNode(x)
	assert.NoError(t, rewrite.FlattenConcats(g))

	leaves := g.Leaves()
	assert.Len(t, leaves, 1)
	assert.Same(t, chained, leaves[0])
	assert.Len(t, chained.Source.Parents, 2)
}

func TestFixupResizeToViewport_ResizesMismatchedLeaves(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(400, 400, 10, 30))

	assert.NoError(t, rewrite.FixupResizeToViewport(g, 1280, 720, vfx.InterpolationArea))

	leaves := g.Leaves()
	assert.Len(t, leaves, 1)
	assert.Equal(t, core.VariantResized, leaves[0].Variant)
	assert.Equal(t, uint32(1280), leaves[0].Metadata.Width)
	assert.Equal(t, uint32(720), leaves[0].Metadata.Height)
	assert.Same(t, x, leaves[0].Source.Parents[0])
}

func TestFixupResizeToViewport_SkipsMatchingLeaves(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(1280, 720, 10, 30))

	assert.NoError(t, rewrite.FixupResizeToViewport(g, 1280, 720, vfx.InterpolationArea))

	leaves := g.Leaves()
	assert.Len(t, leaves, 1)
	assert.Same(t, x, leaves[0])
}

// Resizing a previously fixed-up leaf back to its pre-fixup size annihilates
// cleanly against the fix-up resize, per rewrite.FixupResizeToViewport's doc
// comment.
func TestFixupResizeToViewport_AnnihilatesOnResizeBack(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(640, 360, 10, 30))

	assert.NoError(t, rewrite.FixupResizeToViewport(g, 1280, 720, vfx.InterpolationArea))
	leaves := g.Leaves()
	assert.Len(t, leaves, 1)
	fixedUp := leaves[0]

	back, err := vfx.Resize(g, fixedUp, 640, 360, vfx.InterpolationArea)
	assert.NoError(t, err)
	assert.Same(t, x, back)
}
