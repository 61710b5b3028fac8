package vfx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflowfx/reflow/core"
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

// Scenario A (spec.md §8): two successive Brighten calls of the same sign
// fuse into a single Brightened node equivalent to the combined amount.
func TestBrighten_FusesBySign(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))

	fused, err := vfx.Brighten(g, x, 0.3)
	assert.NoError(t, err)
	fused, err = vfx.Brighten(g, fused, 0.3)
	assert.NoError(t, err)

	direct, err := vfx.Brighten(g, x, 0.51)
	assert.NoError(t, err)

	assert.Equal(t, direct.Hash(), fused.Hash())
	assert.True(t, direct.Equal(fused))
}

func TestBrighten_OppositeSignsDoNotFuse(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))

	a, err := vfx.Brighten(g, x, 0.5)
	assert.NoError(t, err)
	b, err := vfx.Brighten(g, a, -0.5)
	assert.NoError(t, err)

	assert.Equal(t, core.VariantBrightened, b.Variant)
	assert.Same(t, a, singleParentOf(t, b))
}

func TestBrighten_PushesThroughGreyscale(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))

	grey, err := vfx.Greyscale(g, x)
	assert.NoError(t, err)
	result, err := vfx.Brighten(g, grey, 0.2)
	assert.NoError(t, err)

	// Pushed inside: result is Greyscale(Brighten(x,0.2)), not
	// Brighten(Greyscale(x)).
	assert.Equal(t, core.VariantGreyscale, result.Variant)
	inner := singleParentOf(t, result)
	assert.Equal(t, core.VariantBrightened, inner.Variant)
}

func TestGreyscale_Idempotent(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))

	once, err := vfx.Greyscale(g, x)
	assert.NoError(t, err)
	twice, err := vfx.Greyscale(g, once)
	assert.NoError(t, err)

	assert.Same(t, once, twice)
}

func TestResize_DownThenDown_Fuses(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(400, 400, 10, 30))

	down1, err := vfx.Resize(g, x, 200, 200, vfx.InterpolationArea)
	assert.NoError(t, err)
	down2, err := vfx.Resize(g, down1, 100, 100, vfx.InterpolationArea)
	assert.NoError(t, err)

	direct, err := vfx.Resize(g, x, 100, 100, vfx.InterpolationArea)
	assert.NoError(t, err)

	assert.Equal(t, direct.Hash(), down2.Hash())
	assert.Same(t, x, singleParentOf(t, down2))
}

// Resize↑ followed by Resize↓ back to the original size fuses and
// annihilates to the original clip itself.
func TestResize_UpThenDownToOriginal_Annihilates(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))

	up, err := vfx.Resize(g, x, 200, 200, vfx.InterpolationArea)
	assert.NoError(t, err)
	back, err := vfx.Resize(g, up, 100, 100, vfx.InterpolationArea)
	assert.NoError(t, err)

	assert.Same(t, x, back)
}

// Resize↑ never fuses against a source that was itself Resize↓: the naive
// node stands unfused.
func TestResize_UpOverDown_DoesNotFuse(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(400, 400, 10, 30))

	down, err := vfx.Resize(g, x, 200, 200, vfx.InterpolationArea)
	assert.NoError(t, err)
	up, err := vfx.Resize(g, down, 400, 400, vfx.InterpolationArea)
	assert.NoError(t, err)

	assert.Equal(t, core.VariantResized, up.Variant)
	assert.Same(t, down, singleParentOf(t, up))
}

func TestCrop_FusesOverCrop(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(400, 400, 10, 30))

	outer, err := vfx.Crop(g, x, 10, 10, 300, 300)
	assert.NoError(t, err)
	inner, err := vfx.Crop(g, outer, 5, 5, 100, 100)
	assert.NoError(t, err)

	direct, err := vfx.Crop(g, x, 15, 15, 110, 110)
	assert.NoError(t, err)

	assert.Equal(t, direct.Hash(), inner.Hash())
	assert.Same(t, x, singleParentOf(t, inner))
}

// Scenario B (spec.md §8): resize-then-crop and crop-then-resize over
// proportional rectangles produce structurally identical DAGs.
func TestCrop_ThroughResize_MatchesCropFirst(t *testing.T) {
	g1 := core.NewGraph()
	x1 := newLoaded(t, g1, "/a.mp4", md(400, 400, 10, 30))
	resized, err := vfx.Resize(g1, x1, 200, 200, vfx.InterpolationArea)
	assert.NoError(t, err)
	a, err := vfx.Crop(g1, resized, 0, 0, 100, 100)
	assert.NoError(t, err)

	g2 := core.NewGraph()
	x2 := newLoaded(t, g2, "/a.mp4", md(400, 400, 10, 30))
	cropped, err := vfx.Crop(g2, x2, 0, 0, 200, 200)
	assert.NoError(t, err)
	b, err := vfx.Resize(g2, cropped, 100, 100, vfx.InterpolationArea)
	assert.NoError(t, err)

	assert.Equal(t, b.Hash(), a.Hash())
	assert.True(t, a.PseudoEqual(b))
}

func TestCrop_ThroughComposite_FullyInsideForeground(t *testing.T) {
	g := core.NewGraph()
	bg := newLoaded(t, g, "/bg.mp4", md(400, 400, 10, 30))
	fg := newLoaded(t, g, "/fg.mp4", md(100, 100, 10, 30))

	comp, err := vfx.Composite(g, bg, fg, 50, 50, 0, 10)
	assert.NoError(t, err)

	result, err := vfx.Crop(g, comp, 60, 60, 120, 120)
	assert.NoError(t, err)

	assert.Equal(t, core.VariantCropped, result.Variant)
	assert.Same(t, fg, singleParentOf(t, result))
}

func TestCrop_ThroughComposite_FullyOutsideForeground(t *testing.T) {
	g := core.NewGraph()
	bg := newLoaded(t, g, "/bg.mp4", md(400, 400, 10, 30))
	fg := newLoaded(t, g, "/fg.mp4", md(100, 100, 10, 30))

	comp, err := vfx.Composite(g, bg, fg, 50, 50, 0, 10)
	assert.NoError(t, err)

	result, err := vfx.Crop(g, comp, 200, 200, 300, 300)
	assert.NoError(t, err)

	assert.Equal(t, core.VariantCropped, result.Variant)
	assert.Same(t, bg, singleParentOf(t, result))
}

func TestCrop_ThroughComposite_Straddling(t *testing.T) {
	g := core.NewGraph()
	bg := newLoaded(t, g, "/bg.mp4", md(400, 400, 10, 30))
	fg := newLoaded(t, g, "/fg.mp4", md(100, 100, 10, 30))

	comp, err := vfx.Composite(g, bg, fg, 50, 50, 0, 10)
	assert.NoError(t, err)

	result, err := vfx.Crop(g, comp, 0, 0, 100, 100)
	assert.NoError(t, err)

	assert.Equal(t, core.VariantComposite, result.Variant)
}

func TestSubClip_FusesAdditively(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 100, 30))

	outer, err := vfx.SubClip(g, x, 10, 80)
	assert.NoError(t, err)
	inner, err := vfx.SubClip(g, outer, 5, 20)
	assert.NoError(t, err)

	direct, err := vfx.SubClip(g, x, 15, 30)
	assert.NoError(t, err)

	assert.Equal(t, direct.Hash(), inner.Hash())
}

func TestReverse_Annihilates(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 10, 30))

	once, err := vfx.Reverse(g, x)
	assert.NoError(t, err)
	twice, err := vfx.Reverse(g, once)
	assert.NoError(t, err)

	assert.Same(t, x, twice)
}

func TestReverse_PushesThroughSubClip(t *testing.T) {
	g := core.NewGraph()
	x := newLoaded(t, g, "/a.mp4", md(100, 100, 100, 30))

	sub, err := vfx.SubClip(g, x, 10, 30)
	assert.NoError(t, err)
	result, err := vfx.Reverse(g, sub)
	assert.NoError(t, err)

	// reverse(subclip(10,30)) over a 100-frame source == subclip(70,90) of
	// the reversed source.
	assert.Equal(t, core.VariantSubClip, result.Variant)
	parent := singleParentOf(t, result)
	assert.Equal(t, core.VariantReversed, parent.Variant)
	assert.Same(t, x, singleParentOf(t, parent))
	sp := result.Params.(vfx.SubClipParams)
	assert.Equal(t, uint64(70), sp.N1)
	assert.Equal(t, uint64(90), sp.N2)
}

func singleParentOf(t *testing.T, clip *core.Clip) *core.Clip {
	t.Helper()
	assert.Equal(t, core.SourceParents, clip.Source.Kind)
	assert.Len(t, clip.Source.Parents, 1)
	return clip.Source.Parents[0]
}
