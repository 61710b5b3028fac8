package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflowfx/reflow/core"
)

func TestGraph_NewLeafRegistersOnConstruction(t *testing.T) {
	g := core.NewGraph()
	clip := newLoaded(t, g, "/videos/a.mp4")
	assert.True(t, g.IsLeaf(clip))
	assert.Len(t, g.Leaves(), 1)
}

func TestGraph_ParentDemotedWhenChildConstructed(t *testing.T) {
	g := core.NewGraph()
	parent := newLoaded(t, g, "/videos/a.mp4")
	assert.True(t, g.IsLeaf(parent))

	child, err := core.New(g, core.VariantGreyscale, parent.Metadata, core.Source{Kind: core.SourceParents, Parents: []*core.Clip{parent}}, core.NoParams, false, false)
	assert.NoError(t, err)

	assert.False(t, g.IsLeaf(parent))
	assert.True(t, g.IsLeaf(child))
	assert.Equal(t, 1, parent.ChildCount())
}

func TestGraph_RemoveLeaf_NotALeaf(t *testing.T) {
	g := core.NewGraph()
	parent := newLoaded(t, g, "/videos/a.mp4")
	_, err := core.New(g, core.VariantGreyscale, parent.Metadata, core.Source{Kind: core.SourceParents, Parents: []*core.Clip{parent}}, core.NoParams, false, false)
	assert.NoError(t, err)

	err = g.RemoveLeaf(parent)
	assert.ErrorIs(t, err, core.ErrNotALeaf)
}

func TestGraph_DomainMismatch(t *testing.T) {
	g1 := core.NewGraph()
	g2 := core.NewGraph()
	a := newLoaded(t, g1, "/videos/a.mp4")
	b := newLoaded(t, g2, "/videos/b.mp4")

	_, err := core.New(g1, core.VariantGreyscale, a.Metadata, core.Source{Kind: core.SourceParents, Parents: []*core.Clip{a, b}}, core.NoParams, false, false)
	assert.ErrorIs(t, err, core.ErrGraphDomainMismatch)
}

func TestGraph_RetireAndReleaseSource(t *testing.T) {
	g := core.NewGraph()
	parent := newLoaded(t, g, "/videos/a.mp4")
	child, err := core.New(g, core.VariantGreyscale, parent.Metadata, core.Source{Kind: core.SourceParents, Parents: []*core.Clip{parent}}, core.NoParams, false, false)
	assert.NoError(t, err)
	assert.False(t, g.IsLeaf(parent))

	// Simulate a rewrite discarding child in favour of directly reusing
	// parent (an annihilate rule): retire child, release its hold on parent.
	assert.NoError(t, g.Retire(child))
	g.ReleaseSource(parent)

	assert.False(t, g.IsLeaf(child))
	assert.True(t, g.IsLeaf(parent))
	assert.Equal(t, 0, parent.ChildCount())
}

func TestGraph_LeavesOrderedByTimestamp(t *testing.T) {
	g := core.NewGraph()
	a := newLoaded(t, g, "/videos/a.mp4")
	b := newLoaded(t, g, "/videos/b.mp4")
	c := newLoaded(t, g, "/videos/c.mp4")

	leaves := g.Leaves()
	assert.Equal(t, []*core.Clip{a, b, c}, leaves)
}

func TestGraph_CurrentSwapReset(t *testing.T) {
	original := core.Current()
	defer core.Swap(original)

	g1 := core.NewGraph()
	old := core.Swap(g1)
	assert.Same(t, original, old)
	assert.Same(t, g1, core.Current())

	newLoaded(t, core.Current(), "/videos/a.mp4")
	assert.Len(t, core.Current().Leaves(), 1)

	core.Reset()
	assert.Len(t, core.Current().Leaves(), 0)
}

func TestGraph_ForcedPreviewNodes(t *testing.T) {
	g := core.NewGraph()
	parent := newLoaded(t, g, "/videos/a.mp4")
	child, err := core.New(g, core.VariantGreyscale, parent.Metadata, core.Source{Kind: core.SourceParents, Parents: []*core.Clip{parent}}, core.NoParams, false, false)
	assert.NoError(t, err)

	g.AddForcedPreviewNode(parent)
	assert.True(t, g.HasForcedPreviewNodes())

	g.UnifyPreviewNodes()
	assert.False(t, g.HasForcedPreviewNodes())
	assert.True(t, g.IsLeaf(parent))
	assert.True(t, g.IsLeaf(child))
}
