package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Fx wraps an arbitrary user-supplied frame transform under a caller-chosen
// name (spec.md §6, `clip.fx(f, ...)`). Fx nodes never participate in
// CanonicalOrder — an opaque function has no push/fuse rule against any
// source variant — so construction is a plain wrap.
func Fx(g *core.Graph, parent *core.Clip, name string) (*core.Clip, error) {
	if name == "" {
		return nil, fmt.Errorf("Fx: %w: name must be non-empty", core.ErrBadArgument)
	}

	return core.New(g, core.VariantFx, parent.Metadata, core.Source{
		Kind:    core.SourceParents,
		Parents: []*core.Clip{parent},
	}, FxParams{Name: name}, false, false)
}
