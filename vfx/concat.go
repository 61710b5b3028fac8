package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Concat concatenates clips in order, auto-scaling every member after the
// first to the first member's dimensions (spec.md §6). At least one clip
// beyond the first is required.
func Concat(g *core.Graph, first *core.Clip, rest ...*core.Clip) (*core.Clip, error) {
	if len(rest) == 0 {
		return nil, fmt.Errorf("Concat: %w: at least one other clip required", core.ErrBadArgument)
	}

	members := make([]*core.Clip, 0, 1+len(rest))
	members = append(members, first)
	var frameCount uint64
	for _, m := range rest {
		scaled := m
		if m.Metadata.Width != first.Metadata.Width || m.Metadata.Height != first.Metadata.Height {
			var err error
			scaled, err = Resize(g, m, first.Metadata.Width, first.Metadata.Height, InterpolationArea)
			if err != nil {
				return nil, fmt.Errorf("Concat: %w", err)
			}
		}
		members = append(members, scaled)
	}
	for _, m := range members {
		frameCount += m.Metadata.FrameCount
	}

	metadata := first.Metadata
	metadata.FrameCount = frameCount

	return core.New(g, core.VariantConcat, metadata, core.Source{
		Kind: core.SourceParents, Parents: members,
	}, core.NoParams, true, false)
}

// distributeOverConcat implements "any pushable effect against Concat:
// distribute — push into each concat member" (spec.md §4.3.1). When parent
// is a Concat, naive is discarded and replaced by a fresh Concat of apply(m)
// for each member m; otherwise ok is false and the caller should fall
// through to its own rule.
func distributeOverConcat(g *core.Graph, naive, parent *core.Clip, apply func(member *core.Clip) (*core.Clip, error)) (*core.Clip, bool, error) {
	if parent.Variant != core.VariantConcat {
		return nil, false, nil
	}

	members := parent.Source.Parents
	pushed := make([]*core.Clip, len(members))
	for i, m := range members {
		c, err := apply(m)
		if err != nil {
			return nil, true, fmt.Errorf("distributeOverConcat: %w", err)
		}
		pushed[i] = c
	}

	retireNaive(g, naive)

	result, err := Concat(g, pushed[0], pushed[1:]...)
	return result, true, err
}
