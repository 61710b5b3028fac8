package vfx

import (
	"fmt"
	"os"

	"github.com/reflowfx/reflow/core"
)

// Load constructs a root clip backed directly by the file at filepath,
// mirroring load() in the original engine's roots/load.py. Metadata (size,
// frame count, fps) is supplied by the caller's media prober rather than
// decoded here — codec/container parsing is out of scope (spec.md §1).
func Load(g *core.Graph, filepath string, metadata core.Metadata) (*core.Clip, error) {
	if _, err := os.Stat(filepath); err != nil {
		return nil, fmt.Errorf("Load(%s): %w", filepath, core.ErrFileNotFound)
	}
	if metadata.FrameCount == 0 {
		return nil, fmt.Errorf("Load(%s): %w: frame_count must be > 0", filepath, core.ErrBadArgument)
	}

	return core.New(g, core.VariantLoaded, metadata, core.Source{
		Kind:     core.SourceFile,
		FilePath: filepath,
	}, core.NoParams, false, false)
}
