package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// TextOptions mirrors the text() DSL call's keyword options (spec.md §6).
type TextOptions struct {
	Font                                  string
	Size                                  uint32
	ColorR, ColorG, ColorB, ColorA        uint8
	HasBackground                         bool
	BackgroundR, BackgroundG, BackgroundB uint8
	Bold, Italic, Underline               bool
	Antialias                             bool
}

// DefaultTextOptions matches the DSL's documented defaults: size 12, black
// text, no background, antialiasing on.
func DefaultTextOptions() TextOptions {
	return TextOptions{Size: 12, ColorA: 255, Antialias: true}
}

// Text constructs a constant single-frame clip rendering the given string,
// sized width x height (the caller's text layout engine determines this —
// rasterisation itself is out of scope, spec.md §1). frameCount/fps describe
// how long the rendered image is displayed when used as a clip.
func Text(g *core.Graph, text string, width, height uint32, frameCount uint64, fps float64, opts TextOptions) (*core.Clip, error) {
	if text == "" {
		return nil, fmt.Errorf("Text: %w: text must be non-empty", core.ErrBadArgument)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("Text: %w: width and height must be > 0", core.ErrBadArgument)
	}
	if frameCount == 0 {
		return nil, fmt.Errorf("Text: %w: frame_count must be > 0", core.ErrBadArgument)
	}

	metadata := core.Metadata{Width: width, Height: height, FrameCount: frameCount, FPS: fps}
	params := TextParams{
		Text: text, Font: opts.Font, Size: opts.Size,
		ColorR: opts.ColorR, ColorG: opts.ColorG, ColorB: opts.ColorB, ColorA: opts.ColorA,
		HasBackground: opts.HasBackground,
		BackgroundR:   opts.BackgroundR, BackgroundG: opts.BackgroundG, BackgroundB: opts.BackgroundB,
		Bold: opts.Bold, Italic: opts.Italic, Underline: opts.Underline, Antialias: opts.Antialias,
	}

	return core.New(g, core.VariantText, metadata, core.Source{Kind: core.SourceNone}, params, false, true)
}
