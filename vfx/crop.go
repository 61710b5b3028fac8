package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// Crop constructs a Cropped clip over the rectangle [x1,y1,x2,y2), applying
// the Crop fusion/push rules against Crop, Resize, and Composite sources
// (spec.md §4.3.1).
func Crop(g *core.Graph, parent *core.Clip, x1, y1, x2, y2 int64) (*core.Clip, error) {
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("Crop: %w: x1<x2 and y1<y2 required", core.ErrBadArgument)
	}
	if x1 < 0 || y1 < 0 || uint32(x2) > parent.Metadata.Width || uint32(y2) > parent.Metadata.Height {
		return nil, fmt.Errorf("Crop: %w: rectangle exceeds source bounds", core.ErrOutOfRange)
	}

	params := CropParams{X1: x1, Y1: y1, X2: x2, Y2: y2}
	metadata := parent.Metadata
	metadata.Width = uint32(params.width())
	metadata.Height = uint32(params.height())

	// Crop resamples the pixel rectangle rather than returning a source
	// frame verbatim, so (unlike subclip/concat/reverse/sped/rate) it is not
	// an indirection (spec.md glossary).
	naive, err := core.New(g, core.VariantCropped, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{parent},
	}, params, false, parent.IsConstant)
	if err != nil {
		return nil, err
	}

	return canonicalCrop(g, naive, params)
}

func canonicalCrop(g *core.Graph, naive *core.Clip, p CropParams) (*core.Clip, error) {
	parent := singleParent(naive.Source)

	if parent.Variant == core.VariantConcat {
		if fused, ok, err := distributeOverConcat(g, naive, parent, func(member *core.Clip) (*core.Clip, error) {
			return Crop(g, member, p.X1, p.Y1, p.X2, p.Y2)
		}); ok || err != nil {
			return fused, err
		}
	}

	switch parent.Variant {
	case core.VariantCropped:
		return fuseCropOverCrop(g, naive, parent, p)
	case core.VariantResized:
		return pushCropThroughResize(g, naive, parent, p)
	case core.VariantComposite:
		return pushCropThroughComposite(g, naive, parent, p)
	default:
		return naive, nil
	}
}

// fuseCropOverCrop: offsets add; bounds re-validated against the
// grandparent.
func fuseCropOverCrop(g *core.Graph, naive, parent *core.Clip, p CropParams) (*core.Clip, error) {
	pp := parent.Params.(CropParams)
	grandparent := singleParent(parent.Source)

	fused := CropParams{
		X1: pp.X1 + p.X1, Y1: pp.Y1 + p.Y1,
		X2: pp.X1 + p.X2, Y2: pp.Y1 + p.Y2,
	}
	if fused.X1 < 0 || fused.Y1 < 0 || uint32(fused.X2) > grandparent.Metadata.Width || uint32(fused.Y2) > grandparent.Metadata.Height {
		return nil, fmt.Errorf("fuseCropOverCrop: %w", core.ErrOutOfRange)
	}

	retireNaive(g, naive)

	metadata := grandparent.Metadata
	metadata.Width = uint32(fused.width())
	metadata.Height = uint32(fused.height())
	return core.NewInheriting(g, naive, core.VariantCropped, metadata, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{grandparent},
	}, fused, false, grandparent.IsConstant)
}

// pushCropThroughResize propagates a crop rectangle through a resize
// proportionally: divide by the resize's scale factor and recompute.
func pushCropThroughResize(g *core.Graph, naive, parent *core.Clip, p CropParams) (*core.Clip, error) {
	rp := parent.Params.(ResizeParams)
	grandparent := singleParent(parent.Source)

	scaleX := float64(grandparent.Metadata.Width) / float64(parent.Metadata.Width)
	scaleY := float64(grandparent.Metadata.Height) / float64(parent.Metadata.Height)

	pushed := CropParams{
		X1: int64(float64(p.X1) * scaleX), Y1: int64(float64(p.Y1) * scaleY),
		X2: int64(float64(p.X2) * scaleX), Y2: int64(float64(p.Y2) * scaleY),
	}

	retireNaive(g, naive)

	croppedMeta := grandparent.Metadata
	croppedMeta.Width = uint32(pushed.width())
	croppedMeta.Height = uint32(pushed.height())
	cropped, err := core.NewInheriting(g, naive, core.VariantCropped, croppedMeta, core.Source{
		Kind: core.SourceParents, Parents: []*core.Clip{grandparent},
	}, pushed, false, grandparent.IsConstant)
	if err != nil {
		return nil, err
	}

	// Resize back to the originally requested crop output size.
	return Resize(g, cropped, uint32(p.width()), uint32(p.height()), rp.Interp)
}

// pushCropThroughComposite implements the three-case composite crop rule:
// fully inside the foreground, fully outside it, or straddling both.
func pushCropThroughComposite(g *core.Graph, naive, parent *core.Clip, p CropParams) (*core.Clip, error) {
	cp := parent.Params.(CompositeParams)
	bg := parent.Source.Parents[0]
	fg := parent.Source.Parents[1]

	fgX1, fgY1 := cp.X, cp.Y
	fgX2, fgY2 := cp.X+int64(fg.Metadata.Width), cp.Y+int64(fg.Metadata.Height)

	switch {
	case p.X1 >= fgX1 && p.Y1 >= fgY1 && p.X2 <= fgX2 && p.Y2 <= fgY2:
		// Fully inside fg: crop of fg alone.
		retireNaive(g, naive)
		return Crop(g, fg, p.X1-fgX1, p.Y1-fgY1, p.X2-fgX1, p.Y2-fgY1)
	case p.X2 <= fgX1 || p.X1 >= fgX2 || p.Y2 <= fgY1 || p.Y1 >= fgY2:
		// Fully outside fg: crop of bg alone.
		retireNaive(g, naive)
		return Crop(g, bg, p.X1, p.Y1, p.X2, p.Y2)
	default:
		// Straddling: bg.crop(...).composite(fg.crop(...), shifted point).
		retireNaive(g, naive)
		croppedBg, err := Crop(g, bg, p.X1, p.Y1, p.X2, p.Y2)
		if err != nil {
			return nil, err
		}

		// Overlap of the crop rectangle with fg, in fg's local coordinates.
		localX1 := maxInt64(0, p.X1-fgX1)
		localY1 := maxInt64(0, p.Y1-fgY1)
		localX2 := minInt64(int64(fg.Metadata.Width), p.X2-fgX1)
		localY2 := minInt64(int64(fg.Metadata.Height), p.Y2-fgY1)
		croppedFg, err := Crop(g, fg, localX1, localY1, localX2, localY2)
		if err != nil {
			return nil, err
		}

		// Where the overlap's top-left corner lands inside croppedBg.
		shiftedX := maxInt64(fgX1, p.X1) - p.X1
		shiftedY := maxInt64(fgY1, p.Y1) - p.Y1

		return Composite(g, croppedBg, croppedFg, shiftedX, shiftedY, cp.N1, cp.N2)
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
