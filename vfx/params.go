package vfx

import (
	"github.com/cespare/xxhash/v2"

	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/easing"
)

// Interpolation names a resize kernel; the kernel itself is out of scope
// (core.Renderer's job), but the mode is part of a Resize node's identity
// (spec.md §4.2).
type Interpolation uint8

const (
	InterpolationArea Interpolation = iota
	InterpolationNearest
	InterpolationLinear
	InterpolationCubic
	InterpolationLanczos
)

// ResizeParams is Resize's parameter record: output dimensions and kernel.
type ResizeParams struct {
	Width, Height uint32
	Interp        Interpolation
}

func (p ResizeParams) Hash(h *xxhash.Digest) {
	core.WriteUint64(h, uint64(p.Width))
	core.WriteUint64(h, uint64(p.Height))
	core.WriteUint64(h, uint64(p.Interp))
}

func (p ResizeParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(ResizeParams)
	return ok && o == p
}

// area is used by the Resize↑/Resize↓ canonical-order comparison.
func (p ResizeParams) area() uint64 { return uint64(p.Width) * uint64(p.Height) }

// CropParams is Crop's parameter record: an axis-aligned rectangle,
// int-truncated before construction per spec.md §4.2.
type CropParams struct {
	X1, Y1, X2, Y2 int64
}

func (p CropParams) Hash(h *xxhash.Digest) {
	core.WriteInt64(h, p.X1)
	core.WriteInt64(h, p.Y1)
	core.WriteInt64(h, p.X2)
	core.WriteInt64(h, p.Y2)
}

func (p CropParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(CropParams)
	return ok && o == p
}

func (p CropParams) width() int64  { return p.X2 - p.X1 }
func (p CropParams) height() int64 { return p.Y2 - p.Y1 }

// BrightenParams is Brighten's parameter record: amount in [-1,1].
type BrightenParams struct {
	Amount float64
}

func (p BrightenParams) Hash(h *xxhash.Digest) { core.WriteFloat64(h, p.Amount) }

func (p BrightenParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(BrightenParams)
	return ok && o.Amount == p.Amount
}

// combine implements a⊕b = a+b-ab (both >=0) or a+b+ab (both <=0), spec.md
// §4.3.1's Brighten fuse rule.
func combineBrighten(a, b float64) (float64, bool) {
	if a >= 0 && b >= 0 {
		return a + b - a*b, true
	}
	if a <= 0 && b <= 0 {
		return a + b + a*b, true
	}
	return 0, false
}

// BlurParams is Blur's parameter record: kernel extent in pixels.
type BlurParams struct {
	Width, Height uint32
}

func (p BlurParams) Hash(h *xxhash.Digest) {
	core.WriteUint64(h, uint64(p.Width))
	core.WriteUint64(h, uint64(p.Height))
}

func (p BlurParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(BlurParams)
	return ok && o == p
}

// GaussianBlurParams is GaussianBlur's parameter record: kernel extent plus
// the two-axis sigma.
type GaussianBlurParams struct {
	Width, Height uint32
	SigmaX, SigmaY float64
}

func (p GaussianBlurParams) Hash(h *xxhash.Digest) {
	core.WriteUint64(h, uint64(p.Width))
	core.WriteUint64(h, uint64(p.Height))
	core.WriteFloat64(h, p.SigmaX)
	core.WriteFloat64(h, p.SigmaY)
}

func (p GaussianBlurParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(GaussianBlurParams)
	return ok && o == p
}

// RateParams is RateChanged's parameter record: the new output fps.
type RateParams struct {
	FPS float64
}

func (p RateParams) Hash(h *xxhash.Digest) { core.WriteFloat64(h, p.FPS) }

func (p RateParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(RateParams)
	return ok && o.FPS == p.FPS
}

// SpedParams is Sped's parameter record: the playback-speed scale factor.
type SpedParams struct {
	Scale float64
}

func (p SpedParams) Hash(h *xxhash.Digest) { core.WriteFloat64(h, p.Scale) }

func (p SpedParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(SpedParams)
	return ok && o.Scale == p.Scale
}

// SubClipParams is SubClip's parameter record: the half-open frame range
// [N1,N2) into the source.
type SubClipParams struct {
	N1, N2 uint64
}

func (p SubClipParams) Hash(h *xxhash.Digest) {
	core.WriteUint64(h, p.N1)
	core.WriteUint64(h, p.N2)
}

func (p SubClipParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(SubClipParams)
	return ok && o == p
}

func (p SubClipParams) length() uint64 { return p.N2 - p.N1 }

// CompositeParams is Composite's parameter record: the foreground's
// placement in the background's frame, and its active frame range.
type CompositeParams struct {
	X, Y   int64
	N1, N2 uint64
}

func (p CompositeParams) Hash(h *xxhash.Digest) {
	core.WriteInt64(h, p.X)
	core.WriteInt64(h, p.Y)
	core.WriteUint64(h, p.N1)
	core.WriteUint64(h, p.N2)
}

func (p CompositeParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(CompositeParams)
	return ok && o == p
}

// Origin names the edge a Slide transition's incoming clip enters from.
type Origin uint8

const (
	OriginTop Origin = iota
	OriginBottom
	OriginLeft
	OriginRight
)

// SlideParams is Slide's parameter record: the transition's origin edge,
// duration, and eased progress curve.
type SlideParams struct {
	Origin          Origin
	FrameCount      uint64
	Curve           easing.Curve
	TransitionOnly  bool
}

func (p SlideParams) Hash(h *xxhash.Digest) {
	core.WriteUint64(h, uint64(p.Origin))
	core.WriteUint64(h, p.FrameCount)
	core.WriteBool(h, p.TransitionOnly)
	p.Curve.Hash(h)
}

func (p SlideParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(SlideParams)
	if !ok {
		return false
	}
	return o.Origin == p.Origin && o.FrameCount == p.FrameCount &&
		o.TransitionOnly == p.TransitionOnly && o.Curve.Equal(p.Curve)
}

// TextParams is Text's parameter record.
type TextParams struct {
	Text                                  string
	Font                                  string
	Size                                  uint32
	ColorR, ColorG, ColorB, ColorA        uint8
	HasBackground                         bool
	BackgroundR, BackgroundG, BackgroundB uint8
	Bold, Italic, Underline, Antialias    bool
}

func (p TextParams) Hash(h *xxhash.Digest) {
	core.WriteString(h, p.Text)
	core.WriteString(h, p.Font)
	core.WriteUint64(h, uint64(p.Size))
	core.WriteUint64(h, uint64(p.ColorR))
	core.WriteUint64(h, uint64(p.ColorG))
	core.WriteUint64(h, uint64(p.ColorB))
	core.WriteUint64(h, uint64(p.ColorA))
	core.WriteBool(h, p.HasBackground)
	core.WriteUint64(h, uint64(p.BackgroundR))
	core.WriteUint64(h, uint64(p.BackgroundG))
	core.WriteUint64(h, uint64(p.BackgroundB))
	core.WriteBool(h, p.Bold)
	core.WriteBool(h, p.Italic)
	core.WriteBool(h, p.Underline)
	core.WriteBool(h, p.Antialias)
}

func (p TextParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(TextParams)
	return ok && o == p
}

// FxParams identifies an arbitrary user-supplied frame transform by name:
// two Fx nodes are only ever pseudo-equal if constructed with the same name,
// since the function itself carries no structural identity (spec.md §9,
// "do not compare by function identity" — the same rationale easing.Curve
// exists for).
type FxParams struct {
	Name string
}

func (p FxParams) Hash(h *xxhash.Digest) { core.WriteString(h, p.Name) }

func (p FxParams) PseudoEqual(other core.Params) bool {
	o, ok := other.(FxParams)
	return ok && o.Name == p.Name
}
