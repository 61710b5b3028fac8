// Package easing tabulates gween/ease tween functions into comparable
// curves so that identity (core.hash/pseudo-equality) never depends on Go
// closure/function-pointer identity, only on the curve's observable shape.
//
// The spec calls this out explicitly: "Do not compare by function identity.
// Pre-tabulate the function's output over [0, frame_count) and use that
// vector in both hash and equality." gween/ease (github.com/tanema/gween,
// seen driving clip tweening in phanxgames-willow) is used here because its
// ease.TweenFunc has exactly the t/b/c/d signature the original engine's own
// easing functions used.
package easing

import (
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/tanema/gween/ease"
)

// Func is the shape every easing function in this engine takes: given
// elapsed time t, start value b, total change c, and duration d, return the
// current value. gween/ease's TweenFunc satisfies this directly.
type Func = ease.TweenFunc

// Curve is a tabulated easing function: its output over [0, frameCount),
// evaluated once at construction time so it can be hashed and compared by
// value instead of by function pointer.
type Curve struct {
	values []float32
}

// Tabulate evaluates fn(i, 0, 1, frameCount) for i in [0, frameCount) and
// returns the resulting Curve. frameCount must be positive.
func Tabulate(fn Func, frameCount uint64) Curve {
	if fn == nil || frameCount == 0 {
		return Curve{}
	}
	values := make([]float32, frameCount)
	d := float32(frameCount)
	for i := uint64(0); i < frameCount; i++ {
		values[i] = fn(float32(i), 0, 1, d)
	}
	return Curve{values: values}
}

// At returns the tabulated value at index i, or 0 if i is out of range.
func (c Curve) At(i uint64) float32 {
	if i >= uint64(len(c.values)) {
		return 0
	}
	return c.values[i]
}

// Len reports how many samples were tabulated.
func (c Curve) Len() int { return len(c.values) }

// Equal reports whether two curves were tabulated to the same values.
func (c Curve) Equal(other Curve) bool {
	if len(c.values) != len(other.values) {
		return false
	}
	for i, v := range c.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}

// Hash folds the tabulated values into a running xxhash digest, matching the
// byte-oriented hashing style core.WriteUint64 and its siblings use for
// every other parameter.
func (c Curve) Hash(digest *xxhash.Digest) {
	buf := make([]byte, 4)
	for _, v := range c.values {
		bits := math.Float32bits(v)
		buf[0] = byte(bits)
		buf[1] = byte(bits >> 8)
		buf[2] = byte(bits >> 16)
		buf[3] = byte(bits >> 24)
		_, _ = digest.Write(buf)
	}
}
