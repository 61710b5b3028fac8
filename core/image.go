package core

// Image is an opaque rendered frame. Pixel representation and the kernels
// that produce/transform pixels (resize interpolation, blur, crop slicing,
// compositing alpha blend, text rasterisation) are out of scope for this
// engine per spec.md §1 Non-goals ("image pixel kernels"); the engine only
// decides *whether* a frame needs rendering and *whether* to cache the
// result once rendered. Nothing in this module produces pixels.
type Image struct {
	// Bytes holds the encoded/raw pixel payload. The engine treats this as
	// opaque data it can size (len(Bytes)) for cache accounting but never
	// interprets.
	Bytes []byte
}

// Size reports the number of bytes this image occupies in the cache, used by
// eviction policies to enforce the byte bound passed to cache.NewCache.
func (img Image) Size() int { return len(img.Bytes) }

// Equal reports byte-for-byte equality, used by cache-soundness tests
// (spec.md §8 property 7) rather than by any rendering code path.
func (img Image) Equal(other Image) bool {
	if len(img.Bytes) != len(other.Bytes) {
		return false
	}
	for i, b := range img.Bytes {
		if other.Bytes[i] != b {
			return false
		}
	}
	return true
}

// Renderer produces the actual pixels for a Clip's frame n. It is an
// interface for a host application's decoding and compositing code; nothing
// in this module implements, accepts or calls a Renderer.
type Renderer interface {
	Render(clip *Clip, n uint64) (Image, error)
}
