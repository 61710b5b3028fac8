package core

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Metadata carries the properties every Clip variant exposes regardless of
// how its frames are produced, mirroring VideoClipMetadata in the original
// engine (size, frameCount, fps).
type Metadata struct {
	Width, Height uint32
	FrameCount    uint64
	FPS           float64
}

// Equal reports whether two Metadata values are identical (part of
// pseudo-equality for every variant, per spec.md §4.2).
func (m Metadata) Equal(other Metadata) bool {
	return m.Width == other.Width && m.Height == other.Height &&
		m.FrameCount == other.FrameCount && m.FPS == other.FPS
}

func (m Metadata) hash(h *xxhash.Digest) {
	writeUint64(h, uint64(m.Width))
	writeUint64(h, uint64(m.Height))
	writeUint64(h, m.FrameCount)
	writeFloat64(h, m.FPS)
}

// writeUint64/writeFloat64/writeString/writeBool append a canonical encoding
// of v to h. Every variant's hash() implementation composes these in a fixed
// field order so that structurally identical clips always hash identically
// regardless of construction path (spec.md §4.2, §8 property 2).
func writeUint64(h *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

func writeInt64(h *xxhash.Digest, v int64) {
	writeUint64(h, uint64(v))
}

func writeFloat64(h *xxhash.Digest, v float64) {
	writeUint64(h, math.Float64bits(v))
}

func writeString(h *xxhash.Digest, s string) {
	// Length-prefix so "ab","c" and "a","bc" never collide.
	writeUint64(h, uint64(len(s)))
	_, _ = h.Write([]byte(s))
}

func writeBool(h *xxhash.Digest, b bool) {
	if b {
		writeUint64(h, 1)
	} else {
		writeUint64(h, 0)
	}
}

// WriteUint64, WriteInt64, WriteFloat64, WriteString, and WriteBool expose
// the same canonical field encodings to other packages (vfx, easing) whose
// Params.Hash implementations need to fold variant-specific fields into the
// same digest a Clip's identity hash is built from.
func WriteUint64(h *xxhash.Digest, v uint64)   { writeUint64(h, v) }
func WriteInt64(h *xxhash.Digest, v int64)     { writeInt64(h, v) }
func WriteFloat64(h *xxhash.Digest, v float64) { writeFloat64(h, v) }
func WriteString(h *xxhash.Digest, s string)   { writeString(h, s) }
func WriteBool(h *xxhash.Digest, b bool)       { writeBool(h, b) }
