package core

import "github.com/cespare/xxhash/v2"

// Hash returns this clip's structural identity hash, memoized after first
// computation (mirrors the original engine's @memoizeHash decorator).
// Derived from variant tag, metadata, variant-specific parameters, and
// source identity: for Loaded the source hash is the absolute file path; for
// parent-bearing nodes it's the ordered tuple of parent hashes (spec.md
// §4.2).
func (c *Clip) Hash() uint64 {
	c.hashOnce.Do(func() {
		h := xxhash.New()
		writeUint64(h, uint64(c.Variant))
		c.Metadata.hash(h)
		c.Params.Hash(h)
		switch c.Source.Kind {
		case SourceFile:
			writeString(h, c.Source.FilePath)
		case SourceNone:
			// no further identity contribution
		case SourceParents:
			writeUint64(h, uint64(len(c.Source.Parents)))
			for _, p := range c.Source.Parents {
				writeUint64(h, p.Hash())
			}
		}
		c.hashVal = h.Sum64()
	})
	return c.hashVal
}

// PseudoEqual reports whether variant, metadata, and variant-parameters
// match; source is deliberately *not* compared (spec.md §4.2). The
// reprioritise walk uses this to narrow candidate cache entries via the
// predecessor reverse-index before paying for a full Equal probe.
func (c *Clip) PseudoEqual(other *Clip) bool {
	if other == nil {
		return false
	}
	if c.Variant != other.Variant {
		return false
	}
	if !c.Metadata.Equal(other.Metadata) {
		return false
	}
	return c.Params.PseudoEqual(other.Params)
}

// Equal is PseudoEqual && source-equal (spec.md §4.2). Source equality on a
// parent-bearing clip recurses into each parent's Equal, so this is
// deliberately reserved for resolving the rare hash collision among
// candidates PseudoEqual already narrowed down — never used as the primary
// lookup mechanism (see cache.Entry.Successors).
func (c *Clip) Equal(other *Clip) bool {
	if !c.PseudoEqual(other) {
		return false
	}
	if c.Source.Kind != other.Source.Kind {
		return false
	}
	switch c.Source.Kind {
	case SourceFile:
		return c.Source.FilePath == other.Source.FilePath
	case SourceNone:
		return true
	case SourceParents:
		if len(c.Source.Parents) != len(other.Source.Parents) {
			return false
		}
		for i, p := range c.Source.Parents {
			if !p.Equal(other.Source.Parents[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsRoot reports whether this clip has no upstream clip dependency (Loaded
// or a from-nothing generator), i.e. it is file-backed rather than
// pixel-transforming.
func (c *Clip) IsRoot() bool {
	return c.Source.Kind == SourceFile || c.Source.Kind == SourceNone
}
