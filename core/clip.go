package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Variant tags which pure "frame index -> image" function a Clip computes.
type Variant uint8

const (
	VariantLoaded Variant = iota
	VariantText
	VariantResized
	VariantCropped
	VariantBrightened
	VariantGreyscale
	VariantBlurred
	VariantGaussianBlurred
	VariantRateChanged
	VariantReversed
	VariantSped
	VariantSubClip
	VariantSlideTransition
	VariantComposite
	VariantConcat
	// VariantFx wraps an arbitrary user-supplied frame transform (spec.md §6,
	// `clip.fx(f, ...)`). It has no place in the push/fuse/annihilate table
	// since an opaque function carries no algebraic structure to rewrite
	// against.
	VariantFx
)

func (v Variant) String() string {
	switch v {
	case VariantLoaded:
		return "Loaded"
	case VariantText:
		return "Text"
	case VariantResized:
		return "Resized"
	case VariantCropped:
		return "Cropped"
	case VariantBrightened:
		return "Brightened"
	case VariantGreyscale:
		return "Greyscale"
	case VariantBlurred:
		return "Blurred"
	case VariantGaussianBlurred:
		return "GaussianBlurred"
	case VariantRateChanged:
		return "RateChanged"
	case VariantReversed:
		return "Reversed"
	case VariantSped:
		return "Sped"
	case VariantSubClip:
		return "SubClip"
	case VariantSlideTransition:
		return "SlideTransition"
	case VariantComposite:
		return "Composite"
	case VariantConcat:
		return "Concat"
	case VariantFx:
		return "Fx"
	default:
		return "Unknown"
	}
}

// SourceKind distinguishes how a Clip obtains its frames.
type SourceKind uint8

const (
	// SourceNone marks a clip generated with no upstream dependency at all
	// (e.g. a solid-colour generator); treated as a root like SourceFile.
	SourceNone SourceKind = iota
	// SourceFile marks a clip backed directly by a file on disk (Loaded).
	SourceFile
	// SourceParents marks a clip computed from one or more ordered parent
	// clips (every other variant).
	SourceParents
)

// Source is the sum type spec.md §3 calls `None | FilePath(str) |
// Parents(ordered list of node handles)`.
type Source struct {
	Kind     SourceKind
	FilePath string
	Parents  []*Clip
}

// Params is implemented by each variant's parameter record (vfx.ResizeParams,
// vfx.CropParams, ...). Parameters participate in both the structural hash
// and pseudo-equality, per spec.md §4.2.
type Params interface {
	Hash(h *xxhash.Digest)
	PseudoEqual(other Params) bool
}

// noParams is used by variants with no extra parameters (Greyscale, Reverse).
type noParams struct{}

func (noParams) Hash(*xxhash.Digest)          {}
func (noParams) PseudoEqual(other Params) bool { _, ok := other.(noParams); return ok }

// NoParams is the shared Params value for parameter-less variants.
var NoParams Params = noParams{}

// Clip is an immutable node describing a pure "frame index -> image"
// function. Once constructed, every field below is fixed except ChildCount
// and CacheEntry, which the rewrite engine and cache mutate as the graph
// around the clip changes shape.
type Clip struct {
	Variant  Variant
	Metadata Metadata
	Source   Source
	Params   Params

	// IsIndirection is true iff Frame(n) returns a source frame unchanged
	// (subclip, concat, reverse, sped, rate-change) — such frames must
	// never be cached (spec.md §3).
	IsIndirection bool
	// IsConstant is true iff Frame(n) is independent of n.
	IsConstant bool
	// Timestamp is monotonically increasing construction order, used to
	// stabilise iteration order across sessions; rewrites that replace a
	// node inherit the replaced node's Timestamp (spec.md §4.3.1).
	Timestamp uint64

	Graph *Graph

	// CacheEntry is a weak handle to the cache.Entry associated with this
	// node, set during reprioritise. Declared as `any` rather than a
	// concrete cache.Entry to avoid an import cycle (cache imports core,
	// not the reverse); the cache package performs the type assertion back
	// to *cache.Entry.
	CacheEntry any

	mu         sync.Mutex
	childCount int

	hashOnce sync.Once
	hashVal  uint64
}

// String supports debug printing; the original engine's __str__ allowed
// scripts to name nodes, which isn't reproduced here (no str field), so this
// just reports the variant tag.
func (c *Clip) String() string {
	if c == nil {
		return "<nil clip>"
	}
	return fmt.Sprintf("%s@%d", c.Variant, c.Timestamp)
}

// ChildCount reports how many distinct consumers currently reference this
// clip as a source.
func (c *Clip) ChildCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.childCount
}

func (c *Clip) addChild() {
	c.mu.Lock()
	c.childCount++
	c.mu.Unlock()
}

// releaseChild decrements the child count and returns the new value.
func (c *Clip) releaseChild() int {
	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
	}()
	c.childCount--
	return c.childCount
}

// New constructs a Clip with a fresh timestamp, registers it in g, and wires
// up parent child-counts / leaf removal exactly as the original engine's
// @clipMethod decorator did. The returned clip is fully constructed and
// already added to g as a leaf.
func New(g *Graph, variant Variant, metadata Metadata, source Source, params Params, isIndirection, isConstant bool) (*Clip, error) {
	return newClip(g, variant, metadata, source, params, isIndirection, isConstant, g.nextTimestampValue())
}

// NewInheriting is identical to New except the returned clip carries
// original's Timestamp instead of a fresh one, used by the rewrite engine
// when a push/fuse/annihilate replaces original with a differently-shaped
// node that should preserve preview-tab ordering (spec.md §4.3.1).
func NewInheriting(g *Graph, original *Clip, variant Variant, metadata Metadata, source Source, params Params, isIndirection, isConstant bool) (*Clip, error) {
	return newClip(g, variant, metadata, source, params, isIndirection, isConstant, original.Timestamp)
}

func newClip(g *Graph, variant Variant, metadata Metadata, source Source, params Params, isIndirection, isConstant bool, timestamp uint64) (*Clip, error) {
	if params == nil {
		params = NoParams
	}

	clip := &Clip{
		Variant:       variant,
		Metadata:      metadata,
		Source:        source,
		Params:        params,
		IsIndirection: isIndirection,
		IsConstant:    isConstant,
		Timestamp:     timestamp,
		Graph:         g,
	}

	switch source.Kind {
	case SourceFile, SourceNone:
		g.AddLeaf(clip)
	case SourceParents:
		if len(source.Parents) == 0 {
			return nil, fmt.Errorf("New(%s): %w: SourceParents with no parents", variant, ErrBadArgument)
		}
		domain := source.Parents[0].Graph
		for _, parent := range source.Parents {
			if parent.Graph != domain {
				return nil, fmt.Errorf("New(%s): %w", variant, ErrGraphDomainMismatch)
			}
		}
		for _, parent := range source.Parents {
			if domain.IsLeaf(parent) {
				// RemoveLeaf cannot fail here: IsLeaf just confirmed presence,
				// and no other goroutine touches this graph concurrently with
				// script execution (spec.md §5, single-threaded core).
				_ = domain.RemoveLeaf(parent)
			}
			parent.addChild()
		}
		clip.Graph = domain
		domain.AddLeaf(clip)
	default:
		return nil, fmt.Errorf("New(%s): %w: unrecognised source kind", variant, ErrBadArgument)
	}

	return clip, nil
}

func sortClipsByTimestamp(clips []*Clip) {
	sort.Slice(clips, func(i, j int) bool { return clips[i].Timestamp < clips[j].Timestamp })
}
