package cache

import (
	"math"
	"sync"

	"github.com/reflowfx/reflow/core"
)

// Image is the cache's frame payload type, reusing core.Image directly
// (cache is free to import core — core.Clip.CacheEntry is typed `any`
// specifically so the reverse import never has to happen).
type Image = core.Image

// entryID disambiguates distinct CacheEntry records that happen to share a
// node hash (a collision, or simply two different nodes hashing alike);
// spec.md §3 models successors as map<node_hash, map<entry_id, CacheEntry>>
// for exactly this reason.
type entryID uint64

var (
	entryIDMu   sync.Mutex
	nextEntryID entryID
)

func newEntryID() entryID {
	entryIDMu.Lock()
	defer entryIDMu.Unlock()
	nextEntryID++
	return nextEntryID
}

var negInf = math.Inf(-1)

// Entry is the cache's per-node bookkeeping record — one per distinct Clip
// identity, persisting across sessions once created (spec.md §3).
type Entry struct {
	id entryID

	// Node is the clip this entry describes. Kept so reprioritise and the
	// eviction policies can read Variant/Metadata/Hash without a separate
	// lookup table.
	Node *core.Clip

	// Frames maps a frame index to its cached bytes. Indirection entries
	// never populate this (spec.md §4.4, "set on an indirection discards
	// silently").
	Frames map[uint64]Image

	Age                    uint32
	IsRoot                 bool
	IsHotnode              bool
	PrecedesHotnode        bool
	IsIndirection          bool
	RootDistance           uint32
	AssociatedIndirections []*Entry

	// Successors indexes, for each source this entry feeds, which entries
	// consume it — keyed by the consumer's node hash then entry ID, so
	// reprioritise can recover "does an entry pseudo-equal to candidate
	// already exist among this source's consumers" in O(out-degree) instead
	// of a Θ(d²) scan over every entry in the cache (spec.md §4.2, §9).
	Successors map[uint64]map[entryID]*Entry

	// traverseTime holds the session id reprioritise last visited this entry
	// in, preventing double-visits within one post-order DFS (spec.md §5(b)).
	traverseTime uint64

	// indirectionsTakenCareOf records the indirection set this entry has
	// already deposited during the associate-indirections second pass, so a
	// reconvergent diamond in the DAG isn't reprocessed from scratch. A nil
	// or empty map means "not yet handled" — deliberately indistinguishable,
	// mirroring the original engine's use of a possibly-empty dict as its
	// own falsy sentinel (spec.md §4.4.1 step 3).
	indirectionsTakenCareOf map[entryID]*Entry

	mu sync.Mutex
}

func newEntry(node *core.Clip) *Entry {
	return &Entry{
		id:         newEntryID(),
		Node:       node,
		Frames:     make(map[uint64]Image),
		Successors: make(map[uint64]map[entryID]*Entry),
	}
}

// Len reports how many frames this entry currently has cached.
func (e *Entry) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Frames)
}

// Get returns the cached frame for n, if any.
func (e *Entry) Get(n uint64) (Image, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	img, ok := e.Frames[n]
	return img, ok
}

// put inserts the frame unconditionally; callers (policy admission, commit)
// decide whether this should happen.
func (e *Entry) put(n uint64, img Image) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Frames[n] = img
}

// discard removes and returns the bytes freed by evicting frame n, for
// eviction accounting ("discardBytes" in the original engine's cache.py).
func (e *Entry) discard(n uint64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	img, ok := e.Frames[n]
	if !ok {
		return 0
	}
	delete(e.Frames, n)
	return img.Size()
}

// addSuccessor registers consumer as depending on e, used by reprioritise
// step 2.
func (e *Entry) addSuccessor(consumer *Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	hash := consumer.Node.Hash()
	bucket, ok := e.Successors[hash]
	if !ok {
		bucket = make(map[entryID]*Entry)
		e.Successors[hash] = bucket
	}
	bucket[consumer.id] = consumer
}

// FormulaPriority computes the age/rootDistance/hotnode formula with no
// root/indirection short-circuit, so an indirection's contribution to a
// downstream concrete entry's EffectivePriority is never flattened to -∞.
// Exported since it is also the value a priority-graph visualisation (spec.md
// §6, --visualiseFilepath) wants to render for every node, indirections
// included — RawPriority's -∞ would otherwise make indirections invisible on
// the same scale as the concrete nodes they boost.
func (e *Entry) FormulaPriority() float64 {
	denom := pow2(e.Age)
	if (e.PrecedesHotnode && !e.IsHotnode) || len(e.Successors) == 0 {
		return (1 + float64(e.RootDistance) + 100) / denom
	}
	return (1 + float64(e.RootDistance)) / denom
}

// RawPriority computes this entry's raw priority per spec.md §4.4.2. Root
// and indirection entries are never eviction victims, represented as
// negative infinity.
func (e *Entry) RawPriority() float64 {
	if e.IsRoot || e.IsIndirection {
		return negInf
	}
	return e.FormulaPriority()
}

// EffectivePriority is RawPriority maxed with the formula priority of every
// associated indirection (spec.md §4.4, "Indirection handling": a
// frequently-queried indirection like concat(...).subclip(...) must raise
// the effective priority of the concrete nodes underneath it, which only
// works if the indirection's own contribution isn't its (always -∞)
// RawPriority).
func (e *Entry) EffectivePriority() float64 {
	p := e.RawPriority()
	for _, ind := range e.AssociatedIndirections {
		if r := ind.FormulaPriority(); r > p {
			p = r
		}
	}
	return p
}

func pow2(age uint32) float64 {
	result := 1.0
	for i := uint32(0); i < age; i++ {
		result *= 2
	}
	return result
}
