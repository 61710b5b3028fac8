package cache

import (
	"fmt"
	"sync"

	"github.com/reflowfx/reflow/core"
)

// Cache is the priority-driven, memory-bounded frame store (spec.md §3/§4).
// It holds one Entry per distinct node identity (hash) persisting across
// sessions, a two-tier staging/committed split for frames rendered while the
// user script runs, and a pluggable Policy deciding admission and eviction.
type Cache struct {
	mu sync.Mutex

	policy  Policy
	maxSize int
	size    int

	// entries is keyed by node hash — the durable record set reprioritise
	// rebuilds, spec.md §4.4.1.
	entries map[uint64]*Entry

	// staging holds frames rendered this session but not yet admitted to
	// the committed store (spec.md §4.4.3). Get probes it before the
	// committed entries.
	staging       map[uint64]map[uint64]Image
	stagingLocked bool

	// traverseCounter is incremented once per Reprioritise call and stamped
	// onto every Entry touched that cycle, standing in for the original
	// engine's wall-clock traverseTime (spec.md §4.4.1; Date.now-style
	// timestamps are deliberately avoided here in favour of a plain
	// session counter).
	traverseCounter uint64

	stats Stats
}

// NewCache constructs a Cache bounded to maxSize bytes using the named
// eviction policy (spec.md §6, cacheSize/cacheAlgorithm flags).
func NewCache(maxSize int, policyName string) *Cache {
	return &Cache{
		policy:  NewPolicy(policyName),
		maxSize: maxSize,
		entries: make(map[uint64]*Entry),
		staging: make(map[uint64]map[uint64]Image),
		stats:   newStats(),
	}
}

// entryFor returns this node's durable Entry, creating it on first sight.
// Callers hold c.mu.
func (c *Cache) entryFor(node *core.Clip) *Entry {
	hash := node.Hash()
	e, ok := c.entries[hash]
	if !ok {
		e = newEntry(node)
		c.entries[hash] = e
	}
	return e
}

// Get returns the cached frame for (node, n), looking first in staging and
// then in the node's committed entry. Indirection nodes hold no frames of
// their own: Get reports a miss for them and does not follow them to the
// underlying source frame.
func (c *Cache) Get(node *core.Clip, n uint64) (Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(node, n)
}

func (c *Cache) get(node *core.Clip, n uint64) (Image, bool) {
	if node.IsIndirection {
		return Image{}, false
	}
	if bucket, ok := c.staging[node.Hash()]; ok {
		if img, ok := bucket[n]; ok {
			return img, true
		}
	}

	e := c.entryFor(node)
	if img, ok := e.Get(n); ok {
		c.policy.OnHit(e, n)
		c.stats.hit(e)
		return img, true
	}
	c.stats.miss(e, n)
	return Image{}, false
}

// Stage records a freshly rendered frame in the uncommitted staging area,
// where Get already finds it before Commit (spec.md §4.4.3). Indirection
// nodes are silently discarded rather than staged, mirroring Set's
// behaviour, and so is every frame staged while the staging area is locked.
func (c *Cache) Stage(node *core.Clip, n uint64, img Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if node.IsIndirection || c.stagingLocked {
		return
	}
	hash := node.Hash()
	bucket, ok := c.staging[hash]
	if !ok {
		bucket = make(map[uint64]Image)
		c.staging[hash] = bucket
	}
	bucket[n] = img
}

// Set admits a frame directly into the committed store, subject to the
// eviction policy's admission control. A set on an indirection node is
// discarded silently (spec.md §3: "set on an indirection discards
// silently") since indirections never own frame storage.
func (c *Cache) Set(node *core.Clip, n uint64, img Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(node, n, img)
}

func (c *Cache) set(node *core.Clip, n uint64, img Image) {
	if node.IsIndirection {
		return
	}
	e := c.entryFor(node)
	if _, exists := e.Get(n); exists {
		c.policy.OnHit(e, n)
		e.put(n, img)
		return
	}
	if !c.policy.OnAdmit(e, n, img.Size(), c.size, c.maxSize) {
		return
	}
	e.put(n, img)
	// Victims the policy discarded left their entries' Frames without
	// touching c.size, so the committed bytes are recounted.
	c.size = 0
	for _, entry := range c.entries {
		entry.mu.Lock()
		for _, f := range entry.Frames {
			c.size += f.Size()
		}
		entry.mu.Unlock()
	}
	c.stats.seen[seenKey{e, n}] = struct{}{}
}

// LockStagingArea freezes staging writes ahead of Commit (Stage drops
// frames while it is locked), matching the
// original engine's lockStagingArea/unlockStagingArea pair guarding against
// a render worker writing into staging mid-commit (spec.md §4.4.3).
func (c *Cache) LockStagingArea() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stagingLocked = true
}

func (c *Cache) UnlockStagingArea() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stagingLocked = false
}

// Commit moves every staged frame into the committed store through the
// normal admission path, then empties staging. Returns
// ErrCacheInconsistency if called while staging is unlocked, since an
// in-progress render could otherwise race the move.
func (c *Cache) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stagingLocked {
		return fmt.Errorf("Commit: %w", ErrCacheInconsistency)
	}
	for hash, bucket := range c.staging {
		e, ok := c.entries[hash]
		if !ok {
			// The node this staged data belongs to was never registered as
			// an Entry (e.g. its graph node was rewritten away mid-sweep);
			// nothing durable to commit it against.
			continue
		}
		for n, img := range bucket {
			c.set(e.Node, n, img)
		}
	}
	c.staging = make(map[uint64]map[uint64]Image)
	return nil
}

// EmptyStagingArea discards every staged frame without committing it, used
// when the user script fails partway through (spec.md §5, Failed state).
func (c *Cache) EmptyStagingArea() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staging = make(map[uint64]map[uint64]Image)
}

// Stats returns a snapshot of the hit/miss/seen counters (spec.md §6,
// enableStatistics).
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// ResetStats zeroes the hit/miss/seen counters without touching any stored
// frame.
func (c *Cache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = newStats()
}

// Size reports current committed bytes and the configured ceiling.
func (c *Cache) Size() (current, max int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size, c.maxSize
}
