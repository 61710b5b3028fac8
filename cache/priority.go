package cache

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

const (
	// purgeMinimumPriority and purgeMaximumAge are the magic numbers the
	// original engine's reprioritise used to decide when a long-cold, empty
	// entry is worth forgetting entirely rather than keeping around as
	// dead weight in the priority ordering (spec.md §4.4.1 step 4).
	purgeMinimumPriority = 0.5
	purgeMaximumAge      = 5
)

// Reprioritise updates every entry's bookkeeping against the current shape
// of graph (spec.md §4.4.1):
//
//  0. Dampening: age every existing committed entry by one.
//  1. Root distance: post-order walk from graph's leaves, assigning each
//     node's entry a root distance and hotness.
//  2. Hotnode propagation: a node not seen in the previous reprioritisation
//     marks every immediate predecessor as "precedes a hotnode".
//  3. Indirection association: indirections contribute their priority to
//     the non-indirection entries downstream of them.
//  4. Purge: entries that are old, empty, and low-priority are forgotten.
//
// graph must not have already been reprioritised (every leaf's CacheEntry
// must be nil); reusing a graph returns ErrReprioritiseReentry.
func (c *Cache) Reprioritise(graph *core.Graph) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	leaves := graph.Leaves()
	if len(leaves) > 0 && leaves[0].CacheEntry != nil {
		return fmt.Errorf("Reprioritise: %w", ErrReprioritiseReentry)
	}

	for _, e := range c.entries {
		e.Age++
	}

	c.traverseCounter++
	tt := c.traverseCounter

	for _, leaf := range leaves {
		if _, err := c.traverse(leaf, tt); err != nil {
			return err
		}
	}

	for _, leaf := range leaves {
		c.associateIndirections(leaf, map[entryID]*Entry{})
	}

	c.purge()

	all := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		all = append(all, e)
	}
	c.policy.OnRepriorityRebuild(all)

	return nil
}

// traverse is the post-order DFS assigning/refreshing each node's Entry.
// Callers hold c.mu. node.CacheEntry memoizes within one traversal — tt
// guards against re-deriving fields for an entry already touched this
// cycle via another path (a reconvergent diamond in the DAG).
func (c *Cache) traverse(node *core.Clip, tt uint64) (*Entry, error) {
	if node.CacheEntry != nil {
		return node.CacheEntry.(*Entry), nil
	}

	var e *Entry
	switch node.Source.Kind {
	case core.SourceFile, core.SourceNone:
		hash := node.Hash()
		existing, ok := c.entries[hash]
		if !ok {
			e = newEntry(node)
			e.IsRoot = true
			e.IsHotnode = true
			e.PrecedesHotnode = false
			e.RootDistance = 0
			e.IsIndirection = node.IsIndirection
			e.traverseTime = tt
			c.entries[hash] = e
		} else {
			e = existing
			if e.traverseTime != tt {
				e.IsRoot = true
				e.IsHotnode = e.Age > 1
				e.PrecedesHotnode = false
				e.RootDistance = 0
				e.IsIndirection = node.IsIndirection
				e.AssociatedIndirections = nil
				e.Age = 0
				e.traverseTime = tt
			}
		}

	case core.SourceParents:
		sourceEntries := make([]*Entry, len(node.Source.Parents))
		for i, p := range node.Source.Parents {
			se, err := c.traverse(p, tt)
			if err != nil {
				return nil, err
			}
			sourceEntries[i] = se
		}

		hash := node.Hash()
		chosen, err := chooseCacheEntry(node, hash, sourceEntries)
		if err != nil {
			return nil, err
		}

		var maxRootDistance int32 = -1
		for _, se := range sourceEntries {
			if chosen == nil || chosen.Age > 1 {
				se.PrecedesHotnode = true
			}
			if int32(se.RootDistance) > maxRootDistance {
				maxRootDistance = int32(se.RootDistance)
			}
		}

		if chosen == nil {
			e = newEntry(node)
			e.IsRoot = false
			e.IsHotnode = true
			e.PrecedesHotnode = false
			e.RootDistance = uint32(maxRootDistance + 1)
			e.IsIndirection = node.IsIndirection
			e.traverseTime = tt
			c.entries[hash] = e
		} else {
			e = chosen
			if e.traverseTime != tt {
				e.IsRoot = false
				e.IsHotnode = e.Age > 1
				e.PrecedesHotnode = false
				e.RootDistance = uint32(maxRootDistance + 1)
				e.IsIndirection = node.IsIndirection
				e.AssociatedIndirections = nil
				e.Age = 0
				e.traverseTime = tt
			}
		}

		for _, se := range sourceEntries {
			se.addSuccessor(e)
		}

	default:
		return nil, fmt.Errorf("Reprioritise: %w: unrecognised source kind", ErrCacheInconsistency)
	}

	node.CacheEntry = e
	e.indirectionsTakenCareOf = nil
	return e, nil
}

// chooseCacheEntry recovers the entry already associated with node (if any)
// via its sources' successor indices, narrowed by PseudoEqual, avoiding an
// O(d^2) scan over every committed entry (spec.md §4.4.1 step 1, §9).
func chooseCacheEntry(node *core.Clip, hash uint64, sourceEntries []*Entry) (*Entry, error) {
	var buckets []map[entryID]*Entry
	for _, se := range sourceEntries {
		if b, ok := se.Successors[hash]; ok {
			buckets = append(buckets, b)
		}
	}
	if len(buckets) == 0 {
		return nil, nil
	}

	var candidates []*Entry
	for id, candidate := range buckets[0] {
		inAll := true
		for _, b := range buckets[1:] {
			if _, ok := b[id]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			candidates = append(candidates, candidate)
		}
	}

	var chosen []*Entry
	for _, candidate := range candidates {
		if node.PseudoEqual(candidate.Node) {
			chosen = append(chosen, candidate)
		}
	}

	switch len(chosen) {
	case 0:
		return nil, nil
	case 1:
		return chosen[0], nil
	default:
		return nil, fmt.Errorf("Reprioritise: %w: duplicate cache entries found for %s", ErrCacheInconsistency, node)
	}
}

// associateIndirections is the second pass depositing each indirection
// entry's identity into every non-indirection entry downstream of it, so
// EffectivePriority can find it (spec.md §4.4.1 step 3, §4.4.2).
func (c *Cache) associateIndirections(node *core.Clip, indirections map[entryID]*Entry) {
	e, ok := node.CacheEntry.(*Entry)
	if !ok {
		return
	}

	switch node.Source.Kind {
	case core.SourceFile, core.SourceNone:
		for _, ind := range indirections {
			e.AssociatedIndirections = append(e.AssociatedIndirections, ind)
		}
		return
	case core.SourceParents:
		// fall through below
	default:
		return
	}

	if e.IsIndirection {
		if len(e.indirectionsTakenCareOf) == 0 {
			next := make(map[entryID]*Entry, len(indirections)+1)
			for k, v := range indirections {
				next[k] = v
			}
			next[e.id] = e
			e.indirectionsTakenCareOf = next
			indirections = next
		} else {
			remaining := make(map[entryID]*Entry, len(indirections))
			for k, v := range indirections {
				if _, done := e.indirectionsTakenCareOf[k]; done {
					continue
				}
				e.indirectionsTakenCareOf[k] = v
				remaining[k] = v
			}
			indirections = remaining
			if len(indirections) == 0 {
				return
			}
		}
		for _, p := range node.Source.Parents {
			c.associateIndirections(p, indirections)
		}
		return
	}

	for _, ind := range indirections {
		e.AssociatedIndirections = append(e.AssociatedIndirections, ind)
	}
	if len(e.indirectionsTakenCareOf) == 0 {
		taken := make(map[entryID]*Entry, len(indirections))
		for k, v := range indirections {
			taken[k] = v
		}
		e.indirectionsTakenCareOf = taken
		for _, p := range node.Source.Parents {
			c.associateIndirections(p, map[entryID]*Entry{})
		}
	}
}

// purge forgets entries that are old, empty, and low-priority, so the
// priority ordering doesn't accumulate dead weight across many sessions
// (spec.md §4.4.1 step 4). Callers hold c.mu.
func (c *Cache) purge() {
	var toPurge []uint64
	for hash, e := range c.entries {
		if e.Age > purgeMaximumAge && e.Len() == 0 && e.RawPriority() < purgeMinimumPriority {
			toPurge = append(toPurge, hash)
		}
	}

	for _, hash := range toPurge {
		e := c.entries[hash]
		if e.Node.Source.Kind == core.SourceParents {
			for _, p := range e.Node.Source.Parents {
				if pe, ok := p.CacheEntry.(*Entry); ok {
					if bucket, ok := pe.Successors[hash]; ok {
						delete(bucket, e.id)
					}
				}
			}
		}
		delete(c.entries, hash)
	}
}
