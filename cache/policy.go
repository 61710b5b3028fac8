package cache

import "sort"

// Policy is the shared eviction-policy interface every admission/victim
// strategy implements (spec.md §4.5): OnHit records an access, OnAdmit
// decides whether a fresh frame may enter the cache (evicting victims as
// needed to make room), ChooseVictim identifies the next frame to discard
// on demand, and OnRepriorityRebuild rebuilds any policy-internal ordering
// after reprioritise replaces the entry set.
type Policy interface {
	OnHit(entry *Entry, n uint64)
	OnAdmit(entry *Entry, n uint64, size int, currentSize, maxSize int) bool
	ChooseVictim() (*Entry, uint64, bool)
	OnRepriorityRebuild(entries []*Entry)
}

// NewPolicy constructs the named eviction policy (spec.md §6,
// cacheAlgorithm flag).
func NewPolicy(name string) Policy {
	switch name {
	case "fifo":
		return newFIFOPolicy()
	case "lru":
		return newRecencyPolicy(false)
	case "mru":
		return newRecencyPolicy(true)
	default:
		return newSpecialisedPolicy()
	}
}

// specialisedPolicy keeps entries ordered ascending by priority and, within
// the lowest-priority nonempty entry, evicts the middle of a
// middleRecentlyUsedQueue — grounded on SpecialisedPriorityQueue /
// SpecialisedCacheEntry in the original engine's server/cache.py.
type specialisedPolicy struct {
	sorted      []*Entry
	victimIndex int
	queues      map[*Entry]*middleRecentlyUsedQueue
}

func newSpecialisedPolicy() *specialisedPolicy {
	return &specialisedPolicy{queues: make(map[*Entry]*middleRecentlyUsedQueue)}
}

func (p *specialisedPolicy) queueFor(entry *Entry) *middleRecentlyUsedQueue {
	q, ok := p.queues[entry]
	if !ok {
		q = newMiddleRecentlyUsedQueue()
		p.queues[entry] = q
	}
	return q
}

func (p *specialisedPolicy) OnHit(entry *Entry, n uint64) {
	p.queueFor(entry).Access(victimKey{entry, n})
}

func (p *specialisedPolicy) OnAdmit(entry *Entry, n uint64, size int, currentSize, maxSize int) bool {
	for currentSize+size > maxSize {
		victimEntry, ok := p.peekVictimEntry()
		if !ok {
			return false
		}
		// Strict '<' per spec.md §9 open question 3: reject on a tie —
		// checked against the candidate victim entry *before* anything is
		// popped from its queue, so a rejected admission never desyncs the
		// queue from the entry's held frames.
		if victimEntry.EffectivePriority() >= entry.EffectivePriority() {
			return false
		}
		k, ok := p.queueFor(victimEntry).PopMiddle()
		if !ok {
			return false
		}
		currentSize -= victimEntry.discard(k.frame)
	}
	p.queueFor(entry).Insert(victimKey{entry, n})
	return true
}

// peekVictimEntry returns the lowest-priority nonempty, non-root entry
// without mutating any queue. victimIndex only advances past the leading
// root entries, which are never evicted; empty entries are rescanned on
// every call, since they can hold frames again later.
func (p *specialisedPolicy) peekVictimEntry() (*Entry, bool) {
	for p.victimIndex < len(p.sorted) && p.sorted[p.victimIndex].IsRoot {
		p.victimIndex++
	}
	for _, e := range p.sorted[p.victimIndex:] {
		if e.Len() > 0 && !e.IsRoot {
			return e, true
		}
	}
	return nil, false
}

func (p *specialisedPolicy) ChooseVictim() (*Entry, uint64, bool) {
	entry, ok := p.peekVictimEntry()
	if !ok {
		return nil, 0, false
	}
	k, ok := p.queueFor(entry).PopMiddle()
	if !ok {
		return nil, 0, false
	}
	return entry, k.frame, true
}

func (p *specialisedPolicy) OnRepriorityRebuild(entries []*Entry) {
	p.sorted = append([]*Entry(nil), entries...)
	sort.Slice(p.sorted, func(i, j int) bool {
		return p.sorted[i].EffectivePriority() < p.sorted[j].EffectivePriority()
	})
	p.victimIndex = 0
}

// fifoPolicy evicts in strict insertion order (spec.md §4.5, FIFO).
type fifoPolicy struct {
	q *recentlyUsedQueue
}

func newFIFOPolicy() *fifoPolicy { return &fifoPolicy{q: newRecentlyUsedQueue()} }

func (p *fifoPolicy) OnHit(entry *Entry, n uint64) {}

func (p *fifoPolicy) OnAdmit(entry *Entry, n uint64, size int, currentSize, maxSize int) bool {
	for currentSize+size > maxSize {
		victimEntry, victimFrame, ok := p.ChooseVictim()
		if !ok {
			return false
		}
		currentSize -= victimEntry.discard(victimFrame)
	}
	p.q.Append(victimKey{entry, n})
	return true
}

func (p *fifoPolicy) ChooseVictim() (*Entry, uint64, bool) {
	k, ok := p.q.PopHead()
	if !ok {
		return nil, 0, false
	}
	return k.entry, k.frame, true
}

func (p *fifoPolicy) OnRepriorityRebuild(entries []*Entry) {}

// recencyPolicy implements both LRU (evict tail) and MRU (evict head) over
// a single recency queue, since they differ only in which end is sacrificed
// (spec.md §4.5).
type recencyPolicy struct {
	q          *recentlyUsedQueue
	mostRecent bool // true => MRU (evict head), false => LRU (evict tail)
}

func newRecencyPolicy(mru bool) *recencyPolicy {
	return &recencyPolicy{q: newRecentlyUsedQueue(), mostRecent: mru}
}

func (p *recencyPolicy) OnHit(entry *Entry, n uint64) {
	p.q.Access(victimKey{entry, n})
}

func (p *recencyPolicy) OnAdmit(entry *Entry, n uint64, size int, currentSize, maxSize int) bool {
	for currentSize+size > maxSize {
		victimEntry, victimFrame, ok := p.ChooseVictim()
		if !ok {
			return false
		}
		currentSize -= victimEntry.discard(victimFrame)
	}
	p.q.Insert(victimKey{entry, n})
	return true
}

func (p *recencyPolicy) ChooseVictim() (*Entry, uint64, bool) {
	var k victimKey
	var ok bool
	if p.mostRecent {
		k, ok = p.q.PopHead()
	} else {
		k, ok = p.q.PopTail()
	}
	if !ok {
		return nil, 0, false
	}
	return k.entry, k.frame, true
}

func (p *recencyPolicy) OnRepriorityRebuild(entries []*Entry) {}
