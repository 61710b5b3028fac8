package cache

// Stats accumulates the hit/miss counters the original engine exposes behind
// CacheOptions.enableStatistics (spec.md §6); this cache always counts.
// Misses split into compulsory (this exact (entry, frame) pair has never been
// requested or admitted before) and noncompulsory (it was requested or
// admitted before, so it was evicted or never stored) —
// the distinction a cache-replacement study needs that a flat miss count
// erases.
type Stats struct {
	Hits                uint64
	CompulsoryMisses    uint64
	NoncompulsoryMisses uint64

	seen map[seenKey]struct{}
}

type seenKey struct {
	entry *Entry
	frame uint64
}

func newStats() Stats {
	return Stats{seen: make(map[seenKey]struct{})}
}

func (s *Stats) hit(entry *Entry) {
	if entry.IsIndirection {
		return
	}
	s.Hits++
}

func (s *Stats) miss(entry *Entry, n uint64) {
	if entry != nil && entry.IsIndirection {
		return
	}
	key := seenKey{entry, n}
	if s.seen == nil {
		s.seen = make(map[seenKey]struct{})
	}
	if _, ok := s.seen[key]; ok {
		s.NoncompulsoryMisses++
	} else {
		s.CompulsoryMisses++
	}
	s.seen[key] = struct{}{}
}

// Misses is the total of compulsory and noncompulsory misses.
func (s Stats) Misses() uint64 { return s.CompulsoryMisses + s.NoncompulsoryMisses }

// HitRatio divides hits by (hits + noncompulsory misses), mirroring the
// original engine's definition that excludes unavoidable compulsory misses
// from the ratio. Returns 0 if the denominator is 0.
func (s Stats) HitRatio() float64 {
	denom := s.Hits + s.NoncompulsoryMisses
	if denom == 0 {
		return 0
	}
	return float64(s.Hits) / float64(denom)
}
