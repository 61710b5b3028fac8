// Package cache implements the priority-driven, memory-bounded frame store:
// a durable Entry per distinct node identity (entry.go), a staging/committed
// split tying the store to session lifecycle (cache.go), the reprioritise
// walk that keeps entry priorities current against the live composition
// graph (priority.go), and the four pluggable admission/eviction strategies
// — Specialised, FIFO, LRU, MRU (policy.go) — selected by the
// cacheAlgorithm flag.
//
// cache is free to import core; core never imports cache, so Clip.CacheEntry
// is declared `any` and type-asserted back to *Entry at the boundary here.
package cache
