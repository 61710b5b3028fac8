// Package config parses the external harness's process configuration
// (spec.md §6: "Process env/CLI (external harness, out of core but
// consumed)") and turns it into the values core.New*, cache.NewCache, and
// session.New expect.
package config

import (
	"fmt"
)

// Algorithm names a pluggable eviction policy (spec.md §4.5, §6
// cacheAlgorithm flag).
type Algorithm string

const (
	Specialised Algorithm = "specialised"
	FIFO        Algorithm = "fifo"
	LRU         Algorithm = "lru"
	MRU         Algorithm = "mru"
)

func (a Algorithm) valid() bool {
	switch a {
	case Specialised, FIFO, LRU, MRU:
		return true
	default:
		return false
	}
}

// Config holds every flag spec.md §6 names for the harness process.
type Config struct {
	// Filepath is the user script to execute.
	Filepath string
	// CacheSizeMiB bounds the committed store, converted to bytes for
	// cache.NewCache.
	CacheSizeMiB int
	// CacheAlgorithm selects the eviction policy.
	CacheAlgorithm Algorithm
	// EnableStatistics makes reflowctl reset the cache's hit/miss counters
	// at start-up; the cache counts hits and misses whether or not it is set.
	EnableStatistics bool
	// VisualiseFilepath names a priority-graph dump file. reflowctl accepts
	// it, but nothing in this module writes a dump.
	VisualiseFilepath string
	// DisableTransformations is parsed and logged by reflowctl only;
	// CanonicalOrder and FlattenConcats always run regardless of it.
	DisableTransformations bool
	// LogFilepath redirects structured log output; empty means stderr.
	LogFilepath string
}

// Default returns the harness's baseline configuration (spec.md §6 lists
// cacheAlgorithm's default as the first enum member, specialised). The cache
// size defaults to 256 MiB; the other flags default to their zero value.
func Default() Config {
	return Config{
		CacheSizeMiB:   256,
		CacheAlgorithm: Specialised,
	}
}

// Validate reports a non-nil error if c cannot be acted on: an empty
// Filepath, a non-positive CacheSizeMiB, or an unrecognised CacheAlgorithm.
func (c Config) Validate() error {
	if c.Filepath == "" {
		return fmt.Errorf("config: filepath is required")
	}
	if c.CacheSizeMiB <= 0 {
		return fmt.Errorf("config: cacheSize must be positive, got %d", c.CacheSizeMiB)
	}
	if !c.CacheAlgorithm.valid() {
		return fmt.Errorf("config: unrecognised cacheAlgorithm %q", c.CacheAlgorithm)
	}
	return nil
}

// CacheSizeBytes converts CacheSizeMiB to the byte count cache.NewCache
// wants.
func (c Config) CacheSizeBytes() int {
	return c.CacheSizeMiB * 1024 * 1024
}
