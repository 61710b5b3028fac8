package cache

import "errors"

var (
	// ErrCacheInconsistency marks an internal invariant violation — e.g. two
	// distinct CacheEntry records found pseudo-equal to the same node during
	// reprioritise — and is never triggered by user input (spec.md §7).
	ErrCacheInconsistency = errors.New("cache: internal consistency violation")

	// ErrReprioritiseReentry is returned (not logged-and-swallowed, so the
	// harness can decide) when reprioritise is invoked twice on the same
	// graph without an intervening reset/new session (spec.md §4.4.1).
	ErrReprioritiseReentry = errors.New("cache: reprioritise called re-entrantly")
)
