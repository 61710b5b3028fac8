package vfx

import (
	"fmt"

	"github.com/reflowfx/reflow/core"
)

// errUnsupportedComposition reports a push/fuse pairing the original engine
// never implemented (spec.md §9, open questions 1 and 2): reverse pushed
// through slide, and subclip pushed through slide. Left as an explicit
// error rather than guessed-at semantics.
func errUnsupportedComposition(effect, against string) error {
	return fmt.Errorf("%s through %s: %w", effect, against, core.ErrUnsupportedComposition)
}
