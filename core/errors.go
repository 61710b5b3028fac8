package core

import "errors"

// Sentinel errors shared by core, vfx, rewrite, and cache. Wrapped with
// fmt.Errorf("%w", ...) at call sites so callers can errors.Is against them.
var (
	// ErrBadArgument indicates contradictory or missing parameters at a
	// constructor boundary (e.g. both size and width given to Resize).
	ErrBadArgument = errors.New("core: bad argument")

	// ErrOutOfRange indicates a frame index, crop rectangle, or subclip
	// range fell outside the bounds of its source.
	ErrOutOfRange = errors.New("core: out of range")

	// ErrBadTimecode indicates a timecode string did not match
	// [±][[h:]m:]s(.frac).
	ErrBadTimecode = errors.New("core: bad timecode")

	// ErrFileNotFound indicates Load was given a path that does not exist.
	ErrFileNotFound = errors.New("core: file not found")

	// ErrGraphDomainMismatch indicates a node's sources belong to more than
	// one Graph.
	ErrGraphDomainMismatch = errors.New("core: sources belong to different graphs")

	// ErrNotALeaf indicates RemoveLeaf was called on a clip that is not
	// currently a leaf of its graph.
	ErrNotALeaf = errors.New("core: clip is not a leaf")

	// ErrUnsupportedComposition marks a push/fuse composition the original
	// engine never implemented (reverse-through-slide, subclip-through-slide);
	// left unimplemented deliberately rather than guessed at, per spec.
	ErrUnsupportedComposition = errors.New("core: unsupported rewrite composition")
)
