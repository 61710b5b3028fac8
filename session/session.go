// Package session drives the core's cooperative state machine (spec.md
// §4.6, §5): one goroutine executes the user script and renders frames: a
// second goroutine (the harness's file watcher) requests transitions by
// posting to a bounded queue, consumed between frame renders rather than
// preempting the core thread.
package session

import (
	"errors"
	"fmt"

	"github.com/reflowfx/reflow/cache"
	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/rewrite"
	"github.com/reflowfx/reflow/vfx"
)

// State is one node of the session state machine (spec.md §4.6):
//
//	Idle -> ScriptRunning -> Idle (script failed: staging emptied)
//	                      -> Finalizing -> Previewing -> Idle
//
// A script failure passes through Failed in a single Pump step, so the
// session is never observed in Failed.
type State uint8

const (
	Idle State = iota
	ScriptRunning
	Failed
	Finalizing
	Previewing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case ScriptRunning:
		return "ScriptRunning"
	case Failed:
		return "Failed"
	case Finalizing:
		return "Finalizing"
	case Previewing:
		return "Previewing"
	default:
		return "Unknown"
	}
}

// ErrInvalidTransition marks an attempt to move the session to a state its
// current state cannot reach directly (spec.md §4.6).
var ErrInvalidTransition = errors.New("session: invalid state transition")

// FixupOptions configures the session fix-up step run between script
// completion and reprioritise (spec.md §4.3.3).
type FixupOptions struct {
	ViewportWidth, ViewportHeight uint32
	Interpolation                 vfx.Interpolation
}

// Session owns one (graph, cache) pair and marshals harness-requested
// transitions between script runs (spec.md §5: "core is single-threaded and
// cooperative"; transitions are requests, never preemptions).
type Session struct {
	state State

	graph *core.Graph
	cache *cache.Cache

	fixup FixupOptions

	// requests carries harness-originated transition requests; Pump drains
	// it between renders rather than the harness mutating state directly,
	// matching the bounded-FIFO marshalling spec.md §5 requires.
	requests chan request

	lastErr error
}

type request struct {
	kind requestKind
	err  error
}

type requestKind uint8

const (
	requestStart requestKind = iota
	requestScriptFailed
	requestScriptReturned
	requestRerun
)

// New constructs an idle session over graph and cache with the given
// fix-up viewport, and a message queue of the given capacity (spec.md §5,
// "bounded FIFO message queue").
func New(graph *core.Graph, c *cache.Cache, fixup FixupOptions, queueCapacity int) *Session {
	return &Session{
		state:    Idle,
		graph:    graph,
		cache:    c,
		fixup:    fixup,
		requests: make(chan request, queueCapacity),
	}
}

// State reports the session's current state. Safe to call from the harness
// thread; State is only ever mutated by the core thread inside Pump.
func (s *Session) State() State { return s.state }

// LastError returns the error of the last failed script run or failed
// finalize since the last Start, if any.
func (s *Session) LastError() error { return s.lastErr }

// ErrQueueFull indicates the bounded request queue is saturated — the core
// thread is falling behind the harness's transition requests.
var ErrQueueFull = errors.New("session: request queue full")

func (s *Session) post(kind requestKind, err error) error {
	select {
	case s.requests <- request{kind: kind, err: err}:
		return nil
	default:
		return fmt.Errorf("post: %w", ErrQueueFull)
	}
}

// RequestStart enqueues a request to move Idle -> ScriptRunning. Called
// from the harness thread; the transition only actually happens once the
// core thread calls Pump (spec.md §5: requests are marshalled onto the core
// thread via a bounded FIFO queue, never applied directly).
func (s *Session) RequestStart() error { return s.post(requestStart, nil) }

// RequestScriptFailed enqueues a report that the user script raised
// scriptErr. Once Pump processes it, staging is emptied, scriptErr is kept
// for LastError, and the session returns from ScriptRunning to Idle.
func (s *Session) RequestScriptFailed(scriptErr error) error {
	return s.post(requestScriptFailed, scriptErr)
}

// RequestScriptReturned enqueues a report of clean script completion,
// driving ScriptRunning -> Finalizing (and, once fix-up/flatten/
// reprioritise/commit succeed, on into Previewing) once Pump processes it.
func (s *Session) RequestScriptReturned() error {
	return s.post(requestScriptReturned, nil)
}

// RequestRerun enqueues a request to return Previewing -> Idle ahead of the
// next script execution (the harness detected a source file changed).
func (s *Session) RequestRerun() error { return s.post(requestRerun, nil) }

// Pump processes exactly one queued transition request, or returns
// (false, nil) immediately if none is pending. The core thread calls this
// between frame renders (spec.md §5: "marshalled onto the core thread via a
// bounded FIFO message queue consumed between frame renders").
func (s *Session) Pump() (processed bool, err error) {
	select {
	case req := <-s.requests:
		err := s.handle(req.kind, req.err)
		return true, err
	default:
		return false, nil
	}
}

func (s *Session) handle(kind requestKind, reqErr error) error {
	switch kind {
	case requestStart:
		if s.state != Idle {
			return fmt.Errorf("Pump: %w: Start from %s", ErrInvalidTransition, s.state)
		}
		s.lastErr = nil
		s.state = ScriptRunning
		return nil

	case requestScriptFailed:
		if s.state != ScriptRunning {
			return fmt.Errorf("Pump: %w: ScriptFailed from %s", ErrInvalidTransition, s.state)
		}
		s.lastErr = reqErr
		s.cache.EmptyStagingArea()
		s.state = Idle
		return nil

	case requestScriptReturned:
		if s.state != ScriptRunning {
			return fmt.Errorf("Pump: %w: ScriptReturned from %s", ErrInvalidTransition, s.state)
		}
		s.state = Finalizing
		if err := s.finalize(); err != nil {
			s.lastErr = err
			s.state = Idle
			return err
		}
		s.state = Previewing
		return nil

	case requestRerun:
		if s.state != Previewing {
			return fmt.Errorf("Pump: %w: Rerun from %s", ErrInvalidTransition, s.state)
		}
		s.state = Idle
		return nil

	default:
		return fmt.Errorf("Pump: %w: unrecognised request kind", ErrInvalidTransition)
	}
}

// finalize runs the Finalizing-state pipeline: session fix-up, flatten,
// reprioritise, commit (spec.md §4.3.3, §4.4.1, control flow step 3-5).
func (s *Session) finalize() error {
	if err := rewrite.FixupResizeToViewport(s.graph, s.fixup.ViewportWidth, s.fixup.ViewportHeight, s.fixup.Interpolation); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	if err := rewrite.FlattenConcats(s.graph); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	if err := s.cache.Reprioritise(s.graph); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	s.cache.LockStagingArea()
	defer s.cache.UnlockStagingArea()
	if err := s.cache.Commit(); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	return nil
}

// Set routes a rendered frame to staging or the committed store depending
// on the current state (spec.md §4.6: "In ScriptRunning, set routes to
// staging; in Previewing, set routes to policy admission").
func (s *Session) Set(clip *core.Clip, n uint64, img cache.Image) {
	switch s.state {
	case ScriptRunning:
		s.cache.Stage(clip, n, img)
	case Previewing:
		s.cache.Set(clip, n, img)
	}
}

// Get probes the cache for (clip, n), usable in any state (spec.md §4.4,
// "get first probes staging, then the committed store" — staging is only
// ever populated in ScriptRunning, so outside that state this degrades to a
// plain committed-store lookup).
func (s *Session) Get(clip *core.Clip, n uint64) (cache.Image, bool) {
	return s.cache.Get(clip, n)
}

// Reset discards the current graph's leaf-set, ready for a fresh script run
// (spec.md §4.1, control flow step 1).
func (s *Session) Reset() {
	core.Reset()
	s.graph = core.Current()
}

// Graph returns the graph this session is currently building against.
func (s *Session) Graph() *core.Graph { return s.graph }

// Cache returns the cache backing this session.
func (s *Session) Cache() *cache.Cache { return s.cache }
