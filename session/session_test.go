package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflowfx/reflow/cache"
	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/session"
	"github.com/reflowfx/reflow/vfx"
)

func md(w, h uint32, frames uint64, fps float64) core.Metadata {
	return core.Metadata{Width: w, Height: h, FrameCount: frames, FPS: fps}
}

func newLoaded(t *testing.T, g *core.Graph, path string, m core.Metadata) *core.Clip {
	t.Helper()
	clip, err := core.New(g, core.VariantLoaded, m, core.Source{Kind: core.SourceFile, FilePath: path}, core.NoParams, false, false)
	assert.NoError(t, err)
	return clip
}

func newSession(t *testing.T) (*session.Session, *core.Graph) {
	t.Helper()
	g := core.NewGraph()
	c := cache.NewCache(1<<20, "specialised")
	fixup := session.FixupOptions{ViewportWidth: 320, ViewportHeight: 240, Interpolation: vfx.InterpolationArea}
	return session.New(g, c, fixup, 4), g
}

func TestSession_StartsIdle(t *testing.T) {
	s, _ := newSession(t)
	assert.Equal(t, session.Idle, s.State())
}

func TestSession_HappyPath_ToPreviewing(t *testing.T) {
	s, g := newSession(t)
	newLoaded(t, g, "/a.mp4", md(320, 240, 10, 30))

	assert.NoError(t, s.RequestStart())
	processed, err := s.Pump()
	assert.True(t, processed)
	assert.NoError(t, err)
	assert.Equal(t, session.ScriptRunning, s.State())

	assert.NoError(t, s.RequestScriptReturned())
	processed, err = s.Pump()
	assert.True(t, processed)
	assert.NoError(t, err)
	assert.Equal(t, session.Previewing, s.State())
}

func TestSession_ScriptFailed_ReturnsToIdle(t *testing.T) {
	s, _ := newSession(t)
	assert.NoError(t, s.RequestStart())
	_, err := s.Pump()
	assert.NoError(t, err)

	scriptErr := errors.New("boom")
	assert.NoError(t, s.RequestScriptFailed(scriptErr))
	_, err = s.Pump()
	assert.NoError(t, err)

	assert.Equal(t, session.Idle, s.State())
	assert.ErrorIs(t, s.LastError(), scriptErr)
}

func TestSession_InvalidTransition(t *testing.T) {
	s, _ := newSession(t)
	assert.NoError(t, s.RequestScriptReturned())
	_, err := s.Pump()
	assert.ErrorIs(t, err, session.ErrInvalidTransition)
	assert.Equal(t, session.Idle, s.State())
}

func TestSession_Rerun_FromPreviewing(t *testing.T) {
	s, g := newSession(t)
	newLoaded(t, g, "/a.mp4", md(320, 240, 10, 30))

	assert.NoError(t, s.RequestStart())
	_, _ = s.Pump()
	assert.NoError(t, s.RequestScriptReturned())
	_, err := s.Pump()
	assert.NoError(t, err)
	assert.Equal(t, session.Previewing, s.State())

	assert.NoError(t, s.RequestRerun())
	_, err = s.Pump()
	assert.NoError(t, err)
	assert.Equal(t, session.Idle, s.State())
}

func TestSession_PumpWithNothingQueued(t *testing.T) {
	s, _ := newSession(t)
	processed, err := s.Pump()
	assert.False(t, processed)
	assert.NoError(t, err)
}

func TestSession_QueueFull(t *testing.T) {
	s, _ := newSession(t)
	// Capacity 4: nothing calls Pump between posts, so four requests fill
	// the queue and the fifth is rejected.
	for i := 0; i < 4; i++ {
		assert.NoError(t, s.RequestRerun())
	}
	err := s.RequestRerun()
	assert.ErrorIs(t, err, session.ErrQueueFull)
}

func TestSession_SetRoutesToStagingWhileScriptRunning(t *testing.T) {
	s, g := newSession(t)
	clip := newLoaded(t, g, "/a.mp4", md(320, 240, 10, 30))

	assert.NoError(t, s.RequestStart())
	_, _ = s.Pump()

	img := cache.Image{Bytes: []byte{1, 2, 3}}
	s.Set(clip, 0, img)

	// Already visible via Get before commit: Get probes staging first.
	_, ok := s.Get(clip, 0)
	assert.True(t, ok)

	assert.NoError(t, s.RequestScriptReturned())
	_, err := s.Pump()
	assert.NoError(t, err)

	got, ok := s.Get(clip, 0)
	assert.True(t, ok)
	assert.True(t, img.Equal(got))
}

func TestSession_SetRoutesToCommittedWhilePreviewing(t *testing.T) {
	s, g := newSession(t)
	clip := newLoaded(t, g, "/a.mp4", md(320, 240, 10, 30))

	assert.NoError(t, s.RequestStart())
	_, _ = s.Pump()
	assert.NoError(t, s.RequestScriptReturned())
	_, err := s.Pump()
	assert.NoError(t, err)
	assert.Equal(t, session.Previewing, s.State())

	img := cache.Image{Bytes: []byte{4, 5, 6}}
	s.Set(clip, 1, img)

	got, ok := s.Get(clip, 1)
	assert.True(t, ok)
	assert.True(t, img.Equal(got))
}

func TestSession_Reset_SwapsGraph(t *testing.T) {
	s, g := newSession(t)
	original := core.Swap(g)
	defer core.Swap(original)

	s.Reset()
	assert.Same(t, core.Current(), s.Graph())
	assert.NotSame(t, g, s.Graph())
}
