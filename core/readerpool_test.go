package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflowfx/reflow/core"
)

type fakeReader struct {
	path   string
	closed bool
}

func (r *fakeReader) ReadFrame(n uint64) (core.Image, error) { return core.Image{}, nil }
func (r *fakeReader) Close() error                            { r.closed = true; return nil }

func touchFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func TestReaderPool_AcquireMissingFile(t *testing.T) {
	opened := 0
	pool, err := core.NewReaderPool(func(path string) (core.FrameReader, error) {
		opened++
		return &fakeReader{path: path}, nil
	}, 2)
	assert.NoError(t, err)

	_, err = pool.Acquire("/no/such/file.mp4")
	assert.ErrorIs(t, err, core.ErrFileNotFound)
	assert.Equal(t, 0, opened)
}

func TestReaderPool_ReuseReleasedReader(t *testing.T) {
	dir := t.TempDir()
	path := touchFile(t, dir, "a.mp4")

	opened := 0
	pool, err := core.NewReaderPool(func(p string) (core.FrameReader, error) {
		opened++
		return &fakeReader{path: p}, nil
	}, 2)
	assert.NoError(t, err)

	r1, err := pool.Acquire(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, opened)

	pool.Release(path, r1)

	r2, err := pool.Acquire(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, opened, "acquiring again should reuse the released reader")
	assert.Same(t, r1, r2)
}

func TestReaderPool_EvictionClosesIdleReaders(t *testing.T) {
	dir := t.TempDir()
	a := touchFile(t, dir, "a.mp4")
	b := touchFile(t, dir, "b.mp4")
	c := touchFile(t, dir, "c.mp4")

	pool, err := core.NewReaderPool(func(p string) (core.FrameReader, error) {
		return &fakeReader{path: p}, nil
	}, 1)
	assert.NoError(t, err)

	ra, err := pool.Acquire(a)
	assert.NoError(t, err)
	pool.Release(a, ra)

	rb, err := pool.Acquire(b)
	assert.NoError(t, err)
	pool.Release(b, rb)
	// Releasing b's idle reader while the pool is bounded to 1 distinct
	// file evicts a's idle readers, closing them.
	assert.True(t, ra.(*fakeReader).closed)

	rc, err := pool.Acquire(c)
	assert.NoError(t, err)
	pool.Release(c, rc)
	assert.True(t, rb.(*fakeReader).closed)
}

func TestReaderPool_Close(t *testing.T) {
	dir := t.TempDir()
	path := touchFile(t, dir, "a.mp4")

	pool, err := core.NewReaderPool(func(p string) (core.FrameReader, error) {
		return &fakeReader{path: p}, nil
	}, 2)
	assert.NoError(t, err)

	r, err := pool.Acquire(path)
	assert.NoError(t, err)
	pool.Release(path, r)

	assert.NoError(t, pool.Close())
	assert.True(t, r.(*fakeReader).closed)
}
