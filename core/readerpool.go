package core

import (
	"fmt"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// FrameReader decodes frames from one open media file. A concrete decoder
// (e.g. wrapping an ffmpeg/imageio-style subprocess) implements this; core
// only manages reader lifetime and reuse.
type FrameReader interface {
	// ReadFrame decodes the frame at index n into an Image.
	ReadFrame(n uint64) (Image, error)
	// Close releases any OS resources (subprocess, file handle) the reader
	// holds.
	Close() error
}

// ReaderOpener constructs a fresh FrameReader for filepath, mirroring
// imageio.get_reader in the original engine's roots/load.py.
type ReaderOpener func(filepath string) (FrameReader, error)

// ReaderPool keeps a small number of idle FrameReaders per source file ready
// for reuse, grounded on openReaders/readyReaders in the original engine's
// roots/load.py: a queue (not a stack) per filepath, so a LoadedVideoClip is
// more likely to reuse a reader an equivalent clip used in a previous
// session. Unlike the original, which never bounded the number of distinct
// files kept open, the outer index here is an LRU of bounded size: once more
// distinct files than maxFiles have outstanding readers, the pool closes and
// evicts the least-recently-touched file's idle readers first.
type ReaderPool struct {
	mu     sync.Mutex
	opener ReaderOpener
	idle   *lru.Cache[string, *readerQueue]
}

type readerQueue struct {
	readers []FrameReader
}

// NewReaderPool returns a pool that opens readers via opener and keeps idle
// readers for at most maxFiles distinct filepaths at once.
func NewReaderPool(opener ReaderOpener, maxFiles int) (*ReaderPool, error) {
	p := &ReaderPool{opener: opener}
	cache, err := lru.NewWithEvict[string, *readerQueue](maxFiles, p.onEvict)
	if err != nil {
		return nil, fmt.Errorf("NewReaderPool: %w", err)
	}
	p.idle = cache
	return p, nil
}

// onEvict runs (under p.mu, from Acquire/Release) when the LRU drops a
// filepath to make room for a more recently touched one; every idle reader
// for that file is closed rather than leaked.
func (p *ReaderPool) onEvict(_ string, q *readerQueue) {
	for _, r := range q.readers {
		_ = r.Close()
	}
}

// Acquire returns a FrameReader for filepath, reusing an idle one if the
// pool has one, opening a fresh one otherwise. Returns ErrFileNotFound if
// filepath does not exist on disk.
func (p *ReaderPool) Acquire(filepath string) (FrameReader, error) {
	if _, err := os.Stat(filepath); err != nil {
		return nil, fmt.Errorf("Acquire(%s): %w", filepath, ErrFileNotFound)
	}

	p.mu.Lock()
	if q, ok := p.idle.Get(filepath); ok && len(q.readers) > 0 {
		r := q.readers[0]
		q.readers = q.readers[1:]
		if len(q.readers) == 0 {
			p.idle.Remove(filepath)
		}
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()

	return p.opener(filepath)
}

// Release returns reader to the idle pool for filepath so a future Acquire
// of the same file can reuse it instead of opening a new one.
func (p *ReaderPool) Release(filepath string, reader FrameReader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if q, ok := p.idle.Get(filepath); ok {
		q.readers = append(q.readers, reader)
		return
	}
	p.idle.Add(filepath, &readerQueue{readers: []FrameReader{reader}})
}

// Close closes every idle reader currently held by the pool.
func (p *ReaderPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, filepath := range p.idle.Keys() {
		if q, ok := p.idle.Peek(filepath); ok {
			for _, r := range q.readers {
				_ = r.Close()
			}
		}
	}
	p.idle.Purge()
	return nil
}
