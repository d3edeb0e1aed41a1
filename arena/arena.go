// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package arena implements a chunk-chained bump allocator.
//
// An Arena hands out []byte slices backed by a chain of fixed-size chunks.
// Unlike a single growable buffer, a chunk never moves once allocated, so a
// slice returned by Alloc remains valid until the Arena is Reset or Freed,
// even while the Arena keeps growing. This is required by infofile, which
// interleaves writing new entries with holding references to previously
// written keys.
package arena

import (
	"v.io/x/lib/vlog"
)

// defaultChunkSize is used by Init when no better estimate is known.
const defaultChunkSize = 64 * 1024

// maxChunkSize bounds the doubling of the next chunk size. An Alloc of n
// bytes that fits in no chunk still gets a chunk of 2n bytes when 2n is
// larger, so a single chunk can exceed this size.
const maxChunkSize = 16 * 1024 * 1024

type chunk struct {
	buf  []byte
	used int
	next *chunk
}

func (c *chunk) free() int { return len(c.buf) - c.used }

// Arena is a chunk-chained bump allocator. The zero value is not usable;
// construct with Init.
type Arena struct {
	first, cur *chunk
	nextSize   int // size of the next chunk appended by Reserve/alloc overflow
}

// Init allocates one chunk of initialSize bytes and makes it the Arena's
// first and current chunk. initialSize <= 0 is replaced by a default.
func Init(initialSize int) *Arena {
	if initialSize <= 0 {
		initialSize = defaultChunkSize
	}
	a := &Arena{}
	c := newChunk(initialSize)
	a.first = c
	a.cur = c
	a.nextSize = nextChunkSize(initialSize)
	return a
}

func newChunk(size int) *chunk {
	buf := make([]byte, 0, size)
	if cap(buf) < size {
		vlog.Fatalf("arena: chunk allocation failed, size=%d", size)
	}
	return &chunk{buf: buf[:size]}
}

func nextChunkSize(prev int) int {
	next := prev * 2
	if next > maxChunkSize || next <= 0 {
		next = maxChunkSize
	}
	return next
}

// Reserve appends chunks, doubling the per-chunk size up to maxChunkSize,
// until the Arena's total capacity is at least total. It never copies
// existing chunks, so it never invalidates a previously handed-out slice.
func (a *Arena) Reserve(total int) {
	if a.Capacity() >= total {
		return
	}
	for a.Capacity() < total {
		a.appendChunk(a.nextSize)
		a.nextSize = nextChunkSize(a.nextSize)
	}
}

func (a *Arena) appendChunk(size int) *chunk {
	c := newChunk(size)
	a.cur.next = c
	a.cur = c
	return c
}

// Alloc returns a slice of n freshly allocated bytes. Bytes from a fresh
// chunk are zero; after Reset, bytes may still hold data written before
// the Reset. It never returns nil. Allocation failure (out of memory) is
// fatal.
func (a *Arena) Alloc(n int) []byte {
	if n < 0 {
		vlog.Fatalf("arena: negative alloc size %d", n)
	}
	if n == 0 {
		return a.cur.buf[a.cur.used:a.cur.used]
	}
	if a.cur.free() >= n {
		return a.bump(a.cur, n)
	}
	// Scan the chain for any chunk with enough free space (bounded by
	// #chunks) before appending a new one.
	for c := a.first; c != nil; c = c.next {
		if c.free() >= n {
			return a.bump(c, n)
		}
	}
	size := a.nextSize
	if 2*n > size {
		size = 2 * n
	}
	c := a.appendChunk(size)
	a.nextSize = nextChunkSize(a.nextSize)
	return a.bump(c, n)
}

func (a *Arena) bump(c *chunk, n int) []byte {
	s := c.buf[c.used : c.used+n : c.used+n]
	c.used += n
	return s
}

// Strdup allocates len(s)+1 bytes, copies s, and null-terminates it. The
// returned slice has length len(s); the trailing NUL is present at
// cap-1 for consumers that need a C-string tail. s must not be nil.
func (a *Arena) Strdup(s []byte) []byte {
	return a.Strndup(s, len(s))
}

// Strndup allocates n+1 bytes, copies the first n bytes of s (s must have
// at least n bytes), and null-terminates the result.
func (a *Arena) Strndup(s []byte, n int) []byte {
	if s == nil {
		vlog.Fatalf("arena: strndup of nil string")
	}
	b := a.Alloc(n + 1)
	copy(b, s[:n])
	b[n] = 0
	return b[:n:n+1]
}

// Reset marks every chunk as empty (used=0) without freeing them.
// Previously returned slices are invalidated; callers must not read or
// write them after Reset.
func (a *Arena) Reset() {
	for c := a.first; c != nil; c = c.next {
		c.used = 0
	}
	a.cur = a.first
}

// Free drops references to every chunk, allowing the garbage collector to
// reclaim them. Like Reset, it invalidates every previously returned slice.
func (a *Arena) Free() {
	a.first = nil
	a.cur = nil
}

// Used returns the total number of bytes allocated across all chunks.
func (a *Arena) Used() int {
	n := 0
	for c := a.first; c != nil; c = c.next {
		n += c.used
	}
	return n
}

// Capacity returns the total number of bytes available across all chunks.
func (a *Arena) Capacity() int {
	n := 0
	for c := a.first; c != nil; c = c.next {
		n += len(c.buf)
	}
	return n
}

// NumChunks returns the number of chunks currently held.
func (a *Arena) NumChunks() int {
	n := 0
	for c := a.first; c != nil; c = c.next {
		n++
	}
	return n
}
