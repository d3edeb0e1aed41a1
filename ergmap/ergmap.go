// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package ergmap opens the binary data file of an archive read-only and
// exposes its data region as a memory-mapped byte span (spec.md §4.6).
// Mapping, rather than a bulk read, lets the OS pager serve the strided,
// column-at-a-time access pattern the extractor performs — the same
// rationale the teacher applies to mmap'ing an anonymous hash table in
// fusion/kmer_index.go, here applied to a read-only file view instead.
package ergmap

import "github.com/pkg/errors"

// HeaderSize is the size of the binary file's opaque header, per
// spec.md §4.6 and §6.
const HeaderSize = 16

// Mapping is a read-only view of one binary data file.
type Mapping struct {
	// Region is the read-only byte span of the file's data region
	// (everything after the HeaderSize-byte header).
	Region []byte

	whole []byte
	close func() error
}

// Open opens path read-only and maps its full contents. The returned
// Mapping's Region is the span starting at byte HeaderSize; if the file
// is smaller than HeaderSize, Region is empty.
func Open(path string) (*Mapping, error) {
	return openImpl(path)
}

func newMapping(whole []byte, closeFn func() error) *Mapping {
	region := whole
	if len(region) > HeaderSize {
		region = region[HeaderSize:]
	} else {
		region = region[:0]
	}
	return &Mapping{Region: region, whole: whole, close: closeFn}
}

// SampleCount returns floor(len(Region) / rowSize), and whether the
// region's length was an exact multiple of rowSize. rowSize must be > 0.
func (m *Mapping) SampleCount(rowSize int) (count int, exact bool) {
	if rowSize <= 0 {
		return 0, false
	}
	count = len(m.Region) / rowSize
	exact = len(m.Region)%rowSize == 0
	return
}

// Close unmaps the file and closes the underlying handle.
func (m *Mapping) Close() error {
	if m.close == nil {
		return nil
	}
	err := m.close()
	m.close = nil
	m.Region = nil
	m.whole = nil
	if err != nil {
		return errors.Wrap(err, "ergmap: close")
	}
	return nil
}
