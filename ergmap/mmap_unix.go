// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// +build linux darwin

package ergmap

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// openImpl opens path read-only and mmaps its full contents, the same
// unix.Mmap/unix.Munmap idiom fusion/kmer_index.go uses for an anonymous
// hugepage-backed table, applied here to a real file with MAP_SHARED
// instead of MAP_ANON|MAP_PRIVATE.
func openImpl(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "ergmap: open")
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "ergmap: stat")
	}
	size := fi.Size()
	if size == 0 {
		// mmap of a zero-length file is invalid; expose an empty mapping.
		return newMapping(nil, f.Close), nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "ergmap: mmap")
	}

	closed := false
	closeFn := func() error {
		if closed {
			return nil
		}
		closed = true
		if err := unix.Munmap(data); err != nil {
			f.Close()
			return errors.Wrap(err, "ergmap: munmap")
		}
		return f.Close()
	}
	return newMapping(data, closeFn), nil
}
