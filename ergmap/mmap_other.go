// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// +build !linux,!darwin

package ergmap

import (
	"os"

	"github.com/pkg/errors"
)

// openImpl reads the whole file into a heap buffer instead of mapping it,
// on platforms without the unix mmap syscalls this package otherwise
// uses. Semantics are identical from the caller's point of view; only
// the backing storage differs, the same "native path + portable
// fallback" split biosimd_amd64.go/biosimd_generic.go use for kernels.
func openImpl(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "ergmap: read")
	}
	return newMapping(data, func() error { return nil }), nil
}
