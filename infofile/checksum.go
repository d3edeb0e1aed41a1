// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package infofile

import "blainsmith.com/go/seahash"

// Checksum returns a fast, non-cryptographic hash of buf, the raw
// sidecar bytes as passed to Parse. It is exposed so that a caller
// maintaining its own cache of parsed Tables (this package maintains
// none, per spec.md's no-decoded-column-caching non-goal) can key that
// cache by content rather than by path.
func Checksum(buf []byte) uint64 {
	h := seahash.New()
	_, _ = h.Write(buf)
	return h.Sum64()
}
