// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package schema

import (
	"strconv"
	"strings"

	farm "github.com/dgryski/go-farm"
)

// Fingerprint returns a cheap structural fingerprint of the row layout:
// a hash of the name+type+column-offset sequence, ignoring Unit/Factor/
// Offset. Two archives with the same Fingerprint are guaranteed to have
// the same row geometry, so a caller extracting the same named signal
// from both can reuse a single decode plan. This is a caller-side
// convenience, not a cache this library maintains itself (spec.md's
// no-decoded-column-caching non-goal applies to this library's own
// behavior, not to what a caller builds on top of it).
func (l *RowLayout) Fingerprint() uint64 {
	var sb strings.Builder
	for _, s := range l.Signals {
		sb.WriteString(s.Name)
		sb.WriteByte(0)
		sb.WriteString(strconv.Itoa(int(s.Type)))
		sb.WriteByte(0)
		sb.WriteString(strconv.Itoa(s.ColumnOffset))
		sb.WriteByte(0)
	}
	return farm.Hash64([]byte(sb.String()))
}
