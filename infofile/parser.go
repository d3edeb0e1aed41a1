// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package infofile

import (
	"bytes"

	"github.com/yeonsoo-p/liberg/arena"
	"github.com/yeonsoo-p/liberg/ergsimd"
	"v.io/x/lib/vlog"
)

// Stats summarizes one Parse call, logged at vlog.VI(1) by callers that
// care (erg.Open does). It mirrors the per-shard counters pamreader.go
// logs after a read.
type Stats struct {
	NumEntries           int
	NumContinuationLines int
	NumSkippedLines      int
	BytesScanned         int
}

// entriesPerByte and the key/value arena ratios below are the pre-sizing
// estimates from spec.md §4.4: given file size F, reserve ceil(F/150)
// entry slots, F/3 bytes in the key arena, and 5F/3 bytes in the value
// arena before parsing. These are upper bounds chosen to make the common
// case allocation-free.
const (
	bytesPerEntryEstimate = 150
	keyArenaDivisor       = 3
	valueArenaNumerator   = 5
	valueArenaDivisor     = 3
)

// EstimateSizes returns the pre-sizing estimates for a file of size f
// bytes: the number of entry slots, key arena bytes, and value arena
// bytes to reserve before parsing.
func EstimateSizes(f int) (entries, keyBytes, valueBytes int) {
	entries = (f + bytesPerEntryEstimate - 1) / bytesPerEntryEstimate
	keyBytes = f / keyArenaDivisor
	valueBytes = f * valueArenaNumerator / valueArenaDivisor
	return
}

// Parse tokenizes buf (the full contents of a sidecar file) and returns a
// populated Table. buf is not retained or modified; every Entry's Key and
// Value are freshly allocated copies in the returned Table's arenas.
func Parse(buf []byte) (*Table, Stats) {
	entryCap, keyBytes, valueBytes := EstimateSizes(len(buf))
	arenas := arena.NewDual(keyBytes, valueBytes)
	return ParseInto(buf, arenas, entryCap)
}

// ParseInto tokenizes buf into a Table backed by the given arenas,
// pre-sizing the entry slice to entryCap. Use this when the caller wants
// to control arena sizing directly instead of the estimate in Parse.
func ParseInto(buf []byte, arenas *arena.DualArena, entryCap int) (*Table, Stats) {
	t := newTable(arenas, entryCap)
	var stats Stats
	stats.BytesScanned = len(buf)

	var (
		pendingKey  []byte
		scratch     bytes.Buffer
		haveScratch bool // true once a seed or continuation line was written to scratch, even if its trimmed content was empty
	)

	commit := func() {
		if pendingKey == nil {
			return
		}
		value := scratch.Bytes()
		if value == nil {
			// A never-written bytes.Buffer yields nil; commit it as an
			// empty value rather than passing nil to the arena.
			value = []byte{}
		}
		t.append(pendingKey, value)
		stats.NumEntries++
		pendingKey = nil
		scratch.Reset()
		haveScratch = false
	}

	pos := 0
	for pos < len(buf) {
		end := bytes.IndexByte(buf[pos:], '\n')
		var line []byte
		if end < 0 {
			line = buf[pos:]
			pos = len(buf)
		} else {
			line = buf[pos : pos+end]
			pos += end + 1
		}
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}

		if pendingKey != nil && isContinuation(line) {
			cont := ergsimd.Trim(line)
			if haveScratch && scratch.Len() > 0 {
				scratch.WriteByte('\n')
			}
			scratch.Write(cont)
			haveScratch = true
			stats.NumContinuationLines++
			continue
		}

		if isBlank(line) || isCommentLine(line) {
			if pendingKey == nil {
				stats.NumSkippedLines++
			}
			// Inside an open multi-line entry, blank/comment lines are
			// skipped without committing (spec.md §4.4): the entry is
			// only committed by the next non-continuation,
			// non-blank, non-comment line, or EOF.
			continue
		}

		// A non-continuation, non-blank, non-comment line: commit any
		// pending multi-line entry, then classify this line fresh.
		commit()

		off, sep := ergsimd.FindAnyOf3(line)
		switch sep {
		case ergsimd.SepComment:
			// Shouldn't normally reach here (isCommentLine above already
			// catches '#' at the first non-whitespace byte), but a line
			// like "x #y" still has no recognized separator before the
			// '#' and must be discarded per spec.md's scan-for-first-of
			// rule if '#' is the first of the three found.
			stats.NumSkippedLines++
		case ergsimd.SepEquals:
			key := ergsimd.Trim(line[:off])
			value := ergsimd.Trim(line[off+1:])
			t.append(key, value)
			stats.NumEntries++
		case ergsimd.SepColon:
			key := ergsimd.Trim(line[:off])
			seed := ergsimd.Trim(line[off+1:])
			pendingKey = append([]byte(nil), key...)
			scratch.Reset()
			haveScratch = false
			if len(seed) > 0 {
				scratch.Write(seed)
				haveScratch = true
			}
		default:
			stats.NumSkippedLines++
		}
	}
	commit()

	vlog.VI(1).Infof("infofile: parsed %d entries (%d continuation lines, %d skipped lines) from %d bytes",
		stats.NumEntries, stats.NumContinuationLines, stats.NumSkippedLines, stats.BytesScanned)
	return t, stats
}

func isBlank(line []byte) bool {
	return len(ergsimd.Trim(line)) == 0
}

func isCommentLine(line []byte) bool {
	i := ergsimd.SkipLeadingWS(line)
	return i < len(line) && line[i] == '#'
}

// isContinuation reports whether line's first byte marks it as a
// continuation line: '\t', or ' ' followed by any non-null byte.
func isContinuation(line []byte) bool {
	if len(line) == 0 {
		return false
	}
	if line[0] == '\t' {
		return true
	}
	if line[0] == ' ' {
		return len(line) > 1 && line[1] != 0
	}
	return false
}
