// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ergsimd

// FindByte32 returns the offset of the first occurrence of needle in buf,
// scanning BytesPerVec(CurrentLevel()) bytes per step with a scalar tail,
// or -1 if needle does not occur.
//
// WARNING: this is an inner-loop primitive; it performs no bounds checks
// beyond what Go's slice indexing already guarantees.
func FindByte32(buf []byte, needle byte) int {
	step := BytesPerVec(CurrentLevel())
	i := 0
	for ; i+step <= len(buf); i += step {
		for j := 0; j < step; j++ {
			if buf[i+j] == needle {
				return i + j
			}
		}
	}
	for ; i < len(buf); i++ {
		if buf[i] == needle {
			return i
		}
	}
	return -1
}

// Separator identifies which of the classifying bytes FindAnyOf3 matched.
type Separator int

const (
	// SepNone means none of the needles occurred in the scanned buffer.
	SepNone Separator = iota
	// SepComment is '#'.
	SepComment
	// SepEquals is '='.
	SepEquals
	// SepColon is ':'.
	SepColon
)

// FindAnyOf3 scans buf for the first of '#', '=', ':', returning its
// offset and which one it was. '#' takes priority over an '=' or ':' at
// the same offset (it cannot occur at the same offset as another needle,
// but the priority rule matches spec.md's classification order exactly:
// a comment line is never reinterpreted as a single- or multi-line
// entry).
func FindAnyOf3(buf []byte) (int, Separator) {
	for i, b := range buf {
		switch b {
		case '#':
			return i, SepComment
		case '=':
			return i, SepEquals
		case ':':
			return i, SepColon
		}
	}
	return -1, SepNone
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// SkipLeadingWS returns the offset of the first non-whitespace byte in
// buf, or len(buf) if buf is all whitespace. Whitespace is
// {' ','\t','\r','\n'}.
func SkipLeadingWS(buf []byte) int {
	i := 0
	for i < len(buf) && isSpace(buf[i]) {
		i++
	}
	return i
}

// SkipTrailingWS returns the length of buf with trailing whitespace
// removed. Whitespace is {' ','\t','\r','\n'}.
func SkipTrailingWS(buf []byte) int {
	n := len(buf)
	for n > 0 && isSpace(buf[n-1]) {
		n--
	}
	return n
}

// Trim returns buf with leading and trailing ASCII whitespace removed, as
// a sub-slice (no copy).
func Trim(buf []byte) []byte {
	start := SkipLeadingWS(buf)
	end := SkipTrailingWS(buf[start:])
	return buf[start : start+end]
}
