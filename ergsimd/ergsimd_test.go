// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ergsimd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByte32(t *testing.T) {
	buf := make([]byte, 100)
	buf[57] = 'X'
	assert.Equal(t, 57, FindByte32(buf, 'X'))
	assert.Equal(t, -1, FindByte32(buf, 'Y'))
}

func TestFindAnyOf3Priority(t *testing.T) {
	off, sep := FindAnyOf3([]byte("path:/tmp:/var = old"))
	assert.Equal(t, 4, off)
	assert.Equal(t, SepColon, sep)

	off, sep = FindAnyOf3([]byte("  # comment : = "))
	assert.Equal(t, 2, off)
	assert.Equal(t, SepComment, sep)
}

func TestTrim(t *testing.T) {
	assert.Equal(t, []byte("hello"), Trim([]byte("  \thello\r\n")))
	assert.Equal(t, []byte{}, Trim([]byte("   ")))
}

func buildRows(t *testing.T, elemSize, stride, colOffset, count int, fill func(i int) uint64) []byte {
	t.Helper()
	buf := make([]byte, count*stride+colOffset+elemSize)
	for i := 0; i < count; i++ {
		v := fill(i)
		off := i*stride + colOffset
		for b := 0; b < elemSize; b++ {
			buf[off+b] = byte(v >> (8 * uint(b)))
		}
	}
	return buf
}

func TestGatherMatchesScalarAtEveryLevel(t *testing.T) {
	const (
		stride    = 13
		colOffset = 5
		count     = 997
	)
	for _, elemSize := range []int{1, 2, 4, 8} {
		src := buildRows(t, elemSize, stride, colOffset, count, func(i int) uint64 {
			return uint64(i)*0x9e3779b1 + 12345
		})
		want := make([]byte, count*elemSize)
		gatherScalar(want, src, elemSize, stride, colOffset, count)

		for _, level := range []Level{None, SSE2, AVX2, AVX512} {
			SetLevelForTesting(level)
			got := make([]byte, count*elemSize)
			Gather(got, src, elemSize, stride, colOffset, count)
			assert.Equal(t, want, got, "elemSize=%d level=%v", elemSize, level)
		}
	}
	SetLevelForTesting(-1)
}

func TestGatherZeroCount(t *testing.T) {
	dst := []byte{}
	src := []byte{1, 2, 3, 4}
	Gather(dst, src, 4, 4, 0, 0)
	require.Len(t, dst, 0)
}
