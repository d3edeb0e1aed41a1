// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ergsimd

import "unsafe"

// BytesPerVec returns the number of bytes processed per gather/scan
// iteration at the given level: the width of the widest register that
// level's kernels pretend to fill (16/32/64 bytes for SSE2/AVX2/AVX512,
// 1 for None — the scalar step).
func BytesPerVec(l Level) int {
	switch l {
	case AVX512:
		return 64
	case AVX2:
		return 32
	case SSE2:
		return 16
	default:
		return 1
	}
}

// Gather copies count elements of size elemSize from src, strided by
// stride bytes starting at column offset colOffset, into dst. It
// dispatches on (CurrentLevel(), elemSize); a level with no kernel for
// elemSize falls back to the scalar loop. For every i in [0, count),
// dst[i*elemSize:(i+1)*elemSize] == src[i*stride+colOffset : i*stride+colOffset+elemSize].
//
// WARNING: dst must have length >= count*elemSize and src must have
// length >= (count-1)*stride+colOffset+elemSize. Neither is checked.
func Gather(dst, src []byte, elemSize, stride, colOffset, count int) {
	switch elemSize {
	case 1, 2, 4, 8:
	default:
		gatherScalar(dst, src, elemSize, stride, colOffset, count)
		return
	}
	switch CurrentLevel() {
	case AVX512:
		gather512(dst, src, elemSize, stride, colOffset, count)
	case AVX2:
		gather256(dst, src, elemSize, stride, colOffset, count)
	case SSE2:
		gather128(dst, src, elemSize, stride, colOffset, count)
	default:
		gatherScalar(dst, src, elemSize, stride, colOffset, count)
	}
}

// gatherScalar is the always-correct reference kernel: one element copied
// per loop iteration. Every wider kernel must produce byte-identical
// output to this one.
func gatherScalar(dst, src []byte, elemSize, stride, colOffset, count int) {
	for i := 0; i < count; i++ {
		srcOff := i*stride + colOffset
		dstOff := i * elemSize
		copy(dst[dstOff:dstOff+elemSize], src[srcOff:srcOff+elemSize])
	}
}

// gather128 processes ceil(16/elemSize) samples per iteration body before
// falling through to the scalar loop for the remainder. The unroll factor
// models the 128-bit register a true SSE2 kernel would fill; this
// implementation is plain Go, not assembly (see package doc).
func gather128(dst, src []byte, elemSize, stride, colOffset, count int) {
	unrolledGather(dst, src, elemSize, stride, colOffset, count, 16/elemSize)
}

// gather256 processes ceil(32/elemSize) samples per iteration body,
// modeling a 256-bit AVX2 gather (native strided gather for E in {4,8};
// gather-then-pack for E in {1,2} in a true vector implementation).
func gather256(dst, src []byte, elemSize, stride, colOffset, count int) {
	unrolledGather(dst, src, elemSize, stride, colOffset, count, 32/elemSize)
}

// gather512 processes ceil(64/elemSize) samples per iteration body,
// modeling a 512-bit AVX-512 gather.
func gather512(dst, src []byte, elemSize, stride, colOffset, count int) {
	unrolledGather(dst, src, elemSize, stride, colOffset, count, 64/elemSize)
}

// unrolledGather is the shared body for gather128/256/512: it copies
// `width` elements per outer-loop step using direct 1/2/4/8-byte stores
// through unsafe.Pointer, and falls back to copy() for any other
// element size.
// Every level's inner copy is byte-identical to gatherScalar by
// construction: it performs the exact same per-element copy, merely
// batched.
func unrolledGather(dst, src []byte, elemSize, stride, colOffset, count, width int) {
	if width < 1 {
		width = 1
	}
	i := 0
	for ; i+width <= count; i += width {
		for j := 0; j < width; j++ {
			idx := i + j
			srcOff := idx*stride + colOffset
			dstOff := idx * elemSize
			copyElem(dst, src, dstOff, srcOff, elemSize)
		}
	}
	for ; i < count; i++ {
		srcOff := i*stride + colOffset
		dstOff := i * elemSize
		copyElem(dst, src, dstOff, srcOff, elemSize)
	}
}

// copyElem moves elemSize bytes from src[srcOff:] to dst[dstOff:] using a
// single unsafe word load/store for the sizes that fit in a machine word,
// matching the "unsafe pointer reinterpretation" idiom used throughout
// this codebase's column code rather than calling copy() in the hot loop.
func copyElem(dst, src []byte, dstOff, srcOff, elemSize int) {
	switch elemSize {
	case 1:
		dst[dstOff] = src[srcOff]
	case 2:
		*(*uint16)(unsafe.Pointer(&dst[dstOff])) = *(*uint16)(unsafe.Pointer(&src[srcOff]))
	case 4:
		*(*uint32)(unsafe.Pointer(&dst[dstOff])) = *(*uint32)(unsafe.Pointer(&src[srcOff]))
	case 8:
		*(*uint64)(unsafe.Pointer(&dst[dstOff])) = *(*uint64)(unsafe.Pointer(&src[srcOff]))
	default:
		copy(dst[dstOff:dstOff+elemSize], src[srcOff:srcOff+elemSize])
	}
}
