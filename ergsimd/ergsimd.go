// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package ergsimd provides the byte-scanning and strided-gather kernels
// used by infofile and extract. It mirrors the dispatch shape of
// biosimd: a runtime-detected Level, a scalar fallback that is always
// correct, and wider kernels that process more than one element per loop
// iteration. Unlike biosimd, the wider kernels here are plain Go
// (word-sized, unrolled loops through unsafe.Pointer) rather than hand
// written assembly, since this package is never built with an assembler
// in this exercise; see the package's doc comment for each kernel for the
// exact unroll factor used at each Level.
package ergsimd

import "golang.org/x/sys/cpu"

// Level identifies the widest kernel family available on this CPU.
type Level int

const (
	// None forces the scalar fallback.
	None Level = iota
	// SSE2 processes ceil(16/E) elements per iteration.
	SSE2
	// AVX2 processes ceil(32/E) elements per iteration.
	AVX2
	// AVX512 processes ceil(64/E) elements per iteration.
	AVX512
)

func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case SSE2:
		return "sse2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

var detectedLevel = detectLevel()

func detectLevel() Level {
	if cpu.X86.HasAVX512F {
		return AVX512
	}
	if cpu.X86.HasAVX2 {
		return AVX2
	}
	if cpu.X86.HasSSE2 {
		return SSE2
	}
	return None
}

var overrideLevel = -1 // -1 means "no override"

// DetectedLevel returns the SIMD level detected for this CPU at process
// start, ignoring any test override.
func DetectedLevel() Level { return detectedLevel }

// CurrentLevel returns the level that Gather and the byte-scan functions
// currently dispatch on: the test override if one is set via
// SetLevelForTesting, otherwise the detected level.
func CurrentLevel() Level {
	if overrideLevel >= 0 {
		return Level(overrideLevel)
	}
	return detectedLevel
}

// SetLevelForTesting overrides the dispatch level. Pass a negative value
// to clear the override and resume using the detected level.
func SetLevelForTesting(l Level) {
	if l < 0 {
		overrideLevel = -1
		return
	}
	overrideLevel = int(l)
}
