// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package extract

import (
	"v.io/x/lib/vlog"

	"github.com/yeonsoo-p/liberg/ergsimd"
	"github.com/yeonsoo-p/liberg/schema"
	"github.com/yeonsoo-p/liberg/workerpool"
)

// MinSamplesPerThread is the threshold above which GetSignal partitions
// extraction across a supplied worker pool instead of running serially
// on the calling goroutine (spec.md §4.7 step 5).
const MinSamplesPerThread = 10_000

// numExtractPartitions is fixed at 2, matching the source's T=2.
const numExtractPartitions = 2

// ColumnInfo resolves name to its bound Signal without allocating an
// output column, for callers that only need the metadata (e.g. to list
// signals).
func ColumnInfo(layout *schema.RowLayout, name string) (schema.Signal, bool) {
	i := layout.ByName(name)
	if i < 0 {
		return schema.Signal{}, false
	}
	return layout.Signals[i], true
}

// GetSignal resolves name against layout and extracts it from data (the
// mapped data region, sampleCount full rows long) into a fresh Column
// with scaling already applied. pool may be nil, in which case
// extraction always runs serially on the calling goroutine.
//
// data must be non-nil whenever sampleCount > 0; a nil data region with
// a positive sampleCount indicates the caller skipped Open/parse and is
// a programmer error, not a query failure, so it is fatal rather than
// returning (Column{}, false).
func GetSignal(layout *schema.RowLayout, data []byte, sampleCount int, name string, pool *workerpool.Pool) (Column, bool) {
	i := layout.ByName(name)
	if i < 0 {
		return Column{}, false
	}
	sig := layout.Signals[i]
	if sampleCount == 0 {
		return Column{}, false
	}
	if data == nil {
		vlog.Fatalf("extract: mapped region is nil for signal %q; archive was not opened via erg.Open", name)
	}

	elemSize := sig.TypeSize()
	out := make([]byte, sampleCount*elemSize)
	extractInto(out, data, elemSize, layout.RowSize, sig.ColumnOffset, sampleCount, pool)
	applyScaling(out, sig)
	return Column{Signal: sig, Raw: out}, true
}

// GetSignalAsDouble performs the same resolution and gather as
// GetSignal, then widens every element to float64 and applies
// factor/offset in floating point (no truncating cast, unlike the
// in-place path — see scale.go).
func GetSignalAsDouble(layout *schema.RowLayout, data []byte, sampleCount int, name string, pool *workerpool.Pool) ([]float64, bool) {
	i := layout.ByName(name)
	if i < 0 {
		return nil, false
	}
	sig := layout.Signals[i]
	if sampleCount == 0 {
		return nil, false
	}
	if data == nil {
		vlog.Fatalf("extract: mapped region is nil for signal %q; archive was not opened via erg.Open", name)
	}

	elemSize := sig.TypeSize()
	raw := make([]byte, sampleCount*elemSize)
	extractInto(raw, data, elemSize, layout.RowSize, sig.ColumnOffset, sampleCount, pool)

	out := make([]float64, sampleCount)
	widenToDouble(out, raw, sig)
	for i := range out {
		out[i] = out[i]*sig.Factor + sig.Offset
	}
	return out, true
}

// extractInto gathers sampleCount elements of elemSize bytes, strided by
// rowSize starting at colOffset, from data into dst. When pool is
// non-nil and sampleCount is large enough, the work is split into
// numExtractPartitions contiguous, disjoint ranges and run on the pool;
// otherwise it runs serially. Both paths produce byte-identical output
// (spec.md §8 "Parallel determinism").
func extractInto(dst, data []byte, elemSize, rowSize, colOffset, sampleCount int, pool *workerpool.Pool) {
	if pool == nil || sampleCount < MinSamplesPerThread {
		ergsimd.Gather(dst, data, elemSize, rowSize, colOffset, sampleCount)
		return
	}

	parts := numExtractPartitions
	if parts > pool.Size() {
		parts = pool.Size()
	}
	if parts < 1 {
		parts = 1
	}
	base := sampleCount / parts
	rem := sampleCount % parts

	pool.Submit(func(p int) {
		start := p * base
		if p < rem {
			start += p
		} else {
			start += rem
		}
		count := base
		if p < rem {
			count++
		}
		if count == 0 {
			return
		}
		dstOff := start * elemSize
		srcOff := start * rowSize
		ergsimd.Gather(dst[dstOff:], data[srcOff:], elemSize, rowSize, colOffset, count)
	}, parts)
	pool.Wait()
}
