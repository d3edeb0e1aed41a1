// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package extract turns a signal request into a freshly allocated,
// scaled, typed column (spec.md §4.7). It is a pure transform: mapped
// bytes plus an immutable schema in, a fresh owned buffer out. There is
// no state machine and nothing here suspends except, optionally, the
// workerpool barrier used for partitioned extraction.
package extract

import (
	"reflect"
	"unsafe"

	"github.com/yeonsoo-p/liberg/schema"
)

// Column is a freshly allocated, caller-owned typed array for one
// signal: sample_count elements of Signal.Type, native little-endian
// encoding, with scaling already applied (spec.md §4.7 step 6).
type Column struct {
	Signal schema.Signal
	Raw    []byte
}

// Len returns the number of samples in the column.
func (c Column) Len() int {
	size := c.Signal.TypeSize()
	if size == 0 {
		return 0
	}
	return len(c.Raw) / size
}

// Float32 reinterprets Raw as a []float32, valid when Signal.Type ==
// schema.F32. The returned slice aliases Raw; it must not outlive it.
func (c Column) Float32() []float32 { return reinterpret[float32](c.Raw) }

// Float64 reinterprets Raw as a []float64, valid when Signal.Type ==
// schema.F64.
func (c Column) Float64() []float64 { return reinterpret[float64](c.Raw) }

// Int8/Uint8/Int16/Uint16/Int32/Uint32/Int64/Uint64 reinterpret Raw as
// the matching native slice type, valid when Signal.Type matches.
func (c Column) Int8() []int8     { return reinterpret[int8](c.Raw) }
func (c Column) Uint8() []uint8    { return c.Raw }
func (c Column) Int16() []int16   { return reinterpret[int16](c.Raw) }
func (c Column) Uint16() []uint16 { return reinterpret[uint16](c.Raw) }
func (c Column) Int32() []int32   { return reinterpret[int32](c.Raw) }
func (c Column) Uint32() []uint32 { return reinterpret[uint32](c.Raw) }
func (c Column) Int64() []int64   { return reinterpret[int64](c.Raw) }
func (c Column) Uint64() []uint64 { return reinterpret[uint64](c.Raw) }

// reinterpret casts a []byte to []T without copying, in the same
// SliceHeader-reinterpretation idiom as encoding/bam/unsafe.go
// (UnsafeBytesToCigar et al.).
func reinterpret[T any](src []byte) []T {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 || len(src)%elemSize != 0 {
		return nil
	}
	sh := (*reflect.SliceHeader)(unsafe.Pointer(&src))
	var dst []T
	dh := (*reflect.SliceHeader)(unsafe.Pointer(&dst))
	dh.Data = sh.Data
	dh.Len = sh.Len / elemSize
	dh.Cap = sh.Cap / elemSize
	return dst
}
