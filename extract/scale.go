// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package extract

import "github.com/yeonsoo-p/liberg/schema"

// applyScaling applies sig.Factor/sig.Offset to raw in place, in the
// signal's native numeric type, iff factor != 1.0 or offset != 0.0
// (spec.md §4.7 step 6). For integer types, factor and offset are cast
// to the native integer type *before* the multiply-add, which truncates
// any fractional part. This is spec.md §9's documented Open Question:
// the source sometimes does this, and it is preserved here rather than
// "fixed" — a non-integer factor/offset applied to an integer column
// silently loses its fractional part.
func applyScaling(raw []byte, sig schema.Signal) {
	if sig.Factor == 1.0 && sig.Offset == 0.0 {
		return
	}
	switch sig.Type {
	case schema.F32:
		s := reinterpret[float32](raw)
		f, o := float32(sig.Factor), float32(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.F64:
		s := reinterpret[float64](raw)
		f, o := sig.Factor, sig.Offset
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.I8:
		s := reinterpret[int8](raw)
		f, o := int8(sig.Factor), int8(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.U8:
		f, o := uint8(sig.Factor), uint8(sig.Offset)
		for i := range raw {
			raw[i] = raw[i]*f + o
		}
	case schema.I16:
		s := reinterpret[int16](raw)
		f, o := int16(sig.Factor), int16(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.U16:
		s := reinterpret[uint16](raw)
		f, o := uint16(sig.Factor), uint16(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.I32:
		s := reinterpret[int32](raw)
		f, o := int32(sig.Factor), int32(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.U32:
		s := reinterpret[uint32](raw)
		f, o := uint32(sig.Factor), uint32(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.I64:
		s := reinterpret[int64](raw)
		f, o := int64(sig.Factor), int64(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	case schema.U64:
		s := reinterpret[uint64](raw)
		f, o := uint64(sig.Factor), uint64(sig.Offset)
		for i := range s {
			s[i] = s[i]*f + o
		}
	default:
		// Bytes(n) columns are opaque blobs; scaling has no defined
		// meaning for them and is skipped, matching the source's
		// behavior of only scaling signals declared with a numeric type.
	}
}

// widenToDouble widens every element of raw (encoded per sig.Type) into
// out as a float64, without applying factor/offset — the caller
// (GetSignalAsDouble) applies scaling afterward, in floating point, with
// no truncating cast.
func widenToDouble(out []float64, raw []byte, sig schema.Signal) {
	switch sig.Type {
	case schema.F32:
		s := reinterpret[float32](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	case schema.F64:
		copy(out, reinterpret[float64](raw))
	case schema.I8:
		s := reinterpret[int8](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	case schema.U8:
		for i, v := range raw {
			out[i] = float64(v)
		}
	case schema.I16:
		s := reinterpret[int16](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	case schema.U16:
		s := reinterpret[uint16](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	case schema.I32:
		s := reinterpret[int32](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	case schema.U32:
		s := reinterpret[uint32](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	case schema.I64:
		s := reinterpret[int64](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	case schema.U64:
		s := reinterpret[uint64](raw)
		for i, v := range s {
			out[i] = float64(v)
		}
	default:
		for i := range out {
			out[i] = 0
		}
	}
}
