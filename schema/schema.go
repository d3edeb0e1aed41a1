// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"strconv"

	"github.com/yeonsoo-p/liberg/infofile"
	"v.io/x/lib/vlog"
)

// Signal describes one named, typed column, per spec.md §3.
type Signal struct {
	Name   string
	Type   Type
	Unit   string
	Factor float64
	Offset float64

	// ColumnOffset is the byte offset of this signal's field within a
	// row, computed by Bind as the sum of the sizes of all preceding
	// signals in declaration order.
	ColumnOffset int
}

// TypeSize is a convenience accessor equal to Type.Size().
func (s Signal) TypeSize() int { return s.Type.Size() }

// RowLayout is the derived per-row geometry: the sum of every signal's
// type size, and each signal's column offset within that sum.
type RowLayout struct {
	RowSize int
	Signals []Signal
}

// ByName returns the index of the signal with the given name, or -1.
// Resolution is a linear scan (spec.md §4.7 step 1): acceptable given
// N <= ~10^3 signals and the typical usage pattern of extracting a
// signal once per request.
func (l *RowLayout) ByName(name string) int {
	for i := range l.Signals {
		if l.Signals[i].Name == name {
			return i
		}
	}
	return -1
}

// requiredByteOrder is the only value spec.md §4.5 step 1 accepts.
const requiredByteOrder = "LittleEndian"

// Bind projects table onto a RowLayout, per spec.md §4.5:
//
//  1. File.ByteOrder must equal "LittleEndian"; anything else is fatal.
//  2. File.At.<i>.Name is read for i = 1, 2, ... until the first absent
//     index; N = i-1 signals are declared.
//  3. For each signal, File.At.<i>.Type (or the StorageType alias, see
//     SPEC_FULL.md §4.5) is read and mapped to a Type; Quantity.<name>.
//     {Unit,Factor,Offset} are read with defaults "", 1.0, 0.0.
//
// Missing File.ByteOrder or an unsupported value, and a missing
// File.At.<i>.Type for a declared signal, are fatal (spec.md §7):
// they indicate a malformed or unsupported archive, not a query that can
// politely return "not found".
func Bind(table *infofile.Table) *RowLayout {
	byteOrder, ok := table.LookupString("File.ByteOrder")
	if !ok {
		vlog.Fatalf("schema: required key File.ByteOrder is absent")
	}
	if byteOrder != requiredByteOrder {
		vlog.Fatalf("schema: unsupported File.ByteOrder %q (only %q is supported)", byteOrder, requiredByteOrder)
	}

	var signals []Signal
	for i := 1; ; i++ {
		name, ok := table.LookupString(fmt.Sprintf("File.At.%d.Name", i))
		if !ok {
			break
		}
		signals = append(signals, bindOneSignal(table, i, name))
	}

	layout := &RowLayout{Signals: signals}
	offset := 0
	for i := range layout.Signals {
		layout.Signals[i].ColumnOffset = offset
		offset += layout.Signals[i].TypeSize()
	}
	layout.RowSize = offset
	if layout.RowSize <= 0 {
		vlog.Fatalf("schema: derived row_size is %d (must be > 0); check for an unrecognized signal type", layout.RowSize)
	}
	return layout
}

func bindOneSignal(table *infofile.Table, index int, name string) Signal {
	typeKey := fmt.Sprintf("File.At.%d.Type", index)
	typeToken, ok := table.LookupString(typeKey)
	if !ok {
		// StorageType is accepted as an alias for older sidecars (see
		// SPEC_FULL.md §4.5); genuinely optional.
		typeToken, ok = table.LookupString(fmt.Sprintf("File.At.%d.StorageType", index))
	}
	if !ok {
		vlog.Fatalf("schema: signal %q (index %d) has no %s", name, index, typeKey)
	}
	t, recognized := parseType(typeToken)
	if !recognized {
		vlog.Error(fmt.Sprintf("schema: signal %q has unrecognized type token %q", name, typeToken))
	}

	unit, _ := table.LookupString(fmt.Sprintf("Quantity.%s.Unit", name))
	factor := lookupFloatDefault(table, fmt.Sprintf("Quantity.%s.Factor", name), 1.0)
	offset := lookupFloatDefault(table, fmt.Sprintf("Quantity.%s.Offset", name), 0.0)

	return Signal{
		Name:   name,
		Type:   t,
		Unit:   unit,
		Factor: factor,
		Offset: offset,
	}
}

func lookupFloatDefault(table *infofile.Table, key string, def float64) float64 {
	s, ok := table.LookupString(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		vlog.Error(fmt.Sprintf("schema: key %s has non-numeric value %q, using default %v", key, s, def))
		return def
	}
	return v
}
