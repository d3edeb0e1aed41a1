// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package extract

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeonsoo-p/liberg/schema"
	"github.com/yeonsoo-p/liberg/workerpool"
)

func twoSignalLayout() *schema.RowLayout {
	return &schema.RowLayout{
		RowSize: 12,
		Signals: []schema.Signal{
			{Name: "A", Type: schema.I32, Factor: 1, Offset: 0, ColumnOffset: 0},
			{Name: "B", Type: schema.F64, Factor: 1, Offset: 0, ColumnOffset: 4},
		},
	}
}

func buildRows(rows [][2]float64) []byte {
	buf := make([]byte, len(rows)*12)
	for i, r := range rows {
		binary.LittleEndian.PutUint32(buf[i*12:], uint32(int32(r[0])))
		binary.LittleEndian.PutUint64(buf[i*12+4:], math.Float64bits(r[1]))
	}
	return buf
}

func TestTwoSignalBinaryExtraction(t *testing.T) {
	layout := twoSignalLayout()
	data := buildRows([][2]float64{{1, 10.0}, {2, 20.0}, {3, 30.0}})

	colA, ok := GetSignal(layout, data, 3, "A", nil)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3}, colA.Int32())

	colB, ok := GetSignal(layout, data, 3, "B", nil)
	require.True(t, ok)
	assert.Equal(t, []float64{10.0, 20.0, 30.0}, colB.Float64())
}

func TestScalingApplied(t *testing.T) {
	layout := &schema.RowLayout{
		RowSize: 8,
		Signals: []schema.Signal{
			{Name: "T", Type: schema.F64, Factor: 2.0, Offset: 5.0, ColumnOffset: 0},
		},
	}
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(1.0))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(2.0))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(3.0))

	col, ok := GetSignal(layout, buf, 3, "T", nil)
	require.True(t, ok)
	assert.Equal(t, []float64{7.0, 9.0, 11.0}, col.Float64())
}

func TestMissingSignalReturnsFalse(t *testing.T) {
	layout := twoSignalLayout()
	data := buildRows([][2]float64{{1, 10}})
	_, ok := GetSignal(layout, data, 1, "C", nil)
	assert.False(t, ok)
}

func TestZeroSampleCountReturnsFalse(t *testing.T) {
	layout := twoSignalLayout()
	_, ok := GetSignal(layout, []byte{}, 0, "A", nil)
	assert.False(t, ok)
}

func TestNoScalingWhenFactorOneOffsetZero(t *testing.T) {
	layout := &schema.RowLayout{
		RowSize: 4,
		Signals: []schema.Signal{{Name: "A", Type: schema.I32, Factor: 1.0, Offset: 0.0}},
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(42))
	col, ok := GetSignal(layout, buf, 1, "A", nil)
	require.True(t, ok)
	assert.Equal(t, []int32{42}, col.Int32())
}

func TestGetSignalAsDoubleAppliesScalingWithoutTruncation(t *testing.T) {
	layout := &schema.RowLayout{
		RowSize: 4,
		Signals: []schema.Signal{{Name: "A", Type: schema.I32, Factor: 1.5, Offset: 0.5}},
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:], uint32(int32(2)))
	binary.LittleEndian.PutUint32(buf[4:], uint32(int32(4)))

	out, ok := GetSignalAsDouble(layout, buf, 2, "A", nil)
	require.True(t, ok)
	assert.Equal(t, []float64{3.5, 6.5}, out)
}

func TestIntegerScalingTruncatesFactorAndOffset(t *testing.T) {
	// spec.md §9's documented quirk: factor/offset are cast to the
	// signal's integer type before the multiply-add on the in-place
	// (non-double) path, truncating any fractional part.
	layout := &schema.RowLayout{
		RowSize: 4,
		Signals: []schema.Signal{{Name: "A", Type: schema.I32, Factor: 1.9, Offset: 0.9}},
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(int32(10)))
	col, ok := GetSignal(layout, buf, 1, "A", nil)
	require.True(t, ok)
	// factor truncates to 1, offset truncates to 0: 10*1+0 == 10.
	assert.Equal(t, []int32{10}, col.Int32())
}

func TestParallelDeterminismMatchesSerial(t *testing.T) {
	const n = 50_000
	layout := &schema.RowLayout{
		RowSize: 4,
		Signals: []schema.Signal{{Name: "A", Type: schema.I32, Factor: 1, Offset: 0}},
	}
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(i)))
	}

	serial, ok := GetSignal(layout, buf, n, "A", nil)
	require.True(t, ok)

	pool := workerpool.New(2)
	defer pool.Destroy()
	parallel, ok := GetSignal(layout, buf, n, "A", pool)
	require.True(t, ok)

	assert.Equal(t, serial.Raw, parallel.Raw)
}

func TestColumnInfoDoesNotAllocateOutput(t *testing.T) {
	layout := twoSignalLayout()
	sig, ok := ColumnInfo(layout, "B")
	require.True(t, ok)
	assert.Equal(t, schema.F64, sig.Type)

	_, ok = ColumnInfo(layout, "nope")
	assert.False(t, ok)
}
