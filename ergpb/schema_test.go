// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ergpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeonsoo-p/liberg/schema"
)

func sampleLayout() *schema.RowLayout {
	return &schema.RowLayout{
		RowSize: 12,
		Signals: []schema.Signal{
			{Name: "accel_x", Type: schema.F32, Unit: "m/s^2", Factor: 1, Offset: 0, ColumnOffset: 0},
			{Name: "temp", Type: schema.I32, Unit: "C", Factor: 0.1, Offset: -40, ColumnOffset: 4},
		},
	}
}

func TestFromSchemaRoundTripsThroughMarshal(t *testing.T) {
	want := sampleLayout()
	wire := FromSchema(want)

	buf, err := wire.Marshal()
	require.NoError(t, err)

	var got RowLayout
	require.NoError(t, got.Unmarshal(buf))

	back := got.ToSchema()
	require.Equal(t, len(want.Signals), len(back.Signals))
	for i := range want.Signals {
		assert.Equal(t, want.Signals[i].Name, back.Signals[i].Name)
		assert.Equal(t, want.Signals[i].Type, back.Signals[i].Type)
		assert.Equal(t, want.Signals[i].Unit, back.Signals[i].Unit)
		assert.Equal(t, want.Signals[i].Factor, back.Signals[i].Factor)
		assert.Equal(t, want.Signals[i].Offset, back.Signals[i].Offset)
		assert.Equal(t, want.Signals[i].ColumnOffset, back.Signals[i].ColumnOffset)
	}
	assert.Equal(t, want.RowSize, back.RowSize)
}

func TestUnmarshalEmptyBufferYieldsZeroValue(t *testing.T) {
	var l RowLayout
	require.NoError(t, l.Unmarshal(nil))
	assert.Equal(t, int32(0), l.RowSize)
	assert.Nil(t, l.Signals)
}

func TestUnmarshalRejectsUnknownTag(t *testing.T) {
	// field number 99, wire type 0 (varint): well-formed varint tag, but
	// not one either message recognizes.
	buf := appendVarint(nil, 99<<3|0, 1)
	var l RowLayout
	assert.Error(t, l.Unmarshal(buf))
}

func TestMarshalPreservesSignalOrder(t *testing.T) {
	wire := FromSchema(sampleLayout())
	buf, err := wire.Marshal()
	require.NoError(t, err)

	var got RowLayout
	require.NoError(t, got.Unmarshal(buf))
	require.Len(t, got.Signals, 2)
	assert.Equal(t, "accel_x", got.Signals[0].Name)
	assert.Equal(t, "temp", got.Signals[1].Name)
}
