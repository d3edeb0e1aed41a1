// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package ergpb is a purely-derived protobuf mirror of schema.Signal and
// schema.RowLayout, for callers that want to ship a resolved schema
// across a process boundary (e.g. to a worker that only needs the row
// layout, not the sidecar text, and so should not have to re-parse it).
// It is hand-maintained in the gogo/protobuf idiom biopb uses, rather
// than generated by protoc, since this exercise never invokes one.
package ergpb

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/yeonsoo-p/liberg/schema"
)

// Signal is the wire form of schema.Signal.
type Signal struct {
	Name         string
	Type         int32
	Unit         string
	Factor       float64
	Offset       float64
	ColumnOffset int32
}

// RowLayout is the wire form of schema.RowLayout.
type RowLayout struct {
	RowSize int32
	Signals []*Signal
}

// FromSchema converts a schema.RowLayout to its wire form.
func FromSchema(l *schema.RowLayout) *RowLayout {
	out := &RowLayout{RowSize: int32(l.RowSize)}
	for _, s := range l.Signals {
		out.Signals = append(out.Signals, &Signal{
			Name:         s.Name,
			Type:         int32(s.Type),
			Unit:         s.Unit,
			Factor:       s.Factor,
			Offset:       s.Offset,
			ColumnOffset: int32(s.ColumnOffset),
		})
	}
	return out
}

// ToSchema converts a wire-form RowLayout back to schema.RowLayout.
func (l *RowLayout) ToSchema() *schema.RowLayout {
	out := &schema.RowLayout{RowSize: int(l.RowSize)}
	for _, s := range l.Signals {
		out.Signals = append(out.Signals, schema.Signal{
			Name:         s.Name,
			Type:         schema.Type(s.Type),
			Unit:         s.Unit,
			Factor:       s.Factor,
			Offset:       s.Offset,
			ColumnOffset: int(s.ColumnOffset),
		})
	}
	return out
}

// Reset, String, and ProtoMessage implement proto.Message, the minimum
// surface gogo/protobuf's proto.Marshal/Unmarshal helpers require.
func (l *RowLayout) Reset()         { *l = RowLayout{} }
func (l *RowLayout) String() string { return proto.CompactTextString(l) }
func (*RowLayout) ProtoMessage()    {}

func (s *Signal) Reset()         { *s = Signal{} }
func (s *Signal) String() string { return proto.CompactTextString(s) }
func (*Signal) ProtoMessage()    {}

// field tags, assigned by hand as protoc would: field number << 3 | wire
// type. Wire types: 0=varint, 1=64-bit, 2=length-delimited, 5=32-bit.
const (
	tagSignalName         = 1<<3 | 2
	tagSignalType         = 2<<3 | 0
	tagSignalUnit         = 3<<3 | 2
	tagSignalFactor       = 4<<3 | 1
	tagSignalOffset       = 5<<3 | 1
	tagSignalColumnOffset = 6<<3 | 0

	tagLayoutRowSize = 1<<3 | 0
	tagLayoutSignal  = 2<<3 | 2
)

// Marshal serializes the RowLayout in protobuf wire format.
func (l *RowLayout) Marshal() ([]byte, error) {
	var buf []byte
	buf = appendVarint(buf, tagLayoutRowSize, uint64(l.RowSize))
	for _, s := range l.Signals {
		sbuf, err := s.Marshal()
		if err != nil {
			return nil, err
		}
		buf = appendTag(buf, tagLayoutSignal)
		buf = appendUvarint(buf, uint64(len(sbuf)))
		buf = append(buf, sbuf...)
	}
	return buf, nil
}

// Marshal serializes the Signal in protobuf wire format.
func (s *Signal) Marshal() ([]byte, error) {
	var buf []byte
	buf = appendString(buf, tagSignalName, s.Name)
	buf = appendVarint(buf, tagSignalType, uint64(s.Type))
	buf = appendString(buf, tagSignalUnit, s.Unit)
	buf = appendFixed64(buf, tagSignalFactor, math.Float64bits(s.Factor))
	buf = appendFixed64(buf, tagSignalOffset, math.Float64bits(s.Offset))
	buf = appendVarint(buf, tagSignalColumnOffset, uint64(s.ColumnOffset))
	return buf, nil
}

// Unmarshal decodes a RowLayout previously produced by Marshal.
func (l *RowLayout) Unmarshal(data []byte) error {
	*l = RowLayout{}
	for len(data) > 0 {
		tag, n, err := readUvarint(data)
		if err != nil {
			return err
		}
		data = data[n:]
		switch tag {
		case tagLayoutRowSize:
			v, n, err := readUvarint(data)
			if err != nil {
				return err
			}
			data = data[n:]
			l.RowSize = int32(v)
		case tagLayoutSignal:
			length, n, err := readUvarint(data)
			if err != nil {
				return err
			}
			data = data[n:]
			if uint64(len(data)) < length {
				return io.ErrUnexpectedEOF
			}
			s := &Signal{}
			if err := s.Unmarshal(data[:length]); err != nil {
				return err
			}
			data = data[length:]
			l.Signals = append(l.Signals, s)
		default:
			return errUnknownTag
		}
	}
	return nil
}

// Unmarshal decodes a Signal previously produced by Marshal.
func (s *Signal) Unmarshal(data []byte) error {
	*s = Signal{}
	for len(data) > 0 {
		tag, n, err := readUvarint(data)
		if err != nil {
			return err
		}
		data = data[n:]
		switch tag {
		case tagSignalName:
			v, n, err := readBytes(data)
			if err != nil {
				return err
			}
			s.Name = string(v)
			data = data[n:]
		case tagSignalType:
			v, n, err := readUvarint(data)
			if err != nil {
				return err
			}
			s.Type = int32(v)
			data = data[n:]
		case tagSignalUnit:
			v, n, err := readBytes(data)
			if err != nil {
				return err
			}
			s.Unit = string(v)
			data = data[n:]
		case tagSignalFactor:
			if len(data) < 8 {
				return io.ErrUnexpectedEOF
			}
			s.Factor = math.Float64frombits(binary.LittleEndian.Uint64(data))
			data = data[8:]
		case tagSignalOffset:
			if len(data) < 8 {
				return io.ErrUnexpectedEOF
			}
			s.Offset = math.Float64frombits(binary.LittleEndian.Uint64(data))
			data = data[8:]
		case tagSignalColumnOffset:
			v, n, err := readUvarint(data)
			if err != nil {
				return err
			}
			s.ColumnOffset = int32(v)
			data = data[n:]
		default:
			return errUnknownTag
		}
	}
	return nil
}
