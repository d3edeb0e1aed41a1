// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ergpb

import (
	"encoding/binary"
	"errors"
	"io"
)

// errUnknownTag is returned by Unmarshal when it encounters a field tag
// it does not recognize. The wire format used here is a fixed, closed
// set of messages, so an unknown tag always indicates a corrupt or
// foreign buffer rather than a forward-compatible unknown field.
var errUnknownTag = errors.New("ergpb: unknown field tag")

func appendTag(buf []byte, tag uint64) []byte {
	return appendUvarint(buf, tag)
}

func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

func appendVarint(buf []byte, tag uint64, v uint64) []byte {
	buf = appendTag(buf, tag)
	return appendUvarint(buf, v)
}

func appendString(buf []byte, tag uint64, s string) []byte {
	buf = appendTag(buf, tag)
	buf = appendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendFixed64(buf []byte, tag uint64, bits uint64) []byte {
	buf = appendTag(buf, tag)
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], bits)
	return append(buf, tmp[:]...)
}

func readUvarint(data []byte) (v uint64, n int, err error) {
	v, n = binary.Uvarint(data)
	if n <= 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	return v, n, nil
}

func readBytes(data []byte) (v []byte, n int, err error) {
	length, ln, err := readUvarint(data)
	if err != nil {
		return nil, 0, err
	}
	data = data[ln:]
	if uint64(len(data)) < length {
		return nil, 0, io.ErrUnexpectedEOF
	}
	return data[:length], ln + int(length), nil
}
