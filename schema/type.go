// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package schema projects an infofile.Table onto the signal schema
// spec.md §4.5 describes: an ordered list of named, typed, scaled
// columns, plus the row layout derived from their sizes.
package schema

import "fmt"

// Type enumerates the native element types a column may hold. Bytes(n)
// covers the sidecar's "<n> Bytes" tokens for 1 <= n <= 8.
type Type uint8

const (
	// Unknown is returned for an unrecognized File.At.<i>.Type token; its
	// Size() is 0. Bind fails the row-size > 0 check only when every
	// declared signal has size 0; otherwise an Unknown signal occupies no
	// bytes of the row.
	Unknown Type = iota
	F32
	F64
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	Bytes1
	Bytes2
	Bytes3
	Bytes4
	Bytes5
	Bytes6
	Bytes7
	Bytes8
)

// typeNames mirrors the FieldNames-style lookup table convention: names
// are used only for diagnostics, never for on-disk identifiers.
var typeNames = map[Type]string{
	Unknown: "Unknown",
	F32:     "F32",
	F64:     "F64",
	I8:      "I8",
	U8:      "U8",
	I16:     "I16",
	U16:     "U16",
	I32:     "I32",
	U32:     "U32",
	I64:     "I64",
	U64:     "U64",
	Bytes1:  "1 Bytes",
	Bytes2:  "2 Bytes",
	Bytes3:  "3 Bytes",
	Bytes4:  "4 Bytes",
	Bytes5:  "5 Bytes",
	Bytes6:  "6 Bytes",
	Bytes7:  "7 Bytes",
	Bytes8:  "8 Bytes",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", t)
}

// sizeOf maps each Type to its in-row byte size, per spec.md §4.5's type
// table.
var sizeOf = map[Type]int{
	Unknown: 0,
	F32:     4,
	F64:     8,
	I8:      1,
	U8:      1,
	I16:     2,
	U16:     2,
	I32:     4,
	U32:     4,
	I64:     8,
	U64:     8,
	Bytes1:  1,
	Bytes2:  2,
	Bytes3:  3,
	Bytes4:  4,
	Bytes5:  5,
	Bytes6:  6,
	Bytes7:  7,
	Bytes8:  8,
}

// Size returns the type's in-row byte size; Unknown and out-of-range
// values return 0.
func (t Type) Size() int { return sizeOf[t] }

// bytesType returns the Bytes(n) Type for 1 <= n <= 8, or Unknown,false
// for any other n.
func bytesType(n int) (Type, bool) {
	switch n {
	case 1:
		return Bytes1, true
	case 2:
		return Bytes2, true
	case 3:
		return Bytes3, true
	case 4:
		return Bytes4, true
	case 5:
		return Bytes5, true
	case 6:
		return Bytes6, true
	case 7:
		return Bytes7, true
	case 8:
		return Bytes8, true
	default:
		return Unknown, false
	}
}

// parseType maps a File.At.<i>.Type token to a Type, per spec.md §4.5:
//
//	"Float" -> F32, "Double" -> F64, "LongLong" -> I64, "ULongLong" -> U64,
//	"Int" -> I32, "UInt" -> U32, "Short" -> I16, "UShort" -> U16,
//	"Char" -> I8, "UChar" -> U8, "<n> Bytes" (1<=n<=8) -> Bytes(n).
//
// Any other token is Unknown, size 0 (logged by the caller as a warning
// when it is specifically an unrecognized "N Bytes" token).
func parseType(token string) (t Type, recognizedBytesToken bool) {
	switch token {
	case "Float":
		return F32, true
	case "Double":
		return F64, true
	case "LongLong":
		return I64, true
	case "ULongLong":
		return U64, true
	case "Int":
		return I32, true
	case "UInt":
		return U32, true
	case "Short":
		return I16, true
	case "UShort":
		return U16, true
	case "Char":
		return I8, true
	case "UChar":
		return U8, true
	}
	if n, ok := parseNBytesToken(token); ok {
		if bt, ok := bytesType(n); ok {
			return bt, true
		}
		return Unknown, false
	}
	return Unknown, true
}

// parseNBytesToken recognizes the "<n> Bytes" shape and returns n. It
// returns ok=false for tokens that don't look like an "N Bytes" token at
// all (so the caller does not misreport an unrelated garbage token as an
// "unrecognized N Bytes token" warning).
func parseNBytesToken(token string) (n int, ok bool) {
	const suffix = " Bytes"
	if len(token) <= len(suffix) || token[len(token)-len(suffix):] != suffix {
		return 0, false
	}
	digits := token[:len(token)-len(suffix)]
	if digits == "" {
		return 0, false
	}
	v := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}
