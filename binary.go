// Copyright 2017 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"encoding/binary"
	"math"
)

// The functions below are the shared big-endian primitive decoders of
// spec.md §4 ("TypedValue codec"): FITS is defined as network byte order,
// so every numeric decode in both BinaryTableHdu and ImageHdu bottoms out
// here. Grounded on the teacher's own binary.go, which reaches for the
// stdlib encoding/binary package for this exact concern rather than any
// third-party codec — there is no richer abstraction a dependency could
// offer over a fixed-width big-endian read of an in-memory slice.

func decodeInt16(b []byte) int16 {
	return int16(binary.BigEndian.Uint16(b))
}

func decodeInt32(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}

func decodeInt64(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}

func decodeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

func decodeFloat64(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

// decodeBool implements §4.4's Bool decoding contract: 'T' is true, 'F' is
// false, a NUL byte is the FITS null sentinel (decoded as false with Null
// set), and anything else is MalformedBool.
func decodeBool(b byte) (v bool, isNull bool, err error) {
	switch b {
	case 'T':
		return true, false, nil
	case 'F':
		return false, false, nil
	case 0x00:
		return false, true, nil
	default:
		return false, false, errMalformedBool(b)
	}
}

// decodeFixedString implements §4.4's FixedString decoding contract: UTF-8
// bytes, right-trimmed of ASCII space and NUL only (not other whitespace —
// per spec.md's "String stripping" design note, astronomical identifiers
// occasionally carry meaningful tabs).
func decodeFixedString(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0x00) {
		end--
	}
	return string(b[:end])
}
