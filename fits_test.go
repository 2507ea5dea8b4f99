// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Test helpers shared across this package's _test.go files: building
// synthetic FITS byte streams without a real file on disk, mirroring the
// byte patterns described in the scenarios of spec.md §8.

func padCard(s string) string {
	if len(s) >= cardLen {
		return s[:cardLen]
	}
	return s + strings.Repeat(" ", cardLen-len(s))
}

func padBlock(s string) []byte {
	if rem := len(s) % blockSize; rem != 0 {
		s += strings.Repeat(" ", blockSize-rem)
	}
	return []byte(s)
}

// buildHeader assembles a header block (or several) from card lines,
// terminating with END and padding to a whole multiple of blockSize.
func buildHeader(cards ...string) []byte {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(padCard(c))
	}
	sb.WriteString(padCard("END"))
	return padBlock(sb.String())
}

func kw(name string) string {
	if len(name) >= 8 {
		return name[:8]
	}
	return name + strings.Repeat(" ", 8-len(name))
}

func intCard(name string, v int64) string {
	return kw(name) + fmt.Sprintf("= %20d", v)
}

func boolCard(name string, v bool) string {
	b := "F"
	if v {
		b = "T"
	}
	return kw(name) + fmt.Sprintf("= %20s", b)
}

func strCard(name, v string) string {
	return kw(name) + fmt.Sprintf("= '%s'", v)
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func be64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func beFloat32(v float32) []byte {
	return be32(math.Float32bits(v))
}

func beFloat64(v float64) []byte {
	return be64(math.Float64bits(v))
}

func padData(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	if rem := len(out) % blockSize; rem != 0 {
		out = append(out, make([]byte, blockSize-rem)...)
	}
	return out
}
