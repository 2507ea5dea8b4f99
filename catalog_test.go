// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"fmt"
	"testing"
)

// buildTwoHduFile builds an empty primary (SIMPLE/BITPIX=8/NAXIS=0) plus
// one BINTABLE extension with a single 17-byte-wide string column and
// rowCount rows, mirroring the structure of spec.md §8's S1/S3 scenarios
// (whose own NAXIS1 and column widths do not arithmetically agree, so the
// column layout here is reconstructed to be internally consistent rather
// than copied byte-for-byte).
func buildTwoHduFile(t *testing.T, rowCount int64) []byte {
	t.Helper()
	primary := buildHeader(
		boolCard("SIMPLE", true),
		intCard("BITPIX", 8),
		intCard("NAXIS", 0),
	)

	ext := buildHeader(
		strCard("XTENSION", "BINTABLE"),
		intCard("BITPIX", 8),
		intCard("NAXIS", 2),
		intCard("NAXIS1", 17),
		intCard("NAXIS2", rowCount),
		intCard("TFIELDS", 1),
		strCard("TFORM1", "17A"),
		strCard("TTYPE1", "col1"),
	)

	row := []byte(fmt.Sprintf("%-17s", "NGC0000000"))
	data := make([]byte, 0, 17*rowCount)
	for i := int64(0); i < rowCount; i++ {
		data = append(data, row...)
	}

	out := append([]byte{}, primary...)
	out = append(out, ext...)
	out = append(out, padData(data)...)
	return out
}

// S2: locating an index at or beyond the HDU count fails with
// HduIndexOutOfRange{requested, total}.
func TestCatalogIndexOutOfRange(t *testing.T) {
	raw := buildTwoHduFile(t, 5)
	cat := NewHduCatalog(NewMemorySource(raw))

	if n := cat.Count(); n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}

	_, _, _, err := cat.Locate(7)
	fe, ok := err.(*Error)
	if !ok || fe.Kind != KindHduIndexOutOfRange {
		t.Fatalf("Locate(7) err = %v, want HduIndexOutOfRange", err)
	}
	if fe.Requested != 7 || fe.Total != 2 {
		t.Errorf("Locate(7) err = %+v, want Requested=7 Total=2", fe)
	}
}

// S3: a BINTABLE with row_bytes=17, row_count=5 has an 85-byte payload,
// padded up to the next whole 2880-byte block for hdu_stop.
func TestCatalogPaddingCorrectness(t *testing.T) {
	raw := buildTwoHduFile(t, 5)
	cat := NewHduCatalog(NewMemorySource(raw))

	boundaries, kind, hdr, err := cat.Locate(1)
	if err != nil {
		t.Fatalf("Locate(1): %v", err)
	}
	if kind != KindBinaryTable {
		t.Fatalf("Locate(1) kind = %v, want KindBinaryTable", kind)
	}
	if !hdr.Has("NAXIS1") {
		t.Fatal("expected extension header to carry NAXIS1")
	}

	if got := boundaries.DataStop - boundaries.DataStart; got != 85 {
		t.Errorf("DataStop-DataStart = %d, want 85", got)
	}
	if got := boundaries.HduStop - boundaries.DataStart; got != blockSize {
		t.Errorf("HduStop-DataStart = %d, want %d", got, blockSize)
	}
	if (boundaries.DataStart-boundaries.HeaderStart)%blockSize != 0 {
		t.Error("DataStart-HeaderStart must be a multiple of blockSize")
	}
	if (boundaries.HduStop-boundaries.HeaderStart)%blockSize != 0 {
		t.Error("HduStop-HeaderStart must be a multiple of blockSize")
	}
}

func TestCatalogEmptyPrimaryHasEqualDataBounds(t *testing.T) {
	raw := buildTwoHduFile(t, 5)
	cat := NewHduCatalog(NewMemorySource(raw))

	boundaries, kind, _, err := cat.Locate(0)
	if err != nil {
		t.Fatalf("Locate(0): %v", err)
	}
	if kind != KindImage {
		t.Fatalf("Locate(0) kind = %v, want KindImage", kind)
	}
	if boundaries.DataStart != boundaries.DataStop {
		t.Errorf("empty primary: DataStart=%d DataStop=%d, want equal", boundaries.DataStart, boundaries.DataStop)
	}
}

func TestCatalogUnknownExtensionWarns(t *testing.T) {
	primary := buildHeader(boolCard("SIMPLE", true), intCard("BITPIX", 8), intCard("NAXIS", 0))
	ext := buildHeader(
		strCard("XTENSION", "FOOBAR"),
		intCard("NAXIS1", 4),
		intCard("NAXIS2", 1),
	)
	raw := append([]byte{}, primary...)
	raw = append(raw, ext...)
	raw = append(raw, padData(make([]byte, 4))...)

	cat := NewHduCatalog(NewMemorySource(raw))
	_, kind, _, err := cat.Locate(1)
	if err != nil {
		t.Fatalf("Locate(1): %v", err)
	}
	if kind != KindUnknownExtension {
		t.Fatalf("kind = %v, want KindUnknownExtension", kind)
	}
	w := cat.Warning(1)
	if w == nil || w.Kind != KindUnknownHduType {
		t.Fatalf("Warning(1) = %v, want a KindUnknownHduType warning", w)
	}
	if w.Extension != "FOOBAR" {
		t.Errorf("warning Extension = %q, want FOOBAR", w.Extension)
	}
}
