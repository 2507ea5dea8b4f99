// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"testing"
)

func readHeaderFromBytes(t *testing.T, b []byte) *Header {
	t.Helper()
	src := NewMemorySource(b)
	hdr, err := NewHeaderParser(src).Read()
	if err != nil {
		t.Fatalf("HeaderParser.Read: %v", err)
	}
	return hdr
}

func TestHeaderBasicCards(t *testing.T) {
	raw := buildHeader(
		boolCard("SIMPLE", true),
		intCard("BITPIX", 8),
		intCard("NAXIS", 0),
	)
	hdr := readHeaderFromBytes(t, raw)

	if !hdr.Has("SIMPLE") {
		t.Fatal("expected SIMPLE card")
	}
	v, err := hdr.RequireInt("BITPIX")
	if err != nil || v != 8 {
		t.Fatalf("BITPIX = %v, %v; want 8, nil", v, err)
	}
	if hdr.Cards()[len(hdr.Cards())-1].Keyword != "END" {
		t.Fatal("header must be terminated by an END card")
	}
}

func TestHeaderMissingCard(t *testing.T) {
	hdr := readHeaderFromBytes(t, buildHeader(intCard("NAXIS", 0)))
	_, err := hdr.RequireInt("BITPIX")
	fe, ok := err.(*Error)
	if !ok || fe.Kind != KindMissingRequiredCard {
		t.Fatalf("RequireInt(missing) err = %v, want MissingRequiredCard", err)
	}
}

func TestHeaderDExponentFloat(t *testing.T) {
	hdr := readHeaderFromBytes(t, buildHeader(kw("DVAL")+"= 1.5D+02"))
	c := hdr.Get("DVAL")
	if c == nil || c.Value == nil || c.Value.Kind != ScalarFloat {
		t.Fatalf("DVAL card = %+v, want a parsed float", c)
	}
	if c.Value.Float != 150.0 {
		t.Errorf("DVAL = %v, want 150.0", c.Value.Float)
	}
}

func TestHeaderBigIntFallback(t *testing.T) {
	// one digit past int64's range.
	const huge = "99999999999999999999"
	hdr := readHeaderFromBytes(t, buildHeader(kw("HUGEVAL")+"= "+huge))
	c := hdr.Get("HUGEVAL")
	if c == nil || c.Value == nil || c.Value.Kind != ScalarBigInt {
		t.Fatalf("HUGEVAL card = %+v, want a parsed big int", c)
	}
	if c.Value.Big.String() != huge {
		t.Errorf("HUGEVAL = %v, want %v", c.Value.Big.String(), huge)
	}
}

func TestHeaderMalformedCardDoesNotCoerce(t *testing.T) {
	hdr := readHeaderFromBytes(t, buildHeader(kw("BADVAL")+"= not-a-number"))
	_, err := hdr.RequireInt("BADVAL")
	if err == nil {
		t.Fatal("expected RequireInt to fail on an unparsable token")
	}
}

func TestHeaderContinueFolding(t *testing.T) {
	raw := buildHeader(
		kw("LONGSTR")+"= 'abc&'",
		kw("CONTINUE")+"'def'",
	)
	hdr := readHeaderFromBytes(t, raw)
	c := hdr.Get("LONGSTR")
	if c == nil || c.Value == nil {
		t.Fatalf("LONGSTR card missing")
	}
	got, err := c.Value.AsString()
	if err != nil {
		t.Fatalf("AsString: %v", err)
	}
	if got != "abcdef" {
		t.Errorf("folded LONGSTR = %q, want %q", got, "abcdef")
	}
}

func TestHeaderHierarch(t *testing.T) {
	line := padCard("HIERARCH ESO DET CHIP1 ID = 'CCD_42'")
	raw := padBlock(line + padCard("END"))
	hdr := readHeaderFromBytes(t, raw)

	c := hdr.Get("ESO DET CHIP1 ID")
	if c == nil || c.Value == nil {
		t.Fatalf("HIERARCH card not found, keys=%v", hdr.Keys())
	}
	got, err := c.Value.AsString()
	if err != nil || got != "CCD_42" {
		t.Errorf("HIERARCH value = %q, %v; want CCD_42", got, err)
	}
}

func TestHeaderKeysExcludesCommentary(t *testing.T) {
	raw := buildHeader(
		intCard("BITPIX", 8),
		padCard("COMMENT this is a comment"),
		padCard("HISTORY did a thing"),
	)
	hdr := readHeaderFromBytes(t, raw)
	for _, k := range hdr.Keys() {
		if k == "COMMENT" || k == "HISTORY" {
			t.Errorf("Keys() should exclude commentary keyword %q", k)
		}
	}
}
