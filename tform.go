// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"fmt"
	"strconv"
)

// FormCode discriminates the concrete shape of a TForm.
type FormCode int

const (
	FormInvalid FormCode = iota
	FormInt16
	FormInt32
	FormInt64
	FormFloat32
	FormFloat64
	FormBool
	FormFixedString
	FormUInt8 // BITPIX=8 images only, per SPEC_FULL.md §13(b)
)

// TForm is a tagged union describing the on-disk element type of a binary
// table column or an image's pixels, per spec.md's ColumnSpec/ImageLayout.
type TForm struct {
	Code FormCode
	Len  int // FixedString length; 1 for every other code
}

// Size returns the on-disk byte width of one element of this form.
func (f TForm) Size() int {
	switch f.Code {
	case FormBool, FormUInt8:
		return 1
	case FormInt16:
		return 2
	case FormInt32, FormFloat32:
		return 4
	case FormInt64, FormFloat64:
		return 8
	case FormFixedString:
		return f.Len
	default:
		return 0
	}
}

func (f TForm) String() string {
	switch f.Code {
	case FormInt16:
		return "Int16"
	case FormInt32:
		return "Int32"
	case FormInt64:
		return "Int64"
	case FormFloat32:
		return "Float32"
	case FormFloat64:
		return "Float64"
	case FormBool:
		return "Bool"
	case FormUInt8:
		return "UInt8"
	case FormFixedString:
		return fmt.Sprintf("FixedString(%d)", f.Len)
	default:
		return "Invalid"
	}
}

// parseTForm parses a FITS TFORM token (e.g. "E", "10A", "3E") into a
// TForm, per spec.md §3/§4.3. A leading repeat count on a non-'A' code
// greater than one is the documented UnsupportedRepeat limitation (§3,
// §13(a) of SPEC_FULL.md): this core does not guess whether it should
// expand to an array or collapse to a single element, so it fails loudly.
func parseTForm(token string) (TForm, error) {
	if token == "" {
		return TForm{}, errUnsupportedTForm(token)
	}

	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}
	repeat := 1
	if i > 0 {
		r, err := strconv.Atoi(token[:i])
		if err != nil {
			return TForm{}, errUnsupportedTForm(token)
		}
		repeat = r
	}
	if i >= len(token) {
		return TForm{}, errUnsupportedTForm(token)
	}
	code := token[i]

	switch code {
	case 'A':
		n := repeat
		if i == 0 {
			n = 1
		}
		return TForm{Code: FormFixedString, Len: n}, nil
	case 'I':
		if repeat != 1 {
			return TForm{}, errUnsupportedRepeat(token)
		}
		return TForm{Code: FormInt16, Len: 1}, nil
	case 'J':
		if repeat != 1 {
			return TForm{}, errUnsupportedRepeat(token)
		}
		return TForm{Code: FormInt32, Len: 1}, nil
	case 'K':
		if repeat != 1 {
			return TForm{}, errUnsupportedRepeat(token)
		}
		return TForm{Code: FormInt64, Len: 1}, nil
	case 'E':
		if repeat != 1 {
			return TForm{}, errUnsupportedRepeat(token)
		}
		return TForm{Code: FormFloat32, Len: 1}, nil
	case 'D':
		if repeat != 1 {
			return TForm{}, errUnsupportedRepeat(token)
		}
		return TForm{Code: FormFloat64, Len: 1}, nil
	case 'L':
		if repeat != 1 {
			return TForm{}, errUnsupportedRepeat(token)
		}
		return TForm{Code: FormBool, Len: 1}, nil
	default:
		return TForm{}, errUnsupportedTForm(token)
	}
}

// tformFromBitpix maps an image BITPIX value to its element TForm, per
// spec.md §4.3 and the (b) open-question decision in SPEC_FULL.md §13:
// BITPIX=8 images are unsigned bytes, not booleans.
func tformFromBitpix(bitpix int64) (TForm, error) {
	switch bitpix {
	case 8:
		return TForm{Code: FormUInt8, Len: 1}, nil
	case 16:
		return TForm{Code: FormInt16, Len: 1}, nil
	case 32:
		return TForm{Code: FormInt32, Len: 1}, nil
	case 64:
		return TForm{Code: FormInt64, Len: 1}, nil
	case -32:
		return TForm{Code: FormFloat32, Len: 1}, nil
	case -64:
		return TForm{Code: FormFloat64, Len: 1}, nil
	default:
		return TForm{}, newError(KindMalformedCard, "fitsio: invalid BITPIX (%d)", bitpix)
	}
}
