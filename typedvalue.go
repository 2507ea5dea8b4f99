// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import "fmt"

// TypedValue is the decoded value of one binary-table cell or one image
// element. It is a tagged union rather than an interface{}/reflect-typed
// value (spec.md's "Mixed-type row values" design note): callers switch on
// Form.Code and read the matching field instead of type-asserting a
// runtime value.
type TypedValue struct {
	Form TForm

	I16 int16
	I32 int32
	I64 int64
	F32 float32
	F64 float64
	B   bool
	S   string
	U8  byte

	// Null is set when a Bool cell held the FITS null sentinel (0x00).
	Null bool
}

func (v TypedValue) String() string {
	switch v.Form.Code {
	case FormInt16:
		return fmt.Sprintf("%d", v.I16)
	case FormInt32:
		return fmt.Sprintf("%d", v.I32)
	case FormInt64:
		return fmt.Sprintf("%d", v.I64)
	case FormFloat32:
		return fmt.Sprintf("%g", v.F32)
	case FormFloat64:
		return fmt.Sprintf("%g", v.F64)
	case FormBool:
		if v.Null {
			return "<null>"
		}
		if v.B {
			return "T"
		}
		return "F"
	case FormUInt8:
		return fmt.Sprintf("%d", v.U8)
	case FormFixedString:
		return v.S
	default:
		return "<invalid>"
	}
}

// decodeElement decodes one element of the given form from b, which must
// be exactly form.Size() bytes for every form except FormFixedString
// (where it must be form.Len bytes).
func decodeElement(form TForm, b []byte) (TypedValue, error) {
	switch form.Code {
	case FormInt16:
		return TypedValue{Form: form, I16: decodeInt16(b)}, nil
	case FormInt32:
		return TypedValue{Form: form, I32: decodeInt32(b)}, nil
	case FormInt64:
		return TypedValue{Form: form, I64: decodeInt64(b)}, nil
	case FormFloat32:
		return TypedValue{Form: form, F32: decodeFloat32(b)}, nil
	case FormFloat64:
		return TypedValue{Form: form, F64: decodeFloat64(b)}, nil
	case FormUInt8:
		return TypedValue{Form: form, U8: b[0]}, nil
	case FormBool:
		bv, isNull, err := decodeBool(b[0])
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Form: form, B: bv, Null: isNull}, nil
	case FormFixedString:
		return TypedValue{Form: form, S: decodeFixedString(b)}, nil
	default:
		return TypedValue{}, newError(KindUnsupportedTForm, "fitsio: cannot decode form %v", form)
	}
}
