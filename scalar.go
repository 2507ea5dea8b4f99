// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"fmt"
	"math/big"
)

// ScalarKind discriminates the concrete type held by a ScalarValue.
type ScalarKind int

const (
	ScalarNone ScalarKind = iota
	ScalarInt
	ScalarBigInt
	ScalarFloat
	ScalarBool
	ScalarString
	ScalarComplex
)

// ScalarValue is the fixed-format value of a header card (columns 11-30),
// typed per §4.1 of the spec rather than coerced to a single numeric type.
// Exactly one of the typed accessors is meaningful, selected by Kind.
type ScalarValue struct {
	Kind    ScalarKind
	Int     int64
	Big     big.Int
	Float   float64
	Bool    bool
	Str     string
	Complex complex128
}

func intValue(v int64) ScalarValue          { return ScalarValue{Kind: ScalarInt, Int: v} }
func bigValue(v big.Int) ScalarValue        { return ScalarValue{Kind: ScalarBigInt, Big: v} }
func floatValue(v float64) ScalarValue      { return ScalarValue{Kind: ScalarFloat, Float: v} }
func boolValue(v bool) ScalarValue          { return ScalarValue{Kind: ScalarBool, Bool: v} }
func stringValue(v string) ScalarValue      { return ScalarValue{Kind: ScalarString, Str: v} }
func complexValue(v complex128) ScalarValue { return ScalarValue{Kind: ScalarComplex, Complex: v} }

// AsInt returns the value as an int64. It fails with KindMalformedCard if
// the card did not hold an integer value — callers that need an integer
// must not silently accept a coerced float, per spec.md's design note on
// "Integer-only header values".
func (v ScalarValue) AsInt() (int64, error) {
	switch v.Kind {
	case ScalarInt:
		return v.Int, nil
	default:
		return 0, errMalformedCard(fmt.Sprintf("%v", v))
	}
}

// AsFloat returns the value as a float64, widening an integer card if
// necessary (FITS floats and integers share a token grammar, and a card
// declared as e.g. "20." is unambiguously a float even though "20" alone
// would have parsed as an integer).
func (v ScalarValue) AsFloat() (float64, error) {
	switch v.Kind {
	case ScalarFloat:
		return v.Float, nil
	case ScalarInt:
		return float64(v.Int), nil
	default:
		return 0, errMalformedCard(fmt.Sprintf("%v", v))
	}
}

// AsBool returns the value as a bool.
func (v ScalarValue) AsBool() (bool, error) {
	if v.Kind != ScalarBool {
		return false, errMalformedCard(fmt.Sprintf("%v", v))
	}
	return v.Bool, nil
}

// AsString returns the value as a string.
func (v ScalarValue) AsString() (string, error) {
	if v.Kind != ScalarString {
		return "", errMalformedCard(fmt.Sprintf("%v", v))
	}
	return v.Str, nil
}

func (v ScalarValue) String() string {
	switch v.Kind {
	case ScalarInt:
		return fmt.Sprintf("%d", v.Int)
	case ScalarBigInt:
		return v.Big.String()
	case ScalarFloat:
		return fmt.Sprintf("%g", v.Float)
	case ScalarBool:
		if v.Bool {
			return "T"
		}
		return "F"
	case ScalarString:
		return v.Str
	case ScalarComplex:
		return fmt.Sprintf("%v", v.Complex)
	default:
		return "<none>"
	}
}
