// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"fmt"
	"strconv"
)

// ColumnSpec describes one column of a binary table, per spec.md §3.
type ColumnSpec struct {
	Index int
	Name  string
	Form  TForm
}

// BinaryTableLayout is the fully-resolved layout of a binary table HDU,
// per spec.md §3. SplitOffsets has len(Columns)+1 entries; column i's
// bytes within a row span [SplitOffsets[i], SplitOffsets[i+1]).
type BinaryTableLayout struct {
	Columns      []ColumnSpec
	RowBytes     int
	RowCount     int64
	SplitOffsets []int
}

// ImageLayout is the fully-resolved layout of an image HDU, per spec.md §3.
type ImageLayout struct {
	Bitpix       int64
	ElementBytes int
	Axes         []int64
	ElementType  TForm
}

// ElementCount returns the total number of pixels (product of Axes).
func (l ImageLayout) ElementCount() int64 {
	n := int64(1)
	for _, a := range l.Axes {
		n *= a
	}
	if len(l.Axes) == 0 {
		return 0
	}
	return n
}

// SchemaField is one entry of the emitted schema (spec.md §6): a column
// for a table, or the single synthetic "Image" entry for an image HDU.
type SchemaField struct {
	Name     string
	Form     TForm
	Array    bool // true for the image HDU's ArrayOf(element_form) entry
	Nullable bool
}

// Schema is the typed, immutable description derived from one HDU's
// header (spec.md §4.3). Exactly one of Table/Image is set, per Kind.
type Schema struct {
	Kind   HduKind
	Table  *BinaryTableLayout
	Image  *ImageLayout
	Fields []SchemaField
}

// BuildSchema derives a Schema from a parsed header, dispatching on kind
// the same way HduCatalog does (spec.md §4.3).
func BuildSchema(hdr *Header, kind HduKind) (*Schema, error) {
	switch kind {
	case KindBinaryTable:
		return buildTableSchema(hdr)
	case KindImage:
		return buildImageSchema(hdr)
	default:
		return nil, newError(KindUnsupportedTForm, "fitsio: no schema for HDU kind %v", kind)
	}
}

func buildTableSchema(hdr *Header) (*Schema, error) {
	rowBytes64, err := hdr.RequireInt("NAXIS1")
	if err != nil {
		return nil, err
	}
	rowCount, err := hdr.RequireInt("NAXIS2")
	if err != nil {
		return nil, err
	}
	tfields, err := hdr.RequireInt("TFIELDS")
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnSpec, 0, tfields)
	fields := make([]SchemaField, 0, tfields)
	splitOffsets := make([]int, 1, tfields+1)
	offset := 0

	for i := int64(0); i < tfields; i++ {
		n := i + 1
		name := fmt.Sprintf("col%d", n)
		if c := hdr.Get("TTYPE" + strconv.FormatInt(n, 10)); c != nil && c.Value != nil {
			if s, err := c.Value.AsString(); err == nil {
				name = s
			}
		}

		formCard := hdr.Get("TFORM" + strconv.FormatInt(n, 10))
		if formCard == nil || formCard.Value == nil {
			return nil, errMissingCard("TFORM" + strconv.FormatInt(n, 10))
		}
		token, err := formCard.Value.AsString()
		if err != nil {
			return nil, errMissingCard("TFORM" + strconv.FormatInt(n, 10))
		}
		form, err := parseTForm(token)
		if err != nil {
			return nil, err
		}

		columns = append(columns, ColumnSpec{Index: int(i), Name: name, Form: form})
		fields = append(fields, SchemaField{Name: name, Form: form, Nullable: true})
		offset += form.Size()
		splitOffsets = append(splitOffsets, offset)
	}

	if offset != int(rowBytes64) {
		return nil, errRowSizeMismatch(int(rowBytes64), offset)
	}

	return &Schema{
		Kind: KindBinaryTable,
		Table: &BinaryTableLayout{
			Columns:      columns,
			RowBytes:     int(rowBytes64),
			RowCount:     rowCount,
			SplitOffsets: splitOffsets,
		},
		Fields: fields,
	}, nil
}

func buildImageSchema(hdr *Header) (*Schema, error) {
	bitpix, err := hdr.RequireInt("BITPIX")
	if err != nil {
		return nil, err
	}
	elemForm, err := tformFromBitpix(bitpix)
	if err != nil {
		return nil, err
	}

	naxis, err := hdr.OptionalInt("NAXIS", 0)
	if err != nil {
		return nil, err
	}
	axes := make([]int64, naxis)
	for i := int64(0); i < naxis; i++ {
		axes[i], err = hdr.RequireInt(naxisKey(i + 1))
		if err != nil {
			return nil, err
		}
	}

	elemBytes := bitpix / 8
	if elemBytes < 0 {
		elemBytes = -elemBytes
	}

	return &Schema{
		Kind: KindImage,
		Image: &ImageLayout{
			Bitpix:       bitpix,
			ElementBytes: int(elemBytes),
			Axes:         axes,
			ElementType:  elemForm,
		},
		Fields: []SchemaField{
			{Name: "Image", Form: elemForm, Array: true, Nullable: true},
		},
	}, nil
}
