// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

// BinaryTableHdu is the decode-on-demand view of a BINTABLE HDU, per
// spec.md §4.4. It holds no decoded rows; every read re-seeks into the
// underlying source and decodes only the bytes requested.
type BinaryTableHdu struct {
	src        SeekableByteSource
	boundaries HduBoundaries
	header     *Header
	schema     *Schema
}

// NewBinaryTableHdu builds a BinaryTableHdu from a catalog entry's
// boundaries and header. hdr's kind must already be KindBinaryTable.
func NewBinaryTableHdu(src SeekableByteSource, boundaries HduBoundaries, hdr *Header) (*BinaryTableHdu, error) {
	schema, err := buildTableSchema(hdr)
	if err != nil {
		return nil, err
	}
	return &BinaryTableHdu{src: src, boundaries: boundaries, header: hdr, schema: schema}, nil
}

// Header returns the HDU's parsed header.
func (t *BinaryTableHdu) Header() *Header { return t.header }

// Layout returns the resolved column layout (spec.md §4.4's layout()).
func (t *BinaryTableHdu) Layout() *BinaryTableLayout { return t.schema.Table }

// RowCount returns the number of rows (NAXIS2).
func (t *BinaryTableHdu) RowCount() int64 { return t.schema.Table.RowCount }

// ReadRow decodes one full row by row index, per spec.md §4.4. It fails
// with HduIndexOutOfRange if rowIndex is outside [0, RowCount()).
func (t *BinaryTableHdu) ReadRow(rowIndex int64) ([]TypedValue, error) {
	layout := t.schema.Table
	if rowIndex < 0 || rowIndex >= layout.RowCount {
		return nil, errHduIndexOutOfRange(int(rowIndex), int(layout.RowCount))
	}

	buf := make([]byte, layout.RowBytes)
	offset := t.boundaries.DataStart + rowIndex*int64(layout.RowBytes)
	if err := t.src.Seek(offset); err != nil {
		return nil, wrapError(KindIo, err, "fitsio: seek to row %d: %v", rowIndex, err)
	}
	if err := readFull(t.src, buf); err != nil {
		return nil, err
	}
	return t.ReadRowFromBuffer(buf)
}

// ReadRowFromBuffer decodes one row from an in-memory buffer already
// sized to RowBytes, without touching the source. Exposed per spec.md
// §4.4 so callers holding a buffer they already read (e.g. from a bulk
// prefetch) can decode without a redundant seek/read.
func (t *BinaryTableHdu) ReadRowFromBuffer(buf []byte) ([]TypedValue, error) {
	layout := t.schema.Table
	if len(buf) != layout.RowBytes {
		return nil, errRowSizeMismatch(layout.RowBytes, len(buf))
	}

	row := make([]TypedValue, len(layout.Columns))
	for i, col := range layout.Columns {
		start, stop := layout.SplitOffsets[i], layout.SplitOffsets[i+1]
		v, err := decodeElement(col.Form, buf[start:stop])
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

// ReadColumnRange decodes a single column across rows [rowStart, rowStop),
// per spec.md §4.4. It seeks once per row rather than reading the whole
// table, since rows are not contiguous per-column in a binary table.
func (t *BinaryTableHdu) ReadColumnRange(colIndex int, rowStart, rowStop int64) ([]TypedValue, error) {
	layout := t.schema.Table
	if colIndex < 0 || colIndex >= len(layout.Columns) {
		return nil, errHduIndexOutOfRange(colIndex, len(layout.Columns))
	}
	if rowStart < 0 || rowStop > layout.RowCount || rowStart > rowStop {
		return nil, errHduIndexOutOfRange(int(rowStart), int(layout.RowCount))
	}

	col := layout.Columns[colIndex]
	start, stop := layout.SplitOffsets[colIndex], layout.SplitOffsets[colIndex+1]
	width := stop - start

	out := make([]TypedValue, 0, rowStop-rowStart)
	buf := make([]byte, width)
	for row := rowStart; row < rowStop; row++ {
		offset := t.boundaries.DataStart + row*int64(layout.RowBytes) + int64(start)
		if err := t.src.Seek(offset); err != nil {
			return nil, wrapError(KindIo, err, "fitsio: seek to row %d col %d: %v", row, colIndex, err)
		}
		if err := readFull(t.src, buf); err != nil {
			return nil, err
		}
		v, err := decodeElement(col.Form, buf)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
