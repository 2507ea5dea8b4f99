// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

// File is the top-level entry point: a FITS file opened for HDU-by-HDU
// navigation, per spec.md §1/§4.2. It owns a SeekableByteSource and an
// HduCatalog, and opens the index-th HDU as a BinaryTableHdu (Table) or
// ImageHdu (Image) depending on what the catalog discovers at that index.
//
// File is not safe for concurrent use: the catalog walk and every HDU it
// produces share the same underlying source and its single cursor
// (spec.md §5). Callers wanting concurrent access to one file should open
// it once per goroutine.
type File struct {
	src     SeekableByteSource
	catalog *HduCatalog
}

// Open wraps src in a File ready for navigation. It does not read
// anything until the first HDU is located.
func Open(src SeekableByteSource) *File {
	return &File{src: src, catalog: NewHduCatalog(src)}
}

// NumHdus walks the whole file and returns how many HDUs precede the
// first read failure or short header (spec.md §4.2).
func (f *File) NumHdus() int {
	return f.catalog.Count()
}

// HduKindAt returns the kind of the index-th HDU, walking the file as
// needed.
func (f *File) HduKindAt(index int) (HduKind, error) {
	_, kind, _, err := f.catalog.Locate(index)
	return kind, err
}

// HeaderAt returns the parsed header of the index-th HDU.
func (f *File) HeaderAt(index int) (*Header, error) {
	_, _, hdr, err := f.catalog.Locate(index)
	return hdr, err
}

// WarningAt returns the non-fatal warning recorded against the index-th
// HDU (e.g. an unrecognized XTENSION), or nil.
func (f *File) WarningAt(index int) *Error {
	return f.catalog.Warning(index)
}

// Table opens the index-th HDU as a binary table. It fails with
// UnknownHduType-flavored errors if that HDU is not a BINTABLE.
func (f *File) Table(index int) (*BinaryTableHdu, error) {
	boundaries, kind, hdr, err := f.catalog.Locate(index)
	if err != nil {
		return nil, err
	}
	if kind != KindBinaryTable {
		return nil, newError(KindUnknownHduType, "fitsio: HDU %d is not a binary table (kind=%v)", index, kind)
	}
	return NewBinaryTableHdu(f.src, boundaries, hdr)
}

// Image opens the index-th HDU as an image. It fails with
// UnknownHduType-flavored errors if that HDU is not an image.
func (f *File) Image(index int) (*ImageHdu, error) {
	boundaries, kind, hdr, err := f.catalog.Locate(index)
	if err != nil {
		return nil, err
	}
	if kind != KindImage {
		return nil, newError(KindUnknownHduType, "fitsio: HDU %d is not an image (kind=%v)", index, kind)
	}
	return NewImageHdu(f.src, boundaries, hdr)
}

// Schema derives the emitted schema (spec.md §6) of the index-th HDU,
// for either a table or an image. Ascii tables and unknown extensions
// have no schema support (SPEC_FULL.md §13(c)); Schema fails with an
// UnsupportedTForm-kind error in that case (any catalog warning for the
// HDU is available separately from WarningAt).
func (f *File) Schema(index int) (*Schema, error) {
	_, kind, hdr, err := f.catalog.Locate(index)
	if err != nil {
		return nil, err
	}
	return BuildSchema(hdr, kind)
}
