// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"bytes"
	"reflect"

	"github.com/gonuts/binary"
)

// ImageHdu is the decode-on-demand view of an image HDU (primary or
// XTENSION='IMAGE'), per spec.md §4.5.
//
// Pixel ordering is FITS column-major: NAXIS1 (the first axis) varies
// fastest. This is the opposite of the row-major convention a reader
// coming from C/Go multi-dimensional arrays might assume, so every
// coordinate/offset computation below documents it again at the point
// of use.
type ImageHdu struct {
	src        SeekableByteSource
	boundaries HduBoundaries
	header     *Header
	schema     *Schema
}

// NewImageHdu builds an ImageHdu from a catalog entry's boundaries and
// header. hdr's kind must already be KindImage.
func NewImageHdu(src SeekableByteSource, boundaries HduBoundaries, hdr *Header) (*ImageHdu, error) {
	schema, err := buildImageSchema(hdr)
	if err != nil {
		return nil, err
	}
	return &ImageHdu{src: src, boundaries: boundaries, header: hdr, schema: schema}, nil
}

// Header returns the HDU's parsed header.
func (img *ImageHdu) Header() *Header { return img.header }

// Layout returns the resolved image layout.
func (img *ImageHdu) Layout() *ImageLayout { return img.schema.Image }

// Dimensions returns the axis lengths, NAXIS1 first (spec.md §4.5).
func (img *ImageHdu) Dimensions() []int64 {
	return img.schema.Image.Axes
}

// ElementCount returns the total pixel count, the product of Dimensions.
func (img *ImageHdu) ElementCount() int64 {
	return img.schema.Image.ElementCount()
}

// elementOffset computes the column-major linear index of coord, where
// coord[0] corresponds to NAXIS1 and varies fastest.
func (img *ImageHdu) elementOffset(coord []int64) (int64, error) {
	axes := img.schema.Image.Axes
	if len(coord) != len(axes) {
		return 0, newError(KindHduIndexOutOfRange, "fitsio: coordinate has %d dims, image has %d", len(coord), len(axes))
	}

	stride := int64(1)
	offset := int64(0)
	for i, c := range coord {
		if c < 0 || c >= axes[i] {
			return 0, errHduIndexOutOfRange(int(c), int(axes[i]))
		}
		offset += c * stride
		stride *= axes[i]
	}
	return offset, nil
}

// ReadElement decodes the single pixel at coord (column-major, NAXIS1
// fastest), per spec.md §4.5.
func (img *ImageHdu) ReadElement(coord []int64) (TypedValue, error) {
	layout := img.schema.Image
	linear, err := img.elementOffset(coord)
	if err != nil {
		return TypedValue{}, err
	}

	buf := make([]byte, layout.ElementBytes)
	offset := img.boundaries.DataStart + linear*int64(layout.ElementBytes)
	if err := img.src.Seek(offset); err != nil {
		return TypedValue{}, wrapError(KindIo, err, "fitsio: seek to element %v: %v", coord, err)
	}
	if err := readFull(img.src, buf); err != nil {
		return TypedValue{}, err
	}
	return decodeElement(layout.ElementType, buf)
}

// ReadSlab decodes the contiguous rectangular region [origin, origin+extent)
// in FITS column-major order: the returned slice iterates origin[0]
// fastest, exactly as FITS pixel data is laid out on disk (spec.md §4.5).
func (img *ImageHdu) ReadSlab(origin, extent []int64) ([]TypedValue, error) {
	layout := img.schema.Image
	axes := layout.Axes
	if len(origin) != len(axes) || len(extent) != len(axes) {
		return nil, newError(KindHduIndexOutOfRange, "fitsio: slab has %d/%d dims, image has %d", len(origin), len(extent), len(axes))
	}

	total := int64(1)
	for i := range axes {
		if origin[i] < 0 || extent[i] < 0 || origin[i]+extent[i] > axes[i] {
			return nil, errHduIndexOutOfRange(int(origin[i]+extent[i]), int(axes[i]))
		}
		total *= extent[i]
	}

	out := make([]TypedValue, 0, total)
	coord := make([]int64, len(axes))
	copy(coord, origin)

	for n := int64(0); n < total; n++ {
		v, err := img.ReadElement(coord)
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		// advance coord column-major: axis 0 fastest.
		for i := 0; i < len(coord); i++ {
			coord[i]++
			if coord[i] < origin[i]+extent[i] {
				break
			}
			coord[i] = origin[i]
		}
	}
	return out, nil
}

// ReadInto bulk-decodes the entire image payload into dst, a convenience
// path for callers who want the whole array in one shot rather than one
// ReadElement call per pixel. dst must be a pointer to a slice whose
// element type's size matches the image's BITPIX (e.g. *[]float32 for
// BITPIX=-32) and whose length is already ElementCount() — callers
// pre-size it with make, mirroring the teacher's own reflective bulk
// image reader. Elements land in on-disk (column-major, NAXIS1 fastest)
// order; reinterpreting that as row-major is the caller's mistake to
// make, not this method's.
func (img *ImageHdu) ReadInto(dst interface{}) error {
	layout := img.schema.Image

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return newError(KindIo, "fitsio: ReadInto expects a pointer to a slice, got %T", dst)
	}
	slice := rv.Elem()
	elemType := slice.Type().Elem()
	if int(elemType.Size()) != layout.ElementBytes {
		return newError(KindIo, "fitsio: element size %d does not match BITPIX=%d (%d bytes)", elemType.Size(), layout.Bitpix, layout.ElementBytes)
	}

	n := int(img.ElementCount())
	if slice.Len() != n {
		return newError(KindIo, "fitsio: dst has %d elements, image has %d", slice.Len(), n)
	}

	if err := img.src.Seek(img.boundaries.DataStart); err != nil {
		return wrapError(KindIo, err, "fitsio: seek to image data: %v", err)
	}
	buf := make([]byte, int64(n)*int64(layout.ElementBytes))
	if err := readFull(img.src, buf); err != nil {
		return err
	}

	dec := binary.NewDecoder(bytes.NewBuffer(buf))
	dec.Order = binary.BigEndian
	for i := 0; i < n; i++ {
		ev := reflect.New(elemType)
		if err := dec.Decode(ev.Interface()); err != nil {
			return wrapError(KindIo, err, "fitsio: decode image element %d: %v", i, err)
		}
		slice.Index(i).Set(ev.Elem())
	}
	return nil
}
