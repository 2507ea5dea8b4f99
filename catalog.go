// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import "strconv"

// HduKind is the flavor of an HDU, as dispatched from its header's
// XTENSION (or SIMPLE, for the primary) card.
type HduKind int

const (
	KindImage HduKind = iota
	KindBinaryTable
	KindAsciiTable // recognized but unsupported, per SPEC_FULL.md §13(c)
	KindUnknownExtension
)

// HduBoundaries are the four byte offsets of one HDU, per spec.md §3.
type HduBoundaries struct {
	HeaderStart int64
	DataStart   int64
	DataStop    int64
	HduStop     int64
}

// catalogEntry is one HDU the catalog has already walked past.
type catalogEntry struct {
	Boundaries HduBoundaries
	Header     *Header
	Kind       HduKind
	Extension  string // XTENSION value, if any
	Warning    *Error // non-nil for KindUnknownExtension (§7: "non-fatal warning")
}

// HduCatalog walks a FITS file's HDUs from offset 0, computing boundary
// tuples without trusting any external index (spec.md §4.2). Boundaries
// are cached as they are discovered; random access within an already-
// located HDU is O(1).
type HduCatalog struct {
	src     SeekableByteSource
	entries []catalogEntry
	cursor  int64 // byte offset the walk has reached
	done    bool  // true once a read failure or short header ended the walk
}

// NewHduCatalog creates a catalog over src, which must be positioned
// however the caller likes; the catalog always starts its own walk at
// absolute offset 0, since FITS has no central directory (spec.md §4.2).
func NewHduCatalog(src SeekableByteSource) *HduCatalog {
	return &HduCatalog{src: src}
}

// locate ensures entries up through index are present in the cache,
// walking the file as far as necessary. It does not advance past index.
func (c *HduCatalog) locate(index int) error {
	for len(c.entries) <= index {
		if c.done {
			return errHduIndexOutOfRange(index, len(c.entries))
		}
		if err := c.step(); err != nil {
			c.done = true
			// Whatever shape step's failure took (short header, bad
			// card, seek failure, ...), the walk simply cannot reach
			// index: per spec.md's Invariant 3, that is indistinguishable
			// from index being at or beyond the HDU count, so report it
			// as such rather than leaking step's I/O-flavored Kind.
			oob := errHduIndexOutOfRange(index, len(c.entries))
			oob.err = err
			return oob
		}
	}
	return nil
}

// Locate returns the boundaries, kind, and header of the index-th HDU
// (0-based), walking the file as needed. It fails with HduIndexOutOfRange
// if index is at or beyond the HDU count.
func (c *HduCatalog) Locate(index int) (HduBoundaries, HduKind, *Header, error) {
	if index < 0 {
		return HduBoundaries{}, 0, nil, errHduIndexOutOfRange(index, len(c.entries))
	}
	if err := c.locate(index); err != nil {
		return HduBoundaries{}, 0, nil, err
	}
	e := c.entries[index]
	return e.Boundaries, e.Kind, e.Header, nil
}

// Warning returns the non-fatal warning recorded against the index-th HDU,
// if any (e.g. KindUnknownExtension's UnknownHduType).
func (c *HduCatalog) Warning(index int) *Error {
	if index < 0 || index >= len(c.entries) {
		return nil
	}
	return c.entries[index].Warning
}

// Count walks the entire file and returns the number of HDUs parsed
// strictly before the first read failure or short header (spec.md §4.2).
func (c *HduCatalog) Count() int {
	for !c.done {
		if err := c.step(); err != nil {
			c.done = true
			break
		}
	}
	return len(c.entries)
}

// step parses one more HDU at c.cursor, appending its entry and advancing
// the cursor to its hdu_stop.
func (c *HduCatalog) step() error {
	headerStart := c.cursor
	if err := c.src.Seek(headerStart); err != nil {
		return wrapError(KindIo, err, "fitsio: seek to %d: %v", headerStart, err)
	}

	hdr, err := NewHeaderParser(c.src).Read()
	if err != nil {
		return err
	}

	pos, err := c.src.Position()
	if err != nil {
		return wrapError(KindIo, err, "fitsio: position: %v", err)
	}
	dataStart := alignUp(pos, blockSize)

	dataLen, kind, extension, warning, err := dispatchHdu(hdr)
	if err != nil {
		return err
	}

	dataStop := dataStart + dataLen
	hduStop := headerStart + alignUp(dataStop-headerStart, blockSize)

	c.entries = append(c.entries, catalogEntry{
		Boundaries: HduBoundaries{
			HeaderStart: headerStart,
			DataStart:   dataStart,
			DataStop:    dataStop,
			HduStop:     hduStop,
		},
		Header:    hdr,
		Kind:      kind,
		Extension: extension,
		Warning:   warning,
	})
	c.cursor = hduStop
	return nil
}

// alignUp rounds n up to the next multiple of block (block > 0).
func alignUp(n, block int64) int64 {
	rem := n % block
	if rem == 0 {
		return n
	}
	return n + (block - rem)
}

// dispatchHdu computes the payload length and kind of an HDU from its
// parsed header, per spec.md §4.2.
func dispatchHdu(hdr *Header) (dataLen int64, kind HduKind, extension string, warning *Error, err error) {
	if !hdr.Has("XTENSION") {
		// primary HDU: always an image, possibly empty.
		dataLen, err = imageDataLen(hdr)
		return dataLen, KindImage, "", nil, err
	}

	extension, err = hdr.RequireString("XTENSION")
	if err != nil {
		return 0, 0, "", nil, err
	}

	switch extension {
	case "IMAGE":
		dataLen, err = imageDataLen(hdr)
		return dataLen, KindImage, extension, nil, err

	case "BINTABLE":
		dataLen, err = tableDataLen(hdr)
		return dataLen, KindBinaryTable, extension, nil, err

	case "TABLE":
		dataLen, err = tableDataLen(hdr)
		return dataLen, KindAsciiTable, extension, nil, err

	default:
		// unknown XTENSION: best-effort NAXIS1*NAXIS2 fallback, flagged as
		// a non-fatal warning rather than a hard failure (spec.md §4.2).
		dataLen, lenErr := tableDataLen(hdr)
		w := &Error{
			Kind:      KindUnknownHduType,
			Extension: extension,
		}
		w.msg = "fitsio: unknown HDU type (XTENSION=" + extension + ")"
		if lenErr != nil {
			dataLen = 0
		}
		return dataLen, KindUnknownExtension, extension, w, nil
	}
}

// imageDataLen computes an image HDU's payload length from BITPIX/NAXIS.
func imageDataLen(hdr *Header) (int64, error) {
	bitpix, err := hdr.RequireInt("BITPIX")
	if err != nil {
		return 0, err
	}
	naxis, err := hdr.OptionalInt("NAXIS", 0)
	if err != nil {
		return 0, err
	}
	if naxis == 0 {
		return 0, nil
	}

	elemBytes := bitpix / 8
	if elemBytes < 0 {
		elemBytes = -elemBytes
	}

	n := int64(1)
	for i := int64(1); i <= naxis; i++ {
		axis, err := hdr.RequireInt(naxisKey(i))
		if err != nil {
			return 0, err
		}
		n *= axis
	}
	return elemBytes * n, nil
}

// tableDataLen computes a table HDU's payload length as NAXIS1*NAXIS2.
func tableDataLen(hdr *Header) (int64, error) {
	naxis1, err := hdr.RequireInt("NAXIS1")
	if err != nil {
		return 0, err
	}
	naxis2, err := hdr.RequireInt("NAXIS2")
	if err != nil {
		return 0, err
	}
	return naxis1 * naxis2, nil
}

func naxisKey(i int64) string {
	return "NAXIS" + strconv.FormatInt(i, 10)
}
