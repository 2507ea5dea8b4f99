// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

// HeaderCard is one 80-byte record of a FITS header, parsed per the
// column-range rule of §4.1: keyword in [0,8), value in [10,80) for cards
// with "= " at [8,10), commentary otherwise.
type HeaderCard struct {
	Keyword string       // right-trimmed 8-char token (or the full HIERARCH name)
	Raw     string       // the original 80-byte line, preserved for re-parsing
	Value   *ScalarValue // nil for commentary cards or cards with no value
	Name    *string      // the quoted string in the value area, if any
	Comment *string      // text after the first unquoted '/', if any
}

// IsCommentary reports whether this card is a HISTORY, COMMENT, or blank
// card rather than a keyword=value card.
func (c *HeaderCard) IsCommentary() bool {
	return c.Value == nil && c.Name == nil
}
