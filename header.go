// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	cardLen  = 80
	maxLines = blockSize / cardLen // 36
)

// Header is an ordered sequence of HeaderCards, terminated by the sentinel
// "END" card. Header is built once by HeaderParser.Read and is immutable
// thereafter; it is freely shareable across goroutines once built (§5).
type Header struct {
	cards []HeaderCard
	index map[string]int // first occurrence of each non-commentary keyword
}

// Cards returns the ordered cards of this header, including the terminal
// END card.
func (h *Header) Cards() []HeaderCard {
	return h.cards
}

// Get returns the first card named kw, or nil if absent.
func (h *Header) Get(kw string) *HeaderCard {
	i, ok := h.index[kw]
	if !ok {
		return nil
	}
	return &h.cards[i]
}

// Has reports whether a card named kw is present.
func (h *Header) Has(kw string) bool {
	_, ok := h.index[kw]
	return ok
}

// Keys returns the keywords of every non-commentary card, in header order.
func (h *Header) Keys() []string {
	keys := make([]string, 0, len(h.index))
	for i := range h.cards {
		kw := h.cards[i].Keyword
		switch kw {
		case "END", "COMMENT", "HISTORY", "":
			continue
		}
		if !slices.Contains(keys, kw) {
			keys = append(keys, kw)
		}
	}
	return keys
}

// RequireInt reads kw as a required integer card, failing with
// MissingRequiredCard or MalformedCard.
func (h *Header) RequireInt(kw string) (int64, error) {
	c := h.Get(kw)
	if c == nil {
		return 0, errMissingCard(kw)
	}
	if c.Value == nil {
		return 0, errMalformedCard(c.Raw)
	}
	return c.Value.AsInt()
}

// OptionalInt reads kw as an integer card, returning def if absent.
func (h *Header) OptionalInt(kw string, def int64) (int64, error) {
	c := h.Get(kw)
	if c == nil || c.Value == nil {
		return def, nil
	}
	return c.Value.AsInt()
}

// RequireString reads kw as a required quoted-string card.
func (h *Header) RequireString(kw string) (string, error) {
	c := h.Get(kw)
	if c == nil || c.Value == nil {
		return "", errMissingCard(kw)
	}
	return c.Value.AsString()
}

// HeaderParser reads 2880-byte header blocks from a SeekableByteSource and
// assembles them into a Header, per spec.md §4.1.
type HeaderParser struct {
	src SeekableByteSource
}

// NewHeaderParser creates a HeaderParser reading from src.
func NewHeaderParser(src SeekableByteSource) *HeaderParser {
	return &HeaderParser{src: src}
}

// Read parses one header starting at the source's current cursor, leaving
// the cursor positioned immediately after the header's padded blocks (a
// multiple of 2880 bytes past where Read started).
func (p *HeaderParser) Read() (*Header, error) {
	hdr := &Header{
		cards: make([]HeaderCard, 0, maxLines),
		index: make(map[string]int, maxLines),
	}

	block := make([]byte, blockSize)
	for {
		if err := readFull(p.src, block); err != nil {
			return nil, err
		}

		done := false
		for i := 0; i < maxLines; i++ {
			line := string(block[i*cardLen : (i+1)*cardLen])
			card, err := parseCardLine(line)
			if err != nil {
				return nil, err
			}

			if card.Keyword == "CONTINUE" {
				foldContinue(hdr, card)
				continue
			}

			hdr.append(*card)
			if card.Keyword == "END" {
				done = true
				break
			}
		}
		if done {
			break
		}
	}

	return hdr, nil
}

// append adds a card to the header, recording its index for Get/Has unless
// it is a commentary keyword (which may legitimately repeat).
func (h *Header) append(c HeaderCard) {
	switch c.Keyword {
	case "COMMENT", "HISTORY", "", "END":
		h.cards = append(h.cards, c)
	default:
		if _, dup := h.index[c.Keyword]; !dup {
			h.index[c.Keyword] = len(h.cards)
		}
		h.cards = append(h.cards, c)
	}
}

// foldContinue implements the CONTINUE long-string convention (§12 of
// SPEC_FULL.md): a string card ending in '&' defers its remainder to a
// following CONTINUE card, whose own value-area string replaces the
// trailing '&'.
func foldContinue(hdr *Header, cont *HeaderCard) {
	if len(hdr.cards) == 0 || cont.Name == nil {
		return
	}
	last := &hdr.cards[len(hdr.cards)-1]
	if last.Value == nil || last.Value.Kind != ScalarString {
		return
	}
	str := last.Value.Str
	if !strings.HasSuffix(str, "&") {
		return
	}
	str = str[:len(str)-1]
	joined := str + *cont.Name
	last.Value = &ScalarValue{Kind: ScalarString, Str: joined}
}

var hierarchPrefix = []byte("HIERARCH ")

// parseCardLine parses one 80-byte header line per §4.1: keyword in
// [0,8), value card iff [8,10) == "= ", value area [10,80) split on the
// first unquoted '/'.
func parseCardLine(line string) (*HeaderCard, error) {
	if len(line) != cardLen {
		return nil, newError(KindUnexpectedEof, "fitsio: short header line (%d bytes)", len(line))
	}

	card := &HeaderCard{Raw: line}

	if bytes.HasPrefix([]byte(line), hierarchPrefix) {
		eq := strings.Index(line, "=")
		if eq < 0 {
			card.Keyword = strings.TrimRight(line, " ")
			comment := strings.TrimRight(line[len(hierarchPrefix):], " ")
			card.Comment = &comment
			return card, nil
		}
		card.Keyword = strings.TrimSpace(line[len(hierarchPrefix):eq])
		return parseValueArea(card, line[eq+1:])
	}

	keyword := strings.TrimRight(line[0:8], " ")
	if len(line) < 10 || line[8:10] != "= " {
		// commentary card: HISTORY, COMMENT, CONTINUE, END, or blank.
		card.Keyword = keyword
		comment := strings.TrimRight(line[8:], " ")
		card.Comment = &comment
		if keyword == "CONTINUE" {
			str := strings.TrimSpace(line[8:])
			val, err := unquote(str)
			if err != nil {
				return nil, err
			}
			card.Name = &val
		}
		return card, nil
	}

	card.Keyword = keyword
	return parseValueArea(card, line[10:])
}

// parseValueArea parses the fixed-format value field (everything after the
// "= " indicator, or after the HIERARCH "="), splitting off a trailing
// comment on the first unquoted '/'.
func parseValueArea(card *HeaderCard, area string) (*HeaderCard, error) {
	trimmed := strings.TrimLeft(area, " ")
	if trimmed == "" {
		// absence of a value is legal: the keyword's value is undefined.
		return card, nil
	}

	switch trimmed[0] {
	case '\'':
		str, rest, err := readQuoted(trimmed)
		if err != nil {
			return nil, err
		}
		v := stringValue(str)
		card.Value = &v
		card.Name = &str
		setComment(card, rest)
		return card, nil

	case '(':
		idx := strings.IndexByte(trimmed, ')')
		if idx < 0 {
			return nil, errMalformedCard(card.Raw)
		}
		var re, im float64
		if _, err := fmt.Sscanf(trimmed[:idx+1], "(%f,%f)", &re, &im); err != nil {
			return nil, errMalformedCard(card.Raw)
		}
		v := complexValue(complex(re, im))
		card.Value = &v
		setComment(card, trimmed[idx+1:])
		return card, nil

	default:
		// an unparsable token leaves Value nil instead of failing the
		// whole header; Raw keeps the line for re-parsing.
		tok, rest := splitToken(trimmed)
		if v, err := parseScalarToken(tok, card.Raw); err == nil {
			card.Value = &v
		}
		setComment(card, rest)
		return card, nil
	}
}

// splitToken returns the unquoted value token (up to the first '/', or end
// of field, with surrounding spaces trimmed) and whatever follows it.
func splitToken(s string) (tok, rest string) {
	if idx := strings.Index(s, "/"); idx >= 0 {
		return strings.TrimSpace(s[:idx]), s[idx:]
	}
	return strings.TrimSpace(s), ""
}

// setComment records the comment found after the first unquoted '/' in
// rest, if any.
func setComment(card *HeaderCard, rest string) {
	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return
	}
	comment := strings.TrimSpace(rest[idx+1:])
	card.Comment = &comment
}

// parseScalarToken parses an integer, float, or boolean fixed-format value
// token. Unlike the source program this core supplants, unparsable tokens
// are NOT coerced — they fail with MalformedCard, and parseValueArea then
// leaves the card without a Value so downstream code can re-parse the
// preserved Raw line instead of silently trusting a guess.
func parseScalarToken(tok, raw string) (ScalarValue, error) {
	if tok == "" {
		return ScalarValue{}, nil
	}
	switch tok {
	case "T":
		return boolValue(true), nil
	case "F":
		return boolValue(false), nil
	}

	c0 := tok[0]
	if c0 == '+' || c0 == '-' || (c0 >= '0' && c0 <= '9') {
		if strings.ContainsAny(tok, ".DE") {
			f := strings.Replace(tok, "D", "E", 1)
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return ScalarValue{}, errMalformedCard(raw)
			}
			return floatValue(x), nil
		}
		x, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				var bi big.Int
				if _, ok := bi.SetString(tok, 10); ok {
					return bigValue(bi), nil
				}
			}
			return ScalarValue{}, errMalformedCard(raw)
		}
		return intValue(x), nil
	}

	return ScalarValue{}, errMalformedCard(raw)
}

// readQuoted reads a single-quoted string starting at s[0]=='\''. A doubled
// quote ('') is an escaped literal quote, per §4.1. It returns the
// unescaped string (right-trimmed of trailing spaces) and whatever
// followed the closing quote.
func readQuoted(s string) (value, rest string, err error) {
	if len(s) == 0 || s[0] != '\'' {
		return "", "", errMalformedCard(s)
	}
	var buf bytes.Buffer
	i := 1
	for i < len(s) {
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				buf.WriteByte('\'')
				i += 2
				continue
			}
			return strings.TrimRight(buf.String(), " "), s[i+1:], nil
		}
		buf.WriteByte(s[i])
		i++
	}
	return "", "", newError(KindMalformedCard, "fitsio: unterminated quoted string (%q)", s)
}

// unquote parses a single-quoted string value without needing the
// surrounding HeaderCard context; used for CONTINUE cards.
func unquote(s string) (string, error) {
	v, _, err := readQuoted(s)
	return v, err
}
