// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package stupidjson

import (
	"errors"
	"strconv"

	"go4.org/mem"
)

// EndOfInput is the byte reported by Peek when the input is exhausted.
const EndOfInput byte = 0

// A Scanner is a cursor over an immutable source buffer. It provides the
// lookahead, delimiter matching and literal extraction used by the parser.
//
// Methods that skip whitespace treat space, tab, CR and LF as insignificant.
// A method that reports an error leaves the cursor where it was before the
// call.
type Scanner struct {
	src mem.RO
	pos int // cursor offset, 0-based

	// Snapshot of the most recent position computation. Later calls for an
	// offset at or after mark only count newlines from mark onward.
	mark      int // offset of the snapshot
	line      int // line number at mark, 1-based
	lineStart int // offset of the first byte of line
}

// NewScanner constructs a new scanner over src. The scanner does not copy
// src; the caller must not modify it while the scanner is in use.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: mem.B(src), line: 1}
}

// Offset returns the 0-based byte offset of the cursor.
func (s *Scanner) Offset() int { return s.pos }

// AtEOF reports whether the cursor is at the end of the input. It does not
// skip whitespace; call Peek first to discard it.
func (s *Scanner) AtEOF() bool { return s.pos >= s.src.Len() }

// Peek skips whitespace and returns the byte under the cursor without
// consuming it. At the end of the input it returns EndOfInput.
func (s *Scanner) Peek() byte {
	s.skipSpace()
	if s.AtEOF() {
		return EndOfInput
	}
	return s.src.At(s.pos)
}

// PeekIs reports whether the next significant byte of the input is c.
func (s *Scanner) PeekIs(c byte) bool { return s.Peek() == c }

// Expect skips whitespace and consumes c from the input. If the next
// significant byte is not c, Expect reports a *SyntaxError naming c.
func (s *Scanner) Expect(c byte) error {
	start := s.pos
	if s.Peek() != c || s.AtEOF() {
		err := s.failf("expected %s, got %s", quoteByte(c), s.describe())
		s.pos = start
		return err
	}
	s.pos++
	return nil
}

// ScanInteger skips whitespace and consumes a signed integer literal.  The
// radix is chosen from the prefix of the literal: "0x" or "0X" followed by a
// hex digit selects Hex, a "0" followed by further digits selects Octal,
// anything else is Decimal. Only the run of digits valid in that radix is
// consumed.
//
// ScanInteger reports a *SyntaxError if no digits are found, or if the value
// does not fit in an int64.
func (s *Scanner) ScanInteger() (int64, Base, error) {
	start := s.pos
	s.skipSpace()
	lit := s.pos

	i, n := s.pos, s.src.Len()
	if i < n && (s.src.At(i) == '+' || s.src.At(i) == '-') {
		i++
	}
	sign := s.src.Slice(lit, i)

	base := Decimal
	if i+2 < n && s.src.At(i) == '0' && s.src.At(i+1)|0x20 == 'x' && isHexDigit(s.src.At(i+2)) {
		base = Hex
		i += 2
	} else if i+1 < n && s.src.At(i) == '0' && isDigit(s.src.At(i+1)) {
		base = Octal
	}

	j := i
	for j < n && isDigitIn(s.src.At(j), base) {
		j++
	}
	if j == i {
		err := s.failf("expected integer, got %s", s.describe())
		s.pos = start
		return 0, 0, err
	}
	if base == Octal && j-i == 1 {
		base = Decimal // a lone "0", as in "09"
	}

	v, err := strconv.ParseInt(sign.StringCopy()+s.src.Slice(i, j).StringCopy(), int(base), 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		serr := s.failf("integer %s: %w", s.src.Slice(lit, j).StringCopy(), err)
		s.pos = start
		return 0, 0, serr
	}
	s.pos = j
	return v, base, nil
}

// ScanUntil returns the text from the cursor up to but not including the next
// occurrence of delim. The delimiter is not consumed and whitespace is not
// skipped. If delim does not occur before the end of the input, ScanUntil
// reports a *SyntaxError.
func (s *Scanner) ScanUntil(delim byte) (string, error) {
	rest := s.src.SliceFrom(s.pos)
	i := mem.IndexByte(rest, delim)
	if i < 0 {
		return "", s.failf("missing %s before end of input", quoteByte(delim))
	}
	s.pos += i
	return rest.SliceTo(i).StringCopy(), nil
}

// Position returns the line and column of the cursor.
func (s *Scanner) Position() TokenInfo {
	pos := s.pos
	if pos < s.mark {
		s.mark, s.line, s.lineStart = 0, 1, 0
	}
	for s.mark < pos {
		i := mem.IndexByte(s.src.Slice(s.mark, pos), '\n')
		if i < 0 {
			s.mark = pos
			break
		}
		s.mark += i + 1
		s.line++
		s.lineStart = s.mark
	}
	return TokenInfo{Line: s.line, Column: pos - s.lineStart + 1}
}

func (s *Scanner) skipSpace() {
	for !s.AtEOF() && isSpace(s.src.At(s.pos)) {
		s.pos++
	}
}

// describe returns a human-readable label for the byte under the cursor.
func (s *Scanner) describe() string {
	if s.AtEOF() {
		return "end of input"
	}
	return quoteByte(s.src.At(s.pos))
}

func (s *Scanner) failf(msg string, args ...any) error {
	return SyntaxErrorf(s.Position(), msg, args...)
}

func quoteByte(c byte) string { return strconv.Quote(string([]byte{c})) }

func isSpace(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == '\t'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigitIn(c byte, base Base) bool {
	switch base {
	case Hex:
		return isHexDigit(c)
	case Octal:
		return '0' <= c && c <= '7'
	default:
		return isDigit(c)
	}
}
