// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package stupidjson

import "fmt"

// A TokenInfo describes the line number and column of a location in source
// text. Both are 1-based.
type TokenInfo struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 1-based
}

func (t TokenInfo) String() string { return fmt.Sprintf("%d:%d", t.Line, t.Column) }

// IsValid reports whether t refers to an actual source location.
// Values built by hand rather than parsed have no location.
func (t TokenInfo) IsValid() bool { return t.Line > 0 && t.Column > 0 }

// A Base records the radix an integer was written in.
// The value of a Base is the radix itself.
type Base int

// Constants defining the valid Base values.
const (
	Decimal Base = 10
	Octal   Base = 8
	Hex     Base = 16
)

func (b Base) String() string {
	switch b {
	case Decimal:
		return "decimal"
	case Octal:
		return "octal"
	case Hex:
		return "hex"
	default:
		return fmt.Sprintf("Base(%d)", int(b))
	}
}
