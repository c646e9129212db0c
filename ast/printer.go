// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/mds/stack"
	sj "github.com/d3phys/stupid-json"
)

// DefaultIndent is the number of spaces per nesting level used when a
// Formatter does not specify one.
const DefaultIndent = 4

// A Formatter carries the settings for rendering values as text.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Spaces of indentation per nesting level. Values less than 1 select
	// DefaultIndent.
	Indent int

	// If true, all numbers are rendered in base 10. Otherwise each number is
	// rendered in the radix it was written in.
	Decimal bool
}

// Format renders a pretty-printed representation of e to w with default
// settings.
func Format(w io.Writer, e *Element) error {
	var f Formatter
	return f.Format(w, e)
}

// Format renders a pretty-printed representation of e to w using the settings
// from f. If e or any element it owns is empty, Format reports a
// *SemanticError.
func (f Formatter) Format(w io.Writer, e *Element) error {
	p := f.newPrinter(w)
	e.serialize(p)
	return p.flush()
}

// printer is the single sink for rendered output. It tracks the indentation
// of the current nesting level and latches the first error.
type printer struct {
	w    *bufio.Writer
	f    Formatter
	unit string
	ind  *stack.Stack[string]
	err  error
}

func (f Formatter) newPrinter(w io.Writer) *printer {
	n := f.Indent
	if n < 1 {
		n = DefaultIndent
	}
	ind := stack.New[string]()
	ind.Push("")
	return &printer{w: bufio.NewWriter(w), f: f, unit: strings.Repeat(" ", n), ind: ind}
}

func (p *printer) print(ss ...string) {
	for _, s := range ss {
		if p.err != nil {
			return
		}
		_, p.err = p.w.WriteString(s)
	}
}

func (p *printer) newline() {
	cur := p.ind.Top()
	p.print("\n", cur)
}

func (p *printer) indent() {
	cur := p.ind.Top()
	p.ind.Push(cur + p.unit)
}

func (p *printer) unindent() {
	if p.ind.Len() > 1 {
		p.ind.Pop()
	}
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) flush() error {
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

func (p *printer) quoted(text string) {
	if strings.IndexByte(text, '"') >= 0 {
		p.fail(fmt.Errorf("string %q contains a quotation mark", text))
		return
	}
	p.print(`"`, text, `"`)
}

func (p *printer) number(n *Number) {
	if p.f.Decimal {
		p.print(strconv.FormatInt(n.value, 10))
		return
	}
	p.print(formatInt(n.value, n.radix))
}

func (e *Element) serialize(p *printer) {
	if e.v == nil {
		p.fail(e.mismatch(NoKind))
		return
	}
	e.v.serialize(p)
}

func (o *Object) serialize(p *printer) {
	if o.Len() == 0 {
		p.print("{}")
		return
	}
	p.print("{")
	p.indent()
	p.newline()
	for i, key := range o.Keys() {
		if i > 0 {
			p.print(",")
			p.newline()
		}
		p.quoted(key)
		p.print(" : ")
		o.members[key].serialize(p)
	}
	p.unindent()
	p.newline()
	p.print("}")
}

func (a *Array) serialize(p *printer) {
	if a.Len() == 0 {
		p.print("[]")
		return
	}
	p.print("[")
	p.indent()
	p.newline()
	for i, elt := range a.elems {
		if i > 0 {
			p.print(",")
			p.newline()
		}
		elt.serialize(p)
	}
	p.unindent()
	p.newline()
	p.print("]")
}

func (s *String) serialize(p *printer) { p.quoted(s.text) }

func (n *Number) serialize(p *printer) { p.number(n) }

// formatInt renders v in the given radix with the prefix the scanner
// recognizes for it: "0x" for Hex, "0" for Octal.
func formatInt(v int64, base sj.Base) string {
	var sign string
	u := uint64(v)
	if v < 0 {
		sign, u = "-", -u
	}
	switch base {
	case sj.Hex:
		return sign + "0x" + strconv.FormatUint(u, 16)
	case sj.Octal:
		return sign + "0" + strconv.FormatUint(u, 8)
	default:
		return strconv.FormatInt(v, 10)
	}
}
