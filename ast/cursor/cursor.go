// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over a tree of ast.Element values.
package cursor

import (
	"fmt"

	"github.com/d3phys/stupid-json/ast"
)

// Path traverses a sequential path into the structure of e where path
// elements are as documented for the Cursor.Down method, and returns the value
// owned by the element reached. It reports an error if the path cannot be
// followed, or if the value reached does not have type T.
func Path[T ast.Value](e *ast.Element, path ...any) (T, error) {
	c := New(e).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	v, err := c.Element().Payload()
	if err != nil {
		return result, err
	}
	t, ok := v.(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %v", v.Kind())
	}
	return t, nil
}

// A Cursor is a pointer that navigates into the structure of an element tree.
type Cursor struct {
	org *ast.Element
	stk []*ast.Element
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *ast.Element) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin element of c.
func (c *Cursor) Origin() *ast.Element { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Element reports the current element under the cursor.
func (c *Cursor) Element() *ast.Element {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of elements from the origin to the
// current location in c.
func (c *Cursor) Path() []*ast.Element {
	return append([]*ast.Element{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current element, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), or functions (see below).
// If the path cannot be completely consumed, traversal stops at the last
// element reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the current element must own an object, and
// the string selects the member with that key.
//
// If a path element is an integer, the current element must own an array, and
// the integer selects an offset in the array.  Negative offsets count
// backward from the end (-1 is last, -2 second last).
//
// If a path element is a function, the function is executed and its result
// becomes the next element in the sequence. The function must have a
// signature
//
//	func(*ast.Element) (*ast.Element, error)
//
// If the function reports an error, traversal stops and the error is recorded.
//
// Kind mismatches and failed lookups are reported as *ast.SemanticError.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Element()
	for _, elt := range path {
		var next *ast.Element
		var err error
		switch t := elt.(type) {
		case string:
			next, err = cur.Key(t)
		case int:
			next, err = cur.Index(t)
		case func(*ast.Element) (*ast.Element, error):
			next, err = t(cur)
		default:
			err = fmt.Errorf("invalid path element %T", elt)
		}
		if err != nil {
			c.err = err
			return c
		}
		cur = c.push(next)
	}
	return c
}

func (c *Cursor) push(e *ast.Element) *ast.Element { c.stk = append(c.stk, e); return e }
