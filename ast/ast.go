// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree of values for stupid-json documents, a parser
// that constructs trees from source text, and a formatter that renders them.
//
// The root of a tree is an *Element. An Element owns exactly one value (an
// *Object, *Array, *String or *Number) or is empty. Containers own their
// children through further Elements, so every value in a tree has exactly one
// owner.
package ast

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	sj "github.com/d3phys/stupid-json"
)

// A Kind identifies the variant of a value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NoKind     Kind = iota // an empty element
	ObjectKind             // object: { ... }
	ArrayKind              // array: [ ... ]
	StringKind             // quoted string
	NumberKind             // integer
)

var kindStr = [...]string{
	NoKind:     "empty",
	ObjectKind: "object",
	ArrayKind:  "array",
	StringKind: "string",
	NumberKind: "number",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindStr[k]
}

// A Value is the payload of an Element.
// The concrete type is one of *Object, *Array, *String, or *Number.
type Value interface {
	// Kind reports the variant of the value.
	Kind() Kind

	// Pos reports the location of the first byte of the value in its source.
	// Values constructed by hand have a zero location.
	Pos() sj.TokenInfo

	serialize(p *printer)
	base() *node
}

// node carries the fields common to every value.
type node struct {
	pos   sj.TokenInfo
	owner *Element
}

func (n *node) Pos() sj.TokenInfo { return n.pos }
func (n *node) base() *node       { return n }

// A String is a quoted string. The text is stored exactly as written between
// the quotation marks.
type String struct {
	node
	text string
}

// NewString returns a new unowned string value with the given text.
func NewString(text string) *String { return &String{text: text} }

// Kind satisfies the Value interface.
func (*String) Kind() Kind { return StringKind }

// Text returns the text of s.
func (s *String) Text() string { return s.text }

// A Number is an integer together with the radix it was written in.
type Number struct {
	node
	value int64
	radix sj.Base
}

// NewNumber returns a new unowned number value. If base is not one of the
// defined Base values, sj.Decimal is used.
func NewNumber(v int64, base sj.Base) *Number {
	switch base {
	case sj.Decimal, sj.Octal, sj.Hex:
	default:
		base = sj.Decimal
	}
	return &Number{value: v, radix: base}
}

// Kind satisfies the Value interface.
func (*Number) Kind() Kind { return NumberKind }

// Int64 returns the value of n.
func (n *Number) Int64() int64 { return n.value }

// Base returns the radix n was written in.
func (n *Number) Base() sj.Base { return n.radix }

// An Object is a collection of uniquely-keyed members.
type Object struct {
	node
	members map[string]*Element
}

// NewObject returns a new unowned empty object.
func NewObject() *Object { return &Object{members: make(map[string]*Element)} }

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return ObjectKind }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// Find returns the element stored under key, or nil if there is none.
func (o *Object) Find(key string) *Element { return o.members[key] }

// Insert adds a new empty element under key and returns it for the caller to
// fill. An element previously stored under key is released.
func (o *Object) Insert(key string) *Element {
	if old, ok := o.members[key]; ok {
		old.Release()
	}
	if o.members == nil {
		o.members = make(map[string]*Element)
	}
	e := new(Element)
	o.members[key] = e
	return e
}

// Delete releases and removes the element stored under key. It reports
// whether there was one.
func (o *Object) Delete(key string) bool {
	e, ok := o.members[key]
	if ok {
		e.Release()
		delete(o.members, key)
	}
	return ok
}

// Keys returns the keys of o in ascending order.
func (o *Object) Keys() []string { return slices.Sorted(maps.Keys(o.members)) }

// All iterates over the members of o in ascending order of key.
func (o *Object) All() iter.Seq2[string, *Element] {
	return func(yield func(string, *Element) bool) {
		for _, key := range o.Keys() {
			if !yield(key, o.members[key]) {
				return
			}
		}
	}
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", o.Len()) }

// An Array is a sequence of elements.
type Array struct {
	node
	elems []*Element
}

// NewArray returns a new unowned empty array.
func NewArray() *Array { return new(Array) }

// Kind satisfies the Value interface.
func (*Array) Kind() Kind { return ArrayKind }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element at offset i, or nil if i is out of range.
func (a *Array) At(i int) *Element {
	if i < 0 || i >= len(a.elems) {
		return nil
	}
	return a.elems[i]
}

// Append adds a new empty element to the end of a and returns it for the
// caller to fill.
func (a *Array) Append() *Element {
	e := new(Element)
	a.elems = append(a.elems, e)
	return e
}

// All iterates over the elements of a in order.
func (a *Array) All() iter.Seq2[int, *Element] { return slices.All(a.elems) }

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", a.Len()) }

// noCopy is flagged by the copylocks check of go vet when a value containing
// it is copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// An Element is the owner of a single value. The zero value is an empty
// element ready for use.
//
// An Element must not be copied after first use. Use Move or MoveFrom to
// transfer its value to another element.
type Element struct {
	_ noCopy

	v Value
}

// Kind reports the kind of the value owned by e, or NoKind if e is empty.
func (e *Element) Kind() Kind {
	if e.v == nil {
		return NoKind
	}
	return e.v.Kind()
}

// IsEmpty reports whether e owns no value.
func (e *Element) IsEmpty() bool { return e.v == nil }

// Pos reports the source location of the value owned by e.
func (e *Element) Pos() sj.TokenInfo {
	if e.v == nil {
		return sj.TokenInfo{}
	}
	return e.v.Pos()
}

// Value returns the value owned by e, or nil if e is empty.
func (e *Element) Value() Value { return e.v }

// Payload returns the value owned by e, or a *SemanticError if e is empty.
func (e *Element) Payload() (Value, error) {
	if e.v == nil {
		return nil, e.mismatch(NoKind)
	}
	return e.v, nil
}

// Set releases the value currently owned by e, if any, and transfers
// ownership of v to e. A nil v leaves e empty.
//
// Set panics if v is already owned by a different element, or if e is an
// element inside v, since the tree would then contain itself.
func (e *Element) Set(v Value) {
	if v != nil {
		if own := v.base().owner; own != nil && own != e {
			panic(fmt.Sprintf("ast: %v value is already owned", v.Kind()))
		} else if own == e {
			return
		}
		if contains(v, e) {
			panic(fmt.Sprintf("ast: %v value would contain its own owner", v.Kind()))
		}
	}
	e.adopt(v)
}

// adopt releases the value owned by e and makes e the owner of v, without
// the checks done by Set. The parser uses it for freshly built values.
func (e *Element) adopt(v Value) {
	e.Release()
	if v != nil {
		v.base().owner = e
	}
	e.v = v
}

// contains reports whether e is an element inside v.
func contains(v Value, e *Element) bool {
	switch t := v.(type) {
	case *Object:
		for _, m := range t.members {
			if m == e || contains(m.v, e) {
				return true
			}
		}
	case *Array:
		for _, elt := range t.elems {
			if elt == e || contains(elt.v, e) {
				return true
			}
		}
	}
	return false
}

// Move transfers the value owned by e to a new element and returns it,
// leaving e empty.
func (e *Element) Move() *Element {
	out := new(Element)
	out.MoveFrom(e)
	return out
}

// MoveFrom releases the value owned by e, if any, and transfers ownership of
// the value owned by src to e, leaving src empty.
//
// MoveFrom panics if e is an element inside the value owned by src.
func (e *Element) MoveFrom(src *Element) {
	if src == e {
		return
	}
	if src.v != nil && contains(src.v, e) {
		panic(fmt.Sprintf("ast: %v value would contain its own owner", src.v.Kind()))
	}
	v := src.v
	src.v = nil
	e.adopt(v)
}

// Release discards the value owned by e and everything it owns, leaving e
// empty.
func (e *Element) Release() {
	switch t := e.v.(type) {
	case nil:
		return
	case *Object:
		for _, m := range t.members {
			m.Release()
		}
		clear(t.members)
	case *Array:
		for _, elt := range t.elems {
			elt.Release()
		}
		t.elems = nil
	}
	e.v.base().owner = nil
	e.v = nil
}

// AsNumber returns the value of the number owned by e.
func (e *Element) AsNumber() (int64, error) {
	if n, ok := e.v.(*Number); ok {
		return n.value, nil
	}
	return 0, e.mismatch(NumberKind)
}

// AsString returns the text of the string owned by e.
func (e *Element) AsString() (string, error) {
	if s, ok := e.v.(*String); ok {
		return s.text, nil
	}
	return "", e.mismatch(StringKind)
}

// AsObject returns the object owned by e.
func (e *Element) AsObject() (*Object, error) {
	if o, ok := e.v.(*Object); ok {
		return o, nil
	}
	return nil, e.mismatch(ObjectKind)
}

// AsArray returns the array owned by e.
func (e *Element) AsArray() (*Array, error) {
	if a, ok := e.v.(*Array); ok {
		return a, nil
	}
	return nil, e.mismatch(ArrayKind)
}

// Append adds a new empty element to the end of the array owned by e and
// returns it for the caller to fill.
func (e *Element) Append() (*Element, error) {
	a, err := e.AsArray()
	if err != nil {
		return nil, err
	}
	return a.Append(), nil
}

// Insert adds a new empty element under key in the object owned by e and
// returns it for the caller to fill. An element previously stored under key
// is released.
func (e *Element) Insert(key string) (*Element, error) {
	o, err := e.AsObject()
	if err != nil {
		return nil, err
	}
	return o.Insert(key), nil
}

// Key returns the element stored under key in the object owned by e.
func (e *Element) Key(key string) (*Element, error) {
	o, err := e.AsObject()
	if err != nil {
		return nil, err
	}
	if m := o.Find(key); m != nil {
		return m, nil
	}
	return nil, &SemanticError{
		Location: e.Pos(),
		Want:     ObjectKind,
		Got:      ObjectKind,
		Message:  fmt.Sprintf("key %q not found", key),
		err:      ErrNotFound,
	}
}

// Index returns the element at offset i in the array owned by e.
// Negative offsets count backward from the end (-1 is last).
func (e *Element) Index(i int) (*Element, error) {
	a, err := e.AsArray()
	if err != nil {
		return nil, err
	}
	j := i
	if j < 0 {
		j += a.Len()
	}
	if elt := a.At(j); elt != nil {
		return elt, nil
	}
	return nil, &SemanticError{
		Location: e.Pos(),
		Want:     ArrayKind,
		Got:      ArrayKind,
		Message:  fmt.Sprintf("index %d out of bounds (n=%d)", i, a.Len()),
		err:      ErrNotFound,
	}
}

// String renders e with the default Formatter settings. If e cannot be
// rendered, the result describes the error.
func (e *Element) String() string {
	var sb strings.Builder
	if err := Format(&sb, e); err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return sb.String()
}

func (e *Element) mismatch(want Kind) error {
	got := e.Kind()
	msg := fmt.Sprintf("want %v, got %v", want, got)
	if got == NoKind {
		msg = "element is empty"
		if want != NoKind {
			msg = fmt.Sprintf("want %v, element is empty", want)
		}
	}
	return &SemanticError{Location: e.Pos(), Want: want, Got: got, Message: msg}
}

// ErrNotFound is wrapped by the *SemanticError reported when a key or index
// lookup finds no element. For such errors Want and Got are equal, since the
// container had the expected kind.
var ErrNotFound = errors.New("element not found")

// SemanticError is the concrete type of errors reported when a value is used
// as a kind it does not have, or when a lookup in a value fails.
type SemanticError struct {
	Location sj.TokenInfo
	Want     Kind // the kind the caller asked for
	Got      Kind // the kind actually present
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SemanticError) Error() string {
	if !s.Location.IsValid() {
		return s.Message
	}
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SemanticError) Unwrap() error { return s.err }
