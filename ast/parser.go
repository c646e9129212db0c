// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	sj "github.com/d3phys/stupid-json"
)

// ErrExtraInput is wrapped by the error reported by Parse when the input
// contains data after the document.
var ErrExtraInput = errors.New("extra input after value")

// A Tracer is called by the parser when it begins a production, with the name
// of the production ("element", "object", "array", "string", "number") and
// the location where it starts.
type Tracer func(production string, at sj.TokenInfo)

// A Parser carries the settings for parsing documents.
// A zero value is ready for use with default settings.
type Parser struct {
	// If true, a key that occurs more than once in an object is reported as a
	// syntax error. Otherwise the last occurrence wins.
	RejectDuplicateKeys bool

	// If non-nil, Trace is called at the start of each production.
	Trace Tracer
}

// Parse parses a single document from src with default settings.
func Parse(src []byte) (*Element, error) {
	var p Parser
	return p.Parse(src)
}

// ParseFile reads the named file and parses a single document from it with
// default settings.
func ParseFile(path string) (*Element, error) {
	var p Parser
	return p.ParseFile(path)
}

// ParseFile reads the named file and parses a single document from it using
// the settings from p.
func (p Parser) ParseFile(path string) (*Element, error) {
	src, err := sj.ReadFile(path)
	if err != nil {
		return nil, err
	}
	e, err := p.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// Parse parses a single document from src using the settings from p.  Only
// whitespace may follow the document; any other input is reported as a
// *SyntaxError wrapping ErrExtraInput.
//
// In case of error no part of the tree is returned.
func (p Parser) Parse(src []byte) (*Element, error) {
	s := sj.NewScanner(src)
	e, err := p.ParseElement(s)
	if err != nil {
		return nil, err
	}
	if s.Peek(); !s.AtEOF() {
		e.Release()
		return nil, sj.SyntaxErrorf(s.Position(), "%w", ErrExtraInput)
	}
	return e, nil
}

// ParseElement parses a single element from the front of s using the
// settings from p. Input after the element is left unconsumed. Errors have
// concrete type *stupidjson.SyntaxError.
func (p Parser) ParseElement(s *sj.Scanner) (*Element, error) {
	e := new(Element)
	if err := p.parseElement(s, e); err != nil {
		return nil, err
	}
	return e, nil
}

// parseElement parses a value and stores it in e.
//
//	element := object | array | string | number
//
// The first significant byte selects the production. Anything that does not
// open an object, array or string is parsed as a number, so an unexpected
// character is reported by the number production.
func (p Parser) parseElement(s *sj.Scanner, e *Element) error {
	if p.Trace != nil {
		p.start("element", s)
	}

	var v Value
	var err error
	switch s.Peek() {
	case '{':
		v, err = p.parseObject(s)
	case '[':
		v, err = p.parseArray(s)
	case '"':
		v, err = p.parseString(s)
	default:
		v, err = p.parseNumber(s)
	}
	if err != nil {
		return err
	}
	e.adopt(v)
	return nil
}

// parseObject parses an object.
//
//	object := '{' ( pair (',' pair)* )? '}'
//	pair   := string ':' element
func (p Parser) parseObject(s *sj.Scanner) (*Object, error) {
	o := &Object{node: node{pos: p.start("object", s)}, members: make(map[string]*Element)}
	if err := s.Expect('{'); err != nil {
		return nil, err
	}
	for more := !s.PeekIs('}'); more; more = s.PeekIs(',') && s.Expect(',') == nil {
		key, err := p.parseString(s)
		if err != nil {
			return nil, err
		}
		if err := s.Expect(':'); err != nil {
			return nil, err
		}
		if p.RejectDuplicateKeys && o.Find(key.text) != nil {
			return nil, sj.SyntaxErrorf(key.pos, "duplicate key %q", key.text)
		}
		if err := p.parseElement(s, o.Insert(key.text)); err != nil {
			return nil, err
		}
	}
	if err := s.Expect('}'); err != nil {
		return nil, err
	}
	return o, nil
}

// parseArray parses an array.
//
//	array := '[' ( element (',' element)* )? ']'
func (p Parser) parseArray(s *sj.Scanner) (*Array, error) {
	a := &Array{node: node{pos: p.start("array", s)}}
	if err := s.Expect('['); err != nil {
		return nil, err
	}
	for more := !s.PeekIs(']'); more; more = s.PeekIs(',') && s.Expect(',') == nil {
		if err := p.parseElement(s, a.Append()); err != nil {
			return nil, err
		}
	}
	if err := s.Expect(']'); err != nil {
		return nil, err
	}
	return a, nil
}

// parseString parses a string. The text is not unescaped.
//
//	string := '"' <raw bytes excluding '"'> '"'
func (p Parser) parseString(s *sj.Scanner) (*String, error) {
	at := p.start("string", s)
	if err := s.Expect('"'); err != nil {
		return nil, err
	}
	text, err := s.ScanUntil('"')
	if err != nil {
		return nil, err
	}
	if err := s.Expect('"'); err != nil {
		return nil, err
	}
	return &String{node: node{pos: at}, text: text}, nil
}

// parseNumber parses an integer, recording its radix.
func (p Parser) parseNumber(s *sj.Scanner) (*Number, error) {
	at := p.start("number", s)
	v, base, err := s.ScanInteger()
	if err != nil {
		return nil, err
	}
	return &Number{node: node{pos: at}, value: v, radix: base}, nil
}

// start positions s at the first significant byte of a production and
// returns its location, reporting it to the tracer if one is set.
func (p Parser) start(production string, s *sj.Scanner) sj.TokenInfo {
	s.Peek()
	at := s.Position()
	if p.Trace != nil {
		p.Trace(production, at)
	}
	return at
}
