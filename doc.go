// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package stupidjson implements the scanner for a small JSON-shaped
// configuration language.
//
// The language has objects, arrays, quoted strings and integers:
//
//	element := object | array | string | number
//	object  := '{' ( pair (',' pair)* )? '}'
//	pair    := string ':' element
//	array   := '[' ( element (',' element)* )? ']'
//	string  := '"' <raw bytes excluding '"'> '"'
//	number  := <integer literal: 0x.. hex, 0.. octal, else decimal>
//
// Strings are not escaped: the payload is the exact text between the quotes,
// and a string cannot contain a quotation mark. Whitespace (space, tab, CR,
// LF) may appear between any two tokens.
//
// # Scanning
//
// The Scanner type is a cursor over an immutable buffer. It does not produce
// a token stream; instead the parser asks it for exactly what the grammar
// expects next:
//
//	s := stupidjson.NewScanner(input)
//	if err := s.Expect('{'); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Peek returns the next significant byte without consuming it, Expect
// consumes a single expected byte, ScanInteger and ScanUntil extract literals.
// Errors have concrete type *stupidjson.SyntaxError and carry the line and
// column of the failure.
//
// # Trees
//
// Package ast builds a tree of values from a Scanner, and renders trees back
// to text.
//
//	root, err := ast.Parse(input)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	port, err := root.Key("port")
//	...
//	ast.Format(os.Stdout, root)
package stupidjson
