// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/d3phys/stupid-json/ast"
)

// MustParse parses src as a document, or fails the test.
func MustParse(t testing.TB, src string) *ast.Element {
	t.Helper()
	e, err := ast.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", src, err)
	}
	return e
}

// MustFormat renders e with f, or fails the test.
func MustFormat(t testing.TB, f ast.Formatter, e *ast.Element) string {
	t.Helper()
	var sb strings.Builder
	if err := f.Format(&sb, e); err != nil {
		t.Fatalf("Format: unexpected error: %v", err)
	}
	return sb.String()
}
