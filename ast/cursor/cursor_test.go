// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	sj "github.com/d3phys/stupid-json"
	"github.com/d3phys/stupid-json/ast"
	"github.com/d3phys/stupid-json/ast/cursor"
	"github.com/d3phys/stupid-json/internal/testutil"
)

const testInput = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": 0x1,
    "d": 01,
    "q": 0
  }
}`

func TestCursor(t *testing.T) {
	v := testutil.MustParse(t, testInput)
	must := func(e *ast.Element, err error) *ast.Element {
		t.Helper()
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		return e
	}
	list := must(v.Key("list"))
	xyz := must(v.Key("xyz"))
	o := must(v.Key("o"))

	tests := []struct {
		name string
		path []any
		want *ast.Element // if nil, compare the rendered text instead
		text string
		fail bool
	}{
		{"NilInput", nil, v, "", false},
		{"NoMatch", []any{"nonesuch"}, v, "", true},
		{"WrongType", []any{11}, v, "", true},
		{"BadElement", []any{1.5}, v, "", true},

		{"ArrayPos", []any{"list", 1}, must(list.Index(1)), "", false},
		{"ArrayNeg", []any{"list", -1}, must(list.Index(1)), "", false},
		{"ArrayRange", []any{"o", 25}, o, "", true},
		{"ObjPath", []any{"xyz", "d"}, must(xyz.Key("d")), "", false},
		{"Deep", []any{"list", 0, "x"}, must(must(list.Index(0)).Key("x")), "", false},

		{"FuncArray", []any{"o", testPathFunc}, nil, "2", false},
		{"FuncObj", []any{"xyz", testPathFunc}, nil, "3", false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, must(xyz.Key("d")), "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got nil, want error", tc.path)
			}
			got := c.Element()
			if tc.want != nil {
				if got != tc.want {
					t.Errorf("Down %+v: got %v, want %v", tc.path, got, tc.want)
				}
			} else if got.String() != tc.text {
				t.Errorf("Down %+v: got %v, want %s", tc.path, got, tc.text)
			}
		})
	}
}

func TestCursor_navigation(t *testing.T) {
	v := testutil.MustParse(t, testInput)
	c := cursor.New(v)
	if !c.AtOrigin() || c.Origin() != v {
		t.Fatal("New cursor is not at its origin")
	}
	c.Down("list", 0, "x")
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path length: got %d, want 4", got)
	}
	if n, err := c.Element().AsNumber(); err != nil || n != 1 {
		t.Errorf("Element: got (%d, %v), want 1", n, err)
	}
	c.Up().Up()
	if got := c.Element().Kind(); got != ast.ArrayKind {
		t.Errorf("After Up: got %v, want array", got)
	}
	c.Down(-1, "x")
	if n, _ := c.Element().AsNumber(); n != 2 {
		t.Errorf("Element: got %d, want 2", n)
	}

	c.Down("nonesuch")
	var serr *ast.SemanticError
	if !errors.As(c.Err(), &serr) {
		t.Errorf("Down on a number: got %v, want *SemanticError", c.Err())
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: at origin %v, error %v", c.AtOrigin(), c.Err())
	}
}

func TestPath(t *testing.T) {
	v := testutil.MustParse(t, testInput)

	s, err := cursor.Path[*ast.String](v, "y", "hello")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if s.Text() != "there" {
		t.Errorf("Path: got %q, want there", s.Text())
	}

	n, err := cursor.Path[*ast.Number](v, "xyz", "p")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if n.Int64() != 1 || n.Base() != sj.Hex {
		t.Errorf("Path: got (%d, %v), want (1, hex)", n.Int64(), n.Base())
	}

	if _, err := cursor.Path[*ast.Object](v, "o"); err == nil {
		t.Error("Path with wrong type: got nil, want error")
	}
	if _, err := cursor.Path[*ast.Array](v, "o", 7); err == nil {
		t.Error("Path out of range: got nil, want error")
	}
	if a, err := cursor.Path[*ast.Array](v, "list"); err != nil || a.Len() != 2 {
		t.Errorf("Path list: got (%v, %v), want a 2-element array", a, err)
	}
}

func testPathFunc(e *ast.Element) (*ast.Element, error) {
	var n int
	switch t := e.Value().(type) {
	case *ast.Array:
		n = t.Len()
	case *ast.Object:
		n = t.Len()
	default:
		return nil, errors.New("not a thing with length")
	}
	out := new(ast.Element)
	out.Set(ast.NewNumber(int64(n), sj.Decimal))
	return out, nil
}
