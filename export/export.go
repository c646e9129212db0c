// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package export converts element trees into standard interchange formats.
//
// JSON output is standard JSON: numbers are written in base 10 and strings
// are escaped as JSON requires. YAML output keeps the radix of hexadecimal
// and octal values where YAML can represent it.
package export

import (
	"bytes"
	"fmt"
	"strconv"

	sj "github.com/d3phys/stupid-json"
	"github.com/d3phys/stupid-json/ast"
	"github.com/d3phys/stupid-json/internal/escape"
	"github.com/tailscale/hujson"
	"go4.org/mem"
	"gopkg.in/yaml.v3"
)

// JSON renders e as standard JSON. If compact is true, the output has no
// insignificant whitespace. Otherwise it is laid out by the hujson formatter,
// with a space after each colon and comma, and ends with a newline. It reports
// an error if any element of the tree is empty.
func JSON(e *ast.Element, compact bool) ([]byte, error) {
	var w jsonWriter
	if err := w.write(e); err != nil {
		return nil, err
	}
	v, err := hujson.Parse(w.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	if compact {
		v.Minimize()
		return v.Pack(), nil
	}
	v.Format()
	v.Standardize()
	out := bytes.TrimRight(v.Pack(), " \t\n")
	return append(out, '\n'), nil
}

type jsonWriter struct {
	buf     bytes.Buffer
	scratch []byte
}

func (w *jsonWriter) write(e *ast.Element) error {
	v, err := e.Payload()
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case *ast.Object:
		w.buf.WriteByte('{')
		for i, key := range t.Keys() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.str(key)
			w.buf.WriteByte(':')
			if err := w.write(t.Find(key)); err != nil {
				return err
			}
		}
		w.buf.WriteByte('}')
	case *ast.Array:
		w.buf.WriteByte('[')
		for i, elt := range t.All() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.write(elt); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	case *ast.String:
		w.str(t.Text())
	case *ast.Number:
		w.buf.WriteString(strconv.FormatInt(t.Int64(), 10))
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
	return nil
}

func (w *jsonWriter) str(s string) {
	w.scratch = escape.AppendJSON(w.scratch[:0], mem.S(s))
	w.buf.Write(w.scratch)
}

// YAML renders e as a YAML document indented by the given number of spaces.
// If indent ≤ 0, a default of 2 is used. Non-negative hexadecimal and octal
// numbers keep their radix (0x1f, 0o17); all other numbers are written in
// base 10. It reports an error if any element of the tree is empty.
func YAML(e *ast.Element, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = 2
	}
	node, err := yamlNode(e)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("export yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlNode(e *ast.Element) (*yaml.Node, error) {
	v, err := e.Payload()
	if err != nil {
		return nil, err
	}
	pos := v.Pos()
	node := &yaml.Node{Line: pos.Line, Column: pos.Column}
	switch t := v.(type) {
	case *ast.Object:
		node.Kind, node.Tag = yaml.MappingNode, "!!map"
		for _, key := range t.Keys() {
			val, err := yamlNode(t.Find(key))
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!str",
				Value: key,
			}, val)
		}
	case *ast.Array:
		node.Kind, node.Tag = yaml.SequenceNode, "!!seq"
		for _, elt := range t.All() {
			val, err := yamlNode(elt)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, val)
		}
	case *ast.String:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!str", t.Text()
	case *ast.Number:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!int", yamlInt(t)
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
	return node, nil
}

// yamlInt renders n as a YAML 1.2 core schema integer. The core schema has no
// signed forms for hex and octal, so negative values fall back to base 10.
func yamlInt(n *ast.Number) string {
	v := n.Int64()
	if v >= 0 {
		switch n.Base() {
		case sj.Hex:
			return "0x" + strconv.FormatInt(v, 16)
		case sj.Octal:
			return "0o" + strconv.FormatInt(v, 8)
		}
	}
	return strconv.FormatInt(v, 10)
}
