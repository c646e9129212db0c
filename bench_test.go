// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package stupidjson_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/d3phys/stupid-json/ast"
)

// benchInput generates a document of n records that is valid both as
// stupid-json and as standard JSON.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"records\" : [\n")
	for i := range n {
		if i > 0 {
			buf.WriteString(",\n")
		}
		fmt.Fprintf(&buf, `    {"id" : %d, "name" : "record-%d", "tags" : ["a", "b", "c"], "limits" : {"lo" : -%d, "hi" : %d}}`,
			i, i, i*3, i*7)
	}
	buf.WriteString("\n  ]\n}\n")
	return buf.Bytes()
}

func BenchmarkParse(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Unmarshal", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			root, err := ast.Parse(input)
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			root.Release()
		}
	})
}

func BenchmarkFormat(b *testing.B) {
	input := benchInput(2000)
	root, err := ast.Parse(input)
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}
	var v any
	if err := json.Unmarshal(input, &v); err != nil {
		b.Fatalf("Unmarshal: %v", err)
	}

	b.Run("MarshalIndent", func(b *testing.B) {
		for b.Loop() {
			if _, err := json.MarshalIndent(v, "", "    "); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Format", func(b *testing.B) {
		var buf bytes.Buffer
		for b.Loop() {
			buf.Reset()
			if err := ast.Format(&buf, root); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
