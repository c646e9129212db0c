// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sj "github.com/d3phys/stupid-json"
	"github.com/d3phys/stupid-json/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
)

const canonical = `{
    "mode" : 0755,
    "name" : "svc"
}`

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatalf("Write %s: %v", name, err)
	}
	return path
}

func TestRun(t *testing.T) {
	const input = `{"name":"svc","mode":0755}`
	tests := []struct {
		name string
		cfg  config
		want string
	}{
		{"Text", config{To: "text"}, canonical + "\n"},
		{"Decimal", config{To: "text", Format: ast.Formatter{Indent: 2, Decimal: true}},
			"{\n  \"mode\" : 493,\n  \"name\" : \"svc\"\n}\n"},
		{"Compact", config{To: "compact"}, `{"mode":493,"name":"svc"}` + "\n"},
		{"JSON", config{To: "json"}, `{"mode": 493, "name": "svc"}` + "\n"},
		{"YAML", config{To: "yaml", Format: ast.Formatter{Indent: 2}}, "mode: 0o755\nname: svc\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tc.cfg, nil, strings.NewReader(input), &out); err != nil {
				t.Fatalf("run: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, out.String()); diff != "" {
				t.Errorf("Output (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestRun_files(t *testing.T) {
	plain := writeFile(t, "a.sj", `[1, 0x2]`)

	var zbuf bytes.Buffer
	zw := gzip.NewWriter(&zbuf)
	zw.Write([]byte(`"zipped"`))
	zw.Close()
	zipped := writeFile(t, "b.sj.gz", zbuf.String())

	var out bytes.Buffer
	if err := run(config{To: "text"}, []string{plain, zipped}, nil, &out); err != nil {
		t.Fatalf("run: unexpected error: %v", err)
	}
	const want = "[\n    1,\n    0x2\n]\n\"zipped\"\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}

func TestRun_check(t *testing.T) {
	good := writeFile(t, "good.sj", canonical+"\n")
	bad := writeFile(t, "bad.sj", `{"name":"svc","mode":0755}`)

	var out bytes.Buffer
	if err := run(config{Check: true, To: "text"}, []string{good}, nil, &out); err != nil {
		t.Errorf("Check canonical file: unexpected error: %v", err)
	}

	out.Reset()
	err := run(config{Check: true, To: "text"}, []string{good, bad}, nil, &out)
	if !errors.Is(err, errNotCanonical) {
		t.Errorf("Check: got %v, want %v", err, errNotCanonical)
	}
	if got := out.String(); got != bad+"\n" {
		t.Errorf("Check output: got %q, want %q", got, bad+"\n")
	}
}

func TestRun_errors(t *testing.T) {
	var out bytes.Buffer

	err := run(config{To: "xml"}, nil, strings.NewReader("1"), &out)
	if err == nil {
		t.Error("Unknown format: got nil, want error")
	}

	err = run(config{To: "text"}, nil, strings.NewReader(`{"a" 1}`), &out)
	var serr *sj.SyntaxError
	if !errors.As(err, &serr) {
		t.Errorf("Bad input: got %v, want *SyntaxError", err)
	} else if !strings.HasPrefix(err.Error(), "<stdin>: ") {
		t.Errorf("Bad input: error %q does not name the input", err)
	}

	dup := `{"a" : 1, "a" : 2}`
	if err := run(config{To: "text"}, nil, strings.NewReader(dup), &out); err != nil {
		t.Errorf("Duplicate keys: unexpected error: %v", err)
	}
	if err := run(config{To: "text", Strict: true}, nil, strings.NewReader(dup), &out); err == nil {
		t.Error("Duplicate keys with Strict: got nil, want error")
	}

	missing := filepath.Join(t.TempDir(), "nonesuch.sj")
	if err := run(config{To: "text"}, []string{missing}, nil, &out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Missing file: got %v, want %v", err, os.ErrNotExist)
	}
}
