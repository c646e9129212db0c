// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program sjfmt parses, checks, and reformats stupid-json documents.
//
// Usage:
//
//	sjfmt [flags] [file ...]
//
// Each named file is parsed and written to stdout in the selected format. If
// no files are given, the program reads from stdin. Files ending in .gz are
// decompressed. With -check, nothing is reformatted; instead the names of any
// files not already in canonical form are printed, and the program fails if
// there were any.
//
// Run with -v=2 -logtostderr to log each grammar production as it is parsed.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	sj "github.com/d3phys/stupid-json"
	"github.com/d3phys/stupid-json/ast"
	"github.com/d3phys/stupid-json/export"
)

var (
	indent  = flag.Int("indent", ast.DefaultIndent, "Indentation width in spaces")
	decimal = flag.Bool("decimal", false, "Write all numbers in base 10")
	strict  = flag.Bool("strict", false, "Reject objects with duplicate keys")
	outType = flag.String("to", "text", "Output format (text, json, compact, yaml)")
	check   = flag.Bool("check", false, "Report files not in canonical form")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file ...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	cfg := config{
		Format: ast.Formatter{Indent: *indent, Decimal: *decimal},
		Strict: *strict,
		To:     *outType,
		Check:  *check,
	}
	if err := run(cfg, flag.Args(), os.Stdin, os.Stdout); err != nil {
		glog.Exitf("sjfmt: %v", err)
	}
}

type config struct {
	Format ast.Formatter
	Strict bool
	To     string
	Check  bool
}

// errNotCanonical is reported by run in check mode when some input was not
// in canonical form.
var errNotCanonical = errors.New("input not in canonical form")

func run(cfg config, args []string, stdin io.Reader, stdout io.Writer) error {
	switch cfg.To {
	case "text", "json", "compact", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", cfg.To)
	}
	p := ast.Parser{RejectDuplicateKeys: cfg.Strict}
	if glog.V(2) {
		p.Trace = func(production string, at sj.TokenInfo) {
			glog.Infof("parse %s at %v", production, at)
		}
	}

	if len(args) == 0 {
		data, err := sj.ReadAll(stdin)
		if err != nil {
			return err
		}
		return processInput(cfg, p, "<stdin>", data, stdout)
	}

	var nbad int
	for _, path := range args {
		data, err := sj.ReadFile(path)
		if err != nil {
			return err
		}
		err = processInput(cfg, p, path, data, stdout)
		if errors.Is(err, errNotCanonical) {
			nbad++
		} else if err != nil {
			return err
		}
	}
	if nbad != 0 {
		return fmt.Errorf("%d of %d files: %w", nbad, len(args), errNotCanonical)
	}
	return nil
}

func processInput(cfg config, p ast.Parser, name string, data []byte, w io.Writer) error {
	root, err := p.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer root.Release()
	glog.V(1).Infof("parsed %s (%d bytes, %v)", name, len(data), root.Kind())

	if cfg.Check {
		ok, err := isCanonical(cfg.Format, p, root, data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			fmt.Fprintln(w, name)
			return errNotCanonical
		}
		return nil
	}

	out, err := render(cfg, root)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	_, err = w.Write(out)
	return err
}

func render(cfg config, root *ast.Element) ([]byte, error) {
	switch cfg.To {
	case "json":
		return export.JSON(root, false)
	case "compact":
		out, err := export.JSON(root, true)
		return append(out, '\n'), err
	case "yaml":
		return export.YAML(root, cfg.Format.Indent)
	}
	var buf bytes.Buffer
	if err := cfg.Format.Format(&buf, root); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// isCanonical reports whether data is exactly the text that f renders for
// root, ignoring surrounding whitespace. It also checks that the rendered text
// parses back to an equivalent tree.
func isCanonical(f ast.Formatter, p ast.Parser, root *ast.Element, data []byte) (bool, error) {
	var buf bytes.Buffer
	if err := f.Format(&buf, root); err != nil {
		return false, err
	}
	back, err := p.Parse(buf.Bytes())
	if err != nil {
		return false, fmt.Errorf("formatted output does not parse: %w", err)
	}
	defer back.Release()
	if !ast.Equal(root, back) {
		return false, errors.New("formatted output does not round trip")
	}
	return bytes.Equal(bytes.TrimSpace(data), buf.Bytes()), nil
}
