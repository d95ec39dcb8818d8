// Package driver runs the C-- front end: parsing followed by name
// analysis.
//
// PIPELINE:
//  1. Lexical and syntax analysis (parser.Parse)
//  2. Name analysis (semantic.Resolver), only if parsing succeeded
//
// Diagnostics of both stages end up in one diag.List, in report order.
package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hassan/cminus/internal/diag"
	"github.com/hassan/cminus/internal/parser"
	"github.com/hassan/cminus/internal/parser/ast"
	"github.com/hassan/cminus/internal/printer"
	"github.com/hassan/cminus/internal/semantic"
	"github.com/hassan/cminus/internal/symtab"
)

// Config holds the settings shared by every stage. The zero value uses
// the defaults of each stage and discards log output.
type Config struct {
	// MaxDepth bounds nesting in the parser and the resolver. Zero means
	// the default.
	MaxDepth int

	// LegacyDot selects the tag re-lookup for chained field access.
	LegacyDot bool

	// Logger receives debug tracing and internal errors.
	Logger *slog.Logger
}

// Result is the outcome of analyzing one file.
type Result struct {
	Filename string

	// Program is the parsed and, if parsing succeeded, decorated tree.
	Program *ast.Program

	// Diags holds every diagnostic of the run.
	Diags *diag.List

	// Globals is the global scope after name analysis. It is nil when
	// parsing failed.
	Globals *symtab.Scope
}

// OK reports whether the file is free of errors.
func (r *Result) OK() bool {
	return r.Diags.OK()
}

// Resolved reports whether name analysis ran.
func (r *Result) Resolved() bool {
	return r.Globals != nil
}

// Unparse writes the program annotated with resolved types to w. It
// refuses when the analysis failed.
func (r *Result) Unparse(w io.Writer) error {
	if !r.OK() {
		return fmt.Errorf("%s: name analysis failed, not unparsing", r.Filename)
	}
	return printer.Fprint(w, r.Program, printer.Annotate)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Analyze parses and resolves source.
func (c Config) Analyze(source, filename string) *Result {
	log := c.logger()

	prog, diags := parser.Parse(source, filename, parser.WithMaxDepth(c.MaxDepth))
	res := &Result{Filename: filename, Program: prog, Diags: diags}
	if !diags.OK() {
		log.Debug("parsing failed", "file", filename, "errors", len(diags.Errors()))
		return res
	}
	log.Debug("parsing successful", "file", filename, "decls", len(prog.Decls))

	opts := []semantic.Option{
		semantic.WithMaxDepth(c.MaxDepth),
		semantic.WithLogger(log),
	}
	if c.LegacyDot {
		opts = append(opts, semantic.WithLegacyDotLookup())
	}
	r := semantic.New(opts...)
	diags.Merge(r.Resolve(prog))
	res.Globals = r.Globals()
	return res
}

// AnalyzeFile reads and analyzes the file at path. The error is non-nil
// only if the file cannot be read.
func (c Config) AnalyzeFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c.Analyze(string(source), path), nil
}
