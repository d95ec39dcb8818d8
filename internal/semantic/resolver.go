// Package semantic implements name analysis for C--.
//
// NAME ANALYSIS:
// After parsing, every identifier in the tree is just a name. Name analysis
// walks the tree once, in source order, and:
//  1. Declares every variable, parameter, field, function and struct type
//     in the scope it belongs to
//  2. Binds every identifier occurrence to the Symbol of its declaration
//  3. Builds the field namespace of each struct and resolves chained field
//     accesses (a.b.c)
//  4. Reports undeclared names, redeclarations, void variables, unknown
//     struct types and bad field accesses
//
// DESIGN PHILOSOPHY:
//   - Collect all errors, don't stop at the first one. Every problem is
//     reported where it is observed and resolution continues.
//   - Declarations must precede their uses; there is no forward reference
//     pass.
//   - The scope stack is the only mutable state. Identifier nodes receive a
//     Symbol reference and nothing else is written to the tree.
package semantic

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hassan/cminus/internal/diag"
	"github.com/hassan/cminus/internal/lexer"
	"github.com/hassan/cminus/internal/parser/ast"
	"github.com/hassan/cminus/internal/symtab"
)

// DefaultMaxDepth bounds the nesting of statements and expressions the
// resolver descends into.
const DefaultMaxDepth = 512

// Resolver performs name analysis on a program.
//
// A Resolver may be reused for several programs, one at a time. It is not
// safe for concurrent use.
type Resolver struct {
	// table is the scope stack of the run in progress
	table *symtab.Table

	// global is the outermost scope of the last run, kept for inspection
	// after the table has been unwound
	global *symtab.Scope

	// diags accumulates the diagnostics of the run in progress
	diags *diag.List

	log *slog.Logger

	maxDepth  int
	legacyDot bool

	// depth is the current statement/expression nesting
	depth int

	// tooDeep is set once NestingTooDeep has been reported
	tooDeep bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the nesting limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithLegacyDotLookup makes chained field access re-derive the field
// namespace of each intermediate link from the struct tag currently in
// scope, instead of using the namespace carried by the resolved Symbol.
// When the tag is not in scope, "Undeclared identifier" is reported at the
// intermediate field.
func WithLegacyDotLookup() Option {
	return func(r *Resolver) {
		r.legacyDot = true
	}
}

// WithLogger sets the logger used for debug tracing and internal errors.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		maxDepth: DefaultMaxDepth,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.reset()
	return r
}

// Resolve runs name analysis over prog and returns its diagnostics.
// The tree is decorated in place. The returned list's OK reports whether
// the program is free of name errors.
func Resolve(prog *ast.Program, opts ...Option) *diag.List {
	return New(opts...).Resolve(prog)
}

// Resolve runs name analysis over prog and returns its diagnostics.
func (r *Resolver) Resolve(prog *ast.Program) *diag.List {
	r.reset()
	r.log.Debug("name analysis started",
		"file", prog.Filename,
		"decls", len(prog.Decls),
		"legacy_dot", r.legacyDot)

	r.global = r.table.EnterScope(symtab.ScopeGlobal)
	for _, decl := range prog.Decls {
		r.resolveDecl(decl)
	}
	r.exitScope(prog.Pos(), "program")

	r.log.Debug("name analysis finished",
		"file", prog.Filename,
		"ok", r.diags.OK(),
		"errors", len(r.diags.Errors()))
	return r.diags
}

// Globals returns the outermost scope of the last run: every global
// variable, function and struct tag that was successfully declared.
func (r *Resolver) Globals() *symtab.Scope {
	return r.global
}

// Table returns the scope stack. After Resolve returns every scope has
// been popped.
func (r *Resolver) Table() *symtab.Table {
	return r.table
}

func (r *Resolver) reset() {
	r.table = symtab.NewTable()
	r.diags = diag.New()
	r.global = nil
	r.depth = 0
	r.tooDeep = false
}

// Scope management

func (r *Resolver) enterScope(kind symtab.ScopeKind) {
	r.table.EnterScope(kind)
}

// exitScope pops the innermost scope. Underflow is an internal error: it
// is logged and recorded, and resolution continues.
func (r *Resolver) exitScope(pos lexer.Position, context string) {
	if err := r.table.ExitScope(); err != nil {
		r.internalError(pos, context, err)
	}
}

// declare adds sym under key to the innermost scope. A duplicate is
// reported at id. It returns whether the declaration was added.
func (r *Resolver) declare(id *ast.Ident, key string, sym *symtab.Symbol) bool {
	err := r.table.Declare(key, sym)
	switch {
	case err == nil:
		return true
	case errors.Is(err, symtab.ErrDuplicateName):
		r.diags.Fatal(id.Pos(), diag.MultiplyDeclaredIdentifier, "")
	default:
		r.internalError(id.Pos(), "declare "+id.Name, err)
	}
	return false
}

// declareAndBind declares sym and binds id to it, or marks id unresolved.
func (r *Resolver) declareAndBind(id *ast.Ident, key string, sym *symtab.Symbol) {
	if r.declare(id, key, sym) {
		id.Bind(sym)
		return
	}
	id.MarkUnresolved()
}

// Error helpers

func (r *Resolver) internalError(pos lexer.Position, context string, err error) {
	r.log.Error("scope stack inconsistency",
		"pos", pos.String(),
		"context", context,
		"err", err)
	r.diags.Fatal(pos, diag.ScopeUnderflow, "Scope underflow: "+context)
}

func (r *Resolver) unexpected(n ast.Node) {
	var pos lexer.Position
	if n != nil {
		pos = n.Pos()
	}
	msg := fmt.Sprintf("internal error: unexpected node %T", n)
	r.log.Error(msg, "pos", pos.String())
	r.diags.Fatal(pos, diag.NoCode, msg)
}

// nest guards recursion. It returns false, after reporting NestingTooDeep
// once per run, when n is nested beyond the limit; the caller skips n.
func (r *Resolver) nest(n ast.Node) bool {
	if r.depth >= r.maxDepth {
		if !r.tooDeep {
			r.tooDeep = true
			r.diags.Fatal(n.Pos(), diag.NestingTooDeep, "")
			r.log.Debug("nesting limit reached", "pos", n.Pos().String(), "limit", r.maxDepth)
		}
		return false
	}
	r.depth++
	return true
}

func (r *Resolver) unnest() {
	r.depth--
}
