// Package printer renders a C-- syntax tree back to source text.
//
// OUTPUT FORMAT:
// One declaration or statement per line, bodies indented by four spaces,
// a blank line after each function and struct declaration. Operands that
// are themselves operations are parenthesized, so printing a parsed
// program and parsing the output yields the same tree.
//
// With Annotate, every identifier used in an expression is followed by
// the type of the Symbol it is bound to, and a call shows the signature
// of its callee:
//
//	z(int) = p(Point).x(int);
//	f(int,bool->void)(a(int), true);
//
// Identifiers that are not bound print bare. Annotated output is for
// reading; it is not C-- and does not parse.
package printer

import (
	"io"
	"strconv"
	"strings"

	"github.com/hassan/cminus/internal/parser/ast"
)

// Mode controls the output.
type Mode uint

const (
	// Annotate appends resolved types to identifiers in expressions.
	Annotate Mode = 1 << iota
)

const indentWidth = 4

// Fprint writes prog to w.
func Fprint(w io.Writer, prog *ast.Program, mode Mode) error {
	_, err := io.WriteString(w, String(prog, mode))
	return err
}

// String returns prog as source text.
func String(prog *ast.Program, mode Mode) string {
	p := &printer{mode: mode}
	for _, d := range prog.Decls {
		p.decl(d)
	}
	return p.sb.String()
}

// Expr returns a single expression as text.
func Expr(x ast.Expr, mode Mode) string {
	p := &printer{mode: mode}
	p.expr(x, false)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	mode   Mode
	indent int
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

// line starts a new line at the current indentation.
func (p *printer) line() {
	p.sb.WriteString(strings.Repeat(" ", p.indent))
}

// Declarations

func (p *printer) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.VarDecl:
		p.varDecl(d)

	case *ast.FuncDecl:
		p.line()
		p.typ(d.Type)
		p.write(" " + d.Name.Name + "(")
		for i, f := range d.Params {
			if i > 0 {
				p.write(", ")
			}
			p.typ(f.Type)
			p.write(" " + f.Name.Name)
		}
		p.write(") {\n")
		p.block(d.Body)
		p.line()
		p.write("}\n\n")

	case *ast.FormalDecl:
		p.typ(d.Type)
		p.write(" " + d.Name.Name)

	case *ast.StructDecl:
		p.line()
		p.write("struct " + d.Tag.Name + " {\n")
		p.indent += indentWidth
		for _, f := range d.Fields {
			p.varDecl(f)
		}
		p.indent -= indentWidth
		p.line()
		p.write("};\n\n")
	}
}

func (p *printer) varDecl(d *ast.VarDecl) {
	p.line()
	p.typ(d.Type)
	p.write(" " + d.Name.Name + ";\n")
}

func (p *printer) typ(t ast.TypeExpr) {
	if st, ok := t.(*ast.StructType); ok {
		p.write("struct " + st.Tag.Name)
		return
	}
	p.write(t.TypeName())
}

// block prints a body one level deeper than the current indentation.
func (p *printer) block(b *ast.Block) {
	if b == nil {
		return
	}
	p.indent += indentWidth
	for _, d := range b.Decls {
		p.varDecl(d)
	}
	for _, s := range b.Stmts {
		p.stmt(s)
	}
	p.indent -= indentWidth
}

// Statements

func (p *printer) stmt(s ast.Stmt) {
	p.line()
	switch s := s.(type) {
	case *ast.AssignStmt:
		p.expr(s.Assign, false)
		p.write(";\n")
	case *ast.IncStmt:
		p.expr(s.X, false)
		p.write("++;\n")
	case *ast.DecStmt:
		p.expr(s.X, false)
		p.write("--;\n")
	case *ast.ReadStmt:
		p.write("cin >> ")
		p.expr(s.X, false)
		p.write(";\n")
	case *ast.WriteStmt:
		p.write("cout << ")
		p.expr(s.X, false)
		p.write(";\n")
	case *ast.CallStmt:
		p.expr(s.Call, false)
		p.write(";\n")

	case *ast.ReturnStmt:
		p.write("return")
		if s.Result != nil {
			p.write(" ")
			p.expr(s.Result, false)
		}
		p.write(";\n")

	case *ast.IfStmt:
		p.header("if", s.Cond)
		p.block(s.Body)
		p.closeBrace()

	case *ast.IfElseStmt:
		p.header("if", s.Cond)
		p.block(s.Then)
		p.closeBrace()
		p.line()
		p.write("else {\n")
		p.block(s.Else)
		p.closeBrace()

	case *ast.WhileStmt:
		p.header("while", s.Cond)
		p.block(s.Body)
		p.closeBrace()

	case *ast.RepeatStmt:
		p.header("repeat", s.Count)
		p.block(s.Body)
		p.closeBrace()
	}
}

func (p *printer) header(keyword string, cond ast.Expr) {
	p.write(keyword + " (")
	p.expr(cond, false)
	p.write(") {\n")
}

func (p *printer) closeBrace() {
	p.line()
	p.write("}\n")
}

// Expressions

// expr prints x. nested is set for operands of another operation, which
// are parenthesized when they are operations themselves.
func (p *printer) expr(x ast.Expr, nested bool) {
	switch x := x.(type) {
	case *ast.IntLit:
		p.write(strconv.FormatInt(int64(x.Value), 10))
	case *ast.StringLit:
		p.write(x.Value)
	case *ast.BoolLit:
		p.write(strconv.FormatBool(x.Value))

	case *ast.Ident:
		p.ident(x)

	case *ast.DotAccessExpr:
		p.expr(x.X, false)
		p.write(".")
		p.ident(x.Sel)

	case *ast.CallExpr:
		p.write(x.Fun.Name)
		if p.mode&Annotate != 0 && x.Fun.Symbol() != nil {
			p.write("(" + x.Fun.Symbol().String() + ")")
		}
		p.write("(")
		for i, arg := range x.Args {
			if i > 0 {
				p.write(", ")
			}
			p.expr(arg, false)
		}
		p.write(")")

	case *ast.AssignExpr:
		p.open(nested)
		p.expr(x.Lhs, false)
		p.write(" = ")
		p.expr(x.Rhs, true)
		p.close(nested)

	case *ast.UnaryExpr:
		p.open(nested)
		p.write(x.Operator.Lexeme)
		p.expr(x.X, true)
		p.close(nested)

	case *ast.BinaryExpr:
		p.open(nested)
		p.expr(x.X, true)
		p.write(" " + x.Operator.Lexeme + " ")
		p.expr(x.Y, true)
		p.close(nested)
	}
}

func (p *printer) ident(id *ast.Ident) {
	p.write(id.Name)
	if p.mode&Annotate != 0 && id.Symbol() != nil {
		p.write("(" + id.Symbol().String() + ")")
	}
}

func (p *printer) open(nested bool) {
	if nested {
		p.write("(")
	}
}

func (p *printer) close(nested bool) {
	if nested {
		p.write(")")
	}
}
