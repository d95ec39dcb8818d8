// Package ast defines the syntax tree of a C-- program.
//
// DESIGN PHILOSOPHY:
// The tree is built once by the parser and then only decorated, never
// rebuilt: the name analyzer binds every identifier occurrence to the
// Symbol of its declaration and leaves the structure alone.
//
// KEY DESIGN CHOICES:
//   - The node kinds form a closed set. Decl, Stmt, Expr and TypeExpr are
//     sealed interfaces (unexported marker methods), so every consumer
//     handles them with an exhaustive type switch.
//   - Every node reports the position it starts at; identifiers and
//     literals carry their own token position.
//   - Identifier nodes own exactly one binding slot (see Ident).
package ast

import (
	"github.com/hassan/cminus/internal/lexer"
)

// Node is the base interface for all tree nodes.
type Node interface {
	// Pos returns the starting position of this node in the source.
	Pos() lexer.Position
}

// Decl is a declaration: a variable, a function, a formal parameter or a
// struct type.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body or a nested block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is the type written in a declaration: int, bool, void or a
// struct reference.
type TypeExpr interface {
	Node
	// TypeName returns the declared type name: "int", "bool", "void" or
	// the struct tag for a struct reference.
	TypeName() string
	typeNode()
}

// Program is the root of the tree: the top-level declaration list.
type Program struct {
	Filename string
	Decls    []Decl
}

func (p *Program) Pos() lexer.Position {
	if len(p.Decls) > 0 {
		return p.Decls[0].Pos()
	}
	return lexer.Position{Filename: p.Filename, Line: 1, Column: 1}
}

// Block is the body of a function, an if/else branch or a loop: local
// variable declarations followed by statements.
type Block struct {
	LeftBrace lexer.Position
	Decls     []*VarDecl
	Stmts     []Stmt
}

func (b *Block) Pos() lexer.Position { return b.LeftBrace }

// Types

// IntType is the type "int".
type IntType struct {
	TypePos lexer.Position
}

func (t *IntType) Pos() lexer.Position { return t.TypePos }
func (t *IntType) TypeName() string    { return "int" }
func (t *IntType) typeNode()           {}

// BoolType is the type "bool".
type BoolType struct {
	TypePos lexer.Position
}

func (t *BoolType) Pos() lexer.Position { return t.TypePos }
func (t *BoolType) TypeName() string    { return "bool" }
func (t *BoolType) typeNode()           {}

// VoidType is the type "void". It is only meaningful as a function return
// type; the name analyzer rejects it everywhere else.
type VoidType struct {
	TypePos lexer.Position
}

func (t *VoidType) Pos() lexer.Position { return t.TypePos }
func (t *VoidType) TypeName() string    { return "void" }
func (t *VoidType) typeNode()           {}

// StructType is a reference to a struct type: "struct Tag". The Tag
// identifier is bound to the struct's tag Symbol during name analysis.
type StructType struct {
	StructPos lexer.Position
	Tag       *Ident
}

func (t *StructType) Pos() lexer.Position { return t.StructPos }
func (t *StructType) TypeName() string    { return t.Tag.Name }
func (t *StructType) typeNode()           {}

// Declarations

// VarDecl declares one variable (or one struct field): "int x;" or
// "struct Point p;".
type VarDecl struct {
	Type TypeExpr
	Name *Ident
}

func (d *VarDecl) Pos() lexer.Position { return d.Type.Pos() }
func (d *VarDecl) declNode()           {}

// FuncDecl declares a function with its formals and body:
//
//	int add(int a, int b) { ... }
type FuncDecl struct {
	Type   TypeExpr
	Name   *Ident
	Params []*FormalDecl
	Body   *Block
}

func (d *FuncDecl) Pos() lexer.Position { return d.Type.Pos() }
func (d *FuncDecl) declNode()           {}

// FormalDecl declares one formal parameter of a function.
type FormalDecl struct {
	Type TypeExpr
	Name *Ident
}

func (d *FormalDecl) Pos() lexer.Position { return d.Type.Pos() }
func (d *FormalDecl) declNode()           {}

// StructDecl declares a struct type and its fields:
//
//	struct Point { int x; int y; };
type StructDecl struct {
	StructPos lexer.Position
	Tag       *Ident
	Fields    []*VarDecl
}

func (d *StructDecl) Pos() lexer.Position { return d.StructPos }
func (d *StructDecl) declNode()           {}
