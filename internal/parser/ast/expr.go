package ast

import (
	"github.com/hassan/cminus/internal/lexer"
	"github.com/hassan/cminus/internal/symtab"
)

// Expression nodes represent values, locations and calls.

// BindingState records what name analysis did with an identifier.
type BindingState int

const (
	// Unvisited: name analysis never reached this identifier (for example
	// a field after a broken link of a dot-access chain).
	Unvisited BindingState = iota

	// Resolved: the identifier is bound to its declaration's Symbol.
	Resolved

	// Unresolved: resolution was attempted and a diagnostic was reported.
	Unresolved
)

func (s BindingState) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Ident is one occurrence of an identifier, in a declaration or in a use.
//
// Each occurrence owns exactly one binding slot. The Symbol it points to is
// shared with every other occurrence bound to the same declaration and is
// never copied.
type Ident struct {
	Name    string
	NamePos lexer.Position

	state BindingState
	sym   *symtab.Symbol
}

// NewIdent returns an unvisited identifier node.
func NewIdent(name string, pos lexer.Position) *Ident {
	return &Ident{Name: name, NamePos: pos}
}

func (i *Ident) Pos() lexer.Position { return i.NamePos }
func (i *Ident) exprNode()           {}

// Bind records sym as the declaration this occurrence refers to. A later
// Bind replaces an earlier one.
func (i *Ident) Bind(sym *symtab.Symbol) {
	i.sym = sym
	i.state = Resolved
}

// MarkUnresolved records that resolution failed for this occurrence.
func (i *Ident) MarkUnresolved() {
	i.sym = nil
	i.state = Unresolved
}

// State returns the binding state.
func (i *Ident) State() BindingState { return i.state }

// Symbol returns the bound Symbol, or nil unless State is Resolved.
func (i *Ident) Symbol() *symtab.Symbol { return i.sym }

// IntLit is an integer literal. Value has already been range checked by the
// parser.
type IntLit struct {
	ValuePos lexer.Position
	Value    int32
}

func (l *IntLit) Pos() lexer.Position { return l.ValuePos }
func (l *IntLit) exprNode()           {}

// StringLit is a string literal. Value keeps the quotes and escapes exactly
// as written.
type StringLit struct {
	ValuePos lexer.Position
	Value    string
}

func (l *StringLit) Pos() lexer.Position { return l.ValuePos }
func (l *StringLit) exprNode()           {}

// BoolLit is "true" or "false".
type BoolLit struct {
	ValuePos lexer.Position
	Value    bool
}

func (l *BoolLit) Pos() lexer.Position { return l.ValuePos }
func (l *BoolLit) exprNode()           {}

// DotAccessExpr is a field access: X.Sel
//
// X is either an *Ident or another *DotAccessExpr, so a chain a.b.c is
// ((a.b).c) with the base identifier at the bottom.
type DotAccessExpr struct {
	X   Expr
	Sel *Ident
}

func (d *DotAccessExpr) Pos() lexer.Position { return d.X.Pos() }
func (d *DotAccessExpr) exprNode()           {}

// Chain flattens a dot-access chain into its base expression and the
// selectors in source order: for a.b.c it returns a and [b, c].
func (d *DotAccessExpr) Chain() (base Expr, fields []*Ident) {
	var rev []*Ident
	var x Expr = d
	for {
		dot, ok := x.(*DotAccessExpr)
		if !ok {
			break
		}
		rev = append(rev, dot.Sel)
		x = dot.X
	}
	fields = make([]*Ident, len(rev))
	for i, f := range rev {
		fields[len(rev)-1-i] = f
	}
	return x, fields
}

// AssignExpr is an assignment used as an expression: Lhs = Rhs
// Lhs is a location (*Ident or *DotAccessExpr).
type AssignExpr struct {
	Lhs Expr
	Rhs Expr
}

func (a *AssignExpr) Pos() lexer.Position { return a.Lhs.Pos() }
func (a *AssignExpr) exprNode()           {}

// CallExpr is a function call: Fun(Args...)
type CallExpr struct {
	Fun  *Ident
	Args []Expr
}

func (c *CallExpr) Pos() lexer.Position { return c.Fun.Pos() }
func (c *CallExpr) exprNode()           {}

// UnaryExpr is a prefix operation: -x, !flag
type UnaryExpr struct {
	Operator lexer.Token
	X        Expr
}

func (u *UnaryExpr) Pos() lexer.Position { return u.Operator.Position }
func (u *UnaryExpr) exprNode()           {}

// BinaryExpr is a binary operation: X op Y
//
// A single node type covers every binary operator; the operator token
// distinguishes them.
type BinaryExpr struct {
	X        Expr
	Operator lexer.Token
	Y        Expr
}

func (b *BinaryExpr) Pos() lexer.Position { return b.X.Pos() }
func (b *BinaryExpr) exprNode()           {}
