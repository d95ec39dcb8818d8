package ast

import (
	"github.com/hassan/cminus/internal/lexer"
)

// Statement nodes. Statements that hold a body (if, while, repeat) carry a
// *Block; the name analyzer opens one scope per Block.

// AssignStmt is an assignment statement: loc = exp;
type AssignStmt struct {
	Assign *AssignExpr
}

func (s *AssignStmt) Pos() lexer.Position { return s.Assign.Pos() }
func (s *AssignStmt) stmtNode()           {}

// IncStmt is loc++;
type IncStmt struct {
	X Expr
}

func (s *IncStmt) Pos() lexer.Position { return s.X.Pos() }
func (s *IncStmt) stmtNode()           {}

// DecStmt is loc--;
type DecStmt struct {
	X Expr
}

func (s *DecStmt) Pos() lexer.Position { return s.X.Pos() }
func (s *DecStmt) stmtNode()           {}

// ReadStmt is cin >> loc;
type ReadStmt struct {
	CinPos lexer.Position
	X      Expr
}

func (s *ReadStmt) Pos() lexer.Position { return s.CinPos }
func (s *ReadStmt) stmtNode()           {}

// WriteStmt is cout << exp;
type WriteStmt struct {
	CoutPos lexer.Position
	X       Expr
}

func (s *WriteStmt) Pos() lexer.Position { return s.CoutPos }
func (s *WriteStmt) stmtNode()           {}

// IfStmt is if (Cond) { Body } without an else branch.
type IfStmt struct {
	IfPos lexer.Position
	Cond  Expr
	Body  *Block
}

func (s *IfStmt) Pos() lexer.Position { return s.IfPos }
func (s *IfStmt) stmtNode()           {}

// IfElseStmt is if (Cond) { Then } else { Else }.
// Then and Else are independent scopes.
type IfElseStmt struct {
	IfPos lexer.Position
	Cond  Expr
	Then  *Block
	Else  *Block
}

func (s *IfElseStmt) Pos() lexer.Position { return s.IfPos }
func (s *IfElseStmt) stmtNode()           {}

// WhileStmt is while (Cond) { Body }.
type WhileStmt struct {
	WhilePos lexer.Position
	Cond     Expr
	Body     *Block
}

func (s *WhileStmt) Pos() lexer.Position { return s.WhilePos }
func (s *WhileStmt) stmtNode()           {}

// RepeatStmt is repeat (Count) { Body }.
type RepeatStmt struct {
	RepeatPos lexer.Position
	Count     Expr
	Body      *Block
}

func (s *RepeatStmt) Pos() lexer.Position { return s.RepeatPos }
func (s *RepeatStmt) stmtNode()           {}

// CallStmt is a call used as a statement: f(args);
type CallStmt struct {
	Call *CallExpr
}

func (s *CallStmt) Pos() lexer.Position { return s.Call.Pos() }
func (s *CallStmt) stmtNode()           {}

// ReturnStmt is return; or return exp;
// Result is nil for a bare return.
type ReturnStmt struct {
	ReturnPos lexer.Position
	Result    Expr
}

func (s *ReturnStmt) Pos() lexer.Position { return s.ReturnPos }
func (s *ReturnStmt) stmtNode()           {}
