package ast

import "fmt"

// Inspect traverses the tree rooted at n in depth-first, source order. It
// calls f(node) for each node; if f returns false, the children of that
// node are skipped. Nil children are not visited.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		for _, d := range n.Decls {
			Inspect(d, f)
		}

	case *Block:
		for _, d := range n.Decls {
			Inspect(d, f)
		}
		for _, s := range n.Stmts {
			Inspect(s, f)
		}

	// Types
	case *IntType, *BoolType, *VoidType:
	case *StructType:
		Inspect(n.Tag, f)

	// Declarations
	case *VarDecl:
		Inspect(n.Type, f)
		Inspect(n.Name, f)
	case *FuncDecl:
		Inspect(n.Type, f)
		Inspect(n.Name, f)
		for _, p := range n.Params {
			Inspect(p, f)
		}
		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *FormalDecl:
		Inspect(n.Type, f)
		Inspect(n.Name, f)
	case *StructDecl:
		Inspect(n.Tag, f)
		for _, fld := range n.Fields {
			Inspect(fld, f)
		}

	// Statements
	case *AssignStmt:
		Inspect(n.Assign, f)
	case *IncStmt:
		Inspect(n.X, f)
	case *DecStmt:
		Inspect(n.X, f)
	case *ReadStmt:
		Inspect(n.X, f)
	case *WriteStmt:
		Inspect(n.X, f)
	case *IfStmt:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *IfElseStmt:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *WhileStmt:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *RepeatStmt:
		Inspect(n.Count, f)
		Inspect(n.Body, f)
	case *CallStmt:
		Inspect(n.Call, f)
	case *ReturnStmt:
		if n.Result != nil {
			Inspect(n.Result, f)
		}

	// Expressions
	case *Ident, *IntLit, *StringLit, *BoolLit:
	case *DotAccessExpr:
		Inspect(n.X, f)
		Inspect(n.Sel, f)
	case *AssignExpr:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case *CallExpr:
		Inspect(n.Fun, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *UnaryExpr:
		Inspect(n.X, f)
	case *BinaryExpr:
		Inspect(n.X, f)
		Inspect(n.Y, f)

	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node type %T", n))
	}
}

// Idents returns every identifier occurrence under n, in source order.
func Idents(n Node) []*Ident {
	var ids []*Ident
	Inspect(n, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}
