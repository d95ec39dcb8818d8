package semantic

import (
	"github.com/hassan/cminus/internal/diag"
	"github.com/hassan/cminus/internal/parser/ast"
)

// resolveExpr resolves every identifier in an expression.
func (r *Resolver) resolveExpr(expr ast.Expr) {
	if !r.nest(expr) {
		return
	}
	defer r.unnest()

	switch x := expr.(type) {
	case *ast.IntLit, *ast.StringLit, *ast.BoolLit:
		// Nothing to resolve

	case *ast.Ident:
		r.resolveIdent(x)

	case *ast.DotAccessExpr:
		r.resolveDotAccess(x)

	case *ast.AssignExpr:
		r.resolveExpr(x.Lhs)
		r.resolveExpr(x.Rhs)

	case *ast.CallExpr:
		r.resolveCall(x)

	case *ast.UnaryExpr:
		r.resolveExpr(x.X)

	case *ast.BinaryExpr:
		r.resolveBinary(x)

	default:
		r.unexpected(expr)
	}
}

// resolveIdent binds a use of a name to the innermost declaration that
// is visible.
func (r *Resolver) resolveIdent(id *ast.Ident) {
	sym, ok := r.table.LookupLocal(id.Name)
	if !ok {
		sym, ok = r.table.LookupGlobal(id.Name)
	}
	if !ok {
		r.diags.Fatal(id.Pos(), diag.UndeclaredIdentifier, "")
		id.MarkUnresolved()
		return
	}
	id.Bind(sym)
}

// resolveCall binds the callee and resolves the arguments. An undeclared
// callee does not stop argument resolution.
func (r *Resolver) resolveCall(c *ast.CallExpr) {
	if fn, ok := r.table.LookupGlobal(c.Fun.Name); ok {
		c.Fun.Bind(fn)
	} else {
		r.diags.Fatal(c.Fun.Pos(), diag.UndeclaredIdentifier, "")
		c.Fun.MarkUnresolved()
	}

	for _, arg := range c.Args {
		r.resolveExpr(arg)
	}
}

// resolveBinary walks the left spine of a binary chain iteratively, so
// a + b + ... + z costs one level of nesting. Operands are resolved in
// source order.
func (r *Resolver) resolveBinary(b *ast.BinaryExpr) {
	var rights []ast.Expr
	var x ast.Expr = b
	for {
		bin, ok := x.(*ast.BinaryExpr)
		if !ok {
			break
		}
		rights = append(rights, bin.Y)
		x = bin.X
	}

	r.resolveExpr(x)
	for i := len(rights) - 1; i >= 0; i-- {
		r.resolveExpr(rights[i])
	}
}
