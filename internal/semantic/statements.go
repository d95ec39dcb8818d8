package semantic

import (
	"github.com/hassan/cminus/internal/parser/ast"
	"github.com/hassan/cminus/internal/symtab"
)

// resolveBlockBody resolves a block's declarations and then its statements
// in the current scope.
func (r *Resolver) resolveBlockBody(b *ast.Block) {
	for _, d := range b.Decls {
		r.resolveVar(d.Type, d.Name, symtab.SymbolVariable)
	}
	for _, s := range b.Stmts {
		r.resolveStmt(s)
	}
}

// resolveScopedBlock resolves b in a new scope of the given kind.
func (r *Resolver) resolveScopedBlock(b *ast.Block, kind symtab.ScopeKind, context string) {
	r.enterScope(kind)
	r.resolveBlockBody(b)
	r.exitScope(b.Pos(), context)
}

// resolveStmt resolves one statement.
//
// Conditions are resolved in the enclosing scope; each body gets a scope of
// its own, and the two branches of an if/else get independent scopes.
// No other statement changes the scope stack.
func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	if !r.nest(stmt) {
		return
	}
	defer r.unnest()

	switch s := stmt.(type) {
	case *ast.AssignStmt:
		r.resolveExpr(s.Assign)
	case *ast.IncStmt:
		r.resolveExpr(s.X)
	case *ast.DecStmt:
		r.resolveExpr(s.X)
	case *ast.ReadStmt:
		r.resolveExpr(s.X)
	case *ast.WriteStmt:
		r.resolveExpr(s.X)
	case *ast.CallStmt:
		r.resolveExpr(s.Call)

	case *ast.ReturnStmt:
		if s.Result != nil {
			r.resolveExpr(s.Result)
		}

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveScopedBlock(s.Body, symtab.ScopeBlock, "if")

	case *ast.IfElseStmt:
		r.resolveExpr(s.Cond)
		r.resolveScopedBlock(s.Then, symtab.ScopeBlock, "if")
		r.resolveScopedBlock(s.Else, symtab.ScopeBlock, "else")

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveScopedBlock(s.Body, symtab.ScopeLoop, "while")

	case *ast.RepeatStmt:
		r.resolveExpr(s.Count)
		r.resolveScopedBlock(s.Body, symtab.ScopeLoop, "repeat")

	default:
		r.unexpected(stmt)
	}
}
