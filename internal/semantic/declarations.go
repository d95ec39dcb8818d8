package semantic

import (
	"context"
	"log/slog"

	"github.com/hassan/cminus/internal/diag"
	"github.com/hassan/cminus/internal/parser/ast"
	"github.com/hassan/cminus/internal/symtab"
)

func (r *Resolver) resolveDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		r.resolveVar(d.Type, d.Name, symtab.SymbolVariable)
	case *ast.FuncDecl:
		r.resolveFuncDecl(d)
	case *ast.FormalDecl:
		r.resolveVar(d.Type, d.Name, symtab.SymbolParameter)
	case *ast.StructDecl:
		r.resolveStructDecl(d)
	default:
		r.unexpected(decl)
	}
}

// resolveVar declares one variable, parameter or field named id.
//
// RULES:
//   - void: "Non-function declared void", nothing is declared
//   - int, bool: a Symbol of that type is declared under the name
//   - struct T: the tag T must be visible ("Invalid name of struct type"
//     otherwise); the Symbol shares T's field namespace and the tag
//     identifier is bound to T's Symbol
//
// Every error is reported at the declared name.
func (r *Resolver) resolveVar(typ ast.TypeExpr, id *ast.Ident, kind symtab.SymbolKind) {
	switch t := typ.(type) {
	case *ast.VoidType:
		r.diags.Fatal(id.Pos(), diag.NonFunctionDeclaredVoid, "")
		id.MarkUnresolved()

	case *ast.IntType, *ast.BoolType:
		sym := symtab.NewVariable(kind, id.Name, typ.TypeName(), id.Pos())
		r.declareAndBind(id, id.Name, sym)

	case *ast.StructType:
		tag, ok := r.table.LookupStruct(t.Tag.Name)
		if !ok {
			r.diags.Fatal(id.Pos(), diag.InvalidStructTypeName, "")
			t.Tag.MarkUnresolved()
			id.MarkUnresolved()
			return
		}
		t.Tag.Bind(tag)
		sym := symtab.NewStructVariable(kind, id.Name, tag, id.Pos())
		r.declareAndBind(id, id.Name, sym)

	default:
		r.unexpected(typ)
	}
}

// resolveFuncDecl declares a function and resolves its formals and body.
//
// The parameter type list is built from the formals as written, before
// anything is declared. Then, depending on what the enclosing scope already
// holds under the name:
//   - another function: the formals are resolved (opening the function
//     scope) and the name is reported as multiply declared
//   - any other symbol: the name is reported and a bare function scope is
//     opened; the formals are not declared
//   - nothing: the function is declared first, so the body can call it
//     recursively, then the formals are resolved
//
// The body is resolved in the function scope, which is then closed. Every
// path opens and closes exactly one scope.
func (r *Resolver) resolveFuncDecl(d *ast.FuncDecl) {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.Type.TypeName()
	}
	fn := symtab.NewFunction(d.Name.Name, d.Type.TypeName(), params, d.Name.Pos())

	if old, ok := r.table.LookupLocal(d.Name.Name); ok {
		if old.IsFunction() {
			r.resolveFormals(d.Params)
		} else {
			r.enterScope(symtab.ScopeFunction)
		}
		r.diags.Fatal(d.Name.Pos(), diag.MultiplyDeclaredIdentifier, "")
		d.Name.MarkUnresolved()
	} else {
		r.declareAndBind(d.Name, d.Name.Name, fn)
		r.resolveFormals(d.Params)
	}

	if d.Body != nil {
		r.resolveBlockBody(d.Body)
	}
	if r.log.Enabled(context.Background(), slog.LevelDebug) {
		r.log.Debug("closing function scope", "func", d.Name.Name, "scopes", r.table.DebugString())
	}
	r.exitScope(d.Name.Pos(), "function "+d.Name.Name)
}

// resolveFormals opens the function scope and declares each formal in it.
func (r *Resolver) resolveFormals(formals []*ast.FormalDecl) {
	r.enterScope(symtab.ScopeFunction)
	for _, f := range formals {
		r.resolveVar(f.Type, f.Name, symtab.SymbolParameter)
	}
}

// resolveStructDecl builds a struct's field namespace and declares its tag.
//
// The fields are resolved as ordinary declarations in a temporary struct
// scope, so duplicates and bad types are reported as usual and outer struct
// tags stay visible for nested struct fields. Every field that was declared
// successfully goes into the namespace; errors do not stop collection. The
// tag is declared under "struct <name>" in the enclosing scope after the
// temporary scope is closed.
func (r *Resolver) resolveStructDecl(d *ast.StructDecl) {
	fields := make(map[string]*symtab.Symbol, len(d.Fields))

	r.enterScope(symtab.ScopeStruct)
	for _, f := range d.Fields {
		r.resolveVar(f.Type, f.Name, symtab.SymbolField)
		if f.Name.State() == ast.Resolved {
			fields[f.Name.Name] = f.Name.Symbol()
		}
	}
	r.exitScope(d.Pos(), "struct "+d.Tag.Name)

	tag := symtab.NewStructTag(d.Tag.Name, fields, d.Tag.Pos())
	r.log.Debug("struct declared", "tag", d.Tag.Name, "fields", tag.FieldNames())
	r.declareAndBind(d.Tag, symtab.StructKey(d.Tag.Name), tag)
}
