package semantic

import (
	"github.com/hassan/cminus/internal/diag"
	"github.com/hassan/cminus/internal/parser/ast"
	"github.com/hassan/cminus/internal/symtab"
)

// resolveDotAccess resolves a field access chain e0.f1.f2...fk.
//
// The chain is flattened and walked left to right:
//  1. e0 is looked up in every visible scope. Undeclared: report at e0 and
//     stop.
//  2. For each field fi, the Symbol resolved for the previous link must be
//     a struct ("Dot-access of non-struct type" at the previous link
//     otherwise), and fi must be one of its fields ("Invalid struct field
//     name" at fi otherwise). fi is bound to the field's Symbol, which
//     becomes the current Symbol.
//
// The walk stops at the first error; later fields stay unvisited. When the
// failing link is not the last one, the field it was resolving is reported
// as "Undeclared identifier" too, since nothing after it can be resolved.
// A non-struct intermediate field is the exception: it resolved, so only the
// dot-access error is reported.
//
// EXAMPLE:
//
//	struct Inner { int c; };
//	struct Outer { struct Inner b; };
//	struct Outer a;
//	a.b.c = 1;      // a -> Outer variable, b -> Inner field, c -> int field
func (r *Resolver) resolveDotAccess(d *ast.DotAccessExpr) {
	base, fields := d.Chain()

	baseID, ok := base.(*ast.Ident)
	if !ok {
		r.unexpected(base)
		return
	}

	sym, ok := r.table.LookupGlobal(baseID.Name)
	if !ok {
		r.diags.Fatal(baseID.Pos(), diag.UndeclaredIdentifier, "")
		baseID.MarkUnresolved()
		r.abortChain(fields, 0)
		return
	}
	baseID.Bind(sym)

	prev := baseID
	for i, field := range fields {
		if !sym.IsStruct() {
			r.diags.Fatal(prev.Pos(), diag.DotAccessOfNonStructType, "")
			if i == 0 {
				r.abortChain(fields, 0)
			}
			return
		}

		namespace, ok := r.fieldNamespace(sym, prev, i == 0)
		if !ok {
			r.abortChain(fields, i)
			return
		}

		fsym, ok := namespace[field.Name]
		if !ok {
			r.diags.Fatal(field.Pos(), diag.InvalidStructFieldName, "")
			field.MarkUnresolved()
			r.abortChain(fields, i)
			return
		}
		field.Bind(fsym)

		sym, prev = fsym, field
	}
}

// abortChain reports fields[i], the field whose link failed, as undeclared
// unless it ends the chain.
func (r *Resolver) abortChain(fields []*ast.Ident, i int) {
	if i >= len(fields)-1 {
		return
	}
	r.diags.Fatal(fields[i].Pos(), diag.UndeclaredIdentifier, "")
	fields[i].MarkUnresolved()
}

// fieldNamespace returns the fields of struct symbol sym, reached through
// identifier at. By default this is the namespace sym carries. With legacy
// dot lookup, intermediate links instead look up the struct tag named by
// sym's type in the current scopes, and report "Undeclared identifier" at
// the link if the tag is not visible.
func (r *Resolver) fieldNamespace(sym *symtab.Symbol, at *ast.Ident, first bool) (map[string]*symtab.Symbol, bool) {
	if first || !r.legacyDot {
		return sym.Fields(), true
	}

	tag, ok := r.table.LookupStruct(sym.Type())
	if !ok {
		r.diags.Fatal(at.Pos(), diag.UndeclaredIdentifier, "")
		return nil, false
	}
	return tag.Fields(), true
}
