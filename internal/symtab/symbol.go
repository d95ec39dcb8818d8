// Package symtab implements the symbol table used by C-- name analysis.
//
// DESIGN PHILOSOPHY:
// The symbol table is a stack of scopes. The name analyzer pushes a scope
// when it enters a function, a block or a struct body, declares names into
// the innermost scope, and pops the scope on the way out. Lookups walk the
// stack from innermost to outermost, which is exactly lexical scoping with
// shadowing.
//
// KEY DESIGN CHOICES:
//   - Symbols are complete when constructed and never mutated afterwards.
//     Many identifier nodes point at one *Symbol; nobody copies it.
//   - Ordinary names and struct tags live in the same scopes. Struct tags
//     are keyed as "struct Tag" (see StructKey), so a variable and a struct
//     type may share a name.
//   - Failures are reported as sentinel errors (ErrDuplicateName,
//     ErrScopeUnderflow) that callers test with errors.Is.
package symtab

import (
	"sort"
	"strings"

	"github.com/hassan/cminus/internal/lexer"
)

// SymbolKind says what declared a symbol.
type SymbolKind int

const (
	// SymbolVariable is a global or local variable (int x;)
	SymbolVariable SymbolKind = iota

	// SymbolParameter is a formal parameter of a function
	SymbolParameter

	// SymbolField is a member of a struct declaration
	SymbolField

	// SymbolFunction is a function (int f(int a) { ... })
	SymbolFunction

	// SymbolStructTag is a struct type declaration (struct Point { ... };)
	SymbolStructTag
)

// String returns a human-readable representation of the symbol kind.
func (sk SymbolKind) String() string {
	switch sk {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolField:
		return "field"
	case SymbolFunction:
		return "function"
	case SymbolStructTag:
		return "struct"
	default:
		return "unknown"
	}
}

// Symbol is the declaration-side record for one named entity.
//
// A Symbol is either a struct (it carries a field namespace), a function (it
// carries a parameter type list) or neither. The two are never both true.
type Symbol struct {
	name string
	kind SymbolKind
	pos  lexer.Position

	// typ is "int", "bool", "void" or a struct tag name. For a function it
	// is the return type.
	typ string

	// fields is non-nil exactly when isStruct is true. A struct variable
	// shares the map of its tag; it is never copied.
	isStruct bool
	fields   map[string]*Symbol

	isFunction bool
	params     []string
}

// NewVariable returns a symbol for a scalar variable, parameter or field.
// kind must be SymbolVariable, SymbolParameter or SymbolField.
func NewVariable(kind SymbolKind, name, typ string, pos lexer.Position) *Symbol {
	return &Symbol{name: name, kind: kind, typ: typ, pos: pos}
}

// NewParameter returns a symbol for a formal parameter.
func NewParameter(name, typ string, pos lexer.Position) *Symbol {
	return NewVariable(SymbolParameter, name, typ, pos)
}

// NewStructVariable returns a symbol for a variable (or field) whose type
// is the struct described by tag. The variable's type is the tag name and
// its field namespace is the tag's own map.
func NewStructVariable(kind SymbolKind, name string, tag *Symbol, pos lexer.Position) *Symbol {
	return &Symbol{
		name:     name,
		kind:     kind,
		typ:      tag.typ,
		pos:      pos,
		isStruct: true,
		fields:   tag.fields,
	}
}

// NewStructTag returns the symbol for a struct type declaration. A nil
// fields map is replaced with an empty one.
func NewStructTag(name string, fields map[string]*Symbol, pos lexer.Position) *Symbol {
	if fields == nil {
		fields = make(map[string]*Symbol)
	}
	return &Symbol{
		name:     name,
		kind:     SymbolStructTag,
		typ:      name,
		pos:      pos,
		isStruct: true,
		fields:   fields,
	}
}

// NewFunction returns the symbol for a function with the given return type
// and ordered parameter type names.
func NewFunction(name, ret string, params []string, pos lexer.Position) *Symbol {
	p := make([]string, len(params))
	copy(p, params)
	return &Symbol{
		name:       name,
		kind:       SymbolFunction,
		typ:        ret,
		pos:        pos,
		isFunction: true,
		params:     p,
	}
}

// Name returns the declared name (the bare tag for a struct tag).
func (s *Symbol) Name() string { return s.name }

// Kind returns what kind of declaration produced the symbol.
func (s *Symbol) Kind() SymbolKind { return s.kind }

// Pos returns the declaration position.
func (s *Symbol) Pos() lexer.Position { return s.pos }

// Type returns the declared type name: "int", "bool", "void" or a struct
// tag. For functions it is the return type.
func (s *Symbol) Type() string { return s.typ }

// IsStruct reports whether the symbol carries a field namespace.
func (s *Symbol) IsStruct() bool { return s.isStruct }

// IsFunction reports whether the symbol is a function.
func (s *Symbol) IsFunction() bool { return s.isFunction }

// Field looks up a field by name. It returns (nil, false) for non-struct
// symbols and for unknown fields.
func (s *Symbol) Field(name string) (*Symbol, bool) {
	if !s.isStruct {
		return nil, false
	}
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns the field namespace. It is nil for non-struct symbols.
// The map is shared and must not be modified.
func (s *Symbol) Fields() map[string]*Symbol { return s.fields }

// FieldNames returns the field names in sorted order.
func (s *Symbol) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params returns the parameter type names in declaration order.
func (s *Symbol) Params() []string { return s.params }

// String renders the symbol's type the way annotated output shows it.
//
// EXAMPLES:
//
//	int            (int variable)
//	Point          (struct Point variable)
//	int,bool->void (void f(int a, bool b))
//	->int          (int main())
func (s *Symbol) String() string {
	if s.isFunction {
		return strings.Join(s.params, ",") + "->" + s.typ
	}
	return s.typ
}

// Describe returns a debugging description.
// Format: "kind name: type at position"
// Example: "variable x: int at main.cm:4:5"
func (s *Symbol) Describe() string {
	return s.kind.String() + " " + s.name + ": " + s.String() + " at " + s.pos.String()
}
