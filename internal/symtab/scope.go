package symtab

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateName is returned by Declare when the innermost scope
	// already holds the name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrScopeUnderflow is returned when an operation needs an open scope
	// and the stack is empty. It signals a bug in the caller, not in the
	// program being analyzed.
	ErrScopeUnderflow = errors.New("scope underflow")
)

// structPrefix separates struct tags from ordinary names.
const structPrefix = "struct "

// StructKey returns the key a struct tag is stored under.
func StructKey(tag string) string {
	return structPrefix + tag
}

// ScopeKind records which construct opened a scope.
type ScopeKind int

const (
	// ScopeGlobal is the program's outermost scope
	ScopeGlobal ScopeKind = iota

	// ScopeFunction holds a function's formals and top-level locals
	ScopeFunction

	// ScopeBlock is the body of an if or else branch
	ScopeBlock

	// ScopeLoop is the body of a while or repeat statement
	ScopeLoop

	// ScopeStruct is the temporary scope for a struct's fields
	ScopeStruct
)

// String returns a human-readable representation of the scope kind.
func (sk ScopeKind) String() string {
	switch sk {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	case ScopeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Scope is one level of the stack: a name to Symbol map.
//
// EXAMPLE:
//
//	int x;              // global scope
//	void f(int a) {     // function scope: a, y
//	    int y;
//	    if (a > 0) {    // block scope: z
//	        int z;
//	    }
//	}
type Scope struct {
	kind    ScopeKind
	depth   int
	symbols map[string]*Symbol

	// order keeps keys in declaration order for stable debug output.
	order []string
}

func newScope(kind ScopeKind, depth int) *Scope {
	return &Scope{
		kind:    kind,
		depth:   depth,
		symbols: make(map[string]*Symbol),
	}
}

// Kind returns the construct that opened the scope.
func (s *Scope) Kind() ScopeKind { return s.kind }

// Depth returns the nesting depth; the first scope pushed has depth 0.
func (s *Scope) Depth() int { return s.depth }

// Len returns the number of names declared in the scope.
func (s *Scope) Len() int { return len(s.symbols) }

// Lookup finds a key in this scope only.
func (s *Scope) Lookup(key string) (*Symbol, bool) {
	sym, ok := s.symbols[key]
	return sym, ok
}

// Keys returns the declared keys in declaration order.
func (s *Scope) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// String returns a short description of the scope.
func (s *Scope) String() string {
	return fmt.Sprintf("%s scope (depth %d, %d symbols)", s.kind, s.depth, len(s.symbols))
}

// Table is the stack of open scopes.
//
// The zero value is an empty table ready to use. A Table is not safe for
// concurrent use; one analysis owns one Table.
type Table struct {
	scopes []*Scope
}

// NewTable returns an empty table with no scope open.
func NewTable() *Table {
	return &Table{}
}

// EnterScope pushes a new empty scope and returns it.
func (t *Table) EnterScope(kind ScopeKind) *Scope {
	s := newScope(kind, len(t.scopes))
	t.scopes = append(t.scopes, s)
	return s
}

// ExitScope pops the innermost scope.
// It fails with ErrScopeUnderflow if no scope is open.
func (t *Table) ExitScope() error {
	if len(t.scopes) == 0 {
		return fmt.Errorf("%w: exit with no open scope", ErrScopeUnderflow)
	}
	t.scopes[len(t.scopes)-1] = nil
	t.scopes = t.scopes[:len(t.scopes)-1]
	return nil
}

// Declare adds sym under key to the innermost scope.
//
// RETURNS:
//   - ErrDuplicateName (wrapped) if the innermost scope already has key;
//     outer scopes are not consulted, so shadowing is allowed
//   - ErrScopeUnderflow (wrapped) if no scope is open
func (t *Table) Declare(key string, sym *Symbol) error {
	s := t.Current()
	if s == nil {
		return fmt.Errorf("%w: declare %q with no open scope", ErrScopeUnderflow, key)
	}
	if existing, ok := s.symbols[key]; ok {
		return fmt.Errorf("%w: %s already declared at %s", ErrDuplicateName, key, existing.Pos())
	}
	s.symbols[key] = sym
	s.order = append(s.order, key)
	return nil
}

// LookupLocal finds key in the innermost scope only.
// It returns (nil, false) when the key is absent or no scope is open.
func (t *Table) LookupLocal(key string) (*Symbol, bool) {
	s := t.Current()
	if s == nil {
		return nil, false
	}
	return s.Lookup(key)
}

// LookupGlobal finds key in the innermost scope that holds it, searching
// outward. Absence is not an error.
func (t *Table) LookupGlobal(key string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[key]; ok {
			return sym, true
		}
	}
	return nil, false
}

// DeclareStruct declares a struct tag symbol under StructKey(tag).
func (t *Table) DeclareStruct(tag string, sym *Symbol) error {
	return t.Declare(StructKey(tag), sym)
}

// LookupStruct finds a struct tag anywhere on the stack.
func (t *Table) LookupStruct(tag string) (*Symbol, bool) {
	return t.LookupGlobal(StructKey(tag))
}

// Depth returns the number of open scopes.
func (t *Table) Depth() int { return len(t.scopes) }

// Current returns the innermost scope, or nil if none is open.
func (t *Table) Current() *Scope {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[len(t.scopes)-1]
}

// DebugString renders every open scope, outermost first, with its symbols
// indented by depth.
//
// EXAMPLE OUTPUT:
//
//	global scope (depth 0, 2 symbols)
//	  struct Point: Point at p.cm:1:1
//	  function main: ->void at p.cm:2:1
//	  function scope (depth 1, 1 symbols)
//	    variable p: Point at p.cm:3:5
func (t *Table) DebugString() string {
	var b strings.Builder
	for _, s := range t.scopes {
		prefix := strings.Repeat("  ", s.depth)
		b.WriteString(prefix + s.String() + "\n")
		for _, key := range s.order {
			b.WriteString(prefix + "  " + s.symbols[key].Describe() + "\n")
		}
	}
	return b.String()
}
