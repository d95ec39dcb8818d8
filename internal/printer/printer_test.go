package printer

import (
	"strings"
	"testing"

	"github.com/hassan/cminus/internal/parser"
	"github.com/hassan/cminus/internal/parser/ast"
	"github.com/hassan/cminus/internal/semantic"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, list := parser.Parse(src, "test.cm")
	if !list.OK() {
		t.Fatalf("parse errors:\n%v", list.Err())
	}
	return prog
}

func TestString_Program(t *testing.T) {
	src := `struct Point { int x; int y; };
struct Point p;
int add(int a, int b) { return a + b; }
void main() {
	int z;
	cin >> p.x;
	z = add(p.x, 2);
	if (z > 1) { z++; } else { z--; }
	while (true) { cout << "hi"; }
	repeat (3) { return; }
}`
	want := `struct Point {
    int x;
    int y;
};

struct Point p;
int add(int a, int b) {
    return a + b;
}

void main() {
    int z;
    cin >> p.x;
    z = add(p.x, 2);
    if (z > 1) {
        z++;
    }
    else {
        z--;
    }
    while (true) {
        cout << "hi";
    }
    repeat (3) {
        return;
    }
}

`
	if got := String(mustParse(t, src), 0); got != want {
		t.Errorf("String() =\n%s\nwant:\n%s", got, want)
	}
}

func TestExpr_Parenthesization(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a", "a"},
		{"a + b * c", "a + (b * c)"},
		{"(a + b) * c", "(a + b) * c"},
		{"a - b - c", "(a - b) - c"},
		{"a || b && c", "a || (b && c)"},
		{"-x", "-x"},
		{"- -x", "-(-x)"},
		{"!(a && b)", "!(a && b)"},
		{"-a * b", "(-a) * b"},
		{"y = z = 1", "y = (z = 1)"},
		{"f(a + 1, g())", "f(a + 1, g())"},
		{"p.q.r", "p.q.r"},
		{`"hi\n"`, `"hi\n"`},
		{"99999999999", "2147483647"},
		{"true == !false", "true == (!false)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, "void f() { x = "+tt.src+"; }")
			stmt := prog.Decls[0].(*ast.FuncDecl).Body.Stmts[0].(*ast.AssignStmt)
			if got := Expr(stmt.Assign.Rhs, 0); got != tt.want {
				t.Errorf("Expr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"declarations", "int x; bool b; struct S { int a; struct S2 s; }; void f(int a, bool b) { }"},
		{"statements", "void f() { int i; i = 0; i++; i--; cin >> i; cout << i; return; }"},
		{"control flow", "void f() { if (a) { if (b) { } else { c = 1; } } while (!d) { repeat (2 * n) { } } }"},
		{"expressions", "int f(int a) { return (-a + f(a - 1) * (a = 3) / 2 <= 4) == true; }"},
		{"fields", "void f() { a.b.c = d.e; cout << x.y; }"},
		{"strings", `void f() { cout << "a\tb\"c\""; }`},
		{"assignment chain", "void f() { a = b = c = (d = 1) + 1; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := String(mustParse(t, tt.src), 0)
			second := String(mustParse(t, first), 0)
			if first != second {
				t.Errorf("output not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}

func TestString_Annotated(t *testing.T) {
	src := `struct Point { int x; int y; };
struct Point p;
int z;
void g(int a, bool b) { }
void main() {
	z = p.x;
	g(z, true);
}`
	prog := mustParse(t, src)
	if list := semantic.Resolve(prog); !list.OK() {
		t.Fatalf("resolve errors:\n%v", list.Err())
	}

	got := String(prog, Annotate)
	for _, want := range []string{
		"struct Point p;\n",
		"    z(int) = p(Point).x(int);\n",
		"    g(int,bool->void)(z(int), true);\n",
		"void g(int a, bool b) {\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("annotated output missing %q:\n%s", want, got)
		}
	}
}

func TestString_AnnotateSkipsUnbound(t *testing.T) {
	prog := mustParse(t, "void f() { x = y; }")
	semantic.Resolve(prog)

	if got := String(prog, Annotate); !strings.Contains(got, "    x = y;\n") {
		t.Errorf("unbound identifiers should print bare:\n%s", got)
	}
}

func TestFprint(t *testing.T) {
	var sb strings.Builder
	if err := Fprint(&sb, mustParse(t, "int x;"), 0); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "int x;\n" {
		t.Errorf("Fprint wrote %q", sb.String())
	}
}
