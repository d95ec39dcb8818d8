package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-test/deep"

	"github.com/hassan/cminus/internal/lexer"
)

func at(line, col int) lexer.Position {
	return lexer.Position{Filename: "test.cm", Line: line, Column: col}
}

func TestList_StartsOK(t *testing.T) {
	var l List
	if !l.OK() {
		t.Error("empty list is not OK")
	}
	if l.Err() != nil {
		t.Errorf("empty list Err() = %v", l.Err())
	}
}

func TestList_WarnKeepsFlag(t *testing.T) {
	l := New()
	l.Warn(at(1, 1), "integer literal too large; using max value")
	if !l.OK() {
		t.Error("Warn cleared the success flag")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if l.Err() != nil {
		t.Errorf("Err() = %v, want nil for warnings only", l.Err())
	}
}

func TestList_FatalClearsFlag(t *testing.T) {
	l := New()
	l.Fatal(at(2, 5), UndeclaredIdentifier, "")
	l.Warn(at(3, 1), "note")
	if l.OK() {
		t.Error("Fatal did not clear the success flag")
	}

	var d Diagnostic
	if !errors.As(l.Err(), &d) {
		t.Fatalf("Err() does not wrap a Diagnostic: %v", l.Err())
	}
	if d.Code != UndeclaredIdentifier {
		t.Errorf("Code = %v, want UndeclaredIdentifier", d.Code)
	}
}

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "error",
			d:    Diagnostic{Pos: at(4, 9), Severity: Error, Code: MultiplyDeclaredIdentifier, Message: MultiplyDeclaredIdentifier.Message()},
			want: "test.cm:4:9: ***ERROR*** Multiply declared identifier",
		},
		{
			name: "warning",
			d:    Diagnostic{Pos: at(1, 1), Severity: Warning, Message: "integer literal too large"},
			want: "test.cm:1:1: ***WARNING*** integer literal too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCode_Message(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{UndeclaredIdentifier, "Undeclared identifier"},
		{MultiplyDeclaredIdentifier, "Multiply declared identifier"},
		{NonFunctionDeclaredVoid, "Non-function declared void"},
		{InvalidStructTypeName, "Invalid name of struct type"},
		{DotAccessOfNonStructType, "Dot-access of non-struct type"},
		{InvalidStructFieldName, "Invalid struct field name"},
		{NestingTooDeep, "Nesting too deep"},
		{Code(-3), "unknown diagnostic"},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestList_CodesAndCount(t *testing.T) {
	l := New()
	l.Fatal(at(1, 5), MultiplyDeclaredIdentifier, "")
	l.Warn(at(2, 1), "ignored")
	l.Fatal(at(3, 5), UndeclaredIdentifier, "")
	l.Fatal(at(4, 5), UndeclaredIdentifier, "")

	want := []Code{MultiplyDeclaredIdentifier, UndeclaredIdentifier, UndeclaredIdentifier}
	if diff := deep.Equal(l.Codes(), want); diff != nil {
		t.Error(diff)
	}
	if n := l.Count(UndeclaredIdentifier); n != 2 {
		t.Errorf("Count(UndeclaredIdentifier) = %d, want 2", n)
	}
	if n := len(l.Errors()); n != 3 {
		t.Errorf("len(Errors()) = %d, want 3", n)
	}
}

func TestList_Merge(t *testing.T) {
	parse := New()
	parse.Warn(at(1, 1), "w")
	resolve := New()
	resolve.Fatal(at(2, 2), InvalidStructFieldName, "")

	parse.Merge(resolve)
	if parse.OK() {
		t.Error("Merge did not carry the failure")
	}
	if parse.Len() != 2 {
		t.Errorf("Len() = %d, want 2", parse.Len())
	}
}

func TestList_Print(t *testing.T) {
	l := New()
	l.Fatal(at(1, 5), NonFunctionDeclaredVoid, "")
	l.Fatal(at(7, 3), ScopeUnderflow, "Scope underflow: exit function f")

	var buf bytes.Buffer
	if err := l.Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	want := "test.cm:1:5: ***ERROR*** Non-function declared void\n" +
		"test.cm:7:3: ***ERROR*** Scope underflow: exit function f\n"
	if got := buf.String(); got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}
