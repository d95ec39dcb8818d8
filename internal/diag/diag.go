// Package diag collects the diagnostics produced while analyzing a C--
// program.
//
// A List is passed explicitly to every phase that can report problems. The
// phase records what it found and keeps going; the caller reads the verdict
// with OK once the phase has finished.
package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/hassan/cminus/internal/lexer"
)

// Code identifies a class of diagnostic.
type Code int

const (
	// NoCode marks warnings and parse errors that have no fixed class.
	NoCode Code = iota

	UndeclaredIdentifier
	MultiplyDeclaredIdentifier
	NonFunctionDeclaredVoid
	InvalidStructTypeName
	DotAccessOfNonStructType
	InvalidStructFieldName

	// ScopeUnderflow is an internal consistency failure of the analyzer,
	// not a problem in the analyzed program.
	ScopeUnderflow

	// NestingTooDeep is reported once for a subtree nested deeper than the
	// analyzer's limit; the subtree is skipped.
	NestingTooDeep

	// SyntaxError is a lexical or parse error.
	SyntaxError
)

var messages = [...]string{
	NoCode:                     "",
	UndeclaredIdentifier:       "Undeclared identifier",
	MultiplyDeclaredIdentifier: "Multiply declared identifier",
	NonFunctionDeclaredVoid:    "Non-function declared void",
	InvalidStructTypeName:      "Invalid name of struct type",
	DotAccessOfNonStructType:   "Dot-access of non-struct type",
	InvalidStructFieldName:     "Invalid struct field name",
	ScopeUnderflow:             "Scope underflow",
	NestingTooDeep:             "Nesting too deep",
	SyntaxError:                "Syntax error",
}

// Message returns the user-facing text for the code.
func (c Code) Message() string {
	if c < 0 || int(c) >= len(messages) {
		return "unknown diagnostic"
	}
	return messages[c]
}

func (c Code) String() string {
	switch c {
	case NoCode:
		return "NoCode"
	case UndeclaredIdentifier:
		return "UndeclaredIdentifier"
	case MultiplyDeclaredIdentifier:
		return "MultiplyDeclaredIdentifier"
	case NonFunctionDeclaredVoid:
		return "NonFunctionDeclaredVoid"
	case InvalidStructTypeName:
		return "InvalidStructTypeName"
	case DotAccessOfNonStructType:
		return "DotAccessOfNonStructType"
	case InvalidStructFieldName:
		return "InvalidStructFieldName"
	case ScopeUnderflow:
		return "ScopeUnderflow"
	case NestingTooDeep:
		return "NestingTooDeep"
	case SyntaxError:
		return "SyntaxError"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Severity is either Error or Warning.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "WARNING"
	}
	return "ERROR"
}

// Diagnostic is one reported problem. It implements error.
type Diagnostic struct {
	Pos      lexer.Position
	Severity Severity
	Code     Code
	Message  string
}

// Error formats the diagnostic as "file:line:col: ***ERROR*** message".
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: ***%s*** %s", d.Pos, d.Severity, d.Message)
}

// List accumulates diagnostics in the order they are reported.
//
// The success flag starts true and is cleared by the first Fatal. Nothing
// sets it back. The zero value is ready to use.
type List struct {
	diags  []Diagnostic
	failed bool
}

// New returns an empty List.
func New() *List {
	return &List{}
}

// Fatal records an error and clears the success flag. An empty msg is
// replaced by the code's message.
func (l *List) Fatal(pos lexer.Position, code Code, msg string) {
	if msg == "" {
		msg = code.Message()
	}
	l.diags = append(l.diags, Diagnostic{Pos: pos, Severity: Error, Code: code, Message: msg})
	l.failed = true
}

// Warn records a warning. The success flag is unchanged.
func (l *List) Warn(pos lexer.Position, msg string) {
	l.diags = append(l.diags, Diagnostic{Pos: pos, Severity: Warning, Code: NoCode, Message: msg})
}

// OK reports whether no error has been recorded.
func (l *List) OK() bool { return !l.failed }

// Len returns the number of recorded diagnostics, warnings included.
func (l *List) Len() int { return len(l.diags) }

// All returns every diagnostic in report order.
func (l *List) All() []Diagnostic { return l.diags }

// Errors returns the error diagnostics in report order.
func (l *List) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range l.diags {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Codes returns the codes of the error diagnostics in report order.
func (l *List) Codes() []Code {
	var out []Code
	for _, d := range l.diags {
		if d.Severity == Error {
			out = append(out, d.Code)
		}
	}
	return out
}

// Count returns how many errors with the given code were recorded.
func (l *List) Count(code Code) int {
	n := 0
	for _, d := range l.diags {
		if d.Severity == Error && d.Code == code {
			n++
		}
	}
	return n
}

// Err joins every error diagnostic into one error, or returns nil.
func (l *List) Err() error {
	var errs []error
	for _, d := range l.diags {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}

// Merge appends every diagnostic of other, keeping its verdict.
func (l *List) Merge(other *List) {
	l.diags = append(l.diags, other.diags...)
	if other.failed {
		l.failed = true
	}
}

// Print writes one diagnostic per line to w.
func (l *List) Print(w io.Writer) error {
	for _, d := range l.diags {
		if _, err := fmt.Fprintln(w, d.Error()); err != nil {
			return err
		}
	}
	return nil
}
