// Package lexer turns C-- source text into a stream of tokens for the parser.
//
// Every token carries the Position it starts at. Positions flow through the
// parser into the tree and from there into every diagnostic the name
// analyzer reports, so they are cheap values rather than pointers.
package lexer

import "strconv"

// Position represents a location in the source code.
//
// Line and Column are 1-based (they match what editors display); Offset is
// the 0-based byte offset into the source. The zero value is an invalid
// position, used for nodes synthesized outside of any file.
type Position struct {
	// Filename is the name of the source file. It may be empty when the
	// source did not come from a file (tests, stdin).
	Filename string

	// Line is the 1-based line number.
	Line int

	// Column is the 1-based column, counted in runes.
	Column int

	// Offset is the 0-based byte offset from the start of the source.
	Offset int
}

// String returns the position in the GCC/Clang "file:line:column" form.
// Without a filename only "line:column" is printed.
func (p Position) String() string {
	lc := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.Filename == "" {
		return lc
	}
	return p.Filename + ":" + lc
}

// IsValid reports whether the position has a line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before other in the same source.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After reports whether p comes after other in the same source.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}
