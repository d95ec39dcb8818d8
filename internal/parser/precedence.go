package parser

import (
	"github.com/hassan/cminus/internal/lexer"
)

// Precedence represents operator precedence levels.
//
// PRECEDENCE RULES (from lowest to highest):
// 1. Assignment (=), right-associative
// 2. Logical OR (||)
// 3. Logical AND (&&)
// 4. Relational (==, !=, <, >, <=, >=), non-associative
// 5. Addition/Subtraction (+, -)
// 6. Multiplication/Division (*, /)
// 7. Unary (!, -)
// 8. Field access and call (., ())
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecRelational            // == != < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary               // literals, identifiers, grouping
)

// getPrecedence returns the infix precedence of a token type, or PrecNone
// if the token cannot continue an expression.
func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenAssign:
		return PrecAssignment

	case lexer.TokenOr:
		return PrecOr

	case lexer.TokenAnd:
		return PrecAnd

	case lexer.TokenEqual,
		lexer.TokenNotEqual,
		lexer.TokenLess,
		lexer.TokenLessEqual,
		lexer.TokenGreater,
		lexer.TokenGreaterEqual:
		return PrecRelational

	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm

	case lexer.TokenStar, lexer.TokenSlash:
		return PrecFactor

	case lexer.TokenDot, lexer.TokenLeftParen:
		return PrecCall

	default:
		return PrecNone
	}
}

// isRightAssociative returns true if the operator is right-associative.
// Only assignment is: a = b = c parses as a = (b = c).
func isRightAssociative(tokenType lexer.TokenType) bool {
	return tokenType == lexer.TokenAssign
}

// isNonAssociative returns true for operators that may not be chained
// without parentheses: a < b < c is a syntax error.
func isNonAssociative(tokenType lexer.TokenType) bool {
	return getPrecedence(tokenType) == PrecRelational
}
