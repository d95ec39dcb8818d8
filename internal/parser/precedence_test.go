package parser

import (
	"testing"

	"github.com/hassan/cminus/internal/lexer"
)

func TestGetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenType
		expected Precedence
	}{
		// Assignment (lowest)
		{"assign", lexer.TokenAssign, PrecAssignment},

		// Logical
		{"logical or", lexer.TokenOr, PrecOr},
		{"logical and", lexer.TokenAnd, PrecAnd},

		// Relational
		{"equal", lexer.TokenEqual, PrecRelational},
		{"not equal", lexer.TokenNotEqual, PrecRelational},
		{"less than", lexer.TokenLess, PrecRelational},
		{"less equal", lexer.TokenLessEqual, PrecRelational},
		{"greater than", lexer.TokenGreater, PrecRelational},
		{"greater equal", lexer.TokenGreaterEqual, PrecRelational},

		// Arithmetic
		{"plus", lexer.TokenPlus, PrecTerm},
		{"minus", lexer.TokenMinus, PrecTerm},
		{"star", lexer.TokenStar, PrecFactor},
		{"slash", lexer.TokenSlash, PrecFactor},

		// Field access and call
		{"dot", lexer.TokenDot, PrecCall},
		{"left paren", lexer.TokenLeftParen, PrecCall},

		// Not infix operators
		{"not", lexer.TokenNot, PrecNone},
		{"plus plus", lexer.TokenPlusPlus, PrecNone},
		{"write", lexer.TokenWrite, PrecNone},
		{"semicolon", lexer.TokenSemicolon, PrecNone},
		{"identifier", lexer.TokenIdentifier, PrecNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getPrecedence(tt.token); got != tt.expected {
				t.Errorf("getPrecedence(%v) = %v, want %v", tt.token, got, tt.expected)
			}
		})
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	order := []Precedence{
		PrecNone, PrecAssignment, PrecOr, PrecAnd, PrecRelational,
		PrecTerm, PrecFactor, PrecUnary, PrecCall, PrecPrimary,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Errorf("precedence %d (%d) is not below %d (%d)", i-1, order[i-1], i, order[i])
		}
	}
}

func TestAssociativity(t *testing.T) {
	tests := []struct {
		name                 string
		token                lexer.TokenType
		rightAssoc, nonAssoc bool
	}{
		{"assign", lexer.TokenAssign, true, false},
		{"plus", lexer.TokenPlus, false, false},
		{"or", lexer.TokenOr, false, false},
		{"less", lexer.TokenLess, false, true},
		{"equal", lexer.TokenEqual, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRightAssociative(tt.token); got != tt.rightAssoc {
				t.Errorf("isRightAssociative(%v) = %v, want %v", tt.token, got, tt.rightAssoc)
			}
			if got := isNonAssociative(tt.token); got != tt.nonAssoc {
				t.Errorf("isNonAssociative(%v) = %v, want %v", tt.token, got, tt.nonAssoc)
			}
		})
	}
}
