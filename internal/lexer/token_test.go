package lexer

import (
	"testing"
)

func TestToken_String(t *testing.T) {
	tok := Token{
		Type:     TokenIdentifier,
		Lexeme:   "foo",
		Position: Position{Filename: "main.cm", Line: 42, Column: 15},
	}

	expected := "IDENTIFIER(foo) at main.cm:42:15"
	if got := tok.String(); got != expected {
		t.Errorf("Token.String() = %q, want %q", got, expected)
	}
}

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		tt   TokenType
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIntLit, "INTLIT"},
		{TokenStruct, "STRUCT"},
		{TokenRepeat, "REPEAT"},
		{TokenRead, "READ"},
		{TokenWrite, "WRITE"},
		{TokenLeftBrace, "LCURLY"},
		{TokenType(-1), "UNKNOWN"},
		{TokenType(9999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tt.String(); got != tt.want {
				t.Errorf("TokenType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		want TokenType
	}{
		{"int", TokenInt},
		{"bool", TokenBool},
		{"void", TokenVoid},
		{"struct", TokenStruct},
		{"repeat", TokenRepeat},
		{"cin", TokenCin},
		{"cout", TokenCout},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"Int", TokenIdentifier},
		{"for", TokenIdentifier},
		{"x", TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := LookupKeyword(tt.word); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestTokenType_Classes(t *testing.T) {
	tests := []struct {
		tt                                 TokenType
		keyword, operator, literal, isType bool
	}{
		{TokenInt, true, false, false, true},
		{TokenStruct, true, false, false, true},
		{TokenCout, true, false, false, false},
		{TokenPlus, false, true, false, false},
		{TokenDot, false, true, false, false},
		{TokenIntLit, false, false, true, false},
		{TokenFalse, false, false, true, false},
		{TokenIdentifier, false, false, false, false},
		{TokenSemicolon, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tt.String(), func(t *testing.T) {
			if got := tt.tt.IsKeyword(); got != tt.keyword {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.keyword)
			}
			if got := tt.tt.IsOperator(); got != tt.operator {
				t.Errorf("IsOperator() = %v, want %v", got, tt.operator)
			}
			if got := tt.tt.IsLiteral(); got != tt.literal {
				t.Errorf("IsLiteral() = %v, want %v", got, tt.literal)
			}
			if got := tt.tt.IsType(); got != tt.isType {
				t.Errorf("IsType() = %v, want %v", got, tt.isType)
			}
		})
	}
}
