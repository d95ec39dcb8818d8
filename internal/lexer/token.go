package lexer

// TokenType represents the type of a token.
type TokenType int

// Token type enumeration.
//
// ORGANIZATION: Tokens are grouped logically:
// 1. Special tokens (EOF, Invalid)
// 2. Literals
// 3. Identifiers and keywords
// 4. Operators
// 5. Delimiters
//
// IsKeyword/IsOperator/IsLiteral rely on this ordering.
const (
	// Special tokens

	// TokenEOF marks the end of the input. It has a position, which the
	// parser uses for "unexpected end of file" errors.
	TokenEOF TokenType = iota

	// TokenInvalid represents a lexical error. The lexer keeps going after
	// producing one so that several errors can be reported in one pass.
	TokenInvalid

	// Literals

	// TokenIntLit is a decimal integer literal. The digits are kept in
	// Token.Lexeme; the parser converts them.
	TokenIntLit

	// TokenStringLit is a string literal. The lexeme keeps the surrounding
	// quotes and the escape sequences exactly as written.
	TokenStringLit

	// TokenTrue and TokenFalse are the boolean literals.
	TokenTrue
	TokenFalse

	// Identifiers and Keywords

	// TokenIdentifier represents a variable, function, field or struct tag
	// name. The actual name is stored in Token.Lexeme.
	TokenIdentifier

	// Keywords - types
	TokenInt
	TokenBool
	TokenVoid
	TokenStruct

	// Keywords - statements
	TokenIf
	TokenElse
	TokenWhile
	TokenRepeat
	TokenReturn
	TokenCin
	TokenCout

	// Operators - arithmetic
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Operators - comparison
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	// Operators - logical
	TokenAnd // &&
	TokenOr  // ||
	TokenNot // !

	// Operators - assignment and update
	TokenAssign     // =
	TokenPlusPlus   // ++
	TokenMinusMinus // --

	// Operators - stream
	TokenRead  // >> (after cin)
	TokenWrite // << (after cout)

	// Operators - other
	TokenDot // . (field access)

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenSemicolon  // ;
	TokenComma      // ,
)

// Token represents a single lexical token.
type Token struct {
	// Type is the token type.
	Type TokenType

	// Lexeme is the text of the token as it appears in the source. For
	// keywords and operators it is the fixed spelling ("while", "==").
	Lexeme string

	// Position is where this token starts.
	Position Position

	// Length is the length of the token in bytes.
	Length int
}

// String returns a human-readable representation of the token.
// Format: "TYPE(lexeme) at position"
// Example: "IDENTIFIER(foo) at main.cm:42:15"
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

var tokenNames = [...]string{
	TokenEOF:          "EOF",
	TokenInvalid:      "INVALID",
	TokenIntLit:       "INTLIT",
	TokenStringLit:    "STRINGLIT",
	TokenTrue:         "TRUE",
	TokenFalse:        "FALSE",
	TokenIdentifier:   "IDENTIFIER",
	TokenInt:          "INT",
	TokenBool:         "BOOL",
	TokenVoid:         "VOID",
	TokenStruct:       "STRUCT",
	TokenIf:           "IF",
	TokenElse:         "ELSE",
	TokenWhile:        "WHILE",
	TokenRepeat:       "REPEAT",
	TokenReturn:       "RETURN",
	TokenCin:          "CIN",
	TokenCout:         "COUT",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenStar:         "TIMES",
	TokenSlash:        "DIVIDE",
	TokenEqual:        "EQUALS",
	TokenNotEqual:     "NOTEQUALS",
	TokenLess:         "LESS",
	TokenLessEqual:    "LESSEQ",
	TokenGreater:      "GREATER",
	TokenGreaterEqual: "GREATEREQ",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenAssign:       "ASSIGN",
	TokenPlusPlus:     "PLUSPLUS",
	TokenMinusMinus:   "MINUSMINUS",
	TokenRead:         "READ",
	TokenWrite:        "WRITE",
	TokenDot:          "DOT",
	TokenLeftParen:    "LPAREN",
	TokenRightParen:   "RPAREN",
	TokenLeftBrace:    "LCURLY",
	TokenRightBrace:   "RCURLY",
	TokenSemicolon:    "SEMICOLON",
	TokenComma:        "COMMA",
}

// String returns the string representation of a token type, using the
// terminal names of the C-- grammar.
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return "UNKNOWN"
}

// keywords maps keyword spellings to their token types. It is never
// modified after initialization.
var keywords = map[string]TokenType{
	"int":    TokenInt,
	"bool":   TokenBool,
	"void":   TokenVoid,
	"struct": TokenStruct,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"repeat": TokenRepeat,
	"return": TokenReturn,
	"cin":    TokenCin,
	"cout":   TokenCout,
	"true":   TokenTrue,
	"false":  TokenFalse,
}

// LookupKeyword checks if an identifier is actually a keyword.
// Returns the keyword token type if it is, or TokenIdentifier if not.
func LookupKeyword(identifier string) TokenType {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType
	}
	return TokenIdentifier
}

// IsKeyword returns true if the token is a keyword.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenInt && tt <= TokenCout
}

// IsOperator returns true if the token is an operator.
func (tt TokenType) IsOperator() bool {
	return tt >= TokenPlus && tt <= TokenDot
}

// IsLiteral returns true if the token is a literal value.
func (tt TokenType) IsLiteral() bool {
	return tt >= TokenIntLit && tt <= TokenFalse
}

// IsType returns true if the token starts a type in a declaration.
func (tt TokenType) IsType() bool {
	return tt >= TokenInt && tt <= TokenStruct
}
