package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer performs lexical analysis on C-- source code.
//
// The lexer:
// 1. Breaks source into tokens
// 2. Tracks position information for error reporting
// 3. Skips whitespace and comments (both "//" and "#" run to end of line)
// 4. Recognizes keywords, identifiers, literals and operators
//
// Lexical errors do not stop the lexer: NextToken returns a TokenInvalid
// token together with the error and scanning resumes after the bad input.
type Lexer struct {
	// source is the complete source code being lexed.
	source string

	// filename is the name of the source file (for error reporting).
	filename string

	// start is the byte offset of the token being scanned.
	start int

	// current is the byte offset we're currently examining.
	current int

	// line is the current line number (1-based).
	line int

	// lineStart is the byte offset where the current line started.
	// Columns are computed from it when a token is made.
	lineStart int

	// startLine and startLineStart capture line information at the start
	// of the current token, so that tokens spanning lines (unterminated
	// strings) still report where they began.
	startLine      int
	startLineStart int
}

// New creates a new Lexer for the given source code.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

// NextToken returns the next token from the source.
//
// The parser calls this repeatedly until it gets TokenEOF. Once the end of
// input is reached every further call returns TokenEOF again.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespaceAndComments()

	l.start = l.current
	l.startLine = l.line
	l.startLineStart = l.lineStart

	if l.isAtEnd() {
		return l.makeToken(TokenEOF, ""), nil
	}

	ch := l.advance()

	if isLetter(ch) {
		return l.scanIdentifier(), nil
	}

	if isDigit(ch) {
		return l.scanNumber(), nil
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "("), nil
	case ')':
		return l.makeToken(TokenRightParen, ")"), nil
	case '{':
		return l.makeToken(TokenLeftBrace, "{"), nil
	case '}':
		return l.makeToken(TokenRightBrace, "}"), nil
	case ';':
		return l.makeToken(TokenSemicolon, ";"), nil
	case ',':
		return l.makeToken(TokenComma, ","), nil
	case '.':
		return l.makeToken(TokenDot, "."), nil
	case '*':
		return l.makeToken(TokenStar, "*"), nil
	case '/':
		return l.makeToken(TokenSlash, "/"), nil

	case '+':
		if l.match('+') {
			return l.makeToken(TokenPlusPlus, "++"), nil
		}
		return l.makeToken(TokenPlus, "+"), nil

	case '-':
		if l.match('-') {
			return l.makeToken(TokenMinusMinus, "--"), nil
		}
		return l.makeToken(TokenMinus, "-"), nil

	case '&':
		if l.match('&') {
			return l.makeToken(TokenAnd, "&&"), nil
		}
		return l.makeToken(TokenInvalid, "&"), l.error("illegal character ignored: '&'")

	case '|':
		if l.match('|') {
			return l.makeToken(TokenOr, "||"), nil
		}
		return l.makeToken(TokenInvalid, "|"), l.error("illegal character ignored: '|'")

	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual, "=="), nil
		}
		return l.makeToken(TokenAssign, "="), nil

	case '!':
		if l.match('=') {
			return l.makeToken(TokenNotEqual, "!="), nil
		}
		return l.makeToken(TokenNot, "!"), nil

	case '<':
		if l.match('<') {
			return l.makeToken(TokenWrite, "<<"), nil
		} else if l.match('=') {
			return l.makeToken(TokenLessEqual, "<="), nil
		}
		return l.makeToken(TokenLess, "<"), nil

	case '>':
		if l.match('>') {
			return l.makeToken(TokenRead, ">>"), nil
		} else if l.match('=') {
			return l.makeToken(TokenGreaterEqual, ">="), nil
		}
		return l.makeToken(TokenGreater, ">"), nil

	case '"':
		return l.scanString()

	default:
		return l.makeToken(TokenInvalid, string(ch)),
			l.error(fmt.Sprintf("illegal character ignored: %q", ch))
	}
}

// All returns every token up to and including TokenEOF, together with all
// lexical errors encountered on the way.
func (l *Lexer) All() ([]Token, []error) {
	var (
		tokens []Token
		errs   []error
	)
	for {
		tok, err := l.NextToken()
		if err != nil {
			errs = append(errs, err)
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, errs
		}
	}
}

// advance reads and returns the next character, advancing the current
// position. Newlines update the line bookkeeping here, so that every path
// that consumes input keeps positions right.
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	if ch == '\n' {
		l.line++
		l.lineStart = l.current
	}
	return ch
}

// peek returns the current character without advancing.
// Returns 0 at end of file.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

// match consumes the current character if it is the expected one.
func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

// isAtEnd returns true if we've consumed all the source code.
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// skipWhitespaceAndComments skips blanks, newlines and line comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		switch ch := l.peek(); {
		case ch == ' ' || ch == '\r' || ch == '\t' || ch == '\f' || ch == '\n':
			l.advance()
		case ch == '#':
			l.skipLine()
		case ch == '/' && l.peekAt(1) == '/':
			l.skipLine()
		default:
			return
		}
	}
}

// skipLine consumes everything up to (not including) the next newline.
func (l *Lexer) skipLine() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// peekAt returns the byte n positions ahead of current, or 0.
// Only used for ASCII lookahead.
func (l *Lexer) peekAt(n int) byte {
	if l.current+n >= len(l.source) {
		return 0
	}
	return l.source[l.current+n]
}

// scanIdentifier scans an identifier or keyword.
//
// RULES:
// - Starts with a letter or underscore
// - Continues with letters, digits, or underscores
func (l *Lexer) scanIdentifier() Token {
	for !l.isAtEnd() {
		ch := l.peek()
		if !isLetter(ch) && !isDigit(ch) {
			break
		}
		l.advance()
	}

	text := l.source[l.start:l.current]
	return l.makeToken(LookupKeyword(text), text)
}

// scanNumber scans a decimal integer literal. Range checking happens in
// the parser, which warns and clamps values that do not fit.
func (l *Lexer) scanNumber() Token {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}
	return l.makeToken(TokenIntLit, l.source[l.start:l.current])
}

// scanString scans a string literal.
//
// C-- strings may contain the escapes \n \t \' \" \\ and may not span
// lines. The lexeme keeps the quotes and escapes as written.
func (l *Lexer) scanString() (Token, error) {
	badEscape := false
	for !l.isAtEnd() {
		ch := l.peek()

		if ch == '"' {
			l.advance()
			text := l.source[l.start:l.current]
			if badEscape {
				return l.makeToken(TokenInvalid, text),
					l.error("string literal with bad escaped character ignored")
			}
			return l.makeToken(TokenStringLit, text), nil
		}

		if ch == '\n' {
			break
		}

		l.advance()
		if ch == '\\' {
			switch l.peek() {
			case 'n', 't', '\'', '"', '\\':
				l.advance()
			default:
				badEscape = true
			}
		}
	}

	text := l.source[l.start:l.current]
	if badEscape {
		return l.makeToken(TokenInvalid, text),
			l.error("unterminated string literal with bad escaped character ignored")
	}
	return l.makeToken(TokenInvalid, text), l.error("unterminated string literal ignored")
}

// makeToken creates a token positioned at the start of the current lexeme.
func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.tokenPosition(),
		Length:   l.current - l.start,
	}
}

// tokenPosition returns the position of the start of the current token.
func (l *Lexer) tokenPosition() Position {
	return Position{
		Filename: l.filename,
		Line:     l.startLine,
		Column:   utf8.RuneCountInString(l.source[l.startLineStart:l.start]) + 1,
		Offset:   l.start,
	}
}

// Error is a lexical error. The lexer reports it and keeps scanning.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// error creates an error positioned at the current token.
func (l *Lexer) error(message string) error {
	return &Error{Pos: l.tokenPosition(), Msg: message}
}

// isLetter returns true if the rune is a letter or underscore.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit returns true if the rune is an ASCII decimal digit.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
