// Package parser implements a recursive descent parser for C--.
//
// PARSING STRATEGY:
// We use a combination of:
// 1. Recursive Descent for declarations and statements
// 2. Pratt Parsing (precedence climbing) for expressions
//
// GRAMMAR (informal):
//
//	program    = decl* EOF
//	decl       = varDecl | fnDecl | structDecl
//	varDecl    = type id ";" | "struct" id id ";"
//	fnDecl     = type id "(" [formal ("," formal)*] ")" block
//	formal     = type id
//	structDecl = "struct" id "{" varDecl+ "}" ";"
//	type       = "int" | "bool" | "void"
//	block      = "{" varDecl* stmt* "}"
//	stmt       = loc "=" exp ";" | loc "++" ";" | loc "--" ";"
//	           | "cin" ">>" loc ";" | "cout" "<<" exp ";"
//	           | "if" "(" exp ")" block ["else" block]
//	           | "while" "(" exp ")" block | "repeat" "(" exp ")" block
//	           | "return" [exp] ";" | id "(" [exp ("," exp)*] ")" ";"
//	loc        = id ("." id)*
//
// ERROR HANDLING STRATEGY:
//   - Report errors but continue parsing (find multiple errors in one pass)
//   - Use panic/recover for error recovery at statement and declaration
//     boundaries; no panic escapes ParseProgram
//   - Lexical errors are recorded and the offending characters skipped
//   - Nesting beyond the configured depth is a parse error, so hostile
//     input cannot exhaust the stack
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/hassan/cminus/internal/diag"
	"github.com/hassan/cminus/internal/lexer"
	"github.com/hassan/cminus/internal/parser/ast"
)

// DefaultMaxDepth bounds the nesting of blocks and expressions.
const DefaultMaxDepth = 512

// bailout is the panic value used to unwind to the nearest recovery point
// after an error has been recorded.
type bailout struct{}

// errTooDeep unwinds all the way to the declaration level.
var errTooDeep = errors.New("nesting too deep")

// Parser converts a stream of tokens into a syntax tree.
type Parser struct {
	// lexer is the source of tokens
	lexer *lexer.Lexer

	// current is the token we're currently examining
	current lexer.Token

	// previous is the last token we consumed (useful for error messages)
	previous lexer.Token

	// errors accumulates all lexical and parse errors as diag.Diagnostic
	// values
	errors []error

	// warnings holds non-fatal notes such as clamped integer literals
	warnings []diag.Diagnostic

	// panicMode tracks if we're in panic mode (recovering from an error)
	// During panic mode further errors are suppressed until we reach a
	// synchronization point.
	panicMode bool

	depth    int
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// New creates a new parser for the given lexer.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		lexer:    l,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Prime the parser by reading the first token
	p.advance()
	return p
}

// Parse parses source and returns the tree together with every lexical
// and syntax diagnostic.
func Parse(source, filename string, opts ...Option) (*ast.Program, *diag.List) {
	p := New(lexer.New(source, filename), opts...)
	prog, _ := p.ParseProgram(filename)
	list := diag.New()
	p.Report(list)
	return prog, list
}

// ParseProgram parses a complete source file.
//
// GRAMMAR:
//
//	program = decl* EOF
//
// The returned program is never nil. When errors are returned it holds the
// declarations that parsed cleanly.
func (p *Parser) ParseProgram(filename string) (*ast.Program, []error) {
	prog := &ast.Program{Filename: filename}

	for !p.isAtEnd() {
		if decl := p.parseDecl(); decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
	}

	return prog, p.errors
}

// Warnings returns the non-fatal notes recorded while parsing.
func (p *Parser) Warnings() []diag.Diagnostic {
	return p.warnings
}

// Report copies every error and warning into l.
func (p *Parser) Report(l *diag.List) {
	for _, err := range p.errors {
		var d diag.Diagnostic
		if errors.As(err, &d) {
			l.Fatal(d.Pos, d.Code, d.Message)
		}
	}
	for _, w := range p.warnings {
		l.Warn(w.Pos, w.Message)
	}
}

// Declarations

// parseDecl parses a top-level declaration.
//
// GRAMMAR:
//
//	decl = varDecl | fnDecl | structDecl
func (p *Parser) parseDecl() (decl ast.Decl) {
	start := p.current.Position.Offset
	defer func() {
		if r := recover(); r != nil {
			p.recoverFrom(r, start, true)
			decl = nil
		}
	}()

	switch p.current.Type {
	case lexer.TokenStruct:
		return p.parseStructOrVarDecl()

	case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid:
		typ := p.parseScalarType()
		name := p.parseIdent("expected identifier after type")
		if p.match(lexer.TokenLeftParen) {
			return p.parseFuncDecl(typ, name)
		}
		p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
		return &ast.VarDecl{Type: typ, Name: name}

	default:
		p.error(fmt.Sprintf("expected declaration, got %s", p.current.Type))
		panic(bailout{})
	}
}

// parseStructOrVarDecl parses a declaration that starts with "struct":
//
//	struct Point { int x; int y; };   (struct declaration)
//	struct Point p;                   (variable of struct type)
func (p *Parser) parseStructOrVarDecl() ast.Decl {
	structPos := p.current.Position
	p.advance()
	tag := p.parseIdent("expected struct name after 'struct'")

	if !p.match(lexer.TokenLeftBrace) {
		name := p.parseIdent("expected variable name after struct type")
		p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
		return &ast.VarDecl{
			Type: &ast.StructType{StructPos: structPos, Tag: tag},
			Name: name,
		}
	}

	decl := &ast.StructDecl{StructPos: structPos, Tag: tag}
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		decl.Fields = append(decl.Fields, p.parseVarDecl())
	}
	if len(decl.Fields) == 0 {
		p.errorAt(p.current.Position, diag.SyntaxError, "struct declaration must have at least one field")
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after struct fields")
	p.consume(lexer.TokenSemicolon, "expected ';' after struct declaration")
	return decl
}

// parseVarDecl parses a variable declaration inside a block or a struct
// body.
//
// GRAMMAR:
//
//	varDecl = type id ";" | "struct" id id ";"
func (p *Parser) parseVarDecl() *ast.VarDecl {
	var typ ast.TypeExpr
	if p.check(lexer.TokenStruct) {
		structPos := p.current.Position
		p.advance()
		tag := p.parseIdent("expected struct name after 'struct'")
		typ = &ast.StructType{StructPos: structPos, Tag: tag}
	} else {
		typ = p.parseScalarType()
	}

	name := p.parseIdent("expected variable name")
	if p.check(lexer.TokenLeftParen) {
		p.error("function declarations are only allowed at top level")
		panic(bailout{})
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
	return &ast.VarDecl{Type: typ, Name: name}
}

// parseFuncDecl parses the rest of a function declaration. The return type,
// the name and the '(' have been consumed.
//
// GRAMMAR:
//
//	fnDecl = type id "(" [formal ("," formal)*] ")" block
func (p *Parser) parseFuncDecl(typ ast.TypeExpr, name *ast.Ident) *ast.FuncDecl {
	params := make([]*ast.FormalDecl, 0)
	if !p.check(lexer.TokenRightParen) {
		for {
			if p.check(lexer.TokenStruct) {
				p.error("struct parameters are not supported")
				panic(bailout{})
			}
			ptyp := p.parseScalarType()
			pname := p.parseIdent("expected parameter name")
			params = append(params, &ast.FormalDecl{Type: ptyp, Name: pname})

			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	return &ast.FuncDecl{
		Type:   typ,
		Name:   name,
		Params: params,
		Body:   p.parseBlock(),
	}
}

// parseScalarType parses int, bool or void.
func (p *Parser) parseScalarType() ast.TypeExpr {
	pos := p.current.Position
	switch p.current.Type {
	case lexer.TokenInt:
		p.advance()
		return &ast.IntType{TypePos: pos}
	case lexer.TokenBool:
		p.advance()
		return &ast.BoolType{TypePos: pos}
	case lexer.TokenVoid:
		p.advance()
		return &ast.VoidType{TypePos: pos}
	default:
		p.error(fmt.Sprintf("expected type, got %s", p.current.Type))
		panic(bailout{})
	}
}

// Statements

// parseBlock parses a braced body.
//
// GRAMMAR:
//
//	block = "{" varDecl* stmt* "}"
func (p *Parser) parseBlock() *ast.Block {
	p.enter()
	defer p.leave()

	p.consume(lexer.TokenLeftBrace, "expected '{'")
	block := &ast.Block{LeftBrace: p.previous.Position}

	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		p.parseBlockItem(block)
	}

	p.consume(lexer.TokenRightBrace, "expected '}' after block")
	return block
}

// parseBlockItem parses one declaration or statement into block, recovering
// from syntax errors at statement boundaries.
func (p *Parser) parseBlockItem(block *ast.Block) {
	start := p.current.Position.Offset
	defer func() {
		if r := recover(); r != nil {
			p.recoverFrom(r, start, false)
		}
	}()

	if p.current.Type.IsType() {
		if len(block.Stmts) > 0 {
			p.errorAt(p.current.Position, diag.SyntaxError, "declarations must precede statements")
		}
		block.Decls = append(block.Decls, p.parseVarDecl())
		return
	}
	block.Stmts = append(block.Stmts, p.parseStmt())
}

// parseStmt parses a single statement.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.current.Type {
	case lexer.TokenCin:
		pos := p.current.Position
		p.advance()
		p.consume(lexer.TokenRead, "expected '>>' after 'cin'")
		loc := p.parseLocation()
		p.consume(lexer.TokenSemicolon, "expected ';' after read statement")
		return &ast.ReadStmt{CinPos: pos, X: loc}

	case lexer.TokenCout:
		pos := p.current.Position
		p.advance()
		p.consume(lexer.TokenWrite, "expected '<<' after 'cout'")
		x := p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after write statement")
		return &ast.WriteStmt{CoutPos: pos, X: x}

	case lexer.TokenIf:
		return p.parseIfStmt()

	case lexer.TokenWhile:
		pos := p.current.Position
		p.advance()
		cond := p.parseCondition("while")
		return &ast.WhileStmt{WhilePos: pos, Cond: cond, Body: p.parseBlock()}

	case lexer.TokenRepeat:
		pos := p.current.Position
		p.advance()
		count := p.parseCondition("repeat")
		return &ast.RepeatStmt{RepeatPos: pos, Count: count, Body: p.parseBlock()}

	case lexer.TokenReturn:
		pos := p.current.Position
		p.advance()
		if p.match(lexer.TokenSemicolon) {
			return &ast.ReturnStmt{ReturnPos: pos}
		}
		x := p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after return value")
		return &ast.ReturnStmt{ReturnPos: pos, Result: x}

	case lexer.TokenIdentifier:
		return p.parseSimpleStmt()

	default:
		p.error(fmt.Sprintf("expected statement, got %s", p.current.Type))
		panic(bailout{})
	}
}

// parseIfStmt parses if and if/else statements.
//
// GRAMMAR:
//
//	ifStmt = "if" "(" exp ")" block ["else" block]
func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.current.Position
	p.advance()
	cond := p.parseCondition("if")
	then := p.parseBlock()

	if p.match(lexer.TokenElse) {
		return &ast.IfElseStmt{IfPos: pos, Cond: cond, Then: then, Else: p.parseBlock()}
	}
	return &ast.IfStmt{IfPos: pos, Cond: cond, Body: then}
}

// parseCondition parses the parenthesized expression after if, while and
// repeat.
func (p *Parser) parseCondition(keyword string) ast.Expr {
	p.consume(lexer.TokenLeftParen, fmt.Sprintf("expected '(' after '%s'", keyword))
	x := p.parseExpression()
	p.consume(lexer.TokenRightParen, fmt.Sprintf("expected ')' after '%s' condition", keyword))
	return x
}

// parseSimpleStmt parses the statements that start with an identifier:
// assignment, increment, decrement and call.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	x := p.parseExpression()

	switch {
	case p.match(lexer.TokenPlusPlus):
		p.requireLocation(x, "'++'")
		p.consume(lexer.TokenSemicolon, "expected ';' after '++'")
		return &ast.IncStmt{X: x}
	case p.match(lexer.TokenMinusMinus):
		p.requireLocation(x, "'--'")
		p.consume(lexer.TokenSemicolon, "expected ';' after '--'")
		return &ast.DecStmt{X: x}
	}

	switch x := x.(type) {
	case *ast.AssignExpr:
		p.consume(lexer.TokenSemicolon, "expected ';' after assignment")
		return &ast.AssignStmt{Assign: x}
	case *ast.CallExpr:
		p.consume(lexer.TokenSemicolon, "expected ';' after call")
		return &ast.CallStmt{Call: x}
	}

	p.error("expected assignment, call, '++' or '--'")
	panic(bailout{})
}

// parseLocation parses id ("." id)*.
func (p *Parser) parseLocation() ast.Expr {
	var x ast.Expr = p.parseIdent("expected identifier")
	for p.match(lexer.TokenDot) {
		sel := p.parseIdent("expected field name after '.'")
		x = &ast.DotAccessExpr{X: x, Sel: sel}
	}
	return x
}

func (p *Parser) requireLocation(x ast.Expr, what string) {
	if !isLocation(x) {
		p.error(fmt.Sprintf("operand of %s must be a variable or field", what))
		panic(bailout{})
	}
}

// isLocation reports whether x can be assigned to: an identifier or a
// field access.
func isLocation(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Ident, *ast.DotAccessExpr:
		return true
	default:
		return false
	}
}

// Expressions

func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecAssignment)
}

// parsePrecedence parses an expression with at least the given precedence.
//
// This is the core of Pratt parsing.
func (p *Parser) parsePrecedence(precedence Precedence) ast.Expr {
	p.enter()
	defer p.leave()

	left := p.parsePrefix()

	for precedence <= getPrecedence(p.current.Type) {
		left = p.parseInfix(left)
	}

	return left
}

// parsePrefix parses an expression that starts with the current token.
//
// PREFIX EXPRESSIONS:
//   - Literals: 42, "hello", true
//   - Identifiers: foo
//   - Unary operators: -x, !flag
//   - Grouping: (exp)
func (p *Parser) parsePrefix() ast.Expr {
	tok := p.current
	switch tok.Type {
	case lexer.TokenIntLit:
		p.advance()
		return p.parseIntLit(tok)

	case lexer.TokenStringLit:
		p.advance()
		return &ast.StringLit{ValuePos: tok.Position, Value: tok.Lexeme}

	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.BoolLit{ValuePos: tok.Position, Value: tok.Type == lexer.TokenTrue}

	case lexer.TokenIdentifier:
		p.advance()
		return ast.NewIdent(tok.Lexeme, tok.Position)

	case lexer.TokenLeftParen:
		p.advance()
		x := p.parseExpression()
		p.consume(lexer.TokenRightParen, "expected ')' after expression")
		return x

	case lexer.TokenMinus, lexer.TokenNot:
		p.advance()
		return &ast.UnaryExpr{Operator: tok, X: p.parsePrecedence(PrecUnary)}

	default:
		p.error(fmt.Sprintf("expected expression, got %s", tok.Type))
		panic(bailout{})
	}
}

// parseIntLit converts an integer literal. Values that do not fit in 32
// bits produce a warning and are clamped to the maximum.
func (p *Parser) parseIntLit(tok lexer.Token) ast.Expr {
	v, err := strconv.ParseInt(tok.Lexeme, 10, 32)
	if err != nil {
		p.warnings = append(p.warnings, diag.Diagnostic{
			Pos:      tok.Position,
			Severity: diag.Warning,
			Message:  "integer literal too large; using max value",
		})
		v = math.MaxInt32
	}
	return &ast.IntLit{ValuePos: tok.Position, Value: int32(v)}
}

// parseInfix parses an operator that continues left.
func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.current.Type {
	case lexer.TokenAssign:
		return p.parseAssignment(left)
	case lexer.TokenDot:
		return p.parseDot(left)
	case lexer.TokenLeftParen:
		return p.parseCall(left)
	default:
		return p.parseBinary(left)
	}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	operator := p.current
	precedence := getPrecedence(operator.Type)
	p.advance()

	right := p.parsePrecedence(precedence + 1)

	if isNonAssociative(operator.Type) && isNonAssociative(p.current.Type) {
		p.error(fmt.Sprintf("operator %s cannot follow %s without parentheses",
			p.current.Lexeme, operator.Lexeme))
		panic(bailout{})
	}

	return &ast.BinaryExpr{X: left, Operator: operator, Y: right}
}

func (p *Parser) parseAssignment(left ast.Expr) ast.Expr {
	if !isLocation(left) {
		p.error("invalid assignment target")
		panic(bailout{})
	}
	p.advance()

	// Assignment is right-associative
	right := p.parsePrecedence(PrecAssignment)
	return &ast.AssignExpr{Lhs: left, Rhs: right}
}

func (p *Parser) parseDot(left ast.Expr) ast.Expr {
	if !isLocation(left) {
		p.error("field access requires a variable or field")
		panic(bailout{})
	}
	p.advance()

	sel := p.parseIdent("expected field name after '.'")
	return &ast.DotAccessExpr{X: left, Sel: sel}
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	fun, ok := left.(*ast.Ident)
	if !ok {
		p.error("only named functions can be called")
		panic(bailout{})
	}
	p.advance()

	args := make([]ast.Expr, 0)
	if !p.check(lexer.TokenRightParen) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after arguments")

	return &ast.CallExpr{Fun: fun, Args: args}
}

// Helper methods

func (p *Parser) parseIdent(message string) *ast.Ident {
	if !p.check(lexer.TokenIdentifier) {
		p.error(message)
		panic(bailout{})
	}
	id := ast.NewIdent(p.current.Lexeme, p.current.Position)
	p.advance()
	return id
}

// advance moves to the next valid token. Lexical errors are recorded and
// the invalid tokens skipped.
func (p *Parser) advance() {
	p.previous = p.current
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			var lexErr *lexer.Error
			if errors.As(err, &lexErr) {
				p.errorAt(lexErr.Pos, diag.SyntaxError, lexErr.Msg)
			} else {
				p.errorAt(tok.Position, diag.SyntaxError, err.Error())
			}
		}
		if tok.Type != lexer.TokenInvalid {
			p.current = tok
			return
		}
	}
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) {
	if p.check(tokenType) {
		p.advance()
		return
	}
	p.error(message)
	panic(bailout{})
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// enter and leave bracket every recursive construct.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.errorAt(p.current.Position, diag.NestingTooDeep, "")
		panic(errTooDeep)
	}
}

func (p *Parser) leave() {
	p.depth--
}

// error records a syntax error at the current token and enters panic mode.
// Callers panic right after.
func (p *Parser) error(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errorAt(p.current.Position, diag.SyntaxError, message)
}

// errorAt records an error without entering panic mode.
func (p *Parser) errorAt(pos lexer.Position, code diag.Code, message string) {
	if message == "" {
		message = code.Message()
	}
	p.errors = append(p.errors, diag.Diagnostic{
		Pos:      pos,
		Severity: diag.Error,
		Code:     code,
		Message:  message,
	})
}

// recoverFrom handles a recovered panic value. Statement-level recovery
// passes errTooDeep on to the declaration level. start is the offset of the
// token the failed construct began at; if nothing was consumed since, one
// token is skipped so that parsing always makes progress.
func (p *Parser) recoverFrom(r interface{}, start int, topLevel bool) {
	switch r {
	case bailout{}:
	case errTooDeep:
		if !topLevel {
			panic(r)
		}
		p.depth = 0
	default:
		panic(r)
	}

	if p.current.Position.Offset == start && !p.isAtEnd() {
		p.advance()
	}
	p.synchronize()
}

// synchronize skips tokens until a likely declaration or statement
// boundary.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.isAtEnd() {
		// Semicolon marks the end of a statement
		if p.previous.Type == lexer.TokenSemicolon {
			return
		}

		// These tokens start new declarations or statements
		switch p.current.Type {
		case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStruct,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenRepeat, lexer.TokenReturn,
			lexer.TokenCin, lexer.TokenCout, lexer.TokenRightBrace:
			return
		}

		p.advance()
	}
}
