package parser

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/pipeline"
	"github.com/funvibe/tackc/internal/token"
)

// MaxRecursionDepth bounds expression nesting.
const MaxRecursionDepth = 1000

const (
	_ int = iota
	LOWEST
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	POSTFIX     // f(x) x : T x.f x[i]
)

var precedences = map[token.TokenType]int{
	token.OR:       LOGIC_OR,
	token.AND:      LOGIC_AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GT:       LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   POSTFIX,
	token.COLON:    POSTFIX,
	token.DOT:      POSTFIX,
	token.LBRACKET: POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// bailout unwinds the parser after the first syntax error.
type bailout struct{}

type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token
	depth     int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NULL:     p.parseNullLiteral,
		token.MINUS:    p.parsePrefixExpression,
		token.BANG:     p.parsePrefixExpression,
		token.LPAREN:   p.parseParenOrRecord,
		token.LBRACKET: p.parseArrayLiteral,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.LPAREN:   p.parseCallExpression,
		token.COLON:    p.parseCastExpression,
		token.DOT:      p.parseFieldExpression,
		token.LBRACKET: p.parseSubscriptExpression,
	}
	for _, tt := range []token.TokenType{
		token.OR, token.AND, token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE,
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
	} {
		p.infixParseFns[tt] = p.parseInfixExpression
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances if the next token has type t and fails otherwise.
func (p *Parser) expectPeek(t token.TokenType) {
	if !p.peekTokenIs(t) {
		p.fail(p.peekToken, "expected %s, found %s", describeType(t), describe(p.peekToken))
	}
	p.nextToken()
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// fail records a syntax error at tok and unwinds to ParseProgram.
func (p *Parser) fail(tok token.Token, format string, args ...interface{}) {
	code := diagnostics.ErrP001
	msg := fmt.Sprintf(format, args...)
	if tok.Type == token.ILLEGAL {
		code = diagnostics.ErrP003
		msg = describeIllegal(tok)
	}
	p.ctx.Diagnostics.Report(diagnostics.NewError(code, tok, "Syntax error: "+msg))
	panic(bailout{})
}

// ParseProgram parses a whole translation unit. It returns nil after a
// syntax error, which is already reported.
func (p *Parser) ParseProgram() (program *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			program = nil
		}
	}()

	program = &ast.Program{File: p.ctx.FilePath}
	for !p.curTokenIs(token.EOF) {
		program.Functions = append(program.Functions, p.parseFunctionDefinition())
		p.nextToken()
	}
	return program
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.ILLEGAL:
		return describeIllegal(tok)
	}
	return "'" + tok.Lexeme + "'"
}

func describeIllegal(tok token.Token) string {
	if msg, ok := tok.Literal.(string); ok && msg != tok.Lexeme {
		return msg
	}
	return fmt.Sprintf("illegal character '%s'", tok.Lexeme)
}

func describeType(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.EOF:
		return "end of file"
	case token.FUN:
		return "'fun'"
	case token.IN:
		return "'in'"
	}
	return "'" + string(t) + "'"
}
