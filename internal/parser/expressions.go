package parser

import (
	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.fail(p.curToken, "expression too complex")
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.fail(p.curToken, "expected expression, found %s", describe(p.curToken))
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return p.identifier()
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(int64)
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Raw: p.curToken.Lexeme, Value: value}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{Token: p.curToken, Operator: p.curToken.Lexeme, Left: left}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	// Left-associative: the right operand binds strictly tighter.
	expression.Right = p.parseExpression(precedence)
	return expression
}

// parseParenOrRecord handles "(e)", "()" and "(f = e, ...)".
func (p *Parser) parseParenOrRecord() ast.Expression {
	start := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.RecordLiteral{Token: start}
	}
	if p.peekTokenIs(token.IDENT) && p.stream.Peek(1).Type == token.ASSIGN {
		return p.parseRecordLiteral()
	}
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN)
	return &ast.ParenExpression{Token: start, Inner: inner}
}

func (p *Parser) parseRecordLiteral() ast.Expression {
	rl := &ast.RecordLiteral{Token: p.curToken}
	for {
		p.expectPeek(token.IDENT)
		fl := &ast.FieldLiteral{Token: p.curToken, Name: p.identifier()}
		p.expectPeek(token.ASSIGN)
		p.nextToken()
		fl.Value = p.parseExpression(LOWEST)
		rl.Fields = append(rl.Fields, fl)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.expectPeek(token.RPAREN)
	return rl
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	al := &ast.ArrayLiteral{Token: p.curToken}
	al.Elements = p.parseExpressionList(token.RBRACKET)
	return al
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Function: function}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	return call
}

// parseExpressionList parses comma separated expressions up to end,
// with curToken on the opening delimiter.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(end)
	return list
}

func (p *Parser) parseCastExpression(value ast.Expression) ast.Expression {
	cast := &ast.CastExpression{Token: p.curToken, Value: value}
	p.nextToken()
	cast.TargetType = p.parseType()
	return cast
}

func (p *Parser) parseFieldExpression(base ast.Expression) ast.Expression {
	fe := &ast.FieldExpression{Token: p.curToken, Base: base}
	p.expectPeek(token.IDENT)
	fe.Field = p.identifier()
	return fe
}

func (p *Parser) parseSubscriptExpression(base ast.Expression) ast.Expression {
	se := &ast.SubscriptExpression{Token: p.curToken, Base: base}
	p.nextToken()
	se.Index = p.parseExpression(LOWEST)
	p.expectPeek(token.RBRACKET)
	return se
}
