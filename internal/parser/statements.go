package parser

import (
	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/token"
)

// parseFunctionDefinition parses name = fun (formals) -> T { body }.
// Leaves curToken on the closing brace.
func (p *Parser) parseFunctionDefinition() *ast.FunctionDefinition {
	if !p.curTokenIs(token.IDENT) {
		p.fail(p.curToken, "expected function definition, found %s", describe(p.curToken))
	}
	fd := &ast.FunctionDefinition{Token: p.curToken, Name: p.identifier()}
	p.expectPeek(token.ASSIGN)
	p.expectPeek(token.FUN)
	p.expectPeek(token.LPAREN)
	fd.Signature = p.parseFunctionType(p.parseRecordType())
	p.expectPeek(token.LBRACE)
	fd.Body = p.parseBlockStatement()
	return fd
}

// parseBlockStatement expects curToken on '{' and leaves it on '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.fail(p.curToken, "expected '}', found end of file")
		}
		block.Statements = append(block.Statements, p.parseStatement())
		p.nextToken()
	}
	return block
}

// parseStatement leaves curToken on the statement's last token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.ARROW:
		return p.parseReturnStatement()
	case token.IDENT:
		if p.peekTokenIs(token.ASSIGN) {
			return p.parseVariableDefinition()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseVariableDefinition() *ast.VariableDefinition {
	vd := &ast.VariableDefinition{Token: p.curToken, Name: p.identifier()}
	p.nextToken() // '='
	p.nextToken()
	vd.Value = p.parseExpression(LOWEST)
	p.expectPeek(token.SEMICOLON)
	return vd
}

// parseExpressionStatement handles assignments and call statements.
func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.curToken
	expr := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.COLON_EQ) {
		p.nextToken()
		as := &ast.AssignStatement{Token: p.curToken, Target: expr}
		p.nextToken()
		as.Value = p.parseExpression(LOWEST)
		p.expectPeek(token.SEMICOLON)
		return as
	}
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		p.fail(p.peekToken, "expected ':=' or a call statement, found %s", describe(p.peekToken))
		return nil
	}
	p.expectPeek(token.SEMICOLON)
	return &ast.CallStatement{Token: start, Call: call}
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	fs := &ast.ForStatement{Token: p.curToken}
	p.expectPeek(token.IDENT)
	fs.Variable = p.identifier()
	p.expectPeek(token.IN)
	p.nextToken()
	fs.Iterable = p.parseExpression(LOWEST)
	p.expectPeek(token.LBRACE)
	fs.Body = p.parseBlockStatement()
	return fs
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	is := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	is.Condition = p.parseExpression(LOWEST)
	p.expectPeek(token.LBRACE)
	is.Consequence = p.parseBlockStatement()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.expectPeek(token.LBRACE)
		is.Alternative = p.parseBlockStatement()
	}
	return is
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	ws := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	ws.Condition = p.parseExpression(LOWEST)
	p.expectPeek(token.LBRACE)
	ws.Body = p.parseBlockStatement()
	return ws
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	rs := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return rs
	}
	p.nextToken()
	rs.Value = p.parseExpression(LOWEST)
	p.expectPeek(token.SEMICOLON)
	return rs
}

func (p *Parser) identifier() *ast.Identifier {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}
