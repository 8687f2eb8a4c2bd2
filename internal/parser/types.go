package parser

import (
	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/token"
)

// parseType expects curToken on the first token of a type and leaves it
// on the last one.
func (p *Parser) parseType() ast.Type {
	switch p.curToken.Type {
	case token.BOOL, token.INT_T, token.STR_T, token.VOID_T:
		return &ast.PrimitiveType{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.LBRACKET:
		at := &ast.ArrayType{Token: p.curToken}
		p.nextToken()
		at.Element = p.parseType()
		p.expectPeek(token.RBRACKET)
		return at
	case token.LPAREN:
		rt := p.parseRecordType()
		if p.peekTokenIs(token.ARROW) {
			return p.parseFunctionType(rt)
		}
		return rt
	}
	p.fail(p.curToken, "expected type, found %s", describe(p.curToken))
	return nil
}

// parseRecordType expects curToken on '(' and leaves it on ')'.
func (p *Parser) parseRecordType() *ast.RecordType {
	rt := &ast.RecordType{Token: p.curToken}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return rt
	}
	for {
		p.expectPeek(token.IDENT)
		ft := &ast.FieldType{Token: p.curToken, Name: p.identifier()}
		p.expectPeek(token.COLON)
		p.nextToken()
		ft.Type = p.parseType()
		rt.Fields = append(rt.Fields, ft)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.expectPeek(token.RPAREN)
	return rt
}

// parseFunctionType continues after already parsed formals, with
// curToken on their ')'.
func (p *Parser) parseFunctionType(formals *ast.RecordType) *ast.FunctionType {
	ft := &ast.FunctionType{Token: formals.Token, Formals: formals}
	p.expectPeek(token.ARROW)
	p.nextToken()
	ft.ReturnType = p.parseType()
	return ft
}
