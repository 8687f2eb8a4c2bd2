package ast

import (
	"github.com/funvibe/tackc/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenProvider
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Type is a Node that represents a written type.
type Type interface {
	Node
	typeNode()
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File      string // Source file path
	Functions []*FunctionDefinition
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if len(p.Functions) > 0 {
		return p.Functions[0].Token
	}
	return token.Token{File: p.File}
}

// FunctionDefinition represents a top-level function.
// add = fun (a : int, b : int) -> int { -> a + b; }
type FunctionDefinition struct {
	Token     token.Token // The name token
	Name      *Identifier
	Signature *FunctionType
	Body      *BlockStatement
}

func (fd *FunctionDefinition) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDefinition) GetToken() token.Token { return fd.Token }

// Identifier names a variable, function or field depending on context.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }
