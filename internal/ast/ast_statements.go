package ast

import (
	"github.com/funvibe/tackc/internal/token"
)

// VariableDefinition: x = e;
type VariableDefinition struct {
	Token token.Token // The name token
	Name  *Identifier
	Value Expression
}

func (vd *VariableDefinition) statementNode()        {}
func (vd *VariableDefinition) TokenLiteral() string  { return vd.Token.Lexeme }
func (vd *VariableDefinition) GetToken() token.Token { return vd.Token }

// AssignStatement: lhs := e;
type AssignStatement struct {
	Token  token.Token // The ':=' token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()        {}
func (as *AssignStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token { return as.Token }

// BlockStatement: { stmts }
type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// CallStatement: f(args);
type CallStatement struct {
	Token token.Token
	Call  *CallExpression
}

func (cs *CallStatement) statementNode()        {}
func (cs *CallStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *CallStatement) GetToken() token.Token { return cs.Token }

// ForStatement: for x in e { body }
type ForStatement struct {
	Token    token.Token // The 'for' token
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// IfStatement: if e { } else { }. Alternative is nil without else.
type IfStatement struct {
	Token       token.Token // The 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// ReturnStatement: -> e; or ->;
type ReturnStatement struct {
	Token token.Token // The '->' token
	Value Expression  // nil for a valueless return
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// WhileStatement: while e { body }
type WhileStatement struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }
