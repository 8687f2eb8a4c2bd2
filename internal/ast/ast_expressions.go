package ast

import (
	"github.com/funvibe/tackc/internal/token"
)

// InfixExpression: left op right
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// PrefixExpression: -e or !e
type PrefixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// CallExpression: callee(args)
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// CastExpression: e : T. Implicit casts are spliced in by the type
// checker; they have no written TargetType.
type CastExpression struct {
	Token      token.Token // The ':' token, or the operand's token when implicit
	Value      Expression
	TargetType Type
	Implicit   bool
}

func (ce *CastExpression) expressionNode()       {}
func (ce *CastExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CastExpression) GetToken() token.Token { return ce.Token }

// FieldExpression: e.f
type FieldExpression struct {
	Token token.Token // The '.' token
	Base  Expression
	Field *Identifier
}

func (fe *FieldExpression) expressionNode()       {}
func (fe *FieldExpression) TokenLiteral() string  { return fe.Token.Lexeme }
func (fe *FieldExpression) GetToken() token.Token { return fe.Token }

// SubscriptExpression: e[i]
type SubscriptExpression struct {
	Token token.Token // The '[' token
	Base  Expression
	Index Expression
}

func (se *SubscriptExpression) expressionNode()       {}
func (se *SubscriptExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SubscriptExpression) GetToken() token.Token { return se.Token }

// ParenExpression: (e)
type ParenExpression struct {
	Token token.Token // The '(' token
	Inner Expression
}

func (pe *ParenExpression) expressionNode()       {}
func (pe *ParenExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *ParenExpression) GetToken() token.Token { return pe.Token }

// ArrayLiteral: [a, b, c]
type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// RecordLiteral: (a = 1, b = "x"). () is the empty record.
type RecordLiteral struct {
	Token  token.Token // The '(' token
	Fields []*FieldLiteral
}

func (rl *RecordLiteral) expressionNode()       {}
func (rl *RecordLiteral) TokenLiteral() string  { return rl.Token.Lexeme }
func (rl *RecordLiteral) GetToken() token.Token { return rl.Token }

// FieldLiteral is one "name = e" entry of a record literal.
type FieldLiteral struct {
	Token token.Token // The field name token
	Name  *Identifier
	Value Expression
}

func (fl *FieldLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FieldLiteral) GetToken() token.Token { return fl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) expressionNode()       {}
func (nl *NullLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NullLiteral) GetToken() token.Token { return nl.Token }

// StringLiteral keeps the source spelling (quotes and escapes) in Raw
// and the decoded text in Value.
type StringLiteral struct {
	Token token.Token
	Raw   string
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }
