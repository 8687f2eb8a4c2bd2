package ast

import (
	"github.com/funvibe/tackc/internal/token"
)

// PrimitiveType is one of bool, int, string, void.
type PrimitiveType struct {
	Token token.Token
	Name  string
}

func (pt *PrimitiveType) typeNode()             {}
func (pt *PrimitiveType) TokenLiteral() string  { return pt.Token.Lexeme }
func (pt *PrimitiveType) GetToken() token.Token { return pt.Token }

// ArrayType: [T]
type ArrayType struct {
	Token   token.Token // The '[' token
	Element Type
}

func (at *ArrayType) typeNode()             {}
func (at *ArrayType) TokenLiteral() string  { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token { return at.Token }

// RecordType: (a : int, b : string). Field order is significant.
type RecordType struct {
	Token  token.Token // The '(' token
	Fields []*FieldType
}

func (rt *RecordType) typeNode()             {}
func (rt *RecordType) TokenLiteral() string  { return rt.Token.Lexeme }
func (rt *RecordType) GetToken() token.Token { return rt.Token }

// FieldType is one "name : T" entry of a record type or formal list.
type FieldType struct {
	Token token.Token // The field name token
	Name  *Identifier
	Type  Type
}

func (ft *FieldType) TokenLiteral() string  { return ft.Token.Lexeme }
func (ft *FieldType) GetToken() token.Token { return ft.Token }

// FunctionType: (formals) -> T
type FunctionType struct {
	Token      token.Token // The '(' token of the formals
	Formals    *RecordType
	ReturnType Type
}

func (ft *FunctionType) typeNode()             {}
func (ft *FunctionType) TokenLiteral() string  { return ft.Token.Lexeme }
func (ft *FunctionType) GetToken() token.Token { return ft.Token }
