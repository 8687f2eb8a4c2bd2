// Package ir holds the three-address intermediate representation produced
// from a checked syntax tree, one instruction list per function.
package ir

import (
	"strconv"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/typesystem"
)

// Address is an instruction operand.
type Address interface {
	String() string
	Type() typesystem.Type
	addressNode()
}

// Label is a jump target. It has no type.
type Label struct {
	Name string
}

func (l *Label) String() string        { return l.Name }
func (l *Label) Type() typesystem.Type { panic("ir: label has no type") }
func (l *Label) addressNode()          {}

// NameAddr is the storage of a variable.
type NameAddr struct {
	Name   string
	Symbol *symbols.Symbol
}

func (n *NameAddr) String() string        { return n.Name }
func (n *NameAddr) Type() typesystem.Type { return n.Symbol.Type }
func (n *NameAddr) addressNode()          {}

// TempAddr is a compiler temporary.
type TempAddr struct {
	Name string
	T    typesystem.Type
}

func (t *TempAddr) String() string        { return t.Name }
func (t *TempAddr) Type() typesystem.Type { return t.T }
func (t *TempAddr) addressNode()          {}

// ConstantAddr wraps a bool, int, null or string literal.
type ConstantAddr struct {
	Literal ast.Expression
	T       typesystem.Type
}

func (c *ConstantAddr) String() string {
	switch lit := c.Literal.(type) {
	case *ast.BooleanLiteral:
		return strconv.FormatBool(lit.Value)
	case *ast.IntegerLiteral:
		return strconv.FormatInt(lit.Value, 10)
	case *ast.NullLiteral:
		return "null"
	case *ast.StringLiteral:
		return lit.Raw
	}
	panic("ir: constant is not a literal")
}
func (c *ConstantAddr) Type() typesystem.Type { return c.T }
func (c *ConstantAddr) addressNode()          {}

// SizeofAddr is the allocation size the runtime needs for a type.
type SizeofAddr struct {
	Of typesystem.Type
}

func (s *SizeofAddr) String() string        { return "sizeof(" + typesystem.TypeString(s.Of) + ")" }
func (s *SizeofAddr) Type() typesystem.Type { return typesystem.Int }
func (s *SizeofAddr) addressNode()          {}

// Size is the element slot size for arrays and the field area for records.
func (s *SizeofAddr) Size() int64 {
	if rec, ok := s.Of.(typesystem.TRecord); ok {
		return int64(config.SlotSize * len(rec.Fields))
	}
	return config.SlotSize
}

// Slot returns the frame slot name of a, for names and temporaries.
func Slot(a Address) (string, bool) {
	switch a := a.(type) {
	case *NameAddr:
		return a.Name, true
	case *TempAddr:
		return a.Name, true
	}
	return "", false
}

// Constant returns a constant operand for a literal expression.
func Constant(lit ast.Expression, t typesystem.Type) *ConstantAddr {
	switch lit.(type) {
	case *ast.BooleanLiteral, *ast.IntegerLiteral, *ast.NullLiteral, *ast.StringLiteral:
		return &ConstantAddr{Literal: lit, T: t}
	}
	panic("ir: constant is not a literal")
}
