package irgen

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/ir"
	"github.com/funvibe/tackc/internal/typesystem"
)

func isRelational(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

// isJumping reports expressions whose natural lowering is a branch.
func isJumping(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.InfixExpression:
		return e.Operator == "&&" || e.Operator == "||" || isRelational(e.Operator)
	case *ast.PrefixExpression:
		return e.Operator == "!"
	}
	return false
}

// condition lowers a bool expression to jumps: control reaches t when
// it is true and f when it is false.
func (g *Generator) condition(e ast.Expression, t, f *ir.Label) {
	switch e := e.(type) {
	case *ast.InfixExpression:
		switch {
		case e.Operator == "||":
			rhs := g.newLabel()
			g.condition(e.Left, t, rhs)
			g.fn.PlaceLabel(rhs)
			g.condition(e.Right, t, f)
			return
		case e.Operator == "&&":
			rhs := g.newLabel()
			g.condition(e.Left, rhs, f)
			g.fn.PlaceLabel(rhs)
			g.condition(e.Right, t, f)
			return
		case isRelational(e.Operator):
			lhs := g.expression(e.Left)
			rhs := g.expression(e.Right)
			g.emit(ir.RelopJump(e.Token, e.Operator, lhs, rhs, t))
			g.emit(ir.Jump(e.Token, f))
			return
		}
	case *ast.PrefixExpression:
		if e.Operator == "!" {
			g.condition(e.Right, f, t)
			return
		}
	case *ast.BooleanLiteral:
		if e.Value {
			g.emit(ir.Jump(e.Token, t))
		} else {
			g.emit(ir.Jump(e.Token, f))
		}
		return
	case *ast.ParenExpression:
		g.condition(e.Inner, t, f)
		return
	}
	g.wrapValue(e, t, f)
}

// wrapValue branches on a bool that has to be computed first.
func (g *Generator) wrapValue(e ast.Expression, t, f *ir.Label) {
	g.expectBool(e)
	cond := g.expression(e)
	g.emit(ir.TrueJump(e.GetToken(), cond, t))
	g.emit(ir.Jump(e.GetToken(), f))
}

// wrapJumping materializes a branch as a bool temporary.
func (g *Generator) wrapJumping(e ast.Expression) ir.Address {
	g.expectBool(e)
	out := g.newTemp(typesystem.Bool)
	t := g.newLabel()
	f := g.newLabel()
	g.emit(ir.Copy(e.GetToken(), out, boolConstant(true)))
	g.condition(e, t, f)
	g.fn.PlaceLabel(f)
	g.emit(ir.Copy(e.GetToken(), out, boolConstant(false)))
	g.fn.PlaceLabel(t)
	return out
}

func (g *Generator) expectBool(e ast.Expression) {
	if t := g.typeOf(e); !typesystem.Equal(t, typesystem.Bool) {
		panic(fmt.Sprintf("irgen: branch on %s expression at %s", typesystem.TypeString(t), e.GetToken().Location()))
	}
}

// expression lowers e to a value and returns the address holding it. It
// returns nil only for calls to void functions.
func (g *Generator) expression(e ast.Expression) ir.Address {
	if isJumping(e) {
		return g.wrapJumping(e)
	}
	switch e := e.(type) {
	case *ast.InfixExpression:
		return g.arithmetic(e)

	case *ast.PrefixExpression:
		in := g.expression(e.Right)
		out := g.newTemp(g.typeOf(e))
		g.emit(ir.Prefix(e.Token, e.Operator, out, in))
		return out

	case *ast.CallExpression:
		return g.call(e)

	case *ast.CastExpression:
		t := g.typeOf(e)
		out := g.newTemp(t)
		in := g.expression(e.Value)
		g.emit(ir.Cast(e.Token, out, in, t))
		return out

	case *ast.FieldExpression:
		out := g.newTemp(g.typeOf(e))
		base := g.expression(e.Base)
		g.emit(ir.RecRead(e.Token, out, base, e.Field.Value))
		return out

	case *ast.SubscriptExpression:
		out := g.newTemp(g.typeOf(e))
		base := g.expression(e.Base)
		idx := g.expression(e.Index)
		g.emit(ir.ArrRead(e.Token, out, base, idx))
		return out

	case *ast.ParenExpression:
		return g.expression(e.Inner)

	case *ast.Identifier:
		return g.nameOf(e)

	case *ast.ArrayLiteral:
		return g.arrayLiteral(e)

	case *ast.RecordLiteral:
		return g.recordLiteral(e)

	case *ast.BooleanLiteral, *ast.IntegerLiteral, *ast.NullLiteral, *ast.StringLiteral:
		return ir.Constant(e, g.typeOf(e))
	}
	panic(fmt.Sprintf("irgen: unexpected expression %T", e))
}

func (g *Generator) arithmetic(e *ast.InfixExpression) ir.Address {
	lhs := g.expression(e.Left)
	rhs := g.expression(e.Right)
	out := g.newTemp(g.typeOf(e))
	if e.Operator == "+" && typesystem.Equal(g.typeOf(e.Left), typesystem.String) {
		g.emit(ir.Param(e.Left.GetToken(), lhs, 0, 2))
		g.emit(ir.Param(e.Right.GetToken(), rhs, 1, 2))
		g.emit(ir.Call(e.Token, out, g.intrinsic(config.AppendFuncName), 2))
		return out
	}
	g.emit(ir.Infix(e.Token, e.Operator, out, lhs, rhs))
	return out
}

func (g *Generator) call(e *ast.CallExpression) ir.Address {
	args := make([]ir.Address, len(e.Arguments))
	for i, arg := range e.Arguments {
		args[i] = g.expression(arg)
	}

	var out ir.Address
	if t := g.typeOf(e); !typesystem.Equal(t, typesystem.Void) {
		out = g.newTemp(t)
	}
	callee := g.resolved[e.Function]
	for i, arg := range e.Arguments {
		g.emit(ir.Param(arg.GetToken(), args[i], i, len(args)))
	}
	g.emit(ir.Call(e.Token, out, callee, len(args)))
	return out
}

// arrayLiteral allocates through newArray, then stores each element.
func (g *Generator) arrayLiteral(e *ast.ArrayLiteral) ir.Address {
	t := g.typeOf(e)
	elemSize := &ir.SizeofAddr{Of: t}
	length := intConstant(int64(len(e.Elements)))
	out := g.newTemp(t)
	g.emit(ir.Param(e.Token, elemSize, 0, 2))
	g.emit(ir.Param(e.Token, length, 1, 2))
	g.emit(ir.Call(e.Token, out, g.intrinsic(config.NewArrayFuncName), 2))
	for i, el := range e.Elements {
		val := g.expression(el)
		g.emit(ir.ArrWrite(el.GetToken(), out, intConstant(int64(i)), val))
	}
	return out
}

// recordLiteral allocates through newRecord, then stores each field.
func (g *Generator) recordLiteral(e *ast.RecordLiteral) ir.Address {
	t := g.typeOf(e)
	size := &ir.SizeofAddr{Of: t}
	out := g.newTemp(t)
	g.emit(ir.Param(e.Token, size, 0, 1))
	g.emit(ir.Call(e.Token, out, g.intrinsic(config.NewRecordFuncName), 1))
	for _, f := range e.Fields {
		val := g.expression(f.Value)
		g.emit(ir.RecWrite(f.Token, out, f.Name.Value, val))
	}
	return out
}
