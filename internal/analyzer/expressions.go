package analyzer

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/typesystem"
)

// inferExpression types expr and records the result in TypeMap.
func (c *Checker) inferExpression(expr ast.Expression) typesystem.Type {
	t := c.infer(expr)
	c.TypeMap[expr] = t
	return t
}

// value types expr where its result is consumed. A void call has no
// value, so it is reported and treated as unresolved from here on.
func (c *Checker) value(expr ast.Expression) typesystem.Type {
	t := c.inferExpression(expr)
	if typesystem.IsVoid(t) {
		c.addError(diagnostics.ErrT003, startToken(expr), "Cannot use void value")
		return nil
	}
	return t
}

func (c *Checker) infer(expr ast.Expression) typesystem.Type {
	switch e := expr.(type) {
	case *ast.InfixExpression:
		return c.inferInfix(e)

	case *ast.PrefixExpression:
		t := c.value(e.Right)
		if e.Operator == "!" {
			c.expectBool(e.Right, t)
			return typesystem.Bool
		}
		c.expectInt(e.Right, t)
		return typesystem.Int

	case *ast.CallExpression:
		return c.inferCall(e)

	case *ast.CastExpression:
		from := c.value(e.Value)
		if e.Implicit {
			return c.TypeMap[e]
		}
		to := BuildType(e.TargetType)
		if !typesystem.IsCastable(from, to) {
			c.addError(diagnostics.ErrT005, startToken(e), "Cannot cast from type '%s' to type '%s'",
				typesystem.TypeString(from), typesystem.TypeString(to))
		}
		return to

	case *ast.FieldExpression:
		base := c.value(e.Base)
		if !typesystem.IsKnown(base) {
			return nil
		}
		rec, ok := base.(typesystem.TRecord)
		if !ok {
			c.addError(diagnostics.ErrT007, startToken(e), "Base of field expression must be record")
			return nil
		}
		idx, t := rec.Field(e.Field.Value)
		if idx < 0 {
			c.addError(diagnostics.ErrT001, e.Field.Token, "Unknown field '%s'", e.Field.Value)
			return nil
		}
		return t

	case *ast.SubscriptExpression:
		base := c.value(e.Base)
		c.expectInt(e.Index, c.value(e.Index))
		if !typesystem.IsKnown(base) {
			return nil
		}
		arr, ok := base.(typesystem.TArray)
		if !ok {
			c.addError(diagnostics.ErrT007, startToken(e), "Base of subscript must be array")
			return nil
		}
		return arr.Elem

	case *ast.Identifier:
		sym := c.lookup(e, symbols.VariableSymbol)
		if sym == nil {
			return nil
		}
		return sym.Type

	case *ast.ParenExpression:
		return c.value(e.Inner)

	case *ast.ArrayLiteral:
		return c.inferArray(e)

	case *ast.RecordLiteral:
		return c.inferRecord(e)

	case *ast.BooleanLiteral:
		return typesystem.Bool
	case *ast.IntegerLiteral:
		return typesystem.Int
	case *ast.NullLiteral:
		return typesystem.Null
	case *ast.StringLiteral:
		return typesystem.String
	}
	panic(fmt.Sprintf("analyzer: unexpected expression %T", expr))
}

// lookup binds a use of an identifier. Variables and functions live in
// one namespace, so finding the wrong kind is its own error.
func (c *Checker) lookup(id *ast.Identifier, kind symbols.SymbolKind) *symbols.Symbol {
	sym, ok := c.table.Resolve(id.Value)
	noun := "variable"
	if kind == symbols.FunctionSymbol {
		noun = "function"
	}
	if !ok {
		c.addError(diagnostics.ErrT001, id.Token, "Unknown %s '%s'", noun, id.Value)
		return nil
	}
	if sym.Kind != kind {
		c.addError(diagnostics.ErrT007, id.Token, "%s name expected", capitalize(noun))
		return nil
	}
	c.resolved[id] = sym
	return sym
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func (c *Checker) inferInfix(e *ast.InfixExpression) typesystem.Type {
	lhs := c.value(e.Left)
	rhs := c.value(e.Right)
	switch e.Operator {
	case "||", "&&":
		c.expectBool(e.Left, lhs)
		c.expectBool(e.Right, rhs)
		return typesystem.Bool

	case "==", "!=":
		if typesystem.Same(lhs, rhs) {
			return typesystem.Bool
		}
		if (typesystem.IsNull(lhs) || typesystem.IsRecord(lhs)) && typesystem.IsCastable(lhs, rhs) {
			return typesystem.Bool
		}
		c.addError(diagnostics.ErrT003, startToken(e), "Cannot compare '%s' and '%s'",
			typesystem.TypeString(lhs), typesystem.TypeString(rhs))
		return typesystem.Bool

	case "<", "<=", ">", ">=":
		c.expectInt(e.Left, lhs)
		c.expectInt(e.Right, rhs)
		return typesystem.Bool

	case "+":
		if typesystem.Same(lhs, typesystem.String) || typesystem.Same(rhs, typesystem.String) {
			e.Left = c.stringOperand(e.Left, lhs)
			e.Right = c.stringOperand(e.Right, rhs)
			return typesystem.String
		}
		c.expectInt(e.Left, lhs)
		c.expectInt(e.Right, rhs)
		return typesystem.Int

	case "-", "*", "/", "%":
		c.expectInt(e.Left, lhs)
		c.expectInt(e.Right, rhs)
		return typesystem.Int
	}
	panic("analyzer: unexpected operator " + e.Operator)
}

// stringOperand converts one side of a string concatenation.
func (c *Checker) stringOperand(expr ast.Expression, t typesystem.Type) ast.Expression {
	if typesystem.Same(t, typesystem.String) {
		return expr
	}
	if typesystem.IsCastable(t, typesystem.String) {
		return c.implicitCast(expr, typesystem.String)
	}
	c.addError(diagnostics.ErrT005, startToken(expr), "Cannot convert from type '%s' to type 'string'",
		typesystem.TypeString(t))
	return expr
}

func (c *Checker) inferCall(e *ast.CallExpression) typesystem.Type {
	var callee *symbols.Symbol
	if id, ok := e.Function.(*ast.Identifier); ok {
		callee = c.lookup(id, symbols.FunctionSymbol)
	} else {
		c.addError(diagnostics.ErrT007, startToken(e), "Function name must be simple identifier")
	}

	actuals := make([]typesystem.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		actuals[i] = c.value(arg)
	}
	if callee == nil {
		return nil
	}
	c.TypeMap[e.Function] = callee.Type

	ft, _ := callee.FuncType()
	formals := ft.Formals.Fields
	if len(formals) != len(actuals) {
		c.addError(diagnostics.ErrT004, startToken(e), "Function '%s' has %d formals, but there are %d actuals",
			callee.Name, len(formals), len(actuals))
		return ft.Return
	}
	for i, f := range formals {
		arg, ok := c.coerce(e.Arguments[i], actuals[i], f.Type)
		if !ok && c.acceptsAnyArray(callee, actuals[i]) {
			ok = true
		}
		if !ok {
			c.addError(diagnostics.ErrT003, startToken(e.Arguments[i]), "Formal '%s' of function '%s' expects '%s', found '%s' instead",
				f.Name, callee.Name, typesystem.TypeString(f.Type), typesystem.TypeString(actuals[i]))
		}
		e.Arguments[i] = arg
	}
	return ft.Return
}

// acceptsAnyArray reports the one polymorphic intrinsic: size takes an
// array of any element type.
func (c *Checker) acceptsAnyArray(callee *symbols.Symbol, actual typesystem.Type) bool {
	if !callee.Intrinsic || callee.Name != config.SizeFuncName {
		return false
	}
	_, ok := actual.(typesystem.TArray)
	return ok
}

// inferArray takes the element type from the first resolved element. An
// empty literal has an unresolved element type.
func (c *Checker) inferArray(e *ast.ArrayLiteral) typesystem.Type {
	var elem typesystem.Type
	for _, el := range e.Elements {
		t := c.value(el)
		switch {
		case !typesystem.IsKnown(t):
			c.addError(diagnostics.ErrT002, startToken(el), "Could not resolve array element type")
		case elem == nil:
			elem = t
		case !typesystem.Same(t, elem):
			c.addError(diagnostics.ErrT003, startToken(el), "Expected element of type '%s', found '%s'",
				typesystem.TypeString(elem), typesystem.TypeString(t))
		}
	}
	return typesystem.TArray{Elem: elem}
}

func (c *Checker) inferRecord(e *ast.RecordLiteral) typesystem.Type {
	rec := typesystem.TRecord{Fields: make([]typesystem.Field, 0, len(e.Fields))}
	known := true
	for _, f := range e.Fields {
		t := c.value(f.Value)
		if sym := c.resolved[f]; sym != nil {
			sym.Type = t
		}
		if !typesystem.IsKnown(t) {
			c.addError(diagnostics.ErrT002, f.Name.Token, "Could not resolve type for field '%s'", f.Name.Value)
			known = false
		}
		rec.Fields = append(rec.Fields, typesystem.Field{Name: f.Name.Value, Type: t})
	}
	if !known {
		return nil
	}
	return rec
}
