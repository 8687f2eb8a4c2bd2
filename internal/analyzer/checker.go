package analyzer

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/token"
	"github.com/funvibe/tackc/internal/typesystem"
)

// Checker assigns a type to every expression, validates statements and
// splices in implicit casts where a subtype is used for its supertype.
// A nil type means "unknown" and silences checks that depend on it.
type Checker struct {
	table    *symbols.SymbolTable
	diags    *diagnostics.Collector
	scopes   map[ast.Node]*symbols.Scope
	resolved map[ast.Node]*symbols.Symbol
	function *symbols.Symbol

	TypeMap map[ast.Node]typesystem.Type
}

// NewChecker walks the scope tree recorded in scopes. Uses of identifiers
// are added to resolved next to the declarations.
func NewChecker(global *symbols.Scope, scopes map[ast.Node]*symbols.Scope, resolved map[ast.Node]*symbols.Symbol, diags *diagnostics.Collector) *Checker {
	return &Checker{
		table:    symbols.NewSymbolTable(global),
		diags:    diags,
		scopes:   scopes,
		resolved: resolved,
		TypeMap:  make(map[ast.Node]typesystem.Type),
	}
}

func (c *Checker) Check(program *ast.Program) {
	for _, fd := range program.Functions {
		if c.diags.Aborted() {
			return
		}
		c.checkFunction(fd)
	}
	if !c.table.Balanced() {
		panic("analyzer: scope stack not balanced after type checking")
	}
}

func (c *Checker) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	c.diags.Report(diagnostics.NewError(code, tok, fmt.Sprintf(format, args...)))
}

func (c *Checker) checkFunction(fd *ast.FunctionDefinition) {
	c.function = c.resolved[fd]
	scope := c.scopes[fd]
	c.table.Push(scope)
	c.checkBlock(fd.Body)
	c.table.Pop(scope)
	c.function = nil
}

func (c *Checker) checkBlock(b *ast.BlockStatement) {
	scope, ok := c.scopes[b]
	if ok {
		c.table.Push(scope)
	}
	for _, stmt := range b.Statements {
		if c.diags.Aborted() {
			break
		}
		c.checkStatement(stmt)
	}
	if ok {
		c.table.Pop(scope)
	}
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDefinition:
		t := c.inferExpression(s.Value)
		switch {
		case typesystem.IsVoid(t):
			c.addError(diagnostics.ErrT003, startToken(s.Value), "Cannot use void value")
			t = nil
		case !typesystem.IsKnown(t):
			c.addError(diagnostics.ErrT002, s.Token, "Could not resolve type for variable '%s'", s.Name.Value)
		}
		c.resolved[s].Type = t

	case *ast.AssignStatement:
		lhs := c.value(s.Target)
		rhs := c.value(s.Value)
		switch s.Target.(type) {
		case *ast.Identifier, *ast.SubscriptExpression, *ast.FieldExpression:
			value, ok := c.coerce(s.Value, rhs, lhs)
			if !ok {
				c.addError(diagnostics.ErrT003, startToken(s.Target), "Cannot assign to '%s' from '%s'",
					typesystem.TypeString(lhs), typesystem.TypeString(rhs))
			}
			s.Value = value
		default:
			c.addError(diagnostics.ErrT006, startToken(s.Target), "Assignment to immutable expression")
		}

	case *ast.BlockStatement:
		c.checkBlock(s)

	case *ast.CallStatement:
		c.inferExpression(s.Call)

	case *ast.ForStatement:
		t := c.value(s.Iterable)
		scope := c.scopes[s]
		c.table.Push(scope)
		loopVar := c.resolved[s.Variable]
		if typesystem.IsKnown(t) {
			if arr, ok := t.(typesystem.TArray); ok {
				loopVar.Type = arr.Elem
			} else {
				c.addError(diagnostics.ErrT003, s.Token, "Subject of for-loop must be array")
			}
		} else {
			c.addError(diagnostics.ErrT002, s.Token, "Could not resolve type for variable '%s'", s.Variable.Value)
		}
		c.checkBlock(s.Body)
		c.table.Pop(scope)

	case *ast.IfStatement:
		c.expectBool(s.Condition, c.value(s.Condition))
		c.checkBlock(s.Consequence)
		if s.Alternative != nil {
			c.checkBlock(s.Alternative)
		}

	case *ast.ReturnStatement:
		actual := typesystem.Void
		if s.Value != nil {
			actual = c.value(s.Value)
		}
		ft, _ := c.function.FuncType()
		expected := ft.Return
		if s.Value == nil {
			if !typesystem.Same(actual, expected) {
				c.addError(diagnostics.ErrT003, s.Token, "Expected return value of type '%s', found '%s'",
					typesystem.TypeString(expected), typesystem.TypeString(actual))
			}
			return
		}
		value, ok := c.coerce(s.Value, actual, expected)
		if !ok {
			c.addError(diagnostics.ErrT003, s.Token, "Expected return value of type '%s', found '%s'",
				typesystem.TypeString(expected), typesystem.TypeString(actual))
		}
		s.Value = value

	case *ast.WhileStatement:
		c.expectBool(s.Condition, c.value(s.Condition))
		c.checkBlock(s.Body)

	default:
		panic(fmt.Sprintf("analyzer: unexpected statement %T", stmt))
	}
}

// coerce returns expr unchanged when have is want, wrapped in an implicit
// cast when have is a strict subtype of want, and ok=false otherwise.
func (c *Checker) coerce(expr ast.Expression, have, want typesystem.Type) (ast.Expression, bool) {
	if typesystem.Same(have, want) {
		return expr, true
	}
	if typesystem.IsSubtype(have, want) {
		return c.implicitCast(expr, want), true
	}
	return expr, false
}

func (c *Checker) implicitCast(expr ast.Expression, target typesystem.Type) *ast.CastExpression {
	cast := &ast.CastExpression{Token: startToken(expr), Value: expr, Implicit: true}
	c.TypeMap[cast] = target
	return cast
}

func (c *Checker) expectBool(expr ast.Expression, t typesystem.Type) {
	if !typesystem.Same(t, typesystem.Bool) {
		c.addError(diagnostics.ErrT003, startToken(expr), "Boolean expected")
	}
}

func (c *Checker) expectInt(expr ast.Expression, t typesystem.Type) {
	if !typesystem.Same(t, typesystem.Int) {
		c.addError(diagnostics.ErrT003, startToken(expr), "Integer expected")
	}
}

// startToken returns the first token of expr, where diagnostics point.
func startToken(expr ast.Expression) token.Token {
	switch e := expr.(type) {
	case *ast.InfixExpression:
		return startToken(e.Left)
	case *ast.CallExpression:
		return startToken(e.Function)
	case *ast.CastExpression:
		return startToken(e.Value)
	case *ast.FieldExpression:
		return startToken(e.Base)
	case *ast.SubscriptExpression:
		return startToken(e.Base)
	}
	return expr.GetToken()
}
