// Package irgen lowers a checked syntax tree to three-address code.
// Control flow is threaded through "next" labels and boolean expressions
// are compiled to jumping code wherever a branch consumes them.
package irgen

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/ir"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/token"
	"github.com/funvibe/tackc/internal/typesystem"
)

// Generator holds the side tables produced by the analyzer.
type Generator struct {
	universe *symbols.Scope
	scopes   map[ast.Node]*symbols.Scope
	resolved map[ast.Node]*symbols.Symbol
	types    map[ast.Node]typesystem.Type

	fn    *ir.Function
	names map[*symbols.Symbol]*ir.NameAddr
}

func New(universe *symbols.Scope, scopes map[ast.Node]*symbols.Scope,
	resolved map[ast.Node]*symbols.Symbol, types map[ast.Node]typesystem.Type) *Generator {
	return &Generator{
		universe: universe,
		scopes:   scopes,
		resolved: resolved,
		types:    types,
		names:    make(map[*symbols.Symbol]*ir.NameAddr),
	}
}

func (g *Generator) Generate(program *ast.Program) *ir.Program {
	out := &ir.Program{File: program.File}
	for _, fd := range program.Functions {
		out.Functions = append(out.Functions, g.function(fd))
	}
	return out
}

func (g *Generator) function(fd *ast.FunctionDefinition) *ir.Function {
	sym := g.resolved[fd]
	g.fn = ir.NewFunction(sym)
	defer func() { g.fn = nil }()

	scope := g.scopes[fd]
	g.bindVariables(scope)
	for _, f := range fd.Signature.Formals.Fields {
		formal, ok := scope.Lookup(f.Name.Value)
		if !ok {
			panic("irgen: formal " + f.Name.Value + " not in function scope")
		}
		g.fn.Formals = append(g.fn.Formals, g.names[formal])
	}

	next := g.newLabel()
	g.block(fd.Body, next)
	g.fn.PlaceLabel(next)

	ft, _ := sym.FuncType()
	if typesystem.Equal(ft.Return, typesystem.Void) {
		g.fn.Emit(ir.Return(fd.Token, nil))
	} else {
		g.fn.Emit(ir.Return(fd.Token, intConstant(0)))
	}
	return g.fn
}

// bindVariables gives every variable of the function a storage name,
// walking the scope tree in declaration order.
func (g *Generator) bindVariables(scope *symbols.Scope) {
	scope.Walk(func(s *symbols.Scope) {
		for _, sym := range s.Symbols() {
			if sym.Kind == symbols.VariableSymbol {
				g.names[sym] = g.fn.NewName(sym)
			}
		}
	})
}

func (g *Generator) newLabel() *ir.Label {
	return g.fn.NewLabel("L_" + g.fn.Name)
}

func (g *Generator) newTemp(t typesystem.Type) *ir.TempAddr {
	return g.fn.NewTemp("t", t)
}

func (g *Generator) emit(in *ir.Instruction) {
	g.fn.Emit(in)
}

func (g *Generator) intrinsic(name string) *symbols.Symbol {
	sym, ok := g.universe.Lookup(name)
	if !ok || !sym.Intrinsic {
		panic("irgen: intrinsic " + name + " not registered")
	}
	return sym
}

func (g *Generator) typeOf(e ast.Expression) typesystem.Type {
	t, ok := g.types[e]
	if !ok {
		panic(fmt.Sprintf("irgen: untyped expression %T at %s", e, e.GetToken().Location()))
	}
	return t
}

func (g *Generator) nameOf(node ast.Node) *ir.NameAddr {
	sym, ok := g.resolved[node]
	if !ok {
		panic(fmt.Sprintf("irgen: unbound %T", node))
	}
	addr, ok := g.names[sym]
	if !ok {
		panic("irgen: variable " + sym.Name + " has no storage")
	}
	return addr
}

func intConstant(v int64) *ir.ConstantAddr {
	return ir.Constant(&ast.IntegerLiteral{Token: token.Token{Type: token.INT}, Value: v}, typesystem.Int)
}

func boolConstant(v bool) *ir.ConstantAddr {
	tt := token.FALSE
	if v {
		tt = token.TRUE
	}
	return ir.Constant(&ast.BooleanLiteral{Token: token.Token{Type: tt}, Value: v}, typesystem.Bool)
}

// block lowers b so that control continues at next. Interior statements
// get fresh labels between them; the last one inherits next.
func (g *Generator) block(b *ast.BlockStatement, next *ir.Label) {
	n := len(b.Statements)
	for i, stmt := range b.Statements {
		if i == n-1 {
			g.statement(stmt, next)
			break
		}
		between := g.newLabel()
		g.statement(stmt, between)
		g.fn.PlaceLabel(between)
	}
}

func (g *Generator) statement(stmt ast.Statement, next *ir.Label) {
	switch s := stmt.(type) {
	case *ast.VariableDefinition:
		rhs := g.expression(s.Value)
		g.emit(ir.Copy(s.Token, g.nameOf(s), rhs))

	case *ast.AssignStatement:
		g.assign(s)

	case *ast.BlockStatement:
		g.block(s, next)

	case *ast.CallStatement:
		g.expression(s.Call)

	case *ast.ForStatement:
		g.forLoop(s, next)

	case *ast.IfStatement:
		if s.Alternative == nil {
			t := g.newLabel()
			g.condition(s.Condition, t, next)
			g.fn.PlaceLabel(t)
			g.block(s.Consequence, next)
			return
		}
		t := g.newLabel()
		f := g.newLabel()
		g.condition(s.Condition, t, f)
		g.fn.PlaceLabel(t)
		g.block(s.Consequence, next)
		g.emit(ir.Jump(s.Token, next))
		g.fn.PlaceLabel(f)
		g.block(s.Alternative, next)

	case *ast.ReturnStatement:
		var val ir.Address
		if s.Value != nil {
			val = g.expression(s.Value)
		}
		g.emit(ir.Return(s.Token, val))

	case *ast.WhileStatement:
		t := g.newLabel()
		top := g.newLabel()
		g.fn.PlaceLabel(top)
		g.condition(s.Condition, t, next)
		g.fn.PlaceLabel(t)
		g.block(s.Body, top)
		g.emit(ir.Jump(s.Token, top))

	default:
		panic(fmt.Sprintf("irgen: unexpected statement %T", stmt))
	}
}

func (g *Generator) assign(s *ast.AssignStatement) {
	rhs := g.expression(s.Value)
	switch target := s.Target.(type) {
	case *ast.Identifier:
		g.emit(ir.Copy(s.Token, g.nameOf(target), rhs))
	case *ast.SubscriptExpression:
		base := g.expression(target.Base)
		idx := g.expression(target.Index)
		g.emit(ir.ArrWrite(s.Token, base, idx, rhs))
	case *ast.FieldExpression:
		base := g.expression(target.Base)
		g.emit(ir.RecWrite(s.Token, base, target.Field.Value, rhs))
	default:
		panic(fmt.Sprintf("irgen: cannot assign to %T", s.Target))
	}
}

// forLoop walks the array by index, calling size once up front.
func (g *Generator) forLoop(s *ast.ForStatement, next *ir.Label) {
	arr := g.expression(s.Iterable)
	size := g.newTemp(typesystem.Int)
	g.emit(ir.Param(s.Token, arr, 0, 1))
	g.emit(ir.Call(s.Token, size, g.intrinsic(config.SizeFuncName), 1))
	idx := g.newTemp(typesystem.Int)
	g.emit(ir.Copy(s.Token, idx, intConstant(0)))

	begin := g.newLabel()
	g.fn.PlaceLabel(begin)
	bodyNext := g.newLabel()
	g.emit(ir.RelopJump(s.Token, ">=", idx, size, next))
	g.emit(ir.ArrRead(s.Token, g.nameOf(s.Variable), arr, idx))
	g.block(s.Body, bodyNext)
	g.fn.PlaceLabel(bodyNext)
	g.emit(ir.Infix(s.Token, "+", idx, idx, intConstant(1)))
	g.emit(ir.Jump(s.Token, begin))
}
