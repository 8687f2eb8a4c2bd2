package analyzer

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/token"
)

// Resolver builds the scope tree and binds a symbol to every declaration.
type Resolver struct {
	table *symbols.SymbolTable
	diags *diagnostics.Collector

	// ScopeMap records the scope opened by each scope-owning node.
	ScopeMap map[ast.Node]*symbols.Scope
	// ResolutionMap records the symbol bound to each declaring node.
	ResolutionMap map[ast.Node]*symbols.Symbol
}

func NewResolver(global *symbols.Scope, diags *diagnostics.Collector) *Resolver {
	return &Resolver{
		table:         symbols.NewSymbolTable(global),
		diags:         diags,
		ScopeMap:      make(map[ast.Node]*symbols.Scope),
		ResolutionMap: make(map[ast.Node]*symbols.Symbol),
	}
}

func (r *Resolver) Resolve(program *ast.Program) {
	for _, fd := range program.Functions {
		if r.diags.Aborted() {
			return
		}
		r.resolveFunction(fd)
	}
	if !r.table.Balanced() {
		panic("analyzer: scope stack not balanced after resolution")
	}
}

func (r *Resolver) define(node ast.Node, sym *symbols.Symbol) {
	r.ResolutionMap[node] = sym
	if prev, ok := r.table.Define(sym); !ok {
		r.diags.Report(duplicateError(sym.Token, sym.Name, prev))
	}
}

func duplicateError(tok token.Token, name string, prev *symbols.Symbol) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrS001, tok,
		fmt.Sprintf("Duplicate definition of '%s' (previous definition at %s)", name, prev.Location()))
}

func (r *Resolver) open(t symbols.ScopeType, owner ast.Node) *symbols.Scope {
	scope := r.table.Open(t, owner)
	r.ScopeMap[owner] = scope
	return scope
}

func (r *Resolver) resolveFunction(fd *ast.FunctionDefinition) {
	r.define(fd, &symbols.Symbol{
		Name:           fd.Name.Value,
		Kind:           symbols.FunctionSymbol,
		Type:           buildFunc(fd.Signature),
		DefinitionNode: fd,
		Token:          fd.Name.Token,
	})

	scope := r.open(symbols.ScopeFunction, fd)
	r.resolveType(fd.Signature)

	// Formals are also plain variables of the function scope.
	formals := r.ScopeMap[fd.Signature.Formals]
	for _, field := range formals.Symbols() {
		scope.Define(&symbols.Symbol{
			Name:           field.Name,
			Kind:           symbols.VariableSymbol,
			Type:           field.Type,
			DefinitionNode: field.DefinitionNode,
			Token:          field.Token,
		})
	}

	r.resolveBlock(fd.Body, false)
	r.table.Pop(scope)
}

func (r *Resolver) resolveType(t ast.Type) {
	switch t := t.(type) {
	case *ast.PrimitiveType:
	case *ast.ArrayType:
		r.resolveType(t.Element)
	case *ast.RecordType:
		scope := r.open(symbols.ScopeRecord, t)
		for _, f := range t.Fields {
			r.define(f, &symbols.Symbol{
				Name:           f.Name.Value,
				Kind:           symbols.FieldSymbol,
				Type:           BuildType(f.Type),
				DefinitionNode: f,
				Token:          f.Name.Token,
			})
			r.resolveType(f.Type)
		}
		r.table.Pop(scope)
	case *ast.FunctionType:
		r.resolveType(t.Formals)
		r.resolveType(t.ReturnType)
	}
}

// resolveBlock opens a block scope only when needsScope is set. Function
// and for-loop bodies share their owner's scope.
func (r *Resolver) resolveBlock(b *ast.BlockStatement, needsScope bool) {
	var scope *symbols.Scope
	if needsScope {
		scope = r.open(symbols.ScopeBlock, b)
	}
	for _, stmt := range b.Statements {
		if r.diags.Aborted() {
			break
		}
		r.resolveStatement(stmt)
	}
	if scope != nil {
		r.table.Pop(scope)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDefinition:
		r.define(s, &symbols.Symbol{
			Name:           s.Name.Value,
			Kind:           symbols.VariableSymbol,
			DefinitionNode: s,
			Token:          s.Name.Token,
		})
		r.resolveExpression(s.Value)
	case *ast.AssignStatement:
		r.resolveExpression(s.Target)
		r.resolveExpression(s.Value)
	case *ast.BlockStatement:
		r.resolveBlock(s, true)
	case *ast.CallStatement:
		r.resolveExpression(s.Call)
	case *ast.ForStatement:
		r.resolveExpression(s.Iterable)
		scope := r.open(symbols.ScopeFor, s)
		r.define(s.Variable, &symbols.Symbol{
			Name:           s.Variable.Value,
			Kind:           symbols.VariableSymbol,
			DefinitionNode: s,
			Token:          s.Variable.Token,
		})
		r.resolveBlock(s.Body, false)
		r.table.Pop(scope)
	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveBlock(s.Consequence, true)
		if s.Alternative != nil {
			r.resolveBlock(s.Alternative, true)
		}
	case *ast.ReturnStatement:
		if s.Value != nil {
			r.resolveExpression(s.Value)
		}
	case *ast.WhileStatement:
		r.resolveExpression(s.Condition)
		r.resolveBlock(s.Body, true)
	default:
		panic(fmt.Sprintf("analyzer: unexpected statement %T", stmt))
	}
}

// resolveExpression only has work to do for record literals and written
// types; identifier uses are bound by the type checker.
func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.InfixExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.PrefixExpression:
		r.resolveExpression(e.Right)
	case *ast.CallExpression:
		r.resolveExpression(e.Function)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.CastExpression:
		r.resolveExpression(e.Value)
		if e.TargetType != nil {
			r.resolveType(e.TargetType)
		}
	case *ast.FieldExpression:
		r.resolveExpression(e.Base)
	case *ast.SubscriptExpression:
		r.resolveExpression(e.Base)
		r.resolveExpression(e.Index)
	case *ast.ParenExpression:
		r.resolveExpression(e.Inner)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			r.resolveExpression(el)
		}
	case *ast.RecordLiteral:
		// Field values see the enclosing scope, not the literal's own fields.
		for _, f := range e.Fields {
			r.resolveExpression(f.Value)
		}
		scope := r.open(symbols.ScopeRecord, e)
		for _, f := range e.Fields {
			r.define(f, &symbols.Symbol{
				Name:           f.Name.Value,
				Kind:           symbols.FieldSymbol,
				DefinitionNode: f,
				Token:          f.Name.Token,
			})
		}
		r.table.Pop(scope)
	case *ast.Identifier, *ast.BooleanLiteral, *ast.IntegerLiteral, *ast.NullLiteral, *ast.StringLiteral:
	default:
		panic(fmt.Sprintf("analyzer: unexpected expression %T", expr))
	}
}
