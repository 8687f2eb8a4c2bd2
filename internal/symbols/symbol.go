package symbols

import (
	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/token"
	"github.com/funvibe/tackc/internal/typesystem"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	FieldSymbol
	FunctionSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case FieldSymbol:
		return "field"
	case FunctionSymbol:
		return "function"
	}
	return "symbol"
}

type Symbol struct {
	Name           string
	Type           typesystem.Type // nil until resolved
	Kind           SymbolKind
	DefinitionNode ast.Node    // The declaring node; nil for intrinsics
	Token          token.Token // Where the symbol was declared
	Scope          *Scope      // The declaring scope
	Intrinsic      bool        // Provided by the runtime library
}

// Location renders the declaration position for diagnostics.
func (s *Symbol) Location() string {
	if s.Intrinsic {
		return "<intrinsic>"
	}
	return s.Token.Location()
}

// FuncType returns the symbol's function type, if it has one.
func (s *Symbol) FuncType() (typesystem.TFunc, bool) {
	ft, ok := s.Type.(typesystem.TFunc)
	return ft, ok
}
