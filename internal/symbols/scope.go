package symbols

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
)

type ScopeType int

const (
	ScopeGlobal ScopeType = iota // Top level: functions and intrinsics
	ScopeFunction
	ScopeBlock
	ScopeFor
	ScopeRecord // Record type or record literal fields
)

func (t ScopeType) String() string {
	switch t {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeFor:
		return "for"
	case ScopeRecord:
		return "record"
	}
	return "scope"
}

// Scope is one node of the scope tree. Symbols keep declaration order.
type Scope struct {
	Type  ScopeType
	Owner ast.Node // nil for the global scope

	parent   *Scope
	children []*Scope
	symbols  []*Symbol
	index    map[string]*Symbol
}

func NewGlobalScope() *Scope {
	return &Scope{Type: ScopeGlobal, index: make(map[string]*Symbol)}
}

func (s *Scope) newChild(t ScopeType, owner ast.Node) *Scope {
	child := &Scope{Type: t, Owner: owner, parent: s, index: make(map[string]*Symbol)}
	s.children = append(s.children, child)
	return child
}

func (s *Scope) Parent() *Scope     { return s.parent }
func (s *Scope) Children() []*Scope { return s.children }
func (s *Scope) Symbols() []*Symbol { return s.symbols }

// Lookup finds name in this scope only.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.index[name]
	return sym, ok
}

// Resolve finds name in this scope or the nearest enclosing one.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.index[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Define adds sym to this scope. Callers check for duplicates first.
func (s *Scope) Define(sym *Symbol) {
	if _, exists := s.index[sym.Name]; exists {
		panic(fmt.Sprintf("symbols: %q already defined in %s scope", sym.Name, s.Type))
	}
	sym.Scope = s
	s.index[sym.Name] = sym
	s.symbols = append(s.symbols, sym)
}

// Walk visits s and its descendants in creation order.
func (s *Scope) Walk(fn func(*Scope)) {
	fn(s)
	for _, child := range s.children {
		child.Walk(fn)
	}
}
