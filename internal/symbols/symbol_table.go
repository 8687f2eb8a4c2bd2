package symbols

import (
	"fmt"

	"github.com/funvibe/tackc/internal/ast"
)

// SymbolTable walks the scope tree. Its current scope mirrors the
// traversal: every Push must be matched by a Pop of the same scope, and
// a scope may only be entered from its parent.
type SymbolTable struct {
	global  *Scope
	current *Scope
}

func NewSymbolTable(global *Scope) *SymbolTable {
	return &SymbolTable{global: global, current: global}
}

func (st *SymbolTable) Global() *Scope  { return st.global }
func (st *SymbolTable) Current() *Scope { return st.current }

// Open creates a child of the current scope and enters it.
func (st *SymbolTable) Open(t ScopeType, owner ast.Node) *Scope {
	child := st.current.newChild(t, owner)
	st.current = child
	return child
}

// Push re-enters an existing scope during a later walk.
func (st *SymbolTable) Push(s *Scope) {
	if s == nil || s.parent != st.current {
		panic(fmt.Sprintf("symbols: push of %s scope does not nest in current %s scope", scopeName(s), st.current.Type))
	}
	st.current = s
}

func (st *SymbolTable) Pop(s *Scope) {
	if s != st.current || s == st.global {
		panic(fmt.Sprintf("symbols: unbalanced pop of %s scope (current is %s)", scopeName(s), st.current.Type))
	}
	st.current = s.parent
}

// Define adds sym to the current scope. If the name is taken there, the
// earlier symbol is returned and nothing is defined.
func (st *SymbolTable) Define(sym *Symbol) (previous *Symbol, ok bool) {
	if prev, exists := st.current.Lookup(sym.Name); exists {
		return prev, false
	}
	st.current.Define(sym)
	return nil, true
}

func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	return st.current.Resolve(name)
}

// Balanced reports whether the walk is back at the global scope.
func (st *SymbolTable) Balanced() bool {
	return st.current == st.global
}

func scopeName(s *Scope) string {
	if s == nil {
		return "nil"
	}
	return s.Type.String()
}
