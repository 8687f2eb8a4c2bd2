package ir

import (
	"fmt"
	"strconv"

	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/typesystem"
)

// Function is the generated code of one source function.
type Function struct {
	Name         string
	Symbol       *symbols.Symbol
	Formals      []*NameAddr
	Instructions []*Instruction

	// Addresses holds every named address in definition order.
	Addresses []Address
	byName    map[string]Address
	pending   []*Label
}

func NewFunction(sym *symbols.Symbol) *Function {
	return &Function{
		Name:   sym.Name,
		Symbol: sym,
		byName: make(map[string]Address),
	}
}

// Lookup finds a label, variable or temporary by name.
func (f *Function) Lookup(name string) (Address, bool) {
	a, ok := f.byName[name]
	return a, ok
}

// UniqueName returns base, or base followed by the first counter that is
// not yet taken in this function.
func (f *Function) UniqueName(base string) string {
	if _, taken := f.byName[base]; !taken {
		return base
	}
	for i := 0; ; i++ {
		name := base + strconv.Itoa(i)
		if _, taken := f.byName[name]; !taken {
			return name
		}
	}
}

func (f *Function) define(name string, a Address) {
	if _, taken := f.byName[name]; taken {
		panic(fmt.Sprintf("ir: address %s defined twice in %s", name, f.Name))
	}
	f.byName[name] = a
	f.Addresses = append(f.Addresses, a)
}

func (f *Function) NewLabel(base string) *Label {
	l := &Label{Name: f.UniqueName(base)}
	f.define(l.Name, l)
	return l
}

func (f *Function) NewTemp(base string, t typesystem.Type) *TempAddr {
	tmp := &TempAddr{Name: f.UniqueName(base), T: t}
	f.define(tmp.Name, tmp)
	return tmp
}

// NewName binds sym to a fresh storage address.
func (f *Function) NewName(sym *symbols.Symbol) *NameAddr {
	n := &NameAddr{Name: f.UniqueName(sym.Name), Symbol: sym}
	f.define(n.Name, n)
	return n
}

// PlaceLabel attaches l to the next emitted instruction.
func (f *Function) PlaceLabel(l *Label) {
	f.pending = append(f.pending, l)
}

func (f *Function) Emit(in *Instruction) {
	if len(f.pending) > 0 {
		in.Labels = append(in.Labels, f.pending...)
		f.pending = nil
	}
	f.Instructions = append(f.Instructions, in)
}

// HasPendingLabels reports labels placed after the last instruction.
func (f *Function) HasPendingLabels() bool {
	return len(f.pending) > 0
}

// Program is the generated code of a whole source file.
type Program struct {
	File      string
	Functions []*Function
}
