// Package codegen prints x86-64 assembly (GNU as, Intel syntax) for the
// three-address code. Every operand lives in its frame slot; registers are
// taken for the duration of one instruction only.
package codegen

import (
	"fmt"
	"strings"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/frame"
	"github.com/funvibe/tackc/internal/ir"
)

type Generator struct {
	alignment int
	bank      *Bank

	fn        *ir.Function
	layout    *frame.Layout
	reserved  int
	body      strings.Builder
	stackArgs []ir.Address
}

func New(opts *config.Options) *Generator {
	alignment := config.DefaultFrameAlignment
	if opts != nil && opts.FrameAlignment > 0 {
		alignment = opts.FrameAlignment
	}
	return &Generator{alignment: alignment, bank: NewBank()}
}

// Generate returns the assembly for the whole program.
func (g *Generator) Generate(p *ir.Program) string {
	var sb strings.Builder
	sb.WriteString(".intel_syntax\n")
	for i, fn := range p.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(g.Function(fn))
	}
	return sb.String()
}

// Function returns the .rodata and .text sections of one function.
func (g *Generator) Function(fn *ir.Function) string {
	g.fn = fn
	g.layout = frame.Allocate(fn, g.alignment)
	g.body.Reset()
	g.bank.Reset()
	defer func() { g.fn, g.layout = nil, nil }()

	// The body is printed first so the prologue knows which callee-save
	// registers it has to preserve.
	g.copyFormals()
	for _, in := range fn.Instructions {
		g.instruction(in)
	}
	saved := g.bank.UsedCalleeSaved()
	g.reserved = g.reserve(len(saved))
	g.epilogue(saved)

	var sb strings.Builder
	if len(g.layout.Strings) > 0 {
		sb.WriteString(".section .rodata\n")
		for _, s := range g.layout.Strings {
			sb.WriteString(s.Label + ":\n")
			sb.WriteString("    .string " + s.Literal.Raw + "\n")
		}
	}
	sb.WriteString(".text\n")
	sb.WriteString("    .global " + fn.Name + "\n")
	sb.WriteString("    .type " + fn.Name + ", @function\n")
	sb.WriteString(fn.Name + ":\n")
	sb.WriteString("    push %rbp\n")
	sb.WriteString("    mov %rbp, %rsp\n")
	if g.reserved > 0 {
		sb.WriteString(fmt.Sprintf("    sub %%rsp, %d\n", g.reserved))
	}
	for _, r := range saved {
		sb.WriteString(fmt.Sprintf("    push %s\n", r))
	}
	sb.WriteString(g.body.String())
	return sb.String()
}

// reserve returns the bytes to subtract below %rbp: the frame, padded so
// that %rsp is back on a StackAlignment boundary once the callee-saved
// registers are pushed.
func (g *Generator) reserve(saved int) int {
	size := g.layout.Size
	if (size+config.SlotSize*saved)%config.StackAlignment != 0 {
		size += config.SlotSize
	}
	return size
}

// localLabel qualifies an IR label with its function, since IR labels
// are only unique within one function.
func (g *Generator) localLabel(l *ir.Label) string {
	return g.fn.Name + "." + l.Name
}

func (g *Generator) epilogueLabel() string {
	return g.fn.Name + ".epilogue"
}

// copyFormals moves incoming arguments into their slots. Arguments past
// the sixth were pushed by the caller above the return address.
func (g *Generator) copyFormals() {
	for i, formal := range g.fn.Formals {
		if i < config.MaxRegisterArgs {
			r := g.bank.AcquireParam(i)
			g.store(formal, r)
			g.bank.Release(r)
			continue
		}
		r := g.bank.Acquire()
		g.emit("mov %s, QWORD PTR [%%rbp+%d]", r, 16+config.SlotSize*(i-config.MaxRegisterArgs))
		g.store(formal, r)
		g.bank.Release(r)
	}
}

func (g *Generator) epilogue(saved []Register) {
	g.label(g.epilogueLabel())
	for i, r := range saved {
		g.emit("mov %s, QWORD PTR [%%rbp-%d]", r, g.reserved+config.SlotSize*(i+1))
	}
	g.emit("mov %%rsp, %%rbp")
	g.emit("pop %%rbp")
	g.emit("ret")
}

func (g *Generator) emit(format string, args ...interface{}) {
	g.body.WriteString("    ")
	g.body.WriteString(fmt.Sprintf(format, args...))
	g.body.WriteString("\n")
}

func (g *Generator) label(name string) {
	g.body.WriteString(name + ":\n")
}

// operand renders a as a source or destination of mov.
func (g *Generator) operand(a ir.Address) string {
	switch a := a.(type) {
	case *ir.NameAddr, *ir.TempAddr:
		name, _ := ir.Slot(a)
		return slot(g.layout.Offset(name))
	case *ir.ConstantAddr:
		switch lit := a.Literal.(type) {
		case *ast.StringLiteral:
			return "OFFSET FLAT:" + g.layout.StringLabel(a)
		case *ast.BooleanLiteral:
			if lit.Value {
				return "1"
			}
			return "0"
		case *ast.NullLiteral:
			return "0"
		case *ast.IntegerLiteral:
			return fmt.Sprintf("%d", lit.Value)
		}
	case *ir.SizeofAddr:
		return fmt.Sprintf("%d", a.Size())
	}
	panic(fmt.Sprintf("codegen: %T is not a value operand", a))
}

func slot(offset int) string {
	return fmt.Sprintf("QWORD PTR [%%rbp%+d]", offset)
}

func indirect(r Register, offset int) string {
	if offset == 0 {
		return fmt.Sprintf("QWORD PTR [%s]", r)
	}
	return fmt.Sprintf("QWORD PTR [%s%+d]", r, offset)
}

func (g *Generator) load(r Register, a ir.Address) {
	g.emit("mov %s, %s", r, g.operand(a))
}

func (g *Generator) store(a ir.Address, r Register) {
	switch a.(type) {
	case *ir.NameAddr, *ir.TempAddr:
	default:
		panic(fmt.Sprintf("codegen: cannot store into %s", a))
	}
	g.emit("mov %s, %s", g.operand(a), r)
}
