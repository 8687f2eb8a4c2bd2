package codegen

import (
	"fmt"

	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/ir"
	"github.com/funvibe/tackc/internal/typesystem"
)

var jumpMnemonics = map[string]string{
	"==": "je",
	"!=": "jne",
	">":  "jg",
	">=": "jge",
	"<":  "jl",
	"<=": "jle",
}

var arithmeticMnemonics = map[string]string{
	"+": "add",
	"-": "sub",
	"*": "imul",
}

// instruction prints one IR instruction. All registers it takes must be
// back in the bank when it is done.
func (g *Generator) instruction(in *ir.Instruction) {
	for _, l := range in.Labels {
		g.label(g.localLabel(l))
	}

	switch in.Op {
	case ir.OP_COPY:
		r := g.bank.Acquire()
		g.load(r, in.In)
		g.store(in.Out, r)
		g.bank.Release(r)

	case ir.OP_INFIX:
		g.infix(in)

	case ir.OP_PREFIX:
		r := g.bank.Acquire()
		g.load(r, in.In)
		switch in.Operator {
		case "-":
			g.emit("neg %s", r)
		default:
			panic("codegen: unknown prefix operator " + in.Operator)
		}
		g.store(in.Out, r)
		g.bank.Release(r)

	case ir.OP_CAST:
		g.cast(in)

	case ir.OP_JUMP:
		g.emit("jmp %s", g.localLabel(in.Target))

	case ir.OP_TRUE_JUMP, ir.OP_FALSE_JUMP:
		r := g.bank.Acquire()
		g.load(r, in.In)
		g.emit("cmp %s, 1", r)
		if in.Op == ir.OP_TRUE_JUMP {
			g.emit("je %s", g.localLabel(in.Target))
		} else {
			g.emit("jne %s", g.localLabel(in.Target))
		}
		g.bank.Release(r)

	case ir.OP_RELOP_JUMP:
		mnemonic, ok := jumpMnemonics[in.Operator]
		if !ok {
			panic("codegen: unknown relational operator " + in.Operator)
		}
		r1 := g.bank.Acquire()
		r2 := g.bank.Acquire()
		g.load(r1, in.Lhs)
		g.load(r2, in.Rhs)
		g.emit("cmp %s, %s", r1, r2)
		g.emit("%s %s", mnemonic, g.localLabel(in.Target))
		g.bank.Release(r1)
		g.bank.Release(r2)

	case ir.OP_PARAM:
		g.param(in)

	case ir.OP_CALL:
		g.call(in)

	case ir.OP_RETURN:
		if in.In != nil {
			rax := g.bank.AcquireThis(RAX)
			g.load(rax, in.In)
			g.bank.Release(rax)
		}
		g.emit("jmp %s", g.epilogueLabel())

	case ir.OP_ARR_READ:
		r1 := g.bank.Acquire()
		r2 := g.bank.Acquire()
		g.elementAddress(r1, r2, in)
		g.emit("mov %s, %s", r2, indirect(r2, 0))
		g.store(in.Out, r2)
		g.bank.Release(r1)
		g.bank.Release(r2)

	case ir.OP_ARR_WRITE:
		r1 := g.bank.Acquire()
		r2 := g.bank.Acquire()
		r3 := g.bank.Acquire()
		g.elementAddress(r1, r2, in)
		g.load(r3, in.In)
		g.emit("mov %s, %s", indirect(r2, 0), r3)
		g.bank.Release(r1)
		g.bank.Release(r2)
		g.bank.Release(r3)

	case ir.OP_REC_READ:
		r1 := g.bank.Acquire()
		r2 := g.bank.Acquire()
		g.load(r1, in.Base)
		g.emit("add %s, %d", r1, fieldOffset(in))
		g.emit("mov %s, %s", r2, indirect(r1, 0))
		g.store(in.Out, r2)
		g.bank.Release(r1)
		g.bank.Release(r2)

	case ir.OP_REC_WRITE:
		r1 := g.bank.Acquire()
		r2 := g.bank.Acquire()
		g.load(r1, in.Base)
		g.load(r2, in.In)
		g.emit("add %s, %d", r1, fieldOffset(in))
		g.emit("mov %s, %s", indirect(r1, 0), r2)
		g.bank.Release(r1)
		g.bank.Release(r2)

	default:
		panic(fmt.Sprintf("codegen: unknown opcode %s", in.Op))
	}

	if held := g.bank.Held(); held != 0 {
		panic(fmt.Sprintf("codegen: %d registers still held after %s", held, in.Op))
	}
}

// fieldOffset places fields 8 bytes apart, downwards from the record
// address, in declaration order.
func fieldOffset(in *ir.Instruction) int {
	return -config.SlotSize * in.FieldIndex()
}

// elementAddress leaves &Base[Subscript] in idx. The array descriptor
// holds its payload pointer at offset 8.
func (g *Generator) elementAddress(base, idx Register, in *ir.Instruction) {
	g.load(base, in.Base)
	g.emit("mov %s, %s", base, indirect(base, 8))
	g.load(idx, in.Subscript)
	g.emit("sal %s, 3", idx)
	g.emit("add %s, %s", idx, base)
}

func (g *Generator) infix(in *ir.Instruction) {
	if in.Operator == "/" || in.Operator == "%" {
		rax := g.bank.AcquireThis(RAX)
		rdx := g.bank.AcquireThis(RDX)
		divisor := g.bank.Acquire()
		g.load(rax, in.Lhs)
		g.load(divisor, in.Rhs)
		g.emit("mov %s, %s", rdx, rax)
		g.emit("sar %s, 63", rdx)
		g.emit("idiv %s", divisor)
		if in.Operator == "/" {
			g.store(in.Out, rax)
		} else {
			g.store(in.Out, rdx)
		}
		g.bank.Release(rax)
		g.bank.Release(rdx)
		g.bank.Release(divisor)
		return
	}

	mnemonic, ok := arithmeticMnemonics[in.Operator]
	if !ok {
		panic("codegen: unknown arithmetic operator " + in.Operator)
	}
	r1 := g.bank.Acquire()
	r2 := g.bank.Acquire()
	g.load(r1, in.Lhs)
	g.load(r2, in.Rhs)
	g.emit("%s %s, %s", mnemonic, r1, r2)
	g.store(in.Out, r1)
	g.bank.Release(r1)
	g.bank.Release(r2)
}

// CastRoutine names the runtime conversion between two primitive types.
// Other casts only copy the value.
func CastRoutine(from, to typesystem.Type) (string, bool) {
	if typesystem.Equal(from, to) {
		return "", false
	}
	switch {
	case typesystem.Equal(from, typesystem.String) && typesystem.Equal(to, typesystem.Int):
		return config.String2IntFuncName, true
	case typesystem.Equal(from, typesystem.Int) && typesystem.Equal(to, typesystem.String):
		return config.Int2StringFuncName, true
	case typesystem.Equal(from, typesystem.Bool) && typesystem.Equal(to, typesystem.Int):
		return config.Bool2IntFuncName, true
	case typesystem.Equal(from, typesystem.Int) && typesystem.Equal(to, typesystem.Bool):
		return config.Int2BoolFuncName, true
	case typesystem.Equal(from, typesystem.String) && typesystem.Equal(to, typesystem.Bool):
		return config.String2BoolFuncName, true
	case typesystem.Equal(from, typesystem.Bool) && typesystem.Equal(to, typesystem.String):
		return config.Bool2StringFuncName, true
	}
	return "", false
}

func (g *Generator) cast(in *ir.Instruction) {
	rdi := g.bank.AcquireThis(RDI)
	g.load(rdi, in.In)
	routine, ok := CastRoutine(in.In.Type(), in.CastType)
	if !ok {
		g.store(in.Out, rdi)
		g.bank.Release(rdi)
		return
	}
	g.emit("call %s", routine)
	g.bank.Release(rdi)
	rax := g.bank.AcquireThis(RAX)
	g.store(in.Out, rax)
	g.bank.Release(rax)
}

func (g *Generator) param(in *ir.Instruction) {
	if in.Index < config.MaxRegisterArgs {
		r := g.bank.AcquireParam(in.Index)
		g.load(r, in.In)
		g.bank.Release(r)
		return
	}
	if g.stackArgs == nil {
		g.stackArgs = make([]ir.Address, in.Arity-config.MaxRegisterArgs)
	}
	g.stackArgs[in.Index-config.MaxRegisterArgs] = in.In
}

// call pushes stack arguments right to left, calls, and pops them again.
// An odd argument count is preceded by one pad slot so %rsp stays aligned.
func (g *Generator) call(in *ir.Instruction) {
	pushed := len(g.stackArgs)
	if pushed%2 != 0 {
		g.emit("sub %%rsp, %d", config.SlotSize)
	}
	for i := pushed - 1; i >= 0; i-- {
		if g.stackArgs[i] == nil {
			panic(fmt.Sprintf("codegen: argument %d of %s missing", i+config.MaxRegisterArgs, in.Callee.Name))
		}
		r := g.bank.Acquire()
		g.load(r, g.stackArgs[i])
		g.emit("push %s", r)
		g.bank.Release(r)
	}
	g.stackArgs = nil

	g.emit("call %s", in.Callee.Name)
	if pushed > 0 {
		g.emit("add %%rsp, %d", config.SlotSize*(pushed+pushed%2))
	}
	if in.Out != nil {
		rax := g.bank.AcquireThis(RAX)
		g.store(in.Out, rax)
		g.bank.Release(rax)
	}
}
