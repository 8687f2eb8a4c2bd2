package codegen

import "fmt"

// Register is a 64-bit general purpose register in assembler syntax.
type Register string

const (
	RAX Register = "%rax"
	RBX Register = "%rbx"
	RCX Register = "%rcx"
	RDX Register = "%rdx"
	RSI Register = "%rsi"
	RDI Register = "%rdi"
	RBP Register = "%rbp"
	RSP Register = "%rsp"
	R8  Register = "%r8"
	R9  Register = "%r9"
	R10 Register = "%r10"
	R11 Register = "%r11"
	R12 Register = "%r12"
	R13 Register = "%r13"
	R14 Register = "%r14"
	R15 Register = "%r15"
)

// poolOrder is the order Acquire hands registers out: scratch, callee-save,
// return value, then the argument registers from last to first.
var poolOrder = []Register{R10, R11, RBX, R12, R13, R14, R15, RAX, R9, R8, RCX, RDX, RSI, RDI}

// ParamRegisters pass the first integer arguments.
var ParamRegisters = []Register{RDI, RSI, RDX, RCX, R8, R9}

var calleeSaved = map[Register]bool{RBX: true, R12: true, R13: true, R14: true, R15: true}

func (r Register) CalleeSaved() bool { return calleeSaved[r] }

// Bank tracks which pool registers are held by the instruction being
// emitted. Nothing stays held between instructions.
type Bank struct {
	held map[Register]bool
	used map[Register]bool
}

func NewBank() *Bank {
	return &Bank{held: make(map[Register]bool), used: make(map[Register]bool)}
}

// Acquire returns the first free register in pool order.
func (b *Bank) Acquire() Register {
	for _, r := range poolOrder {
		if !b.held[r] {
			return b.take(r)
		}
	}
	panic("codegen: out of registers")
}

// AcquireThis takes a specific register, such as the division pair.
func (b *Bank) AcquireThis(r Register) Register {
	if b.held[r] {
		panic(fmt.Sprintf("codegen: register %s already held", r))
	}
	return b.take(r)
}

// AcquireParam takes the register of argument index.
func (b *Bank) AcquireParam(index int) Register {
	if index < 0 || index >= len(ParamRegisters) {
		panic(fmt.Sprintf("codegen: argument %d is not passed in a register", index))
	}
	return b.AcquireThis(ParamRegisters[index])
}

func (b *Bank) take(r Register) Register {
	b.held[r] = true
	b.used[r] = true
	return r
}

func (b *Bank) Release(r Register) {
	if !b.held[r] {
		panic(fmt.Sprintf("codegen: releasing free register %s", r))
	}
	delete(b.held, r)
}

// Held is the number of registers currently acquired.
func (b *Bank) Held() int {
	return len(b.held)
}

// UsedCalleeSaved lists, in pool order, the callee-save registers handed
// out since the last Reset.
func (b *Bank) UsedCalleeSaved() []Register {
	var regs []Register
	for _, r := range poolOrder {
		if b.used[r] && r.CalleeSaved() {
			regs = append(regs, r)
		}
	}
	return regs
}

// Reset forgets all usage; it starts a new function.
func (b *Bank) Reset() {
	if len(b.held) > 0 {
		panic("codegen: registers still held at end of function")
	}
	b.used = make(map[Register]bool)
}
