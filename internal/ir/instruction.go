package ir

import (
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/token"
	"github.com/funvibe/tackc/internal/typesystem"
)

// Opcode selects the instruction form and which Instruction fields are set.
type Opcode byte

const (
	OP_COPY        Opcode = iota // Out = In
	OP_INFIX                     // Out = Lhs Operator Rhs
	OP_PREFIX                    // Out = Operator In
	OP_CAST                      // Out = In : CastType
	OP_JUMP                      // goto Target
	OP_TRUE_JUMP                 // if In goto Target
	OP_FALSE_JUMP                // ifFalse In goto Target
	OP_RELOP_JUMP                // if Lhs Operator Rhs goto Target
	OP_PARAM                     // param[Index : Arity] = In
	OP_CALL                      // Out = call Callee : Arity; Out is nil for void
	OP_RETURN                    // return In; In is nil for void
	OP_ARR_READ                  // Out = Base[Subscript]
	OP_ARR_WRITE                 // Base[Subscript] = In
	OP_REC_READ                  // Out = Base.Field
	OP_REC_WRITE                 // Base.Field = In
)

var opcodeNames = [...]string{
	OP_COPY:       "COPY",
	OP_INFIX:      "INFIX",
	OP_PREFIX:     "PREFIX",
	OP_CAST:       "CAST",
	OP_JUMP:       "JUMP",
	OP_TRUE_JUMP:  "TRUE_JUMP",
	OP_FALSE_JUMP: "FALSE_JUMP",
	OP_RELOP_JUMP: "RELOP_JUMP",
	OP_PARAM:      "PARAM",
	OP_CALL:       "CALL",
	OP_RETURN:     "RETURN",
	OP_ARR_READ:   "ARR_READ",
	OP_ARR_WRITE:  "ARR_WRITE",
	OP_REC_READ:   "REC_READ",
	OP_REC_WRITE:  "REC_WRITE",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "UNKNOWN"
}

// Instruction is one three-address instruction. Labels are attached to
// the instruction they precede.
type Instruction struct {
	Op     Opcode
	Labels []*Label
	Token  token.Token // Source construct the instruction came from

	Out       Address
	In        Address
	Lhs       Address
	Rhs       Address
	Base      Address
	Subscript Address
	Operator  string
	Target    *Label

	CastType typesystem.Type
	Callee   *symbols.Symbol
	Field    string
	Index    int
	Arity    int
}

// FieldIndex is the declaration position of Field within Base's record type.
func (in *Instruction) FieldIndex() int {
	rec, ok := in.Base.Type().(typesystem.TRecord)
	if !ok {
		panic("ir: record access on non-record " + in.Base.String())
	}
	idx, _ := rec.Field(in.Field)
	if idx < 0 {
		panic("ir: unknown field " + in.Field)
	}
	return idx
}

// Operands returns the addresses an instruction mentions, destinations
// first. Jump targets are not included.
func (in *Instruction) Operands() []Address {
	var ops []Address
	add := func(as ...Address) {
		for _, a := range as {
			if a != nil {
				ops = append(ops, a)
			}
		}
	}
	switch in.Op {
	case OP_COPY, OP_PREFIX, OP_CAST:
		add(in.Out, in.In)
	case OP_INFIX:
		add(in.Out, in.Lhs, in.Rhs)
	case OP_TRUE_JUMP, OP_FALSE_JUMP, OP_PARAM, OP_RETURN:
		add(in.In)
	case OP_RELOP_JUMP:
		add(in.Lhs, in.Rhs)
	case OP_CALL:
		add(in.Out)
	case OP_ARR_READ:
		add(in.Out, in.Base, in.Subscript)
	case OP_ARR_WRITE:
		add(in.Base, in.Subscript, in.In)
	case OP_REC_READ:
		add(in.Out, in.Base)
	case OP_REC_WRITE:
		add(in.Base, in.In)
	}
	return ops
}

func Copy(tok token.Token, out, in Address) *Instruction {
	return &Instruction{Op: OP_COPY, Token: tok, Out: out, In: in}
}

func Infix(tok token.Token, op string, out, lhs, rhs Address) *Instruction {
	return &Instruction{Op: OP_INFIX, Token: tok, Operator: op, Out: out, Lhs: lhs, Rhs: rhs}
}

func Prefix(tok token.Token, op string, out, in Address) *Instruction {
	return &Instruction{Op: OP_PREFIX, Token: tok, Operator: op, Out: out, In: in}
}

func Cast(tok token.Token, out, in Address, t typesystem.Type) *Instruction {
	return &Instruction{Op: OP_CAST, Token: tok, Out: out, In: in, CastType: t}
}

func Jump(tok token.Token, target *Label) *Instruction {
	return &Instruction{Op: OP_JUMP, Token: tok, Target: target}
}

func TrueJump(tok token.Token, cond Address, target *Label) *Instruction {
	return &Instruction{Op: OP_TRUE_JUMP, Token: tok, In: cond, Target: target}
}

func FalseJump(tok token.Token, cond Address, target *Label) *Instruction {
	return &Instruction{Op: OP_FALSE_JUMP, Token: tok, In: cond, Target: target}
}

func RelopJump(tok token.Token, op string, lhs, rhs Address, target *Label) *Instruction {
	return &Instruction{Op: OP_RELOP_JUMP, Token: tok, Operator: op, Lhs: lhs, Rhs: rhs, Target: target}
}

func Param(tok token.Token, in Address, index, arity int) *Instruction {
	if index < 0 || index >= arity {
		panic("ir: parameter index out of range")
	}
	return &Instruction{Op: OP_PARAM, Token: tok, In: in, Index: index, Arity: arity}
}

func Call(tok token.Token, out Address, callee *symbols.Symbol, arity int) *Instruction {
	return &Instruction{Op: OP_CALL, Token: tok, Out: out, Callee: callee, Arity: arity}
}

func Return(tok token.Token, val Address) *Instruction {
	return &Instruction{Op: OP_RETURN, Token: tok, In: val}
}

func ArrRead(tok token.Token, out, base, subscript Address) *Instruction {
	return &Instruction{Op: OP_ARR_READ, Token: tok, Out: out, Base: base, Subscript: subscript}
}

func ArrWrite(tok token.Token, base, subscript, in Address) *Instruction {
	return &Instruction{Op: OP_ARR_WRITE, Token: tok, Base: base, Subscript: subscript, In: in}
}

func RecRead(tok token.Token, out, base Address, field string) *Instruction {
	return &Instruction{Op: OP_REC_READ, Token: tok, Out: out, Base: base, Field: field}
}

func RecWrite(tok token.Token, base Address, field string, in Address) *Instruction {
	return &Instruction{Op: OP_REC_WRITE, Token: tok, Base: base, Field: field, In: in}
}
