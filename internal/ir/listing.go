package ir

import (
	"fmt"
	"strings"

	"github.com/funvibe/tackc/internal/typesystem"
)

// Disassemble returns the textual listing of every function in p.
func Disassemble(p *Program) string {
	var sb strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		DisassembleFunction(&sb, fn)
	}
	return sb.String()
}

// DisassembleFunction writes a header, then each instruction preceded by
// its labels.
func DisassembleFunction(sb *strings.Builder, fn *Function) {
	sb.WriteString(fmt.Sprintf("%s = fun %s\n", fn.Name, typesystem.TypeString(fn.Symbol.Type)))
	for _, in := range fn.Instructions {
		for _, l := range in.Labels {
			sb.WriteString(l.Name + ":\n")
		}
		sb.WriteString("    ")
		sb.WriteString(FormatInstruction(in))
		sb.WriteString(";\n")
	}
}

// FormatInstruction renders in without labels or terminator.
func FormatInstruction(in *Instruction) string {
	switch in.Op {
	case OP_COPY:
		return fmt.Sprintf("%s = %s", in.Out, in.In)
	case OP_INFIX:
		return fmt.Sprintf("%s = %s %s %s", in.Out, in.Lhs, in.Operator, in.Rhs)
	case OP_PREFIX:
		return fmt.Sprintf("%s = %s%s", in.Out, in.Operator, in.In)
	case OP_CAST:
		return fmt.Sprintf("%s = %s : %s", in.Out, in.In, typesystem.TypeString(in.CastType))
	case OP_JUMP:
		return "goto " + in.Target.Name
	case OP_TRUE_JUMP:
		return fmt.Sprintf("if %s goto %s", in.In, in.Target.Name)
	case OP_FALSE_JUMP:
		return fmt.Sprintf("ifFalse %s goto %s", in.In, in.Target.Name)
	case OP_RELOP_JUMP:
		return fmt.Sprintf("if %s %s %s goto %s", in.Lhs, in.Operator, in.Rhs, in.Target.Name)
	case OP_PARAM:
		return fmt.Sprintf("param[%d : %d] = %s", in.Index, in.Arity, in.In)
	case OP_CALL:
		if in.Out == nil {
			return fmt.Sprintf("call %s : %d", in.Callee.Name, in.Arity)
		}
		return fmt.Sprintf("%s = call %s : %d", in.Out, in.Callee.Name, in.Arity)
	case OP_RETURN:
		if in.In == nil {
			return "return"
		}
		return "return " + in.In.String()
	case OP_ARR_READ:
		return fmt.Sprintf("%s = %s[%s]", in.Out, in.Base, in.Subscript)
	case OP_ARR_WRITE:
		return fmt.Sprintf("%s[%s] = %s", in.Base, in.Subscript, in.In)
	case OP_REC_READ:
		return fmt.Sprintf("%s = %s.%s", in.Out, in.Base, in.Field)
	case OP_REC_WRITE:
		return fmt.Sprintf("%s.%s = %s", in.Base, in.Field, in.In)
	}
	return fmt.Sprintf("<%s>", in.Op)
}
