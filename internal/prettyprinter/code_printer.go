package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/tackc/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
	"%":  6,
}

const (
	prefixPrecedence  = 7
	postfixPrecedence = 8
)

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return postfixPrecedence
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a whole program, functions separated by a blank line.
func Print(program *ast.Program) string {
	p := NewCodePrinter()
	p.PrintProgram(program)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteByte('\n')
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) PrintProgram(n *ast.Program) {
	for i, fn := range n.Functions {
		if i > 0 {
			p.writeln()
		}
		p.PrintFunction(fn)
	}
}

func (p *CodePrinter) PrintFunction(n *ast.FunctionDefinition) {
	p.write(n.Name.Value + " = fun ")
	p.PrintType(n.Signature)
	p.write(" ")
	p.printBlock(n.Body)
	p.writeln()
}

func (p *CodePrinter) printBlock(n *ast.BlockStatement) {
	p.write("{")
	p.writeln()
	p.indent++
	for _, stmt := range n.Statements {
		p.writeIndent()
		p.PrintStatement(stmt)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) PrintStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDefinition:
		p.write(s.Name.Value + " = ")
		p.PrintExpression(s.Value)
		p.write(";")
	case *ast.AssignStatement:
		p.PrintExpression(s.Target)
		p.write(" := ")
		p.PrintExpression(s.Value)
		p.write(";")
	case *ast.BlockStatement:
		p.printBlock(s)
	case *ast.CallStatement:
		p.PrintExpression(s.Call)
		p.write(";")
	case *ast.ForStatement:
		p.write("for " + s.Variable.Value + " in ")
		p.PrintExpression(s.Iterable)
		p.write(" ")
		p.printBlock(s.Body)
	case *ast.IfStatement:
		p.write("if ")
		p.PrintExpression(s.Condition)
		p.write(" ")
		p.printBlock(s.Consequence)
		if s.Alternative != nil {
			p.write(" else ")
			p.printBlock(s.Alternative)
		}
	case *ast.ReturnStatement:
		if s.Value == nil {
			p.write("->;")
			return
		}
		p.write("-> ")
		p.PrintExpression(s.Value)
		p.write(";")
	case *ast.WhileStatement:
		p.write("while ")
		p.PrintExpression(s.Condition)
		p.write(" ")
		p.printBlock(s.Body)
	default:
		panic("prettyprinter: unexpected statement")
	}
}

func (p *CodePrinter) PrintExpression(expr ast.Expression) {
	p.printExpr(expr, 0, false)
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	switch e := expr.(type) {
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		// All binary operators are left-associative.
		needParens := prec < parentPrec || (prec == parentPrec && isRight)
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.PrefixExpression:
		needParens := prefixPrecedence < parentPrec
		if needParens {
			p.write("(")
		}
		p.write(e.Operator)
		p.printExpr(e.Right, prefixPrecedence, false)
		if needParens {
			p.write(")")
		}
	case *ast.CastExpression:
		if e.Implicit {
			p.printExpr(e.Value, parentPrec, isRight)
			return
		}
		p.printExpr(e.Value, postfixPrecedence, false)
		p.write(" : ")
		p.PrintType(e.TargetType)
	case *ast.CallExpression:
		p.printExpr(e.Function, postfixPrecedence, false)
		p.write("(")
		p.printList(e.Arguments)
		p.write(")")
	case *ast.FieldExpression:
		p.printExpr(e.Base, postfixPrecedence, false)
		p.write("." + e.Field.Value)
	case *ast.SubscriptExpression:
		p.printExpr(e.Base, postfixPrecedence, false)
		p.write("[")
		p.PrintExpression(e.Index)
		p.write("]")
	case *ast.ParenExpression:
		p.write("(")
		p.PrintExpression(e.Inner)
		p.write(")")
	case *ast.ArrayLiteral:
		p.write("[")
		p.printList(e.Elements)
		p.write("]")
	case *ast.RecordLiteral:
		p.write("(")
		for i, field := range e.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(field.Name.Value + " = ")
			p.PrintExpression(field.Value)
		}
		p.write(")")
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.BooleanLiteral:
		p.write(strconv.FormatBool(e.Value))
	case *ast.IntegerLiteral:
		p.write(strconv.FormatInt(e.Value, 10))
	case *ast.NullLiteral:
		p.write("null")
	case *ast.StringLiteral:
		if e.Raw != "" {
			p.write(e.Raw)
		} else {
			p.write(strconv.Quote(e.Value))
		}
	default:
		panic("prettyprinter: unexpected expression")
	}
}

func (p *CodePrinter) printList(list []ast.Expression) {
	for i, el := range list {
		if i > 0 {
			p.write(", ")
		}
		p.PrintExpression(el)
	}
}

func (p *CodePrinter) PrintType(t ast.Type) {
	switch tt := t.(type) {
	case *ast.PrimitiveType:
		p.write(tt.Name)
	case *ast.ArrayType:
		p.write("[")
		p.PrintType(tt.Element)
		p.write("]")
	case *ast.RecordType:
		p.write("(")
		for i, field := range tt.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(field.Name.Value + " : ")
			p.PrintType(field.Type)
		}
		p.write(")")
	case *ast.FunctionType:
		p.PrintType(tt.Formals)
		p.write(" -> ")
		p.PrintType(tt.ReturnType)
	default:
		panic("prettyprinter: unexpected type")
	}
}
