package ast

// Inspect traverses the tree rooted at node in depth-first order, calling
// f for each node. If f returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, fn := range n.Functions {
			Inspect(fn, f)
		}
	case *FunctionDefinition:
		Inspect(n.Name, f)
		Inspect(n.Signature, f)
		Inspect(n.Body, f)

	case *PrimitiveType:
	case *ArrayType:
		Inspect(n.Element, f)
	case *RecordType:
		for _, field := range n.Fields {
			Inspect(field, f)
		}
	case *FieldType:
		Inspect(n.Name, f)
		Inspect(n.Type, f)
	case *FunctionType:
		Inspect(n.Formals, f)
		Inspect(n.ReturnType, f)

	case *VariableDefinition:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *AssignStatement:
		Inspect(n.Target, f)
		Inspect(n.Value, f)
	case *BlockStatement:
		for _, stmt := range n.Statements {
			Inspect(stmt, f)
		}
	case *CallStatement:
		Inspect(n.Call, f)
	case *ForStatement:
		Inspect(n.Variable, f)
		Inspect(n.Iterable, f)
		Inspect(n.Body, f)
	case *IfStatement:
		Inspect(n.Condition, f)
		Inspect(n.Consequence, f)
		if n.Alternative != nil {
			Inspect(n.Alternative, f)
		}
	case *ReturnStatement:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *WhileStatement:
		Inspect(n.Condition, f)
		Inspect(n.Body, f)

	case *InfixExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *PrefixExpression:
		Inspect(n.Right, f)
	case *CallExpression:
		Inspect(n.Function, f)
		for _, arg := range n.Arguments {
			Inspect(arg, f)
		}
	case *CastExpression:
		Inspect(n.Value, f)
		if n.TargetType != nil {
			Inspect(n.TargetType, f)
		}
	case *FieldExpression:
		Inspect(n.Base, f)
		Inspect(n.Field, f)
	case *SubscriptExpression:
		Inspect(n.Base, f)
		Inspect(n.Index, f)
	case *ParenExpression:
		Inspect(n.Inner, f)
	case *ArrayLiteral:
		for _, el := range n.Elements {
			Inspect(el, f)
		}
	case *RecordLiteral:
		for _, field := range n.Fields {
			Inspect(field, f)
		}
	case *FieldLiteral:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *Identifier, *BooleanLiteral, *IntegerLiteral, *NullLiteral, *StringLiteral:
	default:
		panic("ast.Inspect: unexpected node type")
	}
}
