package analyzer

import (
	"testing"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/typesystem"
	"github.com/nalgeon/be"
)

func functionNamed(t *testing.T, program *ast.Program, name string) *ast.FunctionDefinition {
	t.Helper()
	for _, fd := range program.Functions {
		if fd.Name.Value == name {
			return fd
		}
	}
	t.Fatalf("function %s not found", name)
	return nil
}

func TestImplicitCastOnArgument(t *testing.T) {
	ctx := analyzeContext(`first = fun (r : (a : int)) -> int { -> r.a; }
main = fun () -> int { -> first((a = 1, b = 2)); }`)
	be.Equal(t, len(ctx.Errors()), 0)

	ret := functionNamed(t, ctx.AstRoot, "main").Body.Statements[0].(*ast.ReturnStatement)
	call := ret.Value.(*ast.CallExpression)
	cast, ok := call.Arguments[0].(*ast.CastExpression)
	be.True(t, ok)
	be.True(t, cast.Implicit)
	be.Equal(t, ctx.TypeMap[cast].String(), "(a : int)")
	be.Equal(t, ctx.TypeMap[cast.Value].String(), "(a : int, b : int)")
}

func TestImplicitCastOnNullAssignment(t *testing.T) {
	ctx := analyzeContext(`main = fun () -> int {
    r = (a = 1);
    r := null;
    -> 0;
}`)
	be.Equal(t, len(ctx.Errors()), 0)

	assign := functionNamed(t, ctx.AstRoot, "main").Body.Statements[1].(*ast.AssignStatement)
	cast, ok := assign.Value.(*ast.CastExpression)
	be.True(t, ok)
	be.True(t, typesystem.Equal(ctx.TypeMap[cast], typesystem.TRecord{Fields: []typesystem.Field{{Name: "a", Type: typesystem.Int}}}))
	be.True(t, typesystem.IsNull(ctx.TypeMap[cast.Value]))
}

func TestImplicitCastOnReturn(t *testing.T) {
	ctx := analyzeContext(`mk = fun () -> (x : int) { -> null; }
main = fun () -> int { -> 0; }`)
	be.Equal(t, len(ctx.Errors()), 0)

	ret := functionNamed(t, ctx.AstRoot, "mk").Body.Statements[0].(*ast.ReturnStatement)
	_, ok := ret.Value.(*ast.CastExpression)
	be.True(t, ok)
}

func TestStringConcatenationCastsOperand(t *testing.T) {
	ctx := analyzeContext(`main = fun () -> int {
    s = "n=" + 42;
    t = true + "!";
    -> 0;
}`)
	be.Equal(t, len(ctx.Errors()), 0)

	stmts := functionNamed(t, ctx.AstRoot, "main").Body.Statements
	first := stmts[0].(*ast.VariableDefinition).Value.(*ast.InfixExpression)
	_, leftCast := first.Left.(*ast.CastExpression)
	rightCast, ok := first.Right.(*ast.CastExpression)
	be.True(t, !leftCast)
	be.True(t, ok)
	be.Equal(t, ctx.TypeMap[rightCast], typesystem.String)
	be.Equal(t, ctx.TypeMap[first], typesystem.String)

	second := stmts[1].(*ast.VariableDefinition).Value.(*ast.InfixExpression)
	_, ok = second.Left.(*ast.CastExpression)
	be.True(t, ok)
}

func TestEveryExpressionIsTyped(t *testing.T) {
	ctx := analyzeContext(`main = fun () -> int {
    a = [1, 2, 3];
    r = (n = size(a), s = "x");
    total = 0;
    for x in a {
        if x > 1 && !(x == 3) {
            total := total + x * 2;
        }
    }
    -> total + r.n + length(r.s) + a[0];
}`)
	be.Equal(t, len(ctx.Errors()), 0)

	// Identifiers also name declarations and fields; only operators and
	// literals are checked here.
	ast.Inspect(ctx.AstRoot, func(n ast.Node) bool {
		e, ok := n.(ast.Expression)
		if !ok {
			return true
		}
		if _, isIdent := e.(*ast.Identifier); isIdent {
			return true
		}
		if _, ok := ctx.TypeMap[e]; !ok {
			t.Errorf("expression %q has no type", e.TokenLiteral())
		}
		return true
	})
}

func TestVariableSymbolsReceiveTypes(t *testing.T) {
	ctx := analyzeContext(`main = fun () -> int {
    a = ["x", "y"];
    for s in a {
        print(s);
    }
    -> 0;
}`)
	be.Equal(t, len(ctx.Errors()), 0)

	fd := functionNamed(t, ctx.AstRoot, "main")
	def := fd.Body.Statements[0].(*ast.VariableDefinition)
	be.Equal(t, ctx.ResolutionMap[def].Type.String(), "[string]")

	loop := fd.Body.Statements[1].(*ast.ForStatement)
	loopVar := ctx.ResolutionMap[loop.Variable]
	be.Equal(t, loopVar.Kind, symbols.VariableSymbol)
	be.Equal(t, loopVar.Type, typesystem.String)
}

func TestUsesResolveToDeclarations(t *testing.T) {
	ctx := analyzeContext(`main = fun () -> int {
    x = 1;
    {
        x = 2;
        -> x;
    }
}`)
	be.Equal(t, len(ctx.Errors()), 0)

	body := functionNamed(t, ctx.AstRoot, "main").Body
	inner := body.Statements[1].(*ast.BlockStatement)
	innerDef := inner.Statements[0].(*ast.VariableDefinition)
	use := inner.Statements[1].(*ast.ReturnStatement).Value.(*ast.Identifier)
	be.True(t, ctx.ResolutionMap[use] == ctx.ResolutionMap[innerDef])
}
