package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/lexer"
	"github.com/funvibe/tackc/internal/parser"
	"github.com/funvibe/tackc/internal/pipeline"
)

// analyzeContext lexes, parses, resolves and type checks input.
func analyzeContext(input string) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(input, "", config.DefaultOptions())
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&ScopeResolverProcessor{},
		&SemanticAnalyzerProcessor{},
	).Run(ctx)
}

func analyzeSource(input string) []*diagnostics.DiagnosticError {
	return analyzeContext(input).Errors()
}

// expectAnalyzerError asserts that at least one error with the given code is produced.
func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := analyzeSource(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, joinErrors(errs), input)
	return nil
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, input, code)
	if !strings.Contains(e.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

func expectNoAnalyzerErrors(t *testing.T, input string) {
	t.Helper()
	if errs := analyzeSource(input); len(errs) > 0 {
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", joinErrors(errs), input)
	}
}

func joinErrors(errs []*diagnostics.DiagnosticError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// ---------------------------------------------------------------------------
// S001 / S002: scope errors
// ---------------------------------------------------------------------------

func TestS001_DuplicateVariable(t *testing.T) {
	input := `main = fun () -> int {
    x = 1;
    x = 2;
    -> x;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrS001,
		"<input>:3:5: Duplicate definition of 'x' (previous definition at <input>:2:5)")
}

func TestS001_DuplicateFormal(t *testing.T) {
	input := `f = fun (a : int, a : bool) -> int { -> 0; }
main = fun () -> int { -> 0; }`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrS001, "Duplicate definition of 'a'")
}

func TestS001_DuplicateFunction(t *testing.T) {
	input := `main = fun () -> int { -> 0; }
main = fun () -> int { -> 1; }`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrS001, "Duplicate definition of 'main'")
}

func TestS001_SingleDiagnosticPerDuplicate(t *testing.T) {
	input := `main = fun () -> int {
    x = 1;
    x = 2;
    -> 0;
}`
	errs := analyzeSource(input)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got:\n%s", joinErrors(errs))
	}
}

func TestShadowingInNestedBlockIsAllowed(t *testing.T) {
	expectNoAnalyzerErrors(t, `main = fun () -> int {
    x = 1;
    {
        x = "inner";
        print(x);
    }
    -> x;
}`)
}

func TestForVariableShadowsOuter(t *testing.T) {
	expectNoAnalyzerErrors(t, `main = fun () -> int {
    i = "outer";
    for i in [1, 2, 3] {
        j = i + 1;
    }
    print(i);
    -> 0;
}`)
}

func TestS002_IntrinsicRedefinition(t *testing.T) {
	input := `print = fun (s : string) -> void { }
main = fun () -> int { -> 0; }`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrS002, "Redefinition of intrinsic 'print'")
}

func TestErrorLimitStopsAnalysis(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("main = fun () -> int {\n")
	for i := 0; i < 151; i++ {
		sb.WriteString("    x = 1;\n")
	}
	sb.WriteString("    -> 0;\n}\n")

	errs := analyzeSource(sb.String())
	if len(errs) != config.DefaultMaxErrors {
		t.Fatalf("expected %d errors, got %d", config.DefaultMaxErrors, len(errs))
	}
}

// ---------------------------------------------------------------------------
// T001: unknown names
// ---------------------------------------------------------------------------

func TestT001_UnknownVariable(t *testing.T) {
	expectAnalyzerErrorContains(t, `main = fun () -> int { -> y; }`, diagnostics.ErrT001, "Unknown variable 'y'")
}

func TestT001_UnknownFunction(t *testing.T) {
	expectAnalyzerErrorContains(t, `main = fun () -> int { -> g(); }`, diagnostics.ErrT001, "Unknown function 'g'")
}

func TestT001_UnknownField(t *testing.T) {
	input := `main = fun () -> int {
    r = (a = 1);
    -> r.b;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrT001, "<input>:3:10: Unknown field 'b'")
}

func TestT001_VariableNotVisibleAfterBlock(t *testing.T) {
	input := `main = fun () -> int {
    if true { x = 1; }
    -> x;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrT001, "Unknown variable 'x'")
}

func TestRecordFieldValuesSeeEnclosingScope(t *testing.T) {
	expectNoAnalyzerErrors(t, `main = fun () -> int {
    a = 1;
    r = (a = a, b = a + 1);
    -> r.b;
}`)
}

// ---------------------------------------------------------------------------
// T002: unresolved types
// ---------------------------------------------------------------------------

func TestT002_EmptyArrayLiteral(t *testing.T) {
	input := `main = fun () -> int {
    a = [];
    -> 0;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrT002, "Could not resolve type for variable 'a'")
}

func TestT002_UnresolvedArrayElement(t *testing.T) {
	input := `main = fun () -> int {
    a = [1, y];
    -> 0;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrT002, "Could not resolve array element type")
}

func TestT002_UnresolvedVariable(t *testing.T) {
	input := `main = fun () -> int {
    x = y;
    -> 0;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrT002, "Could not resolve type for variable 'x'")
}

func TestT002_UnresolvedRecordField(t *testing.T) {
	input := `main = fun () -> int {
    r = (a = y);
    -> 0;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrT002, "Could not resolve type for field 'a'")
}

// ---------------------------------------------------------------------------
// T003: type mismatches
// ---------------------------------------------------------------------------

func TestT003_Mismatches(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		subst string
	}{
		{"assign", `x = 1; x := "s"; -> 0;`, "Cannot assign to 'int' from 'string'"},
		{"for subject", `for i in 5 { } -> 0;`, "Subject of for-loop must be array"},
		{"if condition", `if 1 { } -> 0;`, "Boolean expected"},
		{"while condition", `while "s" { } -> 0;`, "Boolean expected"},
		{"logical operand", `b = true && 1; -> 0;`, "Boolean expected"},
		{"return value", `-> "s";`, "Expected return value of type 'int', found 'string'"},
		{"missing return value", `->;`, "Expected return value of type 'int', found 'void'"},
		{"compare", `b = 1 == "s"; -> 0;`, "Cannot compare 'int' and 'string'"},
		{"arithmetic", `x = 1 - true; -> 0;`, "Integer expected"},
		{"subscript index", `a = [1]; -> a["0"];`, "Integer expected"},
		{"array elements", `a = [1, "s"]; -> 0;`, "Expected element of type 'int', found 'string'"},
		{"formal", `print(1); -> 0;`, "Formal 's' of function 'print' expects 'string', found 'int' instead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "main = fun () -> int { " + tt.body + " }"
			expectAnalyzerErrorContains(t, input, diagnostics.ErrT003, tt.subst)
		})
	}
}

func TestBooleanExpectedPointsAtCondition(t *testing.T) {
	input := `main = fun () -> int {
    if 1 + 2 { }
    -> 0;
}`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrT003, "<input>:2:8: Boolean expected")
}

func TestT003_VoidValue(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"variable initializer", `x = print("a"); -> 0;`},
		{"explicit cast", `-> print("a") : int;`},
		{"arithmetic operand", `-> 1 + print("a");`},
		{"concatenation operand", `s = "a" + print("b"); -> 0;`},
		{"comparison", `if print("a") == print("b") { -> 1; } -> 0;`},
		{"argument", `print(print("a")); -> 0;`},
		{"array element", `a = [print("a")]; -> 0;`},
		{"record field", `r = (f = print("a")); -> 0;`},
		{"condition", `while print("a") { } -> 0;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "main = fun () -> int { " + tt.body + " }"
			expectAnalyzerErrorContains(t, input, diagnostics.ErrT003, "Cannot use void value")
		})
	}
}

func TestVoidValueReportedOnce(t *testing.T) {
	errs := analyzeSource(`main = fun () -> int { x = print("a"); -> 0; }`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got:\n%s", joinErrors(errs))
	}
	if got := errs[0].Error(); got != "<input>:1:28: Cannot use void value." {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestVoidReturnInVoidFunction(t *testing.T) {
	expectAnalyzerErrorContains(t, `main = fun () -> void { -> print("a"); }`,
		diagnostics.ErrT003, "Cannot use void value")
	expectNoAnalyzerErrors(t, `main = fun () -> void { print("a"); ->; }`)
}

func TestNullComparesWithRecords(t *testing.T) {
	expectNoAnalyzerErrors(t, `main = fun () -> int {
    r = (a = 1);
    if r == null { -> 1; }
    if null != r { -> 2; }
    -> 0;
}`)
}

// ---------------------------------------------------------------------------
// T004 .. T007
// ---------------------------------------------------------------------------

func TestT004_Arity(t *testing.T) {
	expectAnalyzerErrorContains(t, `main = fun () -> int { print("a", "b"); -> 0; }`,
		diagnostics.ErrT004, "Function 'print' has 1 formals, but there are 2 actuals")
}

func TestT005_Cast(t *testing.T) {
	expectAnalyzerErrorContains(t, `main = fun () -> int { -> [1] : int; }`,
		diagnostics.ErrT005, "Cannot cast from type '[int]' to type 'int'")
}

func TestT005_StringConcatenation(t *testing.T) {
	expectAnalyzerErrorContains(t, `main = fun () -> int { s = "a" + [1]; -> 0; }`,
		diagnostics.ErrT005, "Cannot convert from type '[int]' to type 'string'")
}

func TestT006_ImmutableTarget(t *testing.T) {
	expectAnalyzerErrorContains(t, `main = fun () -> int { (1 + 2) := 3; -> 0; }`,
		diagnostics.ErrT006, "Assignment to immutable expression")
}

func TestT007_WrongKind(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		subst string
	}{
		{"function as variable", `x = print; -> 0;`, "Variable name expected"},
		{"variable as function", `x = 1; -> x();`, "Function name expected"},
		{"field of int", `x = 1; -> x.a;`, "Base of field expression must be record"},
		{"subscript of int", `x = 1; -> x[0];`, "Base of subscript must be array"},
		{"call of expression", `r = (f = 1); -> r.f();`, "Function name must be simple identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "main = fun () -> int { " + tt.body + " }"
			expectAnalyzerErrorContains(t, input, diagnostics.ErrT007, tt.subst)
		})
	}
}

func TestSizeAcceptsAnyArray(t *testing.T) {
	expectNoAnalyzerErrors(t, `main = fun () -> int {
    a = [1, 2];
    b = ["x"];
    -> size(a) + size(b);
}`)
}
