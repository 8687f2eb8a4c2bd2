package ir

import (
	"strings"
	"testing"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/token"
	"github.com/funvibe/tackc/internal/typesystem"
)

func testFunction() *Function {
	return NewFunction(&symbols.Symbol{
		Name: "main",
		Kind: symbols.FunctionSymbol,
		Type: typesystem.TFunc{Return: typesystem.Int},
	})
}

func TestUniqueNames(t *testing.T) {
	fn := testFunction()
	names := []string{
		fn.NewTemp("t", typesystem.Int).Name,
		fn.NewTemp("t", typesystem.Int).Name,
		fn.NewLabel("L_main").Name,
		fn.NewTemp("t", typesystem.Bool).Name,
		fn.NewLabel("L_main").Name,
		fn.NewName(&symbols.Symbol{Name: "t", Type: typesystem.Int}).Name,
	}
	expected := []string{"t", "t0", "L_main", "t1", "L_main0", "t2"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("name %d: expected %s, got %s", i, expected[i], names[i])
		}
	}
	if len(fn.Addresses) != len(expected) {
		t.Errorf("expected %d addresses, got %d", len(expected), len(fn.Addresses))
	}
}

func TestPlacedLabelsAttachToNextInstruction(t *testing.T) {
	fn := testFunction()
	a := fn.NewLabel("L")
	b := fn.NewLabel("L")
	fn.PlaceLabel(a)
	fn.PlaceLabel(b)
	if !fn.HasPendingLabels() {
		t.Fatal("expected pending labels")
	}
	fn.Emit(Jump(token.Token{}, a))
	if fn.HasPendingLabels() {
		t.Fatal("labels should have been attached")
	}
	if len(fn.Instructions[0].Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(fn.Instructions[0].Labels))
	}
}

func TestOperandOrder(t *testing.T) {
	fn := testFunction()
	out := fn.NewTemp("t", typesystem.Int)
	base := fn.NewTemp("t", typesystem.TArray{Elem: typesystem.Int})
	idx := fn.NewTemp("t", typesystem.Int)

	ops := ArrRead(token.Token{}, out, base, idx).Operands()
	if len(ops) != 3 || ops[0] != Address(out) || ops[1] != Address(base) || ops[2] != Address(idx) {
		t.Errorf("unexpected operand order %v", ops)
	}
	if ops := Call(token.Token{}, nil, fn.Symbol, 0).Operands(); len(ops) != 0 {
		t.Errorf("void call should have no operands, got %v", ops)
	}
}

func TestDisassemble(t *testing.T) {
	fn := testFunction()
	x := fn.NewTemp("t", typesystem.Int)
	done := fn.NewLabel("L_main")
	one := Constant(&ast.IntegerLiteral{Value: 1}, typesystem.Int)
	ten := Constant(&ast.IntegerLiteral{Value: 10}, typesystem.Int)

	fn.Emit(Copy(token.Token{}, x, one))
	fn.Emit(RelopJump(token.Token{}, ">=", x, ten, done))
	fn.Emit(Infix(token.Token{}, "+", x, x, one))
	fn.PlaceLabel(done)
	fn.Emit(Return(token.Token{}, x))

	expected := strings.Join([]string{
		"main = fun () -> int",
		"    t = 1;",
		"    if t >= 10 goto L_main;",
		"    t = t + 1;",
		"L_main:",
		"    return t;",
		"",
	}, "\n")
	got := Disassemble(&Program{Functions: []*Function{fn}})
	if got != expected {
		t.Errorf("listing mismatch\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestSizeof(t *testing.T) {
	rec := typesystem.TRecord{Fields: []typesystem.Field{{Name: "a", Type: typesystem.Int}, {Name: "b", Type: typesystem.String}}}
	if got := (&SizeofAddr{Of: rec}).Size(); got != 16 {
		t.Errorf("record size: expected 16, got %d", got)
	}
	if got := (&SizeofAddr{Of: typesystem.TArray{Elem: rec}}).Size(); got != 8 {
		t.Errorf("array element size: expected 8, got %d", got)
	}
}
