package analyzer

import (
	"fmt"

	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/typesystem"
)

type intrinsic struct {
	name    string
	formals []typesystem.Field
	result  typesystem.Type
}

func formal(name string, t typesystem.Type) typesystem.Field {
	return typesystem.Field{Name: name, Type: t}
}

var anyArray = typesystem.TArray{Elem: typesystem.Unit}

// intrinsics is the runtime library surface, in registration order.
var intrinsics = []intrinsic{
	{config.AppendFuncName, []typesystem.Field{formal("lhs", typesystem.String), formal("rhs", typesystem.String)}, typesystem.String},
	{config.Bool2IntFuncName, []typesystem.Field{formal("b", typesystem.Bool)}, typesystem.Int},
	{config.Bool2StringFuncName, []typesystem.Field{formal("b", typesystem.Bool)}, typesystem.String},
	{config.Int2BoolFuncName, []typesystem.Field{formal("i", typesystem.Int)}, typesystem.Bool},
	{config.Int2StringFuncName, []typesystem.Field{formal("i", typesystem.Int)}, typesystem.String},
	{config.LengthFuncName, []typesystem.Field{formal("s", typesystem.String)}, typesystem.Int},
	{config.NewArrayFuncName, []typesystem.Field{formal("eSize", typesystem.Int), formal("aSize", typesystem.Int)}, anyArray},
	{config.NewRecordFuncName, []typesystem.Field{formal("rSize", typesystem.Int)}, typesystem.Unit},
	{config.PrintFuncName, []typesystem.Field{formal("s", typesystem.String)}, typesystem.Void},
	{config.RangeFuncName, []typesystem.Field{formal("start", typesystem.Int), formal("end", typesystem.Int)}, typesystem.TArray{Elem: typesystem.Int}},
	{config.SizeFuncName, []typesystem.Field{formal("a", anyArray)}, typesystem.Int},
	{config.String2BoolFuncName, []typesystem.Field{formal("s", typesystem.String)}, typesystem.Bool},
	{config.String2IntFuncName, []typesystem.Field{formal("s", typesystem.String)}, typesystem.Int},
	{config.StringEqualFuncName, []typesystem.Field{formal("lhs", typesystem.String), formal("rhs", typesystem.String)}, typesystem.Bool},
}

// RegisterBuiltins defines the intrinsic functions in the global scope.
// It runs after scope resolution, so a user function that already took an
// intrinsic's name is reported and keeps the name.
func RegisterBuiltins(global *symbols.Scope, diags *diagnostics.Collector) {
	for _, in := range intrinsics {
		if existing, ok := global.Lookup(in.name); ok {
			if !existing.Intrinsic {
				diags.Report(diagnostics.NewError(diagnostics.ErrS002, existing.Token,
					fmt.Sprintf("Redefinition of intrinsic '%s'", in.name)))
			}
			continue
		}
		global.Define(&symbols.Symbol{
			Name:      in.name,
			Kind:      symbols.FunctionSymbol,
			Type:      typesystem.TFunc{Formals: typesystem.TRecord{Fields: in.formals}, Return: in.result},
			Intrinsic: true,
		})
	}
}

// IntrinsicType returns the signature of a runtime library function.
func IntrinsicType(name string) (typesystem.TFunc, bool) {
	for _, in := range intrinsics {
		if in.name == name {
			return typesystem.TFunc{Formals: typesystem.TRecord{Fields: in.formals}, Return: in.result}, true
		}
	}
	return typesystem.TFunc{}, false
}
