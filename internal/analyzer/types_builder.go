package analyzer

import (
	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/typesystem"
)

// BuildType converts an AST Type node into a typesystem.Type. Written
// types are purely structural, so no scope lookup is needed.
func BuildType(t ast.Type) typesystem.Type {
	switch t := t.(type) {
	case *ast.PrimitiveType:
		switch t.Name {
		case config.BoolTypeName:
			return typesystem.Bool
		case config.IntTypeName:
			return typesystem.Int
		case config.StringTypeName:
			return typesystem.String
		case config.VoidTypeName:
			return typesystem.Void
		}
		panic("analyzer: unknown primitive type " + t.Name)
	case *ast.ArrayType:
		return typesystem.TArray{Elem: BuildType(t.Element)}
	case *ast.RecordType:
		return buildRecord(t)
	case *ast.FunctionType:
		return buildFunc(t)
	}
	panic("analyzer: unexpected type node")
}

func buildRecord(t *ast.RecordType) typesystem.TRecord {
	rec := typesystem.TRecord{}
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		// Duplicates are reported by the scope resolver; the first one wins.
		if seen[f.Name.Value] {
			continue
		}
		seen[f.Name.Value] = true
		rec.Fields = append(rec.Fields, typesystem.Field{Name: f.Name.Value, Type: BuildType(f.Type)})
	}
	return rec
}

func buildFunc(t *ast.FunctionType) typesystem.TFunc {
	return typesystem.TFunc{Formals: buildRecord(t.Formals), Return: BuildType(t.ReturnType)}
}
