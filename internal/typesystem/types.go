package typesystem

import (
	"strings"

	"github.com/funvibe/tackc/internal/config"
)

// Type is the interface for all types in our system. A nil Type stands
// for a type that could not be resolved.
type Type interface {
	String() string
	typeNode()
}

// TCon is a primitive type: bool, int, string or void.
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }
func (t TCon) typeNode()      {}

// TArray is [Elem].
type TArray struct {
	Elem Type
}

func (t TArray) String() string { return "[" + typeString(t.Elem) + "]" }
func (t TArray) typeNode()      {}

// Field is one named component of a record.
type Field struct {
	Name string
	Type Type
}

// TRecord is an ordered list of uniquely named fields.
type TRecord struct {
	Fields []Field
}

func (t TRecord) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + " : " + typeString(f.Type)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t TRecord) typeNode() {}

// Field returns the index and type of the named field, or -1.
func (t TRecord) Field(name string) (int, Type) {
	for i, f := range t.Fields {
		if f.Name == name {
			return i, f.Type
		}
	}
	return -1, nil
}

// TFunc is (formals) -> Return.
type TFunc struct {
	Formals TRecord
	Return  Type
}

func (t TFunc) String() string { return t.Formals.String() + " -> " + typeString(t.Return) }
func (t TFunc) typeNode()      {}

// TNull is the type of the null literal.
type TNull struct{}

func (t TNull) String() string { return "null" }
func (t TNull) typeNode()      {}

var (
	Bool   Type = TCon{Name: config.BoolTypeName}
	Int    Type = TCon{Name: config.IntTypeName}
	String Type = TCon{Name: config.StringTypeName}
	Void   Type = TCon{Name: config.VoidTypeName}
	Null   Type = TNull{}
	Unit   Type = TRecord{}
)

func typeString(t Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

// TypeString renders t, using "?" for an unresolved type.
func TypeString(t Type) string {
	return typeString(t)
}

// IsKnown reports whether t and all of its components are resolved.
func IsKnown(t Type) bool {
	switch tt := t.(type) {
	case nil:
		return false
	case TArray:
		return IsKnown(tt.Elem)
	case TRecord:
		for _, f := range tt.Fields {
			if !IsKnown(f.Type) {
				return false
			}
		}
		return true
	case TFunc:
		return IsKnown(tt.Formals) && IsKnown(tt.Return)
	}
	return true
}

// IsVoid reports whether t is void, the result of a call without a value.
func IsVoid(t Type) bool {
	return Equal(t, Void)
}

func IsRecord(t Type) bool {
	_, ok := t.(TRecord)
	return ok
}

func IsNull(t Type) bool {
	_, ok := t.(TNull)
	return ok
}
