package config

import "strings"

const SourceFileExt = ".tack"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".tack", ".tk"}

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// Intrinsic function names. The runtime library provides their bodies.
const (
	AppendFuncName      = "append"
	Bool2IntFuncName    = "bool2int"
	Bool2StringFuncName = "bool2string"
	Int2BoolFuncName    = "int2bool"
	Int2StringFuncName  = "int2string"
	LengthFuncName      = "length"
	NewArrayFuncName    = "newArray"
	NewRecordFuncName   = "newRecord"
	PrintFuncName       = "print"
	RangeFuncName       = "range"
	SizeFuncName        = "size"
	String2BoolFuncName = "string2bool"
	String2IntFuncName  = "string2int"
	StringEqualFuncName = "stringEqual"
)

// Primitive type names
const (
	BoolTypeName   = "bool"
	IntTypeName    = "int"
	StringTypeName = "string"
	VoidTypeName   = "void"
)

// Limits and machine constants
const (
	DefaultMaxErrors = 100
	SlotSize         = 8
	MaxRegisterArgs  = 6

	// StackAlignment is the %rsp alignment required at every call.
	StackAlignment        = 16
	DefaultFrameAlignment = StackAlignment
	DefaultRPCAddr   = "127.0.0.1:7420"
)

// Process exit codes. Failures use distinct negative values.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitSyntax   = -1
	ExitSemantic = -2
	ExitIO       = -3
)

// Emit modes
const (
	EmitAsm = "asm"
	EmitIR  = "ir"
)
