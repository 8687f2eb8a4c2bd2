package casetest

import (
	"testing"

	"github.com/nalgeon/be"
)

const doc = "# Cases\n\n" +
	"Some prose.\n\n" +
	"## Test: first\n\n" +
	"```tack\n" +
	"main = fun () -> int { -> 0; }\n" +
	"```\n\n" +
	"```ir\n" +
	"main = fun () -> int\n" +
	"    return 0;\n" +
	"```\n\n" +
	"## Test: second\n\n" +
	"```tack\n" +
	"main = fun () -> int { -> x; }\n" +
	"```\n\n" +
	"```errors\n" +
	"<input>:1:27: Unknown variable 'x'.\n" +
	"```\n\n" +
	"```asm-contains\n" +
	"ret\n" +
	"```\n"

func TestExtract(t *testing.T) {
	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "first")
	be.Equal(t, cases[0].Input, "main = fun () -> int { -> 0; }")
	be.Equal(t, cases[0].Line, 8)
	be.Equal(t, len(cases[0].Expectations), 1)
	be.Equal(t, cases[0].Expectations[0].Type, ExpectIR)
	be.Equal(t, cases[0].Expectations[0].Content, "main = fun () -> int\n    return 0;")

	be.Equal(t, cases[1].Name, "second")
	be.Equal(t, len(cases[1].Expectations), 2)
	be.Equal(t, cases[1].Expectations[0].Type, ExpectErrors)
	be.Equal(t, cases[1].Expectations[1].Type, ExpectAsmContains)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  string
	}{
		{"fence outside case", "```tack\nx\n```\n", "tack fence found outside of test case"},
		{"unknown fence", "## Test: a\n\n```tack\nx\n```\n\n```wasm\ny\n```\n", "unknown fence language 'wasm'"},
		{"two inputs", "## Test: a\n\n```tack\nx\n```\n\n```tack\ny\n```\n", "multiple input fences"},
		{"no input", "## Test: a\n\n```ir\ny\n```\n", "has no input fence"},
		{"no expectation", "## Test: a\n\n```tack\nx\n```\n", "has no expectation fences"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.doc))
			be.Err(t, err, tt.err)
		})
	}
}

func TestPlainCodeBlocksAreIgnored(t *testing.T) {
	cases, err := Extract([]byte("```\nnot a case\n```\n"))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 0)
}

func TestContainsLines(t *testing.T) {
	asm := "f:\n    push %rbp\n    mov %rbp, %rsp\n    ret\n"
	be.True(t, ContainsLines(asm, "    push %rbp\n    mov %rbp, %rsp"))
	be.True(t, ContainsLines(asm, "f:"))
	be.Equal(t, ContainsLines(asm, "    push %rbp\n    ret"), false)
	be.Equal(t, ContainsLines(asm, "    mov %rbp"), false)
}
