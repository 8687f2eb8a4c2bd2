package cli

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/server"
	"github.com/nalgeon/be"
)

const program = `main = fun (args : [string]) -> int {
    print("hello");
    -> 0;
}
`

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(append([]string{"tackc"}, args...), Env{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHelp(t *testing.T) {
	r := run(t, "", "help")
	be.Equal(t, r.code, config.ExitOK)
	be.True(t, strings.HasPrefix(r.stdout, "Usage:"))
}

func TestNoArguments(t *testing.T) {
	r := run(t, "")
	be.Equal(t, r.code, config.ExitUsage)
	be.True(t, strings.Contains(r.stderr, "Usage:"))
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown flag", []string{"-x", "a.tack"}, "unknown flag -x"},
		{"missing value", []string{"a.tack", "-emit"}, "flag -emit needs a value"},
		{"bad number", []string{"-frame-align", "zero", "a.tack"}, "needs a positive number"},
		{"two sources", []string{"a.tack", "b.tack"}, "more than one source file"},
		{"no source", []string{"-emit", "ir"}, "no source file"},
		{"w and o", []string{"-w", "-o", "x.s", "a.tack"}, "cannot be combined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			be.Equal(t, r.code, config.ExitUsage)
			be.True(t, strings.Contains(r.stderr, tt.msg))
		})
	}
}

func TestCompileToStdout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.tack", program)
	r := run(t, "", path)
	be.Equal(t, r.code, config.ExitOK)
	be.Equal(t, r.stderr, "")
	be.True(t, strings.HasPrefix(r.stdout, ".intel_syntax\n"))
	be.True(t, strings.Contains(r.stdout, "    call print\n"))
}

func TestCompileIR(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.tack", program)
	r := run(t, "", "-emit", "ir", path)
	be.Equal(t, r.code, config.ExitOK)
	be.True(t, strings.HasPrefix(r.stdout, "main = fun (args : [string]) -> int\n"))
}

func TestCompileFromStdin(t *testing.T) {
	r := run(t, program, "-emit", "ir", "-")
	be.Equal(t, r.code, config.ExitOK)
	be.True(t, strings.Contains(r.stdout, "call print : 1;"))
}

func TestSemanticErrorExitCode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.tack", "main = fun () -> int { -> y; }\n")
	r := run(t, "", path)
	be.Equal(t, r.code, config.ExitSemantic)
	be.Equal(t, r.stdout, "")
	be.Equal(t, r.stderr, path+":1:27: Unknown variable 'y'.\nThere was 1 error.\n")
}

func TestSyntaxErrorExitCode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.tack", "main fun () -> int { -> 0; }\n")
	r := run(t, "", path)
	be.Equal(t, r.code, config.ExitSyntax)
	be.True(t, strings.Contains(r.stderr, "Syntax error"))
}

func TestMissingFile(t *testing.T) {
	r := run(t, "", filepath.Join(t.TempDir(), "missing.tack"))
	be.Equal(t, r.code, config.ExitIO)
	be.True(t, strings.HasPrefix(r.stderr, "tackc: "))
}

func TestWriteNextToSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hello.tack", program)
	r := run(t, "", "-w", "-emit", "ir", path)
	be.Equal(t, r.code, config.ExitOK)
	be.Equal(t, r.stdout, "")

	data, err := os.ReadFile(filepath.Join(dir, "hello.ir"))
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(string(data), "main = fun"))
}

func TestOutputFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hello.tack", program)
	out := filepath.Join(dir, "out.s")
	r := run(t, "", "-o", out, path)
	be.Equal(t, r.code, config.ExitOK)

	data, err := os.ReadFile(out)
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(string(data), ".intel_syntax\n"))
}

func TestOptionsFileIsFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OptionsFileName, "emit: ir\n")
	path := writeFile(t, dir, "hello.tack", program)

	r := run(t, "", path)
	be.Equal(t, r.code, config.ExitOK)
	be.True(t, strings.HasPrefix(r.stdout, "main = fun"))

	// Flags win over the file.
	r = run(t, "", "-emit", "asm", path)
	be.True(t, strings.HasPrefix(r.stdout, ".intel_syntax\n"))
}

func TestInvalidOptions(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "custom.yaml", "frame_alignment: 12\n")
	path := writeFile(t, dir, "hello.tack", program)

	r := run(t, "", "-config", cfg, path)
	be.Equal(t, r.code, config.ExitUsage)
	be.True(t, strings.Contains(r.stderr, "frame_alignment"))

	r = run(t, "", "-color", "purple", path)
	be.Equal(t, r.code, config.ExitUsage)
}

func TestCacheIsCreated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OptionsFileName, "cache:\n  path: build.db\n")
	path := writeFile(t, dir, "hello.tack", program)

	first := run(t, "", "-cache", path)
	be.Equal(t, first.code, config.ExitOK)
	_, err := os.Stat(filepath.Join(dir, "build.db"))
	be.Err(t, err, nil)

	second := run(t, "", "-cache", path)
	be.Equal(t, second.code, config.ExitOK)
	be.Equal(t, second.stdout, first.stdout)
}

func TestRemoteCompile(t *testing.T) {
	srv, err := server.New(nil, nil, nil)
	be.Err(t, err, nil)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	be.Err(t, err, nil)
	go srv.Serve(lis)
	defer srv.Stop()

	dir := t.TempDir()
	path := writeFile(t, dir, "hello.tack", program)
	r := run(t, "", "-remote", lis.Addr().String(), "-emit", "ir", path)
	be.Equal(t, r.code, config.ExitOK)
	be.True(t, strings.HasPrefix(r.stdout, "main = fun"))

	bad := writeFile(t, dir, "bad.tack", "main = fun () -> int { -> y; }\n")
	r = run(t, "", "-remote", lis.Addr().String(), bad)
	be.Equal(t, r.code, config.ExitSemantic)
	be.True(t, strings.Contains(r.stderr, "Unknown variable 'y'."))
	be.True(t, strings.Contains(r.stderr, "There was 1 error."))
}

func TestFormatCommand(t *testing.T) {
	r := run(t, "main=fun()->void{print(\"x\");}", "fmt", "-")
	be.Equal(t, r.code, config.ExitOK)
	be.Equal(t, r.stdout, "main = fun () -> void {\n    print(\"x\");\n}\n")
}

func TestFormatRewrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.tack", "main = fun (args : [string]) -> int {\n-> 0; // done\n}\n")
	r := run(t, "", "fmt", "-w", path)
	be.Equal(t, r.code, config.ExitOK)
	be.Equal(t, r.stdout, "")
	data, err := os.ReadFile(path)
	be.Err(t, err, nil)
	be.Equal(t, string(data), "main = fun (args : [string]) -> int {\n    -> 0;\n}\n")
}

func TestFormatSyntaxError(t *testing.T) {
	r := run(t, "main = fun () -> void {", "fmt", "-")
	be.Equal(t, r.code, config.ExitSyntax)
	be.True(t, strings.Contains(r.stderr, "Syntax error"))
}

func TestFormatUsage(t *testing.T) {
	r := run(t, "", "fmt", "-w", "-")
	be.Equal(t, r.code, config.ExitUsage)
	r = run(t, "", "fmt")
	be.Equal(t, r.code, config.ExitUsage)
}

func TestErrorCap(t *testing.T) {
	src := "main = fun () -> void {\n" + strings.Repeat("    x = 1;\n", 151) + "}\n"
	r := run(t, src, "-")
	be.Equal(t, r.code, config.ExitSemantic)
	be.Equal(t, strings.Count(r.stderr, "Duplicate definition of 'x'"), config.DefaultMaxErrors)
	be.True(t, strings.HasSuffix(r.stderr, "There were 100 errors.\n"))
}
