package backend

import (
	"strings"
	"testing"

	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/pipeline"
	"github.com/nalgeon/be"
)

const program = `main = fun (args : [string]) -> int {
    -> size(args);
}`

func compileWith(t *testing.T, source, emit string) *pipeline.PipelineContext {
	t.Helper()
	opts := config.DefaultOptions()
	opts.Emit = emit
	ctx, err := Compile(source, "main.tack", opts)
	be.Err(t, err, nil)
	return ctx
}

func TestForMode(t *testing.T) {
	b, err := ForMode("")
	be.Err(t, err, nil)
	be.Equal(t, b.Name(), config.EmitAsm)

	b, err = ForMode(config.EmitIR)
	be.Err(t, err, nil)
	be.Equal(t, b.Name(), config.EmitIR)

	_, err = ForMode("wasm")
	be.Err(t, err, `unknown emit mode "wasm"`)
}

func TestCompileAsm(t *testing.T) {
	ctx := compileWith(t, program, config.EmitAsm)
	be.Equal(t, ctx.HasErrors(), false)
	be.True(t, strings.HasPrefix(ctx.Output, ".intel_syntax\n"))
	be.True(t, strings.Contains(ctx.Output, "    call size\n"))
}

func TestCompileIR(t *testing.T) {
	ctx := compileWith(t, program, config.EmitIR)
	be.Equal(t, ctx.HasErrors(), false)
	be.True(t, strings.HasPrefix(ctx.Output, "main = fun (args : [string]) -> int\n"))
	be.True(t, strings.Contains(ctx.Output, " = call size : 1;\n"))
}

func TestCompileWithErrorsEmitsNothing(t *testing.T) {
	ctx := compileWith(t, `main = fun () -> int { -> x; }`, config.EmitAsm)
	be.True(t, ctx.HasErrors())
	be.Equal(t, ctx.Program == nil, true)
	be.Equal(t, ctx.Output, "")
	be.Equal(t, ctx.Errors()[0].Error(), "main.tack:1:27: Unknown variable 'x'.")
}

func TestCompileUnknownMode(t *testing.T) {
	opts := config.DefaultOptions()
	opts.Emit = "wasm"
	_, err := Compile(program, "", opts)
	be.Err(t, err, "unknown emit mode")
}

func TestEmitProcessorSkipsMissingProgram(t *testing.T) {
	ctx := pipeline.NewContext("", "", nil)
	ctx = NewEmitProcessor(&AsmBackend{}).Process(ctx)
	be.Equal(t, ctx.Output, "")
	be.Equal(t, ctx.HasErrors(), false)
}
