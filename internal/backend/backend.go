// Package backend turns the lowered program into the driver's output.
// This allows switching between assembly and the IR listing.
package backend

import (
	"fmt"

	"github.com/funvibe/tackc/internal/codegen"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/ir"
	"github.com/funvibe/tackc/internal/pipeline"
)

// Backend is the interface for output backends
type Backend interface {
	// Emit renders the program of the pipeline context
	Emit(ctx *pipeline.PipelineContext) (string, error)

	// Name returns the emit mode it implements
	Name() string
}

// AsmBackend prints x86-64 assembly.
type AsmBackend struct{}

func (b *AsmBackend) Name() string { return config.EmitAsm }

func (b *AsmBackend) Emit(ctx *pipeline.PipelineContext) (string, error) {
	if ctx.Program == nil {
		return "", fmt.Errorf("no program to generate code for")
	}
	return codegen.New(ctx.Options).Generate(ctx.Program), nil
}

// IRBackend prints the three-address code listing.
type IRBackend struct{}

func (b *IRBackend) Name() string { return config.EmitIR }

func (b *IRBackend) Emit(ctx *pipeline.PipelineContext) (string, error) {
	if ctx.Program == nil {
		return "", fmt.Errorf("no program to list")
	}
	return ir.Disassemble(ctx.Program), nil
}

// ForMode returns the backend of an emit mode.
func ForMode(mode string) (Backend, error) {
	switch mode {
	case "", config.EmitAsm:
		return &AsmBackend{}, nil
	case config.EmitIR:
		return &IRBackend{}, nil
	}
	return nil, fmt.Errorf("unknown emit mode %q", mode)
}
