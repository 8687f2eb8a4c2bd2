package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOptions_Full(t *testing.T) {
	yaml := `
max_errors: 10
frame_alignment: 16
emit: ir
color: never
cache:
  enabled: true
  path: /tmp/tackc.db
server:
  addr: ":9000"
`
	opts, err := ParseOptions([]byte(yaml), "tackc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.MaxErrors != 10 {
		t.Errorf("max_errors = %d, want 10", opts.MaxErrors)
	}
	if opts.FrameAlignment != 16 {
		t.Errorf("frame_alignment = %d, want 16", opts.FrameAlignment)
	}
	if opts.Emit != EmitIR {
		t.Errorf("emit = %q, want ir", opts.Emit)
	}
	if opts.Color != "never" {
		t.Errorf("color = %q, want never", opts.Color)
	}
	if !opts.Cache.Enabled || opts.Cache.Path != "/tmp/tackc.db" {
		t.Errorf("cache = %+v", opts.Cache)
	}
	if opts.Server.Addr != ":9000" {
		t.Errorf("server.addr = %q, want :9000", opts.Server.Addr)
	}
}

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := ParseOptions([]byte("{}"), "tackc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultOptions()
	if *opts != *def {
		t.Errorf("got %+v, want defaults %+v", opts, def)
	}
	if def.MaxErrors != DefaultMaxErrors || def.FrameAlignment != DefaultFrameAlignment || def.Emit != EmitAsm {
		t.Errorf("unexpected defaults %+v", def)
	}
}

func TestParseOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"negative max errors", "max_errors: -1", "max_errors must not be negative"},
		{"odd alignment", "frame_alignment: 12", "frame_alignment must be a positive multiple of 8"},
		{"unknown emit", "emit: wasm", `unknown emit mode "wasm"`},
		{"unknown color", "color: sometimes", `unknown color mode "sometimes"`},
		{"bad yaml", "emit: [", "parsing tackc.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptions([]byte(tt.yaml), "tackc.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err, tt.msg)
			}
		})
	}
}

func TestValidateAfterOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.Emit = "wasm"
	if err := opts.Validate(); err == nil {
		t.Error("expected error for unknown emit mode")
	}
}

func TestLoadOptions_RelativeCachePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, OptionsFileName)
	if err := os.WriteFile(path, []byte("cache:\n  path: build/cache.db\n"), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "build", "cache.db"); opts.Cache.Path != want {
		t.Errorf("cache path = %q, want %q", opts.Cache.Path, want)
	}
}

func TestFindOptions_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, OptionsFileName)
	if err := os.WriteFile(path, []byte("emit: ir\n"), 0644); err != nil {
		t.Fatal(err)
	}
	found, err := FindOptions(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != path {
		t.Errorf("found %q, want %q", found, path)
	}
}

func TestSourceExtensions(t *testing.T) {
	if !HasSourceExt("a.tack") || !HasSourceExt("a.tk") || HasSourceExt("a.go") {
		t.Error("HasSourceExt mismatch")
	}
	if TrimSourceExt("prog.tack") != "prog" {
		t.Error("TrimSourceExt mismatch")
	}
}
