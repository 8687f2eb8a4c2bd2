package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OptionsFileName is looked up next to the source file and in its parents.
const OptionsFileName = "tackc.yaml"

// Options represents the tackc.yaml configuration.
type Options struct {
	// MaxErrors stops diagnostic collection once reached.
	MaxErrors int `yaml:"max_errors,omitempty"`

	// FrameAlignment rounds each frame size up to a multiple of this value.
	// Must be a positive multiple of the 8-byte slot size.
	FrameAlignment int `yaml:"frame_alignment,omitempty"`

	// Emit selects the output: "asm" (default) or "ir".
	Emit string `yaml:"emit,omitempty"`

	// Color controls coloured diagnostics: "auto" (default), "always" or "never".
	Color string `yaml:"color,omitempty"`

	Cache  CacheOptions  `yaml:"cache,omitempty"`
	Server ServerOptions `yaml:"server,omitempty"`
}

// CacheOptions configures the compile cache.
type CacheOptions struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Path is the SQLite database file. Relative paths are resolved
	// against the directory holding tackc.yaml.
	Path string `yaml:"path,omitempty"`
}

// ServerOptions configures `tackc serve`.
type ServerOptions struct {
	Addr string `yaml:"addr,omitempty"`
}

// DefaultOptions returns the options used when no tackc.yaml exists.
func DefaultOptions() *Options {
	opts := &Options{}
	opts.setDefaults()
	return opts
}

func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	opts, err := ParseOptions(data, path)
	if err != nil {
		return nil, err
	}
	if opts.Cache.Path != "" && !filepath.IsAbs(opts.Cache.Path) {
		opts.Cache.Path = filepath.Join(filepath.Dir(path), opts.Cache.Path)
	}
	return opts, nil
}

func ParseOptions(data []byte, path string) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := opts.validate(path); err != nil {
		return nil, err
	}
	opts.setDefaults()
	return &opts, nil
}

// FindOptions searches for tackc.yaml starting from dir and walking up
// to parent directories. Returns "" and nil error if not found.
func FindOptions(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, OptionsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks options changed after loading, such as by command
// line flags.
func (o *Options) Validate() error {
	return o.validate("options")
}

func (o *Options) validate(path string) error {
	if o.MaxErrors < 0 {
		return fmt.Errorf("%s: max_errors must not be negative", path)
	}
	if o.FrameAlignment < 0 || o.FrameAlignment%SlotSize != 0 {
		return fmt.Errorf("%s: frame_alignment must be a positive multiple of %d", path, SlotSize)
	}
	switch o.Emit {
	case "", EmitAsm, EmitIR:
	default:
		return fmt.Errorf("%s: unknown emit mode %q", path, o.Emit)
	}
	switch o.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: unknown color mode %q", path, o.Color)
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.MaxErrors == 0 {
		o.MaxErrors = DefaultMaxErrors
	}
	if o.FrameAlignment == 0 {
		o.FrameAlignment = DefaultFrameAlignment
	}
	if o.Emit == "" {
		o.Emit = EmitAsm
	}
	if o.Color == "" {
		o.Color = "auto"
	}
	if o.Cache.Path == "" {
		o.Cache.Path = ".tackc-cache.db"
	}
	if o.Server.Addr == "" {
		o.Server.Addr = DefaultRPCAddr
	}
}
