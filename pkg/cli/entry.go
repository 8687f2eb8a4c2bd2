package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/funvibe/tackc/internal/backend"
	"github.com/funvibe/tackc/internal/cache"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/server"
	"github.com/funvibe/tackc/internal/token"
	"github.com/funvibe/tackc/internal/utils"
)

const usage = `Usage:
  tackc [flags] <file>        compile a Tack program ("-" reads stdin)
  tackc fmt [-w] <file>       print the program in canonical layout
  tackc serve [flags]         run the gRPC compile service
  tackc help                  show this message

Compile flags:
  -emit asm|ir         output x86-64 assembly (default) or the IR listing
  -o <path>            write the output to path instead of stdout
  -w                   write the output next to the source (prog.s, prog.ir)
  -config <path>       options file (default: nearest tackc.yaml)
  -frame-align <n>     round frame sizes up to a multiple of n
  -max-errors <n>      stop after n errors
  -color auto|always|never
  -cache / -no-cache   use the compile cache
  -remote <addr>       compile on a running tackc server

Format flags:
  -w                   rewrite the source file instead of printing

Serve flags:
  -addr <host:port>    listen address (default ` + config.DefaultRPCAddr + `)
  -config <path>       options file
  -cache / -no-cache   use the compile cache
`

// Env is the process environment the driver runs in.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command line args (args[0] is the program name) and
// returns the process exit code.
func Run(args []string, env Env) int {
	if len(args) < 2 {
		fmt.Fprint(env.Stderr, usage)
		return config.ExitUsage
	}

	switch args[1] {
	case "help", "-help", "--help", "-h":
		fmt.Fprint(env.Stdout, usage)
		return config.ExitOK
	case "fmt":
		return handleFormat(args[2:], env)
	case "serve":
		return handleServe(args[2:], env)
	}
	return handleCompile(args[1:], env)
}

// flags holds the command line settings shared by compile and serve.
// Unset string flags are empty; unset numbers are zero.
type flags struct {
	emit       string
	output     string
	writeNext  bool
	configPath string
	frameAlign int
	maxErrors  int
	color      string
	cache      string // "", "on" or "off"
	remote     string
	addr       string
	source     string
}

func parseFlags(args []string, serve bool) (*flags, error) {
	f := &flags{}
	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("flag %s needs a value", name)
		}
		*i++
		return args[*i], nil
	}
	number := func(i *int, name string) (int, error) {
		s, err := value(i, name)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("flag %s needs a positive number, got %q", name, s)
		}
		return n, nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := strings.TrimPrefix(arg, "-")
		var err error
		switch {
		case arg == "-config" || arg == "--config":
			f.configPath, err = value(&i, arg)
		case arg == "-cache":
			f.cache = "on"
		case arg == "-no-cache":
			f.cache = "off"
		case serve && arg == "-addr":
			f.addr, err = value(&i, arg)
		case !serve && arg == "-emit":
			f.emit, err = value(&i, arg)
		case !serve && arg == "-o":
			f.output, err = value(&i, arg)
		case !serve && arg == "-w":
			f.writeNext = true
		case !serve && arg == "-frame-align":
			f.frameAlign, err = number(&i, arg)
		case !serve && arg == "-max-errors":
			f.maxErrors, err = number(&i, arg)
		case !serve && arg == "-color":
			f.color, err = value(&i, arg)
		case !serve && arg == "-remote":
			f.remote, err = value(&i, arg)
		case !serve && (arg == utils.StdinPath || !strings.HasPrefix(arg, "-")):
			if f.source != "" {
				return nil, fmt.Errorf("more than one source file: %s and %s", f.source, arg)
			}
			f.source = arg
		default:
			return nil, fmt.Errorf("unknown flag -%s", name)
		}
		if err != nil {
			return nil, err
		}
	}

	if !serve && f.source == "" {
		return nil, fmt.Errorf("no source file")
	}
	if f.writeNext && f.output != "" {
		return nil, fmt.Errorf("-w and -o cannot be combined")
	}
	if f.writeNext && f.source == utils.StdinPath {
		return nil, fmt.Errorf("-w needs a source file")
	}
	return f, nil
}

// loadOptions reads the explicit or nearest options file and applies the
// flags on top of it.
func loadOptions(f *flags) (*config.Options, error) {
	path := f.configPath
	if path == "" {
		found, err := config.FindOptions(utils.SourceDir(f.source))
		if err != nil {
			return nil, err
		}
		path = found
	}

	opts := config.DefaultOptions()
	if path != "" {
		loaded, err := config.LoadOptions(path)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	if f.emit != "" {
		opts.Emit = f.emit
	}
	if f.frameAlign != 0 {
		opts.FrameAlignment = f.frameAlign
	}
	if f.maxErrors != 0 {
		opts.MaxErrors = f.maxErrors
	}
	if f.color != "" {
		opts.Color = f.color
	}
	switch f.cache {
	case "on":
		opts.Cache.Enabled = true
	case "off":
		opts.Cache.Enabled = false
	}
	if f.addr != "" {
		opts.Server.Addr = f.addr
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func openCache(opts *config.Options) (*cache.Cache, error) {
	if !opts.Cache.Enabled {
		return nil, nil
	}
	return cache.Open(opts.Cache.Path)
}

// driverError prints a diagnostic that has no source position.
func driverError(env Env, code diagnostics.ErrorCode, file string, err error) {
	d := diagnostics.NewError(code, token.Token{}, err.Error())
	d.File = file
	diagnostics.NewPrinter(env.Stderr, "auto").Print(d)
}

func readSource(path string, env Env) (string, error) {
	if path == utils.StdinPath {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func handleCompile(args []string, env Env) int {
	f, err := parseFlags(args, false)
	if err != nil {
		fmt.Fprintf(env.Stderr, "tackc: %s\n\n%s", err, usage)
		return config.ExitUsage
	}
	opts, err := loadOptions(f)
	if err != nil {
		driverError(env, diagnostics.ErrD002, "", err)
		return config.ExitUsage
	}

	source, err := readSource(f.source, env)
	if err != nil {
		driverError(env, diagnostics.ErrD001, "", err)
		return config.ExitIO
	}
	path := f.source
	if path == utils.StdinPath {
		path = ""
	}

	var output string
	var code int
	if f.remote != "" {
		output, code = compileRemote(f.remote, source, path, opts, env)
	} else {
		output, code = compileLocal(source, path, opts, env)
	}
	if code != config.ExitOK {
		return code
	}

	target := f.output
	if f.writeNext {
		target = utils.OutputPath(f.source, opts.Emit)
	}
	if target == "" {
		io.WriteString(env.Stdout, output)
		return config.ExitOK
	}
	if err := os.WriteFile(target, []byte(output), 0644); err != nil {
		driverError(env, diagnostics.ErrD001, target, err)
		return config.ExitIO
	}
	return config.ExitOK
}

func handleFormat(args []string, env Env) int {
	var path string
	rewrite := false
	for _, arg := range args {
		switch {
		case arg == "-w":
			rewrite = true
		case arg == utils.StdinPath || !strings.HasPrefix(arg, "-"):
			if path != "" {
				fmt.Fprintf(env.Stderr, "tackc: more than one source file: %s and %s\n\n%s", path, arg, usage)
				return config.ExitUsage
			}
			path = arg
		default:
			fmt.Fprintf(env.Stderr, "tackc: unknown flag %s\n\n%s", arg, usage)
			return config.ExitUsage
		}
	}
	if path == "" || (rewrite && path == utils.StdinPath) {
		fmt.Fprintf(env.Stderr, "tackc: fmt needs a source file\n\n%s", usage)
		return config.ExitUsage
	}

	source, err := readSource(path, env)
	if err != nil {
		driverError(env, diagnostics.ErrD001, "", err)
		return config.ExitIO
	}
	name := path
	if name == utils.StdinPath {
		name = ""
	}
	ctx := backend.Format(source, name, nil)
	if ctx.HasErrors() {
		diagnostics.NewPrinter(env.Stderr, "auto").PrintAll(ctx.Errors())
		return config.ExitSyntax
	}
	if !rewrite {
		io.WriteString(env.Stdout, ctx.Output)
		return config.ExitOK
	}
	if ctx.Output == source {
		return config.ExitOK
	}
	if err := os.WriteFile(path, []byte(ctx.Output), 0644); err != nil {
		driverError(env, diagnostics.ErrD001, path, err)
		return config.ExitIO
	}
	return config.ExitOK
}

func compileLocal(source, path string, opts *config.Options, env Env) (string, int) {
	c, err := openCache(opts)
	if err != nil {
		driverError(env, diagnostics.ErrD001, opts.Cache.Path, err)
		return "", config.ExitIO
	}
	if c != nil {
		defer c.Close()
	}

	res, err := backend.Build(context.Background(), c, source, path, opts)
	if err != nil {
		driverError(env, diagnostics.ErrD001, path, err)
		return "", config.ExitIO
	}
	if !res.OK() {
		diagnostics.NewPrinter(env.Stderr, opts.Color).PrintAll(res.Errors)
		return "", exitCodeFor(res.Errors)
	}
	return res.Output, config.ExitOK
}

func exitCodeFor(errs []*diagnostics.DiagnosticError) int {
	for _, e := range errs {
		if e.IsSyntax() {
			return config.ExitSyntax
		}
	}
	return config.ExitSemantic
}

func compileRemote(addr, source, path string, opts *config.Options, env Env) (string, int) {
	client, err := server.Dial(addr)
	if err != nil {
		driverError(env, diagnostics.ErrD001, "", err)
		return "", config.ExitIO
	}
	defer client.Close()

	reply, err := client.Compile(context.Background(), source, path, opts.Emit)
	if err != nil {
		driverError(env, diagnostics.ErrD001, "", err)
		return "", config.ExitIO
	}
	if reply.OK {
		return reply.Output, config.ExitOK
	}

	code := config.ExitSemantic
	for _, d := range reply.Diagnostics {
		fmt.Fprintln(env.Stderr, d)
		if strings.Contains(d, ": Syntax error") {
			code = config.ExitSyntax
		}
	}
	if summary := diagnostics.Summary(len(reply.Diagnostics)); summary != "" {
		fmt.Fprintln(env.Stderr, summary)
	}
	return "", code
}

func handleServe(args []string, env Env) int {
	f, err := parseFlags(args, true)
	if err != nil {
		fmt.Fprintf(env.Stderr, "tackc: %s\n\n%s", err, usage)
		return config.ExitUsage
	}
	opts, err := loadOptions(f)
	if err != nil {
		driverError(env, diagnostics.ErrD002, "", err)
		return config.ExitUsage
	}

	c, err := openCache(opts)
	if err != nil {
		driverError(env, diagnostics.ErrD001, opts.Cache.Path, err)
		return config.ExitIO
	}
	if c != nil {
		defer c.Close()
	}

	srv, err := server.New(opts, c, log.New(env.Stderr, "tackc: ", log.LstdFlags))
	if err != nil {
		driverError(env, diagnostics.ErrD001, "", err)
		return config.ExitIO
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		srv.Stop()
	}()

	if err := srv.ListenAndServe(opts.Server.Addr); err != nil {
		driverError(env, diagnostics.ErrD001, "", err)
		return config.ExitIO
	}
	return config.ExitOK
}
