package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// Printer writes diagnostics one per line followed by the summary.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer for w. mode is "auto", "always" or "never";
// "auto" enables colour only when w is a terminal.
func NewPrinter(w io.Writer, mode string) *Printer {
	return &Printer{w: w, color: wantColor(w, mode)}
}

func wantColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) Print(err *DiagnosticError) {
	if p.color {
		fmt.Fprintf(p.w, "%s%s:%s %s.\n", colorRed, err.Location(), colorReset, err.Message)
		return
	}
	fmt.Fprintln(p.w, err.Error())
}

// PrintAll prints every error and the summary line.
func (p *Printer) PrintAll(errs []*DiagnosticError) {
	for _, err := range errs {
		p.Print(err)
	}
	if summary := Summary(len(errs)); summary != "" {
		if p.color {
			fmt.Fprintf(p.w, "%s%s%s\n", colorBold, summary, colorReset)
			return
		}
		fmt.Fprintln(p.w, summary)
	}
}
