package diagnostics

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/funvibe/tackc/internal/token"
)

func errAt(line, col int, msg string) *DiagnosticError {
	return NewError(ErrT003, token.Token{File: "a.tack", Line: line, Column: col}, msg)
}

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		err  *DiagnosticError
		want string
	}{
		{errAt(3, 4, "Boolean expected"), "a.tack:3:4: Boolean expected."},
		{NewError(ErrP001, token.Token{Line: 1, Column: 2}, "Syntax error: x"), "<input>:1:2: Syntax error: x."},
		{&DiagnosticError{Code: ErrD001, File: "missing.tack", Message: "cannot read file"}, "missing.tack: cannot read file."},
		{&DiagnosticError{Code: ErrD002, Message: "bad config"}, "tackc: bad config."},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestIsSyntax(t *testing.T) {
	if !NewError(ErrP003, token.Token{}, "x").IsSyntax() {
		t.Errorf("P003 is a syntax error")
	}
	if errAt(1, 1, "x").IsSyntax() {
		t.Errorf("T003 is not a syntax error")
	}
}

func TestCollectorLimit(t *testing.T) {
	c := NewCollector(3)
	for i := 1; i <= 2; i++ {
		if !c.Report(errAt(i, 1, "e")) {
			t.Fatalf("report %d should keep the collector open", i)
		}
	}
	if c.Report(errAt(3, 1, "e")) {
		t.Errorf("the report reaching the limit should abort")
	}
	if !c.Aborted() {
		t.Errorf("expected the collector to be aborted")
	}
	c.Report(errAt(4, 1, "e"))
	if c.Count() != 3 {
		t.Errorf("expected 3 errors, got %d", c.Count())
	}
}

func TestCollectorUnlimited(t *testing.T) {
	c := NewCollector(0)
	for i := 0; i < 250; i++ {
		c.Report(errAt(i+1, 1, "e"))
	}
	if c.Aborted() || c.Count() != 250 {
		t.Errorf("a zero limit keeps every error, got %d aborted=%v", c.Count(), c.Aborted())
	}
}

func TestSummary(t *testing.T) {
	tests := map[int]string{
		0:   "",
		1:   "There was 1 error.",
		2:   "There were 2 errors.",
		100: "There were 100 errors.",
	}
	for n, want := range tests {
		if got := Summary(n); got != want {
			t.Errorf("Summary(%d) = %q, want %q", n, got, want)
		}
	}
	c := NewCollector(10)
	c.Report(errAt(1, 1, "e"))
	if c.Summary() != "There was 1 error." {
		t.Errorf("unexpected collector summary %q", c.Summary())
	}
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "auto")
	p.PrintAll([]*DiagnosticError{errAt(1, 2, "first"), errAt(5, 6, "second")})
	want := "a.tack:1:2: first.\na.tack:5:6: second.\nThere were 2 errors.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrinterNoErrors(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, "never").PrintAll(nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestPrinterColor(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, "always").PrintAll([]*DiagnosticError{errAt(2, 3, "oops")})
	want := fmt.Sprintf("%sa.tack:2:3:%s oops.\n%sThere was 1 error.%s\n", colorRed, colorReset, colorBold, colorReset)
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
