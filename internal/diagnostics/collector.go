package diagnostics

import "strconv"

// Collector accumulates diagnostics up to a limit. Once the limit is
// reached it is aborted: further reports are dropped and stages should
// stop walking.
type Collector struct {
	Errors []*DiagnosticError
	limit  int
}

func NewCollector(limit int) *Collector {
	return &Collector{limit: limit}
}

// Report records err and returns false once the collector is aborted.
func (c *Collector) Report(err *DiagnosticError) bool {
	if c.Aborted() {
		return false
	}
	c.Errors = append(c.Errors, err)
	return !c.Aborted()
}

func (c *Collector) Aborted() bool {
	return c.limit > 0 && len(c.Errors) >= c.limit
}

func (c *Collector) Count() int {
	return len(c.Errors)
}

func (c *Collector) HasSyntaxErrors() bool {
	for _, err := range c.Errors {
		if err.IsSyntax() {
			return true
		}
	}
	return false
}

// Summary returns the trailing count line, or "" when there are no errors.
func (c *Collector) Summary() string {
	return Summary(len(c.Errors))
}

func Summary(n int) string {
	switch {
	case n == 0:
		return ""
	case n == 1:
		return "There was 1 error."
	default:
		return "There were " + strconv.Itoa(n) + " errors."
	}
}

