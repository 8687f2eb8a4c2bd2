// Package casetest reads compiler test cases written as markdown
// documents. Each "Test: <name>" heading starts a case; its fenced code
// blocks hold the tack input and the expectations.
package casetest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const inputFence = "tack"

// ExpectationType is the language of an expectation fence.
type ExpectationType string

const (
	// ExpectErrors lists the exact diagnostics, one per line.
	ExpectErrors ExpectationType = "errors"
	// ExpectIR is the exact IR listing.
	ExpectIR ExpectationType = "ir"
	// ExpectAsmContains lines must appear, in order and adjacent, in the assembly.
	ExpectAsmContains ExpectationType = "asm-contains"
)

type Expectation struct {
	Type    ExpectationType
	Content string
	Line    int
}

type Case struct {
	Name         string
	Input        string
	Line         int
	Expectations []Expectation
}

// Extract returns the cases of a markdown document in document order.
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var cases []Case
	var current *Case
	finish := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, markdown)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(markdown))
			content := strings.TrimRight(blockContent(n, markdown), "\n")
			line := lineOf(n, markdown)

			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
				}
				return ast.WalkContinue, nil
			}

			switch ExpectationType(language) {
			case ExpectErrors, ExpectIR, ExpectAsmContains:
				current.Expectations = append(current.Expectations, Expectation{
					Type:    ExpectationType(language),
					Content: content,
					Line:    line,
				})
				return ast.WalkContinue, nil
			}
			if language != inputFence {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
			if current.Input != "" {
				return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", line, current.Name)
			}
			current.Input = content
			current.Line = line
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

// ExtractFile reads the cases of one document.
func ExtractFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cases, nil
}

func validate(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", c.Name)
	}
	if len(c.Expectations) == 0 {
		return fmt.Errorf("test '%s' has no expectation fences", c.Name)
	}
	return nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}

// ContainsLines reports whether want's lines occur adjacently in got.
func ContainsLines(got, want string) bool {
	return strings.Contains("\n"+got, "\n"+want+"\n")
}
