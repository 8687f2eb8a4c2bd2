// Package frame lays out activation records: one stack slot per variable
// and temporary, and one read-only label per string constant.
package frame

import (
	"fmt"
	"strings"

	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/ir"
)

// Slot is a named location relative to the frame base.
type Slot struct {
	Name   string
	Offset int
}

// StringConstant is one .rodata entry.
type StringConstant struct {
	Label   string
	Literal *ast.StringLiteral
}

// Layout is the frame of one function. Slots never overlap and are not
// reused.
type Layout struct {
	Function *ir.Function
	Slots    []Slot
	Strings  []StringConstant
	Size     int

	offsets map[string]int
	labels  map[*ir.ConstantAddr]string
	next    int
}

// Allocate assigns slots in first-definition order: formals first, then
// every name or temporary in the order instructions mention it. Size is
// rounded up to a multiple of alignment.
func Allocate(fn *ir.Function, alignment int) *Layout {
	if alignment < config.SlotSize {
		alignment = config.SlotSize
	}
	l := &Layout{
		Function: fn,
		offsets:  make(map[string]int),
		labels:   make(map[*ir.ConstantAddr]string),
		next:     -config.SlotSize,
	}
	for _, formal := range fn.Formals {
		l.push(formal.Name)
	}
	for _, in := range fn.Instructions {
		for _, a := range in.Operands() {
			l.visit(a)
		}
	}
	// Names that no instruction mentions still get a slot.
	for _, a := range fn.Addresses {
		if name, ok := ir.Slot(a); ok {
			l.push(name)
		}
	}

	used := config.SlotSize * len(l.Slots)
	l.Size = (used + alignment - 1) / alignment * alignment
	return l
}

func (l *Layout) visit(a ir.Address) {
	if name, ok := ir.Slot(a); ok {
		l.push(name)
		return
	}
	if c, ok := a.(*ir.ConstantAddr); ok {
		if lit, ok := c.Literal.(*ast.StringLiteral); ok {
			label := fmt.Sprintf("%s.S_%d", l.Function.Name, len(l.Strings))
			l.labels[c] = label
			l.Strings = append(l.Strings, StringConstant{Label: label, Literal: lit})
		}
	}
}

func (l *Layout) push(name string) {
	if _, ok := l.offsets[name]; ok {
		return
	}
	l.offsets[name] = l.next
	l.Slots = append(l.Slots, Slot{Name: name, Offset: l.next})
	l.next -= config.SlotSize
}

// Offset returns the slot offset of a variable or temporary.
func (l *Layout) Offset(name string) int {
	off, ok := l.offsets[name]
	if !ok {
		panic(fmt.Sprintf("frame: %s has no slot in %s", name, l.Function.Name))
	}
	return off
}

// StringLabel returns the .rodata label of a string constant operand.
func (l *Layout) StringLabel(c *ir.ConstantAddr) string {
	label, ok := l.labels[c]
	if !ok {
		panic(fmt.Sprintf("frame: constant %s has no label in %s", c, l.Function.Name))
	}
	return label
}

func (l *Layout) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("frame %s (%d bytes)\n", l.Function.Name, l.Size))
	for _, s := range l.Slots {
		sb.WriteString(fmt.Sprintf("  [%%rbp%d] %s\n", s.Offset, s.Name))
	}
	return sb.String()
}
