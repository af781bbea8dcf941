// Package rll parses vendor-A Relay Ladder Logic rung text: the
// prefix-form instruction strings with nested parallel-branch brackets
// that vendor-A XML stores inline as the body of an RLL rung.
package rll

import "github.com/radevgit/plceye/internal/span"

// ElementKind distinguishes an Instruction from a Parallel group.
type ElementKind int

const (
	ElemInstruction ElementKind = iota
	ElemParallel
)

// Element is one rung element: a single instruction or a parallel group
// of branches.
type Element struct {
	Kind ElementKind
	Span span.Span

	Mnemonic string    // ElemInstruction
	Operands []Operand // ElemInstruction

	Branches [][]Element // ElemParallel
}

// OperandKind distinguishes an inferred (`?`) operand from a textual
// value operand.
type OperandKind int

const (
	OperandInferred OperandKind = iota
	OperandValue
)

// Operand is one instruction argument.
type Operand struct {
	Kind OperandKind
	Text string // OperandValue
	Span span.Span
}

// RungContent is the parsed element sequence of one rung.
type RungContent struct {
	Elements []Element
}

// Rung holds exactly one of ParsedContent or Err, never both, mirroring
// the vendor XML's tolerance of malformed rung text: the raw text
// survives even when parsing fails.
type Rung struct {
	RawText       string
	ParsedContent *RungContent
	Err           error
}
