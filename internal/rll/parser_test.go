package rll

import (
	"testing"

	"github.com/radevgit/plceye/internal/limits"
)

func parseWithBalancedLimits(t *testing.T, text string) Rung {
	t.Helper()
	return Parse(text, limits.NewTracker(limits.Balanced()))
}

func TestSimpleInstructionChain(t *testing.T) {
	r := parseWithBalancedLimits(t, "XIC(Start)OTE(Motor);")
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.ParsedContent == nil {
		t.Fatal("expected parsed content")
	}
	if len(r.ParsedContent.Elements) != 2 {
		t.Fatalf("got %d elements", len(r.ParsedContent.Elements))
	}
	xic := r.ParsedContent.Elements[0]
	if xic.Mnemonic != "XIC" || len(xic.Operands) != 1 || xic.Operands[0].Text != "Start" {
		t.Fatalf("bad XIC element: %+v", xic)
	}
	ote := r.ParsedContent.Elements[1]
	if ote.Mnemonic != "OTE" || ote.Operands[0].Text != "Motor" {
		t.Fatalf("bad OTE element: %+v", ote)
	}
}

func TestParsedContentXorError(t *testing.T) {
	good := parseWithBalancedLimits(t, "XIC(A)OTE(B);")
	if good.ParsedContent == nil || good.Err != nil {
		t.Fatal("expected parsed_content only")
	}
	bad := parseWithBalancedLimits(t, "XIC(A")
	if bad.ParsedContent != nil || bad.Err == nil {
		t.Fatal("expected error only")
	}
	if bad.RawText != "XIC(A" {
		t.Fatalf("raw text not preserved: %q", bad.RawText)
	}
}

func TestParallelBranches(t *testing.T) {
	r := parseWithBalancedLimits(t, "[XIC(A)|XIC(B)]OTE(C);")
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if len(r.ParsedContent.Elements) != 2 {
		t.Fatalf("got %d elements", len(r.ParsedContent.Elements))
	}
	par := r.ParsedContent.Elements[0]
	if par.Kind != ElemParallel || len(par.Branches) != 2 {
		t.Fatalf("bad parallel element: %+v", par)
	}
}

func TestNestedParallel(t *testing.T) {
	r := parseWithBalancedLimits(t, "[[XIC(A)|XIC(B)]|XIC(C)]OTE(D);")
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	par := r.ParsedContent.Elements[0]
	if par.Kind != ElemParallel || len(par.Branches) != 2 {
		t.Fatalf("bad outer parallel: %+v", par)
	}
	nested := par.Branches[0][0]
	if nested.Kind != ElemParallel {
		t.Fatalf("expected nested parallel, got %+v", nested)
	}
}

func TestInferredOperand(t *testing.T) {
	r := parseWithBalancedLimits(t, "MOV(?,Dest);")
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	ops := r.ParsedContent.Elements[0].Operands
	if ops[0].Kind != OperandInferred {
		t.Fatalf("expected inferred operand: %+v", ops[0])
	}
	if ops[1].Text != "Dest" {
		t.Fatalf("bad second operand: %+v", ops[1])
	}
}

func TestUnclosedBracketError(t *testing.T) {
	r := parseWithBalancedLimits(t, "[XIC(A)OTE(B);")
	if r.Err == nil {
		t.Fatal("expected unclosed-bracket error")
	}
}

func TestBaseTagExtraction(t *testing.T) {
	cases := map[string]string{
		"Start":            "Start",
		"Motor[1].Status":  "Motor",
		"Counts[Index]":    "Counts",
		" Spaced . Field":  "Spaced",
	}
	for in, want := range cases {
		if got := BaseTag(in); got != want {
			t.Errorf("BaseTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTagRefsMinesIndexTags(t *testing.T) {
	refs := TagRefs("Array[Index].Field")
	if len(refs) != 2 || refs[0] != "Array" || refs[1] != "Index" {
		t.Fatalf("unexpected refs: %v", refs)
	}
}

func TestTagRefsRecursesNestedIndex(t *testing.T) {
	refs := TagRefs("Outer[Inner[DeepIndex].Part]")
	want := map[string]bool{"Outer": true, "Inner": true, "DeepIndex": true}
	for _, r := range refs {
		if !want[r] {
			t.Fatalf("unexpected ref %q in %v", r, refs)
		}
		delete(want, r)
	}
	if len(want) != 0 {
		t.Fatalf("missing refs: %v", want)
	}
}

func TestUndefinedLadderTagScenario(t *testing.T) {
	r := parseWithBalancedLimits(t, "XIC(Start)OTE(Motor);")
	defined := map[string]bool{"Start": true}
	var used []string
	for _, el := range r.ParsedContent.Elements {
		for _, op := range el.Operands {
			if op.Kind == OperandValue {
				used = append(used, TagRefs(op.Text)...)
			}
		}
	}
	var undefined []string
	for _, u := range used {
		if !defined[u] {
			undefined = append(undefined, u)
		}
	}
	if len(undefined) != 1 || undefined[0] != "Motor" {
		t.Fatalf("unexpected undefined set: %v", undefined)
	}
}
