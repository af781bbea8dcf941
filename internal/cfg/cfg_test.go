package cfg

import (
	"testing"

	"github.com/radevgit/plceye/internal/stast"
)

func countKind(g *Graph, kind NodeKind) int {
	n := 0
	for _, node := range g.Nodes {
		if node.Kind == kind {
			n++
		}
	}
	return n
}

func TestBuild_StraightLine(t *testing.T) {
	stmts := []stast.Statement{assign("x"), assign("y")}
	g := Build(stmts)
	// Entry, x, y, Exit.
	if len(g.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(g.Nodes))
	}
	if len(g.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(g.Edges))
	}
	if Complexity(stmts) != 1 {
		t.Fatalf("got complexity %d, want 1", Complexity(stmts))
	}
}

func TestBuild_IfThenOnly(t *testing.T) {
	stmts := []stast.Statement{{Kind: stast.StmtIf, Cond: ident("a"), Then: []stast.Statement{assign("x")}}}
	g := Build(stmts)
	if countKind(g, Branch) != 1 {
		t.Fatalf("got %d branch nodes, want 1", countKind(g, Branch))
	}
	if countKind(g, Merge) != 1 {
		t.Fatalf("got %d merge nodes, want 1", countKind(g, Merge))
	}
	if Complexity(stmts) != 2 {
		t.Fatalf("got complexity %d, want 2", Complexity(stmts))
	}
	// Exactly one ConditionTrue and one ConditionFalse edge out of the branch.
	var trueEdges, falseEdges int
	for _, e := range g.Edges {
		switch e.Kind {
		case ConditionTrue:
			trueEdges++
		case ConditionFalse:
			falseEdges++
		}
	}
	if trueEdges != 1 || falseEdges != 1 {
		t.Fatalf("got %d true / %d false edges, want 1/1", trueEdges, falseEdges)
	}
}

func TestBuild_IfElsIfElse(t *testing.T) {
	stmts := []stast.Statement{{
		Kind: stast.StmtIf,
		Cond: ident("a"),
		Then: []stast.Statement{assign("x")},
		ElsIf: []stast.ElsIf{
			{Cond: *ident("b"), Then: []stast.Statement{assign("y")}},
		},
		Else: []stast.Statement{assign("z")},
	}}
	g := Build(stmts)
	// Two Branch nodes: the IF itself and its one ELSIF.
	if countKind(g, Branch) != 2 {
		t.Fatalf("got %d branch nodes, want 2", countKind(g, Branch))
	}
	if countKind(g, Merge) != 1 {
		t.Fatalf("got %d merge nodes, want 1", countKind(g, Merge))
	}
	// complexity = 1 (straight line) + 2 decisions (IF, ELSIF) = 3
	if Complexity(stmts) != 3 {
		t.Fatalf("got complexity %d, want 3", Complexity(stmts))
	}
}

func TestBuild_Case(t *testing.T) {
	stmts := []stast.Statement{{
		Kind:      stast.StmtCase,
		Scrutinee: ident("x"),
		Arms: []stast.CaseArm{
			{Body: []stast.Statement{assign("a")}},
			{Body: []stast.Statement{assign("b")}},
			{Body: []stast.Statement{assign("c")}},
		},
		Else: []stast.Statement{assign("d")},
	}}
	g := Build(stmts)
	if countKind(g, Branch) != 1 {
		t.Fatalf("got %d branch nodes, want 1", countKind(g, Branch))
	}
	// 3 arms + 1 default = 4 outgoing paths -> complexity 1 + 3 = 4
	if Complexity(stmts) != 4 {
		t.Fatalf("got complexity %d, want 4", Complexity(stmts))
	}
}

func TestBuild_WhileLoop(t *testing.T) {
	stmts := []stast.Statement{{Kind: stast.StmtWhile, Cond: ident("a"), Body: []stast.Statement{assign("x")}}}
	g := Build(stmts)
	if countKind(g, LoopHeader) != 1 || countKind(g, LoopBody) != 1 || countKind(g, LoopExit) != 1 {
		t.Fatalf("unexpected loop node shape: %+v", g.Nodes)
	}
	if Complexity(stmts) != 2 {
		t.Fatalf("got complexity %d, want 2", Complexity(stmts))
	}
}

func TestBuild_RepeatLoopRunsBodyFirst(t *testing.T) {
	stmts := []stast.Statement{{Kind: stast.StmtRepeat, Cond: ident("a"), Body: []stast.Statement{assign("x")}}}
	g := Build(stmts)
	if countKind(g, LoopBody) != 1 || countKind(g, LoopExit) != 1 || countKind(g, Branch) != 1 {
		t.Fatalf("unexpected repeat node shape: %+v", g.Nodes)
	}
	if Complexity(stmts) != 2 {
		t.Fatalf("got complexity %d, want 2", Complexity(stmts))
	}
}

func TestBuild_ExitJumpsToLoopExit(t *testing.T) {
	exitStmt := stast.Statement{Kind: stast.StmtExit}
	stmts := []stast.Statement{{Kind: stast.StmtWhile, Cond: ident("a"), Body: []stast.Statement{exitStmt}}}
	g := Build(stmts)
	var loopExitID NodeId
	for _, n := range g.Nodes {
		if n.Kind == LoopExit {
			loopExitID = n.ID
		}
	}
	found := false
	for _, e := range g.Edges {
		if e.Kind == Unconditional && e.To == loopExitID {
			for _, n := range g.Nodes {
				if n.ID == e.From && n.Stmt != nil && n.Stmt.Kind == stast.StmtExit {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected an edge from the EXIT statement node to LoopExit")
	}
}

func TestComplexity_BooleanOperatorsInCondition(t *testing.T) {
	cond := &stast.Expression{
		Kind:  stast.ExprBinary,
		BinOp: stast.OpAnd,
		Left:  ident("a"),
		Right: &stast.Expression{Kind: stast.ExprBinary, BinOp: stast.OpOr, Left: ident("b"), Right: ident("c")},
	}
	stmts := []stast.Statement{{Kind: stast.StmtIf, Cond: cond, Then: []stast.Statement{assign("x")}}}
	// structural complexity 2 (one branch) + 2 boolean operators (AND, OR) = 4
	if got := Complexity(stmts); got != 4 {
		t.Fatalf("got complexity %d, want 4", got)
	}
}

func TestCountExpressionDecisions_NilIsZero(t *testing.T) {
	if CountExpressionDecisions(nil) != 0 {
		t.Fatal("expected 0 for a nil expression")
	}
}
