package layout

import (
	"testing"

	"github.com/radevgit/plceye/internal/graph"
)

func TestGridLayout_PositionsRowsAndColumns(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		g.AddNode(graph.RoutineNode(id, id))
	}

	l := NewGridLayout()
	l.Columns = 3
	l.Apply(g)

	if g.Nodes[0].X != 20 {
		t.Fatalf("node 0 X = %v, want 20", g.Nodes[0].X)
	}
	if g.Nodes[1].X != 170 {
		t.Fatalf("node 1 X = %v, want 170", g.Nodes[1].X)
	}
	if g.Nodes[2].X != 320 {
		t.Fatalf("node 2 X = %v, want 320", g.Nodes[2].X)
	}
	if g.Nodes[3].Y != 100 {
		t.Fatalf("node 3 Y = %v, want 100 (second row)", g.Nodes[3].Y)
	}
}

func TestHierarchicalLayout_LayersAndParentOrdering(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.ProgramNode("prog1", "MainProgram"))
	g.AddNode(graph.RoutineNode("r1", "MainRoutine").WithParent("prog1"))
	g.AddNode(graph.RoutineNode("r2", "FaultRoutine").WithParent("prog1"))
	g.AddNode(graph.ProgramNode("prog2", "CommProgram"))
	g.AddNode(graph.RoutineNode("r3", "EthRoutine").WithParent("prog2"))

	l := NewHierarchicalLayout()
	l.Apply(g)

	prog1 := g.GetNode("prog1")
	prog2 := g.GetNode("prog2")
	if prog1.Layer != 2 || prog2.Layer != 2 {
		t.Fatalf("expected programs at layer 2, got %d and %d", prog1.Layer, prog2.Layer)
	}

	r1 := g.GetNode("r1")
	if r1.Y <= prog1.Y {
		t.Fatalf("expected routine below its program: r1.Y=%v prog1.Y=%v", r1.Y, prog1.Y)
	}
}

func TestGridLayout_Dimensions(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		g.AddNode(graph.RoutineNode(id, id))
	}
	l := NewGridLayout()
	l.Columns = 3
	w, h := l.Dimensions(g)
	if w == 0 || h == 0 {
		t.Fatalf("expected non-zero dimensions, got %d x %d", w, h)
	}
}
