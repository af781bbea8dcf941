// Package cfg builds a control-flow graph from an ST statement list and
// derives its cyclomatic complexity and maximum nesting depth, per
// spec.md §4.6. plceye's own rules/complexity.rs (declared and
// re-exported from rules/mod.rs) is absent from the retrieval pack, so
// the construction here follows spec.md's literal node/edge vocabulary
// together with iecst's nesting-depth algorithm (analysis/nesting.rs),
// the one piece of the original Rust semantic-analysis layer that does
// survive in the pack.
package cfg

import "github.com/radevgit/plceye/internal/stast"

// NodeKind enumerates the CFG node shapes named in spec.md §4.6.
type NodeKind int

const (
	Entry NodeKind = iota
	Exit
	NodeStatement
	Branch
	Merge
	LoopHeader
	LoopBody
	LoopExit
)

// NodeId identifies one node within a Graph.
type NodeId int

// Node is one CFG vertex.
type Node struct {
	ID   NodeId
	Kind NodeKind
	// Stmt is the originating statement for NodeStatement/Branch/
	// LoopHeader nodes; nil for Entry/Exit/Merge/LoopBody/LoopExit.
	Stmt *stast.Statement
}

// EdgeKind enumerates the CFG edge labels named in spec.md §4.6.
type EdgeKind int

const (
	Unconditional EdgeKind = iota
	ConditionTrue
	ConditionFalse
	LoopBack
)

// Edge is one directed, labelled CFG edge.
type Edge struct {
	From, To NodeId
	Kind     EdgeKind
}

// Graph is a built control-flow graph: a node table plus an edge list.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

func (g *Graph) addNode(kind NodeKind, stmt *stast.Statement) NodeId {
	id := NodeId(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{ID: id, Kind: kind, Stmt: stmt})
	return id
}

func (g *Graph) addEdge(from, to NodeId, kind EdgeKind) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind})
}

// loopFrame records, for one enclosing FOR/WHILE/REPEAT, the header an
// EXIT/CONTINUE statement loops back to and the node it should jump out
// to.
type loopFrame struct {
	header NodeId
	exit   NodeId
}

// builder accumulates a Graph while walking one statement list.
type builder struct {
	g     Graph
	exit  NodeId
	loops []loopFrame
}

// Build constructs the CFG for one POU body's top-level statement list,
// per spec.md §4.6's structural-walk rules.
func Build(stmts []stast.Statement) *Graph {
	b := &builder{}
	entry := b.g.addNode(Entry, nil)
	b.exit = b.g.addNode(Exit, nil)
	last := b.walkStmts(stmts, entry, Unconditional)
	b.g.addEdge(last, b.exit, Unconditional)
	return &b.g
}

// walkStmts threads a straight-line sequence from `from`, connecting the
// very first statement with `entryKind` (so a branch's then/else arm
// carries the right Condition(true/false) label) and every later
// statement in the sequence with Unconditional. Returns the last live
// node, or `from` unchanged if stmts is empty.
func (b *builder) walkStmts(stmts []stast.Statement, from NodeId, entryKind EdgeKind) NodeId {
	cur := from
	for i := range stmts {
		kind := Unconditional
		if i == 0 {
			kind = entryKind
		}
		cur = b.walkStmt(&stmts[i], cur, kind)
	}
	return cur
}

// wireBranch connects `from` to `merge`, either directly (labelled
// `kind`) when stmts is empty, or through stmts' own sub-CFG (entered
// with `kind`, exiting unconditionally into merge) when non-empty.
func (b *builder) wireBranch(from NodeId, kind EdgeKind, stmts []stast.Statement, merge NodeId) {
	if len(stmts) == 0 {
		b.g.addEdge(from, merge, kind)
		return
	}
	end := b.walkStmts(stmts, from, kind)
	b.g.addEdge(end, merge, Unconditional)
}

// walkStmt wires one statement from cur (connected via `kind`) and
// returns the node its successor should connect from. A statement that
// always diverts control away (EXIT/RETURN/CONTINUE) returns a fresh
// unreachable sink node, so any statements after it in source still get
// nodes but no live edge reaches them from here.
func (b *builder) walkStmt(s *stast.Statement, cur NodeId, kind EdgeKind) NodeId {
	switch s.Kind {
	case stast.StmtIf:
		return b.walkIf(s, cur, kind)
	case stast.StmtCase:
		return b.walkCase(s, cur, kind)
	case stast.StmtFor, stast.StmtWhile:
		return b.walkHeaderLoop(s, cur, kind)
	case stast.StmtRepeat:
		return b.walkRepeat(s, cur, kind)
	case stast.StmtExit:
		return b.divertToLoop(s, cur, kind, true)
	case stast.StmtContinue:
		return b.divertToLoop(s, cur, kind, false)
	case stast.StmtReturn:
		node := b.g.addNode(NodeStatement, s)
		b.g.addEdge(cur, node, kind)
		b.g.addEdge(node, b.exit, Unconditional)
		return b.g.addNode(NodeStatement, nil) // unreachable sink
	default:
		node := b.g.addNode(NodeStatement, s)
		b.g.addEdge(cur, node, kind)
		return node
	}
}

func (b *builder) divertToLoop(s *stast.Statement, cur NodeId, kind EdgeKind, isExit bool) NodeId {
	node := b.g.addNode(NodeStatement, s)
	b.g.addEdge(cur, node, kind)
	if len(b.loops) > 0 {
		frame := b.loops[len(b.loops)-1]
		if isExit {
			b.g.addEdge(node, frame.exit, Unconditional)
		} else {
			b.g.addEdge(node, frame.header, LoopBack)
		}
	}
	return b.g.addNode(NodeStatement, nil) // unreachable sink
}

// walkIf builds a Branch with a then sub-CFG and one sub-CFG per ELSIF,
// all merging at a single Merge node, per spec.md §4.6.
func (b *builder) walkIf(s *stast.Statement, cur NodeId, kind EdgeKind) NodeId {
	branch := b.g.addNode(Branch, s)
	b.g.addEdge(cur, branch, kind)
	merge := b.g.addNode(Merge, nil)

	b.wireBranch(branch, ConditionTrue, s.Then, merge)

	falseFrom := branch
	for i := range s.ElsIf {
		elifBranch := b.g.addNode(Branch, &stast.Statement{Kind: stast.StmtIf, Cond: &s.ElsIf[i].Cond})
		b.g.addEdge(falseFrom, elifBranch, ConditionFalse)
		b.wireBranch(elifBranch, ConditionTrue, s.ElsIf[i].Then, merge)
		falseFrom = elifBranch
	}
	b.wireBranch(falseFrom, ConditionFalse, s.Else, merge)

	return merge
}

// walkCase builds a Branch with one outgoing edge per arm plus the
// default arm, all merging at a single Merge node.
func (b *builder) walkCase(s *stast.Statement, cur NodeId, kind EdgeKind) NodeId {
	branch := b.g.addNode(Branch, s)
	b.g.addEdge(cur, branch, kind)
	merge := b.g.addNode(Merge, nil)

	for i := range s.Arms {
		b.wireBranch(branch, Unconditional, s.Arms[i].Body, merge)
	}
	b.wireBranch(branch, Unconditional, s.Else, merge)

	return merge
}

// walkHeaderLoop builds FOR/WHILE's shape: a LoopHeader testing the
// loop condition, a LoopBody sub-CFG that loops back to the header, and
// a false-edge onward to a LoopExit node.
func (b *builder) walkHeaderLoop(s *stast.Statement, cur NodeId, kind EdgeKind) NodeId {
	header := b.g.addNode(LoopHeader, s)
	b.g.addEdge(cur, header, kind)
	loopExit := b.g.addNode(LoopExit, nil)
	b.g.addEdge(header, loopExit, ConditionFalse)

	bodyEntry := b.g.addNode(LoopBody, nil)
	b.g.addEdge(header, bodyEntry, ConditionTrue)

	b.loops = append(b.loops, loopFrame{header: header, exit: loopExit})
	bodyEnd := b.walkStmts(s.Body, bodyEntry, Unconditional)
	b.loops = b.loops[:len(b.loops)-1]

	b.g.addEdge(bodyEnd, header, LoopBack)
	return loopExit
}

// walkRepeat builds REPEAT's shape: a LoopBody run first, then a
// Branch testing the until-condition, looping back to the body start
// on false and exiting on true — REPEAT always runs its body at least
// once.
func (b *builder) walkRepeat(s *stast.Statement, cur NodeId, kind EdgeKind) NodeId {
	bodyEntry := b.g.addNode(LoopBody, nil)
	b.g.addEdge(cur, bodyEntry, kind)
	branch := b.g.addNode(Branch, s)
	loopExit := b.g.addNode(LoopExit, nil)

	b.loops = append(b.loops, loopFrame{header: bodyEntry, exit: loopExit})
	bodyEnd := b.walkStmts(s.Body, bodyEntry, Unconditional)
	b.loops = b.loops[:len(b.loops)-1]

	b.g.addEdge(bodyEnd, branch, Unconditional)
	b.g.addEdge(branch, bodyEntry, LoopBack)
	b.g.addEdge(branch, loopExit, ConditionTrue)

	return loopExit
}
