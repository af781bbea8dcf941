package cfg

import "github.com/radevgit/plceye/internal/stast"

// Complexity computes McCabe cyclomatic complexity for a POU body, per
// spec.md §4.6: edges − nodes + 2, equivalently 1 + decisions, where a
// decision is either an extra Branch outgoing edge beyond the first (an
// ELSIF, a CASE arm, a loop test) or a boolean AND/OR/XOR operator
// inside a condition. Build's graph already reifies the first kind of
// decision as extra edges — a branch with N outgoing paths always
// contributes N-1 more edges than nodes versus a straight line — so the
// edges-nodes+2 term alone captures it; boolean operators inside
// conditions never become separate CFG nodes here, so their
// contribution is added on top by walking every condition expression
// directly.
func Complexity(stmts []stast.Statement) int {
	g := Build(stmts)
	structural := len(g.Edges) - len(g.Nodes) + 2
	return structural + conditionOperatorDecisions(stmts)
}

// conditionOperatorDecisions sums CountExpressionDecisions over every
// condition expression reachable from stmts (IF/ELSIF/WHILE/REPEAT),
// recursing into every nested body so a condition inside a loop inside
// an IF is still counted.
func conditionOperatorDecisions(stmts []stast.Statement) int {
	total := 0
	for i := range stmts {
		s := &stmts[i]
		switch s.Kind {
		case stast.StmtIf:
			total += CountExpressionDecisions(s.Cond)
			total += conditionOperatorDecisions(s.Then)
			for _, ei := range s.ElsIf {
				total += CountExpressionDecisions(&ei.Cond)
				total += conditionOperatorDecisions(ei.Then)
			}
			total += conditionOperatorDecisions(s.Else)
		case stast.StmtCase:
			for _, arm := range s.Arms {
				total += conditionOperatorDecisions(arm.Body)
			}
			total += conditionOperatorDecisions(s.Else)
		case stast.StmtFor:
			total += conditionOperatorDecisions(s.Body)
		case stast.StmtWhile, stast.StmtRepeat:
			total += CountExpressionDecisions(s.Cond)
			total += conditionOperatorDecisions(s.Body)
		case stast.StmtRegion:
			total += conditionOperatorDecisions(s.Body)
		}
	}
	return total
}

// CountExpressionDecisions counts AND/OR/XOR operators anywhere within
// e, recursing through both operands of every binary operator and
// through unary/paren wrappers.
func CountExpressionDecisions(e *stast.Expression) int {
	if e == nil {
		return 0
	}
	switch e.Kind {
	case stast.ExprBinary:
		n := CountExpressionDecisions(e.Left) + CountExpressionDecisions(e.Right)
		switch e.BinOp {
		case stast.OpAnd, stast.OpOr, stast.OpXor:
			n++
		}
		return n
	case stast.ExprUnary:
		return CountExpressionDecisions(e.Operand)
	case stast.ExprParen:
		return CountExpressionDecisions(e.Inner)
	case stast.ExprIndex:
		n := CountExpressionDecisions(e.Array)
		for i := range e.Index {
			n += CountExpressionDecisions(&e.Index[i])
		}
		return n
	case stast.ExprMember:
		return CountExpressionDecisions(e.Base)
	case stast.ExprCall:
		n := 0
		for _, a := range e.Args {
			n += CountExpressionDecisions(&a.Value)
		}
		return n
	default:
		return 0
	}
}
