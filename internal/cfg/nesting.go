package cfg

import "github.com/radevgit/plceye/internal/stast"

// MaxNestingDepth computes the maximum nesting depth of control
// structures in an ST statement list, ported from iecst's
// analysis/nesting.rs: depth increases by one per IF, per CASE, and per
// FOR/WHILE/REPEAT loop. Sibling branches (ELSIF/ELSE arms, CASE arms)
// take the max across branches rather than summing, since only one
// branch executes per pass.
func MaxNestingDepth(statements []stast.Statement) int {
	return calculateDepth(statements, 0)
}

func calculateDepth(statements []stast.Statement, currentDepth int) int {
	maxDepth := currentDepth

	for i := range statements {
		s := &statements[i]
		var depth int
		switch s.Kind {
		case stast.StmtIf:
			nested := currentDepth + 1
			branchMax := calculateDepth(s.Then, nested)
			for _, ei := range s.ElsIf {
				branchMax = max(branchMax, calculateDepth(ei.Then, nested))
			}
			if s.Else != nil {
				branchMax = max(branchMax, calculateDepth(s.Else, nested))
			}
			depth = branchMax

		case stast.StmtCase:
			nested := currentDepth + 1
			branchMax := nested
			for _, arm := range s.Arms {
				branchMax = max(branchMax, calculateDepth(arm.Body, nested))
			}
			if s.Else != nil {
				branchMax = max(branchMax, calculateDepth(s.Else, nested))
			}
			depth = branchMax

		case stast.StmtFor, stast.StmtWhile, stast.StmtRepeat:
			depth = calculateDepth(s.Body, currentDepth+1)

		default:
			depth = currentDepth
		}

		maxDepth = max(maxDepth, depth)
	}

	return maxDepth
}
