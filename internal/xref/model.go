package xref

import (
	"fmt"
	"strings"

	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/plcmodel"
	"github.com/radevgit/plceye/internal/stast"
	"github.com/radevgit/plceye/internal/stparse"
)

// AnalyzeProject walks a vendor-neutral plcmodel.Project — the PLCopen
// path, grounded on plceye/src/analysis/mod.rs's analyze_plcopen_project
// and plceye/src/detector.rs's analyze_plcopen dispatch. Identifier
// comparison is case-sensitive, per spec.md §4.5.
func AnalyzeProject(proj plcmodel.Project, tracker *limits.Tracker) *CrossRefResult {
	r := newResult("PLCopen", false)

	for _, pou := range proj.Pous {
		r.addPouName(pou.Name)
	}

	for _, pou := range proj.Pous {
		r.Stats.PouCount++
		walkInterface(r, pou.Name, pou.Interface)

		if pou.Body == nil || pou.Body.IsEmpty() {
			r.EmptyPous = append(r.EmptyPous, pou.Name)
			continue
		}
		walkBody(r, pou.Name, pou.Body, tracker)
	}

	return r
}

func walkInterface(r *CrossRefResult, pouName string, iface plcmodel.PouInterface) {
	seen := make(map[string]bool)
	addSection := func(vars []plcmodel.Variable) {
		for _, v := range vars {
			if seen[r.normalize(v.Name)] {
				r.Diagnostics = append(r.Diagnostics, Diagnostic{
					Kind: DuplicateIdentifier, Scope: pouName, Identifier: v.Name,
					Message: fmt.Sprintf("variable '%s' is declared more than once in '%s'", v.Name, pouName),
				})
				continue
			}
			seen[r.normalize(v.Name)] = true
			r.addDefined(VarDef{Name: v.Name, Scope: pouName, Class: v.Class, DataType: v.DataType})
		}
	}
	addSection(iface.Inputs)
	addSection(iface.Outputs)
	addSection(iface.InOuts)
	addSection(iface.Locals)
	addSection(iface.Temps)
	addSection(iface.Externals)
}

func walkBody(r *CrossRefResult, pouName string, body *plcmodel.Body, tracker *limits.Tracker) {
	switch body.Kind {
	case plcmodel.BodyST:
		r.Stats.STRoutineCount++
		stmts, err := parseSTText(body.Text, pouName, tracker)
		if err != nil {
			r.Stats.ParseErrorCount++
			return
		}
		for _, s := range stmts {
			walkStatement(r, &s)
		}
	case plcmodel.BodyLD:
		for _, rung := range body.Rungs {
			for _, instr := range rung.Instructions {
				walkInstruction(r, instr, tracker)
			}
		}
	case plcmodel.BodyFBD:
		for _, net := range body.Networks {
			for _, instr := range net.Instructions {
				walkInstruction(r, instr, tracker)
			}
		}
	case plcmodel.BodySFC:
		for _, step := range body.SFC.Steps {
			if step.Name != "" {
				r.addDefined(VarDef{Name: step.Name, Scope: pouName, Class: plcmodel.VarLocal})
			}
			for _, action := range step.Actions {
				if action.Name != "" {
					r.addUsedPou(action.Name)
				}
			}
		}
		for _, t := range body.SFC.Transitions {
			for _, name := range t.FromSteps {
				r.addUsedVar(name)
			}
			for _, name := range t.ToSteps {
				r.addUsedVar(name)
			}
			if t.Condition == "" {
				continue
			}
			expr, err := stparse.ParseExpression(t.Condition, tracker)
			if err != nil {
				continue
			}
			walkExpr(r, expr)
		}
	default:
		// IL and Raw bodies carry no structured reference information
		// the spec asks the cross-reference engine to mine.
	}
}

// walkInstruction handles one FBD/LD-normalized plcmodel.Instruction:
// its mnemonic as either a builtin or an AOI/POU call, its tag operands
// as used vars, and its expression operands parsed as ST sub-expressions
// per spec.md §9(b)'s graphical-expression open question resolution.
func walkInstruction(r *CrossRefResult, instr plcmodel.Instruction, tracker *limits.Tracker) {
	if instr.Mnemonic != "" && !IsBuiltinMnemonic(instr.Mnemonic) {
		r.addUsedPou(instr.Mnemonic)
	}
	for _, op := range instr.Operands {
		switch op.Kind {
		case plcmodel.OperandTag:
			r.addUsedVar(baseName(op.Text))
		case plcmodel.OperandExpression:
			expr, err := stparse.ParseExpression(op.Text, tracker)
			if err != nil {
				r.addUsedVar(baseName(op.Text))
				continue
			}
			walkExpr(r, expr)
		}
	}
}

func parseSTText(source, pouName string, tracker *limits.Tracker) ([]stast.Statement, error) {
	wrapped := "PROGRAM " + pouName + "\nVAR\nEND_VAR\n" + source + "\nEND_PROGRAM"
	result, err := stparse.Parse(wrapped, tracker, stparse.Recovery)
	if err != nil {
		return nil, err
	}
	if len(result.Unit.Declarations) == 0 {
		return nil, nil
	}
	return result.Unit.Declarations[0].Body, nil
}

func walkStatement(r *CrossRefResult, s *stast.Statement) {
	switch s.Kind {
	case stast.StmtAssignment, stast.StmtNullableAssignment:
		walkExpr(r, s.Target)
		walkExpr(r, s.Value)
	case stast.StmtIf:
		walkExpr(r, s.Cond)
		walkStmts(r, s.Then)
		for _, e := range s.ElsIf {
			walkExpr(r, &e.Cond)
			walkStmts(r, e.Then)
		}
		walkStmts(r, s.Else)
	case stast.StmtCase:
		walkExpr(r, s.Scrutinee)
		for _, arm := range s.Arms {
			walkStmts(r, arm.Body)
		}
		walkStmts(r, s.Else)
	case stast.StmtFor:
		walkExpr(r, s.From)
		walkExpr(r, s.To)
		walkExpr(r, s.By)
		walkStmts(r, s.Body)
	case stast.StmtWhile, stast.StmtRepeat:
		walkExpr(r, s.Cond)
		walkStmts(r, s.Body)
	case stast.StmtReturn:
		walkExpr(r, s.ReturnValue)
	case stast.StmtCall:
		if s.CalleeName != "" {
			r.addUsedPou(s.CalleeName)
		}
		for _, arg := range s.Args {
			walkExpr(r, &arg.Value)
		}
	case stast.StmtRegion:
		walkStmts(r, s.Body)
	}
}

func walkStmts(r *CrossRefResult, stmts []stast.Statement) {
	for i := range stmts {
		walkStatement(r, &stmts[i])
	}
}

func walkExpr(r *CrossRefResult, e *stast.Expression) {
	if e == nil {
		return
	}
	switch e.Kind {
	case stast.ExprIdent:
		r.addUsedVar(e.Name)
	case stast.ExprBinary:
		walkExpr(r, e.Left)
		walkExpr(r, e.Right)
	case stast.ExprUnary:
		walkExpr(r, e.Operand)
	case stast.ExprParen:
		walkExpr(r, e.Inner)
	case stast.ExprCall:
		if e.Name != "" {
			r.addUsedPou(e.Name)
		}
		for _, arg := range e.Args {
			walkExpr(r, &arg.Value)
		}
	case stast.ExprIndex:
		walkExpr(r, e.Array)
		for i := range e.Index {
			walkExpr(r, &e.Index[i])
		}
	case stast.ExprMember:
		root := e.Root()
		if root.Kind == stast.ExprIdent {
			r.addUsedVar(root.Name)
		} else {
			walkExpr(r, root)
		}
	}
}

// baseName extracts the leading identifier of operand text, stripping a
// trailing member/index suffix, for operands that couldn't be parsed as
// an ST expression (e.g. a bare "Array[Index]" in/out variable pin).
func baseName(text string) string {
	text = strings.TrimSpace(text)
	end := len(text)
	for i, c := range text {
		if c == '.' || c == '[' {
			end = i
			break
		}
	}
	return strings.TrimSpace(text[:end])
}
