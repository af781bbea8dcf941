package xref

import (
	"fmt"
	"strings"

	"github.com/radevgit/plceye/internal/l5x"
	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/plcmodel"
	"github.com/radevgit/plceye/internal/rll"
)

// AnalyzeController walks an L5X controller tree directly — the
// vendor-A path, grounded on plceye/src/detector.rs's analyze_controller
// (which passes both the raw Controller and the analysis result to each
// L5X detector) and plceye/src/analysis/mod.rs's re-exported
// ProjectAnalysis/analyze_controller surface. Identifier comparison is
// case-insensitive, per spec.md §4.5.
func AnalyzeController(c *l5x.Controller, tracker *limits.Tracker) *CrossRefResult {
	r := newResult("L5X", true)

	for _, prog := range c.Programs {
		r.addPouName(prog.Name)
	}
	for _, aoi := range c.AddOnInstructionDefinitions {
		r.addPouName(aoi.Name)
	}

	for _, tag := range c.Tags {
		r.addDefined(VarDef{Name: tag.Name, Scope: "Controller", Class: plcmodel.VarGlobal, DataType: tag.DataType})
	}

	for _, prog := range c.Programs {
		r.Stats.PouCount++
		scope := "Program:" + prog.Name
		seen := make(map[string]bool)
		for _, tag := range prog.Tags {
			if seen[r.normalize(tag.Name)] {
				r.Diagnostics = append(r.Diagnostics, Diagnostic{
					Kind: DuplicateIdentifier, Scope: scope, Identifier: tag.Name,
					Message: fmt.Sprintf("tag '%s' is declared more than once in '%s'", tag.Name, prog.Name),
				})
				continue
			}
			seen[r.normalize(tag.Name)] = true
			r.addDefined(VarDef{Name: tag.Name, Scope: scope, Class: plcmodel.VarLocal, DataType: tag.DataType})
		}

		anyLogic := false
		for _, routine := range prog.Routines {
			r.Stats.RoutineCount++
			switch {
			case routine.RLLContent != nil:
				if walkL5XRLL(r, &routine, tracker) {
					anyLogic = true
				}
			case routine.STContent != nil:
				source := routine.STContent.JoinedText()
				if strings.TrimSpace(source) != "" {
					anyLogic = true
				}
				walkL5XST(r, routine.Name, source, tracker)
			}
		}
		if !anyLogic {
			r.EmptyPous = append(r.EmptyPous, prog.Name)
		}
	}

	for _, aoi := range c.AddOnInstructionDefinitions {
		r.Stats.PouCount++
		aoiScope := "AOI:" + aoi.Name
		for _, p := range aoi.Parameters {
			r.addDefined(VarDef{Name: p.Name, Scope: aoiScope, Class: aoiParamClass(p.Usage), DataType: p.DataType})
		}
		for _, t := range aoi.LocalTags {
			r.addDefined(VarDef{Name: t.Name, Scope: aoiScope, Class: plcmodel.VarLocal, DataType: t.DataType})
		}
		anyLogic := false
		for _, routine := range aoi.Routines {
			r.Stats.RoutineCount++
			switch {
			case routine.RLLContent != nil:
				if walkL5XRLL(r, &routine, tracker) {
					anyLogic = true
				}
			case routine.STContent != nil:
				source := routine.STContent.JoinedText()
				if strings.TrimSpace(source) != "" {
					anyLogic = true
				}
				walkL5XST(r, routine.Name, source, tracker)
			}
		}
		if !anyLogic {
			r.EmptyPous = append(r.EmptyPous, aoi.Name)
		}
	}

	return r
}

func aoiParamClass(usage string) plcmodel.VarClass {
	switch strings.ToLower(usage) {
	case "output":
		return plcmodel.VarOutput
	case "inout":
		return plcmodel.VarInOut
	default:
		return plcmodel.VarInput
	}
}

// walkL5XRLL parses every rung of one RLL routine and folds its
// instruction mnemonics and operand tag references into r. It reports
// whether the routine contains at least one rung, for the empty-routine
// check (spec.md §4.5's "LD with zero rungs" rule, applied to L5X's
// inline rung text the same way).
func walkL5XRLL(r *CrossRefResult, routine *l5x.Routine, tracker *limits.Tracker) bool {
	if routine.RLLContent == nil || len(routine.RLLContent.Rungs) == 0 {
		return false
	}
	for _, rungXML := range routine.RLLContent.Rungs {
		r.Stats.RungCount++
		parsed := rll.Parse(rungXML.Text, tracker)
		if parsed.Err != nil {
			r.Stats.ParseErrorCount++
			continue
		}
		walkRungElements(r, parsed.ParsedContent.Elements)
	}
	return true
}

func walkRungElements(r *CrossRefResult, elems []rll.Element) {
	for _, el := range elems {
		switch el.Kind {
		case rll.ElemInstruction:
			if !IsBuiltinMnemonic(el.Mnemonic) {
				r.addUsedPou(el.Mnemonic)
			}
			for _, op := range el.Operands {
				if op.Kind == rll.OperandValue {
					for _, tag := range rll.TagRefs(op.Text) {
						r.addUsedVar(tag)
					}
				}
			}
		case rll.ElemParallel:
			for _, branch := range el.Branches {
				walkRungElements(r, branch)
			}
		}
	}
}

func walkL5XST(r *CrossRefResult, routineName, source string, tracker *limits.Tracker) {
	if strings.TrimSpace(source) == "" {
		return
	}
	r.Stats.STRoutineCount++
	stmts, err := parseSTText(source, routineName, tracker)
	if err != nil {
		r.Stats.ParseErrorCount++
		return
	}
	for i := range stmts {
		walkStatement(r, &stmts[i])
	}
}

// parseSTText, defined in model.go, is shared by walkL5XST above and
// model.go's PLCopen ST walk: both wrap bare
// statement text in a synthetic PROGRAM so stparse.Parse has a
// declaration to parse, mirroring plceye's parse_st_routine wrapping.
