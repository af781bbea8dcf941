package l5x

import (
	"strings"

	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/plcmodel"
	"github.com/radevgit/plceye/internal/rll"
)

// ToPlcModel converts a decoded Controller into the vendor-neutral
// project model, for components (report naming, graph layout, parse
// stats) that only need the generic shape. Detailed RLL tag-reference
// analysis bypasses this conversion and walks the Controller directly
// via AllRungs/AllAoiRungs, since a vendor-neutral Body can only hold one
// normalized routine per POU while an L5X Program may own several.
func (c *Controller) ToPlcModel(tracker *limits.Tracker) plcmodel.Project {
	proj := plcmodel.Project{
		Name:         c.Name,
		Description:  c.Description,
		SourceFormat: "L5X",
	}
	for _, dt := range c.DataTypes {
		proj.DataTypes = append(proj.DataTypes, convertDataType(dt))
	}
	for _, prog := range c.Programs {
		proj.Pous = append(proj.Pous, convertProgram(prog, tracker))
	}
	for _, aoi := range c.AddOnInstructionDefinitions {
		proj.Pous = append(proj.Pous, convertAoi(aoi, tracker))
	}
	if len(c.Tasks) > 0 {
		cfg := &plcmodel.Configuration{Name: c.Name}
		resource := plcmodel.Resource{Name: c.Name}
		for _, t := range c.Tasks {
			resource.Tasks = append(resource.Tasks, convertTask(t))
		}
		cfg.Resources = append(cfg.Resources, resource)
		proj.Configuration = cfg
	}
	return proj
}

func convertDataType(dt DataType) plcmodel.DataTypeDef {
	members := make([]plcmodel.StructMember, 0, len(dt.Members))
	for _, m := range dt.Members {
		members = append(members, plcmodel.StructMember{
			Name:       m.Name,
			DataType:   m.DataType,
			Dimensions: parseDimensionField(m.Dimension),
		})
	}
	d := plcmodel.NewStructDataType(dt.Name, members)
	d.Description = dt.Description
	return d
}

func parseDimensionField(s string) []uint32 {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return nil
	}
	fields := strings.Fields(s)
	dims := make([]uint32, 0, len(fields))
	for _, f := range fields {
		if n := parseUintOrZero(f); n > 0 {
			dims = append(dims, n)
		}
	}
	return dims
}

func parseUintOrZero(s string) uint32 {
	var n uint32
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + uint32(c-'0')
	}
	return n
}

func convertTag(tag Tag, class plcmodel.VarClass) plcmodel.Variable {
	return plcmodel.Variable{
		Name:        tag.Name,
		DataType:    tag.DataType,
		Class:       class,
		Description: tag.Description,
		Dimensions:  tag.ParsedDimensions(),
		IsConstant:  tag.IsConstant(),
	}
}

func convertProgram(prog Program, tracker *limits.Tracker) plcmodel.Pou {
	p := plcmodel.Pou{Name: prog.Name, Kind: plcmodel.Program, Description: prog.Description}
	for _, tag := range prog.Tags {
		p.Interface.Locals = append(p.Interface.Locals, convertTag(tag, plcmodel.VarLocal))
	}
	routine := mainRoutine(prog)
	if routine != nil {
		body := convertRoutineBody(*routine, tracker)
		p.Body = &body
	}
	return p
}

func mainRoutine(prog Program) *Routine {
	for i := range prog.Routines {
		if prog.Routines[i].Name == prog.MainRoutineName {
			return &prog.Routines[i]
		}
	}
	if len(prog.Routines) > 0 {
		return &prog.Routines[0]
	}
	return nil
}

func convertAoi(aoi AddOnInstructionDefinition, tracker *limits.Tracker) plcmodel.Pou {
	p := plcmodel.Pou{Name: aoi.Name, Kind: plcmodel.FunctionBlock, Description: aoi.Description}
	for _, param := range aoi.Parameters {
		v := plcmodel.Variable{Name: param.Name, DataType: param.DataType}
		switch strings.ToLower(param.Usage) {
		case "input":
			v.Class = plcmodel.VarInput
			p.Interface.Inputs = append(p.Interface.Inputs, v)
		case "output":
			v.Class = plcmodel.VarOutput
			p.Interface.Outputs = append(p.Interface.Outputs, v)
		case "inout":
			v.Class = plcmodel.VarInOut
			p.Interface.InOuts = append(p.Interface.InOuts, v)
		default:
			v.Class = plcmodel.VarLocal
			p.Interface.Locals = append(p.Interface.Locals, v)
		}
	}
	for _, tag := range aoi.LocalTags {
		p.Interface.Locals = append(p.Interface.Locals, convertTag(tag, plcmodel.VarLocal))
	}
	if len(aoi.Routines) > 0 {
		body := convertRoutineBody(aoi.Routines[0], tracker)
		p.Body = &body
	}
	return p
}

func convertRoutineBody(routine Routine, tracker *limits.Tracker) plcmodel.Body {
	switch {
	case routine.STContent != nil:
		return plcmodel.STBody(routine.STContent.JoinedText())
	case routine.RLLContent != nil:
		rungs := make([]plcmodel.Rung, 0, len(routine.RLLContent.Rungs))
		for _, rx := range routine.RLLContent.Rungs {
			parsed := rll.Parse(rx.Text, tracker)
			rungs = append(rungs, plcmodel.Rung{
				Number:       rx.NumberInt(),
				Comment:      rx.Comment,
				Instructions: rllInstructions(parsed),
				RawText:      rx.Text,
			})
		}
		return plcmodel.Body{Kind: plcmodel.BodyLD, Rungs: rungs}
	default:
		return plcmodel.RawBody(routine.Type, "")
	}
}

// rllInstructions flattens a parsed rung's top-level elements into the
// vendor-neutral Instruction list. Parallel branches are flattened
// depth-first in source order: each branch, including any parallel
// block nested inside it, is appended in full before the next branch,
// since plcmodel.Rung has no nested-branch shape of its own (that detail
// survives separately in the rll.Rung itself for xref's direct walk).
func rllInstructions(r rll.Rung) []plcmodel.Instruction {
	if r.ParsedContent == nil {
		return nil
	}
	var out []plcmodel.Instruction
	var walk func(elems []rll.Element)
	walk = func(elems []rll.Element) {
		for _, el := range elems {
			if el.Kind == rll.ElemParallel {
				for _, branch := range el.Branches {
					walk(branch)
				}
				continue
			}
			instr := plcmodel.Instruction{Mnemonic: el.Mnemonic}
			for _, op := range el.Operands {
				if op.Kind == rll.OperandInferred {
					instr.Operands = append(instr.Operands, plcmodel.Operand{Kind: plcmodel.OperandLiteral, Text: "?"})
					continue
				}
				instr.Operands = append(instr.Operands, plcmodel.Operand{Kind: plcmodel.OperandTag, Text: op.Text})
			}
			out = append(out, instr)
		}
	}
	walk(r.ParsedContent.Elements)
	return out
}

func convertTask(t Task) plcmodel.Task {
	task := plcmodel.Task{Name: t.Name}
	for _, sp := range t.ScheduledPrograms {
		task.Programs = append(task.Programs, sp.Name)
	}
	switch strings.ToUpper(t.Type) {
	case "CONTINUOUS":
		task.Trigger = plcmodel.TaskTrigger{Kind: plcmodel.TriggerContinuous}
		task.Priority = 15
	default:
		period := parseUintOrZero(t.Rate)
		task.Trigger = plcmodel.TaskTrigger{Kind: plcmodel.TriggerPeriodic, PeriodMs: period}
		task.Priority = uint8(parseUintOrZero(t.Priority))
	}
	if wd := parseUintOrZero(t.Watchdog); wd > 0 {
		task.WatchdogMs = &wd
	}
	return task
}
