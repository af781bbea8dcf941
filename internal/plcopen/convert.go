package plcopen

import (
	"strconv"
	"strings"

	"github.com/radevgit/plceye/internal/plcmodel"
)

// ToPlcModel converts a decoded PLCopen Project into the vendor-neutral
// project model.
func (p *Project) ToPlcModel() plcmodel.Project {
	name := "Unnamed"
	if p.FileHeader != nil && p.FileHeader.ProductName != "" {
		name = p.FileHeader.ProductName
	}
	proj := plcmodel.Project{Name: name, SourceFormat: "PLCopen"}

	if p.Types != nil {
		if p.Types.DataTypes != nil {
			for _, dt := range p.Types.DataTypes.DataType {
				proj.DataTypes = append(proj.DataTypes, convertDataType(dt))
			}
		}
		if p.Types.Pous != nil {
			for _, pou := range p.Types.Pous.Pou {
				proj.Pous = append(proj.Pous, convertPou(pou))
			}
		}
	}

	if p.Instances != nil && p.Instances.Configurations != nil {
		for _, cfg := range p.Instances.Configurations.Configuration {
			proj.Configuration = convertConfiguration(cfg)
			break // spec.md's Configuration is singular; extra <configuration> blocks are rare multi-PLC exports out of scope here
		}
	}

	return proj
}

func pouKind(pouType string) plcmodel.PouKind {
	switch strings.ToLower(pouType) {
	case "program":
		return plcmodel.Program
	case "function":
		return plcmodel.Function
	case "functionblock":
		return plcmodel.FunctionBlock
	default:
		return plcmodel.Program
	}
}

func convertPou(pou Pou) plcmodel.Pou {
	result := plcmodel.Pou{Name: pou.Name, Kind: pouKind(pou.PouType)}
	if pou.Interface != nil {
		result.Interface = convertInterface(*pou.Interface)
	}
	if pou.Body != nil {
		body := convertBody(*pou.Body)
		result.Body = &body
	}
	return result
}

func convertInterface(iface Interface) plcmodel.PouInterface {
	var pi plcmodel.PouInterface
	for _, list := range iface.InputVars {
		for _, v := range list.Variable {
			pi.Inputs = append(pi.Inputs, convertVariable(v, plcmodel.VarInput))
		}
	}
	for _, list := range iface.OutputVars {
		for _, v := range list.Variable {
			pi.Outputs = append(pi.Outputs, convertVariable(v, plcmodel.VarOutput))
		}
	}
	for _, list := range iface.InOutVars {
		for _, v := range list.Variable {
			pi.InOuts = append(pi.InOuts, convertVariable(v, plcmodel.VarInOut))
		}
	}
	for _, list := range iface.LocalVars {
		for _, v := range list.Variable {
			pi.Locals = append(pi.Locals, convertVariable(v, plcmodel.VarLocal))
		}
	}
	for _, list := range iface.TempVars {
		for _, v := range list.Variable {
			pi.Temps = append(pi.Temps, convertVariable(v, plcmodel.VarTemp))
		}
	}
	for _, list := range iface.ExternalVars {
		for _, v := range list.Variable {
			pi.Externals = append(pi.Externals, convertVariable(v, plcmodel.VarExternal))
		}
	}
	return pi
}

func convertVariable(v Variable, class plcmodel.VarClass) plcmodel.Variable {
	dataType := v.Type.Name
	if dataType == "" {
		dataType = "ANY"
	}
	result := plcmodel.Variable{Name: v.Name, DataType: dataType, Class: class}
	if v.Address != "" {
		result.Address = v.Address
	}
	if v.InitialValue != nil && v.InitialValue.Simple != nil {
		result.InitialValue = v.InitialValue.Simple.Value
	}
	return result
}

func convertDataType(dt DataTypeDecl) plcmodel.DataTypeDef {
	def := plcmodel.DataTypeDef{Name: dt.Name}
	if dt.BaseType == nil {
		def.Kind = plcmodel.TypeAlias
		return def
	}
	switch {
	case dt.BaseType.Struct != nil:
		def.Kind = plcmodel.TypeStruct
		for _, v := range dt.BaseType.Struct.Variable {
			dataType := v.Type.Name
			if dataType == "" {
				dataType = "ANY"
			}
			def.Struct.Members = append(def.Struct.Members, plcmodel.StructMember{Name: v.Name, DataType: dataType})
		}
	case dt.BaseType.Enum != nil:
		def.Kind = plcmodel.TypeEnum
		if dt.BaseType.Enum.Values != nil {
			for _, v := range dt.BaseType.Enum.Values.Value {
				def.Enum.Members = append(def.Enum.Members, plcmodel.EnumMember{Name: v.Name})
			}
		}
	case dt.BaseType.Array != nil:
		def.Kind = plcmodel.TypeArray
		def.Array.ElementType = dt.BaseType.Array.BaseType.Name
		for _, dim := range dt.BaseType.Array.Dimension {
			lower, _ := strconv.Atoi(dim.Lower)
			upper, _ := strconv.Atoi(dim.Upper)
			def.Array.Dimensions = append(def.Array.Dimensions, plcmodel.ArrayDimension{Lower: int32(lower), Upper: int32(upper)})
		}
	case dt.BaseType.Derived != nil:
		def.Kind = plcmodel.TypeAlias
		def.AliasTarget = dt.BaseType.Derived.Name
	default:
		def.Kind = plcmodel.TypeAlias
	}
	return def
}

func convertBody(b Body) plcmodel.Body {
	switch {
	case b.ST != nil:
		return plcmodel.STBody(b.ST.Text)
	case b.IL != nil:
		return plcmodel.ILBody(b.IL.Text)
	case b.LD != nil:
		return convertLD(*b.LD)
	case b.FBD != nil:
		return convertFBD(*b.FBD)
	case b.SFC != nil:
		return convertSFC(*b.SFC)
	default:
		return plcmodel.RawBody("Unknown", "")
	}
}

func convertLD(ld LDBody) plcmodel.Body {
	var instructions []plcmodel.Instruction
	for _, c := range ld.Contacts {
		instructions = append(instructions, plcmodel.Instruction{
			Mnemonic: "XIC",
			Operands: []plcmodel.Operand{{Kind: plcmodel.OperandTag, Text: c.Variable}},
		})
	}
	for _, coil := range ld.Coils {
		instructions = append(instructions, plcmodel.Instruction{
			Mnemonic: "OTE",
			Operands: []plcmodel.Operand{{Kind: plcmodel.OperandTag, Text: coil.Variable}},
		})
	}
	for _, blk := range ld.Blocks {
		instructions = append(instructions, plcmodel.Instruction{
			Mnemonic: blk.TypeName,
			Operands: []plcmodel.Operand{{Kind: plcmodel.OperandTag, Text: blk.InstanceName}},
		})
	}
	rungs := []plcmodel.Rung{}
	if len(instructions) > 0 {
		rungs = append(rungs, plcmodel.Rung{Number: 0, Instructions: instructions})
	}
	return plcmodel.Body{Kind: plcmodel.BodyLD, Rungs: rungs}
}

func convertFBD(fbd FBDBody) plcmodel.Body {
	var instructions []plcmodel.Instruction
	for _, blk := range fbd.Blocks {
		instructions = append(instructions, plcmodel.Instruction{
			Mnemonic: blk.TypeName,
			Operands: []plcmodel.Operand{{Kind: plcmodel.OperandTag, Text: blk.InstanceName}},
		})
	}
	for _, v := range fbd.InVariables {
		instructions = append(instructions, plcmodel.Instruction{
			Mnemonic: "IN",
			Operands: []plcmodel.Operand{{Kind: plcmodel.OperandExpression, Text: v.Expression}},
		})
	}
	for _, v := range fbd.OutVariables {
		instructions = append(instructions, plcmodel.Instruction{
			Mnemonic: "OUT",
			Operands: []plcmodel.Operand{{Kind: plcmodel.OperandExpression, Text: v.Expression}},
		})
	}
	networks := []plcmodel.Network{}
	if len(instructions) > 0 {
		networks = append(networks, plcmodel.Network{Number: 0, Instructions: instructions})
	}
	return plcmodel.Body{Kind: plcmodel.BodyFBD, Networks: networks}
}

func convertSFC(sfc SFCBody) plcmodel.Body {
	var steps []plcmodel.SfcStep
	for _, s := range sfc.Steps {
		step := plcmodel.SfcStep{Name: s.Name, IsInitial: s.Initial}
		if s.ActionBlock != nil {
			for _, a := range s.ActionBlock.Action {
				action := plcmodel.SfcAction{Qualifier: a.Qualifier}
				if a.Reference != nil {
					action.Name = a.Reference.Name
				}
				step.Actions = append(step.Actions, action)
			}
		}
		steps = append(steps, step)
	}
	var transitions []plcmodel.SfcTransition
	for _, t := range sfc.Transitions {
		trans := plcmodel.SfcTransition{Name: t.Name}
		if t.Condition != nil {
			trans.Condition = t.Condition.Expression
		}
		transitions = append(transitions, trans)
	}
	return plcmodel.Body{Kind: plcmodel.BodySFC, SFC: plcmodel.SfcBody{Steps: steps, Transitions: transitions}}
}

func convertConfiguration(cfg Configuration) *plcmodel.Configuration {
	out := &plcmodel.Configuration{Name: cfg.Name}
	for _, res := range cfg.Resource {
		resource := plcmodel.Resource{Name: res.Name}
		for _, list := range res.GlobalVars {
			for _, v := range list.Variable {
				resource.GlobalVars = append(resource.GlobalVars, convertVariable(v, plcmodel.VarGlobal))
			}
		}
		for _, t := range res.Task {
			resource.Tasks = append(resource.Tasks, convertTask(t))
		}
		out.Resources = append(out.Resources, resource)
	}
	return out
}

func convertTask(t PlcTask) plcmodel.Task {
	task := plcmodel.Task{Name: t.Name}
	for _, inst := range t.PouInstances {
		task.Programs = append(task.Programs, inst.Name)
	}
	priority, _ := strconv.Atoi(t.Priority)
	task.Priority = uint8(priority)
	switch {
	case t.Single != "":
		task.Trigger = plcmodel.TaskTrigger{Kind: plcmodel.TriggerEvent, TriggerTag: t.Single}
	case t.Interval != "":
		task.Trigger = plcmodel.TaskTrigger{Kind: plcmodel.TriggerPeriodic, PeriodMs: parseIntervalMs(t.Interval)}
	default:
		task.Trigger = plcmodel.TaskTrigger{Kind: plcmodel.TriggerContinuous}
	}
	return task
}

// parseIntervalMs converts a PLCopen IEC duration literal like "T#10ms"
// or "t#1s500ms" into milliseconds; unparsed text yields 0 rather than
// failing the whole conversion, since task timing is descriptive here,
// not safety-critical.
func parseIntervalMs(interval string) uint32 {
	s := strings.TrimPrefix(strings.TrimPrefix(interval, "T#"), "t#")
	var total uint32
	var num uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			num = num*10 + uint32(c-'0')
		case c == 'm' && i+1 < len(s) && s[i+1] == 's':
			total += num
			num = 0
			i++
		case c == 's':
			total += num * 1000
			num = 0
		case c == 'h':
			total += num * 3600000
			num = 0
		default:
			num = 0
		}
	}
	return total
}
