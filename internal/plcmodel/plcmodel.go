// Package plcmodel is the vendor-neutral project representation that
// every decoder (l5x, plcopen) converges on before cross-reference
// analysis runs. It owns no parsing logic of its own: it is the shape
// format-specific loaders build and internal/xref consumes.
package plcmodel

// PouKind distinguishes the three IEC 61131-3 program organization unit
// flavors.
type PouKind int

const (
	Program PouKind = iota
	Function
	FunctionBlock
)

func (k PouKind) String() string {
	switch k {
	case Program:
		return "Program"
	case Function:
		return "Function"
	case FunctionBlock:
		return "FunctionBlock"
	default:
		return "Unknown"
	}
}

// VarClass is the declaration section a Variable belongs to.
type VarClass int

const (
	VarInput VarClass = iota
	VarOutput
	VarInOut
	VarLocal
	VarTemp
	VarExternal
	VarGlobal
	VarConstant
)

func (c VarClass) String() string {
	switch c {
	case VarInput:
		return "Input"
	case VarOutput:
		return "Output"
	case VarInOut:
		return "InOut"
	case VarLocal:
		return "Local"
	case VarTemp:
		return "Temp"
	case VarExternal:
		return "External"
	case VarGlobal:
		return "Global"
	case VarConstant:
		return "Constant"
	default:
		return "Unknown"
	}
}

// Project is the top-level container: an L5X Controller or a PLCopen
// project, mapped onto one common shape.
type Project struct {
	Name          string
	Description   string
	DataTypes     []DataTypeDef
	Pous          []Pou
	Configuration *Configuration
	SourceFormat  string
}

// FindPou returns the POU with the given name, or nil.
func (p *Project) FindPou(name string) *Pou {
	for i := range p.Pous {
		if p.Pous[i].Name == name {
			return &p.Pous[i]
		}
	}
	return nil
}

// FindDataType returns the data type definition with the given name, or nil.
func (p *Project) FindDataType(name string) *DataTypeDef {
	for i := range p.DataTypes {
		if p.DataTypes[i].Name == name {
			return &p.DataTypes[i]
		}
	}
	return nil
}

// Programs returns every POU of kind Program.
func (p *Project) Programs() []*Pou { return p.pousOfKind(Program) }

// FunctionBlocks returns every POU of kind FunctionBlock.
func (p *Project) FunctionBlocks() []*Pou { return p.pousOfKind(FunctionBlock) }

// Functions returns every POU of kind Function.
func (p *Project) Functions() []*Pou { return p.pousOfKind(Function) }

func (p *Project) pousOfKind(k PouKind) []*Pou {
	var out []*Pou
	for i := range p.Pous {
		if p.Pous[i].Kind == k {
			out = append(out, &p.Pous[i])
		}
	}
	return out
}

// Configuration is the hardware/task configuration of a project: L5X
// controller tasks, or a PLCopen <configurations> element.
type Configuration struct {
	Name      string
	Resources []Resource
}

// Resource is one CPU/PLC within a Configuration.
type Resource struct {
	Name       string
	Tasks      []Task
	GlobalVars []Variable
}

// ToPlcModel is implemented by every format-specific decoder
// (internal/l5x, internal/plcopen) to produce a vendor-neutral Project.
type ToPlcModel interface {
	ToPlcModel() Project
}
