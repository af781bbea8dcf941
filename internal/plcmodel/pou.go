package plcmodel

// Pou is one Program Organization Unit: a Program, Function, or
// FunctionBlock. Maps to an L5X <Program>/<AddOnInstructionDefinition>
// or a PLCopen <pou>.
type Pou struct {
	Name        string
	Kind        PouKind
	Description string
	Interface   PouInterface
	Body        *Body
}

// IsEmpty reports whether this POU has no body, or a body that is empty
// per its own language's emptiness rule (see Body.IsEmpty).
func (p *Pou) IsEmpty() bool {
	return p.Body == nil || p.Body.IsEmpty()
}

// AllVariables returns every variable across every interface section.
func (p *Pou) AllVariables() []Variable {
	return p.Interface.AllVariables()
}

// FindVariable looks up a variable by name across all interface sections.
func (p *Pou) FindVariable(name string) *Variable {
	return p.Interface.FindVariable(name)
}

// PouInterface groups a POU's variable declarations by section.
type PouInterface struct {
	Inputs     []Variable
	Outputs    []Variable
	InOuts     []Variable
	Locals     []Variable
	Temps      []Variable
	Externals  []Variable
	ReturnType string
}

// AllVariables returns every variable across all sections, in section
// order: inputs, outputs, in-outs, locals, temps, externals.
func (pi *PouInterface) AllVariables() []Variable {
	total := len(pi.Inputs) + len(pi.Outputs) + len(pi.InOuts) + len(pi.Locals) + len(pi.Temps) + len(pi.Externals)
	out := make([]Variable, 0, total)
	out = append(out, pi.Inputs...)
	out = append(out, pi.Outputs...)
	out = append(out, pi.InOuts...)
	out = append(out, pi.Locals...)
	out = append(out, pi.Temps...)
	out = append(out, pi.Externals...)
	return out
}

// FindVariable finds a variable by name in any section.
func (pi *PouInterface) FindVariable(name string) *Variable {
	for _, section := range [][]Variable{pi.Inputs, pi.Outputs, pi.InOuts, pi.Locals, pi.Temps, pi.Externals} {
		for i := range section {
			if section[i].Name == name {
				return &section[i]
			}
		}
	}
	return nil
}

// VariableCount is the total number of declared variables across all
// sections.
func (pi *PouInterface) VariableCount() int {
	return len(pi.Inputs) + len(pi.Outputs) + len(pi.InOuts) + len(pi.Locals) + len(pi.Temps) + len(pi.Externals)
}
