package plcopen

// Body is <body>: a choice of exactly one programming-language
// representation. Only the field matching the document's actual content
// is non-nil.
type Body struct {
	ST  *STBody  `xml:"ST"`
	IL  *ILBody  `xml:"IL"`
	LD  *LDBody  `xml:"LD"`
	FBD *FBDBody `xml:"FBD"`
	SFC *SFCBody `xml:"SFC"`
}

// STBody is <ST>, wrapping inline Structured Text source in an xhtml
// pass-through element.
type STBody struct {
	Text string `xml:"xhtml"`
}

// ILBody is <IL>, wrapping inline Instruction List source the same way.
type ILBody struct {
	Text string `xml:"xhtml"`
}

// FBDBody is <FBD>: a Function Block Diagram network, modeled as the
// blocks and in/out variables xref needs to walk (spec.md §4.5): each
// block's typeName, and each in/out variable's expression text.
type FBDBody struct {
	Blocks      []FBDBlock    `xml:"block"`
	InVariables []FBDVariable `xml:"inVariable"`
	OutVariables []FBDVariable `xml:"outVariable"`
}

// FBDBlock is one function-block instance call within an FBD network.
type FBDBlock struct {
	LocalID      string `xml:"localId,attr"`
	TypeName     string `xml:"typeName,attr"`
	InstanceName string `xml:"instanceName,attr"`
}

// FBDVariable is an in/out variable pin: its connected expression text.
type FBDVariable struct {
	LocalID    string `xml:"localId,attr"`
	Expression string `xml:"expression"`
}

// LDBody is <LD>: a Ladder Diagram network, modeled as contacts, coils,
// and embedded function-block calls.
type LDBody struct {
	Contacts []LDContact `xml:"contact"`
	Coils    []LDCoil    `xml:"coil"`
	Blocks   []FBDBlock  `xml:"block"`
}

// LDContact is one normally-open/normally-closed contact bound to a
// variable.
type LDContact struct {
	LocalID  string `xml:"localId,attr"`
	Variable string `xml:"variable"`
	Negated  string `xml:"negated,attr"`
}

// LDCoil is one output coil bound to a variable.
type LDCoil struct {
	LocalID  string `xml:"localId,attr"`
	Variable string `xml:"variable"`
	Negated  string `xml:"negated,attr"`
}

// SFCBody is <SFC>: steps linked by transitions.
type SFCBody struct {
	Steps       []SFCStep       `xml:"step"`
	Transitions []SFCTransition `xml:"transition"`
}

// SFCStep is one <step>.
type SFCStep struct {
	Name        string          `xml:"name,attr"`
	Initial     bool            `xml:"initialStep,attr"`
	ActionBlock *SFCActionBlock `xml:"actionBlock"`
}

// SFCActionBlock is <actionBlock>, attaching qualified actions to a step.
type SFCActionBlock struct {
	Action []SFCAction `xml:"action"`
}

// SFCAction is one qualified action reference (N, S, R, P, ...).
type SFCAction struct {
	Qualifier string              `xml:"qualifier,attr"`
	Reference *SFCActionReference `xml:"reference"`
}

// SFCActionReference names the action POU/body this action invokes.
type SFCActionReference struct {
	Name string `xml:"name,attr"`
}

// SFCTransition is one <transition>, guarding advancement from its
// source step(s) to its target step(s).
type SFCTransition struct {
	Name      string        `xml:"name,attr"`
	Condition *SFCCondition `xml:"condition"`
}

// SFCCondition is <condition>, holding the guard expression as ST text.
type SFCCondition struct {
	Expression string `xml:"expression"`
}
