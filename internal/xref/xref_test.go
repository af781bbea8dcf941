package xref

import (
	"sort"
	"testing"

	"github.com/radevgit/plceye/internal/l5x"
	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/plcmodel"
)

func TestAnalyzeController_CaseInsensitiveUsedAndUndefined(t *testing.T) {
	c := &l5x.Controller{
		Name: "TestController",
		Tags: []l5x.Tag{
			{Name: "Motor_Run", DataType: "BOOL"},
			{Name: "Unused_Flag", DataType: "BOOL"},
		},
		Programs: []l5x.Program{
			{
				Name: "MainProgram",
				Routines: []l5x.Routine{
					{
						Name: "Logic",
						Type: "RLL",
						RLLContent: &l5x.RLLContent{
							Rungs: []l5x.RungXML{
								{Number: "0", Text: "XIC(motor_run)OTE(Missing_Tag);"},
							},
						},
					},
				},
			},
		},
	}

	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeController(c, tracker)

	if r.SourceFormat != "L5X" || !r.CaseFold {
		t.Fatalf("expected L5X case-folded result, got %+v", r)
	}
	if !r.UsedVars["MOTOR_RUN"] {
		t.Fatalf("expected lower-case 'motor_run' usage to fold to MOTOR_RUN, got %v", r.UsedVars)
	}

	undef := r.UndefinedVariables()
	if len(undef) != 1 || undef[0] != "MISSING_TAG" {
		t.Fatalf("expected exactly MISSING_TAG undefined, got %v", undef)
	}

	unused := r.UnusedVariables()
	if len(unused) != 1 || unused[0].Name != "Unused_Flag" {
		t.Fatalf("expected Unused_Flag unused, got %+v", unused)
	}
}

func TestAnalyzeController_BuiltinMnemonicNotTreatedAsUndefinedPou(t *testing.T) {
	c := &l5x.Controller{
		Programs: []l5x.Program{
			{
				Name: "P1",
				Routines: []l5x.Routine{
					{
						Name: "R1",
						Type: "RLL",
						RLLContent: &l5x.RLLContent{
							Rungs: []l5x.RungXML{{Number: "0", Text: "XIC(a)TON(t,1,0);"}},
						},
					},
				},
			},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeController(c, tracker)
	if r.UsedPous["TON"] || r.UsedPous["XIC"] {
		t.Fatalf("builtin mnemonics must not be recorded as used POUs: %v", r.UsedPous)
	}
}

func TestAnalyzeController_EmptyRoutineMarksPouEmpty(t *testing.T) {
	c := &l5x.Controller{
		Programs: []l5x.Program{
			{
				Name: "EmptyProg",
				Routines: []l5x.Routine{
					{Name: "R1", Type: "RLL", RLLContent: &l5x.RLLContent{}},
				},
			},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeController(c, tracker)
	if len(r.EmptyPous) != 1 || r.EmptyPous[0] != "EmptyProg" {
		t.Fatalf("expected EmptyProg to be reported empty, got %v", r.EmptyPous)
	}
}

func TestAnalyzeController_STRoutineUsesAndCalls(t *testing.T) {
	c := &l5x.Controller{
		Tags: []l5x.Tag{{Name: "Start_PB", DataType: "BOOL"}, {Name: "Running", DataType: "BOOL"}},
		Programs: []l5x.Program{
			{
				Name: "MainProgram",
				Routines: []l5x.Routine{
					{
						Name: "Logic",
						Type: "ST",
						STContent: &l5x.STContent{
							Lines: []l5x.STLine{
								{Number: "1", Text: "IF Start_PB THEN"},
								{Number: "2", Text: "Running := TRUE;"},
								{Number: "3", Text: "MyAoi(Start_PB, Running);"},
								{Number: "4", Text: "END_IF;"},
							},
						},
					},
				},
			},
		},
		AddOnInstructionDefinitions: []l5x.AddOnInstructionDefinition{
			{Name: "MyAoi"},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeController(c, tracker)
	if !r.UsedVars["START_PB"] || !r.UsedVars["RUNNING"] {
		t.Fatalf("expected Start_PB and Running used, got %v", r.UsedVars)
	}
	if !r.UsedPous["MYAOI"] {
		t.Fatalf("expected MyAoi call recorded as used POU, got %v", r.UsedPous)
	}
	// MyAoi has no routines, so it alone is empty; the ST program is not.
	if len(r.EmptyPous) != 1 || r.EmptyPous[0] != "MyAoi" {
		t.Fatalf("expected only the routine-less MyAoi reported empty, got %v", r.EmptyPous)
	}
}

func TestAnalyzeProject_CaseSensitiveAndDuplicateDiagnostic(t *testing.T) {
	proj := plcmodel.Project{
		Name: "Proj1",
		Pous: []plcmodel.Pou{
			{
				Name: "Main",
				Kind: plcmodel.Program,
				Interface: plcmodel.PouInterface{
					Locals: []plcmodel.Variable{
						{Name: "Counter", DataType: "INT", Class: plcmodel.VarLocal},
						{Name: "Counter", DataType: "INT", Class: plcmodel.VarLocal},
					},
				},
				Body: func() *plcmodel.Body {
					b := plcmodel.STBody("counter := counter + 1;")
					return &b
				}(),
			},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeProject(proj, tracker)

	if r.CaseFold {
		t.Fatal("PLCopen path must be case-sensitive")
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Kind != DuplicateIdentifier {
		t.Fatalf("expected one duplicate-identifier diagnostic, got %+v", r.Diagnostics)
	}

	// Lower-case "counter" used in the body must NOT resolve against the
	// upper-case-first "Counter" declaration under case-sensitive rules.
	undef := r.UndefinedVariables()
	if len(undef) != 1 || undef[0] != "counter" {
		t.Fatalf("expected lower-case 'counter' to be undefined under case-sensitive matching, got %v", undef)
	}
}

func TestAnalyzeProject_EmptyBodyMarksPouEmpty(t *testing.T) {
	proj := plcmodel.Project{
		Pous: []plcmodel.Pou{
			{Name: "Blank", Kind: plcmodel.Program, Body: nil},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeProject(proj, tracker)
	if len(r.EmptyPous) != 1 || r.EmptyPous[0] != "Blank" {
		t.Fatalf("expected Blank to be reported empty, got %v", r.EmptyPous)
	}
}

func TestAnalyzeProject_LDInstructionOperands(t *testing.T) {
	proj := plcmodel.Project{
		Pous: []plcmodel.Pou{
			{
				Name: "Main",
				Kind: plcmodel.Program,
				Interface: plcmodel.PouInterface{
					Locals: []plcmodel.Variable{{Name: "Sensor1", DataType: "BOOL", Class: plcmodel.VarLocal}},
				},
				Body: &plcmodel.Body{
					Kind: plcmodel.BodyLD,
					Rungs: []plcmodel.Rung{
						{
							Number: 0,
							Instructions: []plcmodel.Instruction{
								{Mnemonic: "XIC", Operands: []plcmodel.Operand{{Kind: plcmodel.OperandTag, Text: "Sensor1"}}},
								{Mnemonic: "CoilOut", Operands: []plcmodel.Operand{{Kind: plcmodel.OperandTag, Text: "Output1.Bit"}}},
							},
						},
					},
				},
			},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeProject(proj, tracker)
	if !r.UsedVars["Sensor1"] {
		t.Fatalf("expected Sensor1 used, got %v", r.UsedVars)
	}
	if !r.UsedVars["Output1"] {
		t.Fatalf("expected Output1 base tag extracted from 'Output1.Bit', got %v", r.UsedVars)
	}
	if !r.UsedPous["CoilOut"] {
		t.Fatalf("expected non-builtin mnemonic CoilOut recorded as used POU, got %v", r.UsedPous)
	}
}

func TestAnalyzeProject_SFCActionsAndTransitions(t *testing.T) {
	proj := plcmodel.Project{
		Pous: []plcmodel.Pou{
			{
				Name: "Seq",
				Kind: plcmodel.Program,
				Interface: plcmodel.PouInterface{
					Locals: []plcmodel.Variable{{Name: "Done", DataType: "BOOL", Class: plcmodel.VarLocal}},
				},
				Body: &plcmodel.Body{
					Kind: plcmodel.BodySFC,
					SFC: plcmodel.SfcBody{
						Steps: []plcmodel.SfcStep{
							{Name: "Step1", Actions: []plcmodel.SfcAction{{Name: "DoWork", Qualifier: "N"}}},
						},
						Transitions: []plcmodel.SfcTransition{
							{Name: "T1", FromSteps: []string{"Step1"}, ToSteps: []string{"Step2"}, Condition: "Done"},
						},
					},
				},
			},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeProject(proj, tracker)
	if !r.UsedPous["DoWork"] {
		t.Fatalf("expected SFC action name recorded as used POU, got %v", r.UsedPous)
	}
	if !r.UsedVars["Done"] {
		t.Fatalf("expected transition condition identifier recorded as used var, got %v", r.UsedVars)
	}
	foundStepName := false
	for _, def := range r.Defined {
		if def.Name == "Step1" && def.Scope == "Seq" {
			foundStepName = true
		}
	}
	if !foundStepName {
		t.Fatalf("expected SFC step name Step1 recorded as a defined identifier, got %+v", r.Defined)
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"Tag1":          "Tag1",
		"Tag1.Member":   "Tag1",
		"Tag1[3]":       "Tag1",
		" Tag1 . Bit":   "Tag1",
		"Arr[2].Field":  "Arr",
	}
	for in, want := range cases {
		if got := baseName(in); got != want {
			t.Fatalf("baseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUndefinedVariablesSortedAndDeduped(t *testing.T) {
	c := &l5x.Controller{
		Programs: []l5x.Program{
			{
				Name: "P1",
				Routines: []l5x.Routine{
					{
						Name: "R1",
						Type: "RLL",
						RLLContent: &l5x.RLLContent{
							Rungs: []l5x.RungXML{
								{Number: "0", Text: "XIC(Zulu)OTE(Alpha);"},
								{Number: "1", Text: "XIC(Alpha)OTE(Zulu);"},
							},
						},
					},
				},
			},
		},
	}
	tracker := limits.NewTracker(limits.Default())
	r := AnalyzeController(c, tracker)
	undef := r.UndefinedVariables()
	if !sort.StringsAreSorted(undef) {
		t.Fatalf("expected sorted undefined-variable list, got %v", undef)
	}
	if len(undef) != 2 {
		t.Fatalf("expected exactly 2 distinct undefined vars, got %v", undef)
	}
}
