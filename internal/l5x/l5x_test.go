package l5x

import (
	"strings"
	"testing"

	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/plcmodel"
)

const sampleL5X = `<?xml version="1.0" encoding="UTF-8"?>
<RSLogix5000Content SchemaRevision="1.0" SoftwareRevision="32.01">
  <Controller Name="TestController">
    <DataTypes>
      <DataType Name="MotorStatus" Family="NoFamily" Class="User">
        <Members>
          <Member Name="Running" DataType="BOOL" Dimension="0"/>
          <Member Name="FaultCode" DataType="DINT" Dimension="0"/>
        </Members>
      </DataType>
    </DataTypes>
    <Tags>
      <Tag Name="GlobalEnable" TagType="Base" DataType="BOOL" Constant="false"/>
    </Tags>
    <Programs>
      <Program Name="MainProgram" MainRoutineName="MainRoutine">
        <Tags>
          <Tag Name="Start" TagType="Base" DataType="BOOL"/>
          <Tag Name="Motor" TagType="Base" DataType="BOOL"/>
        </Tags>
        <Routines>
          <Routine Name="MainRoutine" Type="RLL">
            <RLLContent>
              <Rung Number="0" Type="N">
                <Text>XIC(Start)OTE(Motor);</Text>
              </Rung>
              <Rung Number="1" Type="N">
                <Text>XIC(Motor)OTE(Lamp);</Text>
              </Rung>
            </RLLContent>
          </Routine>
        </Routines>
      </Program>
    </Programs>
    <Tasks>
      <Task Name="MainTask" Type="CONTINUOUS" Priority="10">
        <ScheduledPrograms>
          <ScheduledProgram Name="MainProgram"/>
        </ScheduledPrograms>
      </Task>
    </Tasks>
  </Controller>
</RSLogix5000Content>`

func TestDecodeControllerShape(t *testing.T) {
	root, err := Decode([]byte(sampleL5X))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if root.Controller.Name != "TestController" {
		t.Fatalf("got controller name %q", root.Controller.Name)
	}
	if len(root.Controller.Programs) != 1 {
		t.Fatalf("expected 1 program, got %d", len(root.Controller.Programs))
	}
	prog := root.Controller.Programs[0]
	if len(prog.Tags) != 2 {
		t.Fatalf("expected 2 program tags, got %d", len(prog.Tags))
	}
	if len(prog.Routines) != 1 || prog.Routines[0].RLLContent == nil {
		t.Fatal("expected one RLL routine")
	}
	if len(prog.Routines[0].RLLContent.Rungs) != 2 {
		t.Fatalf("expected 2 rungs, got %d", len(prog.Routines[0].RLLContent.Rungs))
	}
}

func TestLooksLikeL5X(t *testing.T) {
	if !LooksLikeL5X(sampleL5X) {
		t.Fatal("sample should sniff as L5X")
	}
	if LooksLikeL5X(`<project xmlns="http://www.plcopen.org/xml/tc6_0200">`) {
		t.Fatal("PLCopen content should not sniff as L5X")
	}
}

func TestAllRungsLocatesEachRung(t *testing.T) {
	root, err := Decode([]byte(sampleL5X))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	tracker := limits.NewTracker(limits.Balanced())
	rungs := root.Controller.AllRungs(tracker)
	if len(rungs) != 2 {
		t.Fatalf("expected 2 located rungs, got %d", len(rungs))
	}
	first := rungs[0]
	if first.Location.Program != "MainProgram" || first.Location.Routine != "MainRoutine" || first.Location.RungNumber != 0 {
		t.Fatalf("bad location: %+v", first.Location)
	}
	if first.HasError() {
		t.Fatalf("unexpected rung parse error: %v", first.Parsed.Err)
	}
	if !strings.Contains(first.Location.Path(), "MainProgram/MainRoutine/Rung#0") {
		t.Fatalf("bad path: %s", first.Location.Path())
	}
}

func TestToPlcModelConvertsProgramsAndDataTypes(t *testing.T) {
	root, err := Decode([]byte(sampleL5X))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	tracker := limits.NewTracker(limits.Balanced())
	proj := root.Controller.ToPlcModel(tracker)
	if proj.Name != "TestController" || proj.SourceFormat != "L5X" {
		t.Fatalf("bad project header: %+v", proj)
	}
	if len(proj.DataTypes) != 1 || proj.DataTypes[0].Kind != plcmodel.TypeStruct {
		t.Fatalf("expected 1 struct data type, got %+v", proj.DataTypes)
	}
	if len(proj.DataTypes[0].Struct.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(proj.DataTypes[0].Struct.Members))
	}
	if len(proj.Pous) != 1 {
		t.Fatalf("expected 1 POU, got %d", len(proj.Pous))
	}
	main := proj.Pous[0]
	if main.Body == nil || main.Body.Kind != plcmodel.BodyLD {
		t.Fatalf("expected LD body, got %+v", main.Body)
	}
	if len(main.Body.Rungs) != 2 {
		t.Fatalf("expected 2 converted rungs, got %d", len(main.Body.Rungs))
	}
	if main.Body.Rungs[0].Instructions[0].Mnemonic != "XIC" {
		t.Fatalf("bad first instruction: %+v", main.Body.Rungs[0].Instructions[0])
	}
	if proj.Configuration == nil || len(proj.Configuration.Resources[0].Tasks) != 1 {
		t.Fatal("expected one converted task")
	}
}
