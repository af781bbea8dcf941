package plcopen

import (
	"testing"

	"github.com/radevgit/plceye/internal/plcmodel"
)

const sampleProject = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://www.plcopen.org/xml/tc6_0200">
  <fileHeader companyName="Test" productName="TestProject" productVersion="1.0" creationDateTime="2024-01-01T00:00:00"/>
  <contentHeader name="Test"/>
  <types>
    <dataTypes>
      <dataType name="MotorStatus">
        <baseType>
          <struct>
            <variable name="Running"><type><BOOL/></type></variable>
            <variable name="FaultCode"><type><DINT/></type></variable>
          </struct>
        </baseType>
      </dataType>
    </dataTypes>
    <pous>
      <pou name="Main" pouType="program">
        <interface>
          <inputVars>
            <variable name="Start"><type><BOOL/></type></variable>
          </inputVars>
          <localVars>
            <variable name="Counter"><type><INT/></type></variable>
            <variable name="Status"><type><derived name="MotorStatus"/></type></variable>
          </localVars>
        </interface>
        <body>
          <ST><xhtml>Counter := Counter + 1;</xhtml></ST>
        </body>
      </pou>
    </pous>
  </types>
  <instances>
    <configurations>
      <configuration name="Config0">
        <resource name="Resource0">
          <task name="MainTask" interval="T#10ms" priority="1">
            <pouInstance name="Main" typeName="Main"/>
          </task>
        </resource>
      </configuration>
    </configurations>
  </instances>
</project>`

func TestDecodeProjectShape(t *testing.T) {
	proj, err := Decode([]byte(sampleProject))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if proj.FileHeader == nil || proj.FileHeader.ProductName != "TestProject" {
		t.Fatalf("bad file header: %+v", proj.FileHeader)
	}
	if proj.Types == nil || len(proj.Types.Pous.Pou) != 1 {
		t.Fatal("expected one POU")
	}
	pou := proj.Types.Pous.Pou[0]
	if pou.Interface == nil || len(pou.Interface.InputVars) != 1 {
		t.Fatal("expected one inputVars block")
	}
}

func TestVarTypeResolvesPrimitiveAndDerived(t *testing.T) {
	proj, err := Decode([]byte(sampleProject))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	pou := proj.Types.Pous.Pou[0]
	input := pou.Interface.InputVars[0].Variable[0]
	if input.Type.Name != "BOOL" {
		t.Fatalf("expected BOOL, got %q", input.Type.Name)
	}
	locals := pou.Interface.LocalVars[0].Variable
	if locals[1].Type.Name != "MotorStatus" {
		t.Fatalf("expected derived MotorStatus, got %q", locals[1].Type.Name)
	}
}

func TestLooksLikePlcOpen(t *testing.T) {
	if !LooksLikePlcOpen(sampleProject) {
		t.Fatal("sample should sniff as PLCopen")
	}
	if LooksLikePlcOpen(`<RSLogix5000Content><Controller Name="X"/></RSLogix5000Content>`) {
		t.Fatal("L5X content should not sniff as PLCopen")
	}
}

func TestToPlcModelConvertSimpleProject(t *testing.T) {
	proj, err := Decode([]byte(sampleProject))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	model := proj.ToPlcModel()
	if model.Name != "TestProject" {
		t.Fatalf("got name %q", model.Name)
	}
	if len(model.Pous) != 1 {
		t.Fatalf("expected 1 POU, got %d", len(model.Pous))
	}
	main := model.Pous[0]
	if main.Name != "Main" || main.Kind != plcmodel.Program {
		t.Fatalf("bad POU: %+v", main)
	}
	if len(main.Interface.Inputs) != 1 || main.Interface.Inputs[0].Name != "Start" {
		t.Fatalf("bad inputs: %+v", main.Interface.Inputs)
	}
	if len(main.Interface.Locals) != 2 || main.Interface.Locals[1].DataType != "MotorStatus" {
		t.Fatalf("bad locals: %+v", main.Interface.Locals)
	}
	if main.Body == nil || main.Body.Kind != plcmodel.BodyST {
		t.Fatalf("expected ST body, got %+v", main.Body)
	}
	if len(model.DataTypes) != 1 || model.DataTypes[0].Kind != plcmodel.TypeStruct {
		t.Fatalf("expected 1 struct data type, got %+v", model.DataTypes)
	}
	if model.Configuration == nil || len(model.Configuration.Resources) != 1 {
		t.Fatal("expected one converted resource")
	}
	task := model.Configuration.Resources[0].Tasks[0]
	if task.Trigger.Kind != plcmodel.TriggerPeriodic || task.Trigger.PeriodMs != 10 {
		t.Fatalf("bad task trigger: %+v", task.Trigger)
	}
}
