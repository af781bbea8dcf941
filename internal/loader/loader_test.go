package loader

import "testing"

const sampleL5X = `<?xml version="1.0" encoding="UTF-8"?>
<RSLogix5000Content SchemaRevision="1.0" SoftwareRevision="32.00">
  <Controller Name="TestController" ProcessorType="1756-L83E">
    <Tags>
      <Tag Name="Motor_Run" TagType="Base" DataType="BOOL"/>
    </Tags>
  </Controller>
</RSLogix5000Content>`

const samplePlcOpen = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://www.plcopen.org/xml/tc6_0201">
  <fileHeader companyName="Acme" productName="Test" creationDateTime="2026-01-01T00:00:00"/>
  <contentHeader name="SampleProject">
    <coordinateInfo>
      <fbd><scaling x="1" y="1"/></fbd>
      <ld><scaling x="1" y="1"/></ld>
      <sfc><scaling x="1" y="1"/></sfc>
    </coordinateInfo>
  </contentHeader>
  <types>
    <dataTypes/>
    <pous>
      <pou name="Main" pouType="program">
        <interface/>
        <body><ST><xhtml:p xmlns:xhtml="http://www.w3.org/1999/xhtml"></xhtml:p></ST></body>
      </pou>
    </pous>
  </types>
  <instances>
    <configurations/>
  </instances>
</project>`

func TestFromBytesDetectsL5XByExtension(t *testing.T) {
	lp, err := FromBytes("controller.L5X", []byte(sampleL5X))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lp.Format != FormatL5X || lp.Controller == nil {
		t.Fatalf("expected L5X controller, got %+v", lp)
	}
	if lp.Name() != "TestController" {
		t.Fatalf("got name %q, want TestController", lp.Name())
	}
}

func TestFromBytesDetectsL5XByContentSniffWhenExtensionAmbiguous(t *testing.T) {
	lp, err := FromBytes("export.xml", []byte(sampleL5X))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lp.Format != FormatL5X {
		t.Fatalf("expected content-sniffed L5X, got %v", lp.Format)
	}
}

func TestFromBytesDetectsPlcOpenByContentSniff(t *testing.T) {
	lp, err := FromBytes("project.xml", []byte(samplePlcOpen))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lp.Format != FormatPlcOpen {
		t.Fatalf("expected PLCopen, got %v", lp.Format)
	}
}

func TestFromBytesUnrecognizedFormat(t *testing.T) {
	_, err := FromBytes("mystery.xml", []byte("<unrelated/>"))
	if err == nil {
		t.Fatal("expected an error for unrecognized content")
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile("/nonexistent/does-not-exist.l5x")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
