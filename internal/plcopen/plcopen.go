// Package plcopen decodes PLCopen XML (TC6 schema) project files: the
// vendor-neutral IEC 61131-3 exchange format used by Codesys-family
// tooling, with inline ST/IL text bodies and graphical LD/FBD/SFC bodies
// expressed as element graphs rather than vendor-A's inline rung text.
//
// encoding/xml decodes this container for the same reason it decodes
// L5X: see internal/l5x's package doc for the stdlib-only justification.
package plcopen

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Project is the root <project> element.
type Project struct {
	XMLName       xml.Name       `xml:"project"`
	FileHeader    *FileHeader    `xml:"fileHeader"`
	ContentHeader *ContentHeader `xml:"contentHeader"`
	Types         *Types         `xml:"types"`
	Instances     *Instances     `xml:"instances"`
}

// FileHeader is <fileHeader>.
type FileHeader struct {
	CompanyName      string `xml:"companyName,attr"`
	ProductName      string `xml:"productName,attr"`
	ProductVersion   string `xml:"productVersion,attr"`
	CreationDateTime string `xml:"creationDateTime,attr"`
}

// ContentHeader is <contentHeader>.
type ContentHeader struct {
	Name string `xml:"name,attr"`
}

// Types is <types>: data type and POU declarations.
type Types struct {
	DataTypes *DataTypesSection `xml:"dataTypes"`
	Pous      *PousSection      `xml:"pous"`
}

// DataTypesSection is <types>/<dataTypes>.
type DataTypesSection struct {
	DataType []DataTypeDecl `xml:"dataType"`
}

// PousSection is <types>/<pous>.
type PousSection struct {
	Pou []Pou `xml:"pou"`
}

// Pou is one <pou> element.
type Pou struct {
	Name      string     `xml:"name,attr"`
	PouType   string     `xml:"pouType,attr"`
	Interface *Interface `xml:"interface"`
	Body      *Body      `xml:"body"`
}

// Interface is the variable-declaration section of a Pou, grouped by
// IEC scope. Each slot can repeat (multiple <inputVars> blocks are
// legal), matching the real schema's `xs:choice` cardinality.
type Interface struct {
	InputVars    []VarList `xml:"inputVars"`
	OutputVars   []VarList `xml:"outputVars"`
	InOutVars    []VarList `xml:"inOutVars"`
	LocalVars    []VarList `xml:"localVars"`
	TempVars     []VarList `xml:"tempVars"`
	ExternalVars []VarList `xml:"externalVars"`
}

// VarList is a <*Vars> block: a flat list of <variable> declarations.
type VarList struct {
	Variable []Variable `xml:"variable"`
}

// Variable is one <variable> declaration.
type Variable struct {
	Name         string        `xml:"name,attr"`
	Address      string        `xml:"address,attr"`
	Type         VarType       `xml:"type"`
	InitialValue *InitialValue `xml:"initialValue"`
}

// InitialValue is <initialValue>, holding a literal <simpleValue>.
type InitialValue struct {
	Simple *SimpleValue `xml:"simpleValue"`
}

// SimpleValue is <simpleValue value="...">.
type SimpleValue struct {
	Value string `xml:"value,attr"`
}

// VarType models PLCopen's `<type>` choice group: exactly one child
// element names either a primitive type (`<BOOL/>`, `<INT/>`, ...) or a
// user-defined type (`<derived name="..."/>`). The schema encodes this
// as an XSD choice, which a struct-tag decode can't express directly, so
// VarType implements xml.Unmarshaler to resolve whichever child is
// present into a single Name.
type VarType struct {
	Name string
}

// UnmarshalXML implements xml.Unmarshaler, resolving the single present
// child element of a PLCopen <type> choice group into Name: the child's
// own tag for a primitive (BOOL, INT, REAL, ...), or its name attribute
// for <derived>.
func (t *VarType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("plcopen: decode <type>: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if t.Name == "" {
				if el.Name.Local == "derived" {
					for _, a := range el.Attr {
						if a.Name.Local == "name" {
							t.Name = a.Value
						}
					}
				} else {
					t.Name = el.Name.Local
				}
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

// DataTypeDecl is one <dataType> declaration under <types>/<dataTypes>.
type DataTypeDecl struct {
	Name     string       `xml:"name,attr"`
	BaseType *BaseTypeDef `xml:"baseType"`
}

// BaseTypeDef is <baseType>: another choice group, this time over the
// kind of user-defined type.
type BaseTypeDef struct {
	Struct  *StructTypeDef `xml:"struct"`
	Enum    *EnumTypeDef   `xml:"enum"`
	Array   *ArrayTypeDef  `xml:"array"`
	Derived *DerivedRef    `xml:"derived"`
}

// StructTypeDef is <struct>: an ordered member list.
type StructTypeDef struct {
	Variable []Variable `xml:"variable"`
}

// EnumTypeDef is <enum>.
type EnumTypeDef struct {
	Values *EnumValues `xml:"values"`
}

// EnumValues is <values>.
type EnumValues struct {
	Value []EnumValue `xml:"value"`
}

// EnumValue is one <value name="..."/>.
type EnumValue struct {
	Name string `xml:"name,attr"`
}

// ArrayTypeDef is <array>.
type ArrayTypeDef struct {
	Dimension []ArrayDim `xml:"dimension"`
	BaseType  VarType    `xml:"baseType"`
}

// ArrayDim is one <dimension lower="..." upper="..."/>.
type ArrayDim struct {
	Lower string `xml:"lower,attr"`
	Upper string `xml:"upper,attr"`
}

// DerivedRef is <derived name="..."/>, a reference to a named
// user-defined type.
type DerivedRef struct {
	Name string `xml:"name,attr"`
}

// Instances is <instances>: the hardware/task configuration section.
type Instances struct {
	Configurations *ConfigurationsSection `xml:"configurations"`
}

// ConfigurationsSection is <instances>/<configurations>.
type ConfigurationsSection struct {
	Configuration []Configuration `xml:"configuration"`
}

// Configuration is one <configuration>.
type Configuration struct {
	Name       string    `xml:"name,attr"`
	Resource   []Resource `xml:"resource"`
	GlobalVars []VarList  `xml:"globalVars"`
}

// Resource is one <resource> within a Configuration.
type Resource struct {
	Name       string     `xml:"name,attr"`
	Task       []PlcTask  `xml:"task"`
	GlobalVars []VarList  `xml:"globalVars"`
}

// PlcTask is one <task> scheduling entry.
type PlcTask struct {
	Name         string        `xml:"name,attr"`
	Interval     string        `xml:"interval,attr"`
	Priority     string        `xml:"priority,attr"`
	Single       string        `xml:"single,attr"`
	PouInstances []PouInstance `xml:"pouInstance"`
}

// PouInstance binds a Pou type to a scheduled instance name.
type PouInstance struct {
	Name     string `xml:"name,attr"`
	TypeName string `xml:"typeName,attr"`
}

// Decode parses PLCopen XML bytes into a Project.
func Decode(data []byte) (*Project, error) {
	var proj Project
	if err := xml.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("plcopen: decode: %w", err)
	}
	return &proj, nil
}

// LooksLikePlcOpen sniffs the root element of an XML document for the
// PLCopen namespace or project root, used by the project loader's
// format dispatch.
func LooksLikePlcOpen(content string) bool {
	return strings.Contains(content, "plcopen.org") || strings.Contains(content, "<project")
}
