// Package l5x decodes Rockwell Automation Studio 5000 Logix Designer
// L5X export files: the vendor-A XML container whose Routine bodies hold
// either inline Structured Text or RLL (Relay Ladder Logic) rung text.
//
// encoding/xml is used directly for decoding rather than a third-party
// XML library: the retrieval pack's own XML consumers decode
// schema-bound documents the same way, and no library in the pack offers
// an advantage over struct-tagged standard-library decoding for this
// shape of document.
package l5x

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// RootContent is the outermost L5X element, <RSLogix5000Content>.
type RootContent struct {
	XMLName         xml.Name   `xml:"RSLogix5000Content"`
	SchemaRevision  string     `xml:"SchemaRevision,attr"`
	SoftwareRevision string    `xml:"SoftwareRevision,attr"`
	Controller      Controller `xml:"Controller"`
}

// Controller is the single PLC controller defined by an L5X export.
type Controller struct {
	Name                        string                       `xml:"Name,attr"`
	ProcessorType               string                       `xml:"ProcessorType,attr"`
	Description                 string                       `xml:"Description"`
	DataTypes                   []DataType                   `xml:"DataTypes>DataType"`
	Tags                        []Tag                        `xml:"Tags>Tag"`
	Programs                    []Program                    `xml:"Programs>Program"`
	Tasks                       []Task                       `xml:"Tasks>Task"`
	AddOnInstructionDefinitions []AddOnInstructionDefinition `xml:"AddOnInstructionDefinitions>AddOnInstructionDefinition"`
}

// DataType is a user-defined type: <Controller>/DataTypes/DataType.
type DataType struct {
	Name        string   `xml:"Name,attr"`
	Family      string   `xml:"Family,attr"`
	Class       string   `xml:"Class,attr"`
	Description string   `xml:"Description"`
	Members     []Member `xml:"Members>Member"`
}

// Member is one field of a DataType.
type Member struct {
	Name            string `xml:"Name,attr"`
	DataType        string `xml:"DataType,attr"`
	Dimension       string `xml:"Dimension,attr"`
	Radix           string `xml:"Radix,attr"`
	Hidden          string `xml:"Hidden,attr"`
	ExternalAccess  string `xml:"ExternalAccess,attr"`
}

// Tag is a controller- or program-scoped variable: <Tags>/<Tag>.
type Tag struct {
	Name           string `xml:"Name,attr"`
	TagType        string `xml:"TagType,attr"`
	DataType       string `xml:"DataType,attr"`
	Dimensions     string `xml:"Dimensions,attr"`
	Constant       string `xml:"Constant,attr"`
	ExternalAccess string `xml:"ExternalAccess,attr"`
	Description    string `xml:"Description"`
}

// IsConstant reports whether this tag was exported with Constant="true".
func (t *Tag) IsConstant() bool { return strings.EqualFold(t.Constant, "true") }

// ParsedDimensions splits the space-separated L5X Dimensions attribute
// ("10" or "3 4") into individual bound values.
func (t *Tag) ParsedDimensions() []uint32 {
	fields := strings.Fields(t.Dimensions)
	if len(fields) == 0 {
		return nil
	}
	dims := make([]uint32, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			continue
		}
		dims = append(dims, uint32(n))
	}
	return dims
}

// Program is a scheduled program: <Programs>/<Program>.
type Program struct {
	Name            string    `xml:"Name,attr"`
	MainRoutineName string    `xml:"MainRoutineName,attr"`
	Description     string    `xml:"Description"`
	Tags            []Tag     `xml:"Tags>Tag"`
	Routines        []Routine `xml:"Routines>Routine"`
}

// Routine is one program routine: <Routines>/<Routine>, whose content
// varies by Type (RLL, ST, FBD, SFC).
type Routine struct {
	Name        string      `xml:"Name,attr"`
	Type        string      `xml:"Type,attr"`
	Description string      `xml:"Description"`
	RLLContent  *RLLContent `xml:"RLLContent"`
	STContent   *STContent  `xml:"STContent"`
}

// RLLContent is a ladder-logic routine body: an ordered list of rungs.
type RLLContent struct {
	Rungs []RungXML `xml:"Rung"`
}

// RungXML is one rung element as it appears in L5X: a number, an edit
// type, a comment, and CDATA instruction text.
type RungXML struct {
	Number  string `xml:"Number,attr"`
	Type    string `xml:"Type,attr"`
	Comment string `xml:"Comment"`
	Text    string `xml:"Text"`
}

// NumberInt parses Number, defaulting to 0 on a malformed attribute.
func (r *RungXML) NumberInt() uint32 {
	n, err := strconv.ParseUint(strings.TrimSpace(r.Number), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// STContent is an inline Structured Text routine body: an ordered list
// of source lines, joined with newlines to recover the routine text.
type STContent struct {
	Lines []STLine `xml:"Line"`
}

// STLine is one numbered line of ST source text.
type STLine struct {
	Number string `xml:"Number,attr"`
	Text   string `xml:",chardata"`
}

// JoinedText reconstructs the routine's full ST source from its lines.
func (s *STContent) JoinedText() string {
	parts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Task schedules a set of programs: <Tasks>/<Task>.
type Task struct {
	Name               string   `xml:"Name,attr"`
	Type               string   `xml:"Type,attr"`
	Priority           string   `xml:"Priority,attr"`
	Watchdog           string   `xml:"Watchdog,attr"`
	Rate               string   `xml:"Rate,attr"`
	ScheduledPrograms  []ScheduledProgram `xml:"ScheduledPrograms>ScheduledProgram"`
}

// ScheduledProgram names a program assigned to a Task.
type ScheduledProgram struct {
	Name string `xml:"Name,attr"`
}

// AddOnInstructionDefinition is a vendor-A user-defined instruction
// (AOI): a named, parameterized routine set, the L5X analogue of a
// function block.
type AddOnInstructionDefinition struct {
	Name        string      `xml:"Name,attr"`
	Revision    string      `xml:"Revision,attr"`
	Description string      `xml:"Description"`
	Parameters  []Parameter `xml:"Parameters>Parameter"`
	LocalTags   []Tag       `xml:"LocalTags>Tag"`
	Routines    []Routine   `xml:"Routines>Routine"`
}

// Parameter is one AOI interface parameter.
type Parameter struct {
	Name     string `xml:"Name,attr"`
	DataType string `xml:"DataType,attr"`
	Usage    string `xml:"Usage,attr"` // Input, Output, InOut
	Required string `xml:"Required,attr"`
	Visible  string `xml:"Visible,attr"`
}

// Decode parses L5X XML bytes into a RootContent.
func Decode(data []byte) (*RootContent, error) {
	var root RootContent
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("l5x: decode: %w", err)
	}
	return &root, nil
}

// LooksLikeL5X sniffs the root element of an XML document for the
// vendor-A content root, used by the project loader's format dispatch
// when the file extension is ambiguous (a plain ".xml" suffix).
func LooksLikeL5X(content string) bool {
	return strings.Contains(content, "RSLogix5000Content") || strings.Contains(content, "<Controller")
}
