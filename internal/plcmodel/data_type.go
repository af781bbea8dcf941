package plcmodel

// DataTypeKindTag distinguishes the shape of a user-defined DataTypeDef.
type DataTypeKindTag int

const (
	TypeAlias DataTypeKindTag = iota
	TypeStruct
	TypeEnum
	TypeArray
	TypeSubrange
)

// DataTypeDef is a user-defined type: an L5X <DataType>, or a PLCopen
// <dataType> under <types>/<dataTypes>. Only the field matching Kind is
// populated.
type DataTypeDef struct {
	Name        string
	Description string
	Kind        DataTypeKindTag

	AliasTarget string     // TypeAlias
	Struct      StructDef  // TypeStruct
	Enum        EnumDef    // TypeEnum
	Array       ArrayDef   // TypeArray
	SubrangeOf  SubrangeOf // TypeSubrange
}

// SubrangeOf is a named integer subrange, e.g. "INT 0..100".
type SubrangeOf struct {
	BaseType string
	Lower    int64
	Upper    int64
}

// NewStructDataType builds a struct-kind DataTypeDef.
func NewStructDataType(name string, members []StructMember) DataTypeDef {
	return DataTypeDef{Name: name, Kind: TypeStruct, Struct: StructDef{Members: members}}
}

// NewEnumDataType builds an enum-kind DataTypeDef.
func NewEnumDataType(name string, members []EnumMember) DataTypeDef {
	return DataTypeDef{Name: name, Kind: TypeEnum, Enum: EnumDef{Members: members}}
}

// NewAliasDataType builds an alias-kind DataTypeDef.
func NewAliasDataType(name, target string) DataTypeDef {
	return DataTypeDef{Name: name, Kind: TypeAlias, AliasTarget: target}
}

// StructDef is a structured-type body: an ordered list of members.
type StructDef struct {
	Members []StructMember
}

// StructMember is one field of a StructDef.
type StructMember struct {
	Name         string
	DataType     string
	InitialValue string
	Description  string
	Dimensions   []uint32
}

// EnumDef is an enumerated-type body.
type EnumDef struct {
	BaseType string // empty means the vendor default (typically DINT)
	Members  []EnumMember
}

// EnumMember is one enumerator.
type EnumMember struct {
	Name        string
	Value       *int64 // nil when unspecified
	Description string
}

// ArrayDef is an array-type body: element type plus bounded dimensions.
type ArrayDef struct {
	ElementType string
	Dimensions  []ArrayDimension
}

// ArrayDimension is one bounded dimension, [Lower..Upper] inclusive.
type ArrayDimension struct {
	Lower int32
	Upper int32
}

// ZeroBasedDimension builds a [0..size-1] dimension.
func ZeroBasedDimension(size uint32) ArrayDimension {
	return ArrayDimension{Lower: 0, Upper: int32(size) - 1}
}

// Size is the element count of this dimension.
func (d ArrayDimension) Size() uint32 {
	return uint32(d.Upper - d.Lower + 1)
}
