// Package typesystem describes the IEC 61131-3 data types known to the
// compiler: the elementary built-ins plus strings, arrays and structs.
package typesystem

import "fmt"

// Kind enumerates the shapes a DataType can take.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Member is one field of a struct type.
type Member struct {
	Name     string
	TypeName string
}

// Info carries the kind-specific details of a DataType.
type Info struct {
	Kind     Kind
	Signed   bool     // KindInt
	Size     uint32   // bits, KindInt and KindFloat
	Capacity int64    // KindString, characters excluding the terminator
	Inner    string   // KindArray element type name
	Lo, Hi   int64    // KindArray bounds, inclusive
	Members  []Member // KindStruct
}

// DataType is a named type. Names compare case-insensitively.
type DataType struct {
	Name string
	Info Info
}

func (t *DataType) IsInteger() bool { return t.Info.Kind == KindInt }
func (t *DataType) IsFloat() bool   { return t.Info.Kind == KindFloat }
func (t *DataType) IsBool() bool    { return t.Info.Kind == KindBool }
func (t *DataType) IsString() bool  { return t.Info.Kind == KindString }
func (t *DataType) IsArray() bool   { return t.Info.Kind == KindArray }
func (t *DataType) IsStruct() bool  { return t.Info.Kind == KindStruct }

// IsNumeric reports whether arithmetic applies to t.
func (t *DataType) IsNumeric() bool {
	return t.Info.Kind == KindInt || t.Info.Kind == KindFloat
}

// IsAggregate reports whether t is laid out as several values.
func (t *DataType) IsAggregate() bool {
	switch t.Info.Kind {
	case KindString, KindArray, KindStruct:
		return true
	default:
		return false
	}
}

// Len is the element count of an array type.
func (t *DataType) Len() int64 {
	if t.Info.Kind != KindArray {
		return 0
	}
	return t.Info.Hi - t.Info.Lo + 1
}

func (t *DataType) String() string {
	switch t.Info.Kind {
	case KindArray:
		return fmt.Sprintf("%s (ARRAY[%d..%d] OF %s)", t.Name, t.Info.Lo, t.Info.Hi, t.Info.Inner)
	case KindString:
		return fmt.Sprintf("%s (STRING[%d])", t.Name, t.Info.Capacity)
	default:
		return t.Name
	}
}
