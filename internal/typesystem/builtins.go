package typesystem

import "strings"

// DefaultStringCapacity is the capacity of a bare STRING.
const DefaultStringCapacity = 80

const (
	VoidName   = "VOID"
	BoolName   = "BOOL"
	StringName = "STRING"
	IntName    = "INT"
	DintName   = "DINT"
	LintName   = "LINT"
	RealName   = "REAL"
	LrealName  = "LREAL"
)

func intType(name string, signed bool, bits uint32) DataType {
	return DataType{Name: name, Info: Info{Kind: KindInt, Signed: signed, Size: bits}}
}

func floatType(name string, bits uint32) DataType {
	return DataType{Name: name, Info: Info{Kind: KindFloat, Size: bits}}
}

var builtins = []DataType{
	{Name: VoidName, Info: Info{Kind: KindVoid}},
	{Name: BoolName, Info: Info{Kind: KindBool, Size: 1}},
	intType("BYTE", false, 8),
	intType("WORD", false, 16),
	intType("DWORD", false, 32),
	intType("LWORD", false, 64),
	intType("SINT", true, 8),
	intType("USINT", false, 8),
	intType(IntName, true, 16),
	intType("UINT", false, 16),
	intType(DintName, true, 32),
	intType("UDINT", false, 32),
	intType(LintName, true, 64),
	intType("ULINT", false, 64),
	intType("TIME", true, 64),
	floatType(RealName, 32),
	floatType(LrealName, 64),
	{Name: StringName, Info: Info{Kind: KindString, Capacity: DefaultStringCapacity}},
}

// Builtins returns fresh copies of the elementary types.
func Builtins() []DataType {
	out := make([]DataType, len(builtins))
	copy(out, builtins)
	return out
}

// Builtin looks up an elementary type by name, ignoring case.
func Builtin(name string) (DataType, bool) {
	for _, b := range builtins {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return DataType{}, false
}

// CommonType is the type both operands of a binary arithmetic operation are
// promoted to: the wider float if either side is a float, otherwise the wider
// integer, signed if either side is signed. ok is false for operands that
// cannot be combined.
func CommonType(a, b *DataType) (DataType, bool) {
	switch {
	case a.IsBool() && b.IsBool():
		return *a, true
	case a.IsFloat() || b.IsFloat():
		if !a.IsNumeric() || !b.IsNumeric() {
			return DataType{}, false
		}
		if a.IsFloat() && b.IsFloat() {
			if a.Info.Size >= b.Info.Size {
				return *a, true
			}
			return *b, true
		}
		if a.IsFloat() {
			return *a, true
		}
		return *b, true
	case a.IsInteger() && b.IsInteger():
		wide := *a
		if b.Info.Size > a.Info.Size {
			wide = *b
		}
		if (a.Info.Signed || b.Info.Signed) && !wide.Info.Signed {
			signed, _ := signedOf(wide.Info.Size)
			return signed, true
		}
		return wide, true
	case a.IsInteger() && b.IsBool():
		return *a, true
	case a.IsBool() && b.IsInteger():
		return *b, true
	default:
		return DataType{}, false
	}
}

func signedOf(bits uint32) (DataType, bool) {
	switch bits {
	case 8:
		return Builtin("SINT")
	case 16:
		return Builtin(IntName)
	case 32:
		return Builtin(DintName)
	default:
		return Builtin(LintName)
	}
}
