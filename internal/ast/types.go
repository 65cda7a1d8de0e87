package ast

import (
	"fmt"
	"strings"

	"plcc/internal/source"
)

type TypeRefKind uint8

const (
	TypeNamed TypeRefKind = iota
	TypeString
	TypeArray
)

// TypeRef is a type as written at a declaration site: a name, an inline
// STRING[n] or an inline ARRAY[lo..hi] OF T.
type TypeRef struct {
	Kind   TypeRefKind
	Name   string   // TypeNamed
	Length int64    // TypeString; 0 means the default capacity
	Lo, Hi int64    // TypeArray
	Elem   *TypeRef // TypeArray
	Span   source.Span
}

// Named builds a reference to a declared type.
func Named(name string, sp source.Span) *TypeRef {
	return &TypeRef{Kind: TypeNamed, Name: name, Span: sp}
}

func (t *TypeRef) String() string {
	if t == nil {
		return "<none>"
	}
	switch t.Kind {
	case TypeString:
		if t.Length == 0 {
			return "STRING"
		}
		return fmt.Sprintf("STRING[%d]", t.Length)
	case TypeArray:
		return fmt.Sprintf("ARRAY[%d..%d] OF %s", t.Lo, t.Hi, t.Elem)
	default:
		return t.Name
	}
}

// SyntheticName is the stable registry name of an inline type. Named
// references return their name unchanged.
func (t *TypeRef) SyntheticName() string {
	switch t.Kind {
	case TypeString:
		if t.Length == 0 {
			return "STRING"
		}
		return fmt.Sprintf("__STRING_%d", t.Length)
	case TypeArray:
		return fmt.Sprintf("__ARRAY_%s_%s_%s", bound(t.Lo), bound(t.Hi), strings.TrimPrefix(t.Elem.SyntheticName(), "__"))
	default:
		return t.Name
	}
}

func bound(v int64) string {
	if v < 0 {
		return fmt.Sprintf("m%d", -v)
	}
	return fmt.Sprint(v)
}

// UserType is a TYPE ... END_TYPE declaration.
type UserType struct {
	Name    string
	Members []*Variable // STRUCT members; nil for an alias
	Alias   *TypeRef    // `TYPE n : T; END_TYPE`
	Span    source.Span
}

func (u *UserType) IsStruct() bool { return u.Alias == nil }
