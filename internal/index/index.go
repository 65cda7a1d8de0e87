// Package index builds the Global Index: every POU, datatype, member
// variable and global declared by the compilation units, looked up by
// case-insensitive name.
package index

import (
	"plcc/internal/ast"
	"plcc/internal/ident"
	"plcc/internal/source"
	"plcc/internal/typesystem"
)

// POU is the index entry of a program organization unit.
type POU struct {
	Name       string
	Kind       ast.PouKind
	ReturnType string // empty for void
	External   bool
	Span       source.Span
}

// Member is a variable owned by a POU, or a global when Owner is empty.
type Member struct {
	Owner       string
	Name        string
	TypeName    string
	Block       ast.VarBlockKind
	Initializer ast.Expr
	Span        source.Span
	// Field is the position in the owner's instance struct; -1 for the
	// return variable, which lives outside the struct.
	Field int
}

// IsReturn reports whether m is a function's return variable.
func (m *Member) IsReturn() bool { return m.Field < 0 && m.Owner != "" }

// Implementation links a POU body to its generated function and instance
// struct.
type Implementation struct {
	CallName string
	TypeName string
	Kind     ast.PouKind
	External bool
	Body     *ast.Implementation
}

// Index is read-only once Build returns.
type Index struct {
	pous     map[string]*POU
	pouOrder []*POU

	types     map[string]*typesystem.DataType
	typeOrder []*typesystem.DataType

	members map[string]*pouMembers

	globals     map[string]*Member
	globalOrder []*Member

	impls []*Implementation
}

type pouMembers struct {
	ordered []*Member // struct field order
	byName  map[string]*Member
}

func newIndex() *Index {
	return &Index{
		pous:    make(map[string]*POU),
		types:   make(map[string]*typesystem.DataType),
		members: make(map[string]*pouMembers),
		globals: make(map[string]*Member),
	}
}

// Implementations lists POU bodies in source order.
func (idx *Index) Implementations() []*Implementation {
	return idx.impls
}

// POUs lists POU declarations in source order.
func (idx *Index) POUs() []*POU {
	return idx.pouOrder
}

func (idx *Index) FindPOU(name string) (*POU, bool) {
	p, ok := idx.pous[ident.Fold(name)]
	return p, ok
}

func (idx *Index) FindType(name string) (*typesystem.DataType, bool) {
	t, ok := idx.types[ident.Fold(name)]
	return t, ok
}

// Types lists every datatype, built-ins first, then in registration order.
func (idx *Index) Types() []*typesystem.DataType {
	return idx.typeOrder
}

// FindMember finds a variable of pou, including its return variable.
func (idx *Index) FindMember(pou, name string) (*Member, bool) {
	pm, ok := idx.members[ident.Fold(pou)]
	if !ok {
		return nil, false
	}
	m, ok := pm.byName[ident.Fold(name)]
	return m, ok
}

// Members returns the struct fields of pou in declaration order. The return
// variable is not a field and is not included.
func (idx *Index) Members(pou string) []*Member {
	pm, ok := idx.members[ident.Fold(pou)]
	if !ok {
		return nil
	}
	return pm.ordered
}

// FindReturnType resolves the type of the variable named like the POU.
func (idx *Index) FindReturnType(pou string) (*typesystem.DataType, bool) {
	m, ok := idx.FindMember(pou, pou)
	if !ok || !m.IsReturn() {
		return nil, false
	}
	return idx.FindType(m.TypeName)
}

func (idx *Index) FindGlobalVariable(name string) (*Member, bool) {
	g, ok := idx.globals[ident.Fold(name)]
	return g, ok
}

// GlobalVariables lists VAR_GLOBAL entries in declaration order.
func (idx *Index) GlobalVariables() []*Member {
	return idx.globalOrder
}
