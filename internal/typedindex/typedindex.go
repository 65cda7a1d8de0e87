// Package typedindex is the per-compilation registry of generated LLVM
// entities: types (with their initial values), global storage, callables
// and the local bindings of the POU body being generated.
package typedindex

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"plcc/internal/codegen/cgerr"
	"plcc/internal/ident"
	"plcc/internal/source"
)

type typeEntry struct {
	typ     types.Type
	initial constant.Constant // nil when the type has no explicit initializer
}

type localKey struct {
	pou  string
	name string
}

// Index holds four disjoint namespaces. Lookups try this scope first and
// then the parent chain; registration only ever touches this scope.
type Index struct {
	parent *Index

	types     map[string]typeEntry
	globals   map[string]*ir.Global
	callables map[string]*ir.Func
	locals    map[localKey]value.Value
}

func New() *Index {
	return &Index{
		types:     make(map[string]typeEntry),
		globals:   make(map[string]*ir.Global),
		callables: make(map[string]*ir.Func),
		locals:    make(map[localKey]value.Value),
	}
}

// CreateChild returns a scope that sees everything in idx and owns a private
// set of local bindings. Used for one POU body.
func (idx *Index) CreateChild() *Index {
	child := New()
	child.parent = idx
	return child
}

// Parent returns the enclosing scope, nil for the root.
func (idx *Index) Parent() *Index {
	return idx.parent
}

// RegisterType associates name with t. initial may be nil.
func (idx *Index) RegisterType(name string, t types.Type, initial constant.Constant) error {
	key := ident.Fold(name)
	if _, ok := idx.lookupType(key); ok {
		return cgerr.NewDuplicateRegistration("type", name)
	}
	idx.types[key] = typeEntry{typ: t, initial: initial}
	return nil
}

func (idx *Index) lookupType(key string) (typeEntry, bool) {
	for s := idx; s != nil; s = s.parent {
		if e, ok := s.types[key]; ok {
			return e, true
		}
	}
	return typeEntry{}, false
}

func (idx *Index) LookupType(name string) (types.Type, bool) {
	e, ok := idx.lookupType(ident.Fold(name))
	return e.typ, ok
}

// FindType fails with UnknownType if name was never registered.
func (idx *Index) FindType(name string) (types.Type, error) {
	t, ok := idx.LookupType(name)
	if !ok {
		return nil, cgerr.NewUnknownType(name, source.NoSpan)
	}
	return t, nil
}

// FindInitialValue returns the registered initializer of a type, if any.
func (idx *Index) FindInitialValue(name string) (constant.Constant, bool) {
	e, ok := idx.lookupType(ident.Fold(name))
	if !ok || e.initial == nil {
		return nil, false
	}
	return e.initial, true
}

func (idx *Index) RegisterGlobal(name string, g *ir.Global) error {
	if _, ok := idx.LookupGlobal(name); ok {
		return cgerr.NewDuplicateRegistration("global", name)
	}
	idx.globals[ident.Fold(name)] = g
	return nil
}

func (idx *Index) LookupGlobal(name string) (*ir.Global, bool) {
	key := ident.Fold(name)
	for s := idx; s != nil; s = s.parent {
		if g, ok := s.globals[key]; ok {
			return g, true
		}
	}
	return nil, false
}

func (idx *Index) FindGlobal(name string) (*ir.Global, error) {
	g, ok := idx.LookupGlobal(name)
	if !ok {
		return nil, cgerr.NewUnknownType(name, source.NoSpan)
	}
	return g, nil
}

func (idx *Index) RegisterCallable(name string, f *ir.Func) error {
	if _, ok := idx.LookupCallable(name); ok {
		return cgerr.NewDuplicateRegistration("callable", name)
	}
	idx.callables[ident.Fold(name)] = f
	return nil
}

func (idx *Index) LookupCallable(name string) (*ir.Func, bool) {
	key := ident.Fold(name)
	for s := idx; s != nil; s = s.parent {
		if f, ok := s.callables[key]; ok {
			return f, true
		}
	}
	return nil, false
}

func (idx *Index) FindCallable(name string) (*ir.Func, error) {
	f, ok := idx.LookupCallable(name)
	if !ok {
		return nil, cgerr.NewUnknownType(name, source.NoSpan)
	}
	return f, nil
}

// RegisterLocal binds (pou, name) to a pointer in this scope.
func (idx *Index) RegisterLocal(pou, name string, ptr value.Value) error {
	key := localKey{pou: ident.Fold(pou), name: ident.Fold(name)}
	if _, ok := idx.locals[key]; ok {
		return cgerr.NewDuplicateRegistration("local", pou+"."+name)
	}
	idx.locals[key] = ptr
	return nil
}

func (idx *Index) LookupLocal(pou, name string) (value.Value, bool) {
	key := localKey{pou: ident.Fold(pou), name: ident.Fold(name)}
	for s := idx; s != nil; s = s.parent {
		if v, ok := s.locals[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (idx *Index) FindLocal(pou, name string) (value.Value, error) {
	v, ok := idx.LookupLocal(pou, name)
	if !ok {
		return nil, cgerr.NewUnknownType(pou+"."+name, source.NoSpan)
	}
	return v, nil
}
