// Package layout computes sizes, alignments and field offsets of data types
// the way the generated LLVM IR lays them out.
package layout

import (
	"plcc/internal/ident"
	"plcc/internal/typesystem"
)

// TypeLayout is the ABI layout of a type for a specific Target.
type TypeLayout struct {
	Size  int
	Align int

	// Struct-only:
	FieldOffsets []int
	FieldAligns  []int
}

// TypeLookup resolves type names. *index.Index satisfies it.
type TypeLookup interface {
	FindType(name string) (*typesystem.DataType, bool)
}

// LayoutEngine computes memory layout for types.
type LayoutEngine struct {
	Target Target
	Types  TypeLookup

	cache *cache
}

// New creates a new LayoutEngine for the specified target.
func New(target Target, types TypeLookup) *LayoutEngine {
	return &LayoutEngine{
		Target: target,
		Types:  types,
		cache:  newCache(),
	}
}

type layoutState struct {
	stack []string
	index map[string]int
}

func newLayoutState() *layoutState {
	return &layoutState{index: make(map[string]int, 32)}
}

// LayoutOf computes and caches the layout of the named type.
func (e *LayoutEngine) LayoutOf(name string) (TypeLayout, error) {
	if e == nil {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	if e.cache == nil {
		e.cache = newCache()
	}
	layout, err := e.layoutOf(name, newLayoutState())
	if err != nil {
		return layout, err
	}
	return layout, nil
}

func (e *LayoutEngine) layoutOf(name string, state *layoutState) (TypeLayout, *LayoutError) {
	key := ident.Fold(name)
	if cached, ok := e.cache.get(key); ok {
		return cached.Layout, cached.Err
	}

	if idx, ok := state.index[key]; ok {
		cycle := append([]string(nil), state.stack[idx:]...)
		cycle = append(cycle, name)
		err := &LayoutError{Kind: LayoutErrRecursiveUnsized, Type: name, Cycle: cycle}
		e.cache.put(key, &cacheEntry{Layout: TypeLayout{Size: 0, Align: 1}, Err: err})
		return TypeLayout{Size: 0, Align: 1}, err
	}

	dt, ok := e.Types.FindType(name)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrUnknownType, Type: name}
	}

	state.index[key] = len(state.stack)
	state.stack = append(state.stack, name)
	layout, err := e.computeLayout(dt, state)
	state.stack = state.stack[:len(state.stack)-1]
	delete(state.index, key)

	e.cache.put(key, &cacheEntry{Layout: layout, Err: err})
	return layout, err
}

// SizeOf returns the size of a type in bytes.
func (e *LayoutEngine) SizeOf(name string) (int, error) {
	l, err := e.LayoutOf(name)
	return l.Size, err
}

// AlignOf returns the alignment requirement of a type in bytes.
func (e *LayoutEngine) AlignOf(name string) (int, error) {
	l, err := e.LayoutOf(name)
	return l.Align, err
}

// FieldOffset returns the byte offset of a struct field.
func (e *LayoutEngine) FieldOffset(structName string, fieldIdx int) (int, error) {
	l, err := e.LayoutOf(structName)
	if err != nil {
		return 0, err
	}
	if fieldIdx < 0 || fieldIdx >= len(l.FieldOffsets) {
		return 0, nil
	}
	return l.FieldOffsets[fieldIdx], nil
}
