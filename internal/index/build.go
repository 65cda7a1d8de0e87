package index

import (
	"fmt"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/ident"
	"plcc/internal/source"
	"plcc/internal/typesystem"
)

type typeRef struct {
	name string
	span source.Span
}

type builder struct {
	idx     *Index
	r       diag.Reporter
	aliases map[string]*ast.UserType
	refs    []typeRef
	gen     generatedNames
}

// Build indexes units. Problems are reported as SEM diagnostics; the
// offending declaration is left out and indexing continues.
func Build(units []*ast.CompilationUnit, r diag.Reporter) *Index {
	if r == nil {
		r = diag.NopReporter{}
	}
	b := &builder{
		idx:     newIndex(),
		r:       r,
		aliases: make(map[string]*ast.UserType),
		gen:     collectGeneratedNames(units),
	}
	for _, dt := range typesystem.Builtins() {
		b.addType(&dt)
	}

	var pous []*ast.POU
	var structs []*ast.UserType
	for _, u := range units {
		for _, ut := range u.Types {
			if b.declareType(ut) && ut.IsStruct() {
				structs = append(structs, ut)
			}
		}
		for _, p := range u.POUs {
			if b.declarePOU(p) {
				pous = append(pous, p)
			}
		}
	}

	for _, ut := range structs {
		b.defineStruct(ut)
	}
	for _, ut := range b.aliasesInOrder(units) {
		b.resolveAlias(ut, map[string]bool{})
	}
	for _, p := range pous {
		b.definePOU(p)
	}
	for _, u := range units {
		for _, blk := range u.GlobalVars {
			b.defineGlobals(blk)
		}
		for _, impl := range u.Implementations {
			b.addImplementation(impl)
		}
	}
	b.checkTypeRefs()
	return b.idx
}

func (b *builder) addType(dt *typesystem.DataType) {
	b.idx.types[ident.Fold(dt.Name)] = dt
	b.idx.typeOrder = append(b.idx.typeOrder, dt)
}

func (b *builder) duplicate(kind, name string, sp source.Span) {
	diag.ReportError(b.r, diag.SemaDuplicateSymbol, sp,
		fmt.Sprintf("%s %s is already declared", kind, name)).Emit()
}

// clash reports a declaration that takes a name code generation needs.
func (b *builder) clash(kind, name, owner string, sp source.Span) {
	diag.ReportError(b.r, diag.SemaDuplicateSymbol, sp,
		fmt.Sprintf("%s %s clashes with %s", kind, name, owner)).Emit()
}

func (b *builder) declareType(ut *ast.UserType) bool {
	key := ident.Fold(ut.Name)
	if owner, taken := b.gen.typeOwner(ut.Name); taken {
		b.clash("type", ut.Name, owner, ut.Span)
		return false
	}
	if _, taken := b.idx.types[key]; taken {
		b.duplicate("type", ut.Name, ut.Span)
		return false
	}
	if _, taken := b.idx.pous[key]; taken {
		b.duplicate("type", ut.Name, ut.Span)
		return false
	}
	if !ut.IsStruct() {
		b.aliases[key] = ut
		return true
	}
	b.addType(&typesystem.DataType{Name: ut.Name, Info: typesystem.Info{Kind: typesystem.KindStruct}})
	return true
}

// declarePOU registers the POU and the struct datatype named after it, so
// variables of a function block type resolve to its instance struct.
func (b *builder) declarePOU(p *ast.POU) bool {
	key := ident.Fold(p.Name)
	if _, taken := b.idx.pous[key]; taken {
		b.duplicate("POU", p.Name, p.NameSpan)
		return false
	}
	if _, taken := b.idx.types[key]; taken {
		b.duplicate("POU", p.Name, p.NameSpan)
		return false
	}
	if _, taken := b.aliases[key]; taken {
		b.duplicate("POU", p.Name, p.NameSpan)
		return false
	}
	if owner, taken := b.gen.symbolOwner(p.Name); taken {
		b.clash("POU", p.Name, owner, p.NameSpan)
		return false
	}
	entry := &POU{Name: p.Name, Kind: p.Kind, External: p.External, Span: p.Span}
	b.idx.pous[key] = entry
	b.idx.pouOrder = append(b.idx.pouOrder, entry)
	b.addType(&typesystem.DataType{Name: p.Name, Info: typesystem.Info{Kind: typesystem.KindStruct}})
	return true
}

func (b *builder) defineStruct(ut *ast.UserType) {
	dt, _ := b.idx.FindType(ut.Name)
	seen := make(map[string]bool, len(ut.Members))
	for _, m := range ut.Members {
		key := ident.Fold(m.Name)
		if seen[key] {
			diag.ReportError(b.r, diag.SemaDuplicateMember, m.Span,
				fmt.Sprintf("member %s is declared twice in %s", m.Name, ut.Name)).Emit()
			continue
		}
		seen[key] = true
		name := b.typeName(m.Type)
		b.refs = append(b.refs, typeRef{name: name, span: m.Type.Span})
		dt.Info.Members = append(dt.Info.Members, typesystem.Member{Name: m.Name, TypeName: name})
	}
}

func (b *builder) aliasesInOrder(units []*ast.CompilationUnit) []*ast.UserType {
	var out []*ast.UserType
	for _, u := range units {
		for _, ut := range u.Types {
			if a, ok := b.aliases[ident.Fold(ut.Name)]; ok && a == ut {
				out = append(out, ut)
			}
		}
	}
	return out
}

// resolveAlias registers `TYPE n : T` as a copy of T under the name n.
func (b *builder) resolveAlias(ut *ast.UserType, seen map[string]bool) (*typesystem.DataType, bool) {
	key := ident.Fold(ut.Name)
	if dt, ok := b.idx.types[key]; ok {
		return dt, true
	}
	if seen[key] {
		diag.ReportError(b.r, diag.SemaError, ut.Span, "type alias "+ut.Name+" refers to itself").Emit()
		return nil, false
	}
	seen[key] = true

	target := b.typeName(ut.Alias)
	dt, ok := b.idx.FindType(target)
	if !ok {
		next, isAlias := b.aliases[ident.Fold(target)]
		if !isAlias {
			diag.ReportError(b.r, diag.SemaUnknownType, ut.Alias.Span, "unknown type "+target).Emit()
			return nil, false
		}
		if dt, ok = b.resolveAlias(next, seen); !ok {
			return nil, false
		}
	}
	alias := &typesystem.DataType{Name: ut.Name, Info: dt.Info}
	b.addType(alias)
	return alias, true
}

func (b *builder) definePOU(p *ast.POU) {
	key := ident.Fold(p.Name)
	pm := &pouMembers{byName: make(map[string]*Member)}
	b.idx.members[key] = pm
	dt, _ := b.idx.FindType(p.Name)

	for _, blk := range p.VariableBlocks {
		for _, v := range blk.Variables {
			vkey := ident.Fold(v.Name)
			if vkey == key && p.Kind == ast.PouFunction {
				diag.ReportError(b.r, diag.SemaMemberShadowsPOU, v.Span,
					fmt.Sprintf("variable %s shadows the return value of %s", v.Name, p.Name)).Emit()
				continue
			}
			if _, dup := pm.byName[vkey]; dup {
				diag.ReportError(b.r, diag.SemaDuplicateMember, v.Span,
					fmt.Sprintf("variable %s is declared twice in %s", v.Name, p.Name)).Emit()
				continue
			}
			m := &Member{
				Owner:       p.Name,
				Name:        v.Name,
				TypeName:    b.typeName(v.Type),
				Block:       blk.Kind,
				Initializer: v.Initializer,
				Span:        v.Span,
				Field:       len(pm.ordered),
			}
			b.refs = append(b.refs, typeRef{name: m.TypeName, span: v.Type.Span})
			pm.ordered = append(pm.ordered, m)
			pm.byName[vkey] = m
			dt.Info.Members = append(dt.Info.Members, typesystem.Member{Name: m.Name, TypeName: m.TypeName})
		}
	}

	if p.ReturnType == nil {
		if p.Kind == ast.PouFunction && !p.External {
			diag.ReportWarning(b.r, diag.SemaMissingReturn, p.Span,
				"function "+p.Name+" declares no return type and returns nothing").Emit()
		}
		return
	}
	ret := &Member{
		Owner:    p.Name,
		Name:     p.Name,
		TypeName: b.typeName(p.ReturnType),
		Block:    ast.VarLocal,
		Span:     p.ReturnType.Span,
		Field:    -1,
	}
	b.refs = append(b.refs, typeRef{name: ret.TypeName, span: p.ReturnType.Span})
	pm.byName[key] = ret
	b.idx.pous[key].ReturnType = ret.TypeName
}

func (b *builder) defineGlobals(blk *ast.VariableBlock) {
	for _, v := range blk.Variables {
		key := ident.Fold(v.Name)
		if _, dup := b.idx.globals[key]; dup {
			b.duplicate("global variable", v.Name, v.Span)
			continue
		}
		if _, clash := b.idx.pous[key]; clash {
			b.duplicate("global variable", v.Name, v.Span)
			continue
		}
		if owner, taken := b.gen.symbolOwner(v.Name); taken {
			b.clash("global variable", v.Name, owner, v.Span)
			continue
		}
		g := &Member{
			Name:        v.Name,
			TypeName:    b.typeName(v.Type),
			Block:       ast.VarGlobal,
			Initializer: v.Initializer,
			Span:        v.Span,
			Field:       len(b.idx.globalOrder),
		}
		b.refs = append(b.refs, typeRef{name: g.TypeName, span: v.Type.Span})
		b.idx.globals[key] = g
		b.idx.globalOrder = append(b.idx.globalOrder, g)
	}
}

func (b *builder) addImplementation(impl *ast.Implementation) {
	for _, existing := range b.idx.impls {
		if ident.Equal(existing.CallName, impl.CallName) {
			return
		}
	}
	if _, ok := b.idx.FindPOU(impl.TypeName); !ok {
		return
	}
	b.idx.impls = append(b.idx.impls, &Implementation{
		CallName: impl.CallName,
		TypeName: impl.TypeName,
		Kind:     impl.Kind,
		External: impl.External,
		Body:     impl,
	})
}

// typeName returns the registry name for t, registering inline STRING[n]
// and ARRAY types on first use.
func (b *builder) typeName(t *ast.TypeRef) string {
	switch t.Kind {
	case ast.TypeString:
		if t.Length == 0 {
			return typesystem.StringName
		}
		name := t.SyntheticName()
		if _, ok := b.idx.FindType(name); !ok {
			b.addType(&typesystem.DataType{Name: name, Info: typesystem.Info{Kind: typesystem.KindString, Capacity: t.Length}})
		}
		return name
	case ast.TypeArray:
		inner := b.typeName(t.Elem)
		b.refs = append(b.refs, typeRef{name: inner, span: t.Elem.Span})
		name := t.SyntheticName()
		if _, ok := b.idx.FindType(name); !ok {
			b.addType(&typesystem.DataType{Name: name, Info: typesystem.Info{
				Kind: typesystem.KindArray, Inner: inner, Lo: t.Lo, Hi: t.Hi,
			}})
		}
		return name
	default:
		return t.Name
	}
}

func (b *builder) checkTypeRefs() {
	reported := make(map[typeRef]bool)
	for _, ref := range b.refs {
		if _, ok := b.idx.FindType(ref.name); ok || reported[ref] {
			continue
		}
		reported[ref] = true
		diag.ReportError(b.r, diag.SemaUnknownType, ref.span, "unknown type "+ref.name).Emit()
	}
}
