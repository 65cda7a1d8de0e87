package parser

import (
	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/token"
)

func pouKinds(k token.Kind) (ast.PouKind, token.Kind) {
	switch k {
	case token.KwFunction:
		return ast.PouFunction, token.KwEndFunction
	case token.KwFunctionBlock:
		return ast.PouFunctionBlock, token.KwEndFunctionBlock
	default:
		return ast.PouProgram, token.KwEndProgram
	}
}

func isPouEnd(k token.Kind) bool {
	return k == token.KwEndProgram || k == token.KwEndFunction || k == token.KwEndFunctionBlock
}

// parsePOU parses a PROGRAM, FUNCTION or FUNCTION_BLOCK and records both the
// declaration and its implementation.
func (p *Parser) parsePOU(external bool) bool {
	kw := p.advance()
	kind, endKind := pouKinds(kw.Kind)

	nameTok, ok := p.parseIdent()
	if !ok {
		return false
	}
	pou := &ast.POU{
		Name:     nameTok.Text,
		Kind:     kind,
		External: external,
		NameSpan: nameTok.Span,
	}

	if p.eat(token.Colon) {
		rt, ok := p.parseTypeRef()
		switch {
		case !ok:
		case kind != ast.PouFunction:
			p.report(diag.SynReturnTypeNotAllowed, diag.SevError, rt.Span,
				"return type is only allowed on FUNCTION, found on "+kind.String()+" "+pou.Name)
		default:
			pou.ReturnType = rt
		}
	}

	for p.lx.Peek().IsVarBlockStart() {
		if p.at(token.KwVarGlobal) {
			p.err(diag.SynUnexpectedToken, "VAR_GLOBAL is only allowed at top level")
		}
		blk, _ := p.parseVarBlock()
		if blk != nil && blk.Kind != ast.VarGlobal {
			pou.VariableBlocks = append(pou.VariableBlocks, blk)
		}
	}

	stmts := p.parseStatements()
	_, ok = p.expect(endKind, diag.SynMissingEnd, "expected "+endKind.String()+" to close "+pou.Name)
	pou.Span = kw.Span.Cover(p.lastSpan)

	p.unit.POUs = append(p.unit.POUs, pou)
	p.unit.Implementations = append(p.unit.Implementations, &ast.Implementation{
		CallName:   pou.Name,
		TypeName:   pou.Name,
		Kind:       kind,
		Statements: stmts,
		External:   external,
		Span:       pou.Span,
	})
	return ok
}
