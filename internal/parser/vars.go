package parser

import (
	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/token"
)

func varBlockKind(k token.Kind) ast.VarBlockKind {
	switch k {
	case token.KwVarInput:
		return ast.VarInput
	case token.KwVarOutput:
		return ast.VarOutput
	case token.KwVarInOut:
		return ast.VarInOut
	case token.KwVarTemp:
		return ast.VarTemp
	case token.KwVarGlobal:
		return ast.VarGlobal
	default:
		return ast.VarLocal
	}
}

// parseVarBlock parses `VAR_x decl* END_VAR`.
func (p *Parser) parseVarBlock() (*ast.VariableBlock, bool) {
	kw := p.advance()
	blk := &ast.VariableBlock{Kind: varBlockKind(kw.Kind)}
	for p.at(token.Ident) {
		vars, ok := p.parseVarDecl(token.KwEndVar)
		blk.Variables = append(blk.Variables, vars...)
		if !ok {
			p.resyncDecl(token.KwEndVar)
		}
	}
	_, ok := p.expect(token.KwEndVar, diag.SynMissingEnd, "expected END_VAR")
	blk.Span = kw.Span.Cover(p.lastSpan)
	return blk, ok
}

// parseVarDecl parses `a, b : T [:= init];`.
func (p *Parser) parseVarDecl(end token.Kind) ([]*ast.Variable, bool) {
	var names []token.Token
	for {
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		names = append(names, name)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after variable name"); !ok {
		return nil, false
	}
	typ, ok := p.parseTypeRef()
	if !ok {
		return nil, false
	}
	var init ast.Expr
	if p.eat(token.Assign) {
		if init = p.parseExpr(); init == nil {
			return nil, false
		}
	}
	if !p.at(end) {
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration"); !ok {
			return nil, false
		}
	}

	out := make([]*ast.Variable, 0, len(names))
	for _, n := range names {
		out = append(out, &ast.Variable{
			Name:        n.Text,
			Type:        typ,
			Initializer: init,
			Span:        n.Span.Cover(p.lastSpan),
		})
	}
	return out, true
}

// resyncDecl skips a broken declaration up to and including its ';'.
func (p *Parser) resyncDecl(end token.Kind) {
	p.resyncUntil(token.Semicolon, end, token.KwEndProgram, token.KwEndFunction, token.KwEndFunctionBlock, token.KwEndType)
	p.eat(token.Semicolon)
}
