package parser

import (
	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/token"
)

// parseTypeRef parses a type at a declaration site.
func (p *Parser) parseTypeRef() (*ast.TypeRef, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return ast.Named(tok.Text, tok.Span), true

	case token.KwString:
		p.advance()
		t := &ast.TypeRef{Kind: ast.TypeString, Span: tok.Span}
		if p.eat(token.LBracket) {
			n, ok := p.parseSignedInt()
			if !ok {
				return nil, false
			}
			if n <= 0 {
				p.report(diag.SynBadStringLength, diag.SevError, p.lastSpan, "string length must be positive")
				return nil, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
				return nil, false
			}
			t.Length = n
			t.Span = tok.Span.Cover(p.lastSpan)
		}
		return t, true

	case token.KwArray:
		p.advance()
		if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[' after ARRAY"); !ok {
			return nil, false
		}
		lo, ok := p.parseSignedInt()
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.DotDot, diag.SynUnexpectedToken, "expected '..' in array bounds"); !ok {
			return nil, false
		}
		hi, ok := p.parseSignedInt()
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
			return nil, false
		}
		if hi < lo {
			p.report(diag.SynBadArrayBounds, diag.SevError, tok.Span.Cover(p.lastSpan), "array upper bound is below lower bound")
			return nil, false
		}
		if _, ok = p.expect(token.KwOf, diag.SynUnexpectedToken, "expected OF"); !ok {
			return nil, false
		}
		elem, ok := p.parseTypeRef()
		if !ok {
			return nil, false
		}
		return &ast.TypeRef{Kind: ast.TypeArray, Lo: lo, Hi: hi, Elem: elem, Span: tok.Span.Cover(p.lastSpan)}, true

	default:
		p.err(diag.SynExpectType, "expected type, got "+describe(tok))
		return nil, false
	}
}

func (p *Parser) parseSignedInt() (int64, bool) {
	neg := p.eat(token.Minus)
	tok, ok := p.expect(token.IntLit, diag.SynUnexpectedToken, "expected integer")
	if !ok {
		return 0, false
	}
	v, ok := p.intValue(tok)
	if neg {
		v = -v
	}
	return v, ok
}

// parseTypeBlock parses `TYPE (name : STRUCT ... END_STRUCT | name : T;)* END_TYPE`.
func (p *Parser) parseTypeBlock() bool {
	p.advance() // TYPE
	for p.at(token.Ident) {
		if !p.parseTypeDecl() {
			p.resyncDecl(token.KwEndType)
		}
	}
	_, ok := p.expect(token.KwEndType, diag.SynMissingEnd, "expected END_TYPE")
	return ok
}

func (p *Parser) parseTypeDecl() bool {
	name := p.advance()
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after type name"); !ok {
		return false
	}

	if p.at(token.KwStruct) {
		p.advance()
		ut := &ast.UserType{Name: name.Text}
		for p.at(token.Ident) {
			members, ok := p.parseVarDecl(token.KwEndStruct)
			ut.Members = append(ut.Members, members...)
			if !ok {
				p.resyncDecl(token.KwEndStruct)
			}
		}
		if _, ok := p.expect(token.KwEndStruct, diag.SynMissingEnd, "expected END_STRUCT"); !ok {
			return false
		}
		p.eat(token.Semicolon)
		if ut.Members == nil {
			ut.Members = []*ast.Variable{}
		}
		ut.Span = name.Span.Cover(p.lastSpan)
		p.unit.Types = append(p.unit.Types, ut)
		return true
	}

	alias, ok := p.parseTypeRef()
	if !ok {
		return false
	}
	if !p.at(token.KwEndType) {
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type"); !ok {
			return false
		}
	}
	p.unit.Types = append(p.unit.Types, &ast.UserType{Name: name.Text, Alias: alias, Span: name.Span.Cover(p.lastSpan)})
	return true
}
