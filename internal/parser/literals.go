package parser

import (
	"strconv"
	"strings"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/token"
)

// parseNumber assembles integer and real literals. The lexer splits a real
// into IntLit Dot IntLit [ExponentLit].
func (p *Parser) parseNumber() ast.Expr {
	whole := p.advance()

	if !p.atOr(token.Dot, token.ExponentLit) {
		v, ok := p.intValue(whole)
		if !ok {
			return nil
		}
		return &ast.IntLit{Value: v, Sp: whole.Span}
	}

	text := digits(whole.Text)
	if p.eat(token.Dot) {
		frac, ok := p.expect(token.IntLit, diag.LexBadNumber, "expected digits after '.'")
		if !ok {
			return nil
		}
		text += "." + digits(frac.Text)
	}
	if p.at(token.ExponentLit) {
		text += p.advance().Text
	}
	sp := whole.Span.Cover(p.lastSpan)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.report(diag.LexBadNumber, diag.SevError, sp, "malformed real literal "+text)
		return nil
	}
	return &ast.RealLit{Value: v, Text: text, Sp: sp}
}

// intValue decodes decimal and based (2#, 8#, 16#) integer literals.
func (p *Parser) intValue(tok token.Token) (int64, bool) {
	text := digits(tok.Text)
	base := 10
	if b, rest, found := strings.Cut(text, "#"); found {
		n, err := strconv.Atoi(b)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "malformed integer literal "+tok.Text)
			return 0, false
		}
		base, text = n, rest
	}
	u, err := strconv.ParseUint(text, base, 64)
	if err != nil || (base == 10 && u > 1<<63-1) {
		p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal out of range: "+tok.Text)
		return 0, false
	}
	return int64(u), true //nolint:gosec // based literals keep their bit pattern
}

func digits(s string) string {
	return strings.ReplaceAll(s, "_", "")
}
