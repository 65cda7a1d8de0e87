package lexer

import (
	"plcc/internal/diag"
	"plcc/internal/token"
)

// scanNumber lexes decimal integers (`123`, `1_000`), based integers
// (`2#1010`, `8#17`, `16#FF`) and an optional exponent. A real such as
// `1.5e3` therefore reads as IntLit Dot IntLit ExponentLit; the parser
// puts the pieces back together.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '#' {
		base := lx.text(lx.cursor.SpanFrom(start))
		if base != "2" && base != "8" && base != "16" {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexBadNumber, sp, "unsupported integer base "+base)
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump() // '#'
		limit := 2
		switch base {
		case "8":
			limit = 8
		case "16":
			limit = 16
		}
		digits := 0
		var bad byte
		for b := lx.cursor.Peek(); isIdentContinueByte(b); b = lx.cursor.Peek() {
			lx.cursor.Bump()
			if b == '_' {
				continue
			}
			digits++
			if v := digitValue(b); (v < 0 || v >= limit) && bad == 0 {
				bad = b
			}
		}
		sp := lx.cursor.SpanFrom(start)
		switch {
		case digits == 0:
			lx.report(diag.LexBadNumber, sp, "expected digits after '#'")
		case bad != 0:
			lx.report(diag.LexBadNumber, sp, "digit '"+string(bad)+"' is not valid in base "+base)
		default:
			return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
		}
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
	if exp, ok := lx.scanExponent(); ok {
		lx.look = append(lx.look, exp)
	}
	return tok
}

// scanExponent consumes `[eE][+-]?[0-9]+` if present.
func (lx *Lexer) scanExponent() (token.Token, bool) {
	b := lx.cursor.Peek()
	if b != 'e' && b != 'E' {
		return token.Token{}, false
	}
	n := uint32(1)
	if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
		n = 2
	}
	if !isDec(lx.cursor.PeekAt(n)) {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	for range n {
		lx.cursor.Bump()
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.ExponentLit, Span: sp, Text: lx.text(sp)}, true
}
