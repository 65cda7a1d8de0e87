package parser

import (
	"golang.org/x/text/unicode/norm"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/lexer"
	"plcc/internal/token"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(precOr)
}

// parseBinary is precedence climbing over binaryOp.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		op, prec, ok := binaryOp(p.lx.Peek().Kind)
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{Op: op, X: left, Y: right, Sp: left.Span().Cover(right.Span())}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwNot:
		p.advance()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: ast.OpNot, X: x, Sp: tok.Span.Cover(x.Span())}
	case token.Minus:
		p.advance()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		sp := tok.Span.Cover(x.Span())
		switch lit := x.(type) {
		case *ast.IntLit:
			return &ast.IntLit{Value: -lit.Value, Sp: sp}
		case *ast.RealLit:
			return &ast.RealLit{Value: -lit.Value, Text: "-" + lit.Text, Sp: sp}
		}
		return &ast.UnaryExpr{Op: ast.OpNeg, X: x, Sp: sp}
	case token.Plus:
		p.advance()
		return p.parseUnary()
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	if x == nil {
		return nil
	}
	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			call, ok := p.parseCallArgs(x)
			if !ok {
				return nil
			}
			x = call
		case token.Dot:
			p.advance()
			name, ok := p.parseIdent()
			if !ok {
				return nil
			}
			x = &ast.MemberExpr{X: x, Name: name.Text, Sp: x.Span().Cover(name.Span)}
		default:
			return x
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.Expr) (*ast.CallExpr, bool) {
	open := p.advance()
	call := &ast.CallExpr{Callee: callee}
	for !p.at(token.RParen) {
		x := p.parseExpr()
		if x == nil {
			return nil, false
		}
		arg := ast.Arg{Kind: ast.ArgPositional, Value: x, Sp: x.Span()}
		if id, isIdent := x.(*ast.Ident); isIdent && p.atOr(token.Assign, token.OutputAssign) {
			kind := ast.ArgInput
			if p.advance().Kind == token.OutputAssign {
				kind = ast.ArgOutput
			}
			v := p.parseExpr()
			if v == nil {
				return nil, false
			}
			arg = ast.Arg{Kind: kind, Name: id.Name, Value: v, Sp: id.Sp.Cover(v.Span())}
		}
		call.Args = append(call.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close call"); !ok {
		return nil, false
	}
	call.Sp = callee.Span().Cover(open.Span).Cover(p.lastSpan)
	return call, true
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		return p.parseNumber()
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Value: norm.NFC.String(lexer.Unquote(tok.Text)), Sp: tok.Span}
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{Value: tok.Kind == token.KwTrue, Sp: tok.Span}
	case token.Ident:
		p.advance()
		return &ast.Ident{Name: tok.Text, Sp: tok.Span}
	case token.LParen:
		p.advance()
		x := p.parseExpr()
		if x == nil {
			return nil
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return nil
		}
		return x
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return nil
	}
}
