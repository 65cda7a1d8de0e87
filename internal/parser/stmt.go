package parser

import (
	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/token"
)

func (p *Parser) atBodyEnd() bool {
	k := p.lx.Peek().Kind
	return k == token.EOF || isPouEnd(k) || isTopLevelStarter(k)
}

func (p *Parser) parseStatements() []ast.Stmt {
	var out []ast.Stmt
	for !p.atBodyEnd() {
		st, ok := p.parseStatement()
		if st != nil {
			out = append(out, st)
		}
		if !ok {
			p.resyncStmt()
		}
	}
	return out
}

func (p *Parser) parseStatement() (ast.Stmt, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Semicolon {
		p.advance()
		return &ast.EmptyStmt{Sp: tok.Span}, true
	}
	if tok.IsControlFlow() {
		p.report(diag.SynControlFlow, diag.SevError, tok.Span,
			tok.Kind.String()+": control-flow statements are not supported by this compiler")
		p.skipControlFlow()
		return nil, true
	}

	x := p.parseExpr()
	if x == nil {
		return nil, false
	}
	var st ast.Stmt
	if p.eat(token.Assign) {
		v := p.parseExpr()
		if v == nil {
			return nil, false
		}
		st = &ast.AssignStmt{Target: x, Value: v, Sp: x.Span().Cover(v.Span())}
	} else {
		st = &ast.ExprStmt{X: x, Sp: x.Span()}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after statement"); !ok {
		return st, false
	}
	return st, true
}

// skipControlFlow drops a whole control-flow statement, nested ones
// included, so the rest of the body still parses.
func (p *Parser) skipControlFlow() {
	depth := 0
	for !p.at(token.EOF) && !isPouEnd(p.lx.Peek().Kind) {
		switch p.advance().Kind {
		case token.KwIf, token.KwFor, token.KwWhile, token.KwRepeat, token.KwCase:
			depth++
		case token.KwEndIf, token.KwEndFor, token.KwEndWhile, token.KwEndRepeat, token.KwEndCase:
			depth--
			if depth <= 0 {
				p.eat(token.Semicolon)
				return
			}
		}
	}
}

// resyncStmt skips past the next ';' or stops before the end of the body.
func (p *Parser) resyncStmt() {
	for !p.atBodyEnd() {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}
